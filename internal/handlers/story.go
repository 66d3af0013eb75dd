package handlers

import (
	"fmt"
	"net/http"

	"gameforum/internal/middleware"
	"gameforum/internal/models"
	"gameforum/internal/services"
	"gameforum/internal/utils"

	"github.com/gin-gonic/gin"
)

// StoryHandler serves topics and their comments.
type StoryHandler struct {
	forum *services.ForumService
}

func NewStoryHandler(forum *services.ForumService) *StoryHandler {
	return &StoryHandler{forum: forum}
}

type topicRequest struct {
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	Category models.Category `json:"category"`
	Tags     []string        `json:"tags"`
}

type commentRequest struct {
	Content string `json:"content"`
}

type reportRequest struct {
	Reason string `json:"reason"`
}

// List 帖子列表 ?category=&sort=&q=&limit=
func (h *StoryHandler) List(c *gin.Context) {
	query := services.TopicQuery{
		Category: models.Category(c.DefaultQuery("category", string(models.CategoryAll))),
		SortBy:   models.SortOrder(c.DefaultQuery("sort", string(models.SortNewest))),
		Search:   c.Query("q"),
	}
	if query.Category != models.CategoryAll && !query.Category.Valid() {
		RenderError(c, models.NewValidationError(fmt.Sprintf("Unknown category %q", query.Category)))
		return
	}
	switch query.SortBy {
	case models.SortNewest, models.SortOldest, models.SortMostLiked:
	default:
		RenderError(c, models.NewValidationError(fmt.Sprintf("Unknown sort order %q", query.SortBy)))
		return
	}

	topics := h.forum.GetTopics(query)
	total := len(topics)
	if limit := utils.StringToInt(c.Query("limit")); limit > 0 && limit < total {
		topics = topics[:limit]
	}

	Render(c, http.StatusOK, gin.H{"topics": topics, "total": total})
}

// Detail 帖子详情，每次访问浏览量 +1
func (h *StoryHandler) Detail(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.forum.ViewTopic(ctx, id); err != nil {
		RenderError(c, err)
		return
	}
	topic, ok := h.forum.GetTopic(id)
	if !ok {
		RenderError(c, models.ErrTopicNotFound)
		return
	}

	obj := gin.H{
		"topic":       topic,
		"contentHtml": string(utils.RenderMarkdown(topic.Content)),
		"liked":       false,
		"favorite":    false,
	}
	if user, ok := middleware.CurrentUser(c); ok {
		obj["liked"] = topic.LikedBy(user.ID)
		obj["favorite"] = h.forum.IsFavorite(ctx, id)
	}
	Render(c, http.StatusOK, obj)
}

func (h *StoryHandler) Create(c *gin.Context) {
	var req topicRequest
	if !bindJSON(c, &req) {
		return
	}

	topic, err := h.forum.CreateTopic(c.Request.Context(), services.CreateTopicInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		RenderError(c, err)
		return
	}

	Flash(c, FlashSuccess, "Topic created")
	c.JSON(http.StatusCreated, gin.H{"topic": topic})
}

func (h *StoryHandler) Update(c *gin.Context) {
	var patch models.TopicPatch
	if !bindJSON(c, &patch) {
		return
	}

	topic, err := h.forum.UpdateTopic(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		RenderError(c, err)
		return
	}
	Success(c, "Topic updated", gin.H{"topic": topic})
}

func (h *StoryHandler) Delete(c *gin.Context) {
	if err := h.forum.DeleteTopic(c.Request.Context(), c.Param("id")); err != nil {
		RenderError(c, err)
		return
	}
	Success(c, "Topic deleted", gin.H{"deleted": true})
}

// Report 举报帖子
func (h *StoryHandler) Report(c *gin.Context) {
	var req reportRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.forum.ReportTopic(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		RenderError(c, err)
		return
	}
	Success(c, "Thank you, the report has been sent to the moderators", gin.H{"reported": true})
}

// Comments lists a topic's comments, oldest first, with rendered bodies.
func (h *StoryHandler) Comments(c *gin.Context) {
	topicID := c.Param("id")
	if _, ok := h.forum.GetTopic(topicID); !ok {
		RenderError(c, models.ErrTopicNotFound)
		return
	}

	comments := h.forum.GetComments(topicID)
	views := make([]gin.H, 0, len(comments))
	for _, cm := range comments {
		views = append(views, gin.H{
			"comment":     cm,
			"contentHtml": string(utils.RenderMarkdown(cm.Content)),
		})
	}
	Render(c, http.StatusOK, gin.H{"comments": views})
}

// CreateComment 发表评论
func (h *StoryHandler) CreateComment(c *gin.Context) {
	var req commentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.forum.CreateComment(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		RenderError(c, err)
		return
	}

	Flash(c, FlashSuccess, "Comment posted")
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

func (h *StoryHandler) UpdateComment(c *gin.Context) {
	var req commentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.forum.UpdateComment(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		RenderError(c, err)
		return
	}
	Success(c, "Comment updated", gin.H{"comment": comment})
}

// DeleteComment 删除评论
func (h *StoryHandler) DeleteComment(c *gin.Context) {
	if err := h.forum.DeleteComment(c.Request.Context(), c.Param("id")); err != nil {
		RenderError(c, err)
		return
	}
	Success(c, "Comment deleted", gin.H{"deleted": true})
}
