package handlers

import (
	"net/http"

	"gameforum/internal/models"
	"gameforum/internal/services"

	"github.com/gin-gonic/gin"
)

// NodeHandler serves the category index and site-wide counters.
type NodeHandler struct {
	forum *services.ForumService
	prefs *services.PreferenceService
}

func NewNodeHandler(forum *services.ForumService, prefs *services.PreferenceService) *NodeHandler {
	return &NodeHandler{forum: forum, prefs: prefs}
}

type categoryView struct {
	Name        models.Category `json:"name"`
	Description string          `json:"description"`
	Topics      int             `json:"topics"`
}

// ListNodes 展示所有分类及帖子数
func (h *NodeHandler) ListNodes(c *gin.Context) {
	categories := models.Categories()
	views := make([]categoryView, 0, len(categories))
	for _, cat := range categories {
		views = append(views, categoryView{
			Name:        cat,
			Description: cat.Description(),
			Topics:      len(h.forum.GetTopics(services.TopicQuery{Category: cat})),
		})
	}
	Render(c, http.StatusOK, gin.H{"categories": views})
}

// Stats 首页统计, plus the latest, most liked and trending topics.
func (h *NodeHandler) Stats(c *gin.Context) {
	latest := h.forum.GetTopics(services.TopicQuery{SortBy: models.SortNewest})
	popular := h.forum.GetTopics(services.TopicQuery{SortBy: models.SortMostLiked})
	Render(c, http.StatusOK, gin.H{
		"stats":    h.forum.Stats(),
		"latest":   latest[:min(5, len(latest))],
		"popular":  popular[:min(5, len(popular))],
		"trending": h.forum.TrendingTopics(5),
	})
}

type languageRequest struct {
	Language models.Language `json:"language"`
}

func (h *NodeHandler) Language(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"language": h.prefs.Language(c.Request.Context())})
}

func (h *NodeHandler) SetLanguage(c *gin.Context) {
	var req languageRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.prefs.SetLanguage(c.Request.Context(), req.Language); err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": req.Language})
}
