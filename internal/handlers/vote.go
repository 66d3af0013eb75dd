package handlers

import (
	"net/http"

	"gameforum/internal/services"

	"github.com/gin-gonic/gin"
)

// VoteHandler toggles likes on topics and comments.
type VoteHandler struct {
	forum *services.ForumService
}

func NewVoteHandler(forum *services.ForumService) *VoteHandler {
	return &VoteHandler{forum: forum}
}

// LikeTopic 点赞/取消点赞帖子
func (h *VoteHandler) LikeTopic(c *gin.Context) {
	id := c.Param("id")
	liked, err := h.forum.LikeTopic(c.Request.Context(), id)
	if err != nil {
		RenderError(c, err)
		return
	}

	likes := 0
	if topic, ok := h.forum.GetTopic(id); ok {
		likes = len(topic.Likes)
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked, "likes": likes})
}

// LikeComment 点赞/取消点赞评论
func (h *VoteHandler) LikeComment(c *gin.Context) {
	id := c.Param("id")
	liked, err := h.forum.LikeComment(c.Request.Context(), id)
	if err != nil {
		RenderError(c, err)
		return
	}

	likes := 0
	if comment, ok := h.forum.GetComment(id); ok {
		likes = len(comment.Likes)
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked, "likes": likes})
}
