package handlers

import (
	"net/http"

	"gameforum/internal/models"
	"gameforum/internal/services"

	"github.com/gin-gonic/gin"
)

// BookmarkHandler manages the session user's favorite topics.
type BookmarkHandler struct {
	forum *services.ForumService
}

func NewBookmarkHandler(forum *services.ForumService) *BookmarkHandler {
	return &BookmarkHandler{forum: forum}
}

// Toggle 切换收藏状态 - 收藏/取消收藏
func (h *BookmarkHandler) Toggle(c *gin.Context) {
	id := c.Param("id")
	// 检查帖子是否存在
	if _, ok := h.forum.GetTopic(id); !ok {
		RenderError(c, models.ErrTopicNotFound)
		return
	}

	added, err := h.forum.ToggleFavorite(c.Request.Context(), id)
	if err != nil {
		RenderError(c, err)
		return
	}

	message := "Removed from favorites"
	if added {
		message = "Added to favorites"
	}
	Success(c, message, gin.H{"favorite": added})
}

// List 我的收藏
func (h *BookmarkHandler) List(c *gin.Context) {
	Render(c, http.StatusOK, gin.H{"topics": h.forum.GetFavorites(c.Request.Context())})
}
