package handlers

import (
	"net/http"

	"gameforum/internal/services"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	forum *services.ForumService
}

func NewNotificationHandler(forum *services.ForumService) *NotificationHandler {
	return &NotificationHandler{forum: forum}
}

func (h *NotificationHandler) List(c *gin.Context) {
	Render(c, http.StatusOK, gin.H{
		"notifications": h.forum.ListNotifications(),
		"unread":        h.forum.UnreadNotificationsCount(),
	})
}

func (h *NotificationHandler) Read(c *gin.Context) {
	if err := h.forum.MarkNotificationAsRead(c.Request.Context(), c.Param("id")); err != nil {
		RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": h.forum.UnreadNotificationsCount()})
}

func (h *NotificationHandler) ReadAll(c *gin.Context) {
	if err := h.forum.MarkAllNotificationsAsRead(c.Request.Context()); err != nil {
		RenderError(c, err)
		return
	}
	Success(c, "All notifications marked as read", gin.H{"unread": 0})
}
