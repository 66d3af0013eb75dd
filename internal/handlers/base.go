package handlers

import (
	"errors"
	"net/http"

	"gameforum/internal/middleware"
	"gameforum/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash kinds. Each is its own flash bucket in the cookie session.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

var statusByCode = map[string]int{
	models.CodeUnauthorized: http.StatusUnauthorized,
	models.CodeForbidden:    http.StatusForbidden,
	models.CodeNotFound:     http.StatusNotFound,
	models.CodeValidation:   http.StatusBadRequest,
	models.CodeConflict:     http.StatusConflict,
	models.CodeInternal:     http.StatusInternalServerError,
}

// Render writes obj as JSON and injects the session user like the page
// layouts used to.
func Render(c *gin.Context, code int, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		obj["currentUser"] = user
		if count, ok := c.Get(middleware.UnreadCountKey); ok {
			obj["unreadCount"] = count
		} else {
			obj["unreadCount"] = 0
		}
	}
	c.JSON(code, obj)
}

// Success flashes message and renders obj with 200.
func Success(c *gin.Context, message string, obj gin.H) {
	if message != "" {
		Flash(c, FlashSuccess, message)
	}
	Render(c, http.StatusOK, obj)
}

// RenderError maps err to a status, flashes its user-facing message and aborts.
func RenderError(c *gin.Context, err error) {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		appErr = models.NewInternalError(err)
	}
	status, ok := statusByCode[appErr.Code]
	if !ok {
		status = http.StatusInternalServerError
	}

	Flash(c, FlashError, appErr.Message)
	c.AbortWithStatusJSON(status, gin.H{"error": appErr.Message, "code": appErr.Code})
}

// Flash queues a user-facing message for GET /api/flashes.
func Flash(c *gin.Context, kind, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, kind)
	session.Save()
}

// Flashes drains every queued message.
func Flashes(c *gin.Context) {
	session := sessions.Default(c)
	out := gin.H{}
	for _, kind := range []string{FlashSuccess, FlashError} {
		messages := []string{}
		for _, f := range session.Flashes(kind) {
			if s, ok := f.(string); ok {
				messages = append(messages, s)
			}
		}
		out[kind] = messages
	}
	session.Save()
	c.JSON(http.StatusOK, out)
}

// bindJSON decodes the body into dst and renders a validation error on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		RenderError(c, models.NewValidationError("Invalid request body"))
		return false
	}
	return true
}
