package handlers

import (
	"net/http"

	"gameforum/internal/middleware"
	"gameforum/internal/models"
	"gameforum/internal/services"
	"gameforum/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	auth  *services.AuthService
	forum *services.ForumService
}

func NewUserHandler(auth *services.AuthService, forum *services.ForumService) *UserHandler {
	return &UserHandler{auth: auth, forum: forum}
}

// Profile - 用户主页 /api/users/:id
func (h *UserHandler) Profile(c *gin.Context) {
	user, ok := h.auth.GetUser(c.Param("id"))
	if !ok {
		RenderError(c, models.ErrUserNotFound)
		return
	}
	Render(c, http.StatusOK, profileView(user))
}

// Topics lists a user's topics, newest first.
func (h *UserHandler) Topics(c *gin.Context) {
	userID := c.Param("id")
	if _, ok := h.auth.GetUser(userID); !ok {
		RenderError(c, models.ErrUserNotFound)
		return
	}
	Render(c, http.StatusOK, gin.H{"topics": h.forum.TopicsByUser(userID)})
}

// Me returns the session user, or loggedIn=false.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"loggedIn": false})
		return
	}
	obj := profileView(*user)
	obj["loggedIn"] = true
	obj["avatars"] = utils.GetCommonEmojis()
	Render(c, http.StatusOK, obj)
}

// UpdateSettings - 修改个人资料
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	var patch models.ProfilePatch
	if !bindJSON(c, &patch) {
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), patch)
	if err != nil {
		RenderError(c, err)
		return
	}
	// 刷新上下文中的用户
	c.Set(middleware.CheckUserKey, user)
	Success(c, "Profile updated", gin.H{"user": user})
}

func profileView(user models.User) gin.H {
	levelName, levelIcon := utils.GetUserLevel(user.TopicsCount + user.CommentsCount + user.LikesReceived)
	return gin.H{
		"user":      user.Public(),
		"levelName": levelName,
		"levelIcon": levelIcon,
		"daysSince": utils.GetDaysSinceJoined(user.RegistrationDate),
	}
}
