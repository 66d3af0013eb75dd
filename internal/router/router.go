package router

import (
	"gameforum/internal/handlers"
	"gameforum/internal/middleware"
	"gameforum/internal/services"

	"github.com/gin-gonic/gin"
)

// Services are the stores the handlers are built on.
type Services struct {
	Auth        *services.AuthService
	Forum       *services.ForumService
	Preferences *services.PreferenceService

	// SiteURL is the public origin used in the sitemap and feed.
	SiteURL string
}

// RegisterRoutes mounts the JSON API under /api. The engine must already use
// the sessions middleware.
func RegisterRoutes(r *gin.Engine, s Services) {
	// Handlers
	authHandler := handlers.NewAuthHandler(s.Auth)
	storyHandler := handlers.NewStoryHandler(s.Forum)
	voteHandler := handlers.NewVoteHandler(s.Forum)
	userHandler := handlers.NewUserHandler(s.Auth, s.Forum)
	nodeHandler := handlers.NewNodeHandler(s.Forum, s.Preferences)
	bookmarkHandler := handlers.NewBookmarkHandler(s.Forum)
	notificationHandler := handlers.NewNotificationHandler(s.Forum)
	seoHandler := handlers.NewSEOHandler(s.Forum, s.SiteURL)

	// SEO
	r.GET("/robots.txt", seoHandler.RobotsTxt)
	r.GET("/sitemap.xml", seoHandler.SitemapXML)
	r.GET("/feed.xml", seoHandler.RSSFeed)

	api := r.Group("/api")
	api.Use(middleware.LoadUser(s.Auth, s.Forum))

	// 公共路由 (Public Routes)
	api.GET("/topics", storyHandler.List)                  // 帖子列表
	api.GET("/topics/:id", storyHandler.Detail)            // 帖子详情
	api.GET("/topics/:id/comments", storyHandler.Comments) // 评论列表
	api.GET("/categories", nodeHandler.ListNodes)          // 分类列表
	api.GET("/stats", nodeHandler.Stats)                   // 首页统计
	api.GET("/users/:id", userHandler.Profile)             // 用户主页
	api.GET("/users/:id/topics", userHandler.Topics)       // 用户的帖子

	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.GET("/me", userHandler.Me)

	api.GET("/language", nodeHandler.Language)
	api.PUT("/language", nodeHandler.SetLanguage)
	api.GET("/flashes", handlers.Flashes)

	// 受保护路由 (Protected Routes)
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/topics", storyHandler.Create)
		authorized.PUT("/topics/:id", storyHandler.Update)
		authorized.DELETE("/topics/:id", storyHandler.Delete)
		authorized.POST("/topics/:id/like", voteHandler.LikeTopic)
		authorized.POST("/topics/:id/favorite", bookmarkHandler.Toggle)
		authorized.POST("/topics/:id/report", storyHandler.Report)
		authorized.POST("/topics/:id/comments", storyHandler.CreateComment)

		authorized.PUT("/comments/:id", storyHandler.UpdateComment)
		authorized.DELETE("/comments/:id", storyHandler.DeleteComment)
		authorized.POST("/comments/:id/like", voteHandler.LikeComment)

		authorized.GET("/favorites", bookmarkHandler.List)
		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll)
		authorized.PUT("/me", userHandler.UpdateSettings)
	}
}
