package app

import (
	"expertline/docs"
	"expertline/internal/config"
	"expertline/internal/middleware"
	"expertline/internal/model"
	"expertline/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.GET("/auth/google", c.auth.GoogleLogin)
		public.GET("/auth/google/callback", c.auth.GoogleCallback)

		public.GET("/posts", c.post.List)
		public.GET("/posts/:id", c.post.Get)
		public.GET("/posts/:id/comments", c.post.ListComments)
		// 未登录返回 userVote=null
		public.GET("/posts/:id/vote-status", middleware.TryAuthMiddleware(cfg), c.post.VoteStatus)

		public.GET("/topics", c.topic.List)
		public.GET("/topics/:id", c.topic.Get)

		public.GET("/requests", c.request.List)
		public.POST("/requests", c.request.Create)

		// 对比接口自带滑动窗口限流
		public.POST("/compare", c.compare.Compare)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/users/me", c.user.GetProfile)
		authGroup.PUT("/users/me", c.user.UpdateProfile)
		authGroup.POST("/users/me/avatar", c.user.UploadAvatar)

		authGroup.POST("/posts", c.post.Create)
		authGroup.POST("/posts/:id/comments", c.post.CreateComment)
		authGroup.POST("/posts/:id/endorse", c.post.Endorse)
		authGroup.POST("/posts/:id/oppose", c.post.Oppose)
		authGroup.POST("/posts/:id/unvote", c.post.Unvote)
	}

	// 管理员路由
	adminGroup := router.Group("/api")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		adminGroup.POST("/topics", c.topic.Create)
	}
}
