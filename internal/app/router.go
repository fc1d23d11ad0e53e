package app

import (
	"lingo_learn_backend/docs"
	"lingo_learn_backend/internal/config"
	"lingo_learn_backend/internal/middleware"

	"lingo_learn_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// 需要授权的路由：user_id 由上游认证服务签发的令牌携带
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		// 题目与答题
		authGroup.GET("/questions/:id", c.question.GetQuestion)
		authGroup.POST("/questions/:id/submit", c.question.SubmitAnswer)
		authGroup.GET("/questions/:id/attempts", c.question.ListAttempts)
		authGroup.GET("/review/questions", c.question.GetReviewQuestions)

		// 游戏化状态
		authGroup.GET("/gamification/summary", c.gamification.GetSummary)
		authGroup.GET("/gamification/leaderboard", c.gamification.GetLeaderboard)
		authGroup.GET("/gamification/my-rank", c.gamification.GetMyRank)
	}
}
