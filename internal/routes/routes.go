package routes

import (
	"rca-backend/internal/config"
	"rca-backend/internal/handlers"
	"rca-backend/internal/middleware"
	"rca-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(middleware.LoggerMiddleware())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RateLimitMiddleware(60))

	authService := services.NewAuthService(db)
	rcaService := services.NewRcaService(db)
	nodeService := services.NewNodeService(db)

	authHandler := handlers.NewAuthHandler(authService, cfg)
	rcaHandler := handlers.NewRcaHandler(rcaService)
	nodeHandler := handlers.NewNodeHandler(nodeService)

	api := router.Group("/api")

	public := api.Group("")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(db, cfg))
	{
		user := protected.Group("/auth")
		{
			user.GET("/me", authHandler.GetMe)
		}

		rcas := protected.Group("/rcas")
		{
			rcas.GET("", rcaHandler.GetRcas)
			rcas.POST("", rcaHandler.CreateRca)
			rcas.GET("/:id", rcaHandler.GetRca)
			rcas.PATCH("/:id", rcaHandler.UpdateRca)
			rcas.DELETE("/:id", rcaHandler.DeleteRca)

			rcas.POST("/:id/nodes", nodeHandler.CreateNode)
		}

		nodes := protected.Group("/nodes")
		{
			nodes.PATCH("/:id", nodeHandler.UpdateNode)
			nodes.DELETE("/:id", nodeHandler.DeleteNode)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "服务运行正常",
		})
	})

	return router
}
