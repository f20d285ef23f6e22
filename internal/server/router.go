package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/customerbridge-backend/internal/handlers"
	"github.com/yungbote/customerbridge-backend/internal/middleware"
)

type RouterConfig struct {
	AllowedOrigins []string
	RequestID      *middleware.RequestIDMiddleware
	SyncHandler    *handlers.SyncHandler
	ProfileHandler *handlers.ProfileHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		}
	}

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"},
		AllowCredentials: true,
	}))
	router.Use(otelgin.Middleware("customerbridge"))
	if cfg.RequestID != nil {
		router.Use(cfg.RequestID.Tag())
	}

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/sync", cfg.SyncHandler.RunSync)
		api.GET("/sync/runs", cfg.SyncHandler.ListRuns)
		api.GET("/profiles", cfg.ProfileHandler.ListProfiles)
		api.GET("/profiles/:email", cfg.ProfileHandler.GetProfile)
		api.GET("/profiles/:email/insight", cfg.ProfileHandler.GetProfileInsight)
	}

	return router
}
