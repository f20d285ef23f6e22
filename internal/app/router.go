package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/customerbridge-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AllowedOrigins: cfg.CORSOrigins,
		RequestID:      middlewareset.RequestID,
		SyncHandler:    handlerset.Sync,
		ProfileHandler: handlerset.Profile,
	})
}
