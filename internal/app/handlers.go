package app

import (
	"github.com/yungbote/customerbridge-backend/internal/handlers"
	"github.com/yungbote/customerbridge-backend/internal/logger"
	"github.com/yungbote/customerbridge-backend/internal/platform/registry"
)

type Handlers struct {
	Sync    *handlers.SyncHandler
	Profile *handlers.ProfileHandler
}

func wireHandlers(log *logger.Logger, serviceset Services, reg *registry.Registry) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Sync:    handlers.NewSyncHandler(log, serviceset.Sync, reg),
		Profile: handlers.NewProfileHandler(log, serviceset.Profile, serviceset.Insight),
	}
}
