package app

import (
	"os"
	"strings"

	"gorm.io/gorm"

	redisclient "github.com/yungbote/customerbridge-backend/internal/clients/redis"
	"github.com/yungbote/customerbridge-backend/internal/logger"
	"github.com/yungbote/customerbridge-backend/internal/modules/identity"
	"github.com/yungbote/customerbridge-backend/internal/platform/registry"
	"github.com/yungbote/customerbridge-backend/internal/services"
)

type Services struct {
	Sync    services.SyncService
	Profile services.ProfileService
	Insight services.InsightService
	Cache   redisclient.ProfileCache
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, reg *registry.Registry) (Services, error) {
	log.Info("Wiring services...")

	// Cache is optional: no REDIS_ADDR means every read goes to postgres.
	var cache redisclient.ProfileCache
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		c, err := redisclient.NewProfileCache(log)
		if err != nil {
			log.Warn("Redis cache unavailable, continuing without it", "error", err)
		} else {
			cache = c
		}
	}

	engine := identity.NewEngine(log)
	if reg != nil {
		engine.SetPlatformDirectory(reg)
	}
	syncService := services.NewSyncService(db, log, engine, reposet.Profile, reposet.SyncRun, cache, cfg.SyncWorkers)
	profileService := services.NewProfileService(db, log, reposet.Profile, cache)

	// Narrative enrichment is optional the same way: without an API key the
	// insight endpoint serves the deterministic rendering.
	var enricher services.NarrativeEnricher
	if strings.TrimSpace(os.Getenv("OPENAI_API_KEY")) != "" {
		client, err := services.NewOpenAIClient(log)
		if err != nil {
			log.Warn("OpenAI client unavailable, insights fall back to rules", "error", err)
		} else {
			enricher = services.NewOpenAIEnricher(log, client)
		}
	}
	insightService := services.NewInsightService(log, profileService, enricher)

	return Services{
		Sync:    syncService,
		Profile: profileService,
		Insight: insightService,
		Cache:   cache,
	}, nil
}
