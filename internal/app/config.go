package app

import (
	"strings"

	"github.com/yungbote/customerbridge-backend/internal/logger"
	"github.com/yungbote/customerbridge-backend/internal/utils"
)

type Config struct {
	Environment string
	Version     string
	Port        string
	SyncWorkers int
	CORSOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	environment := utils.GetEnv("APP_ENV", "development", log)
	version := utils.GetEnv("APP_VERSION", "dev", log)
	port := utils.GetEnv("PORT", "8080", log)
	syncWorkers := utils.GetEnvAsInt("SYNC_WORKERS", 8, log)
	corsOrigins := splitOrigins(utils.GetEnv("CORS_ALLOW_ORIGINS",
		"http://localhost:80,http://localhost:3000,http://localhost:5174", log))
	return Config{
		Environment: environment,
		Version:     version,
		Port:        port,
		SyncWorkers: syncWorkers,
		CORSOrigins: corsOrigins,
	}
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}
