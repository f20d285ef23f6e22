package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/customerbridge-backend/internal/logger"
	"github.com/yungbote/customerbridge-backend/internal/repos"
)

type Repos struct {
	Profile repos.ProfileRepo
	SyncRun repos.SyncRunRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Profile: repos.NewProfileRepo(db, log),
		SyncRun: repos.NewSyncRunRepo(db, log),
	}
}
