package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	redisclient "github.com/yungbote/customerbridge-backend/internal/clients/redis"
	"github.com/yungbote/customerbridge-backend/internal/logger"
	"github.com/yungbote/customerbridge-backend/internal/normalization"
	"github.com/yungbote/customerbridge-backend/internal/repos"
	"github.com/yungbote/customerbridge-backend/internal/types"
)

var ErrProfileNotFound = repos.ErrProfileNotFound

type ProfileService interface {
	GetByEmail(ctx context.Context, email string) (*types.UnifiedCustomerProfile, error)
	List(ctx context.Context, limit, offset int) ([]*types.UnifiedCustomerProfile, int64, error)
}

type profileService struct {
	log         *logger.Logger
	db          *gorm.DB
	profileRepo repos.ProfileRepo
	cache       redisclient.ProfileCache
}

func NewProfileService(db *gorm.DB, baseLog *logger.Logger, profileRepo repos.ProfileRepo, cache redisclient.ProfileCache) ProfileService {
	return &profileService{
		log:         baseLog.With("service", "ProfileService"),
		db:          db,
		profileRepo: profileRepo,
		cache:       cache,
	}
}

// GetByEmail looks up a unified profile by its join key. The raw input is
// normalized the same way the resolver normalizes it, so callers can pass
// whatever casing the platform exported.
func (s *profileService) GetByEmail(ctx context.Context, email string) (*types.UnifiedCustomerProfile, error) {
	key := normalization.NormalizeEmail(email)
	if key == "" {
		return nil, ErrProfileNotFound
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redisclient.ErrCacheMiss) {
			s.log.Warn("profile cache read failed, falling through to store", "email", key, "error", err)
		}
	}

	profile, err := s.profileRepo.GetByEmail(ctx, nil, key)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, profile); err != nil {
			s.log.Warn("profile cache write failed", "email", key, "error", err)
		}
	}
	return profile, nil
}

func (s *profileService) List(ctx context.Context, limit, offset int) ([]*types.UnifiedCustomerProfile, int64, error) {
	profiles, err := s.profileRepo.List(ctx, nil, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.profileRepo.Count(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}
