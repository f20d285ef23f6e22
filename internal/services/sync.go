package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	redisclient "github.com/yungbote/customerbridge-backend/internal/clients/redis"
	"github.com/yungbote/customerbridge-backend/internal/logger"
	"github.com/yungbote/customerbridge-backend/internal/modules/identity"
	"github.com/yungbote/customerbridge-backend/internal/repos"
	"github.com/yungbote/customerbridge-backend/internal/types"
)

// SyncReport is what one batch run hands back to the caller: everything the
// engine computed, plus which profiles could not be stored. Computed profiles
// are returned even when their upsert failed.
type SyncReport struct {
	Run           *types.SyncRun                  `json:"run"`
	Profiles      []*types.UnifiedCustomerProfile `json:"profiles"`
	Skipped       []identity.SkippedIdentity      `json:"skipped,omitempty"`
	StoreFailures []string                        `json:"store_failures,omitempty"`
}

type SyncService interface {
	RunBatch(ctx context.Context, records []types.RawPlatformRecord, transactions []types.RawTransaction) (*SyncReport, error)
	GetRecentRuns(ctx context.Context, limit int) ([]*types.SyncRun, error)
}

type syncService struct {
	log         *logger.Logger
	db          *gorm.DB
	engine      *identity.Engine
	profileRepo repos.ProfileRepo
	syncRunRepo repos.SyncRunRepo
	cache       redisclient.ProfileCache
	workers     int

	// keyLocks serializes writers per join key. Within one batch every email
	// is unique, so this only matters when batches overlap; the store itself
	// is last-writer-wins whole-document replacement.
	keyLocks sync.Map
}

func NewSyncService(
	db *gorm.DB,
	baseLog *logger.Logger,
	engine *identity.Engine,
	profileRepo repos.ProfileRepo,
	syncRunRepo repos.SyncRunRepo,
	cache redisclient.ProfileCache,
	workers int,
) SyncService {
	if workers <= 0 {
		workers = 8
	}
	return &syncService{
		log:         baseLog.With("service", "SyncService"),
		db:          db,
		engine:      engine,
		profileRepo: profileRepo,
		syncRunRepo: syncRunRepo,
		cache:       cache,
		workers:     workers,
	}
}

// RunBatch resolves and scores the full raw record set, then persists the
// resulting profiles. Resolution is single-threaded; only persistence fans
// out. A storage failure for one identity never rolls back or blocks the
// others.
func (s *syncService) RunBatch(ctx context.Context, records []types.RawPlatformRecord, transactions []types.RawTransaction) (*SyncReport, error) {
	startedAt := time.Now().UTC()

	result := s.engine.ResolveAndScore(ctx, records, transactions)

	var (
		mu       sync.Mutex
		failures []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, profile := range result.Profiles {
		profile := profile
		g.Go(func() error {
			unlock := s.lockKey(profile.Email)
			defer unlock()

			if err := s.profileRepo.Upsert(gctx, nil, profile); err != nil {
				s.log.Error("profile upsert failed", "email", profile.Email, "error", err)
				mu.Lock()
				failures = append(failures, profile.Email)
				mu.Unlock()
				return nil
			}
			if s.cache != nil {
				if err := s.cache.Invalidate(gctx, profile.Email); err != nil {
					s.log.Warn("cache invalidation failed", "email", profile.Email, "error", err)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	finishedAt := time.Now().UTC()
	run := &types.SyncRun{
		Status:            runStatus(result, failures),
		RecordsIn:         len(records),
		TransactionsIn:    len(transactions),
		ProfilesResolved:  len(result.Profiles),
		ProfilesStored:    len(result.Profiles) - len(failures),
		UnmatchableCount:  result.Unmatchable,
		SkippedCount:      len(result.Skipped),
		StoreFailureCount: len(failures),
		StartedAt:         startedAt,
		FinishedAt:        finishedAt,
		DurationMS:        finishedAt.Sub(startedAt).Milliseconds(),
	}
	if _, err := s.syncRunRepo.Create(ctx, nil, run); err != nil {
		// The batch itself succeeded; losing the run record is log-worthy
		// but not a reason to fail the caller.
		s.log.Error("sync run record not persisted", "error", err)
	}

	return &SyncReport{
		Run:           run,
		Profiles:      result.Profiles,
		Skipped:       result.Skipped,
		StoreFailures: failures,
	}, nil
}

func (s *syncService) GetRecentRuns(ctx context.Context, limit int) ([]*types.SyncRun, error) {
	return s.syncRunRepo.GetRecent(ctx, nil, limit)
}

func (s *syncService) lockKey(email string) func() {
	v, _ := s.keyLocks.LoadOrStore(email, &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

func runStatus(result *identity.BatchResult, failures []string) string {
	if len(failures) > 0 && len(failures) == len(result.Profiles) {
		return types.SyncRunStatusFailed
	}
	if len(failures) > 0 || len(result.Skipped) > 0 {
		return types.SyncRunStatusPartial
	}
	return types.SyncRunStatusCompleted
}
