package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/customerbridge-backend/internal/logger"
	"github.com/yungbote/customerbridge-backend/internal/modules/identity"
	"github.com/yungbote/customerbridge-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

type fakeProfileRepo struct {
	mu      sync.Mutex
	stored  map[string]*types.UnifiedCustomerProfile
	failFor map[string]bool
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		stored:  map[string]*types.UnifiedCustomerProfile{},
		failFor: map[string]bool{},
	}
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, tx *gorm.DB, profile *types.UnifiedCustomerProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[profile.Email] {
		return fmt.Errorf("storage down for %s", profile.Email)
	}
	f.stored[profile.Email] = profile
	return nil
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.UnifiedCustomerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.stored[email]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.UnifiedCustomerProfile, error) {
	return nil, nil
}

func (f *fakeProfileRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.stored)), nil
}

type fakeSyncRunRepo struct {
	mu   sync.Mutex
	runs []*types.SyncRun
}

func (f *fakeSyncRunRepo) Create(ctx context.Context, tx *gorm.DB, run *types.SyncRun) (*types.SyncRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, run)
	return run, nil
}

func (f *fakeSyncRunRepo) GetRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.SyncRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runs, nil
}

func testRecord(platform, id, email string, spent float64, orders int) types.RawPlatformRecord {
	created := time.Now().AddDate(0, -6, 0)
	return types.RawPlatformRecord{
		PlatformName:       platform,
		PlatformCustomerID: id,
		Email:              email,
		CreatedDate:        &created,
		TotalSpent:         spent,
		TotalOrders:        orders,
		Status:             "active",
		Metadata:           map[string]interface{}{},
	}
}

func newSyncService(t *testing.T, profileRepo *fakeProfileRepo, runRepo *fakeSyncRunRepo) SyncService {
	t.Helper()
	log := testLogger(t)
	return NewSyncService(nil, log, identity.NewEngine(log), profileRepo, runRepo, nil, 4)
}

func TestRunBatchStoresAllProfiles(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	runRepo := &fakeSyncRunRepo{}
	svc := newSyncService(t, profileRepo, runRepo)

	report, err := svc.RunBatch(context.Background(),
		[]types.RawPlatformRecord{
			testRecord("stripe", "1", "a@example.com", 100, 2),
			testRecord("odoo", "2", "b@example.com", 200, 3),
		},
		nil,
	)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(report.Profiles) != 2 {
		t.Fatalf("profiles=%d, want 2", len(report.Profiles))
	}
	if len(profileRepo.stored) != 2 {
		t.Fatalf("stored=%d, want 2", len(profileRepo.stored))
	}
	if report.Run.Status != types.SyncRunStatusCompleted {
		t.Fatalf("status=%s, want completed", report.Run.Status)
	}
	if report.Run.ProfilesStored != 2 || report.Run.RecordsIn != 2 {
		t.Fatalf("run counts wrong: %+v", report.Run)
	}
	if len(runRepo.runs) != 1 {
		t.Fatalf("sync run rows=%d, want 1", len(runRepo.runs))
	}
}

func TestRunBatchStorageFailureIsIsolated(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	profileRepo.failFor["a@example.com"] = true
	runRepo := &fakeSyncRunRepo{}
	svc := newSyncService(t, profileRepo, runRepo)

	report, err := svc.RunBatch(context.Background(),
		[]types.RawPlatformRecord{
			testRecord("stripe", "1", "a@example.com", 100, 2),
			testRecord("odoo", "2", "b@example.com", 200, 3),
		},
		nil,
	)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	// Both computed profiles come back even though one upsert failed.
	if len(report.Profiles) != 2 {
		t.Fatalf("profiles=%d, want 2", len(report.Profiles))
	}
	if len(report.StoreFailures) != 1 || report.StoreFailures[0] != "a@example.com" {
		t.Fatalf("store failures=%v", report.StoreFailures)
	}
	if _, ok := profileRepo.stored["b@example.com"]; !ok {
		t.Fatal("unaffected profile should still be stored")
	}
	if report.Run.Status != types.SyncRunStatusPartial {
		t.Fatalf("status=%s, want partial", report.Run.Status)
	}
	if report.Run.StoreFailureCount != 1 || report.Run.ProfilesStored != 1 {
		t.Fatalf("run counts wrong: %+v", report.Run)
	}
}

func TestRunBatchCountsUnmatchableAndSkipped(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	runRepo := &fakeSyncRunRepo{}
	svc := newSyncService(t, profileRepo, runRepo)

	broken := testRecord("stripe", "1", "broken@example.com", 10, 1)
	broken.Metadata = map[string]interface{}{"engagement_score": "not a number"}

	report, err := svc.RunBatch(context.Background(),
		[]types.RawPlatformRecord{
			broken,
			testRecord("odoo", "2", "", 200, 3),
			testRecord("shopify", "3", "ok@example.com", 50, 1),
		},
		nil,
	)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if report.Run.UnmatchableCount != 1 {
		t.Fatalf("unmatchable=%d, want 1", report.Run.UnmatchableCount)
	}
	if report.Run.SkippedCount != 1 || len(report.Skipped) != 1 {
		t.Fatalf("skipped=%d/%d, want 1", report.Run.SkippedCount, len(report.Skipped))
	}
	if report.Run.Status != types.SyncRunStatusPartial {
		t.Fatalf("status=%s, want partial", report.Run.Status)
	}
	if len(profileRepo.stored) != 1 {
		t.Fatalf("stored=%d, want only ok@example.com", len(profileRepo.stored))
	}
}
