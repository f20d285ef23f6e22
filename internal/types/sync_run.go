package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	SyncRunStatusCompleted = "completed"
	SyncRunStatusPartial   = "partial"
	SyncRunStatusFailed    = "failed"
)

// SyncRun records one batch pass through the resolution engine. The skipped
// and unmatchable counts are the caller-facing report required when
// individual identities fail without aborting the batch.
type SyncRun struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Status            string    `gorm:"not null;column:status" json:"status"`
	RecordsIn         int       `gorm:"not null;default:0;column:records_in" json:"records_in"`
	TransactionsIn    int       `gorm:"not null;default:0;column:transactions_in" json:"transactions_in"`
	ProfilesResolved  int       `gorm:"not null;default:0;column:profiles_resolved" json:"profiles_resolved"`
	ProfilesStored    int       `gorm:"not null;default:0;column:profiles_stored" json:"profiles_stored"`
	UnmatchableCount  int       `gorm:"not null;default:0;column:unmatchable_count" json:"unmatchable_count"`
	SkippedCount      int       `gorm:"not null;default:0;column:skipped_count" json:"skipped_count"`
	StoreFailureCount int       `gorm:"not null;default:0;column:store_failure_count" json:"store_failure_count"`
	StartedAt         time.Time `gorm:"not null;column:started_at" json:"started_at"`
	FinishedAt        time.Time `gorm:"not null;column:finished_at" json:"finished_at"`
	DurationMS        int64     `gorm:"not null;default:0;column:duration_ms" json:"duration_ms"`
	Error             string    `gorm:"column:error" json:"error,omitempty"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
}

func (SyncRun) TableName() string {
	return "sync_run"
}
