package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/customerbridge-backend/internal/logger"
	"github.com/yungbote/customerbridge-backend/internal/types"
)

// ErrProfileNotFound is returned by GetByEmail for an unknown join key.
var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, profile *types.UnifiedCustomerProfile) error
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.UnifiedCustomerProfile, error)
	List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.UnifiedCustomerProfile, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return &profileRepo{
		db:  db,
		log: baseLog.With("repo", "ProfileRepo"),
	}
}

// Upsert replaces the whole stored document for the profile's email.
// Overwrite-by-join-key is deliberate: there is no partial-field patch path,
// and concurrent writers to the same key are last-writer-wins.
func (r *profileRepo) Upsert(ctx context.Context, tx *gorm.DB, profile *types.UnifiedCustomerProfile) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if profile == nil {
		return nil
	}
	profile.UpdatedAt = time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = profile.UpdatedAt
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			// customer_id is derived from the email join key, so conflicting
			// on the primary key is conflicting on the email.
			Columns: []clause.Column{{Name: "customer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name",
				"platforms_active",
				"total_spent_all_platforms",
				"total_orders_all_platforms",
				"first_seen_date",
				"last_activity_date",
				"purchase_frequency_score",
				"engagement_score",
				"loyalty_score",
				"customer_value_tier",
				"churn_risk_level",
				"purchase_intent",
				"platform_data",
				"behavioral_patterns",
				"predicted_actions",
				"recommended_strategies",
				"updated_at",
			}),
		}).
		Create(profile).Error
}

func (r *profileRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.UnifiedCustomerProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if email == "" {
		return nil, ErrProfileNotFound
	}
	var profile types.UnifiedCustomerProfile
	err := transaction.WithContext(ctx).
		Where("email = ?", email).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.UnifiedCustomerProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	var results []*types.UnifiedCustomerProfile
	if err := transaction.WithContext(ctx).
		Order("email ASC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *profileRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.UnifiedCustomerProfile{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
