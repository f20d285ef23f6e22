package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// profileNamespace is the fixed UUIDv5 namespace for deriving a profile's
// customer id from its normalized email. Changing it would re-key every
// stored profile.
var profileNamespace = uuid.MustParse("8f2d1c64-9b0a-4c7e-b3a5-2e6f08d1a942")

// ProfileIDForEmail derives the stable customer id for a join key. The same
// normalized email always maps to the same id, across runs and processes.
func ProfileIDForEmail(email string) uuid.UUID {
	return uuid.NewSHA1(profileNamespace, []byte(email))
}

// PlatformSnapshot preserves one platform's raw view of the customer inside
// the unified profile, for traceability back to the source record.
type PlatformSnapshot struct {
	PlatformCustomerID string                 `json:"platform_customer_id"`
	DisplayName        string                 `json:"display_name,omitempty"`
	TotalSpent         float64                `json:"total_spent"`
	TotalOrders        int                    `json:"total_orders"`
	LastOrderDate      *time.Time             `json:"last_order_date,omitempty"`
	Status             string                 `json:"status"`
	Metadata           map[string]interface{} `json:"metadata,omitempty"`
}

// UnifiedCustomerProfile is the one-row-per-person output of a batch run.
// Every batch fully replaces the stored document for a join key; nothing on
// this row is patched incrementally.
type UnifiedCustomerProfile struct {
	CustomerID              uuid.UUID                                    `gorm:"type:uuid;primaryKey;column:customer_id" json:"customer_id"`
	Email                   string                                       `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Name                    string                                       `gorm:"column:name" json:"name"`
	PlatformsActive         datatypes.JSONSlice[string]                  `gorm:"type:jsonb;column:platforms_active" json:"platforms_active"`
	TotalSpentAllPlatforms  float64                                      `gorm:"not null;default:0;column:total_spent_all_platforms" json:"total_spent_all_platforms"`
	TotalOrdersAllPlatforms int                                          `gorm:"not null;default:0;column:total_orders_all_platforms" json:"total_orders_all_platforms"`
	FirstSeenDate           time.Time                                    `gorm:"not null;column:first_seen_date" json:"first_seen_date"`
	LastActivityDate        *time.Time                                   `gorm:"column:last_activity_date" json:"last_activity_date,omitempty"`
	PurchaseFrequencyScore  int                                          `gorm:"not null;default:0;column:purchase_frequency_score" json:"purchase_frequency_score"`
	EngagementScore         int                                          `gorm:"not null;default:0;column:engagement_score" json:"engagement_score"`
	LoyaltyScore            int                                          `gorm:"not null;default:0;column:loyalty_score" json:"loyalty_score"`
	CustomerValueTier       CustomerValue                                `gorm:"not null;column:customer_value_tier" json:"customer_value_tier"`
	ChurnRiskLevel          ChurnRisk                                    `gorm:"not null;column:churn_risk_level" json:"churn_risk_level"`
	PurchaseIntent          PurchaseIntent                               `gorm:"not null;column:purchase_intent" json:"purchase_intent"`
	PlatformData            datatypes.JSONType[map[string]PlatformSnapshot] `gorm:"type:jsonb;column:platform_data" json:"platform_data"`
	BehavioralPatterns      datatypes.JSONSlice[string]                  `gorm:"type:jsonb;column:behavioral_patterns" json:"behavioral_patterns"`
	PredictedActions        datatypes.JSONSlice[string]                  `gorm:"type:jsonb;column:predicted_actions" json:"predicted_actions"`
	RecommendedStrategies   datatypes.JSONSlice[string]                  `gorm:"type:jsonb;column:recommended_strategies" json:"recommended_strategies"`
	CreatedAt               time.Time                                    `gorm:"not null" json:"created_at"`
	UpdatedAt               time.Time                                    `gorm:"not null" json:"updated_at"`
	DeletedAt               gorm.DeletedAt                               `gorm:"index" json:"deleted_at,omitempty"`
}

func (UnifiedCustomerProfile) TableName() string {
	return "unified_customer_profile"
}

func NewPlatformData(m map[string]PlatformSnapshot) datatypes.JSONType[map[string]PlatformSnapshot] {
	return datatypes.NewJSONType(m)
}
