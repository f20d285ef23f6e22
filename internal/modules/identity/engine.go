package identity

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/customerbridge-backend/internal/logger"
	"github.com/yungbote/customerbridge-backend/internal/types"
)

// SkippedIdentity is one group the engine could not score. The batch keeps
// going; the caller gets the reason instead of a defaulted classification.
type SkippedIdentity struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// BatchResult is the full output of one resolution pass.
type BatchResult struct {
	Profiles            []*types.UnifiedCustomerProfile `json:"profiles"`
	Skipped             []SkippedIdentity               `json:"skipped,omitempty"`
	Unmatchable         int                             `json:"unmatchable"`
	DroppedTransactions int                             `json:"dropped_transactions"`
}

// PlatformDirectory supplies per-platform labels and the metadata key that
// carries each platform's engagement metric.
type PlatformDirectory interface {
	EngagementKey(platform string) string
	DisplayName(platform string) string
}

// Engine runs the full resolve → aggregate → score → classify → derive chain
// as a single-threaded batch pass. It holds no mutable state between runs;
// two engines given the same inputs, the same clock and the same directory
// produce identical output.
type Engine struct {
	log       *logger.Logger
	resolver  *Resolver
	now       func() time.Time
	platforms PlatformDirectory
}

func NewEngine(baseLog *logger.Logger) *Engine {
	return &Engine{
		log:      baseLog.With("component", "IdentityEngine"),
		resolver: NewResolver(baseLog),
		now:      time.Now,
	}
}

// SetClock pins the engine's notion of now. Recency windows, tenure bonuses
// and churn buckets all derive from this single timestamp.
func (e *Engine) SetClock(now func() time.Time) {
	if now != nil {
		e.now = now
	}
}

// SetPlatformDirectory attaches the connector registry. Without one, every
// platform reads its engagement metric from the default metadata key and
// snapshots are labeled with the raw platform name.
func (e *Engine) SetPlatformDirectory(d PlatformDirectory) {
	e.platforms = d
}

// ResolveAndScore is the engine's sole entry point. Unmatchable records and
// orphaned transactions are counted, not errors; a group whose metadata
// cannot be scored is skipped and reported without aborting the batch.
func (e *Engine) ResolveAndScore(ctx context.Context, records []types.RawPlatformRecord, transactions []types.RawTransaction) *BatchResult {
	_, span := otel.Tracer("identity-engine").Start(ctx, "engine.resolve_and_score")
	defer span.End()
	span.SetAttributes(
		attribute.Int("records.in", len(records)),
		attribute.Int("transactions.in", len(transactions)),
	)

	now := e.now()

	groups, stats := e.resolver.Resolve(records, transactions)

	result := &BatchResult{
		Profiles:            make([]*types.UnifiedCustomerProfile, 0, len(groups)),
		Unmatchable:         stats.Unmatchable,
		DroppedTransactions: stats.DroppedTransactions,
	}

	for _, g := range groups {
		profile, err := e.buildProfile(g, now)
		if err != nil {
			e.log.Warn("identity skipped", "email", g.Email, "error", err)
			result.Skipped = append(result.Skipped, SkippedIdentity{Email: g.Email, Reason: err.Error()})
			continue
		}
		result.Profiles = append(result.Profiles, profile)
	}

	span.SetAttributes(
		attribute.Int("profiles.out", len(result.Profiles)),
		attribute.Int("identities.skipped", len(result.Skipped)),
		attribute.Int("records.unmatchable", result.Unmatchable),
	)
	e.log.Info("batch resolved",
		"records_in", len(records),
		"transactions_in", len(transactions),
		"profiles_out", len(result.Profiles),
		"unmatchable", result.Unmatchable,
		"skipped", len(result.Skipped),
		"dropped_transactions", result.DroppedTransactions)

	return result
}

func (e *Engine) buildProfile(g Group, now time.Time) (*types.UnifiedCustomerProfile, error) {
	agg := BuildAggregate(g)

	var keyFor func(string) string
	if e.platforms != nil {
		keyFor = e.platforms.EngagementKey
	}
	engagement, err := EngagementScore(agg.Records, agg.Transactions, now, keyFor)
	if err != nil {
		return nil, err
	}
	frequency := PurchaseFrequencyScore(agg.TotalOrders, agg.FirstSeen, now)
	loyalty := LoyaltyScore(len(agg.Platforms), agg.TotalSpent, agg.FirstSeen, now)

	recent := CountRecentTransactions(agg.Transactions, now)

	value := ClassifyCustomerValue(agg.TotalSpent, agg.TotalOrders)
	risk := ClassifyChurnRisk(agg.LastActivity, engagement, now)
	intent := ClassifyPurchaseIntent(recent, engagement)

	firstSeen := now
	if agg.FirstSeen != nil {
		firstSeen = *agg.FirstSeen
	}

	for platform, snap := range agg.PlatformData {
		snap.DisplayName = platform
		if e.platforms != nil {
			snap.DisplayName = e.platforms.DisplayName(platform)
		}
		agg.PlatformData[platform] = snap
	}

	return &types.UnifiedCustomerProfile{
		CustomerID:              types.ProfileIDForEmail(agg.Email),
		Email:                   agg.Email,
		Name:                    agg.PrimaryRecord.Name,
		PlatformsActive:         agg.Platforms,
		TotalSpentAllPlatforms:  agg.TotalSpent,
		TotalOrdersAllPlatforms: agg.TotalOrders,
		FirstSeenDate:           firstSeen,
		LastActivityDate:        agg.LastActivity,
		PurchaseFrequencyScore:  frequency,
		EngagementScore:         engagement,
		LoyaltyScore:            loyalty,
		CustomerValueTier:       value,
		ChurnRiskLevel:          risk,
		PurchaseIntent:          intent,
		PlatformData:            types.NewPlatformData(agg.PlatformData),
		BehavioralPatterns:      DeriveBehavioralPatterns(agg, recent),
		PredictedActions:        DerivePredictedActions(value, risk, intent),
		RecommendedStrategies:   DeriveRecommendedStrategies(value, risk, len(agg.Platforms)),
	}, nil
}
