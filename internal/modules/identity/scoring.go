package identity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/yungbote/customerbridge-backend/internal/types"
)

const recentActivityWindow = 30 * 24 * time.Hour

// defaultEngagementKey is the metadata key connectors use for their
// engagement metric unless the platform registry declares another one.
const defaultEngagementKey = "engagement_score"

// PurchaseFrequencyScore buckets how often the customer orders, normalized to
// orders per month over their active lifetime. A customer with no known start
// date lands on the neutral midpoint.
func PurchaseFrequencyScore(totalOrders int, firstSeen *time.Time, now time.Time) int {
	if firstSeen == nil {
		return 50
	}
	daysActive := now.Sub(*firstSeen).Hours() / 24
	if daysActive < 1 {
		daysActive = 1
	}
	ordersPerMonth := float64(totalOrders) / daysActive * 30

	switch {
	case ordersPerMonth >= 2:
		return 100
	case ordersPerMonth >= 1:
		return 80
	case ordersPerMonth >= 0.5:
		return 60
	case ordersPerMonth >= 0.25:
		return 40
	default:
		return 20
	}
}

// EngagementScore averages the per-platform engagement metric, then boosts
// for recent transactions and platform diversity. keyFor resolves which
// metadata key carries the metric for a platform; nil means every platform
// uses the default key. A record carrying a non-numeric engagement metric
// makes the whole identity uncomputable; that is a per-identity failure, not
// a default.
func EngagementScore(records []types.RawPlatformRecord, transactions []types.RawTransaction, now time.Time, keyFor func(platform string) string) (int, error) {
	if len(records) == 0 {
		return 0, fmt.Errorf("engagement score requires at least one record")
	}

	var base float64
	for _, rec := range records {
		key := defaultEngagementKey
		if keyFor != nil {
			if k := keyFor(rec.PlatformName); k != "" {
				key = k
			}
		}
		v, ok := rec.Metadata[key]
		if !ok {
			base += 50
			continue
		}
		f, err := toFloat(v)
		if err != nil {
			return 0, fmt.Errorf("record %s/%s: malformed %s metadata: %w",
				rec.PlatformName, rec.PlatformCustomerID, key, err)
		}
		base += f
	}
	base /= float64(len(records))

	recent := CountRecentTransactions(transactions, now)
	recencyBoost := recent * 10
	if recencyBoost > 30 {
		recencyBoost = 30
	}

	platforms := make(map[string]struct{}, len(records))
	for _, rec := range records {
		platforms[rec.PlatformName] = struct{}{}
	}
	diversityBoost := len(platforms) * 5

	return clampScore(int(base) + recencyBoost + diversityBoost), nil
}

// LoyaltyScore rewards platform breadth, lifetime spend and tenure.
func LoyaltyScore(platformCount int, totalSpent float64, firstSeen *time.Time, now time.Time) int {
	platformBonus := platformCount * 15
	if platformBonus > 30 {
		platformBonus = 30
	}
	score := 50 + platformBonus

	switch {
	case totalSpent > 10000:
		score += 30
	case totalSpent > 5000:
		score += 20
	case totalSpent > 1000:
		score += 10
	}

	if firstSeen != nil {
		daysActive := now.Sub(*firstSeen).Hours() / 24
		switch {
		case daysActive > 365:
			score += 20
		case daysActive > 180:
			score += 10
		}
	}

	return clampScore(score)
}

// CountRecentTransactions counts transactions inside the 30-day activity
// window ending at now.
func CountRecentTransactions(transactions []types.RawTransaction, now time.Time) int {
	count := 0
	cutoff := now.Add(-recentActivityWindow)
	for _, tx := range transactions {
		if !tx.TransactionDate.Before(cutoff) && !tx.TransactionDate.After(now) {
			count++
		}
	}
	return count
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func toFloat(v interface{}) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case json.Number:
		return t.Float64()
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}
