package identity

import (
	"sort"
	"time"

	"github.com/yungbote/customerbridge-backend/internal/types"
)

// Aggregate is the reduced view of one group: everything scoring and
// classification need, computed in a single pass over the raw records.
type Aggregate struct {
	Email         string
	PrimaryRecord types.RawPlatformRecord
	TotalSpent    float64
	TotalOrders   int
	FirstSeen     *time.Time
	LastActivity  *time.Time
	Platforms     []string
	PlatformData  map[string]types.PlatformSnapshot
	Records       []types.RawPlatformRecord
	Transactions  []types.RawTransaction
}

// BuildAggregate reduces a group into summary statistics. The primary record
// is the highest spender, with ties broken by platform name then platform
// customer id so repeated runs always pick the same one.
func BuildAggregate(g Group) Aggregate {
	agg := Aggregate{
		Email:        g.Email,
		Records:      g.Records,
		Transactions: g.Transactions,
		PlatformData: make(map[string]types.PlatformSnapshot, len(g.Records)),
	}

	platformSet := make(map[string]struct{}, len(g.Records))

	for i, rec := range g.Records {
		if i == 0 || primaryLess(agg.PrimaryRecord, rec) {
			agg.PrimaryRecord = rec
		}
		agg.TotalSpent += rec.TotalSpent
		agg.TotalOrders += rec.TotalOrders

		if rec.CreatedDate != nil {
			if agg.FirstSeen == nil || rec.CreatedDate.Before(*agg.FirstSeen) {
				d := *rec.CreatedDate
				agg.FirstSeen = &d
			}
		}
		if rec.LastOrderDate != nil {
			if agg.LastActivity == nil || rec.LastOrderDate.After(*agg.LastActivity) {
				d := *rec.LastOrderDate
				agg.LastActivity = &d
			}
		}

		platformSet[rec.PlatformName] = struct{}{}
		// Last writer wins when a platform shows up twice in one group.
		agg.PlatformData[rec.PlatformName] = types.PlatformSnapshot{
			PlatformCustomerID: rec.PlatformCustomerID,
			TotalSpent:         rec.TotalSpent,
			TotalOrders:        rec.TotalOrders,
			LastOrderDate:      rec.LastOrderDate,
			Status:             rec.Status,
			Metadata:           rec.Metadata,
		}
	}

	for _, tx := range g.Transactions {
		if agg.LastActivity == nil || tx.TransactionDate.After(*agg.LastActivity) {
			d := tx.TransactionDate
			agg.LastActivity = &d
		}
	}

	agg.Platforms = make([]string, 0, len(platformSet))
	for p := range platformSet {
		agg.Platforms = append(agg.Platforms, p)
	}
	sort.Strings(agg.Platforms)

	return agg
}

// primaryLess reports whether candidate should replace current as the
// primary record.
func primaryLess(current, candidate types.RawPlatformRecord) bool {
	if candidate.TotalSpent != current.TotalSpent {
		return candidate.TotalSpent > current.TotalSpent
	}
	if candidate.PlatformName != current.PlatformName {
		return candidate.PlatformName < current.PlatformName
	}
	return candidate.PlatformCustomerID < current.PlatformCustomerID
}
