package identity

import (
	"sort"

	"github.com/yungbote/customerbridge-backend/internal/logger"
	"github.com/yungbote/customerbridge-backend/internal/normalization"
	"github.com/yungbote/customerbridge-backend/internal/types"
)

// Group is one identity candidate: every raw record and transaction that
// resolved to the same normalized email.
type Group struct {
	Email        string
	Records      []types.RawPlatformRecord
	Transactions []types.RawTransaction
}

// ResolveStats reports what fell out of resolution without being an error:
// records with no usable email and transactions whose owner is unknown.
type ResolveStats struct {
	Unmatchable         int
	DroppedTransactions int
}

type Resolver struct {
	log *logger.Logger
}

func NewResolver(baseLog *logger.Logger) *Resolver {
	return &Resolver{log: baseLog.With("component", "IdentityResolver")}
}

// Resolve groups records by normalized email and attaches transactions by
// resolving their customer_id through the owning record's platform id to that
// record's email. Groups come back sorted by email so downstream output is
// stable across runs.
func (r *Resolver) Resolve(records []types.RawPlatformRecord, transactions []types.RawTransaction) ([]Group, ResolveStats) {
	var stats ResolveStats

	groups := make(map[string]*Group)
	ownerEmail := make(map[string]string)

	for _, rec := range records {
		email := normalization.NormalizeEmail(rec.Email)
		if email == "" {
			stats.Unmatchable++
			r.log.Warn("record unmatchable, excluded from resolution",
				"platform", rec.PlatformName,
				"platform_customer_id", rec.PlatformCustomerID)
			continue
		}
		g, ok := groups[email]
		if !ok {
			g = &Group{Email: email}
			groups[email] = g
		}
		g.Records = append(g.Records, rec)
		ownerEmail[ownerKey(rec.PlatformName, rec.PlatformCustomerID)] = email
	}

	for _, tx := range transactions {
		email, ok := ownerEmail[ownerKey(tx.PlatformName, tx.CustomerID)]
		if !ok {
			stats.DroppedTransactions++
			r.log.Debug("transaction owner not resolvable, dropped",
				"platform", tx.PlatformName,
				"customer_id", tx.CustomerID)
			continue
		}
		g := groups[email]
		g.Transactions = append(g.Transactions, tx)
	}

	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, stats
}

func ownerKey(platform, customerID string) string {
	return platform + "\x00" + customerID
}
