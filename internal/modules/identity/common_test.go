package identity

import (
	"testing"
	"time"

	"github.com/yungbote/customerbridge-backend/internal/logger"
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

func tp(t time.Time) *time.Time { return &t }

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time { return testNow.AddDate(0, 0, -d) }

func record(platform, id, email string, spent float64, orders int, opts ...func(*types.RawPlatformRecord)) types.RawPlatformRecord {
	rec := types.RawPlatformRecord{
		PlatformName:       platform,
		PlatformCustomerID: id,
		Email:              email,
		TotalSpent:         spent,
		TotalOrders:        orders,
		Status:             "active",
		Metadata:           map[string]interface{}{},
	}
	for _, opt := range opts {
		opt(&rec)
	}
	return rec
}

func withCreated(t time.Time) func(*types.RawPlatformRecord) {
	return func(r *types.RawPlatformRecord) { r.CreatedDate = &t }
}

func withLastOrder(t time.Time) func(*types.RawPlatformRecord) {
	return func(r *types.RawPlatformRecord) { r.LastOrderDate = &t }
}

func withEngagement(v interface{}) func(*types.RawPlatformRecord) {
	return func(r *types.RawPlatformRecord) {
		r.Metadata = map[string]interface{}{"engagement_score": v}
	}
}

func withMetadata(m map[string]interface{}) func(*types.RawPlatformRecord) {
	return func(r *types.RawPlatformRecord) { r.Metadata = m }
}

func withName(name string) func(*types.RawPlatformRecord) {
	return func(r *types.RawPlatformRecord) { r.Name = name }
}

func transaction(platform, customerID string, amount float64, at time.Time) types.RawTransaction {
	return types.RawTransaction{
		PlatformName:    platform,
		CustomerID:      customerID,
		Amount:          amount,
		TransactionDate: at,
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(testLogger(t))
	e.SetClock(func() time.Time { return testNow })
	return e
}
