package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/customerbridge-backend/internal/handlers"
	"github.com/yungbote/customerbridge-backend/internal/logger"
	"github.com/yungbote/customerbridge-backend/internal/services"
	"github.com/yungbote/customerbridge-backend/internal/types"
)

type noopSyncService struct{}

func (noopSyncService) RunBatch(ctx context.Context, records []types.RawPlatformRecord, transactions []types.RawTransaction) (*services.SyncReport, error) {
	return &services.SyncReport{Run: &types.SyncRun{}}, nil
}

func (noopSyncService) GetRecentRuns(ctx context.Context, limit int) ([]*types.SyncRun, error) {
	return nil, nil
}

type noopProfileService struct{}

func (noopProfileService) GetByEmail(ctx context.Context, email string) (*types.UnifiedCustomerProfile, error) {
	return nil, services.ErrProfileNotFound
}

func (noopProfileService) List(ctx context.Context, limit, offset int) ([]*types.UnifiedCustomerProfile, int64, error) {
	return nil, 0, nil
}

type noopInsightService struct{}

func (noopInsightService) GetInsight(ctx context.Context, email string) (*services.Insight, error) {
	return nil, services.ErrProfileNotFound
}

func newTestRouter(t *testing.T, origins []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return NewRouter(RouterConfig{
		AllowedOrigins: origins,
		SyncHandler:    handlers.NewSyncHandler(log, noopSyncService{}, nil),
		ProfileHandler: handlers.NewProfileHandler(log, noopProfileService{}, noopInsightService{}),
	})
}

func TestRouterCORSAllowsConfiguredOrigin(t *testing.T) {
	r := newTestRouter(t, []string{"https://app.example.com"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/profiles", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("Access-Control-Allow-Origin=%q, want configured origin", got)
	}
}

func TestRouterCORSRejectsOtherOrigin(t *testing.T) {
	r := newTestRouter(t, []string{"https://app.example.com"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/profiles", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("Access-Control-Allow-Origin=%q for disallowed origin", got)
	}
}

func TestRouterCORSDefaultsWhenUnconfigured(t *testing.T) {
	r := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/profiles", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("Access-Control-Allow-Origin=%q, want localhost default", got)
	}
}
