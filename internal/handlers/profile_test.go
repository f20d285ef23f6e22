package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/customerbridge-backend/internal/services"
	"github.com/yungbote/customerbridge-backend/internal/types"
)

type stubProfileService struct {
	profiles map[string]*types.UnifiedCustomerProfile
}

func (s *stubProfileService) GetByEmail(ctx context.Context, email string) (*types.UnifiedCustomerProfile, error) {
	p, ok := s.profiles[email]
	if !ok {
		return nil, services.ErrProfileNotFound
	}
	return p, nil
}

func (s *stubProfileService) List(ctx context.Context, limit, offset int) ([]*types.UnifiedCustomerProfile, int64, error) {
	var out []*types.UnifiedCustomerProfile
	for _, p := range s.profiles {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

type stubInsightService struct{}

func (s *stubInsightService) GetInsight(ctx context.Context, email string) (*services.Insight, error) {
	return &services.Insight{Email: email, Narrative: "narrative", Source: "rules"}, nil
}

func newProfileRouter(t *testing.T, svc services.ProfileService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewProfileHandler(testLogger(t), svc, &stubInsightService{})
	r.GET("/api/profiles", h.ListProfiles)
	r.GET("/api/profiles/:email", h.GetProfile)
	r.GET("/api/profiles/:email/insight", h.GetProfileInsight)
	return r
}

func TestGetProfileFound(t *testing.T) {
	svc := &stubProfileService{profiles: map[string]*types.UnifiedCustomerProfile{
		"a@example.com": {Email: "a@example.com", CustomerValueTier: types.CustomerValueHigh},
	}}
	r := newProfileRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profiles/a@example.com", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body struct {
		Profile types.UnifiedCustomerProfile `json:"profile"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if body.Profile.CustomerValueTier != types.CustomerValueHigh {
		t.Fatalf("tier=%s, want high", body.Profile.CustomerValueTier)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	r := newProfileRouter(t, &stubProfileService{profiles: map[string]*types.UnifiedCustomerProfile{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profiles/missing@example.com", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
}

func TestListProfiles(t *testing.T) {
	svc := &stubProfileService{profiles: map[string]*types.UnifiedCustomerProfile{
		"a@example.com": {Email: "a@example.com"},
		"b@example.com": {Email: "b@example.com"},
	}}
	r := newProfileRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profiles?limit=10", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body struct {
		Profiles []types.UnifiedCustomerProfile `json:"profiles"`
		Total    int64                          `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if len(body.Profiles) != 2 || body.Total != 2 {
		t.Fatalf("profiles=%d total=%d, want 2/2", len(body.Profiles), body.Total)
	}
}

func TestGetProfileInsight(t *testing.T) {
	svc := &stubProfileService{profiles: map[string]*types.UnifiedCustomerProfile{
		"a@example.com": {Email: "a@example.com"},
	}}
	r := newProfileRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profiles/a@example.com/insight", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body struct {
		Insight services.Insight `json:"insight"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if body.Insight.Source != "rules" {
		t.Fatalf("source=%s, want rules", body.Insight.Source)
	}
}
