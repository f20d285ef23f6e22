package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yungbote/customerbridge-backend/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PLATFORM_REGISTRY_PATH", "")

	reg, err := Load(testLogger(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p, ok := reg.Lookup("stripe")
	if !ok || p.DisplayName != "Stripe" {
		t.Fatalf("stripe lookup=%+v ok=%v", p, ok)
	}
	if _, ok := reg.Lookup("smoke-signals"); ok {
		t.Fatal("undeclared platform should not resolve")
	}
	if reg.DisplayName("smoke-signals") != "smoke-signals" {
		t.Fatal("unknown platforms fall back to their raw name")
	}
	if got := reg.EngagementKey("smoke-signals"); got != "engagement_score" {
		t.Fatalf("EngagementKey for unknown platform=%q, want default", got)
	}
}

func TestLoadFileOverridesAndExtends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "platforms.yaml")
	content := `platforms:
  - name: Stripe
    display_name: Stripe Payments
  - name: bigcommerce
    display_name: BigCommerce
    engagement_key: activity_index
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	t.Setenv("PLATFORM_REGISTRY_PATH", path)

	reg, err := Load(testLogger(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := reg.DisplayName("stripe"); got != "Stripe Payments" {
		t.Fatalf("override failed: %q", got)
	}
	p, ok := reg.Lookup("bigcommerce")
	if !ok || p.EngagementKey != "activity_index" {
		t.Fatalf("extension failed: %+v ok=%v", p, ok)
	}
	if got := reg.EngagementKey("bigcommerce"); got != "activity_index" {
		t.Fatalf("EngagementKey=%q, want activity_index", got)
	}
	// Case-insensitive name in the file; defaulted engagement key.
	stripe, _ := reg.Lookup("stripe")
	if stripe.EngagementKey != "engagement_score" {
		t.Fatalf("engagement key default failed: %q", stripe.EngagementKey)
	}
}

func TestLoadBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("platforms: {not: [valid"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	t.Setenv("PLATFORM_REGISTRY_PATH", path)

	if _, err := Load(testLogger(t)); err == nil {
		t.Fatal("expected parse error for malformed registry file")
	}
}
