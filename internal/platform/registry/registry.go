package registry

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/customerbridge-backend/internal/logger"
)

// Platform describes one known connector source.
type Platform struct {
	Name        string `yaml:"name" json:"name"`
	DisplayName string `yaml:"display_name" json:"display_name"`
	// EngagementKey is the metadata key that platform's connector uses for
	// its engagement metric.
	EngagementKey string `yaml:"engagement_key" json:"engagement_key"`
}

// Registry holds the known connector platforms. Unknown platforms are still
// processed; the registry only drives display labels and a warning when a
// connector nobody declared starts sending records.
type Registry struct {
	log       *logger.Logger
	platforms map[string]Platform
}

func defaultPlatforms() []Platform {
	return []Platform{
		{Name: "stripe", DisplayName: "Stripe", EngagementKey: "engagement_score"},
		{Name: "odoo", DisplayName: "Odoo", EngagementKey: "engagement_score"},
		{Name: "shopify", DisplayName: "Shopify", EngagementKey: "engagement_score"},
		{Name: "woocommerce", DisplayName: "WooCommerce", EngagementKey: "engagement_score"},
	}
}

type registryFile struct {
	Platforms []Platform `yaml:"platforms"`
}

// Load builds the registry from PLATFORM_REGISTRY_PATH when set, falling
// back to the compiled-in defaults. Entries in the file extend or override
// defaults by name.
func Load(baseLog *logger.Logger) (*Registry, error) {
	log := baseLog.With("component", "PlatformRegistry")

	platforms := make(map[string]Platform)
	for _, p := range defaultPlatforms() {
		platforms[p.Name] = p
	}

	path := strings.TrimSpace(os.Getenv("PLATFORM_REGISTRY_PATH"))
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read platform registry: %w", err)
		}
		var file registryFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("parse platform registry: %w", err)
		}
		for _, p := range file.Platforms {
			name := strings.ToLower(strings.TrimSpace(p.Name))
			if name == "" {
				continue
			}
			p.Name = name
			if p.EngagementKey == "" {
				p.EngagementKey = "engagement_score"
			}
			platforms[name] = p
		}
		log.Info("platform registry loaded", "path", path, "platforms", len(platforms))
	}

	return &Registry{log: log, platforms: platforms}, nil
}

// Lookup returns the platform definition and whether it was declared.
func (r *Registry) Lookup(name string) (Platform, bool) {
	p, ok := r.platforms[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// DisplayName returns a human label for any platform, declared or not.
func (r *Registry) DisplayName(name string) string {
	if p, ok := r.Lookup(name); ok {
		return p.DisplayName
	}
	return name
}

// EngagementKey returns the metadata key carrying the platform's engagement
// metric. Undeclared platforms use the common default.
func (r *Registry) EngagementKey(name string) string {
	if p, ok := r.Lookup(name); ok && p.EngagementKey != "" {
		return p.EngagementKey
	}
	return "engagement_score"
}

// WarnUnknown logs once per call for platforms nobody declared.
func (r *Registry) WarnUnknown(names []string) {
	for _, n := range names {
		if _, ok := r.Lookup(n); !ok {
			r.log.Warn("records from undeclared platform", "platform", n)
		}
	}
}
