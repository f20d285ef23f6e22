package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/customerbridge-backend/internal/logger"
	"github.com/yungbote/customerbridge-backend/internal/types"
)

// NarrativeEnricher layers free-text insight on top of a unified profile.
// It is strictly an enrichment: the deterministic rule output is the system
// of record, and every implementation failure degrades to it.
type NarrativeEnricher interface {
	EnrichProfile(ctx context.Context, profile *types.UnifiedCustomerProfile) (string, error)
}

type Insight struct {
	Email     string `json:"email"`
	Narrative string `json:"narrative"`
	// Source is "model" when an external model produced the narrative and
	// "rules" when it is the deterministic fallback.
	Source string `json:"source"`
}

type InsightService interface {
	GetInsight(ctx context.Context, email string) (*Insight, error)
}

type insightService struct {
	log      *logger.Logger
	profiles ProfileService
	enricher NarrativeEnricher
	timeout  time.Duration
}

func NewInsightService(baseLog *logger.Logger, profiles ProfileService, enricher NarrativeEnricher) InsightService {
	return &insightService{
		log:      baseLog.With("service", "InsightService"),
		profiles: profiles,
		enricher: enricher,
		timeout:  20 * time.Second,
	}
}

func (s *insightService) GetInsight(ctx context.Context, email string) (*Insight, error) {
	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if s.enricher != nil {
		enrichCtx, cancel := context.WithTimeout(ctx, s.timeout)
		narrative, enrichErr := s.enricher.EnrichProfile(enrichCtx, profile)
		cancel()
		if enrichErr == nil && strings.TrimSpace(narrative) != "" {
			return &Insight{Email: profile.Email, Narrative: narrative, Source: "model"}, nil
		}
		s.log.Warn("narrative enrichment failed, using deterministic fallback",
			"email", profile.Email, "error", enrichErr)
	}

	return &Insight{
		Email:     profile.Email,
		Narrative: DeterministicNarrative(profile),
		Source:    "rules",
	}, nil
}

// DeterministicNarrative renders the rule-derived classification as text.
// Same profile in, same text out.
func DeterministicNarrative(p *types.UnifiedCustomerProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s is a %s-value customer with %s churn risk and %s purchase intent.",
		displayName(p), p.CustomerValueTier, p.ChurnRiskLevel, p.PurchaseIntent)
	fmt.Fprintf(&b, " Lifetime: %.2f spent across %d orders on %d platform(s).",
		p.TotalSpentAllPlatforms, p.TotalOrdersAllPlatforms, len(p.PlatformsActive))

	if len(p.BehavioralPatterns) > 0 {
		fmt.Fprintf(&b, " Patterns: %s.", strings.Join(p.BehavioralPatterns, "; "))
	}
	if len(p.PredictedActions) > 0 {
		fmt.Fprintf(&b, " Expected: %s.", strings.Join(p.PredictedActions, "; "))
	}
	if len(p.RecommendedStrategies) > 0 {
		fmt.Fprintf(&b, " Recommended: %s.", strings.Join(p.RecommendedStrategies, "; "))
	}
	return b.String()
}

func displayName(p *types.UnifiedCustomerProfile) string {
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}

// openAIEnricher asks the model to narrate the profile. Only derived fields
// are sent; raw platform metadata stays local.
type openAIEnricher struct {
	log    *logger.Logger
	client OpenAIClient
}

func NewOpenAIEnricher(baseLog *logger.Logger, client OpenAIClient) NarrativeEnricher {
	return &openAIEnricher{
		log:    baseLog.With("service", "OpenAIEnricher"),
		client: client,
	}
}

func (e *openAIEnricher) EnrichProfile(ctx context.Context, profile *types.UnifiedCustomerProfile) (string, error) {
	payload := map[string]interface{}{
		"customer_value_tier":      profile.CustomerValueTier,
		"churn_risk_level":         profile.ChurnRiskLevel,
		"purchase_intent":          profile.PurchaseIntent,
		"total_spent":              profile.TotalSpentAllPlatforms,
		"total_orders":             profile.TotalOrdersAllPlatforms,
		"platforms_active":         profile.PlatformsActive,
		"purchase_frequency_score": profile.PurchaseFrequencyScore,
		"engagement_score":         profile.EngagementScore,
		"loyalty_score":            profile.LoyaltyScore,
		"behavioral_patterns":      profile.BehavioralPatterns,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	system := "You are a CRM analyst. Write a short, factual narrative (3-4 sentences) " +
		"about this customer for an account manager. Do not invent data beyond the fields given."
	return e.client.GenerateText(ctx, system, string(raw))
}
