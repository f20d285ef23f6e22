package identity

import (
	"math"

	"github.com/yungbote/customerbridge-backend/internal/types"
)

const (
	maxBehavioralPatterns    = 5
	maxPredictedActions      = 3
	maxRecommendedStrategies = 4
)

// DeriveBehavioralPatterns produces up to five rule-derived tags. Rules are
// evaluated in a fixed order and the first matching tag of each family wins.
func DeriveBehavioralPatterns(agg Aggregate, recentTransactions int) []string {
	patterns := make([]string, 0, maxBehavioralPatterns)

	if len(agg.Platforms) > 1 {
		patterns = append(patterns, "Multi-platform user")
	}

	if agg.TotalSpent > 10000 {
		patterns = append(patterns, "High-value customer")
	} else if agg.TotalSpent > 5000 {
		patterns = append(patterns, "Premium customer")
	}

	if agg.TotalOrders > 20 {
		patterns = append(patterns, "Frequent buyer")
	} else if agg.TotalOrders > 10 {
		patterns = append(patterns, "Regular customer")
	}

	if recentTransactions > 2 {
		patterns = append(patterns, "Highly active")
	} else if recentTransactions > 0 {
		patterns = append(patterns, "Recently active")
	}

	if isConsistentSpender(agg.Transactions) {
		patterns = append(patterns, "Consistent spender")
	}

	if len(patterns) > maxBehavioralPatterns {
		patterns = patterns[:maxBehavioralPatterns]
	}
	return patterns
}

// isConsistentSpender holds when, across more than five transactions, over
// 70% of amounts fall within 30% of the mean amount.
func isConsistentSpender(transactions []types.RawTransaction) bool {
	if len(transactions) <= 5 {
		return false
	}
	var sum float64
	for _, tx := range transactions {
		sum += tx.Amount
	}
	mean := sum / float64(len(transactions))
	if mean == 0 {
		return false
	}
	within := 0
	for _, tx := range transactions {
		if math.Abs(tx.Amount-mean) <= 0.3*mean {
			within++
		}
	}
	return float64(within)/float64(len(transactions)) > 0.7
}

// DerivePredictedActions turns the classification into up to three concrete
// expectations, ordered intent, risk, value, growth.
func DerivePredictedActions(value types.CustomerValue, risk types.ChurnRisk, intent types.PurchaseIntent) []string {
	actions := make([]string, 0, maxPredictedActions)

	switch intent {
	case types.PurchaseIntentReady:
		actions = append(actions, "Likely to purchase within 7 days")
	case types.PurchaseIntentHot:
		actions = append(actions, "Likely to purchase within 30 days")
	}

	switch risk {
	case types.ChurnRiskCritical:
		actions = append(actions, "At risk of churning within 30 days")
	case types.ChurnRiskHigh:
		actions = append(actions, "May reduce activity in 60 days")
	}

	if value == types.CustomerValueHigh || value == types.CustomerValueVIP {
		actions = append(actions, "Good candidate for premium offerings")
		actions = append(actions, "Likely to respond to personalized outreach")
	}

	if value == types.CustomerValueLow &&
		(intent == types.PurchaseIntentWarm || intent == types.PurchaseIntentHot) {
		actions = append(actions, "Ready for upselling")
	}

	if len(actions) > maxPredictedActions {
		actions = actions[:maxPredictedActions]
	}
	return actions
}

// DeriveRecommendedStrategies maps the classification to up to four outreach
// strategies, risk first so retention always outranks growth plays.
func DeriveRecommendedStrategies(value types.CustomerValue, risk types.ChurnRisk, platformCount int) []string {
	strategies := make([]string, 0, maxRecommendedStrategies)

	if risk == types.ChurnRiskHigh || risk == types.ChurnRiskCritical {
		strategies = append(strategies, "Launch retention campaign")
		strategies = append(strategies, "Schedule personal outreach")
		strategies = append(strategies, "Offer a special incentive")
	}

	switch value {
	case types.CustomerValueVIP:
		strategies = append(strategies, "Provide VIP treatment")
		strategies = append(strategies, "Assign dedicated account manager")
	case types.CustomerValueHigh:
		strategies = append(strategies, "Send premium product recommendations")
		strategies = append(strategies, "Enroll in loyalty program")
	}

	if value == types.CustomerValueLow || value == types.CustomerValueMedium {
		strategies = append(strategies, "Send educational content")
		strategies = append(strategies, "Promote feature adoption")
	}

	if platformCount > 1 {
		strategies = append(strategies, "Optimize cross-platform experience")
		strategies = append(strategies, "Recommend integrated workflows")
	}

	if len(strategies) > maxRecommendedStrategies {
		strategies = strategies[:maxRecommendedStrategies]
	}
	return strategies
}
