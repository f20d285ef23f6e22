package identity

import (
	"time"

	"github.com/yungbote/customerbridge-backend/internal/types"
)

// ClassifyCustomerValue tiers the customer by lifetime spend and order count.
func ClassifyCustomerValue(totalSpent float64, totalOrders int) types.CustomerValue {
	switch {
	case totalSpent > 20000 || totalOrders > 50:
		return types.CustomerValueVIP
	case totalSpent > 10000 || totalOrders > 20:
		return types.CustomerValueHigh
	case totalSpent > 2000 || totalOrders > 5:
		return types.CustomerValueMedium
	default:
		return types.CustomerValueLow
	}
}

// ClassifyChurnRisk maps last activity recency and engagement to a risk
// level. A customer with no recorded activity at all is HIGH, never LOW. The
// critical clause runs before the milder buckets, so a very stale or very
// disengaged customer is CRITICAL even when the other signal looks healthy.
func ClassifyChurnRisk(lastActivity *time.Time, engagementScore int, now time.Time) types.ChurnRisk {
	if lastActivity == nil {
		return types.ChurnRiskHigh
	}
	days := now.Sub(*lastActivity).Hours() / 24
	switch {
	case days > 365 || engagementScore < 30:
		return types.ChurnRiskCritical
	case days > 180 || engagementScore < 50:
		return types.ChurnRiskHigh
	case days > 90 || engagementScore < 70:
		return types.ChurnRiskMedium
	default:
		return types.ChurnRiskLow
	}
}

// ClassifyPurchaseIntent combines recent transaction volume with engagement.
func ClassifyPurchaseIntent(recentTransactions int, engagementScore int) types.PurchaseIntent {
	switch {
	case recentTransactions > 2 && engagementScore > 80:
		return types.PurchaseIntentReady
	case recentTransactions > 0 && engagementScore > 60:
		return types.PurchaseIntentHot
	case engagementScore > 40:
		return types.PurchaseIntentWarm
	default:
		return types.PurchaseIntentCold
	}
}
