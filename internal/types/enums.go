package types

type CustomerValue string

const (
	CustomerValueVIP    CustomerValue = "vip"
	CustomerValueHigh   CustomerValue = "high"
	CustomerValueMedium CustomerValue = "medium"
	CustomerValueLow    CustomerValue = "low"
)

func (v CustomerValue) Valid() bool {
	switch v {
	case CustomerValueVIP, CustomerValueHigh, CustomerValueMedium, CustomerValueLow:
		return true
	}
	return false
}

type ChurnRisk string

const (
	ChurnRiskLow      ChurnRisk = "low"
	ChurnRiskMedium   ChurnRisk = "medium"
	ChurnRiskHigh     ChurnRisk = "high"
	ChurnRiskCritical ChurnRisk = "critical"
)

func (r ChurnRisk) Valid() bool {
	switch r {
	case ChurnRiskLow, ChurnRiskMedium, ChurnRiskHigh, ChurnRiskCritical:
		return true
	}
	return false
}

type PurchaseIntent string

const (
	PurchaseIntentReady PurchaseIntent = "ready"
	PurchaseIntentHot   PurchaseIntent = "hot"
	PurchaseIntentWarm  PurchaseIntent = "warm"
	PurchaseIntentCold  PurchaseIntent = "cold"
)

func (p PurchaseIntent) Valid() bool {
	switch p {
	case PurchaseIntentReady, PurchaseIntentHot, PurchaseIntentWarm, PurchaseIntentCold:
		return true
	}
	return false
}
