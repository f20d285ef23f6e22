package types

import (
	"fmt"
	"time"
)

// RawPlatformRecord is one (platform, customer) pair as exported by a
// connector. Records are immutable once constructed; all defaulting of
// missing connector fields happens in ParseRawPlatformRecord, never in the
// scoring or classification code downstream.
type RawPlatformRecord struct {
	PlatformName       string                 `json:"platform_name"`
	PlatformCustomerID string                 `json:"platform_customer_id"`
	Email              string                 `json:"email"`
	Name               string                 `json:"name"`
	CreatedDate        *time.Time             `json:"created_date,omitempty"`
	TotalSpent         float64                `json:"total_spent"`
	TotalOrders        int                    `json:"total_orders"`
	LastOrderDate      *time.Time             `json:"last_order_date,omitempty"`
	Status             string                 `json:"status"`
	Metadata           map[string]interface{} `json:"metadata"`
}

// RawTransaction references its owning record through the connector's
// universal customer id, not through the email join key.
type RawTransaction struct {
	PlatformName    string    `json:"platform_name"`
	CustomerID      string    `json:"customer_id"`
	Amount          float64   `json:"amount"`
	TransactionDate time.Time `json:"transaction_date"`
}

// RawPlatformRecordInput is the untrusted connector payload shape.
type RawPlatformRecordInput struct {
	PlatformName       string                 `json:"platform_name"`
	PlatformCustomerID string                 `json:"platform_customer_id"`
	Email              string                 `json:"email"`
	Name               string                 `json:"name"`
	CreatedDate        *time.Time             `json:"created_date"`
	TotalSpent         *float64               `json:"total_spent"`
	TotalOrders        *int                   `json:"total_orders"`
	LastOrderDate      *time.Time             `json:"last_order_date"`
	Status             string                 `json:"status"`
	Metadata           map[string]interface{} `json:"metadata"`
}

type RawTransactionInput struct {
	PlatformName    string     `json:"platform_name"`
	CustomerID      string     `json:"customer_id"`
	Amount          *float64   `json:"amount"`
	TransactionDate *time.Time `json:"transaction_date"`
}

// ParseRawPlatformRecord is the single validated construction step for
// connector records. Missing numerics default to 0, negative totals are
// clamped to 0, missing dates stay nil.
func ParseRawPlatformRecord(in RawPlatformRecordInput) (RawPlatformRecord, error) {
	if in.PlatformName == "" {
		return RawPlatformRecord{}, fmt.Errorf("raw platform record missing platform_name")
	}
	if in.PlatformCustomerID == "" {
		return RawPlatformRecord{}, fmt.Errorf("raw platform record missing platform_customer_id (platform=%s)", in.PlatformName)
	}
	rec := RawPlatformRecord{
		PlatformName:       in.PlatformName,
		PlatformCustomerID: in.PlatformCustomerID,
		Email:              in.Email,
		Name:               in.Name,
		CreatedDate:        in.CreatedDate,
		LastOrderDate:      in.LastOrderDate,
		Status:             in.Status,
		Metadata:           in.Metadata,
	}
	if in.TotalSpent != nil && *in.TotalSpent > 0 {
		rec.TotalSpent = *in.TotalSpent
	}
	if in.TotalOrders != nil && *in.TotalOrders > 0 {
		rec.TotalOrders = *in.TotalOrders
	}
	if rec.Status == "" {
		rec.Status = "unknown"
	}
	if rec.Metadata == nil {
		rec.Metadata = map[string]interface{}{}
	}
	return rec, nil
}

func ParseRawTransaction(in RawTransactionInput) (RawTransaction, error) {
	if in.PlatformName == "" {
		return RawTransaction{}, fmt.Errorf("raw transaction missing platform_name")
	}
	if in.CustomerID == "" {
		return RawTransaction{}, fmt.Errorf("raw transaction missing customer_id (platform=%s)", in.PlatformName)
	}
	if in.TransactionDate == nil {
		return RawTransaction{}, fmt.Errorf("raw transaction missing transaction_date (platform=%s customer=%s)", in.PlatformName, in.CustomerID)
	}
	tx := RawTransaction{
		PlatformName:    in.PlatformName,
		CustomerID:      in.CustomerID,
		TransactionDate: *in.TransactionDate,
	}
	if in.Amount != nil && *in.Amount > 0 {
		tx.Amount = *in.Amount
	}
	return tx, nil
}
