package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one order line item of the denormalized dataset.
type Transaction struct {
	OrderID             string
	CustomerID          string
	CustomerCode        string
	PurchasedAt         time.Time
	ApprovedAt          *time.Time
	EstimatedDeliveryAt *time.Time
	Status              string
	PaymentValue        decimal.Decimal
	Quantity            int
	ProductCategory     string
	ReviewScore         *int
}

const StatusDelivered = "delivered"

type MonthlyBucket struct {
	Month      time.Time       `json:"month"`
	Label      string          `json:"label"`
	OrderCount int             `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type CategorySummary struct {
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

type StatusSummary struct {
	Status        string `json:"order_status"`
	CustomerCount int    `json:"customer_count"`
}

// CustomerRFM holds one customer's recency, frequency and monetary values.
// Recency is nil when none of the customer's rows carry an approval time.
type CustomerRFM struct {
	CustomerCode string          `json:"no_customer"`
	Recency      *int            `json:"recency"`
	Frequency    int             `json:"frequency"`
	Monetary     decimal.Decimal `json:"monetary"`
}

type RatingSummary struct {
	ReviewScore   int `json:"review_score"`
	CustomerCount int `json:"customer_count"`
}
