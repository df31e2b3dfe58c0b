package services

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"ecommerce-dashboard/internal/models"
)

type set map[string]struct{}

func (s set) add(k string) { s[k] = struct{}{} }

// MonthlyTrend buckets records by purchase month. Revenue sums every line
// item; order count is distinct orders. Months without records are omitted.
func MonthlyTrend(records []models.Transaction) []models.MonthlyBucket {
	type bucket struct {
		orders  set
		revenue decimal.Decimal
	}
	groups := make(map[time.Time]*bucket)

	for _, tx := range records {
		month := models.MonthStart(tx.PurchasedAt)
		b := groups[month]
		if b == nil {
			b = &bucket{orders: make(set)}
			groups[month] = b
		}
		b.orders.add(tx.OrderID)
		b.revenue = b.revenue.Add(tx.PaymentValue)
	}

	result := make([]models.MonthlyBucket, 0, len(groups))
	for month, b := range groups {
		result = append(result, models.MonthlyBucket{
			Month:      month,
			Label:      month.Format("2006-01"),
			OrderCount: len(b.orders),
			Revenue:    b.revenue,
		})
	}
	slices.SortFunc(result, func(a, b models.MonthlyBucket) int {
		return a.Month.Compare(b.Month)
	})
	return result
}

// CategoryPerformance sums quantity per category, largest first. Ties keep
// the order in which categories first appear in records.
func CategoryPerformance(records []models.Transaction) []models.CategorySummary {
	index := make(map[string]int)
	result := make([]models.CategorySummary, 0)

	for _, tx := range records {
		i, ok := index[tx.ProductCategory]
		if !ok {
			i = len(result)
			index[tx.ProductCategory] = i
			result = append(result, models.CategorySummary{Category: tx.ProductCategory})
		}
		result[i].Quantity += tx.Quantity
	}

	slices.SortStableFunc(result, func(a, b models.CategorySummary) int {
		return cmp.Compare(b.Quantity, a.Quantity)
	})
	return result
}

// StatusCensus counts distinct customers per order status, ordered by status.
func StatusCensus(records []models.Transaction) []models.StatusSummary {
	groups := make(map[string]set)
	for _, tx := range records {
		customers := groups[tx.Status]
		if customers == nil {
			customers = make(set)
			groups[tx.Status] = customers
		}
		customers.add(tx.CustomerID)
	}

	result := make([]models.StatusSummary, 0, len(groups))
	for status, customers := range groups {
		result = append(result, models.StatusSummary{Status: status, CustomerCount: len(customers)})
	}
	slices.SortFunc(result, func(a, b models.StatusSummary) int {
		return cmp.Compare(a.Status, b.Status)
	})
	return result
}

// CustomerRFM computes recency, frequency and monetary value per customer
// code. Recency is measured in whole days back from the latest approval time
// anywhere in records, not from the current time. Customers without any
// approval time get a nil recency. Rows without a customer code are skipped.
func CustomerRFM(records []models.Transaction) []models.CustomerRFM {
	type acc struct {
		code         string
		orders       set
		monetary     decimal.Decimal
		lastApproved *time.Time
	}

	index := make(map[string]int)
	accs := make([]*acc, 0)
	var latest *time.Time

	for _, tx := range records {
		if tx.CustomerCode == "" {
			continue
		}
		i, ok := index[tx.CustomerCode]
		if !ok {
			i = len(accs)
			index[tx.CustomerCode] = i
			accs = append(accs, &acc{code: tx.CustomerCode, orders: make(set)})
		}
		a := accs[i]
		a.orders.add(tx.OrderID)
		a.monetary = a.monetary.Add(tx.PaymentValue)

		if tx.ApprovedAt != nil {
			if a.lastApproved == nil || tx.ApprovedAt.After(*a.lastApproved) {
				a.lastApproved = tx.ApprovedAt
			}
			if latest == nil || tx.ApprovedAt.After(*latest) {
				latest = tx.ApprovedAt
			}
		}
	}

	result := make([]models.CustomerRFM, 0, len(accs))
	for _, a := range accs {
		row := models.CustomerRFM{
			CustomerCode: a.code,
			Frequency:    len(a.orders),
			Monetary:     a.monetary,
		}
		if a.lastApproved != nil {
			days := int(latest.Sub(*a.lastApproved) / (24 * time.Hour))
			row.Recency = &days
		}
		result = append(result, row)
	}
	return result
}

// RatingCensus counts distinct customers per review score, highest score
// first. Rows without a score are not counted.
func RatingCensus(records []models.Transaction) []models.RatingSummary {
	groups := make(map[int]set)
	for _, tx := range records {
		if tx.ReviewScore == nil {
			continue
		}
		customers := groups[*tx.ReviewScore]
		if customers == nil {
			customers = make(set)
			groups[*tx.ReviewScore] = customers
		}
		customers.add(tx.CustomerID)
	}

	result := make([]models.RatingSummary, 0, len(groups))
	for score, customers := range groups {
		result = append(result, models.RatingSummary{ReviewScore: score, CustomerCount: len(customers)})
	}
	slices.SortFunc(result, func(a, b models.RatingSummary) int {
		return cmp.Compare(b.ReviewScore, a.ReviewScore)
	})
	return result
}
