package services

import (
	"cmp"
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"ecommerce-dashboard/internal/models"
)

func head[T any](s []T, n int) []T {
	if n < 0 || len(s) <= n {
		return s
	}
	return s[:n]
}

// BestCategories is the first n of the descending category ranking.
func BestCategories(ranked []models.CategorySummary, n int) []models.CategorySummary {
	return slices.Clone(head(ranked, n))
}

// WorstCategories re-sorts the ranking ascending and takes the first n.
func WorstCategories(ranked []models.CategorySummary, n int) []models.CategorySummary {
	asc := slices.Clone(ranked)
	slices.SortStableFunc(asc, func(a, b models.CategorySummary) int {
		return cmp.Compare(a.Quantity, b.Quantity)
	})
	return head(asc, n)
}

// SplitStatuses separates the delivered row from every other status. The
// remaining statuses are ordered by label, descending.
func SplitStatuses(census []models.StatusSummary) (delivered, others []models.StatusSummary) {
	delivered = make([]models.StatusSummary, 0, 1)
	others = make([]models.StatusSummary, 0, len(census))
	for _, s := range census {
		if s.Status == models.StatusDelivered {
			delivered = append(delivered, s)
			continue
		}
		others = append(others, s)
	}
	slices.SortStableFunc(others, func(a, b models.StatusSummary) int {
		return cmp.Compare(b.Status, a.Status)
	})
	return delivered, others
}

// TopByRecency orders customers by recency, largest first. Customers with
// unknown recency sort last.
func TopByRecency(rfm []models.CustomerRFM, n int) []models.CustomerRFM {
	out := slices.Clone(rfm)
	slices.SortStableFunc(out, func(a, b models.CustomerRFM) int {
		switch {
		case a.Recency == nil && b.Recency == nil:
			return 0
		case a.Recency == nil:
			return 1
		case b.Recency == nil:
			return -1
		}
		return cmp.Compare(*b.Recency, *a.Recency)
	})
	return head(out, n)
}

func TopByFrequency(rfm []models.CustomerRFM, n int) []models.CustomerRFM {
	out := slices.Clone(rfm)
	slices.SortStableFunc(out, func(a, b models.CustomerRFM) int {
		return cmp.Compare(b.Frequency, a.Frequency)
	})
	return head(out, n)
}

func TopByMonetary(rfm []models.CustomerRFM, n int) []models.CustomerRFM {
	out := slices.Clone(rfm)
	slices.SortStableFunc(out, func(a, b models.CustomerRFM) int {
		return b.Monetary.Cmp(a.Monetary)
	})
	return head(out, n)
}

// RatingsByCount orders the rating census by customer count, smallest first,
// as the rating chart draws it.
func RatingsByCount(ratings []models.RatingSummary) []models.RatingSummary {
	out := slices.Clone(ratings)
	slices.SortStableFunc(out, func(a, b models.RatingSummary) int {
		return cmp.Compare(a.CustomerCount, b.CustomerCount)
	})
	return out
}

// Summary holds the metric tiles shown above the charts.
type Summary struct {
	TotalOrders  int             `json:"total_orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	AvgRecency   *float64        `json:"avg_recency"`
	AvgFrequency float64         `json:"avg_frequency"`
	AvgMonetary  decimal.Decimal `json:"avg_monetary"`
}

// Summarize totals the monthly trend and averages the RFM table. Averages
// are rounded to one decimal place; customers with unknown recency do not
// count towards the recency average.
func Summarize(monthly []models.MonthlyBucket, rfm []models.CustomerRFM) Summary {
	var s Summary
	for _, m := range monthly {
		s.TotalOrders += m.OrderCount
		s.TotalRevenue = s.TotalRevenue.Add(m.Revenue)
	}

	if len(rfm) == 0 {
		return s
	}

	var (
		freq     int
		monetary decimal.Decimal
		recency  int
		known    int
	)
	for _, c := range rfm {
		freq += c.Frequency
		monetary = monetary.Add(c.Monetary)
		if c.Recency != nil {
			recency += *c.Recency
			known++
		}
	}

	s.AvgFrequency = round1(float64(freq) / float64(len(rfm)))
	s.AvgMonetary = monetary.Div(decimal.NewFromInt(int64(len(rfm)))).Round(1)
	if known > 0 {
		avg := round1(float64(recency) / float64(known))
		s.AvgRecency = &avg
	}
	return s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Highlights are the ranked slices each dashboard panel draws.
type Highlights struct {
	BestCategories  []models.CategorySummary `json:"best_categories"`
	WorstCategories []models.CategorySummary `json:"worst_categories"`
	Delivered       []models.StatusSummary   `json:"delivered"`
	OtherStatuses   []models.StatusSummary   `json:"other_statuses"`
	TopRecency      []models.CustomerRFM     `json:"top_recency"`
	TopFrequency    []models.CustomerRFM     `json:"top_frequency"`
	TopMonetary     []models.CustomerRFM     `json:"top_monetary"`
	RatingsByCount  []models.RatingSummary   `json:"ratings_by_count"`
}

func Highlight(rep *Report, n int) Highlights {
	delivered, others := SplitStatuses(rep.Statuses)
	return Highlights{
		BestCategories:  BestCategories(rep.Categories, n),
		WorstCategories: WorstCategories(rep.Categories, n),
		Delivered:       delivered,
		OtherStatuses:   others,
		TopRecency:      TopByRecency(rep.Customers, n),
		TopFrequency:    TopByFrequency(rep.Customers, n),
		TopMonetary:     TopByMonetary(rep.Customers, n),
		RatingsByCount:  RatingsByCount(rep.Ratings),
	}
}
