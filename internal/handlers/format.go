package handlers

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"ecommerce-dashboard/internal/models"
)

const notAvailable = "n/a"

type formatter struct {
	currency string
}

func (f formatter) money(d decimal.Decimal) string {
	return f.currency + humanize.FormatFloat("#,###.##", d.InexactFloat64())
}

func (f formatter) count(n int) string {
	return humanize.Comma(int64(n))
}

func (f formatter) average(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func (f formatter) optionalAverage(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return f.average(*v)
}

func (f formatter) recency(days *int) string {
	if days == nil {
		return notAvailable
	}
	return humanize.Comma(int64(*days))
}

// Chart signal payloads. Money is sent as a float because chart libraries
// cannot plot decimal strings.

type monthlyPoint struct {
	Month      string  `json:"month"`
	OrderCount int     `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}

func monthlyPoints(buckets []models.MonthlyBucket) []monthlyPoint {
	out := make([]monthlyPoint, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, monthlyPoint{
			Month:      b.Month.Format(models.DateLayout),
			OrderCount: b.OrderCount,
			Revenue:    b.Revenue.InexactFloat64(),
		})
	}
	return out
}

type customerPoint struct {
	Customer string  `json:"no_customer"`
	Recency  *int    `json:"recency"`
	Freq     int     `json:"frequency"`
	Monetary float64 `json:"monetary"`
}

func customerPoints(rows []models.CustomerRFM) []customerPoint {
	out := make([]customerPoint, 0, len(rows))
	for _, c := range rows {
		out = append(out, customerPoint{
			Customer: c.CustomerCode,
			Recency:  c.Recency,
			Freq:     c.Frequency,
			Monetary: c.Monetary.InexactFloat64(),
		})
	}
	return out
}
