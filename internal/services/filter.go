package services

import (
	"slices"
	"time"

	"ecommerce-dashboard/internal/models"
	"ecommerce-dashboard/internal/store"
)

// Filter returns the records purchased on a day within r, inclusive on both
// ends. The result aliases the store's backing array and must be treated as
// read-only. An inverted range yields no records.
func Filter(s *store.Store, r models.DateRange) []models.Transaction {
	if !r.Valid() {
		return []models.Transaction{}
	}

	records := s.Records()
	lo := lowerBound(records, r.Start)
	hi := lowerBound(records, r.End.AddDate(0, 0, 1))
	if lo >= hi {
		return []models.Transaction{}
	}
	return records[lo:hi:hi]
}

// lowerBound is the index of the first record purchased at or after t.
func lowerBound(records []models.Transaction, t time.Time) int {
	i, _ := slices.BinarySearchFunc(records, t, func(tx models.Transaction, target time.Time) int {
		return tx.PurchasedAt.Compare(target)
	})
	return i
}
