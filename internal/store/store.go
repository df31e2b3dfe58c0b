// Package store holds the immutable in-memory snapshot of transaction
// records that every dashboard view is derived from.
package store

import (
	"slices"
	"time"

	"ecommerce-dashboard/internal/models"
)

// Store is a read-only collection of transactions sorted by purchase time.
// It is safe for concurrent use because nothing mutates it after New.
type Store struct {
	records  []models.Transaction
	orders   int
	custs    int
	skipped  int
	source   string
	loadedAt time.Time
}

type Stats struct {
	Source      string     `json:"source"`
	RecordCount int        `json:"record_count"`
	SkippedRows int        `json:"skipped_rows"`
	Orders      int        `json:"orders"`
	Customers   int        `json:"customers"`
	FirstDay    *time.Time `json:"first_day,omitempty"`
	LastDay     *time.Time `json:"last_day,omitempty"`
	LoadedAt    time.Time  `json:"loaded_at"`
}

// New copies records and sorts the copy by purchase timestamp. Rows with
// equal timestamps keep their input order.
func New(records []models.Transaction) *Store {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b models.Transaction) int {
		return a.PurchasedAt.Compare(b.PurchasedAt)
	})

	orders := make(map[string]struct{})
	custs := make(map[string]struct{})
	for _, tx := range sorted {
		orders[tx.OrderID] = struct{}{}
		custs[tx.CustomerID] = struct{}{}
	}

	return &Store{
		records:  sorted,
		orders:   len(orders),
		custs:    len(custs),
		loadedAt: time.Now(),
	}
}

// Records returns the sorted snapshot. Callers must not modify it.
func (s *Store) Records() []models.Transaction {
	return s.records
}

func (s *Store) Len() int {
	return len(s.records)
}

// Span returns the inclusive day range covered by the snapshot. The second
// result is false for an empty store.
func (s *Store) Span() (models.DateRange, bool) {
	if len(s.records) == 0 {
		return models.DateRange{}, false
	}
	first := s.records[0].PurchasedAt
	last := s.records[len(s.records)-1].PurchasedAt
	return models.NewDateRange(first, last), true
}

func (s *Store) Stats() Stats {
	st := Stats{
		Source:      s.source,
		RecordCount: len(s.records),
		SkippedRows: s.skipped,
		Orders:      s.orders,
		Customers:   s.custs,
		LoadedAt:    s.loadedAt,
	}
	if span, ok := s.Span(); ok {
		st.FirstDay = &span.Start
		st.LastDay = &span.End
	}
	return st
}
