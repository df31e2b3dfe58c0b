package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"ecommerce-dashboard/internal/models"
	"ecommerce-dashboard/internal/observability"
	"ecommerce-dashboard/internal/store"
)

var ErrInvalidRange = errors.New("invalid date range")

// Report is every derived view for one date range.
type Report struct {
	Range       models.DateRange         `json:"range"`
	RecordCount int                      `json:"record_count"`
	Monthly     []models.MonthlyBucket   `json:"monthly_trend"`
	Categories  []models.CategorySummary `json:"categories"`
	Statuses    []models.StatusSummary   `json:"statuses"`
	Customers   []models.CustomerRFM     `json:"customers"`
	Ratings     []models.RatingSummary   `json:"ratings"`
	Summary     Summary                  `json:"summary"`
}

// Analytics answers dashboard queries against one immutable store.
type Analytics struct {
	store  *store.Store
	logger *slog.Logger
}

func NewAnalytics(s *store.Store, logger *slog.Logger) *Analytics {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analytics{store: s, logger: logger}
}

// Span is the full range of the dataset, the dashboard's default selection.
func (a *Analytics) Span() models.DateRange {
	span, _ := a.store.Span()
	return span
}

// ResolveRange parses YYYY-MM-DD bounds, substituting the dataset span for
// empty values. An end before start is rejected.
func (a *Analytics) ResolveRange(start, end string) (models.DateRange, error) {
	span := a.Span()
	r := span

	if start != "" {
		t, err := time.Parse(models.DateLayout, start)
		if err != nil {
			return models.DateRange{}, fmt.Errorf("%w: start %q is not YYYY-MM-DD", ErrInvalidRange, start)
		}
		r.Start = models.Day(t)
	}
	if end != "" {
		t, err := time.Parse(models.DateLayout, end)
		if err != nil {
			return models.DateRange{}, fmt.Errorf("%w: end %q is not YYYY-MM-DD", ErrInvalidRange, end)
		}
		r.End = models.Day(t)
	}

	if !r.Valid() {
		return models.DateRange{}, fmt.Errorf("%w: start %s is after end %s",
			ErrInvalidRange, r.Start.Format(models.DateLayout), r.End.Format(models.DateLayout))
	}
	return r, nil
}

func (a *Analytics) Filtered(r models.DateRange) []models.Transaction {
	return Filter(a.store, r)
}

func (a *Analytics) MonthlyTrend(r models.DateRange) []models.MonthlyBucket {
	return MonthlyTrend(a.Filtered(r))
}

func (a *Analytics) CategoryPerformance(r models.DateRange) []models.CategorySummary {
	return CategoryPerformance(a.Filtered(r))
}

func (a *Analytics) StatusCensus(r models.DateRange) []models.StatusSummary {
	return StatusCensus(a.Filtered(r))
}

func (a *Analytics) CustomerRFM(r models.DateRange) []models.CustomerRFM {
	return CustomerRFM(a.Filtered(r))
}

func (a *Analytics) RatingCensus(r models.DateRange) []models.RatingSummary {
	return RatingCensus(a.Filtered(r))
}

// Report filters once and runs all five aggregators over the same subset
// concurrently.
func (a *Analytics) Report(ctx context.Context, r models.DateRange) (*Report, error) {
	ctx, span := observability.StartSpan(ctx, "analytics.report")
	defer span.Finish()
	span.SetTag("range", r.String())

	records := a.Filtered(r)
	span.SetTag("records", strconv.Itoa(len(records)))

	rep := &Report{Range: r, RecordCount: len(records)}

	g, ctx := errgroup.WithContext(ctx)
	run := func(fn func()) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}
	run(func() { rep.Monthly = MonthlyTrend(records) })
	run(func() { rep.Categories = CategoryPerformance(records) })
	run(func() { rep.Statuses = StatusCensus(records) })
	run(func() { rep.Customers = CustomerRFM(records) })
	run(func() { rep.Ratings = RatingCensus(records) })

	if err := g.Wait(); err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("compute report: %w", err)
	}

	rep.Summary = Summarize(rep.Monthly, rep.Customers)

	a.logger.Debug("report computed",
		"range", r.String(),
		"records", len(records),
		"request_id", observability.GetRequestID(ctx),
		"duration", time.Since(span.StartTime),
	)
	return rep, nil
}

func (a *Analytics) Stats() store.Stats {
	return a.store.Stats()
}
