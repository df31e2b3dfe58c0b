package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"ecommerce-dashboard/internal/models"
)

const (
	batchSize  = 10000
	maxWorkers = 10
)

var (
	ErrEmptyFile     = errors.New("empty file")
	ErrMissingColumn = errors.New("missing required column")
	ErrNoRecords     = errors.New("no valid records found")
)

// Column names of the dataset header.
const (
	colOrderID           = "order_id"
	colCustomerID        = "customer_id"
	colCustomerCode      = "no_customer"
	colPurchaseTimestamp = "order_purchase_timestamp"
	colApprovedAt        = "order_approved_at"
	colEstimatedDelivery = "order_estimated_delivery_date"
	colStatus            = "order_status"
	colPaymentValue      = "payment_value"
	colQuantity          = "quantity"
	colCategory          = "product_category_name_english"
	colReviewScore       = "review_score"
)

// The nullable columns (approval, estimated delivery, review score) may be
// absent from the header entirely.
var requiredColumns = []string{
	colOrderID,
	colCustomerID,
	colCustomerCode,
	colPurchaseTimestamp,
	colStatus,
	colPaymentValue,
	colQuantity,
	colCategory,
}

var columnAliases = map[string]string{
	"product_category":      colCategory,
	"product_category_name": colCategory,
	"customer_code":         colCustomerCode,
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	models.DateLayout,
}

// UncategorizedLabel replaces empty category values so no quantity is lost.
const UncategorizedLabel = "uncategorized"

type schema map[string]int

func (s schema) field(record []string, name string) string {
	idx, ok := s[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseHeader(header []string) (schema, error) {
	s := make(schema, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if canonical, ok := columnAliases[name]; ok {
			name = canonical
		}
		if _, dup := s[name]; !dup {
			s[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := s[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return s, nil
}

// ReadCSV parses a dataset from r. Rows that fail to parse are skipped and
// counted; a reader with no valid rows is an error.
func ReadCSV(ctx context.Context, r io.Reader) ([]models.Transaction, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, ErrEmptyFile
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	cols, err := parseHeader(header)
	if err != nil {
		return nil, 0, err
	}

	var (
		records []models.Transaction
		skipped int
	)
	batch := make([][]string, 0, batchSize)

	flush := func() error {
		parsed, bad, err := parseBatch(ctx, cols, batch)
		if err != nil {
			return err
		}
		records = append(records, parsed...)
		skipped += bad
		batch = batch[:0]
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		default:
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				skipped++
				continue
			}
			return nil, 0, fmt.Errorf("read row: %w", err)
		}

		batch = append(batch, row)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return nil, 0, err
			}
		}
	}

	if len(batch) > 0 {
		if err := flush(); err != nil {
			return nil, 0, err
		}
	}

	if len(records) == 0 {
		return nil, skipped, ErrNoRecords
	}
	return records, skipped, nil
}

func parseBatch(ctx context.Context, cols schema, batch [][]string) ([]models.Transaction, int, error) {
	var g errgroup.Group
	g.SetLimit(maxWorkers)

	parsed := make([]models.Transaction, len(batch))
	valid := make([]bool, len(batch))

	for i, row := range batch {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			tx, err := parseTransaction(cols, row)
			if err != nil {
				return nil
			}
			parsed[i] = tx
			valid[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	out := parsed[:0]
	skipped := 0
	for i, ok := range valid {
		if !ok {
			skipped++
			continue
		}
		out = append(out, parsed[i])
	}
	return out, skipped, nil
}

func parseTransaction(cols schema, row []string) (models.Transaction, error) {
	orderID := cols.field(row, colOrderID)
	if orderID == "" {
		return models.Transaction{}, fmt.Errorf("empty %s", colOrderID)
	}
	customerID := cols.field(row, colCustomerID)
	if customerID == "" {
		return models.Transaction{}, fmt.Errorf("empty %s", colCustomerID)
	}

	purchased, err := parseTimestamp(cols.field(row, colPurchaseTimestamp))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%s: %w", colPurchaseTimestamp, err)
	}
	if purchased == nil {
		return models.Transaction{}, fmt.Errorf("empty %s", colPurchaseTimestamp)
	}

	approved, err := parseTimestamp(cols.field(row, colApprovedAt))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%s: %w", colApprovedAt, err)
	}
	if approved != nil && approved.Before(*purchased) {
		return models.Transaction{}, fmt.Errorf("%s precedes purchase", colApprovedAt)
	}

	delivery, err := parseTimestamp(cols.field(row, colEstimatedDelivery))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%s: %w", colEstimatedDelivery, err)
	}

	payment, err := decimal.NewFromString(cols.field(row, colPaymentValue))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%s: %w", colPaymentValue, err)
	}
	if payment.IsNegative() {
		return models.Transaction{}, fmt.Errorf("negative %s", colPaymentValue)
	}

	quantity, err := parseWhole(cols.field(row, colQuantity))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%s: %w", colQuantity, err)
	}
	if quantity < 0 {
		return models.Transaction{}, fmt.Errorf("negative %s", colQuantity)
	}

	var score *int
	if raw := cols.field(row, colReviewScore); !isNull(raw) {
		v, err := parseWhole(raw)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("%s: %w", colReviewScore, err)
		}
		score = &v
	}

	category := cols.field(row, colCategory)
	if isNull(category) {
		category = UncategorizedLabel
	}

	return models.Transaction{
		OrderID:             orderID,
		CustomerID:          customerID,
		CustomerCode:        cols.field(row, colCustomerCode),
		PurchasedAt:         *purchased,
		ApprovedAt:          approved,
		EstimatedDeliveryAt: delivery,
		Status:              cols.field(row, colStatus),
		PaymentValue:        payment,
		Quantity:            quantity,
		ProductCategory:     category,
		ReviewScore:         score,
	}, nil
}

func isNull(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "nat", "null", "none":
		return true
	}
	return false
}

// parseTimestamp returns nil for null cells.
func parseTimestamp(s string) (*time.Time, error) {
	if isNull(s) {
		return nil, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized timestamp %q", s)
}

// parseWhole accepts integers and integral floats such as "5.0", which
// pandas writes for integer columns that contain nulls.
func parseWhole(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a whole number: %q", s)
	}
	// float64(math.MaxInt) rounds up to 2^63 on 64-bit platforms.
	if f < float64(math.MinInt) || f >= float64(math.MaxInt) {
		return 0, fmt.Errorf("whole number out of range: %q", s)
	}
	return int(f), nil
}

type LoadOptions struct {
	CacheDir string
	Logger   *slog.Logger
}

// LoadFile builds a Store from the CSV at path, using the parsed snapshot
// cache under opts.CacheDir when it is still fresh.
func LoadFile(ctx context.Context, path string, opts LoadOptions) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat dataset: %w", err)
	}

	cache := newSnapshotCache(opts.CacheDir)
	if snap, err := cache.load(path, info); err == nil {
		s := New(snap.Records)
		s.source = path
		s.skipped = snap.Skipped
		logger.Info("loaded dataset from cache", "records", s.Len(), "source", path)
		return s, nil
	}

	start := time.Now()
	logger.Info("processing CSV file", "filename", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	records, skipped, err := ReadCSV(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("process csv: %w", err)
	}

	s := New(records)
	s.source = path
	s.skipped = skipped

	if err := cache.save(path, info, snapshot{Records: s.records, Skipped: skipped}); err != nil {
		logger.Warn("failed to save cache", "error", err)
	}

	duration := time.Since(start)
	logger.Info("csv processing complete",
		"records", s.Len(),
		"skipped", skipped,
		"duration", duration,
		"rate", fmt.Sprintf("%.0f records/sec", float64(s.Len())/duration.Seconds()))

	if skipped > 0 {
		logger.Warn("skipped malformed rows", "count", skipped)
	}

	return s, nil
}
