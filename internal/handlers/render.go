package handlers

import (
	"html/template"
	"strings"

	"ecommerce-dashboard/internal/models"
	"ecommerce-dashboard/internal/services"
)

var panelTemplates = template.Must(template.New("panels").Parse(`
{{define "summary"}}<div id="summary-content" class="metric-grid">
<div class="metric"><span class="metric-label">Total orders</span><span class="metric-value">{{.TotalOrders}}</span></div>
<div class="metric"><span class="metric-label">Total Revenue</span><span class="metric-value">{{.TotalRevenue}}</span></div>
<div class="metric"><span class="metric-label">Average Recency (days)</span><span class="metric-value">{{.AvgRecency}}</span></div>
<div class="metric"><span class="metric-label">Average Frequency</span><span class="metric-value">{{.AvgFrequency}}</span></div>
<div class="metric"><span class="metric-label">Average Monetary Value</span><span class="metric-value">{{.AvgMonetary}}</span></div>
<div class="metric-footnote">{{.RecordCount}} line items, {{.Range}}</div>
</div>{{end}}

{{define "monthly"}}<div id="monthly-content">
{{if .Months}}<table class="modern-table">
<thead><tr><th>Month</th><th>Orders</th><th>Revenue</th></tr></thead>
<tbody>
{{range $i, $m := .Months}}{{if lt $i $.MaxRows}}<tr><td>{{$m.Label}}</td><td>{{$m.Orders}}</td><td><strong>{{$m.Revenue}}</strong></td></tr>{{end}}{{end}}
</tbody>
</table>{{else}}<p class="empty">No orders in the selected range</p>{{end}}
</div>{{end}}

{{define "categoryTable"}}<table class="modern-table">
<thead><tr><th>Category</th><th>Quantity</th></tr></thead>
<tbody>
{{range .}}<tr><td><span class="category-badge">{{.Category}}</span></td><td>{{.Quantity}}</td></tr>{{end}}
</tbody>
</table>{{end}}

{{define "categories"}}<div id="categories-content" class="split">
{{if .Best}}<div><h3>Best Performing Product</h3>{{template "categoryTable" .Best}}</div>
<div><h3>Worst Performing Product</h3>{{template "categoryTable" .Worst}}</div>{{else}}<p class="empty">No products sold in the selected range</p>{{end}}
</div>{{end}}

{{define "statusTable"}}<table class="modern-table">
<thead><tr><th>Status</th><th>Customers</th></tr></thead>
<tbody>
{{range .}}<tr><td>{{.Status}}</td><td>{{.CustomerCount}}</td></tr>{{end}}
</tbody>
</table>{{end}}

{{define "status"}}<div id="status-content" class="split">
{{if or .Delivered .Others}}<div><h3>Order Status (Excluding 'delivered')</h3>{{template "statusTable" .Others}}</div>
<div><h3>Order Status ('delivered' only)</h3>{{template "statusTable" .Delivered}}</div>{{else}}<p class="empty">No orders in the selected range</p>{{end}}
</div>{{end}}

{{define "customerTable"}}<table class="modern-table">
<thead><tr><th>Customer</th><th>Recency</th><th>Frequency</th><th>Monetary</th></tr></thead>
<tbody>
{{range .}}<tr><td>{{.Code}}</td><td>{{.Recency}}</td><td>{{.Frequency}}</td><td>{{.Monetary}}</td></tr>{{end}}
</tbody>
</table>{{end}}

{{define "rfm"}}<div id="rfm-content" class="split">
{{if .TopFrequency}}<div><h3>By Recency (days)</h3>{{template "customerTable" .TopRecency}}</div>
<div><h3>By Frequency</h3>{{template "customerTable" .TopFrequency}}</div>
<div><h3>By Revenue</h3>{{template "customerTable" .TopMonetary}}</div>{{else}}<p class="empty">No customers in the selected range</p>{{end}}
</div>{{end}}

{{define "ratings"}}<div id="ratings-content">
{{if .Ratings}}<table class="modern-table">
<thead><tr><th>Score</th><th>Customers</th></tr></thead>
<tbody>
{{range .Ratings}}<tr><td>{{.ReviewScore}}</td><td>{{.CustomerCount}}</td></tr>{{end}}
</tbody>
</table>{{else}}<p class="empty">No reviews in the selected range</p>{{end}}
</div>{{end}}

{{define "rangeError"}}<div id="range-error" class="range-error">{{.}}</div>{{end}}
`))

type monthRow struct {
	Label   string
	Orders  string
	Revenue string
}

type customerRow struct {
	Code      string
	Recency   string
	Frequency string
	Monetary  string
}

// panelView is a report formatted for display.
type panelView struct {
	Range        string
	RecordCount  string
	TotalOrders  string
	TotalRevenue string
	AvgRecency   string
	AvgFrequency string
	AvgMonetary  string
	Months       []monthRow
	Best         []models.CategorySummary
	Worst        []models.CategorySummary
	Delivered    []models.StatusSummary
	Others       []models.StatusSummary
	TopRecency   []customerRow
	TopFrequency []customerRow
	TopMonetary  []customerRow
	Ratings      []models.RatingSummary
	MaxRows      int
}

func newPanelView(rep *services.Report, hl services.Highlights, f formatter, maxRows int) panelView {
	v := panelView{
		Range:        rep.Range.String(),
		RecordCount:  f.count(rep.RecordCount),
		TotalOrders:  f.count(rep.Summary.TotalOrders),
		TotalRevenue: f.money(rep.Summary.TotalRevenue),
		AvgRecency:   f.optionalAverage(rep.Summary.AvgRecency),
		AvgFrequency: f.average(rep.Summary.AvgFrequency),
		AvgMonetary:  f.money(rep.Summary.AvgMonetary),
		Best:         hl.BestCategories,
		Worst:        hl.WorstCategories,
		Delivered:    hl.Delivered,
		Others:       hl.OtherStatuses,
		TopRecency:   customerRows(hl.TopRecency, f),
		TopFrequency: customerRows(hl.TopFrequency, f),
		TopMonetary:  customerRows(hl.TopMonetary, f),
		Ratings:      rep.Ratings,
		MaxRows:      maxRows,
	}
	for _, m := range rep.Monthly {
		v.Months = append(v.Months, monthRow{
			Label:   m.Label,
			Orders:  f.count(m.OrderCount),
			Revenue: f.money(m.Revenue),
		})
	}
	return v
}

func customerRows(rows []models.CustomerRFM, f formatter) []customerRow {
	out := make([]customerRow, 0, len(rows))
	for _, c := range rows {
		out = append(out, customerRow{
			Code:      c.CustomerCode,
			Recency:   f.recency(c.Recency),
			Frequency: f.count(c.Frequency),
			Monetary:  f.money(c.Monetary),
		})
	}
	return out
}

func renderPanel(name string, data any) (string, error) {
	var buf strings.Builder
	if err := panelTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
