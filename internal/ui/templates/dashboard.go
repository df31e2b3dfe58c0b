// Package templates holds the templ components that make up the dashboard
// page shell. Panel contents are streamed in afterwards over SSE.
package templates

import "encoding/json"

type DashboardProps struct {
	Title   string
	MinDate string
	MaxDate string
	TopN    int
}

// pageSignals seeds the Datastar store. Chart signals carry a leading
// underscore so they stay client-side and are never echoed back on @get.
type pageSignals struct {
	StartDate  string         `json:"startDate"`
	EndDate    string         `json:"endDate"`
	Monthly    []any          `json:"_monthlyData"`
	Categories map[string]any `json:"_categoriesData"`
	Status     map[string]any `json:"_statusData"`
	RFM        map[string]any `json:"_rfmData"`
	Ratings    []any          `json:"_ratingsData"`
}

func dashboardSignals(props DashboardProps) (string, error) {
	b, err := json.Marshal(pageSignals{
		StartDate:  props.MinDate,
		EndDate:    props.MaxDate,
		Monthly:    []any{},
		Categories: map[string]any{},
		Status:     map[string]any{},
		RFM:        map[string]any{},
		Ratings:    []any{},
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
