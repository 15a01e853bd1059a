// Package charts builds the data payloads behind comparison charts. Actual
// rendering (PNG, PDF embedding) is an external collaborator consumed
// through the Renderer interface.
package charts

import (
	"context"
	"fmt"

	"github.com/igupta/rivalscope/internal/core/models"
)

// MetricNames are the standardized comparison dimensions, scored 1-10
var MetricNames = []string{
	"Market Position",
	"Product Quality",
	"Innovation",
	"Pricing Value",
	"Customer Satisfaction",
	"Growth Potential",
	"Brand Strength",
	"Technology Stack",
}

// barMetrics are the headline dimensions a grouped bar chart shows
var barMetrics = []string{
	"Market Position",
	"Product Quality",
	"Innovation",
	"Pricing Value",
}

// MetricSet maps company name to metric name to its 1-10 score
type MetricSet map[string]map[string]float64

// Validate checks every listed company has a score for every metric
func (ms MetricSet) Validate(companies []string) error {
	if len(ms) == 0 {
		return fmt.Errorf("no metrics extracted")
	}
	for _, company := range companies {
		scores, ok := ms[company]
		if !ok {
			return fmt.Errorf("no metrics for %s", company)
		}
		for _, metric := range MetricNames {
			if _, ok := scores[metric]; !ok {
				return fmt.Errorf("missing metric %q for %s", metric, company)
			}
		}
	}
	return nil
}

// Payload is the structured content handed to a chart renderer: one row of
// values per company, columns in Metrics order.
type Payload struct {
	Type      models.ChartType `json:"type"`
	Companies []string         `json:"companies"`
	Metrics   []string         `json:"metrics"`
	Values    [][]float64      `json:"values"`
}

// BuildPayload assembles the payload for one chart type. Radar and heatmap
// carry all metrics; the bar chart carries the headline subset.
func BuildPayload(t models.ChartType, ms MetricSet, companies []string) (Payload, error) {
	if err := ms.Validate(companies); err != nil {
		return Payload{}, err
	}

	metrics := MetricNames
	if t == models.ChartBar {
		metrics = barMetrics
	}

	values := make([][]float64, len(companies))
	for i, company := range companies {
		row := make([]float64, len(metrics))
		for j, metric := range metrics {
			row[j] = ms[company][metric]
		}
		values[i] = row
	}

	return Payload{
		Type:      t,
		Companies: companies,
		Metrics:   metrics,
		Values:    values,
	}, nil
}

// Renderer turns a chart payload into a stored artifact
type Renderer interface {
	// Render persists the chart and returns the artifact path
	Render(ctx context.Context, p Payload) (path string, err error)
}
