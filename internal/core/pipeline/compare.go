package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/igupta/rivalscope/internal/core/charts"
	"github.com/igupta/rivalscope/internal/core/models"
)

// minCompanies and maxCompanies bound a comparison request
const (
	minCompanies = 2
	maxCompanies = 5
)

// Comparator produces the cross-company narrative, the winner call, and the
// metric scores that feed the charts. A nil MetricSet with no error means
// metric extraction failed but the narrative stands; chart steps will then
// fail individually instead of sinking the comparison.
type Comparator interface {
	Compare(ctx context.Context, results []*models.CompanyAnalysisResult) (narrative, winner string, metrics charts.MetricSet, err error)
	SaveComparisonReport(narrative string, result *models.ComparisonResult) (filename string, err error)
}

// CompanyOutcome is the per-company result-or-failure of a comparison run
type CompanyOutcome struct {
	Company string
	Result  *models.CompanyAnalysisResult
	Err     error
}

// Orchestrator runs the single-company pipeline per company and aggregates
// the successes into a ComparisonResult.
type Orchestrator struct {
	pipeline   *Pipeline
	runner     *Runner
	comparator Comparator
	renderer   charts.Renderer
}

// NewOrchestrator assembles a multi-company orchestrator
func NewOrchestrator(pipeline *Pipeline, runner *Runner, comparator Comparator, renderer charts.Renderer) *Orchestrator {
	return &Orchestrator{
		pipeline:   pipeline,
		runner:     runner,
		comparator: comparator,
		renderer:   renderer,
	}
}

// Compare analyzes 2-5 distinct companies and produces a comparative
// result. One company failing never aborts the others; at least two must
// succeed or the run fails with *InsufficientDataError.
func (o *Orchestrator) Compare(ctx context.Context, companies []string) (*models.ComparisonResult, []CompanyOutcome, error) {
	if err := validateCompanies(companies); err != nil {
		return nil, nil, err
	}

	outcomes := make([]CompanyOutcome, 0, len(companies))
	var successes []*models.CompanyAnalysisResult
	for _, company := range companies {
		result, err := o.pipeline.Analyze(ctx, company)
		outcomes = append(outcomes, CompanyOutcome{Company: company, Result: result, Err: err})
		if err == nil {
			successes = append(successes, result)
		}
	}

	if len(successes) < minCompanies {
		return nil, outcomes, &InsufficientDataError{Succeeded: len(successes), Required: minCompanies}
	}

	compared := make([]string, 0, len(successes))
	for _, r := range successes {
		compared = append(compared, r.CompanyName)
	}

	comparison := &models.ComparisonResult{
		Companies: compared,
		Charts:    map[models.ChartType]models.ChartArtifact{},
	}

	// Aggregation step: one narrative + winner + metric extraction
	var metrics charts.MetricSet
	stepIndex := len(stageDefs) + 1
	err := o.runner.Run(ctx, "company comparison", stepIndex, "Comparator", func(ctx context.Context) (string, error) {
		narrative, winner, ms, err := o.comparator.Compare(ctx, successes)
		if err != nil {
			return "", err
		}
		comparison.Narrative = narrative
		comparison.Winner = winner
		metrics = ms
		return fmt.Sprintf("compared %s", strings.Join(compared, ", ")), nil
	})
	if err != nil {
		return nil, outcomes, err
	}

	// Chart steps run independently: a chart that fails to generate is
	// marked missing, never fatal for the comparison.
	for i, chartType := range models.AllChartTypes {
		ct := chartType
		chartErr := o.runner.Run(ctx, fmt.Sprintf("%s chart generation", ct), stepIndex+1+i, "VisualGenerator", func(ctx context.Context) (string, error) {
			payload, err := charts.BuildPayload(ct, metrics, compared)
			if err != nil {
				return "", err
			}
			path, err := o.renderer.Render(ctx, payload)
			if err != nil {
				return "", err
			}
			comparison.Charts[ct] = models.ChartArtifact{Type: ct, Path: path}
			return path, nil
		})
		if chartErr != nil {
			comparison.MissingCharts = append(comparison.MissingCharts, ct)
		}
	}

	filename, err := o.comparator.SaveComparisonReport(comparison.Narrative, comparison)
	if err != nil {
		// The comparison is complete in memory; export failure is surfaced
		o.runner.Memory().Record(models.RoleSystem, fmt.Sprintf("Warning: failed to save comparison report: %v", err), nil)
	} else {
		comparison.ReportFile = filename
		o.runner.Memory().Record(models.RoleSystem, fmt.Sprintf("Report saved: %s", filename), nil)
	}

	if err := o.runner.Memory().Persist(); err != nil {
		o.runner.Memory().Record(models.RoleSystem, fmt.Sprintf("Warning: %v", err), nil)
	}
	return comparison, outcomes, nil
}

func validateCompanies(companies []string) error {
	if len(companies) < minCompanies || len(companies) > maxCompanies {
		return fmt.Errorf("comparison takes %d-%d companies, got %d", minCompanies, maxCompanies, len(companies))
	}
	seen := make(map[string]bool, len(companies))
	for _, c := range companies {
		name := strings.TrimSpace(c)
		if name == "" {
			return fmt.Errorf("company name cannot be empty")
		}
		key := strings.ToLower(name)
		if seen[key] {
			return fmt.Errorf("duplicate company: %s", name)
		}
		seen[key] = true
	}
	return nil
}
