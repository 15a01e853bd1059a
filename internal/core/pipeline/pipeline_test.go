package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/igupta/rivalscope/internal/core/charts"
	"github.com/igupta/rivalscope/internal/core/memory"
	"github.com/igupta/rivalscope/internal/core/models"
	"github.com/igupta/rivalscope/internal/core/store"
)

// fakeCollaborators scripts every collaborator call. failAt halts the named
// stage; failFor halts every stage for the named company.
type fakeCollaborators struct {
	failAt  Stage
	hasFail bool
	failFor map[string]bool
}

func (f *fakeCollaborators) fails(stage Stage, company string) error {
	if f.failFor[company] {
		return fmt.Errorf("scripted failure for %s", company)
	}
	if f.hasFail && stage == f.failAt {
		return fmt.Errorf("scripted failure at %s", stage)
	}
	return nil
}

func (f *fakeCollaborators) ResearchCompany(ctx context.Context, company string) (string, error) {
	if err := f.fails(StageResearch, company); err != nil {
		return "", err
	}
	return company + " profile", nil
}

func (f *fakeCollaborators) DiscoverCompetitors(ctx context.Context, company string) ([]models.Competitor, string, error) {
	if err := f.fails(StageCompetitorDiscovery, company); err != nil {
		return nil, "", err
	}
	return []models.Competitor{{Name: "Rival A"}, {Name: "Rival B"}, {Name: "Rival C"}}, "three rivals", nil
}

func (f *fakeCollaborators) AnalyzeCompetition(ctx context.Context, company, profile, overview string) (string, error) {
	if err := f.fails(StageCompetitiveAnalysis, company); err != nil {
		return "", err
	}
	return company + " competitive analysis", nil
}

func (f *fakeCollaborators) GenerateSWOT(ctx context.Context, company, profile, analysis string) (models.SWOT, error) {
	if err := f.fails(StageSWOT, company); err != nil {
		return models.SWOT{}, err
	}
	return models.SWOT{
		Strengths:     []string{"brand"},
		Weaknesses:    []string{"debt"},
		Opportunities: []string{"expansion"},
		Threats:       []string{"rivals"},
	}, nil
}

func (f *fakeCollaborators) AnalyzePricing(ctx context.Context, company string, competitors []string) (string, error) {
	if err := f.fails(StagePricing, company); err != nil {
		return "", err
	}
	return company + " pricing analysis", nil
}

func (f *fakeCollaborators) CompileReport(ctx context.Context, result *models.CompanyAnalysisResult) (string, error) {
	if err := f.fails(StageReportCompilation, result.CompanyName); err != nil {
		return "", err
	}
	return "# Report: " + result.CompanyName, nil
}

func (f *fakeCollaborators) SaveReport(report, company string) (string, error) {
	return company + "_competitive_analysis.md", nil
}

func newTestPipeline(t *testing.T, fake *fakeCollaborators) (*Pipeline, *memory.Manager) {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	mem := memory.NewManager(st)
	runner := NewRunner(mem, 0, nil)
	return New(runner, fake, fake, fake), mem
}

func TestPipeline_AllStagesSucceed(t *testing.T) {
	p, mem := newTestPipeline(t, &fakeCollaborators{})

	result, err := p.Analyze(context.Background(), "Netflix")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !result.Complete() {
		t.Errorf("result incomplete: %+v", result)
	}

	stats := mem.Statistics()
	if stats.AnalysisCount != 1 {
		t.Errorf("AnalysisCount = %d, want 1", stats.AnalysisCount)
	}
	// 1 user message + 6 stages x 2 bookkeeping messages + report-saved note
	if stats.MessageCount != 14 {
		t.Errorf("MessageCount = %d, want 14", stats.MessageCount)
	}
	if got := mem.Session().CompanyName; got != "Netflix" {
		t.Errorf("session company = %q, want Netflix", got)
	}
}

func TestPipeline_FailureAtSWOTKeepsPartialResult(t *testing.T) {
	p, mem := newTestPipeline(t, &fakeCollaborators{failAt: StageSWOT, hasFail: true})

	result, err := p.Analyze(context.Background(), "Netflix")

	var sf *StepFailure
	if !errors.As(err, &sf) {
		t.Fatalf("Analyze() error = %v, want *StepFailure", err)
	}
	if sf.Step != "SWOT analysis" {
		t.Errorf("failed step = %q, want SWOT analysis", sf.Step)
	}

	// Steps 1-3 populated, steps 4-6 empty
	if result.Profile == "" || len(result.Competitors) == 0 || result.CompetitiveAnalysis == "" {
		t.Errorf("steps 1-3 data missing from partial result: %+v", result)
	}
	if !result.SWOT.Empty() || result.PricingAnalysis != "" || result.Report != "" {
		t.Errorf("steps 4-6 data present in partial result: %+v", result)
	}

	if got := mem.Statistics().AnalysisCount; got != 0 {
		t.Errorf("AnalysisCount = %d after failed run, want 0", got)
	}
}

func TestPipeline_FailureAtFirstStage(t *testing.T) {
	p, _ := newTestPipeline(t, &fakeCollaborators{failAt: StageResearch, hasFail: true})

	result, err := p.Analyze(context.Background(), "Netflix")
	if err == nil {
		t.Fatal("Analyze() succeeded, want failure at research stage")
	}
	if result == nil || result.CompanyName != "Netflix" {
		t.Errorf("partial result = %+v, want company name retained", result)
	}
	if result.Profile != "" {
		t.Errorf("Profile = %q, want empty after first-stage failure", result.Profile)
	}
}

func TestStageTransitions(t *testing.T) {
	order := []Stage{
		StageResearch, StageCompetitorDiscovery, StageCompetitiveAnalysis,
		StageSWOT, StagePricing, StageReportCompilation, StageDone,
	}
	for i := 0; i < len(order)-1; i++ {
		if got := order[i].Next(); got != order[i+1] {
			t.Errorf("%v.Next() = %v, want %v", order[i], got, order[i+1])
		}
	}
	if got := StageDone.Next(); got != StageDone {
		t.Errorf("StageDone.Next() = %v, want StageDone", got)
	}
}

// chart renderer fake shared with compare_test.go
type fakeRenderer struct {
	failFor map[models.ChartType]bool
}

func (r *fakeRenderer) Render(ctx context.Context, p charts.Payload) (string, error) {
	if r.failFor[p.Type] {
		return "", fmt.Errorf("scripted render failure for %s", p.Type)
	}
	return string(p.Type) + "_chart.json", nil
}
