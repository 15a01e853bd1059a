// Package pipeline drives the fixed research/analysis sequence per company
// and the multi-company comparison on top of it.
package pipeline

import (
	"context"
	"fmt"

	"github.com/igupta/rivalscope/internal/core/models"
)

// Stage is one state of the single-company pipeline
type Stage int

const (
	StageResearch Stage = iota
	StageCompetitorDiscovery
	StageCompetitiveAnalysis
	StageSWOT
	StagePricing
	StageReportCompilation
	StageDone
)

// stageDefs is the transition table: stages run in this order, none can be
// skipped, and a failure halts the pipeline at the failed stage.
var stageDefs = []struct {
	stage Stage
	name  string
	agent string
}{
	{StageResearch, "company research", "Researcher"},
	{StageCompetitorDiscovery, "competitor discovery", "Researcher"},
	{StageCompetitiveAnalysis, "competitive analysis", "Analyst"},
	{StageSWOT, "SWOT analysis", "Analyst"},
	{StagePricing, "pricing analysis", "Analyst"},
	{StageReportCompilation, "report compilation", "Reporter"},
}

// Next returns the stage that follows s
func (s Stage) Next() Stage {
	if s >= StageDone {
		return StageDone
	}
	return s + 1
}

// String returns the stage's step name
func (s Stage) String() string {
	for _, d := range stageDefs {
		if d.stage == s {
			return d.name
		}
	}
	return "done"
}

// Researcher gathers raw material about a company and its rivals
type Researcher interface {
	ResearchCompany(ctx context.Context, company string) (profile string, err error)
	DiscoverCompetitors(ctx context.Context, company string) (competitors []models.Competitor, overview string, err error)
}

// Analyst turns research into competitive, SWOT and pricing analysis
type Analyst interface {
	AnalyzeCompetition(ctx context.Context, company, profile, competitorsOverview string) (string, error)
	GenerateSWOT(ctx context.Context, company, profile, competitiveAnalysis string) (models.SWOT, error)
	AnalyzePricing(ctx context.Context, company string, competitors []string) (string, error)
}

// Reporter compiles and exports the final per-company report
type Reporter interface {
	CompileReport(ctx context.Context, result *models.CompanyAnalysisResult) (report string, err error)
	SaveReport(report, company string) (filename string, err error)
}

// Pipeline runs the six-stage analysis for one company
type Pipeline struct {
	runner     *Runner
	researcher Researcher
	analyst    Analyst
	reporter   Reporter
}

// New assembles a single-company pipeline over a step runner
func New(runner *Runner, researcher Researcher, analyst Analyst, reporter Reporter) *Pipeline {
	return &Pipeline{
		runner:     runner,
		researcher: researcher,
		analyst:    analyst,
		reporter:   reporter,
	}
}

// Analyze runs the pipeline for one company. On failure the partial result
// accumulated so far is returned alongside the *StepFailure; callers decide
// whether partial data is usable.
func (p *Pipeline) Analyze(ctx context.Context, company string) (*models.CompanyAnalysisResult, error) {
	result := &models.CompanyAnalysisResult{CompanyName: company}

	mem := p.runner.Memory()
	mem.Record(models.RoleUser, fmt.Sprintf("Analyze %s", company), nil)

	for stage := StageResearch; stage != StageDone; stage = stage.Next() {
		def := stageDefs[stage]
		op := p.operation(stage, company, result)
		if err := p.runner.Run(ctx, def.name, int(stage)+1, def.agent, op); err != nil {
			return result, err
		}
	}

	mem.MarkAnalysisComplete(company, result.ReportFilename)
	mem.Record(models.RoleSystem, fmt.Sprintf("Report saved: %s", result.ReportFilename), nil)
	if err := mem.Persist(); err != nil {
		// Completed in memory; the write failure is surfaced, not fatal
		mem.Record(models.RoleSystem, fmt.Sprintf("Warning: %v", err), nil)
	}
	return result, nil
}

// operation binds one stage to its collaborator call, writing into result
func (p *Pipeline) operation(stage Stage, company string, result *models.CompanyAnalysisResult) Operation {
	switch stage {
	case StageResearch:
		return func(ctx context.Context) (string, error) {
			profile, err := p.researcher.ResearchCompany(ctx, company)
			if err != nil {
				return "", err
			}
			result.Profile = profile
			return truncate(profile, 120), nil
		}
	case StageCompetitorDiscovery:
		return func(ctx context.Context) (string, error) {
			competitors, overview, err := p.researcher.DiscoverCompetitors(ctx, company)
			if err != nil {
				return "", err
			}
			result.Competitors = competitors
			result.CompetitorsOverview = overview
			return fmt.Sprintf("%d competitors identified", len(competitors)), nil
		}
	case StageCompetitiveAnalysis:
		return func(ctx context.Context) (string, error) {
			analysis, err := p.analyst.AnalyzeCompetition(ctx, company, result.Profile, result.CompetitorsOverview)
			if err != nil {
				return "", err
			}
			result.CompetitiveAnalysis = analysis
			return truncate(analysis, 120), nil
		}
	case StageSWOT:
		return func(ctx context.Context) (string, error) {
			swot, err := p.analyst.GenerateSWOT(ctx, company, result.Profile, result.CompetitiveAnalysis)
			if err != nil {
				return "", err
			}
			result.SWOT = swot
			return fmt.Sprintf("%d strengths, %d weaknesses, %d opportunities, %d threats",
				len(swot.Strengths), len(swot.Weaknesses), len(swot.Opportunities), len(swot.Threats)), nil
		}
	case StagePricing:
		return func(ctx context.Context) (string, error) {
			names := make([]string, 0, len(result.Competitors))
			for _, c := range result.Competitors {
				names = append(names, c.Name)
			}
			pricing, err := p.analyst.AnalyzePricing(ctx, company, names)
			if err != nil {
				return "", err
			}
			result.PricingAnalysis = pricing
			return truncate(pricing, 120), nil
		}
	case StageReportCompilation:
		return func(ctx context.Context) (string, error) {
			report, err := p.reporter.CompileReport(ctx, result)
			if err != nil {
				return "", err
			}
			result.Report = report

			filename, err := p.reporter.SaveReport(report, company)
			if err != nil {
				return "", err
			}
			result.ReportFilename = filename
			return filename, nil
		}
	default:
		return func(ctx context.Context) (string, error) {
			return "", fmt.Errorf("no operation for stage %d", stage)
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
