// Package app wires configuration, storage, providers, agents and the
// pipeline into one runnable application shared by the CLI, TUI and MCP
// front ends.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/igupta/rivalscope/internal/core/agents"
	"github.com/igupta/rivalscope/internal/core/archive"
	"github.com/igupta/rivalscope/internal/core/charts"
	"github.com/igupta/rivalscope/internal/core/config"
	"github.com/igupta/rivalscope/internal/core/llm"
	"github.com/igupta/rivalscope/internal/core/memory"
	"github.com/igupta/rivalscope/internal/core/models"
	"github.com/igupta/rivalscope/internal/core/pipeline"
	"github.com/igupta/rivalscope/internal/core/report"
	"github.com/igupta/rivalscope/internal/core/store"
	"github.com/igupta/rivalscope/internal/core/websearch"
)

// Options controls session selection and progress reporting
type Options struct {
	SessionID string // resume this session instead of starting fresh
	Overwrite bool   // replace an existing session file on ID collision
	Logf      func(format string, args ...any)
}

// App is the assembled application
type App struct {
	Config  *config.Config
	Store   *store.Store
	Memory  *memory.Manager
	Archive *archive.Archive
	Writer  *report.Writer

	pipeline     *pipeline.Pipeline
	orchestrator *pipeline.Orchestrator
	logf         func(string, ...any)
}

// New builds the application from config. With Options.SessionID set the
// named session is resumed; otherwise a fresh session is created and its
// file claimed up front.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	st, err := store.New(cfg.SessionsDir)
	if err != nil {
		return nil, err
	}

	var mem *memory.Manager
	if opts.SessionID != "" {
		mem, err = memory.Resume(st, opts.SessionID)
		if err != nil {
			return nil, err
		}
	} else {
		mem = memory.NewManager(st)
		if _, err := st.Create(mem.SessionID(), opts.Overwrite); err != nil {
			return nil, err
		}
	}

	provider, err := newProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.SerpAPIKey == "" {
		return nil, fmt.Errorf("serpapi API key is required (set SERPAPI_KEY or serpapi_key in config)")
	}
	searcher, err := websearch.NewSerpAPIClient(cfg.SerpAPIKey)
	if err != nil {
		return nil, err
	}

	arch, err := archive.Open(cfg.ArchivePath)
	if err != nil {
		return nil, err
	}

	writer := report.NewWriter(cfg.ReportsDir)
	researcher := agents.NewResearcher(provider, searcher, mem)
	analyst := agents.NewAnalyst(provider, searcher, mem)
	reporter := agents.NewReporter(provider, writer, mem)
	comparator := agents.NewComparator(provider, writer, mem)

	runner := pipeline.NewRunner(mem, cfg.StepTimeout, opts.Logf)
	pipe := pipeline.New(runner, researcher, analyst, reporter)
	orch := pipeline.NewOrchestrator(pipe, runner, comparator, &charts.JSONRenderer{Dir: cfg.ChartsDir})

	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	return &App{
		Config:       cfg,
		Store:        st,
		Memory:       mem,
		Archive:      arch,
		Writer:       writer,
		pipeline:     pipe,
		orchestrator: orch,
		logf:         logf,
	}, nil
}

// Close releases held resources
func (a *App) Close() error {
	return a.Archive.Close()
}

// AnalyzeCompany runs the single-company pipeline, scores the report and
// archives the run. Archive faults degrade to a warning; the analysis
// itself already succeeded.
func (a *App) AnalyzeCompany(ctx context.Context, company string) (*models.CompanyAnalysisResult, report.Evaluation, error) {
	result, err := a.pipeline.Analyze(ctx, company)
	if err != nil {
		return result, report.Evaluation{}, err
	}

	eval := report.EvaluateReport(result.Report, company)
	if _, err := a.Archive.Record(archive.Entry{
		SessionID:  a.Memory.SessionID(),
		Kind:       archive.KindAnalysis,
		Companies:  company,
		ReportFile: result.ReportFilename,
		Score:      eval.OverallScore,
	}); err != nil {
		a.logf("warning: failed to archive analysis: %v", err)
	}
	return result, eval, nil
}

// CompareCompanies runs the multi-company orchestration, scores the
// comparison narrative and archives the run.
func (a *App) CompareCompanies(ctx context.Context, companies []string) (*models.ComparisonResult, []pipeline.CompanyOutcome, report.Evaluation, error) {
	result, outcomes, err := a.orchestrator.Compare(ctx, companies)
	if err != nil {
		return result, outcomes, report.Evaluation{}, err
	}

	eval := report.EvaluateComparison(result.Narrative, result.Companies)
	if _, err := a.Archive.Record(archive.Entry{
		SessionID:  a.Memory.SessionID(),
		Kind:       archive.KindComparison,
		Companies:  strings.Join(result.Companies, ","),
		ReportFile: result.ReportFile,
		Score:      eval.OverallScore,
	}); err != nil {
		a.logf("warning: failed to archive comparison: %v", err)
	}
	return result, outcomes, eval, nil
}

// newProvider selects the generation backend from config
func newProvider(ctx context.Context, cfg *config.Config) (llm.Provider, error) {
	switch cfg.Provider {
	case config.ProviderGemini, "":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini API key is required (set GOOGLE_API_KEY or gemini_api_key in config)")
		}
		return llm.NewGeminiProvider(ctx, llm.GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			ModelID: cfg.GeminiModel,
		})
	case config.ProviderBedrock:
		return llm.NewBedrockProvider(ctx, llm.BedrockConfig{
			Region:  cfg.AWSRegion,
			ModelID: cfg.BedrockModel,
		})
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
