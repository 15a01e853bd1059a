package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/igupta/rivalscope/internal/core/app"
	"github.com/igupta/rivalscope/internal/core/archive"
	"github.com/igupta/rivalscope/internal/core/config"
	"github.com/igupta/rivalscope/internal/core/models"
)

// AnalyzeCompanyArgs defines arguments for the analyze_company tool
type AnalyzeCompanyArgs struct {
	Company string `json:"company" jsonschema:"description=Company name to analyze,required"`
}

// CompareCompaniesArgs defines arguments for the compare_companies tool
type CompareCompaniesArgs struct {
	Companies []string `json:"companies" jsonschema:"description=2-5 company names to compare,required"`
}

// ListHistoryArgs defines arguments for the list_history tool
type ListHistoryArgs struct {
	Limit int `json:"limit,omitempty" jsonschema:"description=Max runs to return (default: 20)"`
}

// AnalysisResult is the analyze_company tool response
type AnalysisResult struct {
	Company      string  `json:"company"`
	SessionID    string  `json:"session_id"`
	ReportFile   string  `json:"report_file"`
	OverallScore float64 `json:"overall_score"`
	Competitors  int     `json:"competitors"`
}

// ComparisonSummary is the compare_companies tool response
type ComparisonSummary struct {
	Companies     []string `json:"companies"`
	Failed        []string `json:"failed,omitempty"`
	Winner        string   `json:"winner,omitempty"`
	ReportFile    string   `json:"report_file"`
	OverallScore  float64  `json:"overall_score"`
	Charts        []string `json:"charts"`
	MissingCharts []string `json:"missing_charts,omitempty"`
}

// HistoryEntry is one archived run in the list_history response
type HistoryEntry struct {
	Kind       string  `json:"kind"`
	Companies  string  `json:"companies"`
	ReportFile string  `json:"report_file"`
	Score      float64 `json:"score"`
	CreatedAt  string  `json:"created_at"`
}

// StartServer serves the analysis tools over stdio
func StartServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	s := server.NewMCPServer(
		"rivalscope",
		"1.0.0",
	)

	analyzeTool := mcp.NewTool("analyze_company",
		mcp.WithDescription("Run the full competitive analysis pipeline for one company: research, competitor discovery, competitive analysis, SWOT, pricing, and a markdown report."),
		mcp.WithString("company",
			mcp.Required(),
			mcp.Description("Company name to analyze")),
	)
	s.AddTool(analyzeTool, makeAnalyzeHandler(cfg))

	compareTool := mcp.NewTool("compare_companies",
		mcp.WithDescription("Analyze 2-5 companies and produce a comparative report with chart data. Individual company failures are tolerated as long as at least two succeed."),
		mcp.WithArray("companies",
			mcp.Required(),
			mcp.Description("2-5 company names to compare")),
	)
	s.AddTool(compareTool, makeCompareHandler(cfg))

	historyTool := mcp.NewTool("list_history",
		mcp.WithDescription("List archived analyses and comparisons, newest first"),
		mcp.WithNumber("limit",
			mcp.Description("Max runs to return (default: 20)")),
	)
	s.AddTool(historyTool, makeHistoryHandler(cfg))

	return server.ServeStdio(s)
}

func makeAnalyzeHandler(cfg *config.Config) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args AnalyzeCompanyArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if strings.TrimSpace(args.Company) == "" {
			return mcp.NewToolResultError("company is required"), nil
		}

		// Fresh session per tool call; progress stays silent over stdio
		a, err := app.New(ctx, cfg, app.Options{})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("startup failed: %v", err)), nil
		}
		defer a.Close()

		result, eval, err := a.AnalyzeCompany(ctx, args.Company)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
		}

		resultJSON, err := json.Marshal(AnalysisResult{
			Company:      result.CompanyName,
			SessionID:    a.Memory.SessionID(),
			ReportFile:   result.ReportFilename,
			OverallScore: eval.OverallScore,
			Competitors:  len(result.Competitors),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeCompareHandler(cfg *config.Config) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args CompareCompaniesArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		a, err := app.New(ctx, cfg, app.Options{})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("startup failed: %v", err)), nil
		}
		defer a.Close()

		result, outcomes, eval, err := a.CompareCompanies(ctx, args.Companies)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
		}

		summary := ComparisonSummary{
			Companies:    result.Companies,
			Winner:       result.Winner,
			ReportFile:   result.ReportFile,
			OverallScore: eval.OverallScore,
		}
		for _, oc := range outcomes {
			if oc.Err != nil {
				summary.Failed = append(summary.Failed, oc.Company)
			}
		}
		for _, ct := range models.AllChartTypes {
			if artifact, ok := result.Charts[ct]; ok {
				summary.Charts = append(summary.Charts, artifact.Path)
			}
		}
		for _, ct := range result.MissingCharts {
			summary.MissingCharts = append(summary.MissingCharts, string(ct))
		}

		resultJSON, err := json.Marshal(summary)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeHistoryHandler(cfg *config.Config) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ListHistoryArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		limit := args.Limit
		if limit == 0 {
			limit = 20
		}

		arch, err := archive.Open(cfg.ArchivePath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to open archive: %v", err)), nil
		}
		defer arch.Close()

		entries, err := arch.List(time.Time{})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
		}
		if len(entries) > limit {
			entries = entries[:limit]
		}

		runs := make([]HistoryEntry, 0, len(entries))
		for _, e := range entries {
			runs = append(runs, HistoryEntry{
				Kind:       e.Kind,
				Companies:  e.Companies,
				ReportFile: e.ReportFile,
				Score:      e.Score,
				CreatedAt:  e.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		resultJSON, err := json.Marshal(map[string]any{"runs": runs})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}
