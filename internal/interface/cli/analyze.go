package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/igupta/rivalscope/internal/core/app"
	"github.com/igupta/rivalscope/internal/core/config"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <company>",
	Short: "Run a full competitive analysis for one company",
	Long: `Run the six-step analysis pipeline for a company: research, competitor
discovery, competitive analysis, SWOT, pricing, and report compilation.

Examples:
  rivalscope analyze Notion
  rivalscope analyze "Microsoft Teams" --copy
  rivalscope analyze Notion --session session_20260829_143005`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeCopy      bool
	analyzeSession   string
	analyzeOverwrite bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeCopy, "copy", false, "Copy the report markdown to the clipboard")
	analyzeCmd.Flags().StringVar(&analyzeSession, "session", "", "Resume an existing session ID")
	analyzeCmd.Flags().BoolVar(&analyzeOverwrite, "overwrite", false, "Replace the session file on ID collision")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	company := strings.TrimSpace(strings.Join(args, " "))
	if company == "" {
		return fmt.Errorf("company name cannot be empty")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a, err := app.New(cmd.Context(), cfg, app.Options{
		SessionID: analyzeSession,
		Overwrite: analyzeOverwrite,
		Logf:      progressLogf,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Printf("Analyzing %s (session %s)\n\n", company, a.Memory.SessionID())

	result, eval, err := a.AnalyzeCompany(cmd.Context(), company)
	if err != nil {
		printPartialProgress(result)
		return err
	}

	stats := a.Memory.Statistics()
	fmt.Println()
	fmt.Printf("Report:   %s\n", result.ReportFilename)
	fmt.Printf("Score:    %.1f/100 (completeness %.1f, quality %.1f)\n",
		eval.OverallScore, eval.CompletenessScore, eval.QualityScore)
	fmt.Printf("Session:  %s (%d messages, ~%d tokens)\n",
		stats.SessionID, stats.MessageCount, stats.TokensUsed)

	if analyzeCopy {
		if err := clipboard.WriteAll(result.Report); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to copy report to clipboard: %v\n", err)
		} else {
			fmt.Println("Report copied to clipboard")
		}
	}
	return nil
}

func progressLogf(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}
