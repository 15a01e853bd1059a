package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/igupta/rivalscope/internal/core/app"
	"github.com/igupta/rivalscope/internal/core/config"
	"github.com/igupta/rivalscope/internal/core/models"
)

var compareCmd = &cobra.Command{
	Use:   "compare <company1> <company2> [company3...]",
	Short: "Analyze and compare 2-5 companies side by side",
	Long: `Run the full analysis pipeline for each company, then generate a
comparative report with radar, bar and heatmap chart data.

A company that fails to analyze does not abort the others; the comparison
proceeds as long as at least two succeed.

Examples:
  rivalscope compare Slack "Microsoft Teams"
  rivalscope compare Amazon Flipkart Walmart`,
	Args: cobra.RangeArgs(2, 5),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a, err := app.New(cmd.Context(), cfg, app.Options{Logf: progressLogf})
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Printf("Comparing %d companies (session %s)\n\n", len(args), a.Memory.SessionID())

	result, outcomes, eval, err := a.CompareCompanies(cmd.Context(), args)
	if len(outcomes) > 0 {
		fmt.Println()
		printOutcomes(outcomes)
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Report:   %s\n", result.ReportFile)
	if result.Winner != "" {
		fmt.Printf("Leader:   %s\n", result.Winner)
	}
	fmt.Printf("Score:    %.1f/100\n", eval.OverallScore)
	for _, ct := range models.AllChartTypes {
		if artifact, ok := result.Charts[ct]; ok {
			fmt.Printf("Chart:    %-8s %s\n", ct, artifact.Path)
		}
	}
	for _, ct := range result.MissingCharts {
		fmt.Printf("Chart:    %-8s (generation failed)\n", ct)
	}
	return nil
}
