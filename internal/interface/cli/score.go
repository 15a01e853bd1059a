package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/igupta/rivalscope/internal/core/report"
)

var scoreCmd = &cobra.Command{
	Use:   "score <report.md>",
	Short: "Score a generated report for completeness and quality",
	Long: `Evaluate a markdown report against the expected structure: required
sections, SWOT coverage, length and strategic elements. Comparison reports
(filenames starting with "comparison_") are scored against the comparison
section set instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

var scoreCompanies []string

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringSliceVar(&scoreCompanies, "companies", nil, "Company names for comparison coverage checks")
}

func runScore(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}
	doc := string(data)

	var eval report.Evaluation
	if strings.HasPrefix(filepath.Base(path), "comparison_") {
		companies := scoreCompanies
		if len(companies) == 0 {
			companies = companiesFromFilename(path)
		}
		eval = report.EvaluateComparison(doc, companies)
	} else {
		eval = report.EvaluateReport(doc, companyFromFilename(path))
	}

	fmt.Printf("Overall:       %.1f/100\n", eval.OverallScore)
	fmt.Printf("Completeness:  %.1f/100\n", eval.CompletenessScore)
	fmt.Printf("Quality:       %.1f/100\n", eval.QualityScore)
	fmt.Printf("Words:         %d\n", eval.WordCount)
	if len(eval.SectionsMissing) > 0 {
		fmt.Printf("Missing:       %s\n", strings.Join(eval.SectionsMissing, ", "))
	}
	for _, r := range eval.Recommendations {
		fmt.Printf("  - %s\n", r)
	}
	return nil
}

// companyFromFilename recovers the company name from
// <Company>_competitive_analysis_<ts>.md.
func companyFromFilename(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "_competitive_analysis_"); i > 0 {
		return strings.ReplaceAll(base[:i], "_", " ")
	}
	return ""
}

// companiesFromFilename recovers names from comparison_<A>_vs_<B>_<ts>.md
func companiesFromFilename(path string) []string {
	base := strings.TrimSuffix(filepath.Base(path), ".md")
	base = strings.TrimPrefix(base, "comparison_")
	// Strip the trailing _YYYYMMDD_HHMMSS timestamp
	parts := strings.Split(base, "_")
	if len(parts) > 2 {
		parts = parts[:len(parts)-2]
	}
	joined := strings.Join(parts, "_")
	var companies []string
	for _, name := range strings.Split(joined, "_vs_") {
		if name = strings.ReplaceAll(name, "_", " "); name != "" {
			companies = append(companies, name)
		}
	}
	return companies
}
