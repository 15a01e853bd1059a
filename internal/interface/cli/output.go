package cli

import (
	"fmt"

	"github.com/igupta/rivalscope/internal/core/models"
	"github.com/igupta/rivalscope/internal/core/pipeline"
)

// printPartialProgress shows how far a failed analysis got so the user
// knows which data survived.
func printPartialProgress(result *models.CompanyAnalysisResult) {
	if result == nil {
		return
	}
	steps := []struct {
		name string
		done bool
	}{
		{"company research", result.Profile != ""},
		{"competitor discovery", len(result.Competitors) > 0},
		{"competitive analysis", result.CompetitiveAnalysis != ""},
		{"SWOT analysis", !result.SWOT.Empty()},
		{"pricing analysis", result.PricingAnalysis != ""},
		{"report compilation", result.Report != ""},
	}
	fmt.Println()
	for _, s := range steps {
		mark := " "
		if s.done {
			mark = "x"
		}
		fmt.Printf("  [%s] %s\n", mark, s.name)
	}
}

// printOutcomes summarizes per-company results of a comparison run
func printOutcomes(outcomes []pipeline.CompanyOutcome) {
	for _, oc := range outcomes {
		if oc.Err != nil {
			fmt.Printf("  %-20s failed: %v\n", oc.Company, oc.Err)
		} else {
			fmt.Printf("  %-20s ok (%s)\n", oc.Company, oc.Result.ReportFilename)
		}
	}
}
