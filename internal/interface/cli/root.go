package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var versionInfo string

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rivalscope",
	Short: "Competitive intelligence report generator",
	Long: `rivalscope - research companies and generate competitive analysis reports

Runs a multi-step research pipeline (web search + LLM analysis) per company:
research, competitor discovery, competitive analysis, SWOT, pricing, and a
final markdown report. Compare mode analyzes 2-5 companies side by side with
comparison charts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to TUI if no subcommand specified
		return tuiCmd.RunE(cmd, args)
	},
}
