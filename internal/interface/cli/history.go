package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"

	"github.com/igupta/rivalscope/internal/core/archive"
	"github.com/igupta/rivalscope/internal/core/config"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past analyses and comparisons",
	Long: `List archived runs, newest first.

The --since filter accepts natural language dates:
  rivalscope history --since "last week"
  rivalscope history --since yesterday
  rivalscope history --since "3 days ago"`,
	RunE: runHistory,
}

var historySince string

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historySince, "since", "", "Only show runs since this date (natural language)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	arch, err := archive.Open(cfg.ArchivePath)
	if err != nil {
		return err
	}
	defer arch.Close()

	var since time.Time
	if historySince != "" {
		since, err = parseSince(historySince)
		if err != nil {
			return err
		}
	}

	entries, err := arch.List(since)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No runs found. Try: rivalscope analyze <company>")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%-12s %-30s %5.1f  %-14s %s\n",
			e.Kind, e.Companies, e.Score, humanize.Time(e.CreatedAt), e.ReportFile)
	}
	return nil
}

// parseSince turns natural language like "last week" into a time
func parseSince(s string) (time.Time, error) {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	r, err := w.Parse(s, time.Now())
	if err != nil || r == nil {
		return time.Time{}, fmt.Errorf("could not parse date %q", s)
	}
	return r.Time, nil
}
