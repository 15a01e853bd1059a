package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/igupta/rivalscope/internal/core/archive"
	"github.com/igupta/rivalscope/internal/core/config"
	"github.com/igupta/rivalscope/internal/core/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show archive and session statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	arch, err := archive.Open(cfg.ArchivePath)
	if err != nil {
		return err
	}
	defer arch.Close()

	stats, err := arch.Stats()
	if err != nil {
		return err
	}

	fmt.Println("Archive Statistics")
	fmt.Println("==================")
	fmt.Println()
	fmt.Printf("Total Runs:        %d\n", stats.TotalRuns)
	fmt.Printf("Analyses:          %d\n", stats.Analyses)
	fmt.Printf("Comparisons:       %d\n", stats.Comparisons)
	fmt.Printf("Distinct Subjects: %d\n", stats.Companies)
	if stats.TotalRuns > 0 {
		fmt.Printf("Average Score:     %.1f/100\n", stats.AverageScore)
		fmt.Printf("Most Recent:       %s\n", humanize.Time(stats.Newest))
	}
	fmt.Println()

	st, err := store.New(cfg.SessionsDir)
	if err != nil {
		return err
	}
	ids, err := st.List()
	if err != nil {
		return err
	}
	fmt.Printf("Sessions on disk:  %d (%s)\n", len(ids), cfg.SessionsDir)

	if info, err := os.Stat(cfg.ArchivePath); err == nil {
		fmt.Printf("Archive Location:  %s\n", cfg.ArchivePath)
		fmt.Printf("Archive Size:      %s\n", humanize.Bytes(uint64(info.Size())))
	}
	return nil
}
