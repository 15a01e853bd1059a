package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/igupta/rivalscope/internal/core/app"
	"github.com/igupta/rivalscope/internal/core/config"
	"github.com/igupta/rivalscope/internal/core/models"
)

type stepLogMsg string

type runDoneMsg struct {
	summary []string
	err     error
}

// listen pulls the next progress message off the run channel. Update
// re-issues it after every received message.
func listen(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// startAnalysis runs the single-company pipeline in the background,
// streaming step logs through ch and ending with a runDoneMsg.
func startAnalysis(cfg *config.Config, company string, ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			logf := func(format string, args ...any) {
				ch <- stepLogMsg(fmt.Sprintf(format, args...))
			}

			a, err := app.New(context.Background(), cfg, app.Options{Logf: logf})
			if err != nil {
				ch <- runDoneMsg{err: err}
				return
			}
			defer a.Close()

			result, eval, err := a.AnalyzeCompany(context.Background(), company)
			if err != nil {
				ch <- runDoneMsg{err: err}
				return
			}
			ch <- runDoneMsg{summary: []string{
				fmt.Sprintf("Report: %s", result.ReportFilename),
				fmt.Sprintf("Score:  %.1f/100", eval.OverallScore),
			}}
		}()
		return <-ch
	}
}

// startComparison runs the multi-company orchestration in the background
func startComparison(cfg *config.Config, companies []string, ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			logf := func(format string, args ...any) {
				ch <- stepLogMsg(fmt.Sprintf(format, args...))
			}

			a, err := app.New(context.Background(), cfg, app.Options{Logf: logf})
			if err != nil {
				ch <- runDoneMsg{err: err}
				return
			}
			defer a.Close()

			result, outcomes, eval, err := a.CompareCompanies(context.Background(), companies)
			if err != nil {
				for _, oc := range outcomes {
					if oc.Err != nil {
						ch <- stepLogMsg(fmt.Sprintf("%s failed: %v", oc.Company, oc.Err))
					}
				}
				ch <- runDoneMsg{err: err}
				return
			}

			summary := []string{
				fmt.Sprintf("Report: %s", result.ReportFile),
				fmt.Sprintf("Score:  %.1f/100", eval.OverallScore),
			}
			if result.Winner != "" {
				summary = append(summary, fmt.Sprintf("Leader: %s", result.Winner))
			}
			for _, ct := range models.AllChartTypes {
				if artifact, ok := result.Charts[ct]; ok {
					summary = append(summary, fmt.Sprintf("Chart:  %s", artifact.Path))
				}
			}
			if len(result.MissingCharts) > 0 {
				names := make([]string, 0, len(result.MissingCharts))
				for _, ct := range result.MissingCharts {
					names = append(names, string(ct))
				}
				summary = append(summary, fmt.Sprintf("Missing charts: %s", strings.Join(names, ", ")))
			}
			ch <- runDoneMsg{summary: summary}
		}()
		return <-ch
	}
}
