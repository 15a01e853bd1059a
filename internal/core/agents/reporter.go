package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/igupta/rivalscope/internal/core/llm"
	"github.com/igupta/rivalscope/internal/core/models"
	"github.com/igupta/rivalscope/internal/core/report"
)

// Reporter compiles the per-company findings into the final markdown
// report and exports it through the report writer.
type Reporter struct {
	base
	writer *report.Writer
	now    func() time.Time
}

// NewReporter creates a reporter writing through w. tokens may be nil.
func NewReporter(provider llm.Provider, w *report.Writer, tokens TokenSink) *Reporter {
	return &Reporter{base: base{provider: provider, tokens: tokens}, writer: w, now: time.Now}
}

// CompileReport synthesizes every analysis stage into one professional
// markdown document.
func (r *Reporter) CompileReport(ctx context.Context, result *models.CompanyAnalysisResult) (string, error) {
	company := result.CompanyName

	prompt := fmt.Sprintf(`You are a business intelligence analyst. Generate a comprehensive competitive analysis report.

Use ALL the following data to create a professional report:

COMPANY RESEARCH:
%s

IDENTIFIED COMPETITORS:
%s

COMPETITIVE ANALYSIS:
%s

SWOT ANALYSIS:
%s

PRICING ANALYSIS:
%s

Create a professional report with these sections:

# Competitive Analysis Report: %s
*Generated on %s*

---

## Executive Summary
[2-3 paragraph overview of key findings]

---

## 1. Company Overview
[Details about %s]

---

## 2. Competitive Landscape
[Overview of main competitors and market dynamics]

---

## 3. Competitive Analysis
[Detailed comparison with competitors]

---

## 4. SWOT Analysis
[Present the SWOT in clear format]

---

## 5. Pricing Strategy Analysis
[Pricing positioning and recommendations]

---

## 6. Strategic Recommendations
[3-5 actionable strategic recommendations based on the analysis]

---

## Conclusion
[Final thoughts and key takeaways]

Make it professional, data-driven, and actionable. Use markdown formatting.
`, result.Profile, result.CompetitorsOverview, result.CompetitiveAnalysis,
		swotMarkdown(result.SWOT), result.PricingAnalysis,
		company, r.now().Format("January 2, 2006"), company)

	return r.generate(ctx, prompt)
}

// SaveReport exports the compiled report and returns its path
func (r *Reporter) SaveReport(reportDoc, company string) (string, error) {
	return r.writer.SaveAnalysis(reportDoc, company)
}

// swotMarkdown renders a SWOT struct back into the four-heading bullet
// format prompts and reports use.
func swotMarkdown(s models.SWOT) string {
	var b strings.Builder
	sections := []struct {
		heading string
		items   []string
	}{
		{"STRENGTHS", s.Strengths},
		{"WEAKNESSES", s.Weaknesses},
		{"OPPORTUNITIES", s.Opportunities},
		{"THREATS", s.Threats},
	}
	for _, sec := range sections {
		fmt.Fprintf(&b, "**%s:**\n", sec.heading)
		for _, item := range sec.items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
