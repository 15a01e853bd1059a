package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/igupta/rivalscope/internal/core/charts"
	"github.com/igupta/rivalscope/internal/core/llm"
	"github.com/igupta/rivalscope/internal/core/models"
	"github.com/igupta/rivalscope/internal/core/report"
)

// metricClipLen bounds per-company analysis text in the metric-extraction
// prompt.
const metricClipLen = 500

// Comparator aggregates per-company analyses into the cross-company
// narrative, picks the overall leader, and extracts the 1-10 metric
// scores the charts are built from.
type Comparator struct {
	base
	writer *report.Writer
}

// NewComparator creates a comparator writing through w. tokens may be nil.
func NewComparator(provider llm.Provider, w *report.Writer, tokens TokenSink) *Comparator {
	return &Comparator{base: base{provider: provider, tokens: tokens}, writer: w}
}

// Compare produces the comparison narrative and metric scores. Metric
// extraction is best-effort: when it fails the narrative and winner are
// still returned with nil metrics, and the chart steps report the gap.
func (c *Comparator) Compare(ctx context.Context, results []*models.CompanyAnalysisResult) (string, string, charts.MetricSet, error) {
	narrative, err := c.generate(ctx, comparisonPrompt(results))
	if err != nil {
		return "", "", nil, err
	}

	metrics, err := c.extractMetrics(ctx, results)
	if err != nil {
		return narrative, "", nil, nil
	}
	return narrative, winnerFromMetrics(metrics), metrics, nil
}

// SaveComparisonReport exports the framed comparison document
func (c *Comparator) SaveComparisonReport(narrative string, result *models.ComparisonResult) (string, error) {
	return c.writer.SaveComparison(narrative, result)
}

func comparisonPrompt(results []*models.CompanyAnalysisResult) string {
	names := companyNames(results)

	var b strings.Builder
	fmt.Fprintf(&b, `You are a business analyst comparing multiple companies. Based on the comprehensive data provided for each company, create a detailed comparative analysis.

COMPANIES BEING COMPARED: %s

`, strings.Join(names, ", "))

	divider := strings.Repeat("=", 80)
	for i, r := range results {
		fmt.Fprintf(&b, `%s
COMPANY %d: %s
%s

Company Overview:
%s

Competitors:
%s

Competitive Analysis:
%s

SWOT Analysis:
%s

Pricing:
%s

`, divider, i+1, r.CompanyName, divider,
			r.Profile, r.CompetitorsOverview, r.CompetitiveAnalysis,
			swotMarkdown(r.SWOT), r.PricingAnalysis)
	}

	fmt.Fprintf(&b, `Based on ALL the above data, create a comprehensive multi-company comparison with these sections:

## Comparative Analysis: %s

### 1. Market Position Comparison
Compare how each company is positioned in the market:
- Market share and dominance
- Target audience and segments
- Geographic presence
- Brand strength

### 2. Product & Service Comparison
Compare offerings:
- Core products/services
- Feature differentiation
- Innovation and unique value propositions
- Product maturity

### 3. Competitive Advantages
For each company, identify:
- Unique strengths
- What makes them stand out
- Areas where they lead

### 4. Competitive Weaknesses
For each company, identify:
- Vulnerabilities
- Areas where competitors have advantage
- Market gaps they haven't filled

### 5. Pricing Strategy Comparison
Compare pricing approaches:
- Pricing models
- Value positioning (premium vs budget)
- Pricing flexibility

### 6. SWOT Comparison Matrix
Create a side-by-side comparison of:
- Key strengths of each
- Main weaknesses of each
- Biggest opportunities
- Common threats

### 7. Head-to-Head Analysis
Direct comparison addressing:
- Who is winning in different segments?
- Feature parity analysis
- Customer preference indicators

### 8. Strategic Positioning
- Where each company fits in the competitive landscape
- Future trajectory predictions
- Strategic moves to watch

### 9. Winner Analysis
For different criteria, identify the leader:
- Best for enterprise customers
- Best for startups/SMBs
- Best pricing value
- Best innovation
- Best market position

### 10. Final Verdict
Overall comparison summary and insights.

Be specific, data-driven, and objective. Use the actual information provided for each company.
`, strings.Join(names, " vs "))

	return b.String()
}

// extractMetrics asks for 1-10 scores across the standard dimensions as
// strict JSON, then validates the scores cover every company and metric.
func (c *Comparator) extractMetrics(ctx context.Context, results []*models.CompanyAnalysisResult) (charts.MetricSet, error) {
	names := companyNames(results)

	var b strings.Builder
	fmt.Fprintf(&b, `Based on the following company analysis data, extract numerical scores (1-10 scale) for comparison.

Companies: %s

Data for each company:
`, strings.Join(names, ", "))

	for i, r := range results {
		fmt.Fprintf(&b, `
Company %d: %s
SWOT: %s
Competitive Analysis: %s
`, i+1, r.CompanyName, clip(swotMarkdown(r.SWOT), metricClipLen), clip(r.CompetitiveAnalysis, metricClipLen))
	}

	b.WriteString(`
Extract comparison scores (1-10) for these categories:
`)
	for i, metric := range charts.MetricNames {
		fmt.Fprintf(&b, "%d. %s\n", i+1, metric)
	}
	fmt.Fprintf(&b, `
Respond ONLY with valid JSON in this exact format:
{
  "%s": {
    "Market Position": 8,
    "Product Quality": 9,
    "Innovation": 7,
    "Pricing Value": 6,
    "Customer Satisfaction": 8,
    "Growth Potential": 9,
    "Brand Strength": 7,
    "Technology Stack": 8
  }
}

Include every company. DO NOT include any text outside the JSON. Only output valid JSON.
`, names[0])

	out, err := c.generate(ctx, b.String())
	if err != nil {
		return nil, err
	}

	var metrics charts.MetricSet
	if err := decodeJSONBlock(out, &metrics); err != nil {
		return nil, err
	}
	if err := metrics.Validate(names); err != nil {
		return nil, err
	}
	return metrics, nil
}

// winnerFromMetrics picks the company with the highest mean score
func winnerFromMetrics(ms charts.MetricSet) string {
	var winner string
	var best float64
	for company, scores := range ms {
		var sum float64
		for _, v := range scores {
			sum += v
		}
		mean := sum / float64(len(scores))
		if winner == "" || mean > best || (mean == best && company < winner) {
			winner = company
			best = mean
		}
	}
	return winner
}

func companyNames(results []*models.CompanyAnalysisResult) []string {
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.CompanyName)
	}
	return names
}
