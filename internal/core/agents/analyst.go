package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/igupta/rivalscope/internal/core/llm"
	"github.com/igupta/rivalscope/internal/core/models"
	"github.com/igupta/rivalscope/internal/core/websearch"
)

// pricingCompetitorLimit caps competitor pricing searches to keep the
// search quota spend bounded.
const pricingCompetitorLimit = 2

const pricingResultCount = 3

// Analyst turns research output into competitive, SWOT and pricing
// analysis.
type Analyst struct {
	base
	search websearch.Searcher
}

// NewAnalyst creates an analyst. The searcher is only used for pricing
// research; tokens may be nil.
func NewAnalyst(provider llm.Provider, search websearch.Searcher, tokens TokenSink) *Analyst {
	return &Analyst{base: base{provider: provider, tokens: tokens}, search: search}
}

// AnalyzeCompetition positions the company against its identified
// competitors across market position, advantages, disadvantages, features
// and audience overlap.
func (a *Analyst) AnalyzeCompetition(ctx context.Context, company, profile, competitorsOverview string) (string, error) {
	prompt := fmt.Sprintf(`You are a business analyst. Perform a competitive analysis based on this data:

TARGET COMPANY: %s
%s

COMPETITORS:
%s

Provide a competitive analysis covering:

1. **Market Position**: Where does %s stand relative to competitors?

2. **Competitive Advantages**: What are %s's unique strengths?

3. **Competitive Disadvantages**: Where do competitors have an edge?

4. **Feature Comparison**: Compare key features/offerings across competitors

5. **Target Audience Overlap**: How similar are the target markets?

Be specific and data-driven. Use the information provided.
`, company, profile, competitorsOverview, company, company)

	return a.generate(ctx, prompt)
}

// GenerateSWOT produces a four-category SWOT and parses it into lists.
// A response none of whose categories parse is an error.
func (a *Analyst) GenerateSWOT(ctx context.Context, company, profile, competitiveAnalysis string) (models.SWOT, error) {
	prompt := fmt.Sprintf(`Based on this information about %s:

COMPANY OVERVIEW:
%s

COMPETITIVE ANALYSIS:
%s

Generate a comprehensive SWOT analysis:

**STRENGTHS:**
- List 4-5 key strengths

**WEAKNESSES:**
- List 4-5 key weaknesses

**OPPORTUNITIES:**
- List 4-5 market opportunities

**THREATS:**
- List 4-5 threats from competition/market

Be specific and actionable.
`, company, profile, competitiveAnalysis)

	out, err := a.generate(ctx, prompt)
	if err != nil {
		return models.SWOT{}, err
	}

	swot := parseSWOT(out)
	if swot.Empty() {
		return models.SWOT{}, fmt.Errorf("failed to parse SWOT response for %s", company)
	}
	return swot, nil
}

// AnalyzePricing researches current pricing for the company and up to two
// competitors, then positions the pricing strategy.
func (a *Analyst) AnalyzePricing(ctx context.Context, company string, competitors []string) (string, error) {
	companyPricing, err := a.search.Search(ctx, websearch.PricingQuery(company), pricingResultCount)
	if err != nil {
		return "", err
	}

	var competitorBlock strings.Builder
	for i, competitor := range competitors {
		if i >= pricingCompetitorLimit {
			break
		}
		results, err := a.search.Search(ctx, websearch.PricingQuery(competitor), pricingResultCount)
		if err != nil {
			// Competitor pricing is supplementary; note the gap and move on
			fmt.Fprintf(&competitorBlock, "\n%s:\nNo pricing data available.\n", competitor)
			continue
		}
		fmt.Fprintf(&competitorBlock, "\n%s:%s", competitor, formatResults(results))
	}

	prompt := fmt.Sprintf(`Analyze the pricing strategy based on this data:

%s Pricing:
%s
Competitor Pricing:
%s

Provide:
1. Pricing positioning (premium/mid-tier/budget)
2. Comparison with competitors
3. Pricing strategy recommendations

Keep it concise.
`, company, formatResults(companyPricing), competitorBlock.String())

	return a.generate(ctx, prompt)
}

// swot section headings as the prompt requests them; matching tolerates
// missing bold markers and a trailing colon.
var swotHeadings = []struct {
	name   string
	assign func(*models.SWOT, []string)
}{
	{"STRENGTHS", func(s *models.SWOT, items []string) { s.Strengths = items }},
	{"WEAKNESSES", func(s *models.SWOT, items []string) { s.Weaknesses = items }},
	{"OPPORTUNITIES", func(s *models.SWOT, items []string) { s.Opportunities = items }},
	{"THREATS", func(s *models.SWOT, items []string) { s.Threats = items }},
}

// parseSWOT splits a SWOT response into its four bullet lists
func parseSWOT(text string) models.SWOT {
	var swot models.SWOT
	var current func(*models.SWOT, []string)
	var items []string

	flush := func() {
		if current != nil && len(items) > 0 {
			current(&swot, items)
		}
		items = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if heading := swotHeading(trimmed); heading != nil {
			flush()
			current = heading
			continue
		}
		if current == nil {
			continue
		}
		if item, ok := bulletItem(trimmed); ok {
			items = append(items, item)
		}
	}
	flush()
	return swot
}

func swotHeading(line string) func(*models.SWOT, []string) {
	normalized := strings.ToUpper(strings.Trim(line, "*#: "))
	for _, h := range swotHeadings {
		if strings.HasPrefix(normalized, h.name) {
			return h.assign
		}
	}
	return nil
}

func bulletItem(line string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, marker) {
			item := strings.TrimSpace(strings.TrimPrefix(line, marker))
			item = strings.Trim(item, "*")
			if item != "" {
				return item, true
			}
		}
	}
	return "", false
}
