package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/igupta/rivalscope/internal/core/llm"
	"github.com/igupta/rivalscope/internal/core/models"
	"github.com/igupta/rivalscope/internal/core/websearch"
)

const (
	companyResultCount    = 3
	competitorResultCount = 5
)

// Researcher gathers and synthesizes raw material about a company and its
// competitive landscape: web search in, structured summaries out.
type Researcher struct {
	base
	search websearch.Searcher
}

// NewResearcher creates a researcher over a generation provider and a
// search backend. tokens may be nil.
func NewResearcher(provider llm.Provider, search websearch.Searcher, tokens TokenSink) *Researcher {
	return &Researcher{base: base{provider: provider, tokens: tokens}, search: search}
}

// ResearchCompany searches for the company and distills the hits into a
// structured profile: overview, products, target market, differentiators.
func (r *Researcher) ResearchCompany(ctx context.Context, company string) (string, error) {
	results, err := r.search.Search(ctx, websearch.CompanyInfoQuery(company), companyResultCount)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Based on the following search results about %s, extract key information:

Search Results:
%s
Provide a structured summary with:
1. Company Overview (what they do, their mission)
2. Main Products/Services
3. Target Market
4. Key Features/Differentiators

Keep it concise and factual.
`, company, formatResults(results))

	return r.generate(ctx, prompt)
}

// DiscoverCompetitors identifies the 3-5 main competitors. The model is
// asked for strict JSON so the list parses into typed competitors; the
// overview text is rendered from the parsed list.
func (r *Researcher) DiscoverCompetitors(ctx context.Context, company string) ([]models.Competitor, string, error) {
	results, err := r.search.Search(ctx, websearch.CompetitorsQuery(company), competitorResultCount)
	if err != nil {
		return nil, "", err
	}

	prompt := fmt.Sprintf(`Based on these search results about %s's competitors:
%s
Identify the top 3-5 main competitors. Respond ONLY with valid JSON in this exact format:
[
  {
    "name": "Competitor name",
    "description": "Brief description",
    "reason": "Why they're a competitor"
  }
]

DO NOT include any text outside the JSON. Only output valid JSON.
`, company, formatResults(results))

	out, err := r.generate(ctx, prompt)
	if err != nil {
		return nil, "", err
	}

	var competitors []models.Competitor
	if err := decodeJSONBlock(out, &competitors); err != nil {
		return nil, "", err
	}
	if len(competitors) == 0 {
		return nil, "", fmt.Errorf("no competitors identified for %s", company)
	}
	return competitors, competitorsOverview(competitors), nil
}

// competitorsOverview renders the identified competitors as the numbered
// list downstream analysis prompts consume.
func competitorsOverview(competitors []models.Competitor) string {
	var b strings.Builder
	for i, c := range competitors {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c.Name)
		if c.Description != "" {
			fmt.Fprintf(&b, "   Description: %s\n", c.Description)
		}
		if c.Reason != "" {
			fmt.Fprintf(&b, "   Why they're a competitor: %s\n", c.Reason)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
