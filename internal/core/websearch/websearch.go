// Package websearch wraps the web-search collaborator behind a small
// request/response contract: query in, ordered result list out.
package websearch

import (
	"context"
	"fmt"
)

// Result is one organic search hit
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Searcher is the interface for web-search backends
type Searcher interface {
	// Search returns up to n results for a query, in ranking order
	Search(ctx context.Context, query string, n int) ([]Result, error)
}

// SearchError wraps a search backend failure (network, quota, bad response)
type SearchError struct {
	Query string
	Err   error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search failed for %q: %v", e.Query, e.Err)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// CompanyInfoQuery builds the query used for company research
func CompanyInfoQuery(company string) string {
	return fmt.Sprintf("%s company overview products services", company)
}

// CompetitorsQuery builds the query used for competitor discovery
func CompetitorsQuery(company string) string {
	return fmt.Sprintf("%s competitors alternatives similar companies", company)
}

// PricingQuery builds the query used for pricing research
func PricingQuery(company string) string {
	return fmt.Sprintf("%s pricing plans cost", company)
}
