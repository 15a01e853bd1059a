package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const defaultEndpoint = "https://serpapi.com/search.json"

// SerpAPIClient implements Searcher against SerpAPI's google engine
type SerpAPIClient struct {
	apiKey   string
	endpoint string
	client   *retryablehttp.Client
}

// SerpAPIOption customizes a SerpAPIClient
type SerpAPIOption func(*SerpAPIClient)

// WithEndpoint overrides the API endpoint (used by tests)
func WithEndpoint(endpoint string) SerpAPIOption {
	return func(c *SerpAPIClient) {
		c.endpoint = endpoint
	}
}

// NewSerpAPIClient creates a SerpAPI-backed searcher
func NewSerpAPIClient(apiKey string, opts ...SerpAPIOption) (*SerpAPIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("serpapi API key is required")
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = nil

	c := &SerpAPIClient{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		client:   rc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type serpResponse struct {
	Error          string `json:"error"`
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// Search implements Searcher
func (c *SerpAPIClient) Search(ctx context.Context, query string, n int) ([]Result, error) {
	if n <= 0 {
		n = 5
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("num", strconv.Itoa(n))

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &SearchError{Query: query, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &SearchError{Query: query, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, &SearchError{Query: query, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &SearchError{Query: query, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var decoded serpResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &SearchError{Query: query, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if decoded.Error != "" {
		return nil, &SearchError{Query: query, Err: fmt.Errorf("api error: %s", decoded.Error)}
	}

	results := make([]Result, 0, n)
	for _, r := range decoded.OrganicResults {
		results = append(results, Result{
			Title:   r.Title,
			URL:     r.Link,
			Snippet: r.Snippet,
		})
		if len(results) >= n {
			break
		}
	}
	return results, nil
}
