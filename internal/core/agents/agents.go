// Package agents implements the LLM-backed collaborators the pipeline
// drives: research, analysis, report compilation and cross-company
// comparison.
package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/igupta/rivalscope/internal/core/llm"
	"github.com/igupta/rivalscope/internal/core/websearch"
)

// TokenSink receives best-effort token usage per generation. The memory
// manager satisfies this.
type TokenSink interface {
	AddTokens(n int)
}

// base holds the generation plumbing every agent shares
type base struct {
	provider llm.Provider
	tokens   TokenSink
}

// generate runs one prompt through the provider and accounts tokens when
// the provider can estimate them.
func (b base) generate(ctx context.Context, prompt string) (string, error) {
	out, err := b.provider.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	if b.tokens != nil {
		if tc, ok := b.provider.(llm.TokenCounter); ok {
			b.tokens.AddTokens(tc.CountTokens(prompt, out))
		}
	}
	return out, nil
}

// decodeJSONBlock parses a JSON value out of a model response, tolerating
// markdown code fences around it.
func decodeJSONBlock(s string, v any) error {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("failed to parse model response as JSON: %w", err)
	}
	return nil
}

// formatResults renders search hits the way prompts expect them
func formatResults(results []websearch.Result) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "\n%d. %s\n   %s\n   URL: %s\n", i+1, r.Title, r.Snippet, r.URL)
	}
	if b.Len() == 0 {
		return "\nNo results available.\n"
	}
	return b.String()
}

// clip bounds text fed into prompts so a long upstream answer cannot blow
// the context window.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
