package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
)

// Provider is the interface for LLM backends
type Provider interface {
	// GenerateText generates text from a prompt
	GenerateText(ctx context.Context, prompt string) (string, error)

	// Name returns the provider name (e.g., "gemini", "bedrock")
	Name() string
}

// GenerationError wraps a provider failure (quota, timeout, malformed
// response) with the provider name attached.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// TokenCounter reports best-effort token usage for accounting. Providers
// that cannot estimate return zero.
type TokenCounter interface {
	CountTokens(prompt, completion string) int
}

// estimateTokens approximates prompt+completion token usage with the
// tokenizer langchaingo ships. Zero means no estimate is available.
func estimateTokens(model, prompt, completion string) int {
	n := llms.CountTokens(model, prompt) + llms.CountTokens(model, completion)
	if n < 0 {
		return 0
	}
	return n
}
