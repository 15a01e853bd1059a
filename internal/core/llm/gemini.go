package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// GeminiProvider implements Provider using Google's Gemini API
type GeminiProvider struct {
	llm     *googleai.GoogleAI
	modelID string
}

// GeminiConfig holds configuration for the Gemini provider
type GeminiConfig struct {
	APIKey  string // Google AI Studio API key (required)
	ModelID string // Model ID, defaults to gemini-2.5-flash
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.ModelID == "" {
		cfg.ModelID = "gemini-2.5-flash"
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.ModelID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		llm:     llm,
		modelID: cfg.ModelID,
	}, nil
}

// GenerateText implements Provider
func (p *GeminiProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	response, err := llms.GenerateFromSinglePrompt(ctx, p.llm, prompt,
		llms.WithTemperature(0.3),
	)
	if err != nil {
		return "", &GenerationError{Provider: p.Name(), Err: err}
	}
	return response, nil
}

// Name implements Provider
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// CountTokens implements TokenCounter
func (p *GeminiProvider) CountTokens(prompt, completion string) int {
	return estimateTokens(p.modelID, prompt, completion)
}
