// Package config loads rivalscope settings from
// ~/.config/rivalscope/config.toml with environment-variable fallbacks.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Provider backends
const (
	ProviderGemini  = "gemini"
	ProviderBedrock = "bedrock"
)

const (
	DefaultGeminiModel  = "gemini-2.5-flash"
	DefaultBedrockModel = "anthropic.claude-3-5-haiku-20241022-v1:0"
)

// Config holds every setting the application reads
type Config struct {
	Provider     string // "gemini" or "bedrock"
	GeminiAPIKey string
	GeminiModel  string
	BedrockModel string
	AWSRegion    string
	SerpAPIKey   string
	SessionsDir  string
	ReportsDir   string
	ChartsDir    string
	ArchivePath  string
	StepTimeout  time.Duration
}

type tomlConfig struct {
	Provider       string `toml:"provider"`
	GeminiAPIKey   string `toml:"gemini_api_key"`
	GeminiModel    string `toml:"gemini_model"`
	BedrockModel   string `toml:"bedrock_model"`
	AWSRegion      string `toml:"aws_region"`
	SerpAPIKey     string `toml:"serpapi_key"`
	SessionsDir    string `toml:"sessions_dir"`
	ReportsDir     string `toml:"reports_dir"`
	ChartsDir      string `toml:"charts_dir"`
	ArchivePath    string `toml:"archive_path"`
	StepTimeoutSec int    `toml:"step_timeout_seconds"`
}

// Load reads config from ~/.config/rivalscope/. A missing or unreadable
// config file is not an error; defaults and environment variables apply.
func Load() (*Config, error) {
	cfg := &Config{
		Provider:     ProviderGemini,
		GeminiModel:  DefaultGeminiModel,
		BedrockModel: DefaultBedrockModel,
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dataDir := filepath.Join(home, ".local", "share", "rivalscope")
	cfg.SessionsDir = filepath.Join(dataDir, "sessions")
	cfg.ReportsDir = filepath.Join(dataDir, "reports")
	cfg.ChartsDir = filepath.Join(dataDir, "charts")
	cfg.ArchivePath = filepath.Join(dataDir, "archive.db")

	tomlPath := filepath.Join(home, ".config", "rivalscope", "config.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err == nil {
			applyTOML(cfg, tc)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyTOML(cfg *Config, tc tomlConfig) {
	if tc.Provider != "" {
		cfg.Provider = tc.Provider
	}
	if tc.GeminiAPIKey != "" {
		cfg.GeminiAPIKey = tc.GeminiAPIKey
	}
	if tc.GeminiModel != "" {
		cfg.GeminiModel = tc.GeminiModel
	}
	if tc.BedrockModel != "" {
		cfg.BedrockModel = tc.BedrockModel
	}
	if tc.AWSRegion != "" {
		cfg.AWSRegion = tc.AWSRegion
	}
	if tc.SerpAPIKey != "" {
		cfg.SerpAPIKey = tc.SerpAPIKey
	}
	if tc.SessionsDir != "" {
		cfg.SessionsDir = tc.SessionsDir
	}
	if tc.ReportsDir != "" {
		cfg.ReportsDir = tc.ReportsDir
	}
	if tc.ChartsDir != "" {
		cfg.ChartsDir = tc.ChartsDir
	}
	if tc.ArchivePath != "" {
		cfg.ArchivePath = tc.ArchivePath
	}
	if tc.StepTimeoutSec > 0 {
		cfg.StepTimeout = time.Duration(tc.StepTimeoutSec) * time.Second
	}
}

// applyEnv lets environment variables override file settings; the API key
// names are the ones the upstream services document.
func applyEnv(cfg *Config) {
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("SERPAPI_KEY"); v != "" {
		cfg.SerpAPIKey = v
	}
	if v := os.Getenv("RIVALSCOPE_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" && cfg.AWSRegion == "" {
		cfg.AWSRegion = v
	}
}
