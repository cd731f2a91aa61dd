// Package config assembles the injected configuration object. Everything
// below cmd/ receives its settings through this struct; nothing in the
// pipeline or providers reads the environment directly.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Supported provider names.
const (
	ProviderGemini   = "gemini"
	ProviderGoogleAI = "googleai"
	ProviderOllama   = "ollama"
	ProviderOpenAI   = "openai"
)

// Config carries everything the pipeline needs at construction.
type Config struct {
	APIKey       string `yaml:"api_key"`
	APIBaseURL   string `yaml:"api_base_url"`
	Provider     string `yaml:"provider"`
	Model        string `yaml:"model"`
	OllamaHost   string `yaml:"ollama_host"`
	OpenAIAPIKey string `yaml:"openai_api_key"`
}

// Load reads an optional YAML file and applies environment overrides on
// top. An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := &Config{Provider: ProviderGemini}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if cfg.Provider == "" {
		cfg.Provider = ProviderGemini
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_BASE_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("ANUVAD_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("ANUVAD_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("OLLAMA_URL"); v != "" {
		c.OllamaHost = v
	} else if v := os.Getenv("OLLAMA_HOST"); v != "" {
		c.OllamaHost = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAIAPIKey = v
	}
}

// Validate checks that the selected provider has the credentials it needs.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderGoogleAI:
		if c.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case ProviderOllama:
	default:
		return fmt.Errorf("unsupported provider: %s", c.Provider)
	}
	return nil
}
