package cmd

import (
	"fmt"

	"github.com/anuvad-app/anuvad/internal/config"
	"github.com/anuvad-app/anuvad/internal/gemini"
	"github.com/anuvad-app/anuvad/internal/googleai"
	"github.com/anuvad-app/anuvad/internal/ollama"
	"github.com/anuvad-app/anuvad/internal/openai"
	"github.com/anuvad-app/anuvad/internal/providers"
)

// newProvider builds the configured provider and resolves the model name.
func newProvider(cfg *config.Config) (providers.Provider, string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	model := cfg.Model
	switch cfg.Provider {
	case config.ProviderGemini:
		if model == "" {
			model = gemini.DefaultModel
		}
		return gemini.New(cfg.APIKey, cfg.APIBaseURL), model, nil
	case config.ProviderGoogleAI:
		if model == "" {
			model = gemini.DefaultModel
		}
		return googleai.New(cfg.APIKey), model, nil
	case config.ProviderOllama:
		if model == "" {
			model = ollama.DefaultModel
		}
		return ollama.New(cfg.OllamaHost), model, nil
	case config.ProviderOpenAI:
		if model == "" {
			model = openai.DefaultModel
		}
		return openai.New(cfg.OpenAIAPIKey), model, nil
	}

	return nil, "", fmt.Errorf("unsupported provider: %s", cfg.Provider)
}
