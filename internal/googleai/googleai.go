// Package googleai is a provider backed by the official generative-ai-go
// SDK, for deployments that prefer the SDK's credential handling over the
// raw REST client in internal/gemini.
package googleai

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/anuvad-app/anuvad/internal/providers"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GoogleAI is a provider for Google Gemini via the official SDK
type GoogleAI struct {
	apiKey string
}

// New returns a new GoogleAI provider
func New(apiKey string) *GoogleAI {
	return &GoogleAI{apiKey: apiKey}
}

// Generate sends the prompt (and optional inline image) to Gemini
func (g *GoogleAI) Generate(ctx context.Context, config providers.Config) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("gemini API key not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", &providers.TransportError{Err: fmt.Errorf("failed to create new gemini client: %w", err)}
	}
	defer client.Close()

	model := client.GenerativeModel(config.Model)
	// Zero temperature for exact transcription and translation
	model.SetTemperature(0)

	parts := []genai.Part{genai.Text(config.Prompt)}
	if config.Image != nil {
		data, err := base64.StdEncoding.DecodeString(config.Image.Data)
		if err != nil {
			return "", fmt.Errorf("failed to decode image payload: %w", err)
		}
		parts = append(parts, genai.Blob{MIMEType: config.Image.MIMEType, Data: data})
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", &providers.TransportError{Err: fmt.Errorf("failed to generate content: %w", err)}
	}

	if len(resp.Candidates) == 0 {
		return "", &providers.ParseError{Err: fmt.Errorf("no candidates returned from Gemini")}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &providers.ParseError{Err: fmt.Errorf("empty content returned from Gemini")}
	}

	if txt, ok := candidate.Content.Parts[0].(genai.Text); ok {
		return string(txt), nil
	}

	return "", &providers.ParseError{Err: fmt.Errorf("unexpected response format from Gemini")}
}
