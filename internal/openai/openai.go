package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/anuvad-app/anuvad/internal/providers"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o"

// OpenAI is a provider for OpenAI vision-capable chat models
type OpenAI struct {
	apiKey     string
	httpClient *http.Client
}

// New returns a new OpenAI provider
func New(apiKey string) *OpenAI {
	return &OpenAI{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Generate sends the prompt (and optional inline image) to OpenAI
func (o *OpenAI) Generate(ctx context.Context, config providers.Config) (string, error) {
	if o.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}

	content := []map[string]interface{}{
		{
			"type": "text",
			"text": config.Prompt,
		},
	}
	if config.Image != nil {
		content = append(content, map[string]interface{}{
			"type": "image_url",
			"image_url": map[string]string{
				"url": "data:" + config.Image.MIMEType + ";base64," + config.Image.Data,
			},
		})
	}

	requestBody, err := json.Marshal(map[string]interface{}{
		"model": config.Model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": content,
			},
		},
		// Zero temperature for exact transcription and translation
		"temperature": 0.0,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/chat/completions", bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", &providers.TransportError{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", &providers.TransportError{Err: fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(respBody))}
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content *string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", &providers.ParseError{Err: fmt.Errorf("failed to decode response body: %w", err)}
	}

	if len(response.Choices) == 0 {
		return "", &providers.ParseError{Err: fmt.Errorf("no choices in response")}
	}
	if response.Choices[0].Message.Content == nil {
		return "", &providers.ParseError{Err: fmt.Errorf("choice carried no text content")}
	}

	return *response.Choices[0].Message.Content, nil
}
