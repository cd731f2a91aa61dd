package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/anuvad-app/anuvad/internal/providers"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "mistral-small3.2:24b"

// Ollama is a provider for a local Ollama server
type Ollama struct {
	host       string
	httpClient *http.Client
}

// New returns a new Ollama provider for the given host.
// An empty host falls back to the local default.
func New(host string) *Ollama {
	if host == "" {
		host = "http://localhost:11434"
	}
	return &Ollama{
		host: strings.TrimSuffix(host, "/"),
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Generate sends the prompt (and optional inline image) to Ollama
func (o *Ollama) Generate(ctx context.Context, config providers.Config) (string, error) {
	body := map[string]interface{}{
		"model":  config.Model,
		"prompt": config.Prompt,
		"stream": false,
		"options": map[string]interface{}{
			// Zero temperature for exact transcription and translation
			"temperature": 0.0,
		},
	}
	if config.Image != nil {
		body["images"] = []string{config.Image.Data}
	}

	requestBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.host+"/api/generate", bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

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
		Response *string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", &providers.ParseError{Err: fmt.Errorf("failed to decode response body: %w", err)}
	}
	if response.Response == nil {
		return "", &providers.ParseError{Err: fmt.Errorf("response carried no text content")}
	}

	return *response.Response, nil
}
