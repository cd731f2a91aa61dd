// Package gemini is a direct REST client for the generative-language API.
// It is the default provider: the API key and base URL are injected at
// construction so nothing here reads ambient configuration.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anuvad-app/anuvad/internal/providers"
)

const (
	// DefaultBaseURL is the public generative-language REST endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.0-flash"
)

// Client calls the generative-language REST API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// New returns a REST client for the given credential and base URL.
// An empty baseURL falls back to the public endpoint.
func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type generateRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Role  string        `json:"role"`
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []responsePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Text is a pointer so an absent field can be told apart from an empty
// string: absence means the candidate carried no text content at all.
type responsePart struct {
	Text *string `json:"text"`
}

// Generate sends one generateContent request and returns the candidate text
func (c *Client) Generate(ctx context.Context, config providers.Config) (string, error) {
	model := config.Model
	if model == "" {
		model = DefaultModel
	}

	parts := []requestPart{{Text: config.Prompt}}
	if config.Image != nil {
		parts = append(parts, requestPart{
			InlineData: &inlineData{
				MIMEType: config.Image.MIMEType,
				Data:     config.Image.Data,
			},
		})
	}

	body, err := json.Marshal(generateRequest{
		Contents: []requestContent{{Role: "user", Parts: parts}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &providers.TransportError{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", &providers.TransportError{Err: fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(respBody))}
	}

	var response generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", &providers.ParseError{Err: fmt.Errorf("failed to decode response body: %w", err)}
	}

	if len(response.Candidates) == 0 {
		return "", &providers.ParseError{Err: fmt.Errorf("no candidates in response")}
	}

	candidate := response.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &providers.ParseError{Err: fmt.Errorf("candidate has no content")}
	}

	var sb strings.Builder
	hasText := false
	for _, part := range candidate.Content.Parts {
		if part.Text != nil {
			hasText = true
			sb.WriteString(*part.Text)
		}
	}
	if !hasText {
		return "", &providers.ParseError{Err: fmt.Errorf("candidate has no text content")}
	}

	return sb.String(), nil
}
