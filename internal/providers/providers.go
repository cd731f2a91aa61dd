package providers

import (
	"context"
)

// Config represents a single generation request to an LLM provider
type Config struct {
	Model  string
	Prompt string
	// Image holds an inline image payload, nil for text-only requests
	Image *InlineImage
}

// InlineImage is a base64-encoded image sent alongside the prompt
type InlineImage struct {
	MIMEType string
	Data     string
}

// Provider defines the interface for an LLM provider
type Provider interface {
	Generate(ctx context.Context, config Config) (string, error)
}
