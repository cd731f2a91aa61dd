package images

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Fetcher retrieves source images over HTTP
type Fetcher struct {
	HTTPClient *http.Client
}

// NewFetcher creates a new image fetcher
func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch downloads a source image from a URL.
func (f *Fetcher) Fetch(ctx context.Context, imageURL string) (*SourceImage, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}

	// Extract filename from URL
	parts := strings.Split(strings.TrimSuffix(imageURL, "/"), "/")
	name := parts[len(parts)-1]
	if name == "" || strings.Contains(name, "?") {
		name = "image.jpg"
	}

	return Read(resp.Body, name, resp.Header.Get("Content-Type"))
}

var defaultFetcher = NewFetcher()

// Fetch downloads a source image from a URL using the default fetcher.
func Fetch(ctx context.Context, imageURL string) (*SourceImage, error) {
	return defaultFetcher.Fetch(ctx, imageURL)
}
