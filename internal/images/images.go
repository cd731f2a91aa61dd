// Package images loads user-supplied source images and encodes them for
// transmission to vision APIs.
package images

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
)

// MaxBytes caps source images at 10MB.
const MaxBytes = 10 * 1024 * 1024

// SourceImage is a user-supplied image awaiting processing. The declared
// MIME type is trusted as given by the upload; when missing or generic the
// content is sniffed instead.
type SourceImage struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Read loads a source image from r, enforcing the size cap.
func Read(r io.Reader, name, declaredMIME string) (*SourceImage, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("image is empty")
	}

	if len(data) > MaxBytes {
		return nil, fmt.Errorf("image too large (max 10MB)")
	}

	mimeType := declaredMIME
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	return &SourceImage{
		Name:     name,
		MIMEType: mimeType,
		Data:     data,
	}, nil
}

// Payload returns the base64 encoding sent inline to the API.
func (s *SourceImage) Payload() string {
	return base64.StdEncoding.EncodeToString(s.Data)
}
