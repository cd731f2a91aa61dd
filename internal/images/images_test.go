package images

import (
	"bytes"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestReadUsesDeclaredMIMEType(t *testing.T) {
	img, err := Read(strings.NewReader("image-bytes"), "sign.jpg", "image/jpeg")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if img.MIMEType != "image/jpeg" {
		t.Errorf("Expected declared MIME type to be trusted, got %s", img.MIMEType)
	}
	if img.Name != "sign.jpg" {
		t.Errorf("Expected name sign.jpg, got %s", img.Name)
	}
}

func TestReadSniffsMissingMIMEType(t *testing.T) {
	pngHeader := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}

	tests := []struct {
		name     string
		declared string
	}{
		{name: "empty declared type", declared: ""},
		{name: "generic declared type", declared: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Read(bytes.NewReader(pngHeader), "sign.png", tt.declared)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if img.MIMEType != "image/png" {
				t.Errorf("Expected sniffed image/png, got %s", img.MIMEType)
			}
		})
	}
}

func TestReadRejectsEmptyInput(t *testing.T) {
	if _, err := Read(strings.NewReader(""), "empty.jpg", "image/jpeg"); err == nil {
		t.Error("Expected error for empty input")
	}
}

func TestReadRejectsOversizedInput(t *testing.T) {
	big := bytes.NewReader(make([]byte, MaxBytes+1))
	if _, err := Read(big, "big.jpg", "image/jpeg"); err == nil {
		t.Error("Expected error for oversized input")
	}
}

func TestPayloadEncodesBase64(t *testing.T) {
	img := &SourceImage{Data: []byte("hello")}
	want := base64.StdEncoding.EncodeToString([]byte("hello"))
	if got := img.Payload(); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		if _, err := w.Write([]byte("image-bytes")); err != nil {
			t.Errorf("Failed to write response: %v", err)
		}
	}))
	defer server.Close()

	img, err := NewFetcher().Fetch(t.Context(), server.URL+"/photos/sign.jpg")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if img.Name != "sign.jpg" {
		t.Errorf("Expected name from URL path, got %s", img.Name)
	}
	if img.MIMEType != "image/jpeg" {
		t.Errorf("Expected image/jpeg, got %s", img.MIMEType)
	}
	if string(img.Data) != "image-bytes" {
		t.Errorf("Unexpected image data: %q", img.Data)
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	if _, err := NewFetcher().Fetch(t.Context(), server.URL+"/missing.jpg"); err == nil {
		t.Error("Expected error for non-200 response")
	}
}
