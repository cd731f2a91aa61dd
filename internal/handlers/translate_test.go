package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/anuvad-app/anuvad/internal/models"
	"github.com/anuvad-app/anuvad/internal/pipeline"
	"github.com/anuvad-app/anuvad/internal/providers"
)

type fakeProvider struct {
	mu      sync.Mutex
	calls   int
	respond func(call int, config providers.Config) (string, error)
}

func (f *fakeProvider) Generate(ctx context.Context, config providers.Config) (string, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()
	return f.respond(call, config)
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestHandler(respond func(call int, config providers.Config) (string, error)) (*Handler, *fakeProvider) {
	fake := &fakeProvider{respond: respond}
	h := New(Options{
		Provider:     fake,
		ProviderName: "gemini",
		Model:        "test-model",
	})
	return h, fake
}

func uploadRequest(t *testing.T, filename, lang string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	if lang != "" {
		if err := w.WriteField("target_lang", lang); err != nil {
			t.Fatalf("Failed to write form field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/translate", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHandleTranslateUpload(t *testing.T) {
	h, fake := newTestHandler(func(call int, config providers.Config) (string, error) {
		if config.Image != nil {
			return "नमस्ते", nil
		}
		return "হ্যালো", nil
	})

	rec := httptest.NewRecorder()
	h.HandleTranslate(rec, uploadRequest(t, "sign.jpg", "bn", []byte("image-bytes")))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var run models.TranslationRun
	if err := json.NewDecoder(rec.Body).Decode(&run); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if run.State != "succeeded" {
		t.Errorf("Expected state succeeded, got %s", run.State)
	}
	if run.ExtractedText != "नमस्ते" {
		t.Errorf("Unexpected extracted text: %q", run.ExtractedText)
	}
	if run.TranslatedText != "হ্যালো" {
		t.Errorf("Unexpected translated text: %q", run.TranslatedText)
	}
	if run.TargetLanguage != "bn" {
		t.Errorf("Expected target language bn, got %s", run.TargetLanguage)
	}
	if run.ImageName != "sign.jpg" {
		t.Errorf("Expected image name sign.jpg, got %s", run.ImageName)
	}
	if !strings.HasPrefix(run.ID, "sign_") {
		t.Errorf("Expected run ID derived from the filename, got %s", run.ID)
	}
	if fake.callCount() != 2 {
		t.Errorf("Expected 2 provider calls, got %d", fake.callCount())
	}
}

func TestHandleTranslateDefaultsToEnglish(t *testing.T) {
	h, _ := newTestHandler(func(call int, config providers.Config) (string, error) {
		if config.Image != nil {
			return "नमस्ते", nil
		}
		if !strings.Contains(config.Prompt, "into English:") {
			return "", fmt.Errorf("expected English prompt, got: %s", config.Prompt)
		}
		return "Hello", nil
	})

	rec := httptest.NewRecorder()
	h.HandleTranslate(rec, uploadRequest(t, "sign.jpg", "", []byte("image-bytes")))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var run models.TranslationRun
	if err := json.NewDecoder(rec.Body).Decode(&run); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if run.TargetLanguage != "en" {
		t.Errorf("Expected default target language en, got %s", run.TargetLanguage)
	}
}

func TestHandleTranslateMissingFile(t *testing.T) {
	h, fake := newTestHandler(func(call int, config providers.Config) (string, error) {
		return "", fmt.Errorf("provider must not be called")
	})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("target_lang", "en"); err != nil {
		t.Fatalf("Failed to write form field: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/translate", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	rec := httptest.NewRecorder()
	h.HandleTranslate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
	if fake.callCount() != 0 {
		t.Errorf("Expected 0 provider calls, got %d", fake.callCount())
	}
}

func TestHandleTranslateUnsupportedLanguage(t *testing.T) {
	h, fake := newTestHandler(func(call int, config providers.Config) (string, error) {
		return "", fmt.Errorf("provider must not be called")
	})

	rec := httptest.NewRecorder()
	h.HandleTranslate(rec, uploadRequest(t, "sign.jpg", "fr", []byte("image-bytes")))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
	if fake.callCount() != 0 {
		t.Errorf("Expected 0 provider calls, got %d", fake.callCount())
	}
}

func TestHandleTranslateMethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(func(call int, config providers.Config) (string, error) {
		return "", nil
	})

	rec := httptest.NewRecorder()
	h.HandleTranslate(rec, httptest.NewRequest("GET", "/api/translate", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}

func TestHandleTranslateFailedRunStillRecorded(t *testing.T) {
	h, _ := newTestHandler(func(call int, config providers.Config) (string, error) {
		return "", &providers.ParseError{Err: fmt.Errorf("no candidates in response")}
	})

	rec := httptest.NewRecorder()
	h.HandleTranslate(rec, uploadRequest(t, "sign.jpg", "en", []byte("image-bytes")))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 with failure details in the body, got %d", rec.Code)
	}

	var run models.TranslationRun
	if err := json.NewDecoder(rec.Body).Decode(&run); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if run.State != "failed" {
		t.Errorf("Expected state failed, got %s", run.State)
	}
	if run.Reason != string(pipeline.ReasonExtractionParse) {
		t.Errorf("Expected extraction parse reason, got %s", run.Reason)
	}
	if run.Error == "" {
		t.Error("Expected a user-visible error message")
	}
}

func TestHandleRuns(t *testing.T) {
	h, _ := newTestHandler(func(call int, config providers.Config) (string, error) {
		if config.Image != nil {
			return "नमस्ते", nil
		}
		return "Hello", nil
	})

	rec := httptest.NewRecorder()
	h.HandleTranslate(rec, uploadRequest(t, "sign.jpg", "en", []byte("image-bytes")))
	if rec.Code != http.StatusOK {
		t.Fatalf("Upload failed: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleRuns(rec, httptest.NewRequest("GET", "/api/runs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var runs []*models.TranslationRun
	if err := json.NewDecoder(rec.Body).Decode(&runs); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 recorded run, got %d", len(runs))
	}

	rec = httptest.NewRecorder()
	h.HandleRunDetail(rec, httptest.NewRequest("GET", "/api/runs/"+runs[0].ID, nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for known run, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleRunDetail(rec, httptest.NewRequest("GET", "/api/runs/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown run, got %d", rec.Code)
	}
}

func TestHandleState(t *testing.T) {
	h, _ := newTestHandler(func(call int, config providers.Config) (string, error) {
		return "", nil
	})

	rec := httptest.NewRecorder()
	h.HandleState(rec, httptest.NewRequest("GET", "/api/state", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}

	var state struct {
		State string `json:"state"`
		Busy  bool   `json:"busy"`
	}
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("Failed to decode state: %v", err)
	}
	if state.State != "idle" {
		t.Errorf("Expected idle state before any run, got %s", state.State)
	}
	if state.Busy {
		t.Error("Expected busy=false before any run")
	}
}

func TestHandleLanguages(t *testing.T) {
	h, _ := newTestHandler(func(call int, config providers.Config) (string, error) {
		return "", nil
	})

	rec := httptest.NewRecorder()
	h.HandleLanguages(rec, httptest.NewRequest("GET", "/api/languages", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var langs []struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&langs); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(langs) != 2 || langs[0].Code != "en" || langs[1].Code != "bn" {
		t.Errorf("Unexpected language list: %+v", langs)
	}
	if langs[0].Name != "English" || langs[1].Name != "Bengali" {
		t.Errorf("Unexpected display names: %+v", langs)
	}
}
