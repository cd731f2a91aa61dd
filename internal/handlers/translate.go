package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/anuvad-app/anuvad/internal/images"
	"github.com/anuvad-app/anuvad/internal/language"
	"github.com/anuvad-app/anuvad/internal/models"
	"github.com/anuvad-app/anuvad/internal/pipeline"
)

func (h *Handler) HandleTranslate(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Check if this is a JSON request with image URL
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		h.handleURLTranslate(w, r)
		return
	}

	// Handle file upload
	h.handleFileTranslate(w, r)
}

func (h *Handler) handleFileTranslate(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		file, header, err = r.FormFile("files")
		if err != nil {
			h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	defer file.Close()

	target, err := parseTargetLanguage(r.FormValue("target_lang"))
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	img, err := images.Read(file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.runPipeline(w, r, img, target)
}

func (h *Handler) handleURLTranslate(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ImageURL   string `json:"image_url"`
		TargetLang string `json:"target_lang"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.ImageURL == "" {
		h.writeError(w, "image_url is required", http.StatusBadRequest)
		return
	}

	target, err := parseTargetLanguage(request.TargetLang)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	img, err := images.Fetch(r.Context(), request.ImageURL)
	if err != nil {
		h.writeError(w, "Failed to fetch image URL: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.runPipeline(w, r, img, target)
}

func parseTargetLanguage(s string) (language.Code, error) {
	if s == "" {
		return language.Default, nil
	}
	return language.Parse(s)
}

func (h *Handler) runPipeline(w http.ResponseWriter, r *http.Request, img *images.SourceImage, target language.Code) {
	h.pipeline.SetSourceImage(img)
	h.pipeline.SetTargetLanguage(target)

	snap, err := h.pipeline.Run(r.Context())
	if errors.Is(err, pipeline.ErrBusy) {
		h.writeError(w, "A translation is already in progress", http.StatusConflict)
		return
	}
	if err != nil {
		slog.Error("Pipeline run failed", "image", img.Name, "reason", snap.Reason, "err", err)
	}

	run := h.recordRun(img.Name, snap)
	h.writeJSON(w, run)
}

func (h *Handler) recordRun(imageName string, snap pipeline.Snapshot) *models.TranslationRun {
	// Use filename (without extension) as run name, with timestamp for uniqueness
	base := strings.TrimSuffix(imageName, filepath.Ext(imageName))
	run := &models.TranslationRun{
		ID:             fmt.Sprintf("%s_%d", base, time.Now().Unix()),
		ImageName:      imageName,
		TargetLanguage: snap.TargetLanguage.String(),
		State:          snap.State.String(),
		Reason:         string(snap.Reason),
		ExtractedText:  snap.ExtractedText,
		TranslatedText: snap.TranslatedText,
		Error:          snap.ErrorMessage,
		Provider:       h.providerName,
		Model:          h.model,
		CreatedAt:      time.Now(),
	}
	h.runStore.Set(run.ID, run)
	return run
}
