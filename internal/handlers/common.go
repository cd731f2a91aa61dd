package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/anuvad-app/anuvad/internal/models"
	"github.com/anuvad-app/anuvad/internal/pipeline"
	"github.com/anuvad-app/anuvad/internal/providers"
	"github.com/anuvad-app/anuvad/internal/storage"
)

// Options wires the handler to a constructed provider.
type Options struct {
	Provider     providers.Provider
	ProviderName string
	Model        string
}

type Handler struct {
	pipeline     *pipeline.Pipeline
	runStore     *storage.RunStore
	providerName string
	model        string
}

func New(opts Options) *Handler {
	return &Handler{
		pipeline:     pipeline.New(opts.Provider, opts.Model),
		runStore:     storage.New(),
		providerName: opts.ProviderName,
		model:        opts.Model,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Run helpers
func (h *Handler) getRunOrError(w http.ResponseWriter, runID string) (*models.TranslationRun, bool) {
	run, exists := h.runStore.Get(runID)
	if !exists {
		h.writeError(w, "Run not found", http.StatusNotFound)
		return nil, false
	}
	return run, true
}
