package handlers

import (
	"net/http"

	"github.com/anuvad-app/anuvad/internal/language"
)

// HandleState exposes the orchestrator's observable fields to the UI.
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, h.pipeline.Snapshot())
}

// HandleLanguages lists the selectable target languages.
func (h *Handler) HandleLanguages(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	type entry struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	list := make([]entry, 0, len(language.Supported()))
	for _, code := range language.Supported() {
		list = append(list, entry{Code: code.String(), Name: code.DisplayName()})
	}
	h.writeJSON(w, list)
}
