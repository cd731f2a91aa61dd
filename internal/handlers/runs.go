package handlers

import (
	"net/http"
	"strings"

	"github.com/anuvad-app/anuvad/internal/models"
)

func (h *Handler) HandleRuns(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		runs := h.runStore.GetAll()
		runList := make([]*models.TranslationRun, 0, len(runs))
		for _, run := range runs {
			runList = append(runList, run)
		}
		h.writeJSON(w, runList)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleRunDetail(w http.ResponseWriter, r *http.Request) {
	runID := strings.TrimPrefix(r.URL.Path, "/api/runs/")

	run, ok := h.getRunOrError(w, runID)
	if !ok {
		return
	}

	switch r.Method {
	case "GET":
		h.writeJSON(w, run)
	case "DELETE":
		h.runStore.Delete(runID)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
