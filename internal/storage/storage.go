package storage

import (
	"sync"

	"github.com/anuvad-app/anuvad/internal/models"
)

// RunStore is an in-memory store of completed translation runs.
type RunStore struct {
	runs map[string]*models.TranslationRun
	mu   sync.RWMutex
}

func New() *RunStore {
	return &RunStore{
		runs: make(map[string]*models.TranslationRun),
	}
}

func (s *RunStore) Get(runID string) (*models.TranslationRun, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, exists := s.runs[runID]
	return run, exists
}

func (s *RunStore) Set(runID string, run *models.TranslationRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[runID] = run
}

func (s *RunStore) GetAll() map[string]*models.TranslationRun {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*models.TranslationRun, len(s.runs))
	for k, v := range s.runs {
		result[k] = v
	}
	return result
}

func (s *RunStore) Delete(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, runID)
}
