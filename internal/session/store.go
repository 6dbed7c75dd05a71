// Package session holds the in-memory history of completed analyses for the
// current process. Nothing is persisted across restarts.
package session

import (
	"sync"

	"github.com/yarberjoseph/seo-analyst-agent/internal/model"
)

// Store is an append-only, most-recent-last sequence of analysis results.
// Guarded by a mutex because the serve surface reads it from concurrent
// handlers.
type Store struct {
	mu      sync.RWMutex
	results []model.AnalysisResult
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{}
}

// Append adds a completed result to the history.
func (s *Store) Append(result model.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
}

// Latest returns the most recent result, or false if the history is empty.
func (s *Store) Latest() (model.AnalysisResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.results) == 0 {
		return model.AnalysisResult{}, false
	}
	return s.results[len(s.results)-1], true
}

// Last returns up to n of the most recent results, oldest first.
func (s *Store) Last(n int) []model.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 || len(s.results) == 0 {
		return nil
	}
	start := len(s.results) - n
	if start < 0 {
		start = 0
	}
	out := make([]model.AnalysisResult, len(s.results)-start)
	copy(out, s.results[start:])
	return out
}

// Get returns the result with the given ID, or false if not found.
func (s *Store) Get(id string) (model.AnalysisResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.results) - 1; i >= 0; i-- {
		if s.results[i].ID == id {
			return s.results[i], true
		}
	}
	return model.AnalysisResult{}, false
}

// Len returns the number of stored results.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}
