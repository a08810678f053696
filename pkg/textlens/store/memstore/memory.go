package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu   sync.RWMutex
	runs map[string]store.Run
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{runs: make(map[string]store.Run)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun stores a copy of r.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("save run: empty id: %w", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = copyRun(r)
	return nil
}

// GetRun returns a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return copyRun(r), nil
}

// ListRuns returns run headers, newest first.
func (s *Store) ListRuns(ctx context.Context, kind store.Kind, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Run
	for _, r := range s.runs {
		if kind != "" && r.Kind != kind {
			continue
		}
		out = append(out, store.Run{ID: r.ID, Kind: r.Kind, Source: r.Source, CreatedAt: r.CreatedAt})
	}
	// ULIDs sort by creation time.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func copyRun(r store.Run) store.Run {
	c := r
	c.Terms = append([]store.Term(nil), r.Terms...)
	c.Sentences = append([]store.ScoredSentence(nil), r.Sentences...)
	return c
}
