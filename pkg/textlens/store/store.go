package store

import (
	"context"
	"time"
)

// Store persists the history of pipeline runs.
type Store interface {
	Close() error

	// SaveRun inserts a run with its terms and sentences. Saving an ID that
	// already exists replaces the earlier record.
	SaveRun(ctx context.Context, r Run) error
	// GetRun returns a run by ID, or internalerr.ErrNotFound.
	GetRun(ctx context.Context, id string) (Run, error)
	// ListRuns returns run headers (no terms or sentences), newest first.
	// An empty kind lists every kind; limit <= 0 means no limit.
	ListRuns(ctx context.Context, kind Kind, limit int) ([]Run, error)
}

// Kind names the pipeline that produced a run.
type Kind string

const (
	KindFrequency Kind = "frequency"
	KindSentiment Kind = "sentiment"
)

// Run is one recorded pipeline execution.
type Run struct {
	ID        string
	Kind      Kind
	Source    string
	CreatedAt time.Time
	Terms     []Term
	Sentences []ScoredSentence
}

// Term is one row of a frequency run's top-N list. Rank starts at 1.
type Term struct {
	Rank  int
	Token string
	Count int
}

// ScoredSentence is one scored sentence of a sentiment run. Index starts at 1.
type ScoredSentence struct {
	Index  int
	Text   string
	Score  float64
	Bucket string
}
