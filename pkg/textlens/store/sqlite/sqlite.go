package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// history schema if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v: %w", path, err, internalerr.ErrStoreUnavailable)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %v: %w", path, err, internalerr.ErrStoreUnavailable)
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	source TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind);

CREATE TABLE IF NOT EXISTS run_terms (
	run_id TEXT NOT NULL,
	rank INTEGER NOT NULL,
	token TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(run_id, rank),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS run_sentences (
	run_id TEXT NOT NULL,
	idx INTEGER NOT NULL,
	text TEXT NOT NULL,
	score REAL NOT NULL,
	bucket TEXT NOT NULL,
	PRIMARY KEY(run_id, idx),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun writes the run and its rows in one transaction. An existing run
// with the same ID is replaced, rows included.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("save run: empty id: %w", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Deleting first lets the cascade clear the old rows.
	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, r.ID); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
INSERT INTO runs (id, kind, source, created_at)
VALUES (?, ?, ?, ?);
`, r.ID, string(r.Kind), r.Source, r.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return err
	}

	if err := insertTerms(ctx, tx, r.ID, r.Terms); err != nil {
		return err
	}
	if err := insertSentences(ctx, tx, r.ID, r.Sentences); err != nil {
		return err
	}
	return tx.Commit()
}

func insertTerms(ctx context.Context, tx *sql.Tx, runID string, terms []store.Term) error {
	if len(terms) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_terms (run_id, rank, token, count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range terms {
		if _, err := stmt.ExecContext(ctx, runID, t.Rank, t.Token, t.Count); err != nil {
			return err
		}
	}
	return nil
}

func insertSentences(ctx context.Context, tx *sql.Tx, runID string, sentences []store.ScoredSentence) error {
	if len(sentences) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_sentences (run_id, idx, text, score, bucket) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, sc := range sentences {
		if _, err := stmt.ExecContext(ctx, runID, sc.Index, sc.Text, sc.Score, sc.Bucket); err != nil {
			return err
		}
	}
	return nil
}

// GetRun loads a run with its terms and sentences.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, kind, source, created_at FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}

	if r.Terms, err = s.loadTerms(ctx, id); err != nil {
		return store.Run{}, err
	}
	if r.Sentences, err = s.loadSentences(ctx, id); err != nil {
		return store.Run{}, err
	}
	return r, nil
}

// ListRuns returns run headers, newest first.
func (s *sqliteStore) ListRuns(ctx context.Context, kind store.Kind, limit int) ([]store.Run, error) {
	var (
		query strings.Builder
		args  []interface{}
	)
	query.WriteString(`SELECT id, kind, source, created_at FROM runs`)
	if kind != "" {
		query.WriteString(` WHERE kind = ?`)
		args = append(args, string(kind))
	}
	// ULIDs sort by creation time.
	query.WriteString(` ORDER BY id DESC`)
	if limit > 0 {
		query.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(sc scanner) (store.Run, error) {
	var (
		r       store.Run
		kind    string
		created string
	)
	if err := sc.Scan(&r.ID, &kind, &r.Source, &created); err != nil {
		return store.Run{}, err
	}
	r.Kind = store.Kind(kind)
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return store.Run{}, fmt.Errorf("run %s: bad created_at %q: %w", r.ID, created, err)
	}
	r.CreatedAt = t
	return r, nil
}

func (s *sqliteStore) loadTerms(ctx context.Context, runID string) ([]store.Term, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT rank, token, count FROM run_terms WHERE run_id = ? ORDER BY rank`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []store.Term
	for rows.Next() {
		var t store.Term
		if err := rows.Scan(&t.Rank, &t.Token, &t.Count); err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

func (s *sqliteStore) loadSentences(ctx context.Context, runID string) ([]store.ScoredSentence, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT idx, text, score, bucket FROM run_sentences WHERE run_id = ? ORDER BY idx`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sentences []store.ScoredSentence
	for rows.Next() {
		var sc store.ScoredSentence
		if err := rows.Scan(&sc.Index, &sc.Text, &sc.Score, &sc.Bucket); err != nil {
			return nil, err
		}
		sentences = append(sentences, sc)
	}
	return sentences, rows.Err()
}
