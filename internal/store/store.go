// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists resolved DYK records in SQLite so batch runs can
// skip articles whose template has not changed, and exports them.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/article-history/pkg/types"
)

const dbFile = "article-history.db"

// Store manages the resolution database.
type Store struct {
	db  *sql.DB
	dir string
}

// Record is a stored resolution for one article.
type Record struct {
	Article     string         `json:"article" yaml:"article"`
	Fingerprint string         `json:"fingerprint" yaml:"fingerprint"`
	Entry       types.DykEntry `json:"entry" yaml:"entry"`
	ResolvedAt  time.Time      `json:"resolved_at" yaml:"resolved_at"`
}

// Failure is a stored failed resolution.
type Failure struct {
	Article     string    `json:"article" yaml:"article"`
	Fingerprint string    `json:"fingerprint" yaml:"fingerprint"`
	Message     string    `json:"message" yaml:"message"`
	FailedAt    time.Time `json:"failed_at" yaml:"failed_at"`
}

// NewStore opens or creates the database at cfg.Dir/article-history.db and
// creates the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database and exports.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS dyk_entries (
			article TEXT PRIMARY KEY,
			fingerprint TEXT NOT NULL,
			date TEXT NOT NULL,
			hook TEXT,
			nompage TEXT,
			resolved_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS failures (
			article TEXT PRIMARY KEY,
			fingerprint TEXT NOT NULL,
			message TEXT NOT NULL,
			failed_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveEntry records a successful resolution and clears any earlier failure
// for the article.
func (s *Store) SaveEntry(ctx context.Context, article, fingerprint string, entry *types.DykEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO dyk_entries (article, fingerprint, date, hook, nompage, resolved_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(article) DO UPDATE SET
			fingerprint=excluded.fingerprint, date=excluded.date, hook=excluded.hook,
			nompage=excluded.nompage, resolved_at=excluded.resolved_at`,
		article, fingerprint, entry.Date, nullable(entry.Hook), nullable(entry.NomPage),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting entry for %s: %w", article, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM failures WHERE article = ?`, article); err != nil {
		return fmt.Errorf("clearing failure for %s: %w", article, err)
	}
	return tx.Commit()
}

// SaveFailure records a failed resolution. A stored entry for the article,
// if any, is left in place.
func (s *Store) SaveFailure(ctx context.Context, article, fingerprint string, cause error) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO failures (article, fingerprint, message, failed_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(article) DO UPDATE SET
			fingerprint=excluded.fingerprint, message=excluded.message, failed_at=excluded.failed_at`,
		article, fingerprint, cause.Error(), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording failure for %s: %w", article, err)
	}
	return nil
}

// Lookup returns the stored record for article, or nil if there is none.
func (s *Store) Lookup(ctx context.Context, article string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT article, fingerprint, date, hook, nompage, resolved_at
		 FROM dyk_entries WHERE article = ?`, article)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up %s: %w", article, err)
	}
	return rec, nil
}

// Records returns all stored records ordered by article title.
func (s *Store) Records(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT article, fingerprint, date, hook, nompage, resolved_at
		 FROM dyk_entries ORDER BY article`)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// Failures returns all stored failures ordered by article title.
func (s *Store) Failures(ctx context.Context) ([]Failure, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT article, fingerprint, message, failed_at FROM failures ORDER BY article`)
	if err != nil {
		return nil, fmt.Errorf("querying failures: %w", err)
	}
	defer rows.Close()

	var failures []Failure
	for rows.Next() {
		var f Failure
		var failedAt string
		if err := rows.Scan(&f.Article, &f.Fingerprint, &f.Message, &failedAt); err != nil {
			return nil, fmt.Errorf("scanning failure: %w", err)
		}
		f.FailedAt, _ = time.Parse(time.RFC3339Nano, failedAt)
		failures = append(failures, f)
	}
	return failures, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*Record, error) {
	var rec Record
	var hook, nompage sql.NullString
	var resolvedAt string
	if err := sc.Scan(&rec.Article, &rec.Fingerprint, &rec.Entry.Date, &hook, &nompage, &resolvedAt); err != nil {
		return nil, err
	}
	if hook.Valid {
		rec.Entry.Hook = &hook.String
	}
	if nompage.Valid {
		rec.Entry.NomPage = &nompage.String
	}
	rec.ResolvedAt, _ = time.Parse(time.RFC3339Nano, resolvedAt)
	return &rec, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
