// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists finalized report documents in a local SQLite
// archive so past runs can be listed and re-read.
//
// See docs/ARCHITECTURE.md § Report Archive.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/heritage-reporter/pkg/types"
)

const dbFile = "reports.db"

// Store manages the report archive SQLite database.
type Store struct {
	db *sql.DB
}

// Entry is one archived report's listing row.
type Entry struct {
	ID          string
	Topic       string
	GeneratedAt time.Time
	Sources     int
}

// NewStore opens or creates the archive database at
// cfg.ReportsDir/reports.db, creating the schema if needed.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dir := cfg.ReportsDir
	if dir == "" {
		dir = "reports"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating reports directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			generated_at TEXT NOT NULL,
			sources INTEGER NOT NULL,
			document TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_topic ON reports(topic)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save archives a finalized document and returns its generated ID. The
// document is stored as YAML alongside listing columns.
func (s *Store) Save(ctx context.Context, doc *types.ReportDocument) (string, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, topic, generated_at, sources, document) VALUES (?, ?, ?, ?, ?)`,
		id, doc.Topic, doc.GeneratedAt.UTC().Format(time.RFC3339), len(doc.Sources), string(data),
	)
	if err != nil {
		return "", fmt.Errorf("inserting report: %w", err)
	}
	return id, nil
}

// Get reads one archived document by ID.
func (s *Store) Get(ctx context.Context, id string) (*types.ReportDocument, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM reports WHERE id = ?`, id,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("report %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	var doc types.ReportDocument
	if err := yaml.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return &doc, nil
}

// List returns archived reports, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, generated_at, sources FROM reports ORDER BY generated_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var generated string
		if err := rows.Scan(&e.ID, &e.Topic, &generated, &e.Sources); err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, generated); err == nil {
			e.GeneratedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
