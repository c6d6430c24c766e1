// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists parsed event records in a SQLite database and
// builds a retrieval index over event names and notes.
package store

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/bulletin-engine/internal/fetch"
	"github.com/pdiddy/bulletin-engine/internal/parser"
	"github.com/pdiddy/bulletin-engine/pkg/types"
)

const (
	csvDir      = "csv"
	metadataDir = "metadata"
	indexDir    = "index"
	dbFile      = "bulletins.db"
)

// Store manages the event store SQLite database.
type Store struct {
	db           *sql.DB
	storeDir     string
	bulletinsDir string
	maxResults   int
}

// NewStore opens or creates the event store database at
// storeDir/index/bulletins.db, creating the schema if needed.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.StoreDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:           db,
		storeDir:     cfg.StoreDir,
		bulletinsDir: cfg.BulletinsDir,
		maxResults:   maxResults,
	}

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
		`CREATE TABLE IF NOT EXISTS bulletins (
			id TEXT PRIMARY KEY,
			source_url TEXT,
			pdf_path TEXT,
			fetched_at TEXT,
			conversion_status TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			bulletin_id TEXT NOT NULL REFERENCES bulletins(id),
			iso3 TEXT,
			country TEXT NOT NULL,
			event_name TEXT,
			grade TEXT,
			date_notified TEXT,
			date_start TEXT,
			date_end TEXT,
			cases_total INTEGER,
			cases_confirmed INTEGER,
			deaths INTEGER,
			cfr TEXT,
			notes TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_bulletin_id ON events(bulletin_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_iso3 ON events(iso3)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			bulletin_id TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='events_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE events_fts USING fts5(event_name, notes, content=events, content_rowid=rowid)`,
			`CREATE TRIGGER events_ai AFTER INSERT ON events BEGIN
				INSERT INTO events_fts(rowid, event_name, notes) VALUES (new.rowid, new.event_name, new.notes);
			END`,
			`CREATE TRIGGER events_ad AFTER DELETE ON events BEGIN
				INSERT INTO events_fts(events_fts, rowid, event_name, notes) VALUES('delete', old.rowid, old.event_name, old.notes);
			END`,
			`CREATE TRIGGER events_au AFTER UPDATE ON events BEGIN
				INSERT INTO events_fts(events_fts, rowid, event_name, notes) VALUES('delete', old.rowid, old.event_name, old.notes);
				INSERT INTO events_fts(rowid, event_name, notes) VALUES (new.rowid, new.event_name, new.notes);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from an indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of bulletins processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads parsed CSV files from bulletinsDir/csv/ and populates the
// database, detecting new, changed, and unchanged files for incremental
// updates.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	dir := filepath.Join(s.bulletinsDir, csvDir)
	metaDir := filepath.Join(s.bulletinsDir, metadataDir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading csv directory %s: %w", dir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		bulletinID := strings.TrimSuffix(entry.Name(), ".csv")
		filePath := filepath.Join(dir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", bulletinID, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE bulletin_id = ?`, bulletinID,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", bulletinID)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		records, err := readCSV(filePath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", bulletinID, err)
			summary.Failed++
			continue
		}

		bulletin := loadBulletinMetadata(metaDir, bulletinID)

		if err := s.ingestBulletin(ctx, bulletinID, records, bulletin, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", bulletinID, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d events)\n", bulletinID, len(records))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d events)\n", bulletinID, len(records))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

func (s *Store) ingestBulletin(ctx context.Context, bulletinID string, records []types.EventRecord, bulletin *types.Bulletin, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE bulletin_id = ?`, bulletinID); err != nil {
			return fmt.Errorf("deleting old events: %w", err)
		}
	}

	if bulletin != nil {
		fetchedAt := ""
		if !bulletin.FetchedAt.IsZero() {
			fetchedAt = bulletin.FetchedAt.Format(time.RFC3339)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO bulletins (id, source_url, pdf_path, fetched_at, conversion_status)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
				source_url=excluded.source_url, pdf_path=excluded.pdf_path,
				fetched_at=excluded.fetched_at, conversion_status=excluded.conversion_status`,
			bulletin.ID, bulletin.SourceURL, bulletin.PDFPath, fetchedAt, string(bulletin.ConversionStatus),
		)
		if err != nil {
			return fmt.Errorf("upserting bulletin: %w", err)
		}
	} else {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO bulletins (id) VALUES (?)`, bulletinID); err != nil {
			return fmt.Errorf("inserting bulletin stub: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO events (bulletin_id, iso3, country, event_name, grade,
			date_notified, date_start, date_end, cases_total, cases_confirmed,
			deaths, cfr, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			bulletinID, r.ISO3, r.Country, r.EventName, r.Grade,
			r.DateNotified, r.DateStart, r.DateEnd,
			r.CasesTotal, r.CasesConfirmed, r.Deaths, r.CFR, r.Notes,
		)
		if err != nil {
			return fmt.Errorf("inserting event %s/%s: %w", r.Country, r.EventName, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (bulletin_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(bulletin_id) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		bulletinID, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}

// loadBulletinMetadata reads the YAML sidecar for a bulletin; a missing or
// unreadable sidecar is not an error, the store just keeps a stub row.
func loadBulletinMetadata(metaDir, bulletinID string) *types.Bulletin {
	b, err := fetch.ReadMetadata(filepath.Join(metaDir, bulletinID+".yaml"))
	if err != nil {
		return nil
	}
	return b
}

// readCSV reads a parsed bulletin CSV back into event records. Empty cells
// in the count columns become nil, matching the serializer's null mapping.
func readCSV(path string) ([]types.EventRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s has no header row", path)
	}
	if got, want := strings.Join(rows[0], ","), strings.Join(parser.Columns, ","); got != want {
		return nil, fmt.Errorf("%s: unexpected header %q", path, got)
	}

	records := make([]types.EventRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, types.EventRecord{
			ISO3:           row[0],
			Country:        row[1],
			EventName:      row[2],
			Grade:          row[3],
			DateNotified:   row[4],
			DateStart:      row[5],
			DateEnd:        row[6],
			CasesTotal:     parseCell(row[7]),
			CasesConfirmed: parseCell(row[8]),
			Deaths:         parseCell(row[9]),
			CFR:            row[10],
			Notes:          row[11],
		})
	}
	return records, nil
}

func parseCell(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
