// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/bulletin-engine/pkg/types"
)

// QueryOptions narrows a retrieval. Zero values mean "no filter".
type QueryOptions struct {
	// Text is a full-text query over event names and notes.
	Text string
	// Country filters by country name or ISO3 code, case-insensitive.
	Country string
	// Grade filters by WHO grade, exact match.
	Grade string
	// BulletinID restricts results to a single bulletin.
	BulletinID string
	// MaxResults caps the result set; 0 falls back to the store default,
	// negative values lift the cap entirely.
	MaxResults int
}

// Event is a stored event record with its provenance.
type Event struct {
	BulletinID        string `json:"bulletin_id" yaml:"bulletin_id"`
	types.EventRecord `yaml:",inline"`
}

// Query retrieves events matching the options, most recently notified first.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]Event, error) {
	limit := opts.MaxResults
	if limit == 0 {
		limit = s.maxResults
	}

	var (
		conditions []string
		args       []any
	)

	base := `SELECT e.bulletin_id, e.iso3, e.country, e.event_name, e.grade,
		e.date_notified, e.date_start, e.date_end,
		e.cases_total, e.cases_confirmed, e.deaths, e.cfr, e.notes
		FROM events e`

	if opts.Text != "" {
		base += ` JOIN events_fts f ON f.rowid = e.rowid`
		conditions = append(conditions, `events_fts MATCH ?`)
		args = append(args, opts.Text)
	}
	if opts.Country != "" {
		conditions = append(conditions, `(lower(e.country) = lower(?) OR lower(e.iso3) = lower(?))`)
		args = append(args, opts.Country, opts.Country)
	}
	if opts.Grade != "" {
		conditions = append(conditions, `e.grade = ?`)
		args = append(args, opts.Grade)
	}
	if opts.BulletinID != "" {
		conditions = append(conditions, `e.bulletin_id = ?`)
		args = append(args, opts.BulletinID)
	}

	query := base
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY e.date_notified DESC, e.rowid LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e                        Event
			total, confirmed, deaths sql.NullInt64
		)
		err := rows.Scan(&e.BulletinID, &e.ISO3, &e.Country, &e.EventName, &e.Grade,
			&e.DateNotified, &e.DateStart, &e.DateEnd,
			&total, &confirmed, &deaths, &e.CFR, &e.Notes)
		if err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		e.CasesTotal = nullableInt(total)
		e.CasesConfirmed = nullableInt(confirmed)
		e.Deaths = nullableInt(deaths)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Bulletins lists all indexed bulletins, most recently fetched first.
func (s *Store) Bulletins(ctx context.Context) ([]types.Bulletin, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_url, pdf_path, conversion_status FROM bulletins ORDER BY fetched_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("querying bulletins: %w", err)
	}
	defer rows.Close()

	var bulletins []types.Bulletin
	for rows.Next() {
		var (
			b      types.Bulletin
			status string
		)
		if err := rows.Scan(&b.ID, &b.SourceURL, &b.PDFPath, &status); err != nil {
			return nil, fmt.Errorf("scanning bulletin row: %w", err)
		}
		b.ConversionStatus = types.ConversionStatus(status)
		bulletins = append(bulletins, b)
	}
	return bulletins, rows.Err()
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
