// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package refdata provides the immutable country reference tables consulted
// during line classification and record normalization: the canonical country
// name list, the set of leading name tokens, and the name-to-ISO3 lookup.
//
// The tables are built once from an embedded snapshot of the ISO 3166-1
// registry and never mutate, so a single Set is safe to share across any
// number of parses.
package refdata

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"strings"
)

//go:embed countries.csv
var countriesCSV []byte

// extraLeadingTokens catches multi-word country names that the bulletin
// line-wraps mid-name (e.g. "Democratic Republic of" / "the Congo").
var extraLeadingTokens = []string{"Democratic", "Central", "Republic", "West"}

// Set holds the loaded country reference tables.
type Set struct {
	names   []string
	nameSet map[string]struct{}
	leading map[string]struct{}
	codes   map[string]string
}

// Load parses the embedded country table and builds the lookup sets.
func Load() (*Set, error) {
	r := csv.NewReader(bytes.NewReader(countriesCSV))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing country table: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("country table is empty")
	}

	s := &Set{
		nameSet: make(map[string]struct{}),
		leading: make(map[string]struct{}),
		codes:   make(map[string]string),
	}

	for _, row := range rows[1:] {
		if len(row) != 4 {
			return nil, fmt.Errorf("malformed country row: %v", row)
		}
		alpha2, alpha3, name, common := row[0], row[1], row[2], row[3]

		s.names = append(s.names, name)
		s.nameSet[name] = struct{}{}
		if tok := firstToken(name); tok != "" {
			s.leading[tok] = struct{}{}
		}

		// Lookup keys mirror the registry lookup semantics: name, common
		// name, and both codes, all case-insensitive exact matches.
		s.codes[strings.ToLower(name)] = alpha3
		s.codes[strings.ToLower(alpha2)] = alpha3
		s.codes[strings.ToLower(alpha3)] = alpha3
		if common != "" {
			s.codes[strings.ToLower(common)] = alpha3
		}
	}

	for _, tok := range extraLeadingTokens {
		s.leading[tok] = struct{}{}
	}

	return s, nil
}

// Names returns the canonical country names in table order.
func (s *Set) Names() []string {
	return s.names
}

// IsCountry reports whether line exactly equals a canonical country name.
func (s *Set) IsCountry(line string) bool {
	_, ok := s.nameSet[line]
	return ok
}

// IsLeadingToken reports whether tok is the first word of a canonical
// country name, or one of the fixed wrap-recovery tokens.
func (s *Set) IsLeadingToken(tok string) bool {
	_, ok := s.leading[tok]
	return ok
}

// LookupISO3 resolves a country name (or alpha-2/alpha-3 code) to its ISO
// 3166-1 alpha-3 code. Matching is case-insensitive and exact after
// trimming. Unresolvable names return "".
func (s *Set) LookupISO3(name string) string {
	return s.codes[strings.ToLower(strings.TrimSpace(name))]
}

func firstToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
