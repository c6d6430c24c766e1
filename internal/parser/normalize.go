// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/bulletin-engine/internal/refdata"
	"github.com/pdiddy/bulletin-engine/pkg/types"
)

// dateLayouts are tried in order. Bulletins print dates as 05-Jan-23 and
// occasionally 05-Jan-2023. Go's two-digit year pivots at 69 the same way
// strptime's %y does, so 23 resolves to 2023.
var dateLayouts = []string{"2-Jan-06", "2-Jan-2006"}

// NormalizeDate parses a bulletin date cell and returns it as an ISO 8601
// calendar date (YYYY-MM-DD). Unparseable text returns "" and writes a
// warning to w; a bad date nulls the cell, never the record.
func NormalizeDate(s string, w io.Writer) string {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	fmt.Fprintf(w, "warning: could not parse date %q\n", s)
	return ""
}

// NormalizeInt parses a bulletin count cell. Internal spaces are thousands
// separators and are removed; "-" and "" mean no data and return nil
// silently; any other unparseable text returns nil with a warning on w.
func NormalizeInt(s string, w io.Writer) *int {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "-" || s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		fmt.Fprintf(w, "warning: could not parse as integer: %q\n", s)
		return nil
	}
	return &n
}

// LookupISO3 resolves a country cell to its alpha-3 code, or "" when the
// name is empty or unresolvable. The bulletin phrases the DRC differently
// from the registry's canonical comma form, hence the fixed override.
func LookupISO3(country string, ref *refdata.Set) string {
	country = strings.ToLower(strings.TrimSpace(country))
	if country == "" {
		return ""
	}
	if country == "democratic republic of the congo" {
		return "COD"
	}
	return ref.LookupISO3(country)
}

// Normalize converts one raw record into its typed form: dates to ISO form,
// counts to integers, text fields trimmed, and ISO3 derived from the
// country name. Field-level failures null the field and warn on w.
func Normalize(rec *RawRecord, ref *refdata.Set, w io.Writer) types.EventRecord {
	country := strings.TrimSpace(rec.Get(StateCountry))
	return types.EventRecord{
		ISO3:           LookupISO3(country, ref),
		Country:        country,
		EventName:      strings.TrimSpace(rec.Get(StateEventName)),
		Grade:          strings.TrimSpace(rec.Get(StateGrade)),
		DateNotified:   NormalizeDate(rec.Get(StateDateNotified), w),
		DateStart:      NormalizeDate(rec.Get(StateDateStart), w),
		DateEnd:        NormalizeDate(rec.Get(StateDateEnd), w),
		CasesTotal:     NormalizeInt(rec.Get(StateCasesTotal), w),
		CasesConfirmed: NormalizeInt(rec.Get(StateCasesConfirmed), w),
		Deaths:         NormalizeInt(rec.Get(StateDeaths), w),
		CFR:            strings.TrimSpace(rec.Get(StateCFR)),
		Notes:          strings.TrimSpace(rec.Get(StateNotes)),
	}
}
