// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pdiddy/bulletin-engine/pkg/types"
)

// Columns is the fixed output column order: the derived ISO3 code followed
// by the eleven bulletin fields in canonical order.
var Columns = []string{
	"ISO3",
	"COUNTRY",
	"EVENT_NAME",
	"GRADE",
	"DATE_NOTIFY",
	"DATE_START",
	"DATE_END",
	"CASES_TOTAL",
	"CASES_CONFIRMED",
	"DEATHS",
	"CFR",
	"NOTES",
}

// WriteCSV renders the records as delimited text with a header row. Null
// values (nil counts, empty dates, unresolved ISO3) serialize as empty
// cells.
func WriteCSV(w io.Writer, records []types.EventRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(csvRow(r)); err != nil {
			return fmt.Errorf("writing CSV row for %q: %w", r.Country, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(r types.EventRecord) []string {
	return []string{
		r.ISO3,
		r.Country,
		r.EventName,
		r.Grade,
		r.DateNotified,
		r.DateStart,
		r.DateEnd,
		intCell(r.CasesTotal),
		intCell(r.CasesConfirmed),
		intCell(r.Deaths),
		r.CFR,
		r.Notes,
	}
}

func intCell(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
