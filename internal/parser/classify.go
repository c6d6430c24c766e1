// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"strings"

	"github.com/pdiddy/bulletin-engine/internal/refdata"
)

const (
	// beginBanner opens the events table in every post-2020 bulletin.
	beginBanner = "All events currently being monitored by WHO AFRO"

	// footerBanner is the page footer repeated throughout the document.
	footerBanner = "Health Emergency Information and Risk Assessment"

	// endMarker is the grading-disclaimer footnote that follows the table.
	// Everything after it is discarded.
	endMarker = "†Grading is an internal WHO process"

	// notesLength is the line length above which a line is assumed to be
	// the notes column bleeding across the page width.
	notesLength = 100
)

// headerCells are the table header labels as pdftotext emits them, one per
// line. Lines equal to any of these are structural, not data.
var headerCells = map[string]struct{}{
	"Country":       {},
	"Event":         {},
	"Grade":         {},
	"Date notified": {},
	"Start of":      {},
	"End of":        {},
	"Total cases":   {},
	"Cases":         {},
	"Deaths":        {},
	"CFR":           {},
	"New Events":    {},
}

// Classifier assigns a State to each trimmed input line. Rules run in fixed
// priority order and each matching rule overwrites the state assigned so
// far, so the final state comes from the last rule that matches. Reordering
// the rules changes output on ambiguous lines.
type Classifier struct {
	ref *refdata.Set

	// inPrologue is set until the table banner or the "Country" header
	// cell is seen; prologue lines are discarded wholesale.
	inPrologue bool
}

// NewClassifier returns a classifier for one parse run.
func NewClassifier(ref *refdata.Set) *Classifier {
	return &Classifier{ref: ref, inPrologue: true}
}

// Classify trims line, evaluates the rule sequence against the current
// cursor state, and returns the resulting state plus the token to
// accumulate. Structural lines (blank, prologue, banner) return an empty
// token. A blank line returns the advanced cursor state.
func (c *Classifier) Classify(cursor State, line string) (State, string) {
	line = strings.TrimSpace(line)

	if line == "" {
		return cursor.Next(), ""
	}
	if cursor == StateEnd {
		return StateEnd, ""
	}
	if strings.HasPrefix(line, beginBanner) || line == "Country" {
		c.inPrologue = false
		return StateHeader, ""
	}
	if c.inPrologue {
		return cursor, ""
	}

	state := cursor
	if c.isCountryLine(line) {
		state = StateCountry
	}
	if strings.HasSuffix(line, "%") {
		state = StateCFR
	}
	if line == "West and" || line == "South Sudan" {
		// "West and" is the wrapped first half of "West and Central
		// Africa" style names; "South Sudan" otherwise collides with the
		// Sudan row above it.
		state = StateCountry
	}
	if _, ok := headerCells[line]; ok {
		state = StateHeader
	}
	if len(line) > notesLength {
		state = StateNotes
	}
	if strings.HasPrefix(line, "Go to") || line == footerBanner {
		state = StateFooter
	}
	if strings.HasPrefix(line, endMarker) {
		state = StateEnd
	}
	return state, line
}

// isCountryLine reports whether the line opens a country cell: its first
// word is a known country-name leading token, or the whole line is a
// canonical country name.
func (c *Classifier) isCountryLine(line string) bool {
	fields := strings.Fields(line)
	if len(fields) > 0 && c.ref.IsLeadingToken(fields[0]) {
		return true
	}
	return c.ref.IsCountry(line)
}
