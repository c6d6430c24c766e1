// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"strings"
	"testing"

	"github.com/pdiddy/bulletin-engine/internal/refdata"
)

func testRefdata(t *testing.T) *refdata.Set {
	t.Helper()
	ref, err := refdata.Load()
	if err != nil {
		t.Fatal(err)
	}
	return ref
}

// activeClassifier returns a classifier that has already seen the table
// banner, so the prologue discard no longer applies.
func activeClassifier(t *testing.T) *Classifier {
	t.Helper()
	c := NewClassifier(testRefdata(t))
	state, tok := c.Classify(StatePrologue, "All events currently being monitored by WHO AFRO")
	if state != StateHeader || tok != "" {
		t.Fatalf("banner line: got (%v, %q), want (HEADER, \"\")", state, tok)
	}
	return c
}

func TestClassify_PrologueDiscarded(t *testing.T) {
	c := NewClassifier(testRefdata(t))

	// Even country names and percentages are discarded before the banner.
	for _, line := range []string{"Weekly Bulletin on Outbreaks", "Nigeria", "45.2%"} {
		state, tok := c.Classify(StatePrologue, line)
		if state != StatePrologue || tok != "" {
			t.Errorf("prologue line %q: got (%v, %q), want (PROLOGUE, \"\")", line, state, tok)
		}
	}
}

func TestClassify_CountryHeaderCellEndsPrologue(t *testing.T) {
	c := NewClassifier(testRefdata(t))
	state, tok := c.Classify(StatePrologue, "Country")
	if state != StateHeader || tok != "" {
		t.Errorf("got (%v, %q), want (HEADER, \"\")", state, tok)
	}
	// Prologue is cleared: the next country line now classifies as data.
	state, _ = c.Classify(state, "Nigeria")
	if state != StateCountry {
		t.Errorf("post-header country line: got %v, want COUNTRY", state)
	}
}

func TestClassify_BlankAdvancesCursor(t *testing.T) {
	c := activeClassifier(t)
	state, tok := c.Classify(StateCountry, "   ")
	if state != StateEventName || tok != "" {
		t.Errorf("blank line: got (%v, %q), want (EVENT_NAME, \"\")", state, tok)
	}
}

func TestClassify_Rules(t *testing.T) {
	tests := []struct {
		name   string
		cursor State
		line   string
		want   State
	}{
		{"country by full name", StateNotes, "Nigeria", StateCountry},
		{"country by leading token", StateNotes, "Burkina Faso", StateCountry},
		{"wrap-recovery token", StateNotes, "Democratic Republic of", StateCountry},
		{"west and fix-up", StateNotes, "West and", StateCountry},
		{"south sudan fix-up", StateNotes, "South Sudan", StateCountry},
		{"cfr from percent", StateGrade, "45.2%", StateCFR},
		{"cfr overrides country token", StateNotes, "Niger 1.2%", StateCFR},
		{"header cell", StateNotes, "Date notified", StateHeader},
		{"long line is notes", StateGrade, strings.Repeat("x", 101), StateNotes},
		{"long percent line is notes", StateGrade, strings.Repeat("x", 120) + "%", StateNotes},
		{"footer go to", StateNotes, "Go to overview", StateFooter},
		{"footer banner", StateNotes, "Health Emergency Information and Risk Assessment", StateFooter},
		{"end marker", StateNotes, "†Grading is an internal WHO process", StateEnd},
		{"carry-over", StateGrade, "Protracted 1", StateGrade},
		{"carry-over unknown", StateUnknown, "stray text", StateUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := activeClassifier(t)
			state, tok := c.Classify(tt.cursor, tt.line)
			if state != tt.want {
				t.Errorf("Classify(%v, %q) = %v, want %v", tt.cursor, tt.line, state, tt.want)
			}
			if tok != strings.TrimSpace(tt.line) {
				t.Errorf("token = %q, want trimmed line", tok)
			}
		})
	}
}

func TestClassify_CFRRegardlessOfCursor(t *testing.T) {
	// Determinism: the percent rule fires no matter what the cursor holds.
	for _, cursor := range []State{StateCountry, StateGrade, StateNotes, StateUnknown, StateFooter} {
		c := activeClassifier(t)
		state, _ := c.Classify(cursor, "45.2%")
		if state != StateCFR {
			t.Errorf("cursor %v: got %v, want CFR", cursor, state)
		}
	}
}

func TestClassify_EndIsTerminal(t *testing.T) {
	c := activeClassifier(t)
	state, _ := c.Classify(StateNotes, "†Grading is an internal WHO process and not an indication of severity")
	if state != StateEnd {
		t.Fatalf("end marker: got %v", state)
	}
	// All subsequent lines are discarded, including would-be matches.
	for _, line := range []string{"Nigeria", "45.2%", strings.Repeat("x", 150)} {
		state, tok := c.Classify(StateEnd, line)
		if state != StateEnd || tok != "" {
			t.Errorf("post-end line %q: got (%v, %q), want (END, \"\")", line, state, tok)
		}
	}
}
