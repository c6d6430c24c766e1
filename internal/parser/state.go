// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parser reconstructs structured outbreak event records from the
// flattened plain text of a WHO AFRO bulletin. The PDF table structure is
// destroyed by pdftotext, so record and field boundaries are recovered with
// a priority-ordered heuristic line classifier driving a field accumulator.
package parser

// State is a line classification: either one of the eleven data fields of a
// bulletin table row, or a control state marking a structural region of the
// document. Field order is significant; it defines how the cursor advances
// on blank lines.
type State int

const (
	StatePrologue State = iota
	StateHeader
	StateCountry
	StateEventName
	StateGrade
	StateDateNotified
	StateDateStart
	StateDateEnd
	StateCasesTotal
	StateCasesConfirmed
	StateDeaths
	StateCFR
	StateNotes
	StateFooter
	StateEnd
	StateUnknown
)

var stateNames = map[State]string{
	StatePrologue:       "PROLOGUE",
	StateHeader:         "HEADER",
	StateCountry:        "COUNTRY",
	StateEventName:      "EVENT_NAME",
	StateGrade:          "GRADE",
	StateDateNotified:   "DATE_NOTIFY",
	StateDateStart:      "DATE_START",
	StateDateEnd:        "DATE_END",
	StateCasesTotal:     "CASES_TOTAL",
	StateCasesConfirmed: "CASES_CONFIRMED",
	StateDeaths:         "DEATHS",
	StateCFR:            "CFR",
	StateNotes:          "NOTES",
	StateFooter:         "FOOTER",
	StateEnd:            "END",
	StateUnknown:        "UNKNOWN",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "UNKNOWN"
}

// fieldOrder is the canonical column order of the bulletin table. It is also
// the output column order (prefixed by the derived ISO3).
var fieldOrder = []State{
	StateCountry,
	StateEventName,
	StateGrade,
	StateDateNotified,
	StateDateStart,
	StateDateEnd,
	StateCasesTotal,
	StateCasesConfirmed,
	StateDeaths,
	StateCFR,
	StateNotes,
}

// IsField reports whether s is a data field rather than a control state.
// Control states never contribute text to a record.
func (s State) IsField() bool {
	return s >= StateCountry && s <= StateNotes
}

// blankNext is the blank-line transition table. A blank line advances the
// cursor to the next field in canonical order; NOTES self-loops because the
// notes column spans blank-separated paragraphs, and control states
// self-loop because a blank line never converts a structural region into
// data. Anything absent degrades to UNKNOWN.
var blankNext = map[State]State{
	StatePrologue:       StatePrologue,
	StateHeader:         StateHeader,
	StateCountry:        StateEventName,
	StateEventName:      StateGrade,
	StateGrade:          StateDateNotified,
	StateDateNotified:   StateDateStart,
	StateDateStart:      StateDateEnd,
	StateDateEnd:        StateCasesTotal,
	StateCasesTotal:     StateCasesConfirmed,
	StateCasesConfirmed: StateDeaths,
	StateDeaths:         StateCFR,
	StateCFR:            StateNotes,
	StateNotes:          StateNotes,
	StateFooter:         StateFooter,
	StateEnd:            StateEnd,
}

// Next returns the state the cursor moves to when a blank line is seen.
func (s State) Next() State {
	next, ok := blankNext[s]
	if !ok {
		return StateUnknown
	}
	return next
}
