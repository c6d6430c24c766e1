// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import "testing"

func TestNext_FieldAdvance(t *testing.T) {
	// Blank lines walk the canonical field order.
	for i := 0; i < len(fieldOrder)-1; i++ {
		got := fieldOrder[i].Next()
		want := fieldOrder[i+1]
		if got != want {
			t.Errorf("%v.Next() = %v, want %v", fieldOrder[i], got, want)
		}
	}
}

func TestNext_SelfLoops(t *testing.T) {
	// NOTES spans blank-separated paragraphs; control states never convert
	// to fields on a blank line.
	for _, s := range []State{StateNotes, StatePrologue, StateHeader, StateFooter, StateEnd} {
		if got := s.Next(); got != s {
			t.Errorf("%v.Next() = %v, want self-loop", s, got)
		}
	}
}

func TestNext_UnknownDegrades(t *testing.T) {
	if got := StateUnknown.Next(); got != StateUnknown {
		t.Errorf("UNKNOWN.Next() = %v, want UNKNOWN", got)
	}
}

func TestIsField(t *testing.T) {
	for _, s := range fieldOrder {
		if !s.IsField() {
			t.Errorf("%v should be a field", s)
		}
	}
	for _, s := range []State{StatePrologue, StateHeader, StateFooter, StateEnd, StateUnknown} {
		if s.IsField() {
			t.Errorf("%v should not be a field", s)
		}
	}
}
