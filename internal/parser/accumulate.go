// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

// RawRecord is one country/event entry as accumulated from the line stream,
// before normalization. Fields maps field states to the raw text gathered
// for them; absent keys read as "".
type RawRecord struct {
	Fields map[State]string
}

func newRawRecord() *RawRecord {
	return &RawRecord{Fields: make(map[State]string)}
}

// Get returns the accumulated text for a field, or "" when none was seen.
func (r *RawRecord) Get(f State) string {
	return r.Fields[f]
}

// Empty reports whether no field holds any non-empty text.
func (r *RawRecord) Empty() bool {
	for _, v := range r.Fields {
		if v != "" {
			return false
		}
	}
	return true
}

// Accumulator folds classified lines into raw records. It owns the field
// cursor and remembers the previous classification, which is what detects
// country boundaries.
type Accumulator struct {
	cls     *Classifier
	cursor  State
	prev    State
	records []*RawRecord
}

// NewAccumulator returns an accumulator for one parse run. The record list
// is seeded with an empty placeholder so appends always have a target; the
// placeholder is dropped later if nothing populates it.
func NewAccumulator(cls *Classifier) *Accumulator {
	return &Accumulator{
		cls:     cls,
		cursor:  StatePrologue,
		prev:    StateUnknown,
		records: []*RawRecord{newRawRecord()},
	}
}

// Run consumes the full line sequence and returns the accumulated records.
func (a *Accumulator) Run(lines []string) []*RawRecord {
	for _, line := range lines {
		a.feed(line)
	}
	return a.records
}

func (a *Accumulator) feed(line string) {
	state, token := a.cls.Classify(a.cursor, line)
	a.cursor = state

	if !state.IsField() {
		// Control states never touch a record; they only matter as the
		// remembered previous state for boundary detection.
		a.prev = state
		return
	}

	// A COUNTRY line following a non-COUNTRY data state opens a new record;
	// a COUNTRY line following COUNTRY is a wrapped continuation of the
	// current country's name.
	if state == StateCountry && a.prev != StateCountry {
		a.records = append(a.records, newRawRecord())
	}

	// A field that already holds text always resumes with a single space,
	// even when control lines (page footers, repeated headers) interleaved
	// since the last token for it.
	rec := a.records[len(a.records)-1]
	sep := ""
	if rec.Fields[state] != "" {
		sep = " "
	}
	rec.Fields[state] += sep + token
	a.prev = state
}
