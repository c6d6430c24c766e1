// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"io"
	"strings"

	"github.com/pdiddy/bulletin-engine/internal/refdata"
	"github.com/pdiddy/bulletin-engine/pkg/types"
)

// Parse reconstructs the event records from one bulletin's worth of
// flattened text. Field-level parse failures are written as warnings to w
// and null the affected field; they never abort the parse. The result is
// deterministic: identical text and reference data always produce identical
// records.
func Parse(text string, ref *refdata.Set, w io.Writer) []types.EventRecord {
	lines := strings.Split(text, "\n")

	acc := NewAccumulator(NewClassifier(ref))
	raw := acc.Run(lines)

	records := make([]types.EventRecord, 0, len(raw))
	for _, r := range raw {
		// The seed placeholder, and any record the heuristics never
		// populated, would serialize as a blank row; drop them.
		if r.Empty() {
			continue
		}
		records = append(records, Normalize(r, ref, w))
	}
	return records
}
