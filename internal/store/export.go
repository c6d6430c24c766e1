// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// ExportFormat selects the serialization for an export.
type ExportFormat string

const (
	FormatYAML ExportFormat = "yaml"
	FormatJSON ExportFormat = "json"
)

// Export writes all events matching the options to w in the requested
// format. Unlike Query it does not cap the result set unless the options
// ask for a cap.
func (s *Store) Export(ctx context.Context, opts QueryOptions, format ExportFormat, w io.Writer) error {
	if opts.MaxResults <= 0 {
		// SQLite treats a negative LIMIT as unlimited.
		opts.MaxResults = -1
	}

	events, err := s.Query(ctx, opts)
	if err != nil {
		return err
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(events); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(events); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
