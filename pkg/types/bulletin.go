// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the state of PDF-to-text conversion for a bulletin.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Bulletin holds metadata and file paths for one acquired bulletin issue.
// It is written as a YAML sidecar next to the downloaded PDF and read back
// by the later stages.
type Bulletin struct {
	// ID is a slug derived from the source URL or filename
	// (e.g. "OEW42-2020").
	ID string `json:"id" yaml:"id"`

	// SourceURL is the URL from which the bulletin was downloaded, if any.
	SourceURL string `json:"source_url,omitempty" yaml:"source_url,omitempty"`

	// PDFPath is the local filesystem path to the downloaded PDF.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// TextPath is the local path to the pdftotext output, once converted.
	TextPath string `json:"text_path,omitempty" yaml:"text_path,omitempty"`

	// CSVPath is the local path to the parsed CSV, once parsed.
	CSVPath string `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`

	// FetchedAt is when the PDF was downloaded.
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`

	// ConversionStatus tracks whether the PDF has been converted to text.
	ConversionStatus ConversionStatus `json:"conversion_status" yaml:"conversion_status"`
}
