// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements PDF-to-plain-text conversion for bulletins.
// The only backend is the pdftotext binary; everything downstream assumes
// its flattened single-stream output.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/bulletin-engine/internal/fetch"
	"github.com/pdiddy/bulletin-engine/pkg/types"
)

const (
	// textDir is the subdirectory under the bulletins base for text output.
	textDir = "text"
	// rawDir is the subdirectory under the bulletins base for raw PDFs.
	rawDir = "raw"
	// metadataDir is the subdirectory holding the YAML sidecars.
	metadataDir = "metadata"
)

// Converter transforms a PDF file into plain text.
type Converter interface {
	// Convert reads a PDF at pdfPath and returns the extracted text.
	Convert(pdfPath string) (string, error)
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of bulletins processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any bulletins failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertBulletin converts a single PDF to text, writing the result to the
// output directory, and returns the conversion status. If the text output
// already exists, conversion is skipped and ConversionNone returned.
func ConvertBulletin(c Converter, b types.Bulletin, cfg types.ConversionConfig, w io.Writer) types.ConversionStatus {
	outDir := filepath.Join(cfg.BulletinsDir, textDir)
	base := strings.TrimSuffix(filepath.Base(b.PDFPath), filepath.Ext(b.PDFPath))
	textPath := filepath.Join(outDir, base+".txt")

	if _, err := os.Stat(textPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
		return types.ConversionNone
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	text, err := c.Convert(b.PDFPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	if err := os.WriteFile(textPath, []byte(text), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed
	}

	updateSidecar(cfg.BulletinsDir, base, textPath)

	fmt.Fprintf(w, "converted: %s\n", base)
	return types.ConversionDone
}

// updateSidecar records the text path and conversion status in the
// bulletin's metadata sidecar. Bulletins converted from loose PDF paths
// have no sidecar, which is fine; the update is best-effort.
func updateSidecar(bulletinsDir, bulletinID, textPath string) {
	metaPath := filepath.Join(bulletinsDir, metadataDir, bulletinID+".yaml")
	b, err := fetch.ReadMetadata(metaPath)
	if err != nil {
		return
	}
	b.TextPath = textPath
	b.ConversionStatus = types.ConversionDone
	fetch.WriteMetadata(b, metaPath)
}

// ConvertBatch processes a list of bulletins through the converter,
// printing per-file status to w and returning a summary.
func ConvertBatch(c Converter, bulletins []types.Bulletin, cfg types.ConversionConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, b := range bulletins {
		switch ConvertBulletin(c, b, cfg, w) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// ConvertPaths builds Bulletin records from raw PDF paths and delegates to
// ConvertBatch. Each path becomes a minimal Bulletin with ID derived from
// the filename.
func ConvertPaths(c Converter, pdfPaths []string, cfg types.ConversionConfig, w io.Writer) BatchResult {
	bulletins := make([]types.Bulletin, len(pdfPaths))
	for i, p := range pdfPaths {
		base := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		bulletins[i] = types.Bulletin{
			ID:      base,
			PDFPath: p,
		}
	}
	return ConvertBatch(c, bulletins, cfg, w)
}

// TextPath returns where the converted text for a PDF lives under the
// bulletins base.
func TextPath(bulletinsDir, pdfPath string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(bulletinsDir, textDir, base+".txt")
}

// PendingPDFs lists PDFs under bulletinsDir/raw/ that have no converted
// text yet.
func PendingPDFs(bulletinsDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(bulletinsDir, rawDir))
	if err != nil {
		return nil, fmt.Errorf("reading raw directory: %w", err)
	}
	var pending []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".pdf") {
			continue
		}
		pdfPath := filepath.Join(bulletinsDir, rawDir, e.Name())
		if _, err := os.Stat(TextPath(bulletinsDir, pdfPath)); err == nil {
			continue
		}
		pending = append(pending, pdfPath)
	}
	return pending, nil
}
