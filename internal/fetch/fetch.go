// Package fetch downloads bulletin PDFs and creates metadata records.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bulletin-engine/internal/httputil"
	"github.com/pdiddy/bulletin-engine/pkg/types"
)

const (
	rawDir      = "raw"
	metadataDir = "metadata"
)

// BatchResult holds the outcome of a batch fetch run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
	Bulletins  []*types.Bulletin
}

// Total returns the total number of URLs processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any bulletins failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FetchBulletin downloads a single bulletin PDF and writes its metadata
// sidecar. If the PDF already exists on disk the download is skipped; the
// skipped return value reports which happened. A non-2xx response is an
// error: no partial output is produced.
func FetchBulletin(client *http.Client, rawURL string, cfg types.FetchConfig, w io.Writer) (bulletin *types.Bulletin, skipped bool, err error) {
	slug, err := Slug(rawURL)
	if err != nil {
		return nil, false, err
	}

	pdfPath := filepath.Join(cfg.BulletinsDir, rawDir, slug+".pdf")
	metaPath := filepath.Join(cfg.BulletinsDir, metadataDir, slug+".yaml")

	if _, err := os.Stat(pdfPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", slug)
		b, readErr := ReadMetadata(metaPath)
		if readErr != nil {
			b = &types.Bulletin{ID: slug, SourceURL: rawURL, PDFPath: pdfPath}
		}
		return b, true, nil
	}

	for _, dir := range []string{
		filepath.Join(cfg.BulletinsDir, rawDir),
		filepath.Join(cfg.BulletinsDir, metadataDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, false, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	fmt.Fprintf(w, "downloading: %s\n", slug)

	if err := downloadFile(client, rawURL, pdfPath, cfg); err != nil {
		return nil, false, fmt.Errorf("downloading %s: %w", slug, err)
	}

	b := &types.Bulletin{
		ID:               slug,
		SourceURL:        rawURL,
		PDFPath:          pdfPath,
		FetchedAt:        time.Now().UTC(),
		ConversionStatus: types.ConversionNone,
	}

	if err := WriteMetadata(b, metaPath); err != nil {
		return nil, false, fmt.Errorf("writing metadata for %s: %w", slug, err)
	}

	return b, false, nil
}

// FetchBatch processes multiple URLs, printing per-item status and
// returning a summary. It continues after individual failures and applies
// a delay between consecutive downloads.
func FetchBatch(client *http.Client, urls []string, cfg types.FetchConfig, w io.Writer) BatchResult {
	var result BatchResult
	for i, u := range urls {
		if i > 0 && cfg.DownloadDelay > 0 {
			time.Sleep(cfg.DownloadDelay)
		}
		b, wasSkipped, err := FetchBulletin(client, u, cfg, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", u, err)
			result.Failed++
			continue
		}
		if wasSkipped {
			result.Skipped++
		} else {
			result.Downloaded++
		}
		result.Bulletins = append(result.Bulletins, b)
	}
	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	return result
}

// Slug derives a bulletin ID from its source URL: the final path element
// without the .pdf extension.
func Slug(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL %q: %w", rawURL, err)
	}
	base := path.Base(u.Path)
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		return "", fmt.Errorf("cannot derive bulletin ID from URL %q", rawURL)
	}
	return base, nil
}

// downloadFile fetches url to destPath through a temporary file so a failed
// download never leaves a partial PDF behind. Transient statuses are
// retried with backoff; any remaining non-200 status is fatal.
func downloadFile(client *http.Client, url, destPath string, cfg types.FetchConfig) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(context.Background(), client, req, 0)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// WriteMetadata writes a Bulletin record to a YAML sidecar.
func WriteMetadata(b *types.Bulletin, path string) error {
	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadMetadata reads a Bulletin record from a YAML sidecar.
func ReadMetadata(path string) (*types.Bulletin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b types.Bulletin
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
