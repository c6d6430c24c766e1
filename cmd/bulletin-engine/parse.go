// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bulletin-engine/internal/convert"
	"github.com/pdiddy/bulletin-engine/internal/fetch"
	"github.com/pdiddy/bulletin-engine/internal/parser"
	"github.com/pdiddy/bulletin-engine/internal/refdata"
	"github.com/pdiddy/bulletin-engine/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse [inputs...]",
	Short: "Parse bulletin text into CSV event tables",
	Long: `Parse reconstructs the outbreak event table from converted bulletin text
and writes one CSV per bulletin to bulletins/csv/. Inputs may be bulletin
URLs (fetched and converted first), PDF paths (converted first), or text
files. With --batch it parses every text file under bulletins/text/ that
has no CSV yet. Parse warnings go to stderr.`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("bulletins-dir", "", "base directory for bulletins (default: bulletins)")
	parseCmd.Flags().Bool("batch", false, "parse all unparsed text files in bulletins-dir")
	parseCmd.Flags().Bool("stdout", false, "write CSV to stdout instead of bulletins/csv/")

	rootCmd.AddCommand(parseCmd)
}

// pipelineConfig resolves the stage configurations the parse command can
// drive: a URL input runs fetch, convert, then parse. The store stage
// resolves its own flags and is not part of this command.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	return types.PipelineConfig{
		Fetch:      fetchConfig(cmd),
		Conversion: conversionConfig(cmd),
		Parse:      types.ParseConfig{BulletinsDir: bulletinsDir(cmd)},
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	batch, _ := cmd.Flags().GetBool("batch")
	toStdout, _ := cmd.Flags().GetBool("stdout")
	cfg := pipelineConfig(cmd)

	inputs := args
	if batch {
		pending, err := pendingTexts(cfg.Parse.BulletinsDir)
		if err != nil {
			return err
		}
		inputs = append(inputs, pending...)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("provide bulletin URLs, PDF paths, or text files, or use --batch")
	}

	ref, err := refdata.Load()
	if err != nil {
		return err
	}

	var failed int
	for _, input := range inputs {
		if err := parseOne(input, cfg, ref, toStdout); err != nil {
			fmt.Fprintf(os.Stderr, "failed: %s (%v)\n", input, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d input(s) failed to parse", failed)
	}
	return nil
}

// parseOne dispatches on the input kind: URLs are fetched and converted,
// PDFs are converted, and text files are parsed directly.
func parseOne(input string, cfg types.PipelineConfig, ref *refdata.Set, toStdout bool) error {
	var textPath string
	dir := cfg.Parse.BulletinsDir

	switch {
	case strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://"):
		client := &http.Client{Timeout: cfg.Fetch.Timeout}
		b, _, err := fetch.FetchBulletin(client, input, cfg.Fetch, os.Stdout)
		if err != nil {
			return err
		}
		if status := convertPDF(b.PDFPath, cfg.Conversion); status == types.ConversionFailed {
			return fmt.Errorf("converting %s", b.PDFPath)
		}
		textPath = convert.TextPath(cfg.Conversion.BulletinsDir, b.PDFPath)

	case strings.EqualFold(filepath.Ext(input), ".pdf"):
		if status := convertPDF(input, cfg.Conversion); status == types.ConversionFailed {
			return fmt.Errorf("converting %s", input)
		}
		textPath = convert.TextPath(cfg.Conversion.BulletinsDir, input)

	default:
		textPath = input
	}

	text, err := os.ReadFile(textPath)
	if err != nil {
		return err
	}

	records := parser.Parse(string(text), ref, os.Stderr)

	if toStdout {
		return parser.WriteCSV(os.Stdout, records)
	}

	base := strings.TrimSuffix(filepath.Base(textPath), filepath.Ext(textPath))
	outDir := filepath.Join(dir, "csv")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	outPath := filepath.Join(outDir, base+".csv")

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := parser.WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	// Record the CSV location in the sidecar when the bulletin has one.
	metaPath := filepath.Join(dir, "metadata", base+".yaml")
	if b, err := fetch.ReadMetadata(metaPath); err == nil {
		b.CSVPath = outPath
		fetch.WriteMetadata(b, metaPath)
	}

	fmt.Printf("parsed: %s (%d events) -> %s\n", base, len(records), outPath)
	return nil
}

func convertPDF(pdfPath string, cfg types.ConversionConfig) types.ConversionStatus {
	conv, err := convert.NewPdftotextConverter()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return types.ConversionFailed
	}
	b := types.Bulletin{
		ID:      strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath)),
		PDFPath: pdfPath,
	}
	return convert.ConvertBulletin(conv, b, cfg, os.Stdout)
}

// pendingTexts lists text files under dir/text/ that have no CSV yet.
func pendingTexts(dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(dir, "text"))
	if err != nil {
		return nil, fmt.Errorf("reading text directory: %w", err)
	}
	var pending []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		base := strings.TrimSuffix(e.Name(), ".txt")
		if _, err := os.Stat(filepath.Join(dir, "csv", base+".csv")); err == nil {
			continue
		}
		pending = append(pending, filepath.Join(dir, "text", e.Name()))
	}
	return pending, nil
}
