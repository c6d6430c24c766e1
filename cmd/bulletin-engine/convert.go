package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bulletin-engine/internal/convert"
	"github.com/pdiddy/bulletin-engine/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [pdfs...]",
	Short: "Convert bulletin PDFs to plain text",
	Long: `Convert runs pdftotext over bulletin PDFs, writing the flattened text
stream to bulletins/text/. With --batch it converts every PDF under
bulletins/raw/ that has no text output yet.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("bulletins-dir", "", "base directory for bulletins (default: bulletins)")
	convertCmd.Flags().Bool("batch", false, "convert all unconverted PDFs in bulletins-dir")

	rootCmd.AddCommand(convertCmd)
}

// conversionConfig resolves settings for the conversion stage.
func conversionConfig(cmd *cobra.Command) types.ConversionConfig {
	return types.ConversionConfig{BulletinsDir: bulletinsDir(cmd)}
}

func runConvert(cmd *cobra.Command, args []string) error {
	batch, _ := cmd.Flags().GetBool("batch")
	cfg := conversionConfig(cmd)

	paths := args
	if batch {
		pending, err := convert.PendingPDFs(cfg.BulletinsDir)
		if err != nil {
			return err
		}
		paths = append(paths, pending...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("provide PDF paths or use --batch to convert pending bulletins")
	}

	conv, err := convert.NewPdftotextConverter()
	if err != nil {
		return err
	}

	result := convert.ConvertPaths(conv, paths, cfg, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d bulletin(s) failed conversion", result.Failed)
	}
	return nil
}
