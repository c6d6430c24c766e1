package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bulletin-engine/internal/fetch"
	"github.com/pdiddy/bulletin-engine/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "bulletin-engine/0.1"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [urls...]",
	Short: "Download bulletin PDFs and record their metadata",
	Long: `Fetch downloads WHO AFRO bulletin PDFs from the given URLs into
bulletins/raw/ and writes a YAML metadata sidecar for each. Bulletins that
are already present are skipped.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	fetchCmd.Flags().Duration("delay", 0, "delay between consecutive downloads (default 1s)")
	fetchCmd.Flags().String("bulletins-dir", "", "base directory for bulletins (default: bulletins)")

	rootCmd.AddCommand(fetchCmd)
}

func fetchConfig(cmd *cobra.Command) types.FetchConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("fetch.timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = viper.GetDuration("fetch.download_delay")
	}
	if delay == 0 {
		delay = defaultDelay
	}

	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		DownloadDelay: delay,
		BulletinsDir:  bulletinsDir(cmd),
	}
}

// bulletinsDir resolves the bulletins base directory: flag, then config
// file, then the "bulletins" default.
func bulletinsDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("bulletins-dir"); dir != "" {
		return dir
	}
	if dir := viper.GetString("bulletins_dir"); dir != "" {
		return dir
	}
	return "bulletins"
}

func runFetch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more bulletin PDF URLs")
	}

	cfg := fetchConfig(cmd)
	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	result := fetch.FetchBatch(client, args, cfg, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d bulletin(s) failed to download", result.Failed)
	}
	return nil
}
