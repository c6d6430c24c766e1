// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bulletin-engine/internal/store"
	"github.com/pdiddy/bulletin-engine/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the event store (index, query, export)",
	Long: `Store manages a local SQLite event store built from parsed bulletin
CSVs. Use subcommands to index bulletins, query events, or export.`,
}

// --- index subcommand ---

var storeIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Ingest parsed bulletin CSVs into the event store",
	Long: `Index reads CSV files from bulletins/csv/, ingests them into a SQLite
database with FTS5 indexing over event names and notes, and records each
bulletin's metadata. Unchanged bulletins are skipped on subsequent runs.`,
	RunE: runStoreIndex,
}

func runStoreIndex(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d bulletin(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- query subcommand ---

var storeQueryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Query the event store with full-text search and filters",
	Long: `Query searches stored events using FTS5 full-text search over event
names and notes, structured filters (country, grade, bulletin), or a
combination of both. Results carry the bulletin each event came from.`,
	RunE: runStoreQuery,
}

func runStoreQuery(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.Text == "" && opts.Country == "" && opts.Grade == "" && opts.BulletinID == "" {
		return fmt.Errorf("query or filter required: provide search text, --country, --grade, or --bulletin")
	}

	events, err := s.Query(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(events, jsonOutput)
}

func formatQueryOutput(events []store.Event, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}

	if len(events) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-25s  %-30s  %-8s  %-10s  %s\n",
		"Rank", "Country", "Event", "Grade", "Notified", "Bulletin")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for i, e := range events {
		country := e.Country
		if len(country) > 25 {
			country = country[:22] + "..."
		}
		event := e.EventName
		if len(event) > 30 {
			event = event[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-25s  %-30s  %-8s  %-10s  %s\n",
			i+1, country, event, e.Grade, e.DateNotified, e.BulletinID)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(events))
	return nil
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored events to YAML or JSON",
	Long: `Export writes all stored events (or a filtered subset) to stdout in
YAML or JSON. Supports the same filter flags as query for partial exports;
without a --limit the full result set is exported.`,
	RunE: runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := queryOptsFromFlags(cmd, args)

	switch format {
	case "yaml", "":
		return s.Export(context.Background(), opts, store.FormatYAML, os.Stdout)
	case "json":
		return s.Export(context.Background(), opts, store.FormatJSON, os.Stdout)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

// --- shared helpers ---

func openStore(cmd *cobra.Command) (*store.Store, error) {
	storeDir, _ := cmd.Flags().GetString("store-dir")
	if storeDir == "" {
		storeDir = viper.GetString("store_dir")
	}
	if storeDir == "" {
		storeDir = "store"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	cfg := types.StoreConfig{
		StoreDir:     storeDir,
		BulletinsDir: bulletinsDir(cmd),
		MaxResults:   maxResults,
	}
	return store.NewStore(cfg)
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) store.QueryOptions {
	text, _ := cmd.Flags().GetString("text")
	if text == "" && len(args) > 0 {
		text = strings.Join(args, " ")
	}

	country, _ := cmd.Flags().GetString("country")
	grade, _ := cmd.Flags().GetString("grade")
	bulletinID, _ := cmd.Flags().GetString("bulletin")
	limit, _ := cmd.Flags().GetInt("limit")

	return store.QueryOptions{
		Text:       text,
		Country:    country,
		Grade:      grade,
		BulletinID: bulletinID,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	storeCmd.PersistentFlags().String("store-dir", "", "base directory for the event store (default: store)")
	storeCmd.PersistentFlags().String("bulletins-dir", "", "base directory for bulletins (default: bulletins)")
	storeCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Query flags.
	storeQueryCmd.Flags().String("text", "", "full-text search over event names and notes")
	storeQueryCmd.Flags().String("country", "", "filter by country name or ISO3 code")
	storeQueryCmd.Flags().String("grade", "", "filter by WHO grade (G1, G2, G3, Ungraded)")
	storeQueryCmd.Flags().String("bulletin", "", "filter by bulletin ID")
	storeQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	storeQueryCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	storeExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	storeExportCmd.Flags().String("text", "", "full-text search filter for partial export")
	storeExportCmd.Flags().String("country", "", "filter by country for partial export")
	storeExportCmd.Flags().String("grade", "", "filter by grade for partial export")
	storeExportCmd.Flags().String("bulletin", "", "filter by bulletin ID for partial export")
	storeExportCmd.Flags().Int("limit", 0, "maximum events to export (0 = all)")

	// Wire subcommands.
	storeCmd.AddCommand(storeIndexCmd)
	storeCmd.AddCommand(storeQueryCmd)
	storeCmd.AddCommand(storeExportCmd)

	rootCmd.AddCommand(storeCmd)
}
