// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bulletin-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the bulletin-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "bulletin-engine",
	Short: "Extract outbreak event tables from WHO AFRO bulletins",
	Long: `bulletin-engine turns WHO AFRO weekly outbreak bulletin PDFs into
structured CSV event tables and keeps a searchable local store of the results.

Each pipeline stage is a subcommand: fetch downloads bulletin PDFs, convert
runs pdftotext over them, parse reconstructs the event table from the flat
text stream, and store indexes the parsed records for querying and export.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bulletin-engine.yaml or ~/.config/bulletin-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bulletin-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bulletin-engine"))
		}
	}

	viper.SetEnvPrefix("BULLETIN_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
