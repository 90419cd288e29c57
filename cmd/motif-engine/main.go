// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the motif-engine CLI.
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

// rootCmd is the base command for the motif-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "motif-engine",
	Short: "Search and download JASPAR transcription-factor binding motifs",
	Long: `motif-engine retrieves transcription-factor binding-motif records from the
JASPAR database. It searches the CORE collection for human TFs, downloads
motifs in PFM format, and batch-processes CSV lists of factor names into
downloaded files plus a summary report.

Each operation is a subcommand: search, download, batch, and history.
The tui subcommand launches the interactive front end.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./motif-engine.yaml or ~/.config/motif-engine/config.yaml)")
	rootCmd.PersistentFlags().String("log-file", "", "activity log path (default jaspar_log.txt)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory for the history database (default: current directory)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("motif-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "motif-engine"))
		}
	}

	viper.SetEnvPrefix("MOTIF_ENGINE")
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
