// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdftext CLI, which writes the text
// of every page of a PDF to a file, each page headed by a page marker.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd converts one PDF; subcommands cover the history ledger and version.
var rootCmd = &cobra.Command{
	Use:   "pdftext <input.pdf> <output.txt>",
	Short: "Extract the text of a PDF page by page into a text file",
	Long: `pdftext extracts the text of every page of a PDF and writes it to a
single text file. Each page is headed by a "--- PAGE n ---" marker and
pages are separated by a blank line. The output file is written in one
atomic step, so a failed run never leaves a partial file behind.

The first argument is matched against subcommand names before it is read
as a path: convert a file named "history" or "version" as ./history.`,
	Version:       version,
	Args:          exactArgs,
	RunE:          runConvert,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdftext.yaml or ~/.config/pdftext/config.yaml)")
	rootCmd.PersistentFlags().String("history", "", "SQLite database recording completed conversions (disabled when empty)")
	viper.BindPFlag("history", rootCmd.PersistentFlags().Lookup("history"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdftext")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdftext"))
		}
	}

	viper.SetEnvPrefix("PDFTEXT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
