// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdftext/internal/backend"
	"github.com/pdiddy/pdftext/internal/convert"
	"github.com/pdiddy/pdftext/internal/history"
	"github.com/pdiddy/pdftext/pkg/types"
)

func init() {
	f := rootCmd.Flags()
	f.String("backend", string(types.BackendNative), "extraction backend: native or pdftotext")
	f.String("pdftotext-bin", "", "pdftotext binary name or path (default: pdftotext on PATH)")
	f.Bool("strict", false, "fail when any page cannot be extracted instead of leaving it empty")
	f.String("meta", "", "write a YAML conversion record to this path")

	viper.BindPFlag("backend", f.Lookup("backend"))
	viper.BindPFlag("pdftotext_bin", f.Lookup("pdftotext-bin"))
	viper.BindPFlag("strict", f.Lookup("strict"))
	viper.BindPFlag("meta", f.Lookup("meta"))
}

// exactArgs rejects anything but an input and an output path, before any
// file is touched.
func exactArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return &convert.UsageError{Program: cmd.Root().Name()}
	}
	return nil
}

// conversionConfig reads the conversion settings from flags, environment,
// and config file.
func conversionConfig() types.ConversionConfig {
	return types.ConversionConfig{
		Backend:      types.Backend(viper.GetString("backend")),
		PdftotextBin: viper.GetString("pdftotext_bin"),
		Strict:       viper.GetBool("strict"),
		MetaPath:     viper.GetString("meta"),
		HistoryPath:  viper.GetString("history"),
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	return convertPDF(cmd.Context(), conversionConfig(), args[0], args[1], cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// convertPDF runs one conversion and its optional record keeping, then
// reports the output path and page count on stdout.
func convertPDF(ctx context.Context, cfg types.ConversionConfig, src, dst string, stdout, stderr io.Writer) error {
	opener, err := backend.New(cfg)
	if err != nil {
		return err
	}

	conv, err := convert.ConvertFile(ctx, opener, src, dst, convert.Options{
		Strict: cfg.Strict,
		Warn:   stderr,
	})
	if err != nil {
		return err
	}

	if cfg.MetaPath != "" {
		if err := convert.WriteMeta(conv, cfg.MetaPath); err != nil {
			return err
		}
	}

	if cfg.HistoryPath != "" {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Record(ctx, conv); err != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "Wrote %s (%d pages)\n", dst, conv.Pages)
	return nil
}
