// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdftext/internal/history"
	"github.com/pdiddy/pdftext/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversions from the history database",
	Long: `History lists conversions recorded with --history, newest first,
showing when each ran, the backend used, the page count, and the
source and output paths.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of conversions to list")
	historyCmd.Flags().Bool("json", false, "output conversions as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := viper.GetString("history")
	if path == "" {
		return fmt.Errorf("no history database configured (set --history or history in the config file)")
	}
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	convs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	return printHistory(cmd.OutOrStdout(), convs, asJSON)
}

func printHistory(w io.Writer, convs []types.Conversion, asJSON bool) error {
	if asJSON {
		if convs == nil {
			convs = []types.Conversion{}
		}
		data, err := json.MarshalIndent(convs, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding history: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	if len(convs) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}
	for _, c := range convs {
		fmt.Fprintf(w, "%s  %-9s  %4d pages  %s -> %s\n",
			c.ConvertedAt.Format(time.RFC3339), c.Backend, c.Pages, c.Source, c.Output)
		if len(c.FailedPages) > 0 {
			fmt.Fprintf(w, "    failed pages: %v\n", c.FailedPages)
		}
	}
	return nil
}
