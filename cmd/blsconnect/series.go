// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/blsconnect/internal/bls"
	"github.com/pdiddy/blsconnect/internal/table"
)

var seriesCmd = &cobra.Command{
	Use:   "series [series-id...]",
	Short: "Pull data series from the BLS API by series ID",
	Long: `Series pulls the given series IDs over a year range and prints the
merged table. Ranges wider than the API limit are pulled in chunks. Output
is a wide table by default (one column per series); --layout long emits one
row per (series, period) pair.

Missing observations stay empty unless --interpolate fills them linearly,
and --groupby collapses rows into coarser time buckets (y, s, q, m) with
the reduction named by --groupby-method.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSeries,
}

func init() {
	seriesCmd.Flags().Int("start", 0, "earliest year to pull")
	seriesCmd.Flags().Int("end", 0, "latest year to pull")
	seriesCmd.Flags().String("layout", "wide", "table layout: wide or long")
	seriesCmd.Flags().Bool("interpolate", false, "linearly fill missing values per series")
	seriesCmd.Flags().String("groupby", "", "aggregate into coarser buckets: y, s, q, or m")
	seriesCmd.Flags().String("groupby-method", "mean", "bucket reduction: mean, first, last, min, max, sum, median")
	seriesCmd.Flags().Bool("footnotes", false, "keep provider footnotes (long layout, or wide with one series)")
	seriesCmd.Flags().String("output", "table", "output format: table, csv, or json")
	seriesCmd.Flags().Bool("catalog", false, "also print series catalog metadata as YAML (requires an API key)")

	rootCmd.AddCommand(seriesCmd)
}

func runSeries(cmd *cobra.Command, args []string) error {
	start, _ := cmd.Flags().GetInt("start")
	end, _ := cmd.Flags().GetInt("end")
	layout, _ := cmd.Flags().GetString("layout")
	interpolate, _ := cmd.Flags().GetBool("interpolate")
	groupBy, _ := cmd.Flags().GetString("groupby")
	groupMethod, _ := cmd.Flags().GetString("groupby-method")
	footnotes, _ := cmd.Flags().GetBool("footnotes")
	output, _ := cmd.Flags().GetString("output")
	wantCatalog, _ := cmd.Flags().GetBool("catalog")

	cfg := clientConfig(cmd)
	if wantCatalog && cfg.APIKey == "" {
		return fmt.Errorf("catalog metadata requires an API key")
	}

	client := bls.New(cfg)
	result, err := client.Series(context.Background(), args, bls.SeriesOptions{
		StartYear:     start,
		EndYear:       end,
		Layout:        table.Layout(layout),
		Interpolate:   interpolate,
		GroupBy:       groupBy,
		GroupMethod:   groupMethod,
		KeepFootnotes: footnotes,
	})
	if err != nil {
		return err
	}

	switch output {
	case "csv":
		if err := table.FormatCSV(result.Table, os.Stdout); err != nil {
			return err
		}
	case "json":
		if err := table.FormatJSON(result.Table, os.Stdout); err != nil {
			return err
		}
	case "table":
		table.FormatText(result.Table, os.Stdout)
	default:
		return fmt.Errorf("output must be table, csv, or json; got %q", output)
	}

	if wantCatalog {
		fmt.Fprintln(os.Stdout)
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(result.Catalog); err != nil {
			return err
		}
		return enc.Close()
	}
	return nil
}
