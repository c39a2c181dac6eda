// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/blsconnect/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Resolve facet values to BLS series IDs",
	Long: `Search maps human-readable facet values to the opaque series IDs the
BLS API expects. Facets given multiple comma-separated values expand to
every combination:

  blsconnect search --data ur --state mn,wi,ia
  blsconnect search --data cpi --region northeast,midwest,south,west
  blsconnect search --data cpi-food-energy --sa true,false`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSlice("data", nil, "measure name: ur, emp, lf, cpi, cpi-food-energy, ...")
	searchCmd.Flags().StringSlice("state", nil, "state postal code or full name (empty = national)")
	searchCmd.Flags().StringSlice("region", nil, "CPI census region: northeast, midwest, south, west")
	searchCmd.Flags().StringSlice("sizeclass", nil, "CPI city size class: a, b, c")
	searchCmd.Flags().StringSlice("sa", nil, "seasonal adjustment: true or false")
	searchCmd.Flags().Bool("full", false, "label combinations with every facet, not just the varying ones")
	searchCmd.Flags().Bool("list", false, "print only the series IDs")
	searchCmd.Flags().Bool("yaml", false, "output label-to-ID mapping as YAML")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	facets := search.Facets{}
	for _, name := range []string{"data", "state", "region", "sizeclass", "sa"} {
		vals, _ := cmd.Flags().GetStringSlice(name)
		if len(vals) > 0 {
			facets[name] = vals
		}
	}

	if list, _ := cmd.Flags().GetBool("list"); list {
		ids, err := search.IDs(facets)
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	}

	style := search.Short
	if full, _ := cmd.Flags().GetBool("full"); full {
		style = search.Full
	}
	resolved, err := search.Lookup(facets, style)
	if err != nil {
		return err
	}

	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(resolved); err != nil {
			return err
		}
		return enc.Close()
	}

	labels := make([]string, 0, len(resolved))
	for l := range resolved {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, l := range labels {
		fmt.Printf("%s\t%s\n", l, resolved[l])
	}
	return nil
}
