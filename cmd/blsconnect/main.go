// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the blsconnect CLI, a client for the
// Bureau of Labor Statistics v2 timeseries API. The series subcommand pulls
// data series; the search subcommand resolves facet values to series IDs.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/blsconnect/internal/secrets"
	"github.com/pdiddy/blsconnect/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// secretsDir is where API keys are read from.
const secretsDir = ".secrets/"

// loadedSecrets holds credentials loaded from secretsDir at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the blsconnect CLI.
var rootCmd = &cobra.Command{
	Use:   "blsconnect",
	Short: "Pull time series data from the BLS API",
	Long: `blsconnect queries the Bureau of Labor Statistics v2 timeseries API.

The series subcommand pulls one or more data series by series ID, splitting
year ranges wider than the API's per-request limit into chunks and merging
the responses into one table. The search subcommand resolves human-readable
facet values (measure, state, region, seasonal adjustment) to the opaque
series IDs the API expects.

Requests without an API key are limited to 10 years and 25 series per call
and cannot retrieve series catalog metadata. Put a registration key in
.secrets/bls-api-key, the config file, or BLSCONNECT_API_KEY to lift the
limits to 20 years and 50 series.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(secretsDir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./blsconnect.yaml or ~/.config/blsconnect/config.yaml)")
	rootCmd.PersistentFlags().String("key", "", "BLS API registration key (overrides config and secrets)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("blsconnect")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "blsconnect"))
		}
	}

	viper.SetDefault("timeout", 30*time.Second)
	viper.SetDefault("user_agent", "blsconnect/"+version)
	viper.SetDefault("message_level", string(types.LevelWarning))

	viper.SetEnvPrefix("BLSCONNECT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// clientConfig builds the client configuration from flags, config file, and
// secrets, in that precedence order.
func clientConfig(cmd *cobra.Command) types.ClientConfig {
	key, _ := cmd.Flags().GetString("key")
	if key == "" {
		key = viper.GetString("api_key")
	}
	if key == "" {
		key = loadedSecrets[secrets.APIKeyName]
	}
	return types.ClientConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
		APIKey:       key,
		StartYear:    viper.GetInt("start_year"),
		EndYear:      viper.GetInt("end_year"),
		MessageLevel: types.MessageLevel(viper.GetString("message_level")),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
