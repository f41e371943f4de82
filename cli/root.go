// Package cli implements the rdftab command line: convert between saved
// graph files, pattern-query them, and print stats.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rdftab/rdftab/config"
)

var rootCmd = &cobra.Command{
	Use:   "rdftab",
	Short: "Tabular serialization for RDF graphs",
	Long: `rdftab persists RDF triples as Parquet files or SQLite databases and
reloads them, trading text-based RDF serializations for faster columnar
and indexed relational storage. Saved Parquet files can be pattern-queried
in place.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "path to a yaml config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

// loadConfig resolves the effective configuration for a command run:
// defaults, then the config file if given, then the verbose flag.
func loadConfig(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg := config.LoadDefaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, zerolog.Nop(), err
		}
		cfg = loaded
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, config.NewLogger(cfg.Log), nil
}
