package cli

import (
	"github.com/spf13/cobra"

	"github.com/rdftab/rdftab"
	"github.com/rdftab/rdftab/config"
)

var convertCmd = &cobra.Command{
	Use:   "convert <source> <destination>",
	Short: "Convert a saved graph between storage formats",
	Long: `Convert reads a saved graph file and writes it to another path. The
format of each side is inferred from its extension: .parquet for columnar,
.db/.sqlite/.sqlite3 for the relational store.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		src, dst := args[0], args[1]

		s := rdftab.New()
		opts := storageOptions(cfg)
		if err := s.Load(cmd.Context(), src, opts...); err != nil {
			return err
		}
		log.Info().Str("source", src).Int("triples", s.Len()).Msg("graph loaded")

		if err := s.Save(cmd.Context(), dst, opts...); err != nil {
			return err
		}
		log.Info().Str("destination", dst).Msg("graph saved")
		return nil
	},
}

// storageOptions maps config to per-call options.
func storageOptions(cfg *config.Config) []rdftab.Option {
	opts := []rdftab.Option{
		rdftab.WithCompression(cfg.Storage.Compression),
		rdftab.WithBatchSize(cfg.Storage.BatchSize),
	}
	if cfg.Storage.StrictLiterals {
		opts = append(opts, rdftab.WithStrictLiterals())
	}
	return opts
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
