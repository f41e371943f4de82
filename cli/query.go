package cli

import (
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rdftab/rdftab"
	"github.com/rdftab/rdftab/codec"
	"github.com/rdftab/rdftab/rdf"
	"github.com/rdftab/rdftab/store/duckdb"
)

var queryCmd = &cobra.Command{
	Use:   "query <file>",
	Short: "Pattern-query a saved graph file",
	Long: `Query matches triples in a saved graph file against a subject/
predicate/object pattern. Terms are given in their row notation, e.g.
'<http://example.org/John>' or '"John Doe"'; an omitted flag is a
wildcard. Parquet files are queried in place through DuckDB; relational
files are loaded and matched in memory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path := args[0]

		pattern := rdf.Pattern{}
		if s, _ := cmd.Flags().GetString("subject"); s != "" {
			pattern.Subject = codec.DecodeTerm(s, codec.Subject)
		}
		if p, _ := cmd.Flags().GetString("predicate"); p != "" {
			pattern.Predicate = codec.DecodeTerm(p, codec.Predicate)
		}
		if o, _ := cmd.Flags().GetString("object"); o != "" {
			pattern.Object = codec.DecodeTerm(o, codec.Object)
		}

		var triples []rdf.Triple
		if isParquet(path) {
			triples, err = duckdb.Query(cmd.Context(), path, pattern)
			if err != nil {
				return err
			}
		} else {
			s := rdftab.New()
			if err := s.Load(cmd.Context(), path, storageOptions(cfg)...); err != nil {
				return err
			}
			triples = s.Triples(pattern)
		}
		log.Debug().Str("path", path).Int("matches", len(triples)).Msg("query finished")

		data := pterm.TableData{{"subject", "predicate", "object"}}
		for _, t := range triples {
			data = append(data, []string{
				codec.EncodeTerm(t.Subject),
				codec.EncodeTerm(t.Predicate),
				codec.EncodeTerm(t.Object),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func isParquet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".parquet")
}

func init() {
	queryCmd.Flags().StringP("subject", "s", "", "subject term to match")
	queryCmd.Flags().StringP("predicate", "p", "", "predicate term to match")
	queryCmd.Flags().StringP("object", "o", "", "object term to match")
	rootCmd.AddCommand(queryCmd)
}
