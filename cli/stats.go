package cli

import (
	"strconv"

	"github.com/cayleygraph/quad"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/rdftab/rdftab"
)

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Print triple counts for a saved graph file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path := args[0]

		s := rdftab.New()
		if err := s.Load(cmd.Context(), path, storageOptions(cfg)...); err != nil {
			return err
		}
		log.Debug().Str("path", path).Msg("graph loaded for stats")

		subjects := map[quad.Value]struct{}{}
		predicates := map[quad.Value]struct{}{}
		var literals int
		for _, t := range s.Graph().All() {
			subjects[t.Subject] = struct{}{}
			predicates[t.Predicate] = struct{}{}
			switch t.Object.(type) {
			case quad.String, quad.LangString, quad.TypedString:
				literals++
			}
		}

		data := pterm.TableData{
			{"metric", "value"},
			{"triples", strconv.Itoa(s.Len())},
			{"distinct subjects", strconv.Itoa(len(subjects))},
			{"distinct predicates", strconv.Itoa(len(predicates))},
			{"literal objects", strconv.Itoa(literals)},
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
