package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/DeVictoria/compgraph/algorithms"
	"github.com/DeVictoria/compgraph/op"
)

var pmiCmd = &cobra.Command{
	Use:   "pmi <input.jsonl>",
	Short: "Rank the top words of each document by pointwise mutual information",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := algorithms.PMI(args[0], "doc_id", "text", "pmi", true)
		rs, err := g.Run(op.NamedInputs{})
		if err != nil {
			logger.Error().Err(err).Msg("pmi graph failed")
			return err
		}
		return emit(os.Stdout, rs)
	},
}

func init() {
	rootCmd.AddCommand(pmiCmd)
}
