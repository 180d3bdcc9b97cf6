package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/DeVictoria/compgraph/algorithms"
	"github.com/DeVictoria/compgraph/op"
)

var invertedIndexCmd = &cobra.Command{
	Use:   "invertedindex <input.jsonl>",
	Short: "Compute tf-idf for every word/document pair, keeping the top 3 per word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := algorithms.InvertedIndex(args[0], "doc_id", "text", "tf_idf", true)
		rs, err := g.Run(op.NamedInputs{})
		if err != nil {
			logger.Error().Err(err).Msg("inverted index graph failed")
			return err
		}
		return emit(os.Stdout, rs)
	},
}

func init() {
	rootCmd.AddCommand(invertedIndexCmd)
}
