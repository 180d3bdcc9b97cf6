package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/DeVictoria/compgraph/algorithms"
	"github.com/DeVictoria/compgraph/op"
)

var wordCountCmd = &cobra.Command{
	Use:   "wordcount <input.jsonl>",
	Short: "Count occurrences of each word across every row's text column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := algorithms.WordCount(args[0], "text", "count", true)
		rs, err := g.Run(op.NamedInputs{})
		if err != nil {
			logger.Error().Err(err).Msg("word count graph failed")
			return err
		}
		return emit(os.Stdout, rs)
	},
}

func init() {
	rootCmd.AddCommand(wordCountCmd)
}
