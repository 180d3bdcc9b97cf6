package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/DeVictoria/compgraph/algorithms"
	"github.com/DeVictoria/compgraph/op"
)

var yandexMapsCmd = &cobra.Command{
	Use:   "yandexmaps <time.jsonl> <length.jsonl>",
	Short: "Measure mean speed in km/h for every (weekday, hour) bucket",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := algorithms.YandexMaps(args[0], args[1],
			"enter_time", "leave_time", "edge_id", "start", "end",
			"weekday", "hour", "speed", true)
		rs, err := g.Run(op.NamedInputs{})
		if err != nil {
			logger.Error().Err(err).Msg("yandex maps graph failed")
			return err
		}
		return emit(os.Stdout, rs)
	},
}

func init() {
	rootCmd.AddCommand(yandexMapsCmd)
}
