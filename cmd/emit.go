package cmd

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/DeVictoria/compgraph/stream"
)

// emit drains rs, writing each record as one line of JSON to w. It
// always closes rs, even on a write error, and returns the first error
// encountered from either side.
func emit(w io.Writer, rs stream.RecordStream) error {
	defer rs.Close()

	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)

	count := 0
	for rs.Next() {
		if err := enc.Encode(rs.Record()); err != nil {
			return err
		}
		count++
	}
	if err := rs.Err(); err != nil {
		return err
	}
	logger.Debug().Int("rows", count).Msg("graph run complete")
	return bw.Flush()
}
