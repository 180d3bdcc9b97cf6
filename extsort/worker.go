package extsort

import (
	"github.com/pkg/errors"

	"github.com/DeVictoria/compgraph/cgerr"
	"github.com/DeVictoria/compgraph/record"
	"github.com/DeVictoria/compgraph/stream"
)

// sortGroup hands one group's rows to a sibling sortWorker goroutine over
// a pair of channels and collects the sorted result, so that at most one
// group's worth of rows is ever held in memory at a time — whether by
// this goroutine's send loop or the worker's own buffer.
func sortGroup(group stream.RecordStream, keys []string, reverse bool) (stream.RecordStream, error) {
	in := make(chan record.Record)
	out := make(chan record.Record)
	done := make(chan struct{})

	go sortWorker(keys, reverse, in, out, done)

	sent := 0
	for group.Next() {
		in <- group.Record()
		sent++
	}
	close(in)
	if err := group.Err(); err != nil {
		drain(out, done)
		return nil, err
	}

	var rows []record.Record
	for row := range out {
		rows = append(rows, row)
	}
	<-done

	if len(rows) != sent {
		return nil, errors.WithStack(cgerr.ErrSortWorkerMismatch)
	}
	return stream.FromSlice(rows), nil
}

// sortWorker is the sibling sort process: it buffers every row sent on
// in, sorts them once in is closed, and streams them back on out. done
// is closed once out has been fully drained by the caller and nothing
// more will be sent on it.
func sortWorker(keys []string, reverse bool, in <-chan record.Record, out chan<- record.Record, done chan<- struct{}) {
	defer close(done)
	defer close(out)

	var rows []record.Record
	for row := range in {
		rows = append(rows, row)
	}
	record.SortByKeys(rows, keys, reverse)
	for _, row := range rows {
		out <- row
	}
}

// drain empties out and waits for the worker to finish, used when the
// caller cannot continue consuming (an upstream error) but must still
// let the worker goroutine exit cleanly.
func drain(out <-chan record.Record, done <-chan struct{}) {
	for range out {
	}
	<-done
}
