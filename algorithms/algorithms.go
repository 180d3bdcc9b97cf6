// Package algorithms assembles the four concrete analytics graphs spec.md
// supplements from
// _examples/original_source/compgraph/algorithms.py: word count,
// TF-IDF inverted index, pointwise mutual information, and the Yandex
// Maps mean-speed-by-hour report. Each function wires mapper, reducer,
// and joiner library pieces into a graph.Graph the way the source wires
// its operations module.
package algorithms

import (
	"github.com/DeVictoria/compgraph/graph"
	"github.com/DeVictoria/compgraph/joiner"
	"github.com/DeVictoria/compgraph/mapper"
	"github.com/DeVictoria/compgraph/record"
	"github.com/DeVictoria/compgraph/reducer"
)

// source picks the graph's entry point: a named in-memory input when
// fromFile is false, or a JSON-lines file (or glob) at name when it is
// true.
func source(name string, fromFile bool) *graph.Graph {
	if fromFile {
		return graph.FromFile(name)
	}
	return graph.FromIter(name)
}

// WordCount counts occurrences of each distinct word of textColumn
// across every row, emitting (textColumn, countColumn) pairs sorted by
// ascending count then word.
func WordCount(inputStreamName, textColumn, countColumn string, fromFile bool) *graph.Graph {
	return source(inputStreamName, fromFile).
		Map(mapper.FilterPunctuation{Column: textColumn}).
		Map(mapper.LowerCase{Column: textColumn}).
		Map(mapper.Split{Column: textColumn}).
		Sort([]string{textColumn}, false, nil).
		Reduce(reducer.Count{Column: countColumn}, []string{textColumn}).
		Sort([]string{countColumn, textColumn}, false, nil)
}

// InvertedIndex computes, for every (doc, word) pair, a tf-idf score
// into resultColumn, keeping only the top 3 documents per word.
func InvertedIndex(inputStreamName, docColumn, textColumn, resultColumn string, fromFile bool) *graph.Graph {
	const (
		countRows         = "count_rows"
		countRowsWithText = "count_rows_with_text"
		tfColumn          = "tf"
		idfColumn         = "idf"
	)

	splitWord := source(inputStreamName, fromFile).
		Map(mapper.FilterPunctuation{Column: textColumn}).
		Map(mapper.LowerCase{Column: textColumn}).
		Map(mapper.Split{Column: textColumn})

	countDocs := source(inputStreamName, fromFile).
		Reduce(reducer.Count{Column: countRows}, nil)

	countIdf := splitWord.
		Sort([]string{docColumn, textColumn}, false, nil).
		Reduce(reducer.First{}, []string{docColumn, textColumn}).
		Sort([]string{textColumn}, false, nil).
		Reduce(reducer.Count{Column: countRowsWithText}, []string{textColumn}).
		Join(joiner.InnerJoiner{}, countDocs, nil).
		Map(mapper.LogRatio{Columns: [2]string{countRows, countRowsWithText}, ResultColumn: idfColumn})

	return splitWord.
		Sort([]string{docColumn}, false, nil).
		Reduce(reducer.TermFrequency{WordsColumn: textColumn, ResultColumn: tfColumn}, []string{docColumn}).
		Sort([]string{textColumn}, false, nil).
		Join(joiner.InnerJoiner{}, countIdf, []string{textColumn}).
		Map(mapper.Product{Columns: []string{tfColumn, idfColumn}, ResultColumn: resultColumn}).
		Map(mapper.Project{Columns: []string{docColumn, textColumn, resultColumn}}).
		Sort([]string{textColumn, resultColumn}, true, nil).
		Reduce(reducer.TopN{Column: resultColumn, N: 3}, []string{textColumn}).
		Sort([]string{docColumn, textColumn}, false, nil)
}

// PMI ranks, for every document, the top 3 words (by length > 4 and
// appearing at least twice in the document) by pointwise mutual
// information into resultColumn.
func PMI(inputStreamName, docColumn, textColumn, resultColumn string, fromFile bool) *graph.Graph {
	const (
		countWColumn = "count_w"
		allFColumn   = "all_F"
		docFColumn   = "doc_F"
	)

	splitWord := source(inputStreamName, fromFile).
		Map(mapper.FilterPunctuation{Column: textColumn}).
		Map(mapper.LowerCase{Column: textColumn}).
		Map(mapper.Split{Column: textColumn}).
		Sort([]string{docColumn, textColumn}, false, nil)

	filterWords := splitWord.
		Map(mapper.Filter{Condition: func(r record.Record) bool {
			s, _ := r[textColumn].(string)
			return len(s) > 4
		}}).
		Sort([]string{docColumn, textColumn}, false, nil).
		Reduce(reducer.Count{Column: countWColumn}, []string{docColumn, textColumn}).
		Map(mapper.Filter{Condition: func(r record.Record) bool {
			n, _ := toInt(r[countWColumn])
			return n >= 2
		}}).
		Map(mapper.Project{Columns: []string{docColumn, textColumn}})

	correctWords := splitWord.
		Join(joiner.RightJoiner{}, filterWords, []string{docColumn, textColumn})

	countInTable := correctWords.
		Sort([]string{textColumn}, false, nil).
		Reduce(reducer.TermFrequency{WordsColumn: textColumn, ResultColumn: allFColumn}, nil).
		Map(mapper.Project{Columns: []string{textColumn, allFColumn}})

	countInDoc := correctWords.
		Sort([]string{docColumn, textColumn}, false, nil).
		Reduce(reducer.TermFrequency{WordsColumn: textColumn, ResultColumn: docFColumn}, []string{docColumn}).
		Sort([]string{textColumn}, false, nil)

	return countInDoc.
		Join(joiner.InnerJoiner{}, countInTable, []string{textColumn}).
		Map(mapper.LogRatio{Columns: [2]string{docFColumn, allFColumn}, ResultColumn: resultColumn}).
		Sort([]string{docColumn, resultColumn}, true, nil).
		Reduce(reducer.TopN{Column: resultColumn, N: 3}, []string{docColumn}).
		Sort([]string{docColumn}, false, nil).
		Map(mapper.Project{Columns: []string{docColumn, textColumn, resultColumn}}).
		Sort([]string{resultColumn}, true, []string{docColumn})
}

// toInt widens a record field (typically int or float64, per the JSON
// round-trip) to int for the >= 2 occurrence-count filter.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// YandexMaps computes, for every (weekday, hour) bucket, the mean speed
// in km/h across every edge traversal reported in the two input
// streams: one of edge lengths, one of enter/leave timestamps.
func YandexMaps(inputStreamNameTime, inputStreamNameLength string,
	enterTimeColumn, leaveTimeColumn, edgeIDColumn, startCoordColumn, endCoordColumn string,
	weekdayResultColumn, hourResultColumn, speedResultColumn string, fromFile bool) *graph.Graph {
	const lenColumn = "len"
	const timeDiffColumn = "time_diff"

	length := source(inputStreamNameLength, fromFile).
		Map(mapper.Haversine{ResultColumn: lenColumn, Start: startCoordColumn, End: endCoordColumn}).
		Map(mapper.Project{Columns: []string{edgeIDColumn, lenColumn}}).
		Sort([]string{edgeIDColumn}, false, nil)

	parseTime := source(inputStreamNameTime, fromFile).
		Map(mapper.ParseTime{Time: enterTimeColumn, Weekday: weekdayResultColumn, Hour: hourResultColumn}).
		Map(mapper.TimeDiff{ResultColumn: timeDiffColumn, First: enterTimeColumn, Second: leaveTimeColumn}).
		Map(mapper.Project{Columns: []string{edgeIDColumn, weekdayResultColumn, hourResultColumn, timeDiffColumn}}).
		Sort([]string{edgeIDColumn}, false, nil)

	return length.
		Join(joiner.RightJoiner{}, parseTime, []string{edgeIDColumn}).
		Sort([]string{weekdayResultColumn, hourResultColumn}, false, nil).
		Map(mapper.Project{Columns: []string{weekdayResultColumn, hourResultColumn, lenColumn, timeDiffColumn}}).
		Reduce(reducer.MeanSpeed{Result: speedResultColumn, Distance: lenColumn, Time: timeDiffColumn},
			[]string{weekdayResultColumn, hourResultColumn})
}
