package mapper

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/DeVictoria/compgraph/record"
	"github.com/DeVictoria/compgraph/stream"
)

// earthRadiusKM is the radius used by Haversine, matching the source's
// constant exactly (spec.md §4.5).
const earthRadiusKM = 6373

// FilterPunctuation strips punctuation runes from column, leaving the
// rest of the string untouched.
type FilterPunctuation struct {
	Column string
}

func (m FilterPunctuation) Call(row record.Record) stream.RecordStream {
	s, _ := row[m.Column].(string)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsPunct(r) {
			b.WriteRune(r)
		}
	}
	row[m.Column] = b.String()
	return one(row)
}

// LowerCase replaces column's value with its lower-cased form.
type LowerCase struct {
	Column string
}

func (m LowerCase) Call(row record.Record) stream.RecordStream {
	s, _ := row[m.Column].(string)
	row[m.Column] = strings.ToLower(s)
	return one(row)
}

// Split emits one row per separator-delimited token of column, each a
// copy of row with column replaced by that token. A separator of "" (the
// zero value) splits on runs of whitespace, matching Python's str.split()
// with no argument. If the string holds no tokens, a single row with an
// empty token is emitted instead of zero rows, so the column is never
// silently dropped from the stream.
type Split struct {
	Column    string
	Separator string
}

func (m Split) Call(row record.Record) stream.RecordStream {
	s, _ := row[m.Column].(string)
	pattern := `[^\s]+`
	if m.Separator != "" {
		pattern = fmt.Sprintf(`[^%s]*`, regexp.QuoteMeta(m.Separator))
	}
	re := regexp.MustCompile(pattern)
	matches := re.FindAllString(s, -1)

	var rows []record.Record
	for _, tok := range matches {
		if tok == "" {
			continue
		}
		r := row.Clone()
		r[m.Column] = tok
		rows = append(rows, r)
	}
	if len(rows) == 0 {
		r := row.Clone()
		r[m.Column] = ""
		rows = append(rows, r)
	}
	return stream.FromSlice(rows)
}

// Product multiplies the named numeric columns together into
// ResultColumn.
type Product struct {
	Columns      []string
	ResultColumn string
}

func (m Product) Call(row record.Record) stream.RecordStream {
	total := 1.0
	for _, c := range m.Columns {
		v, _ := record.ToFloat64(row[c])
		total *= v
	}
	row[m.ResultColumn] = total
	return one(row)
}

// LogRatio computes log(row[Columns[0]] / row[Columns[1]]) into
// ResultColumn. Named for what it does rather than for a single caller:
// InvertedIndex uses it to compute IDF, PMI uses the same shape to
// compute pointwise mutual information (spec.md §9's "open question" on
// Idf reuse — same mapper, two names for the ratio it computes).
type LogRatio struct {
	Columns      [2]string
	ResultColumn string
}

func (m LogRatio) Call(row record.Record) stream.RecordStream {
	num, _ := record.ToFloat64(row[m.Columns[0]])
	den, _ := record.ToFloat64(row[m.Columns[1]])
	row[m.ResultColumn] = math.Log(num / den)
	return one(row)
}

// Filter drops rows for which Condition returns false.
type Filter struct {
	Condition func(record.Record) bool
}

func (m Filter) Call(row record.Record) stream.RecordStream {
	if !m.Condition(row) {
		return stream.FromSlice(nil)
	}
	return one(row)
}

// Project keeps only the named columns, dropping everything else.
type Project struct {
	Columns []string
}

func (m Project) Call(row record.Record) stream.RecordStream {
	out := make(record.Record, len(m.Columns))
	for _, c := range m.Columns {
		out[c] = row[c]
	}
	return one(out)
}

// Haversine computes the great-circle distance in kilometers between two
// [longitude, latitude] coordinate pairs (Start, End columns) and writes
// it to ResultColumn.
type Haversine struct {
	ResultColumn string
	Start, End   string
}

func (m Haversine) Call(row record.Record) stream.RecordStream {
	start := coordsOf(row[m.Start])
	end := coordsOf(row[m.End])

	lon1, lat1 := start[0]*math.Pi/180, start[1]*math.Pi/180
	lon2, lat2 := end[0]*math.Pi/180, end[1]*math.Pi/180

	central := math.Acos(math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(lon1-lon2))
	row[m.ResultColumn] = central * earthRadiusKM
	return one(row)
}

func coordsOf(v any) [2]float64 {
	switch c := v.(type) {
	case [2]float64:
		return c
	case []float64:
		return [2]float64{c[0], c[1]}
	case []any:
		lon, _ := record.ToFloat64(c[0])
		lat, _ := record.ToFloat64(c[1])
		return [2]float64{lon, lat}
	default:
		return [2]float64{}
	}
}

// timestampLayouts are the two accepted forms of the wire timestamp
// (spec.md §4.5): with and without fractional seconds.
var timestampLayouts = []string{
	"20060102T150405.999999",
	"20060102T150405",
}

// parseTimestamp parses a timestamp string of the form YYYYMMDDTHHMMSS
// or YYYYMMDDTHHMMSS.ffffff.
func parseTimestamp(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// ParseTime parses the Time column into weekday-abbreviation and hour
// columns.
type ParseTime struct {
	Time, Weekday, Hour string
}

func (m ParseTime) Call(row record.Record) stream.RecordStream {
	s, _ := row[m.Time].(string)
	t, err := parseTimestamp(s)
	if err != nil {
		return stream.New(func() (record.Record, bool, error) { return nil, false, err }, nil)
	}
	row[m.Weekday] = t.Weekday().String()[:3]
	row[m.Hour] = t.Hour()
	return one(row)
}

// TimeDiff writes the absolute difference, in hours, between First and
// Second timestamp columns into ResultColumn.
type TimeDiff struct {
	ResultColumn  string
	First, Second string
}

func (m TimeDiff) Call(row record.Record) stream.RecordStream {
	s1, _ := row[m.First].(string)
	s2, _ := row[m.Second].(string)
	t1, err := parseTimestamp(s1)
	if err != nil {
		return stream.New(func() (record.Record, bool, error) { return nil, false, err }, nil)
	}
	t2, err := parseTimestamp(s2)
	if err != nil {
		return stream.New(func() (record.Record, bool, error) { return nil, false, err }, nil)
	}
	row[m.ResultColumn] = math.Abs(t2.Sub(t1).Hours())
	return one(row)
}
