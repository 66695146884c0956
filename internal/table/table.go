// Package table holds batch results in columnar form and provides the
// storage optimization pass applied after aggregation. Optimization changes
// the in-memory representation only; every observable value survives the
// round trip unchanged.
package table

import (
	"github.com/techtitanians/sentiboard/internal/models"
)

// ResultTable is the columnar aggregate of one batch. Columns are
// index-aligned; row i reassembles the i-th result.
type ResultTable struct {
	texts       column[string]
	sentiments  column[models.Sentiment]
	confidences confidenceColumn
	rawScores   column[int]
	keywords    [][]string
	useCases    column[string]
	length      int
}

// FromResults builds a table from result rows, preserving order.
func FromResults(results []models.AnalysisResult) *ResultTable {
	t := &ResultTable{length: len(results)}
	t.texts.values = make([]string, 0, len(results))
	t.sentiments.values = make([]models.Sentiment, 0, len(results))
	t.confidences.values = make([]float64, 0, len(results))
	t.rawScores.values = make([]int, 0, len(results))
	t.keywords = make([][]string, 0, len(results))
	t.useCases.values = make([]string, 0, len(results))

	for _, r := range results {
		t.texts.values = append(t.texts.values, r.Text)
		t.sentiments.values = append(t.sentiments.values, r.Sentiment)
		t.confidences.values = append(t.confidences.values, r.Confidence)
		t.rawScores.values = append(t.rawScores.values, r.RawScore)
		t.keywords = append(t.keywords, r.Keywords)
		t.useCases.values = append(t.useCases.values, r.UseCase)
	}
	return t
}

// Len returns the number of rows.
func (t *ResultTable) Len() int { return t.length }

// Row reassembles row i.
func (t *ResultTable) Row(i int) models.AnalysisResult {
	return models.AnalysisResult{
		Text:       t.texts.at(i),
		Sentiment:  t.sentiments.at(i),
		Confidence: t.confidences.at(i),
		RawScore:   t.rawScores.at(i),
		Keywords:   t.keywords[i],
		UseCase:    t.useCases.at(i),
	}
}

// Rows reassembles every row in order.
func (t *ResultTable) Rows() []models.AnalysisResult {
	rows := make([]models.AnalysisResult, 0, t.length)
	for i := 0; i < t.length; i++ {
		rows = append(rows, t.Row(i))
	}
	return rows
}

// Optimize recasts low-cardinality columns to dictionary encoding and the
// confidence column to a narrower width where that loses no precision.
// Values observable through Row and Rows are unchanged.
func (t *ResultTable) Optimize() {
	t.sentiments.encode()
	t.useCases.encode()
	t.confidences.narrow()
}

// column stores values either directly or dictionary-encoded. Encoding pays
// off when distinct values are few, which holds for the sentiment and
// use-case columns.
type column[V comparable] struct {
	values []V

	encoded bool
	dict    []V
	codes   []uint8
}

func (c *column[V]) at(i int) V {
	if c.encoded {
		return c.dict[c.codes[i]]
	}
	return c.values[i]
}

// encode switches to dictionary representation. Skipped when the column has
// too many distinct values for a byte code; such a column was not
// low-cardinality to begin with.
func (c *column[V]) encode() {
	if c.encoded {
		return
	}
	index := make(map[V]uint8)
	dict := make([]V, 0, 8)
	codes := make([]uint8, len(c.values))
	for i, v := range c.values {
		code, ok := index[v]
		if !ok {
			if len(dict) >= 256 {
				return
			}
			code = uint8(len(dict))
			index[v] = code
			dict = append(dict, v)
		}
		codes[i] = code
	}
	c.dict = dict
	c.codes = codes
	c.values = nil
	c.encoded = true
}

// confidenceColumn stores confidences either as float64 or as thousandths
// in uint16. Narrowing only happens when every value is exactly
// representable, which holds for the analyzers' three-decimal rounding.
type confidenceColumn struct {
	values []float64

	narrowed    bool
	thousandths []uint16
}

func (c *confidenceColumn) at(i int) float64 {
	if c.narrowed {
		return float64(c.thousandths[i]) / 1000
	}
	return c.values[i]
}

func (c *confidenceColumn) narrow() {
	if c.narrowed {
		return
	}
	thousandths := make([]uint16, len(c.values))
	for i, v := range c.values {
		scaled := v * 1000
		rounded := uint16(scaled + 0.5)
		if v < 0 || scaled > 65535 || float64(rounded)/1000 != v {
			return
		}
		thousandths[i] = rounded
	}
	c.thousandths = thousandths
	c.values = nil
	c.narrowed = true
}
