// Package export renders batch results for download: CSV for spreadsheets,
// JSON for downstream tooling.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/techtitanians/sentiboard/internal/models"
)

var csvHeader = []string{"text", "sentiment", "confidence", "keywords", "use_case"}

// ToCSV renders rows as CSV with a fixed header. Keywords are joined with
// commas inside one cell.
func ToCSV(rows []models.AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("export: writing csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Text,
			row.Sentiment.String(),
			strconv.FormatFloat(row.Confidence, 'f', -1, 64),
			strings.Join(row.Keywords, ", "),
			row.UseCase,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("export: writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ToJSON renders rows as an indented JSON array.
func ToJSON(rows []models.AnalysisResult) ([]byte, error) {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: marshaling results: %w", err)
	}
	return data, nil
}
