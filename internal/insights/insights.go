// Package insights summarizes a finished batch: sentiment distribution,
// confidence statistics and the dominant use case, with an optional
// model-written narrative on top.
package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/techtitanians/sentiboard/internal/models"
)

// Summary are the aggregate statistics of one batch.
type Summary struct {
	Total         int            `json:"total"`
	Errors        int            `json:"errors"`
	Distribution  map[string]int `json:"distribution"`
	Dominant      string         `json:"dominant"`
	AvgConfidence float64        `json:"avg_confidence"`
	StdConfidence float64        `json:"std_confidence"`
	TopUseCase    string         `json:"top_use_case"`
}

// Summarize computes batch statistics over rows. Sentinel rows count toward
// Errors and are excluded from the distribution and confidence statistics.
func Summarize(rows []models.AnalysisResult) Summary {
	summary := Summary{
		Total:        len(rows),
		Distribution: make(map[string]int),
	}

	useCases := make(map[string]int)
	var confidences []float64
	for _, row := range rows {
		if row.IsError() {
			summary.Errors++
			continue
		}
		summary.Distribution[row.Sentiment.String()]++
		useCases[row.UseCase]++
		confidences = append(confidences, row.Confidence)
	}

	summary.Dominant = maxKey(summary.Distribution)
	summary.TopUseCase = maxKey(useCases)
	summary.AvgConfidence, summary.StdConfidence = meanStd(confidences)
	return summary
}

// maxKey returns the key with the highest count, ties broken
// alphabetically so output is stable.
func maxKey(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := ""
	bestCount := 0
	for _, k := range keys {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best
}

func meanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	std = math.Sqrt(sq / float64(len(values)))
	return round3(mean), round3(std)
}

// Lines renders the summary as display-ready text.
func (s Summary) Lines() []string {
	lines := []string{
		fmt.Sprintf("Analyzed %d texts (%d failed)", s.Total, s.Errors),
	}
	if s.Dominant != "" {
		lines = append(lines, fmt.Sprintf("Dominant sentiment: %s", s.Dominant))
	}
	if s.Total > s.Errors {
		lines = append(lines, fmt.Sprintf("Average confidence: %.3f (std %.3f)", s.AvgConfidence, s.StdConfidence))
	}
	if s.TopUseCase != "" {
		lines = append(lines, fmt.Sprintf("Most common use case: %s", s.TopUseCase))
	}

	classes := make([]string, 0, len(s.Distribution))
	for name := range s.Distribution {
		classes = append(classes, name)
	}
	sort.Strings(classes)
	for _, name := range classes {
		lines = append(lines, fmt.Sprintf("  %s: %d", name, s.Distribution[name]))
	}
	return lines
}

// String joins the summary lines.
func (s Summary) String() string {
	return strings.Join(s.Lines(), "\n")
}

func round3(f float64) float64 {
	return float64(int(f*1000+0.5)) / 1000
}
