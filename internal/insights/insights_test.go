package insights

import (
	"strings"
	"testing"

	"github.com/techtitanians/sentiboard/internal/models"
)

func row(sentiment models.Sentiment, confidence float64, useCase string) models.AnalysisResult {
	return models.AnalysisResult{
		Text:       "some text",
		Sentiment:  sentiment,
		Confidence: confidence,
		Keywords:   []string{},
		UseCase:    useCase,
	}
}

func TestSummarizeExcludesSentinelRows(t *testing.T) {
	rows := []models.AnalysisResult{
		row(models.SentimentPositive, 0.8, "General Analysis"),
		row(models.SentimentPositive, 0.6, "General Analysis"),
		models.NewErrorResult("broken"),
	}

	summary := Summarize(rows)

	if summary.Total != 3 {
		t.Errorf("total = %d, want 3", summary.Total)
	}
	if summary.Errors != 1 {
		t.Errorf("errors = %d, want 1", summary.Errors)
	}
	if summary.Distribution["Positive"] != 2 {
		t.Errorf("distribution = %v, want 2 Positive", summary.Distribution)
	}
	if _, ok := summary.Distribution["Error"]; ok {
		t.Error("sentinel rows leaked into the distribution")
	}
	if summary.Dominant != "Positive" {
		t.Errorf("dominant = %q, want Positive", summary.Dominant)
	}
	if summary.TopUseCase != "General Analysis" {
		t.Errorf("top use case = %q", summary.TopUseCase)
	}
	// Mean of 0.8 and 0.6 with the sentinel's zero confidence excluded.
	if summary.AvgConfidence != 0.7 {
		t.Errorf("avg confidence = %v, want 0.7", summary.AvgConfidence)
	}
	if summary.StdConfidence != 0.1 {
		t.Errorf("std confidence = %v, want 0.1", summary.StdConfidence)
	}
}

func TestSummarizeDominantTieBreaksAlphabetically(t *testing.T) {
	rows := []models.AnalysisResult{
		row(models.SentimentPositive, 0.7, "x"),
		row(models.SentimentPositive, 0.7, "x"),
		row(models.SentimentNegative, 0.7, "x"),
		row(models.SentimentNegative, 0.7, "x"),
	}

	if got := Summarize(rows).Dominant; got != "Negative" {
		t.Errorf("dominant = %q, want Negative (alphabetical tie break)", got)
	}
}

func TestSummarizeEmptyBatch(t *testing.T) {
	summary := Summarize(nil)

	if summary.Total != 0 || summary.Errors != 0 {
		t.Errorf("summary = %+v, want zero counts", summary)
	}
	if summary.Dominant != "" || summary.TopUseCase != "" {
		t.Errorf("summary = %+v, want empty dominant and use case", summary)
	}
	if summary.AvgConfidence != 0 || summary.StdConfidence != 0 {
		t.Errorf("confidence stats nonzero on empty batch: %+v", summary)
	}
}

func TestSummaryLines(t *testing.T) {
	rows := []models.AnalysisResult{
		row(models.SentimentPositive, 0.8, "General Analysis"),
		models.NewErrorResult("broken"),
	}

	text := Summarize(rows).String()

	for _, want := range []string{
		"Analyzed 2 texts (1 failed)",
		"Dominant sentiment: Positive",
		"Most common use case: General Analysis",
		"Positive: 1",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("summary text missing %q:\n%s", want, text)
		}
	}
}

func TestSummaryLinesAllFailed(t *testing.T) {
	text := Summarize([]models.AnalysisResult{models.NewErrorResult("x")}).String()

	if strings.Contains(text, "Average confidence") {
		t.Errorf("confidence line shown with no successful rows:\n%s", text)
	}
}
