// Package analysis wraps the loaded models into the engines used by the
// full processing tier: ordinal sentiment classification, embedding-based
// keyword extraction, use-case tagging and result explanation.
//
// Engines do not isolate faults. Errors from the underlying models
// propagate to the caller; converting failures into sentinel rows is the
// batch pipeline's job.
package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/techtitanians/sentiboard/internal/modelhub"
	"github.com/techtitanians/sentiboard/internal/models"
)

// Score is the sentiment engine's verdict for one text.
type Score struct {
	Sentiment  models.Sentiment
	Confidence float64
	RawScore   int
}

// SentimentEngine maps the sentiment model's 1-5 ordinal output onto the
// five-class scale.
type SentimentEngine struct {
	hub *modelhub.Hub
}

// NewSentimentEngine returns an engine backed by hub's sentiment model.
func NewSentimentEngine(hub *modelhub.Hub) *SentimentEngine {
	return &SentimentEngine{hub: hub}
}

// Analyze classifies a single text.
func (e *SentimentEngine) Analyze(text string) (Score, error) {
	scores, err := e.AnalyzeBatch([]string{text})
	if err != nil {
		return Score{}, err
	}
	return scores[0], nil
}

// AnalyzeBatch classifies a chunk of texts in one model call. The returned
// slice is index-aligned with texts.
func (e *SentimentEngine) AnalyzeBatch(texts []string) ([]Score, error) {
	model, err := e.hub.Sentiment()
	if err != nil {
		return nil, err
	}

	cleaned := make([]string, len(texts))
	for i, text := range texts {
		cleaned[i] = MarkdownToText(text)
	}

	labels, err := model.Classify(cleaned)
	if err != nil {
		return nil, err
	}
	if len(labels) != len(texts) {
		return nil, fmt.Errorf("analysis: sentiment model returned %d results for %d texts", len(labels), len(texts))
	}

	scores := make([]Score, len(labels))
	for i, label := range labels {
		ordinal, err := parseOrdinalLabel(label.Label)
		if err != nil {
			return nil, err
		}
		scores[i] = Score{
			Sentiment:  models.SentimentFromOrdinal(ordinal),
			Confidence: round3(label.Score),
			RawScore:   ordinal,
		}
	}
	return scores, nil
}

// parseOrdinalLabel extracts the leading star count from labels shaped
// like "4 stars".
func parseOrdinalLabel(label string) (int, error) {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return 0, fmt.Errorf("analysis: empty sentiment label")
	}
	ordinal, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("analysis: unparseable sentiment label %q: %w", label, err)
	}
	return ordinal, nil
}

func round3(f float64) float64 {
	return float64(int(f*1000+0.5)) / 1000
}
