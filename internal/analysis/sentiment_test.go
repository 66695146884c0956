package analysis

import (
	"errors"
	"fmt"
	"testing"

	"github.com/techtitanians/sentiboard/internal/modelhub"
	"github.com/techtitanians/sentiboard/internal/models"
)

// fakeSentimentModel returns canned star labels keyed by input text.
type fakeSentimentModel struct {
	labels map[string]modelhub.ScoredLabel
	err    error
}

func (m *fakeSentimentModel) Classify(texts []string) ([]modelhub.ScoredLabel, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]modelhub.ScoredLabel, 0, len(texts))
	for _, text := range texts {
		label, ok := m.labels[text]
		if !ok {
			return nil, fmt.Errorf("fake model has no label for %q", text)
		}
		out = append(out, label)
	}
	return out, nil
}

func newSentimentHub(t *testing.T, model modelhub.SentimentModel) *modelhub.Hub {
	t.Helper()
	hub := modelhub.New()
	hub.Register(modelhub.ModelSentiment, func() (any, error) {
		return model, nil
	})
	return hub
}

func TestAnalyzeBatchMapsOrdinalLabels(t *testing.T) {
	hub := newSentimentHub(t, &fakeSentimentModel{labels: map[string]modelhub.ScoredLabel{
		"awful":   {Label: "1 star", Score: 0.91},
		"bad":     {Label: "2 stars", Score: 0.8},
		"fine":    {Label: "3 stars", Score: 0.67},
		"good":    {Label: "4 stars", Score: 0.72},
		"perfect": {Label: "5 stars", Score: 0.95},
	}})
	engine := NewSentimentEngine(hub)

	texts := []string{"awful", "bad", "fine", "good", "perfect"}
	want := []models.Sentiment{
		models.SentimentVeryNegative,
		models.SentimentNegative,
		models.SentimentNeutral,
		models.SentimentPositive,
		models.SentimentVeryPositive,
	}

	scores, err := engine.AnalyzeBatch(texts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scores) != len(texts) {
		t.Fatalf("got %d scores for %d texts", len(scores), len(texts))
	}
	for i, score := range scores {
		if score.Sentiment != want[i] {
			t.Errorf("text %q: sentiment = %v, want %v", texts[i], score.Sentiment, want[i])
		}
		if score.RawScore != i+1 {
			t.Errorf("text %q: raw score = %d, want %d", texts[i], score.RawScore, i+1)
		}
	}
}

func TestAnalyzeBatchPropagatesModelErrors(t *testing.T) {
	modelErr := errors.New("model unavailable")
	hub := newSentimentHub(t, &fakeSentimentModel{err: modelErr})
	engine := NewSentimentEngine(hub)

	if _, err := engine.AnalyzeBatch([]string{"anything"}); !errors.Is(err, modelErr) {
		t.Errorf("error = %v, want wrapped %v", err, modelErr)
	}
}

func TestAnalyzeBatchRejectsUnparseableLabels(t *testing.T) {
	hub := newSentimentHub(t, &fakeSentimentModel{labels: map[string]modelhub.ScoredLabel{
		"x": {Label: "positive", Score: 0.9},
	}})
	engine := NewSentimentEngine(hub)

	if _, err := engine.AnalyzeBatch([]string{"x"}); err == nil {
		t.Error("expected error for non-ordinal label")
	}
}

func TestParseOrdinalLabel(t *testing.T) {
	tests := []struct {
		label   string
		want    int
		wantErr bool
	}{
		{"4 stars", 4, false},
		{"1 star", 1, false},
		{"5", 5, false},
		{"", 0, true},
		{"five stars", 0, true},
	}
	for _, tt := range tests {
		got, err := parseOrdinalLabel(tt.label)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseOrdinalLabel(%q): expected error", tt.label)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseOrdinalLabel(%q): %v", tt.label, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseOrdinalLabel(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}
