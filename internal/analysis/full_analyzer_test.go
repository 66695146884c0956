package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/techtitanians/sentiboard/config"
	"github.com/techtitanians/sentiboard/internal/modelhub"
	"github.com/techtitanians/sentiboard/internal/models"
)

func testSettings() config.Settings {
	return config.Settings{
		KeywordTopN:  3,
		CacheTTL:     time.Minute,
		CacheMaxSize: 100,
	}
}

func newFullHub(t *testing.T, sentiment modelhub.SentimentModel, keyword modelhub.KeywordModel) *modelhub.Hub {
	t.Helper()
	hub := modelhub.New()
	hub.Register(modelhub.ModelSentiment, func() (any, error) { return sentiment, nil })
	hub.Register(modelhub.ModelKeyword, func() (any, error) { return keyword, nil })
	return hub
}

func TestFullAnalyzerAnalyzeChunk(t *testing.T) {
	sentiment := &fakeSentimentModel{labels: map[string]modelhub.ScoredLabel{
		"battery lasts forever": {Label: "5 stars", Score: 0.93},
		"screen cracked":        {Label: "1 star", Score: 0.88},
	}}
	hub := newFullHub(t, sentiment, &fakeKeywordModel{})
	analyzer := NewFullAnalyzer(testSettings(), hub)

	texts := []string{"battery lasts forever", "screen cracked"}
	outcomes, err := analyzer.AnalyzeChunk(context.Background(), texts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != len(texts) {
		t.Fatalf("got %d outcomes for %d texts", len(outcomes), len(texts))
	}

	first := outcomes[0].Result
	if first.Sentiment != models.SentimentVeryPositive {
		t.Errorf("first sentiment = %v, want Very Positive", first.Sentiment)
	}
	if first.RawScore != 5 {
		t.Errorf("first raw score = %d, want 5", first.RawScore)
	}
	if len(first.Keywords) == 0 {
		t.Errorf("first row has no keywords")
	}

	second := outcomes[1].Result
	if second.Sentiment != models.SentimentVeryNegative {
		t.Errorf("second sentiment = %v, want Very Negative", second.Sentiment)
	}
}

func TestFullAnalyzerChunkFailsWhenSentimentFails(t *testing.T) {
	modelErr := errors.New("model crashed")
	hub := newFullHub(t, &fakeSentimentModel{err: modelErr}, &fakeKeywordModel{})
	analyzer := NewFullAnalyzer(testSettings(), hub)

	if _, err := analyzer.AnalyzeChunk(context.Background(), []string{"anything"}); !errors.Is(err, modelErr) {
		t.Errorf("error = %v, want wrapped %v", err, modelErr)
	}
}

func TestFullAnalyzerKeywordFailureDegradesRowOnly(t *testing.T) {
	sentiment := &fakeSentimentModel{labels: map[string]modelhub.ScoredLabel{
		"battery died": {Label: "2 stars", Score: 0.8},
	}}
	hub := newFullHub(t, sentiment, &fakeKeywordModel{err: errors.New("embedding down")})
	analyzer := NewFullAnalyzer(testSettings(), hub)

	outcomes, err := analyzer.AnalyzeChunk(context.Background(), []string{"battery died"})
	if err != nil {
		t.Fatalf("keyword failure should not fail the chunk: %v", err)
	}
	row := outcomes[0].Result
	if row.Sentiment != models.SentimentNegative {
		t.Errorf("sentiment lost on keyword failure: %v", row.Sentiment)
	}
	if len(row.Keywords) != 1 || row.Keywords[0] != models.KeywordsFailedMarker {
		t.Errorf("keywords = %v, want the failed marker", row.Keywords)
	}
}

func TestFullAnalyzerWarmSurfacesLoadFailures(t *testing.T) {
	loadErr := errors.New("download failed")
	hub := modelhub.New()
	hub.Register(modelhub.ModelSentiment, func() (any, error) { return nil, loadErr })
	hub.Register(modelhub.ModelKeyword, func() (any, error) { return &fakeKeywordModel{}, nil })
	analyzer := NewFullAnalyzer(testSettings(), hub)

	if err := analyzer.Warm(context.Background()); !errors.Is(err, loadErr) {
		t.Errorf("Warm error = %v, want wrapped %v", err, loadErr)
	}
}

func TestFullAnalyzerTier(t *testing.T) {
	hub := newFullHub(t, &fakeSentimentModel{}, &fakeKeywordModel{})
	if got := NewFullAnalyzer(testSettings(), hub).Tier(); got != models.TierFull {
		t.Errorf("Tier() = %v, want Full", got)
	}
}
