package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/techtitanians/sentiboard/config"
	"github.com/techtitanians/sentiboard/internal/cache"
	"github.com/techtitanians/sentiboard/internal/modelhub"
	"github.com/techtitanians/sentiboard/internal/models"
)

// FullAnalyzer is the model-backed processing tier. Sentiment runs as one
// batched model call per chunk; keyword extraction and use-case tagging run
// per item, with keyword results memoized across the batch.
//
// A sentiment failure fails the whole chunk since every row in it came from
// the same call. A keyword failure degrades only the affected row: the row
// keeps its sentiment and carries the failed-keywords marker instead.
type FullAnalyzer struct {
	sentiment *SentimentEngine
	keywords  func(string) ([]string, error)
	hub       *modelhub.Hub
	topN      int
}

// NewFullAnalyzer wires the model engines together. Keyword extraction is
// wrapped in the TTL cache so repeated texts in a session cost one
// embedding call.
func NewFullAnalyzer(settings config.Settings, hub *modelhub.Hub) *FullAnalyzer {
	keywordEngine := NewKeywordEngine(hub)
	topN := settings.KeywordTopN

	extract := func(text string) ([]string, error) {
		return keywordEngine.Extract(text, topN)
	}

	return &FullAnalyzer{
		sentiment: NewSentimentEngine(hub),
		keywords:  cache.Memoize(extract, settings.CacheTTL, settings.CacheMaxSize),
		hub:       hub,
		topN:      topN,
	}
}

// Tier reports which processing tier this analyzer serves.
func (a *FullAnalyzer) Tier() models.ProcessingTier { return models.TierFull }

// Warm acquires both models up front so a load failure surfaces before any
// chunk is attempted.
func (a *FullAnalyzer) Warm(ctx context.Context) error {
	if _, err := a.hub.Sentiment(); err != nil {
		return fmt.Errorf("acquiring sentiment model: %w", err)
	}
	if _, err := a.hub.Keyword(); err != nil {
		return fmt.Errorf("acquiring keyword model: %w", err)
	}
	return nil
}

// AnalyzeChunk classifies one chunk of texts. The returned outcomes are
// index-aligned with texts. A non-nil error means the whole chunk failed
// and no outcomes are usable.
func (a *FullAnalyzer) AnalyzeChunk(ctx context.Context, texts []string) ([]models.ItemOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scores, err := a.sentiment.AnalyzeBatch(texts)
	if err != nil {
		return nil, fmt.Errorf("chunk sentiment: %w", err)
	}

	outcomes := make([]models.ItemOutcome, 0, len(texts))
	for i, text := range texts {
		keywords, err := a.keywords(text)
		if err != nil {
			slog.Warn("[FullAnalyzer] Keyword extraction failed, keeping sentiment",
				slog.String("error", err.Error()))
			keywords = []string{models.KeywordsFailedMarker}
		}

		outcomes = append(outcomes, models.SuccessOutcome(models.AnalysisResult{
			Text:       text,
			Sentiment:  scores[i].Sentiment,
			Confidence: scores[i].Confidence,
			RawScore:   scores[i].RawScore,
			Keywords:   keywords,
			UseCase:    DetermineUseCase(text),
		}))
	}
	return outcomes, nil
}
