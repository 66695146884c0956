// Package heuristic implements the dependency-free fallback analyzer used
// when the full model tier is unavailable: lexicon-counting sentiment and
// frequency-based keyword extraction.
//
// The output is deliberately coarser than the model tier:
//
//   - Sentiment is three-class only (Positive, Neutral, Negative); callers
//     must not expect the "Very" classes from this path.
//   - Keywords are single tokens ranked by frequency, not phrases.
//
// Both variants run the same algorithm. The Emergency variant swaps in
// compact lexicon and stopword tables and halves the per-batch item budget.
// The analyzer is fully deterministic: identical input yields identical
// output, ties break by first-seen order.
//
// Known limitations: no negation handling ("not good" counts as positive)
// and no intensifier support; sarcasm is not detected.
package heuristic

import (
	"context"
	"sort"
	"strings"

	"github.com/techtitanians/sentiboard/internal/models"
)

// Variant selects the lexicon tables and the tier the analyzer reports.
type Variant int

const (
	Lightweight Variant = iota
	Emergency
)

const (
	baseConfidence    = 0.6
	marginConfidence  = 0.1
	maxConfidence     = 0.9
	neutralConfidence = 0.5
	lexiconHitWeight  = 2
	minKeywordRunes   = 3
)

// Analyzer is a lexicon-based sentiment and keyword analyzer. Safe for
// concurrent use; all state is read-only after construction.
type Analyzer struct {
	variant  Variant
	positive map[string]struct{}
	negative map[string]struct{}
	stop     map[string]struct{}
	topN     int
}

// New builds an analyzer for the given variant. topN bounds the number of
// keywords per text.
func New(variant Variant, topN int) *Analyzer {
	a := &Analyzer{
		variant:  variant,
		positive: positiveWords,
		negative: negativeWords,
		stop:     stopwords,
		topN:     topN,
	}
	if variant == Emergency {
		a.positive = positiveWordsCompact
		a.negative = negativeWordsCompact
		a.stop = stopwordsCompact
	}
	return a
}

// Tier reports which processing tier this analyzer serves.
func (a *Analyzer) Tier() models.ProcessingTier {
	if a.variant == Emergency {
		return models.TierEmergency
	}
	return models.TierLightweight
}

// Warm is a no-op; the heuristic tiers have nothing to acquire.
func (a *Analyzer) Warm(ctx context.Context) error { return nil }

// Sentiment classifies text into three classes. Counting is over lexicon
// word occurrences, with a small boost for emphasis punctuation on the
// leading side. Confidence scales with the count margin, capped at 0.9.
func (a *Analyzer) Sentiment(text string) (models.Sentiment, float64) {
	tokens := Tokenize(text)

	var positiveScore, negativeScore int
	for _, tok := range tokens {
		if _, ok := a.positive[tok]; ok {
			positiveScore += lexiconHitWeight
		}
		if _, ok := a.negative[tok]; ok {
			negativeScore += lexiconHitWeight
		}
	}

	if strings.Contains(text, "!") {
		if positiveScore > 0 {
			positiveScore++
		} else if negativeScore > 0 {
			negativeScore++
		}
	}

	switch {
	case positiveScore > negativeScore:
		return models.SentimentPositive, confidenceFromMargin(positiveScore - negativeScore)
	case negativeScore > positiveScore:
		return models.SentimentNegative, confidenceFromMargin(negativeScore - positiveScore)
	default:
		return models.SentimentNeutral, neutralConfidence
	}
}

func confidenceFromMargin(margin int) float64 {
	c := baseConfidence + marginConfidence*float64(margin)
	if c > maxConfidence {
		return maxConfidence
	}
	return c
}

// Keywords returns up to topN distinct tokens ranked by frequency. Stopwords,
// non-alphabetic tokens and tokens shorter than three runes are dropped.
// Frequency ties break by first-seen order.
func (a *Analyzer) Keywords(text string, topN int) []string {
	if topN <= 0 {
		topN = a.topN
	}

	type candidate struct {
		word  string
		count int
		first int
	}

	counts := make(map[string]*candidate)
	var order []*candidate

	for i, tok := range Tokenize(text) {
		if len([]rune(tok)) < minKeywordRunes || !isAlpha(tok) {
			continue
		}
		if _, ok := a.stop[tok]; ok {
			continue
		}
		if c, ok := counts[tok]; ok {
			c.count++
			continue
		}
		c := &candidate{word: tok, count: 1, first: i}
		counts[tok] = c
		order = append(order, c)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})

	if len(order) > topN {
		order = order[:topN]
	}
	keywords := make([]string, 0, len(order))
	for _, c := range order {
		keywords = append(keywords, c.word)
	}
	return keywords
}

// useCaseRules is the reduced first-match table used on fallback tiers.
var useCaseRules = []struct {
	name     string
	keywords []string
}{
	{"Product Review", []string{"product", "quality", "buy", "purchase", "price", "item", "ordered"}},
	{"Customer Service", []string{"service", "support", "help", "staff", "representative"}},
	{"Restaurant/Food", []string{"food", "restaurant", "meal", "dish", "taste", "flavor"}},
	{"Travel/Hotel", []string{"hotel", "room", "stay", "travel", "booking"}},
	{"Social Media", []string{"post", "tweet", "share", "like", "comment", "social"}},
}

// UseCase tags the text with a coarse topical category, first match wins.
func (a *Analyzer) UseCase(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range useCaseRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.name
			}
		}
	}
	return models.UseCaseDefault
}

// AnalyzeChunk processes one chunk of texts into per-item outcomes. The
// heuristic path has no chunk-level failure mode; the error return exists
// to satisfy the chunk analyzer contract.
func (a *Analyzer) AnalyzeChunk(ctx context.Context, texts []string) ([]models.ItemOutcome, error) {
	outcomes := make([]models.ItemOutcome, 0, len(texts))
	for _, text := range texts {
		sentiment, confidence := a.Sentiment(text)
		outcomes = append(outcomes, models.SuccessOutcome(models.AnalysisResult{
			Text:       text,
			Sentiment:  sentiment,
			Confidence: round3(confidence),
			Keywords:   a.Keywords(text, a.topN),
			UseCase:    a.UseCase(text),
		}))
	}
	return outcomes, nil
}

// Tokenize lowercases text, replaces punctuation with spaces and splits on
// whitespace. Exported so the model tier can reuse it for keyword
// candidates.
func Tokenize(text string) []string {
	mapped := strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', '!', '?', ';', ':', '"', '\'', '(', ')', '[', ']', '{', '}':
			return ' '
		}
		return r
	}, strings.ToLower(text))
	return strings.Fields(mapped)
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(s) > 0
}

func round3(f float64) float64 {
	return float64(int(f*1000+0.5)) / 1000
}
