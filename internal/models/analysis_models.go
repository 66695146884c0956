// Package models holds the shared data types of the analysis core: the
// five-class sentiment scale, the per-text result row, processing tiers and
// the per-batch report.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Sentiment is the five-class scale produced by the full model tier.
// Heuristic tiers only ever emit Negative, Neutral and Positive.
// SentimentError marks a row whose analysis failed, it is a sentinel and
// not a real classification.
type Sentiment int

const (
	SentimentError        Sentiment = 0
	SentimentVeryNegative Sentiment = 1
	SentimentNegative     Sentiment = 2
	SentimentNeutral      Sentiment = 3
	SentimentPositive     Sentiment = 4
	SentimentVeryPositive Sentiment = 5
)

var sentimentNames = map[Sentiment]string{
	SentimentError:        "Error",
	SentimentVeryNegative: "Very Negative",
	SentimentNegative:     "Negative",
	SentimentNeutral:      "Neutral",
	SentimentPositive:     "Positive",
	SentimentVeryPositive: "Very Positive",
}

var sentimentFromName = map[string]Sentiment{
	"Error":         SentimentError,
	"Very Negative": SentimentVeryNegative,
	"Negative":      SentimentNegative,
	"Neutral":       SentimentNeutral,
	"Positive":      SentimentPositive,
	"Very Positive": SentimentVeryPositive,
}

// SentimentFromOrdinal maps the model's 1-5 ordinal output onto the scale.
// Ordinals outside the scale map to the error sentinel.
func SentimentFromOrdinal(score int) Sentiment {
	if score < 1 || score > 5 {
		return SentimentError
	}
	return Sentiment(score)
}

// ParseSentiment maps a display name back to its class.
func ParseSentiment(name string) (Sentiment, error) {
	v, ok := sentimentFromName[name]
	if !ok {
		return SentimentError, fmt.Errorf("models: unknown sentiment: %q", name)
	}
	return v, nil
}

// String returns the display name of the class, e.g. "Very Negative".
func (s Sentiment) String() string {
	if name, ok := sentimentNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Sentiment(%d)", int(s))
}

// IsError reports whether s is the failure sentinel.
func (s Sentiment) IsError() bool { return s == SentimentError }

func (s Sentiment) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Sentiment) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, ok := sentimentFromName[str]
	if !ok {
		return fmt.Errorf("models: unknown sentiment: %q", str)
	}
	*s = v
	return nil
}

// ProcessingTier selects a processing strategy, trading accuracy for
// reliability. Tiers degrade monotonically: Full > Lightweight > Emergency.
type ProcessingTier int

const (
	TierFull ProcessingTier = iota
	TierLightweight
	TierEmergency
)

var tierNames = map[ProcessingTier]string{
	TierFull:        "Full",
	TierLightweight: "Lightweight",
	TierEmergency:   "Emergency",
}

var tierFromName = map[string]ProcessingTier{
	"Full":        TierFull,
	"Lightweight": TierLightweight,
	"Emergency":   TierEmergency,
}

func (t ProcessingTier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ProcessingTier(%d)", int(t))
}

// Next returns the next lower tier and whether one exists.
func (t ProcessingTier) Next() (ProcessingTier, bool) {
	if t >= TierEmergency {
		return t, false
	}
	return t + 1, true
}

func (t ProcessingTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ProcessingTier) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, ok := tierFromName[str]
	if !ok {
		return fmt.Errorf("models: unknown processing tier: %q", str)
	}
	*t = v
	return nil
}

const (
	// UseCaseDefault tags texts no keyword category matched.
	UseCaseDefault = "General Analysis"
	// UseCaseError tags sentinel rows.
	UseCaseError = "Error"
	// KeywordsFailedMarker is the fixed keyword entry of a sentinel row.
	KeywordsFailedMarker = "processing failed"
)

// AnalysisResult is one result row. Every submitted text produces exactly
// one row, failures included.
type AnalysisResult struct {
	Text       string    `json:"text"`
	Sentiment  Sentiment `json:"sentiment"`
	Confidence float64   `json:"confidence"`
	RawScore   int       `json:"raw_score,omitempty"`
	Keywords   []string  `json:"keywords"`
	UseCase    string    `json:"use_case"`
}

// NewErrorResult builds the sentinel row for a text whose analysis failed.
func NewErrorResult(text string) AnalysisResult {
	return AnalysisResult{
		Text:       text,
		Sentiment:  SentimentError,
		Confidence: 0.0,
		Keywords:   []string{KeywordsFailedMarker},
		UseCase:    UseCaseError,
	}
}

// IsError reports whether the row is a failure sentinel.
func (r AnalysisResult) IsError() bool { return r.Sentiment.IsError() }

// ItemOutcome is the typed result of one per-item analysis attempt. Either
// Result is valid or Err explains the failure; the pipeline converts Err
// into a sentinel row at the item boundary.
type ItemOutcome struct {
	Result AnalysisResult
	Err    error
}

// SuccessOutcome wraps a completed row.
func SuccessOutcome(r AnalysisResult) ItemOutcome { return ItemOutcome{Result: r} }

// FailedOutcome records a per-item failure for the given input text.
func FailedOutcome(text string, err error) ItemOutcome {
	return ItemOutcome{Result: NewErrorResult(text), Err: err}
}

// BatchReport summarizes one tier attempt over a batch.
type BatchReport struct {
	Tier          ProcessingTier `json:"tier"`
	Constrained   bool           `json:"constrained"`
	Requested     int            `json:"requested"`
	Admitted      int            `json:"admitted"`
	Succeeded     int            `json:"succeeded"`
	Failed        int            `json:"failed"`
	Limited       bool           `json:"limited"`
	ChunkFailures int            `json:"chunk_failures"`
	Signals       []string       `json:"signals,omitempty"`
	Elapsed       time.Duration  `json:"elapsed"`
}
