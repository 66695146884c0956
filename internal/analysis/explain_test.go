package analysis

import (
	"strings"
	"testing"

	"github.com/techtitanians/sentiboard/internal/models"
)

func TestReliabilityBand(t *testing.T) {
	tests := []struct {
		confidence float64
		want       string
	}{
		{0.95, "Very High"},
		{0.75, "Very High"},
		{0.74, "Good"},
		{0.55, "Good"},
		{0.54, "Moderate"},
		{0.40, "Moderate"},
		{0.39, "Low"},
		{0.0, "Low"},
	}
	for _, tt := range tests {
		if got := reliabilityBand(tt.confidence); got != tt.want {
			t.Errorf("reliabilityBand(%v) = %q, want %q", tt.confidence, got, tt.want)
		}
	}
}

func TestExplainShortTextLimitation(t *testing.T) {
	result := models.AnalysisResult{Sentiment: models.SentimentPositive, Confidence: 0.9}
	explanation := Explain("great stuff", result)

	if !hasLimitationContaining(explanation.Limitations, "short text") {
		t.Errorf("expected a short-text caveat, got %v", explanation.Limitations)
	}
}

func TestExplainMixedSentimentLimitation(t *testing.T) {
	text := "The food was good but the waiter was terrible to us"
	result := models.AnalysisResult{Sentiment: models.SentimentNeutral, Confidence: 0.9}
	explanation := Explain(text, result)

	if !hasLimitationContaining(explanation.Limitations, "Mixed sentiment") {
		t.Errorf("expected a mixed-sentiment caveat, got %v", explanation.Limitations)
	}
}

func TestExplainQuestionLimitation(t *testing.T) {
	result := models.AnalysisResult{Sentiment: models.SentimentPositive, Confidence: 0.9}
	explanation := Explain("Is this really the best option available on the market today?", result)

	if !hasLimitationContaining(explanation.Limitations, "questions") {
		t.Errorf("expected a question caveat, got %v", explanation.Limitations)
	}
}

func TestExplainCapsLimitations(t *testing.T) {
	// Short, low confidence, sarcasm indicator and a question all at once.
	result := models.AnalysisResult{Sentiment: models.SentimentPositive, Confidence: 0.3}
	explanation := Explain("oh great?", result)

	if len(explanation.Limitations) > 3 {
		t.Errorf("limitations not capped: %v", explanation.Limitations)
	}
	if explanation.Reliability != "Low" {
		t.Errorf("reliability = %q, want Low", explanation.Reliability)
	}
}

func TestExplainCleanTextHasNoSpuriousCaveats(t *testing.T) {
	text := "The delivery arrived right on schedule and the packaging protected everything inside perfectly well"
	result := models.AnalysisResult{Sentiment: models.SentimentPositive, Confidence: 0.92}
	explanation := Explain(text, result)

	if len(explanation.Limitations) != 0 {
		t.Errorf("expected no limitations, got %v", explanation.Limitations)
	}
	if explanation.Reliability != "Very High" {
		t.Errorf("reliability = %q, want Very High", explanation.Reliability)
	}
}

func hasLimitationContaining(limitations []string, needle string) bool {
	for _, l := range limitations {
		if strings.Contains(l, needle) {
			return true
		}
	}
	return false
}
