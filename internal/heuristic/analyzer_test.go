package heuristic

import (
	"context"
	"reflect"
	"testing"

	"github.com/techtitanians/sentiboard/internal/models"
)

func TestSentimentClassification(t *testing.T) {
	a := New(Lightweight, 3)

	tests := []struct {
		name string
		text string
		want models.Sentiment
	}{
		{"clearly positive", "This product is amazing, I love it", models.SentimentPositive},
		{"clearly negative", "Terrible experience, awful service", models.SentimentNegative},
		{"no lexicon hits", "The package arrived on a Tuesday", models.SentimentNeutral},
		{"balanced counts", "The food was good but the service was bad", models.SentimentNeutral},
		{"emphasis boosts the leading side", "I love this!", models.SentimentPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, confidence := a.Sentiment(tt.text)
			if got != tt.want {
				t.Errorf("Sentiment(%q) = %v, want %v", tt.text, got, tt.want)
			}
			if confidence < 0 || confidence > 1 {
				t.Errorf("confidence %v out of range", confidence)
			}
		})
	}
}

func TestSentimentConfidence(t *testing.T) {
	a := New(Lightweight, 3)

	_, neutral := a.Sentiment("nothing to see here")
	if neutral != 0.5 {
		t.Errorf("neutral confidence = %v, want 0.5", neutral)
	}

	_, single := a.Sentiment("this is great")
	_, double := a.Sentiment("this is great and excellent")
	if double <= single {
		t.Errorf("confidence should grow with margin: single=%v double=%v", single, double)
	}

	_, capped := a.Sentiment("great excellent amazing awesome fantastic wonderful love happy best perfect")
	if capped > 0.9 {
		t.Errorf("confidence %v exceeds cap", capped)
	}
}

func TestSentimentDeterminism(t *testing.T) {
	a := New(Emergency, 3)
	text := "The product is good but shipping was terrible and slow!"

	firstSentiment, firstConfidence := a.Sentiment(text)
	for i := 0; i < 10; i++ {
		s, c := a.Sentiment(text)
		if s != firstSentiment || c != firstConfidence {
			t.Fatalf("run %d: got (%v, %v), want (%v, %v)", i, s, c, firstSentiment, firstConfidence)
		}
	}
}

func TestKeywords(t *testing.T) {
	a := New(Lightweight, 3)

	tests := []struct {
		name string
		text string
		topN int
		want []string
	}{
		{
			name: "frequency ranking",
			text: "pizza pizza pizza delivery delivery driver",
			topN: 3,
			want: []string{"pizza", "delivery", "driver"},
		},
		{
			name: "ties break by first seen",
			text: "laptop keyboard screen",
			topN: 3,
			want: []string{"laptop", "keyboard", "screen"},
		},
		{
			name: "stopwords and short tokens dropped",
			text: "it is the battery, the battery, ok",
			topN: 3,
			want: []string{"battery"},
		},
		{
			name: "topN bounds output",
			text: "alpha bravo charlie delta",
			topN: 2,
			want: []string{"alpha", "bravo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Keywords(tt.text, tt.topN)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Keywords(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestUseCase(t *testing.T) {
	a := New(Lightweight, 3)

	tests := []struct {
		text string
		want string
	}{
		{"I ordered this product last week", "Product Review"},
		{"Called support and the staff helped quickly", "Customer Service"},
		{"The hotel room was spotless", "Travel/Hotel"},
		{"Nothing topical whatsoever", models.UseCaseDefault},
	}

	for _, tt := range tests {
		if got := a.UseCase(tt.text); got != tt.want {
			t.Errorf("UseCase(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestAnalyzeChunkProducesRowPerText(t *testing.T) {
	a := New(Emergency, 3)
	texts := []string{"great product", "bad service", "meh"}

	outcomes, err := a.AnalyzeChunk(context.Background(), texts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != len(texts) {
		t.Fatalf("got %d outcomes for %d texts", len(outcomes), len(texts))
	}
	for i, outcome := range outcomes {
		if outcome.Err != nil {
			t.Errorf("outcome %d unexpectedly failed: %v", i, outcome.Err)
		}
		if outcome.Result.Text != texts[i] {
			t.Errorf("outcome %d text = %q, want %q", i, outcome.Result.Text, texts[i])
		}
		switch outcome.Result.Sentiment {
		case models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
		default:
			t.Errorf("outcome %d sentiment %v outside the three-class range", i, outcome.Result.Sentiment)
		}
	}
}

func TestTierPerVariant(t *testing.T) {
	if got := New(Lightweight, 3).Tier(); got != models.TierLightweight {
		t.Errorf("Lightweight analyzer reports tier %v", got)
	}
	if got := New(Emergency, 3).Tier(); got != models.TierEmergency {
		t.Errorf("Emergency analyzer reports tier %v", got)
	}
}
