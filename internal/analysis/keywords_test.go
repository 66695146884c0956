package analysis

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/techtitanians/sentiboard/internal/modelhub"
)

// fakeKeywordModel embeds texts onto a two dimensional space keyed by
// substring, so cosine ranking is easy to reason about.
type fakeKeywordModel struct {
	err error
}

func (m *fakeKeywordModel) Embed(texts []string) ([][]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float64, 0, len(texts))
	for _, text := range texts {
		switch {
		case strings.Contains(text, "battery"):
			out = append(out, []float64{1, 0})
		case strings.Contains(text, "screen"):
			out = append(out, []float64{0.7, 0.7})
		default:
			out = append(out, []float64{0, 1})
		}
	}
	return out, nil
}

func newKeywordHub(t *testing.T, model modelhub.KeywordModel) *modelhub.Hub {
	t.Helper()
	hub := modelhub.New()
	hub.Register(modelhub.ModelKeyword, func() (any, error) {
		return model, nil
	})
	return hub
}

func TestExtractRanksBySimilarity(t *testing.T) {
	// The document embeds at (1, 0) because it mentions battery, so
	// battery-flavored candidates should outrank the rest.
	engine := NewKeywordEngine(newKeywordHub(t, &fakeKeywordModel{}))

	keywords, err := engine.Extract("battery drains overnight while screen stays dark", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keywords) != 2 {
		t.Fatalf("got %d keywords, want 2", len(keywords))
	}
	if !strings.Contains(keywords[0], "battery") {
		t.Errorf("top keyword = %q, want a battery phrase", keywords[0])
	}
}

func TestExtractEmptyInput(t *testing.T) {
	engine := NewKeywordEngine(newKeywordHub(t, &fakeKeywordModel{}))

	tests := []struct {
		name string
		text string
		topN int
	}{
		{"empty text", "", 3},
		{"zero topN", "battery issues", 0},
		{"stopwords only", "the and of it", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Extract(tt.text, tt.topN)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, []string{}) {
				t.Errorf("got %v, want empty slice", got)
			}
		})
	}
}

func TestExtractPropagatesModelErrors(t *testing.T) {
	modelErr := errors.New("embedding failed")
	engine := NewKeywordEngine(newKeywordHub(t, &fakeKeywordModel{err: modelErr}))

	if _, err := engine.Extract("battery issues", 3); !errors.Is(err, modelErr) {
		t.Errorf("error = %v, want wrapped %v", err, modelErr)
	}
}

func TestBuildCandidatesFiltersAndDedupes(t *testing.T) {
	candidates := buildCandidates("the battery battery is ok")

	seen := make(map[string]int)
	for _, c := range candidates {
		seen[c]++
		if seen[c] > 1 {
			t.Errorf("duplicate candidate %q", c)
		}
	}
	for _, c := range candidates {
		if c == "the" || c == "ok" {
			t.Errorf("filtered token %q survived as candidate", c)
		}
	}
	if _, ok := seen["battery"]; !ok {
		t.Errorf("expected unigram candidate, got %v", candidates)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 0}, []float64{1, 0}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"zero vector", []float64{0, 0}, []float64{1, 0}, 0},
		{"length mismatch", []float64{1}, []float64{1, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cosineSimilarity(tt.a, tt.b); got != tt.want {
				t.Errorf("cosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}
