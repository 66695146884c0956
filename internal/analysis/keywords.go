package analysis

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/techtitanians/sentiboard/internal/heuristic"
	"github.com/techtitanians/sentiboard/internal/modelhub"
)

// maxCandidates bounds the number of phrases embedded per text; embedding
// cost scales linearly with candidates.
const maxCandidates = 48

// KeywordEngine extracts ranked keyword phrases by embedding the document
// and its candidate phrases, then ranking candidates by cosine similarity
// to the document. Candidates are unigrams and bigrams with stopwords
// filtered out.
type KeywordEngine struct {
	hub *modelhub.Hub
}

// NewKeywordEngine returns an engine backed by hub's keyword model.
func NewKeywordEngine(hub *modelhub.Hub) *KeywordEngine {
	return &KeywordEngine{hub: hub}
}

// Extract returns up to topN phrases ordered by similarity to text. Empty
// or candidate-free input yields an empty slice, never an error.
func (e *KeywordEngine) Extract(text string, topN int) ([]string, error) {
	if topN <= 0 || len(text) == 0 {
		return []string{}, nil
	}

	candidates := buildCandidates(text)
	if len(candidates) == 0 {
		return []string{}, nil
	}

	model, err := e.hub.Keyword()
	if err != nil {
		return nil, err
	}

	inputs := append([]string{MarkdownToText(text)}, candidates...)
	embeddings, err := model.Embed(inputs)
	if err != nil {
		return nil, err
	}

	docVec := embeddings[0]
	type ranked struct {
		phrase     string
		similarity float64
		order      int
	}
	scored := make([]ranked, 0, len(candidates))
	for i, candidate := range candidates {
		scored = append(scored, ranked{
			phrase:     candidate,
			similarity: cosineSimilarity(docVec, embeddings[i+1]),
			order:      i,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].similarity != scored[j].similarity {
			return scored[i].similarity > scored[j].similarity
		}
		return scored[i].order < scored[j].order
	})

	if len(scored) > topN {
		scored = scored[:topN]
	}
	phrases := make([]string, 0, len(scored))
	for _, r := range scored {
		phrases = append(phrases, r.phrase)
	}
	return phrases, nil
}

// buildCandidates produces distinct unigram and bigram phrases in
// first-seen order.
func buildCandidates(text string) []string {
	tokens := heuristic.Tokenize(MarkdownToText(text))

	keep := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) < 3 || heuristic.IsStopword(tok) {
			continue
		}
		keep = append(keep, tok)
	}

	seen := make(map[string]struct{}, len(keep)*2)
	candidates := make([]string, 0, len(keep)*2)
	add := func(phrase string) {
		if _, ok := seen[phrase]; ok || len(candidates) >= maxCandidates {
			return
		}
		seen[phrase] = struct{}{}
		candidates = append(candidates, phrase)
	}

	for i, tok := range keep {
		add(tok)
		if i+1 < len(keep) {
			add(tok + " " + keep[i+1])
		}
	}
	return candidates
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}
