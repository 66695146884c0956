// Package modelhub owns model acquisition. A Hub lazily loads each model
// exactly once per process by logical name and hands back the cached handle
// on every later request. Load failures propagate to the caller; they are
// never cached and never retried automatically.
//
// The hub is an explicitly constructed, injected service rather than a
// package-level singleton so tests can register fake loaders without
// leaking state between cases.
package modelhub

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Logical model names.
const (
	ModelSentiment = "sentiment"
	ModelKeyword   = "keyword"
)

// ScoredLabel is one classification emitted by the sentiment model, e.g.
// {"4 stars", 0.87}.
type ScoredLabel struct {
	Label string
	Score float64
}

// SentimentModel classifies texts on an ordinal star scale.
type SentimentModel interface {
	Classify(texts []string) ([]ScoredLabel, error)
}

// KeywordModel embeds texts for similarity-based keyword ranking.
type KeywordModel interface {
	Embed(texts []string) ([][]float64, error)
}

// Loader performs the (expensive, possibly slow) acquisition of one model.
type Loader func() (any, error)

// Hub is the per-process model registry.
type Hub struct {
	mu      sync.Mutex
	loaders map[string]Loader
	models  map[string]any
}

// New returns an empty hub.
func New() *Hub {
	return &Hub{
		loaders: make(map[string]Loader),
		models:  make(map[string]any),
	}
}

// Register installs the loader for a logical model name. Registering over
// an existing name replaces the loader but not an already loaded model.
func (h *Hub) Register(name string, loader Loader) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loaders[name] = loader
}

// Get returns the model for name, loading it on first request. The loaded
// handle lives for the process lifetime; there is no eviction and no TTL.
func (h *Hub) Get(name string) (any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if model, ok := h.models[name]; ok {
		return model, nil
	}

	loader, ok := h.loaders[name]
	if !ok {
		return nil, fmt.Errorf("modelhub: no loader registered for %q", name)
	}

	slog.Info("[ModelHub] Loading model (first use may take a while)...",
		slog.String("model", name))
	start := time.Now()

	model, err := loader()
	if err != nil {
		slog.Error("[ModelHub] Model load failed",
			slog.String("model", name),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("modelhub: loading %q: %w", name, err)
	}

	slog.Info("[ModelHub] Model loaded",
		slog.String("model", name),
		slog.Duration("elapsed", time.Since(start)))

	h.models[name] = model
	return model, nil
}

// Sentiment returns the loaded sentiment model.
func (h *Hub) Sentiment() (SentimentModel, error) {
	model, err := h.Get(ModelSentiment)
	if err != nil {
		return nil, err
	}
	m, ok := model.(SentimentModel)
	if !ok {
		return nil, fmt.Errorf("modelhub: %q does not implement SentimentModel", ModelSentiment)
	}
	return m, nil
}

// Keyword returns the loaded keyword model.
func (h *Hub) Keyword() (KeywordModel, error) {
	model, err := h.Get(ModelKeyword)
	if err != nil {
		return nil, err
	}
	m, ok := model.(KeywordModel)
	if !ok {
		return nil, fmt.Errorf("modelhub: %q does not implement KeywordModel", ModelKeyword)
	}
	return m, nil
}
