package modelhub

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/techtitanians/sentiboard/config"
)

// HugotProvider builds the ONNX-backed model loaders. One onnxruntime
// session is shared by every pipeline and created on first model load.
type HugotProvider struct {
	settings config.Settings

	sessionOnce sync.Once
	session     *hugot.Session
	sessionErr  error
}

// NewHugotProvider wires hugot loaders for the sentiment and keyword models
// into hub.
func NewHugotProvider(settings config.Settings, hub *Hub) *HugotProvider {
	p := &HugotProvider{settings: settings}
	hub.Register(ModelSentiment, p.loadSentiment)
	hub.Register(ModelKeyword, p.loadKeyword)
	return p
}

// Close destroys the shared session. Call once the process is done with
// all models.
func (p *HugotProvider) Close() {
	if p.session != nil {
		if err := p.session.Destroy(); err != nil {
			slog.Warn("[HugotProvider] Failed to destroy session",
				slog.String("error", err.Error()))
		}
	}
}

func (p *HugotProvider) getSession() (*hugot.Session, error) {
	p.sessionOnce.Do(func() {
		p.session, p.sessionErr = hugot.NewORTSession()
	})
	if p.sessionErr != nil {
		return nil, fmt.Errorf("initializing hugot session: %w", p.sessionErr)
	}
	return p.session, nil
}

// ensureModel downloads modelID into the model directory unless a copy is
// already present, and returns the local path.
func (p *HugotProvider) ensureModel(modelID string) (string, error) {
	if err := os.MkdirAll(p.settings.ModelDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("creating model directory: %w", err)
	}

	localName := strings.ReplaceAll(modelID, "/", "_")
	localPath := filepath.Join(p.settings.ModelDir, localName)
	if _, err := os.Stat(localPath); err == nil {
		slog.Info("[HugotProvider] Using existing model", slog.String("path", localPath))
		return localPath, nil
	}

	slog.Info("[HugotProvider] Model not found locally, downloading...",
		slog.String("model", modelID))
	modelPath, err := hugot.DownloadModel(modelID, p.settings.ModelDir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", modelID, err)
	}
	slog.Info("[HugotProvider] Model downloaded", slog.String("path", modelPath))
	return modelPath, nil
}

func (p *HugotProvider) loadSentiment() (any, error) {
	session, err := p.getSession()
	if err != nil {
		return nil, err
	}
	modelPath, err := p.ensureModel(p.settings.SentimentModelID)
	if err != nil {
		return nil, err
	}

	cfg := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentimentClassificationPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing sentiment pipeline: %w", err)
	}
	return &hugotSentimentModel{pipeline: pipeline}, nil
}

func (p *HugotProvider) loadKeyword() (any, error) {
	session, err := p.getSession()
	if err != nil {
		return nil, err
	}
	modelPath, err := p.ensureModel(p.settings.KeywordModelID)
	if err != nil {
		return nil, err
	}

	cfg := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "keywordEmbeddingPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing keyword embedding pipeline: %w", err)
	}
	return &hugotKeywordModel{pipeline: pipeline}, nil
}

type hugotSentimentModel struct {
	pipeline *pipelines.TextClassificationPipeline
}

func (m *hugotSentimentModel) Classify(texts []string) ([]ScoredLabel, error) {
	output, err := m.pipeline.RunPipeline(texts)
	if err != nil {
		return nil, fmt.Errorf("sentiment pipeline: %w", err)
	}

	labels := make([]ScoredLabel, 0, len(texts))
	for _, classifications := range output.ClassificationOutputs {
		if len(classifications) == 0 {
			return nil, fmt.Errorf("sentiment pipeline: empty classification output")
		}
		top := classifications[0]
		labels = append(labels, ScoredLabel{
			Label: top.Label,
			Score: float64(top.Score),
		})
	}
	if len(labels) != len(texts) {
		return nil, fmt.Errorf("sentiment pipeline: got %d outputs for %d inputs", len(labels), len(texts))
	}
	return labels, nil
}

type hugotKeywordModel struct {
	pipeline *pipelines.FeatureExtractionPipeline
}

func (m *hugotKeywordModel) Embed(texts []string) ([][]float64, error) {
	output, err := m.pipeline.RunPipeline(texts)
	if err != nil {
		return nil, fmt.Errorf("keyword embedding pipeline: %w", err)
	}

	embeddings := make([][]float64, 0, len(output.Embeddings))
	for _, emb := range output.Embeddings {
		vec := make([]float64, len(emb))
		for i, v := range emb {
			vec[i] = float64(v)
		}
		embeddings = append(embeddings, vec)
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("keyword embedding pipeline: got %d embeddings for %d inputs", len(embeddings), len(texts))
	}
	return embeddings, nil
}
