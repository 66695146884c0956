package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/techtitanians/sentiboard/config"
	"github.com/techtitanians/sentiboard/internal/envdetect"
	"github.com/techtitanians/sentiboard/internal/models"
)

// Runner drives the outer tier-fallback loop around Pipeline. Environment
// classification happens once per batch; each tier attempt is independent
// and restarts the per-item loop from scratch.
//
// Fallback rules:
//
//   - A tier whose model acquisition fails is skipped entirely; no items
//     are attempted on it.
//   - A tier attempt with chunk-level failures falls back one tier, unless
//     it is already Emergency, in which case its partial results stand.
//   - Per-item failures alone never trigger fallback; sentinel rows are a
//     successful outcome.
type Runner struct {
	settings   config.Settings
	pipeline   *Pipeline
	classifier *envdetect.Classifier
	analyzers  map[models.ProcessingTier]ChunkAnalyzer
}

// NewRunner builds a runner over one analyzer per tier. Every tier must
// have an analyzer registered.
func NewRunner(settings config.Settings, classifier *envdetect.Classifier, analyzers map[models.ProcessingTier]ChunkAnalyzer) *Runner {
	return &Runner{
		settings:   settings,
		pipeline:   New(settings),
		classifier: classifier,
		analyzers:  analyzers,
	}
}

// Analyze processes texts, degrading through tiers until one attempt
// completes. Returns the results of the first completed attempt together
// with its report. ErrTierExhausted is returned only when every tier down
// to Emergency failed to complete.
func (r *Runner) Analyze(ctx context.Context, texts []string, progress ProgressFunc) ([]models.AnalysisResult, models.BatchReport, error) {
	tier, envReport, err := r.startingTier(len(texts))
	if err != nil {
		return nil, models.BatchReport{}, err
	}

	opts := Options{
		Constrained: envReport.Constrained(),
		Progress:    progress,
	}

	var lastReport models.BatchReport
	for {
		analyzer, ok := r.analyzers[tier]
		if !ok {
			return nil, lastReport, fmt.Errorf("pipeline: no analyzer registered for %s tier", tier)
		}

		if err := analyzer.Warm(ctx); err != nil {
			acqErr := &ModelAcquisitionError{Tier: tier, Err: err}
			slog.Error("[Runner] Tier unavailable, degrading",
				slog.String("tier", tier.String()),
				slog.String("error", acqErr.Error()))
			next, ok := tier.Next()
			if !ok {
				return nil, lastReport, fmt.Errorf("%w: %v", ErrTierExhausted, acqErr)
			}
			tier = next
			continue
		}

		results, report, err := r.pipeline.Process(ctx, texts, analyzer, opts)
		if err != nil {
			return nil, report, err
		}
		report.Signals = envReport.Signals
		lastReport = report

		if report.ChunkFailures > 0 {
			next, ok := tier.Next()
			if ok {
				slog.Warn("[Runner] Chunk failures on tier, retrying batch on next tier",
					slog.String("tier", tier.String()),
					slog.Int("chunk_failures", report.ChunkFailures),
					slog.String("next", next.String()))
				tier = next
				continue
			}
			slog.Warn("[Runner] Chunk failures on emergency tier, keeping partial results",
				slog.Int("chunk_failures", report.ChunkFailures))
		}

		return results, report, nil
	}
}

// startingTier picks the first tier to attempt. An explicit override skips
// environment detection entirely; otherwise constrained environments start
// on Lightweight.
func (r *Runner) startingTier(batchSize int) (models.ProcessingTier, envdetect.Report, error) {
	if forced := strings.TrimSpace(strings.ToLower(r.settings.ForceTier)); forced != "" {
		var tier models.ProcessingTier
		switch forced {
		case "full":
			tier = models.TierFull
		case "lightweight":
			tier = models.TierLightweight
		case "emergency":
			tier = models.TierEmergency
		default:
			return 0, envdetect.Report{}, fmt.Errorf("pipeline: unknown forced tier %q", r.settings.ForceTier)
		}
		slog.Info("[Runner] Tier forced by configuration", slog.String("tier", tier.String()))
		// A forced degraded tier still counts as constrained so the
		// matching ceilings apply.
		report := envdetect.Report{Classification: envdetect.Unconstrained}
		if tier != models.TierFull {
			report.Classification = envdetect.Constrained
			report.Signals = []string{"forced_tier"}
		}
		return tier, report, nil
	}

	envReport := r.classifier.Classify(batchSize)
	if envReport.Constrained() {
		return models.TierLightweight, envReport, nil
	}
	return models.TierFull, envReport, nil
}
