// Package pipeline orchestrates batch analysis: tier selection, chunked
// execution with per-item and per-chunk fault isolation, and tier fallback
// when a whole attempt fails.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/techtitanians/sentiboard/config"
	"github.com/techtitanians/sentiboard/internal/analysis"
	"github.com/techtitanians/sentiboard/internal/models"
)

// ChunkAnalyzer is one processing tier's analysis strategy. AnalyzeChunk
// returns outcomes index-aligned with its input; a non-nil error is a
// whole-chunk failure and the outcomes are discarded.
type ChunkAnalyzer interface {
	Tier() models.ProcessingTier
	Warm(ctx context.Context) error
	AnalyzeChunk(ctx context.Context, texts []string) ([]models.ItemOutcome, error)
}

// ProgressFunc is invoked after every chunk with items completed so far out
// of the admitted total.
type ProgressFunc func(done, total int)

// Options modifies a single batch attempt.
type Options struct {
	// Constrained applies the tier's item ceiling and the smaller chunk
	// sizing table.
	Constrained bool
	// Progress, when set, receives incremental completion updates.
	Progress ProgressFunc
}

// Pipeline executes one batch on one tier. Tier fallback across attempts
// lives in Runner, not here; each Process call is a single independent
// attempt.
type Pipeline struct {
	settings config.Settings
}

func New(settings config.Settings) *Pipeline {
	return &Pipeline{settings: settings}
}

// Process runs texts through analyzer in chunks. Every admitted text yields
// exactly one row in input order; per-item failures and whole-chunk
// failures become sentinel rows. The error return is reserved for
// attempt-level failures (context cancellation); partial failure is not an
// error here.
func (p *Pipeline) Process(ctx context.Context, texts []string, analyzer ChunkAnalyzer, opts Options) ([]models.AnalysisResult, models.BatchReport, error) {
	started := time.Now()
	tier := analyzer.Tier()

	report := models.BatchReport{
		Tier:        tier,
		Constrained: opts.Constrained,
		Requested:   len(texts),
	}

	if len(texts) == 0 {
		report.Elapsed = time.Since(started)
		return []models.AnalysisResult{}, report, nil
	}

	admitted := texts
	if opts.Constrained {
		ceiling := p.tierCeiling(tier)
		if ceiling > 0 && len(admitted) > ceiling {
			slog.Warn("[Pipeline] Batch exceeds tier ceiling, processing a subset",
				slog.String("tier", tier.String()),
				slog.Int("requested", len(texts)),
				slog.Int("ceiling", ceiling))
			admitted = admitted[:ceiling]
			report.Limited = true
		}
	}
	report.Admitted = len(admitted)

	truncateAt := p.tierTruncation(tier)
	prepared := make([]string, len(admitted))
	for i, text := range admitted {
		prepared[i] = analysis.Truncate(text, truncateAt)
	}

	chunkSize := chunkSizeFor(len(prepared), opts.Constrained)
	results := make([]models.AnalysisResult, 0, len(prepared))

	for offset := 0; offset < len(prepared); offset += chunkSize {
		end := offset + chunkSize
		if end > len(prepared) {
			end = len(prepared)
		}
		chunk := prepared[offset:end]

		if err := ctx.Err(); err != nil {
			report.Elapsed = time.Since(started)
			return nil, report, err
		}

		outcomes, err := analyzer.AnalyzeChunk(ctx, chunk)
		if err != nil {
			chunkErr := &ChunkError{Index: offset / chunkSize, Size: len(chunk), Err: err}
			slog.Error("[Pipeline] Chunk failed, marking rows as errors",
				slog.String("tier", tier.String()),
				slog.String("error", chunkErr.Error()))
			report.ChunkFailures++
			for _, text := range chunk {
				results = append(results, models.NewErrorResult(text))
				report.Failed++
			}
		} else {
			for _, outcome := range outcomes {
				if outcome.Err != nil {
					slog.Warn("[Pipeline] Item failed",
						slog.String("tier", tier.String()),
						slog.String("error", outcome.Err.Error()))
					report.Failed++
				} else {
					report.Succeeded++
				}
				results = append(results, outcome.Result)
			}
		}

		if opts.Progress != nil {
			opts.Progress(len(results), len(prepared))
		}

		if end < len(prepared) && p.settings.ChunkPause > 0 {
			select {
			case <-time.After(p.settings.ChunkPause):
			case <-ctx.Done():
				report.Elapsed = time.Since(started)
				return nil, report, ctx.Err()
			}
		}
	}

	report.Elapsed = time.Since(started)
	slog.Info("[Pipeline] Batch attempt finished",
		slog.String("tier", tier.String()),
		slog.Int("succeeded", report.Succeeded),
		slog.Int("failed", report.Failed),
		slog.Int("chunk_failures", report.ChunkFailures),
		slog.Duration("elapsed", report.Elapsed))
	return results, report, nil
}

func (p *Pipeline) tierCeiling(tier models.ProcessingTier) int {
	switch tier {
	case models.TierLightweight:
		return p.settings.CeilingLightweight
	case models.TierEmergency:
		return p.settings.CeilingEmergency
	default:
		return p.settings.CeilingFull
	}
}

func (p *Pipeline) tierTruncation(tier models.ProcessingTier) int {
	switch tier {
	case models.TierLightweight:
		return p.settings.TruncateLightweight
	case models.TierEmergency:
		return p.settings.TruncateEmergency
	default:
		return p.settings.TruncateFull
	}
}

// chunkSizeFor picks a chunk size from the batch size. Constrained
// environments use smaller chunks to bound peak memory.
func chunkSizeFor(total int, constrained bool) int {
	if constrained {
		switch {
		case total <= 10:
			return 3
		case total <= 50:
			return 5
		case total <= 100:
			return 8
		default:
			return 10
		}
	}
	switch {
	case total <= 50:
		return 10
	case total <= 200:
		return 20
	default:
		return 30
	}
}
