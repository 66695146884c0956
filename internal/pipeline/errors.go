package pipeline

import (
	"errors"
	"fmt"

	"github.com/techtitanians/sentiboard/internal/models"
)

// ErrTierExhausted is returned when every tier, Emergency included, failed
// to produce a result set for the batch.
var ErrTierExhausted = errors.New("pipeline: all processing tiers exhausted")

// ModelAcquisitionError reports that a tier could not acquire the model it
// needs. The runner treats it as a whole-tier failure: no items are
// attempted on that tier.
type ModelAcquisitionError struct {
	Tier models.ProcessingTier
	Err  error
}

func (e *ModelAcquisitionError) Error() string {
	return fmt.Sprintf("pipeline: %s tier model acquisition: %v", e.Tier, e.Err)
}

func (e *ModelAcquisitionError) Unwrap() error { return e.Err }

// ChunkError reports the failure of one chunk within a batch. The affected
// rows carry sentinel results; the batch as a whole still completes.
type ChunkError struct {
	Index int // zero-based chunk index within the batch
	Size  int
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("pipeline: chunk %d (%d items): %v", e.Index, e.Size, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }
