package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/danieljhkim/lifeexp/internal/hash"
	"github.com/danieljhkim/lifeexp/internal/state"
)

const opConvert = "convert"

// Convert loads a dataset in one format and saves it in another. The table
// is not modified.
func (e *Engine) Convert(ctx context.Context, req *ConvertRequest) (result *ConvertResult, err error) {
	startedAt := e.clock.Now()
	runID := uuid.New().String()
	defer func() {
		e.metrics.ObserveRun(opConvert, startedAt, e.clock.Now(), err)
	}()

	if req.Input == "" || req.Output == "" {
		return nil, fmt.Errorf("%w: input and output paths are required", ErrValidation)
	}

	log := e.logger.With("run_id", runID, "op", opConvert)

	inStrategy, outStrategy, err := e.resolvePair(req.Input, req.Output)
	if err != nil {
		return nil, err
	}

	log.Debug("loading input", "path", req.Input, "format", inStrategy.Format())
	t, err := e.load(ctx, inStrategy, req.Input)
	if err != nil {
		return nil, err
	}

	result = &ConvertResult{
		RunID:        runID,
		Input:        req.Input,
		InputFormat:  inStrategy.Format(),
		Output:       req.Output,
		OutputFormat: outStrategy.Format(),
		Rows:         t.Len(),
		Columns:      len(t.Columns),
		DryRun:       req.DryRun,
		StartedAt:    startedAt,
	}

	if req.DryRun {
		result.FinishedAt = e.clock.Now()
		return result, nil
	}

	digest, err := e.store(ctx, outStrategy, t, req.Output)
	if err != nil {
		return nil, err
	}
	result.SHA256 = digest
	result.FinishedAt = e.clock.Now()

	result.PreviousRunID, result.Unchanged = e.recordRun(log, &state.RunRecord{
		RunID:        runID,
		Operation:    state.OpConvert,
		Input:        req.Input,
		InputFormat:  string(inStrategy.Format()),
		Output:       req.Output,
		OutputFormat: string(outStrategy.Format()),
		Rows:         t.Len(),
		Checksum:     digest,
		StartedAt:    startedAt,
		FinishedAt:   result.FinishedAt,
	})

	log.Info("dataset converted",
		"from", inStrategy.Format(),
		"to", outStrategy.Format(),
		"rows", t.Len(),
		"sha256", hash.Short(digest),
	)
	return result, nil
}
