package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/danieljhkim/lifeexp/internal/cleaning"
	"github.com/danieljhkim/lifeexp/internal/hash"
	"github.com/danieljhkim/lifeexp/internal/metrics"
	"github.com/danieljhkim/lifeexp/internal/state"
)

const opClean = "clean"

// Clean loads the raw dataset, reshapes it to long format, keeps the rows
// of one country, and saves the result.
//
// Both the input and output strategies are resolved before anything is
// read, so an unsupported extension on either side fails without I/O.
func (e *Engine) Clean(ctx context.Context, req *CleanRequest) (result *CleanResult, err error) {
	startedAt := e.clock.Now()
	runID := uuid.New().String()
	defer func() {
		e.metrics.ObserveRun(opClean, startedAt, e.clock.Now(), err)
	}()

	country := req.Country
	if country == "" {
		country = cleaning.DefaultCountry
	}

	input := req.Input
	if input == "" {
		input = e.configPaths.Input
	}
	output := req.Output
	if output == "" {
		// The country becomes part of the default file name.
		if err := e.fs.ValidateIdentifier(country); err != nil {
			return nil, fmt.Errorf("%w: country: %v", ErrValidation, err)
		}
		output, err = e.configPaths.OutputPath(country, req.OutputFormat)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	log := e.logger.With("run_id", runID, "op", opClean, "country", country)

	inStrategy, outStrategy, err := e.resolvePair(input, output)
	if err != nil {
		return nil, err
	}

	log.Debug("loading input", "path", input, "format", inStrategy.Format())
	raw, err := e.load(ctx, inStrategy, input)
	if err != nil {
		return nil, err
	}
	log.Debug("input loaded", "rows", raw.Len(), "columns", len(raw.Columns))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := []cleaning.Option{
		cleaning.WithCountry(country),
		cleaning.WithStrictYear(req.StrictYear),
	}
	if req.KeyColumn != "" {
		opts = append(opts, cleaning.WithKeyColumn(req.KeyColumn))
	}
	cleaned, err := cleaning.Clean(raw, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to clean %s: %w", input, err)
	}
	e.observeStats(country, cleaned.Stats)
	log.Info("dataset cleaned",
		"melted", cleaned.Stats.Melted,
		"missing_value", cleaned.Stats.MissingValue,
		"invalid_year", cleaned.Stats.InvalidYear,
		"other_region", cleaned.Stats.OtherRegion,
		"kept", cleaned.Stats.Kept,
	)
	if cleaned.Stats.Kept == 0 {
		log.Warn("no rows matched country")
	}

	result = &CleanResult{
		RunID:        runID,
		Country:      country,
		Input:        input,
		InputFormat:  inStrategy.Format(),
		Output:       output,
		OutputFormat: outStrategy.Format(),
		Stats:        cleaned.Stats,
		Records:      cleaned.Records,
		DryRun:       req.DryRun,
		StartedAt:    startedAt,
	}

	if req.DryRun {
		log.Info("dry run, output not written", "path", output)
		result.FinishedAt = e.clock.Now()
		return result, nil
	}

	digest, err := e.store(ctx, outStrategy, cleaned.Records.Table(), output)
	if err != nil {
		return nil, err
	}
	result.SHA256 = digest
	result.FinishedAt = e.clock.Now()

	stats := cleaned.Stats
	result.PreviousRunID, result.Unchanged = e.recordRun(log, &state.RunRecord{
		RunID:        runID,
		Operation:    state.OpClean,
		Country:      country,
		Input:        input,
		InputFormat:  string(inStrategy.Format()),
		Output:       output,
		OutputFormat: string(outStrategy.Format()),
		Rows:         stats.Kept,
		Stats:        &stats,
		Checksum:     digest,
		StartedAt:    startedAt,
		FinishedAt:   result.FinishedAt,
	})

	log.Info("output written", "path", output, "format", outStrategy.Format(), "sha256", hash.Short(digest))
	return result, nil
}

func (e *Engine) observeStats(country string, s cleaning.Stats) {
	e.metrics.ObserveRows(country, metrics.StageMelted, s.Melted)
	e.metrics.ObserveRows(country, metrics.StageMissingValue, s.MissingValue)
	e.metrics.ObserveRows(country, metrics.StageInvalidYear, s.InvalidYear)
	e.metrics.ObserveRows(country, metrics.StageOtherRegion, s.OtherRegion)
	e.metrics.ObserveRows(country, metrics.StageKept, s.Kept)
}
