// Package engine provides the core operations of lifeexp.
//
// The engine package sits between the CLI and the lower-level packages. It
// resolves format strategies, loads and saves datasets, runs the cleaning
// pipeline, and records what happened.
//
// Key components:
//   - Engine: main orchestrator holding injected dependencies
//   - Clean: raw wide table to a country's long table
//   - Convert: re-encode a dataset in another format
//   - Inspect: summarize a dataset without changing it
package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/danieljhkim/lifeexp/internal/clock"
	"github.com/danieljhkim/lifeexp/internal/config"
	"github.com/danieljhkim/lifeexp/internal/formats"
	"github.com/danieljhkim/lifeexp/internal/fsops"
	"github.com/danieljhkim/lifeexp/internal/hash"
	"github.com/danieljhkim/lifeexp/internal/logging"
	"github.com/danieljhkim/lifeexp/internal/metrics"
	"github.com/danieljhkim/lifeexp/internal/state"
	"github.com/danieljhkim/lifeexp/internal/table"
)

// Engine orchestrates all lifeexp operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs          fsops.FS
	resolver    *formats.Resolver
	hasher      hash.Hasher
	clock       clock.Clock
	configPaths config.Paths
	runs        state.RunStore
	logger      *slog.Logger
	metrics     *metrics.Recorder
}

// New creates a new Engine with the given dependencies. A nil run store
// disables run history, a nil logger discards log output and a nil
// recorder disables metrics.
func New(
	fs fsops.FS,
	hasher hash.Hasher,
	clk clock.Clock,
	paths config.Paths,
	runs state.RunStore,
	logger *slog.Logger,
	rec *metrics.Recorder,
) *Engine {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Engine{
		fs:          fs,
		resolver:    formats.NewResolver(fs),
		hasher:      hasher,
		clock:       clk,
		configPaths: paths,
		runs:        runs,
		logger:      logger,
		metrics:     rec,
	}
}

// Metrics returns the recorder the engine reports to, possibly nil.
func (e *Engine) Metrics() *metrics.Recorder {
	return e.metrics
}

// resolvePair resolves the input and output strategies before any I/O.
func (e *Engine) resolvePair(input, output string) (formats.Strategy, formats.Strategy, error) {
	in, err := e.resolver.Resolve(input)
	if err != nil {
		return nil, nil, fmt.Errorf("input %s: %w", input, err)
	}
	out, err := e.resolver.Resolve(output)
	if err != nil {
		return nil, nil, fmt.Errorf("output %s: %w", output, err)
	}
	if filepath.Clean(input) == filepath.Clean(output) {
		return nil, nil, fmt.Errorf("%w: input and output are the same file: %s", ErrValidation, input)
	}
	return in, out, nil
}

// load reads path with strategy s.
func (e *Engine) load(ctx context.Context, s formats.Strategy, path string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := s.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %w", ErrInputMissing, path, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return t, nil
}

// store writes t to path with strategy s and returns the SHA-256 of the
// written file.
func (e *Engine) store(ctx context.Context, s formats.Strategy, t *table.Table, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.Save(t, path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}

	digest, err := e.hasher.HashFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return digest, nil
}

// recordRun saves rec to the run history and reports whether the previous
// run that wrote the same output produced identical content. History
// failures are logged and otherwise ignored.
func (e *Engine) recordRun(log *slog.Logger, rec *state.RunRecord) (previous string, unchanged bool) {
	if e.runs == nil {
		return "", false
	}

	prev, err := e.runs.Latest(rec.Output)
	switch {
	case err == nil:
		previous = prev.RunID
		unchanged = prev.Checksum == rec.Checksum
		if unchanged {
			log.Info("output unchanged since previous run", "previous_run", prev.RunID)
		}
	case !errors.Is(err, fs.ErrNotExist):
		log.Warn("run history unavailable", "error", err)
	}

	if err := e.runs.Save(rec); err != nil {
		log.Warn("run not recorded", "error", err)
	}
	return previous, unchanged
}
