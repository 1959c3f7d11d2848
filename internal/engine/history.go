package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/lifeexp/internal/state"
)

// History lists recorded runs, most recent first.
func (e *Engine) History(ctx context.Context, req *HistoryRequest) (*HistoryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := &HistoryResult{Runs: []*state.RunRecord{}}
	if e.runs == nil {
		return result, nil
	}

	records, err := e.runs.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	for _, rec := range records {
		if req.Output != "" && filepath.Clean(rec.Output) != filepath.Clean(req.Output) {
			continue
		}
		result.Runs = append(result.Runs, rec)
		if req.Limit > 0 && len(result.Runs) == req.Limit {
			break
		}
	}
	return result, nil
}
