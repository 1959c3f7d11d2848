package engine

import (
	"context"
	"fmt"
)

// DefaultPreviewRows is the preview size used when InspectRequest.Limit is
// negative.
const DefaultPreviewRows = 5

// Inspect loads a dataset and reports its format, columns, row count, and
// first rows.
func (e *Engine) Inspect(ctx context.Context, req *InspectRequest) (*InspectResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("%w: path is required", ErrValidation)
	}

	s, err := e.resolver.Resolve(req.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Path, err)
	}

	t, err := e.load(ctx, s, req.Path)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit < 0 {
		limit = DefaultPreviewRows
	}
	if limit > t.Len() {
		limit = t.Len()
	}

	columns := make([]ColumnInfo, len(t.Columns))
	for i, name := range t.Columns {
		columns[i] = ColumnInfo{Name: name, Kind: t.KindOf(i).String()}
	}

	preview := make([][]any, limit)
	copy(preview, t.Rows[:limit])

	return &InspectResult{
		Path:    req.Path,
		Format:  s.Format(),
		Columns: columns,
		Rows:    t.Len(),
		Preview: preview,
	}, nil
}
