// Package table holds the in-memory tabular model shared by every file format.
//
// A Table is an ordered list of column names plus rows of cells. A cell is
// always one of:
//   - nil (missing)
//   - string
//   - int64
//   - float64
//
// Format backends convert to and from this representation so the cleaning
// pipeline never sees format-specific types.
package table

import (
	"fmt"
	"math"
)

// Table is a rectangular dataset with named columns.
type Table struct {
	Columns []string
	Rows    [][]any
}

// New creates an empty table with the given columns.
func New(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Append adds a row. The row must have one cell per column.
func (t *Table) Append(row ...any) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(row), len(t.Columns))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Column returns a copy of the cells of the named column.
func (t *Table) Column(column string) ([]any, bool) {
	idx := t.Index(column)
	if idx < 0 {
		return nil, false
	}
	out := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, true
}

// Equal reports whether two tables have the same columns and cells.
// Float cells compare with exact equality; NaN never appears in a table.
func Equal(a, b *Table) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Columns) != len(b.Columns) || len(a.Rows) != len(b.Rows) {
		return false
	}
	for i := range a.Columns {
		if a.Columns[i] != b.Columns[i] {
			return false
		}
	}
	for i := range a.Rows {
		if len(a.Rows[i]) != len(b.Rows[i]) {
			return false
		}
		for j := range a.Rows[i] {
			if !cellEqual(a.Rows[i][j], b.Rows[i][j]) {
				return false
			}
		}
	}
	return true
}

func cellEqual(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && (av == bv || (math.IsNaN(av) && math.IsNaN(bv)))
	default:
		return false
	}
}

// Normalize converts a loosely typed cell into one of the supported cell
// types. Integers of any width become int64, float32 becomes float64, and
// NaN becomes nil.
func Normalize(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case bool:
		if x {
			return int64(1), nil
		}
		return int64(0), nil
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case float32:
		return Normalize(float64(x))
	case float64:
		if math.IsNaN(x) {
			return nil, nil
		}
		return x, nil
	default:
		return nil, fmt.Errorf("unsupported cell type %T", v)
	}
}
