package formats

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/danieljhkim/lifeexp/internal/table"
)

const snapshotVersion = 1

// snapshotCodec serves the .pkl/.pickle extensions with a gob-encoded
// binary snapshot of the table. Cell types survive the round trip exactly.
type snapshotCodec struct{}

type snapshot struct {
	Version int
	Columns []string
	Rows    [][]snapshotCell
}

type cellKind uint8

const (
	cellMissing cellKind = iota
	cellString
	cellInt
	cellFloat
)

type snapshotCell struct {
	Kind  cellKind
	Str   string
	Int   int64
	Float float64
}

func (snapshotCodec) encode(w io.Writer, t *table.Table) error {
	snap := snapshot{
		Version: snapshotVersion,
		Columns: t.Columns,
		Rows:    make([][]snapshotCell, len(t.Rows)),
	}
	for r, row := range t.Rows {
		cells := make([]snapshotCell, len(t.Columns))
		for i := range cells {
			switch x := cellAt(row, i).(type) {
			case nil:
			case string:
				cells[i] = snapshotCell{Kind: cellString, Str: x}
			case int64:
				cells[i] = snapshotCell{Kind: cellInt, Int: x}
			case float64:
				cells[i] = snapshotCell{Kind: cellFloat, Float: x}
			default:
				return fmt.Errorf("row %d column %q: unsupported cell type %T", r, t.Columns[i], x)
			}
		}
		snap.Rows[r] = cells
	}
	return gob.NewEncoder(w).Encode(&snap)
}

func (snapshotCodec) decode(data []byte) (*table.Table, error) {
	var snap snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return nil, err
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	t := table.New(snap.Columns...)
	t.Rows = make([][]any, 0, len(snap.Rows))
	for r, cells := range snap.Rows {
		if len(cells) != len(t.Columns) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", r, len(cells), len(t.Columns))
		}
		row := make([]any, len(cells))
		for i, c := range cells {
			switch c.Kind {
			case cellMissing:
			case cellString:
				row[i] = c.Str
			case cellInt:
				row[i] = c.Int
			case cellFloat:
				row[i] = c.Float
			default:
				return nil, fmt.Errorf("row %d: unknown cell kind %d", r, c.Kind)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
