package formats

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/danieljhkim/lifeexp/internal/table"
)

// columnOrderKey stores the table's column order in the file metadata.
// Parquet groups order their leaves by name, which would otherwise reorder
// columns such as the year labels of a wide table.
const columnOrderKey = "lifeexp.columns"

const parquetReadBatch = 256

// parquetCodec writes one optional leaf per column. The leaf type follows
// the column's cells: int64, double, or UTF-8 string.
type parquetCodec struct{}

func (parquetCodec) encode(w io.Writer, t *table.Table) error {
	if len(t.Columns) == 0 {
		return errors.New("cannot write a table with no columns")
	}

	group := parquet.Group{}
	kinds := make([]table.Kind, len(t.Columns))
	for i, name := range t.Columns {
		if _, dup := group[name]; dup {
			return fmt.Errorf("duplicate column %q", name)
		}
		kinds[i] = t.KindOf(i)
		group[name] = parquet.Optional(parquetLeaf(kinds[i]))
	}
	schema := parquet.NewSchema("table", group)

	// leaf index -> table column index
	leaves := schema.Columns()
	order := make([]int, len(leaves))
	for leaf, path := range leaves {
		order[leaf] = t.Index(path[0])
	}

	columns, err := json.Marshal(t.Columns)
	if err != nil {
		return err
	}

	writer := parquet.NewWriter(w, schema, parquet.KeyValueMetadata(columnOrderKey, string(columns)))

	rows := make([]parquet.Row, 0, len(t.Rows))
	for _, src := range t.Rows {
		row := make(parquet.Row, len(order))
		for leaf, col := range order {
			row[leaf] = parquetValue(cellAt(src, col), kinds[col], leaf)
		}
		rows = append(rows, row)
	}

	if _, err := writer.WriteRows(rows); err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}

func parquetLeaf(kind table.Kind) parquet.Node {
	switch kind {
	case table.KindInt:
		return parquet.Int(64)
	case table.KindFloat:
		return parquet.Leaf(parquet.DoubleType)
	default:
		return parquet.String()
	}
}

func parquetValue(cell any, kind table.Kind, leaf int) parquet.Value {
	if cell == nil {
		return parquet.NullValue().Level(0, 0, leaf)
	}
	var v parquet.Value
	switch kind {
	case table.KindInt:
		v = parquet.Int64Value(cell.(int64))
	case table.KindFloat:
		switch x := cell.(type) {
		case int64:
			v = parquet.DoubleValue(float64(x))
		case float64:
			v = parquet.DoubleValue(x)
		}
	default:
		v = parquet.ByteArrayValue([]byte(table.FormatCell(cell)))
	}
	return v.Level(0, 1, leaf)
}

func (parquetCodec) decode(data []byte) (*table.Table, error) {
	f, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	leaves := f.Schema().Columns()
	names := make([]string, len(leaves))
	for i, path := range leaves {
		if len(path) != 1 {
			return nil, fmt.Errorf("nested column %v is not supported", path)
		}
		names[i] = path[0]
	}

	columns := names
	if meta, ok := f.Lookup(columnOrderKey); ok {
		var stored []string
		if err := json.Unmarshal([]byte(meta), &stored); err != nil {
			return nil, fmt.Errorf("invalid column order metadata: %w", err)
		}
		if len(stored) != len(names) {
			return nil, fmt.Errorf("column order metadata lists %d columns, schema has %d", len(stored), len(names))
		}
		columns = stored
	}

	t := table.New(columns...)
	position := make([]int, len(names))
	for leaf, name := range names {
		position[leaf] = t.Index(name)
		if position[leaf] < 0 {
			return nil, fmt.Errorf("column %q missing from column order metadata", name)
		}
	}

	buf := make([]parquet.Row, parquetReadBatch)
	for _, rg := range f.RowGroups() {
		if err := readRowGroup(rg, buf, position, t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func readRowGroup(rg parquet.RowGroup, buf []parquet.Row, position []int, t *table.Table) error {
	rows := rg.Rows()
	defer func() {
		_ = rows.Close()
	}()

	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			out := make([]any, len(t.Columns))
			for _, v := range row {
				out[position[v.Column()]] = parquetCell(v)
			}
			t.Rows = append(t.Rows, out)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
}

func parquetCell(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		if v.Boolean() {
			return int64(1)
		}
		return int64(0)
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	default:
		return string(v.ByteArray())
	}
}
