package formats

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/danieljhkim/lifeexp/internal/table"
)

// jsonCodec writes one JSON object per line with keys in column order.
// It reads either JSON Lines or a single top-level array of objects. Keys
// become columns in order of first appearance; absent keys are missing.
//
// JSON has no header, so a table without rows reloads without columns.
// Infinite and NaN floats have no JSON encoding and fail the save.
type jsonCodec struct{}

func (jsonCodec) encode(w io.Writer, t *table.Table) error {
	bw := bufio.NewWriter(w)

	keys := make([][]byte, len(t.Columns))
	for i, c := range t.Columns {
		k, err := json.Marshal(c)
		if err != nil {
			return err
		}
		keys[i] = k
	}

	for r, row := range t.Rows {
		bw.WriteByte('{')
		for i, key := range keys {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.Write(key)
			bw.WriteByte(':')
			val, err := jsonCellValue(cellAt(row, i))
			if err != nil {
				return fmt.Errorf("row %d column %q: %w", r, t.Columns[i], err)
			}
			bw.Write(val)
		}
		bw.WriteString("}\n")
	}
	return bw.Flush()
}

func jsonCellValue(cell any) ([]byte, error) {
	switch x := cell.(type) {
	case nil:
		return []byte("null"), nil
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return nil, fmt.Errorf("%v is not representable in JSON", x)
		}
		return []byte(table.FormatFloat(x)), nil
	default:
		return json.Marshal(x)
	}
}

type jsonRecord struct {
	keys   []string
	values []any
}

func (jsonCodec) decode(data []byte) (*table.Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var records []jsonRecord
	tok, err := dec.Token()
	switch {
	case errors.Is(err, io.EOF):
		return table.New(), nil
	case err != nil:
		return nil, err
	case tok == json.Delim('['):
		for dec.More() {
			if err := expectDelim(dec, '{'); err != nil {
				return nil, err
			}
			rec, err := readObject(dec)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		if err := expectDelim(dec, ']'); err != nil {
			return nil, err
		}
	case tok == json.Delim('{'):
		for {
			rec, err := readObject(dec)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)

			err = expectDelim(dec, '{')
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("expected an array or object, got %v", tok)
	}

	return recordsToTable(records), nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// readObject reads the members of an object whose opening brace has been
// consumed, through its closing brace.
func readObject(dec *json.Decoder) (jsonRecord, error) {
	var rec jsonRecord
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return rec, err
		}
		key, ok := tok.(string)
		if !ok {
			return rec, fmt.Errorf("expected object key, got %v", tok)
		}

		tok, err = dec.Token()
		if err != nil {
			return rec, err
		}
		val, err := jsonScalar(tok)
		if err != nil {
			return rec, fmt.Errorf("field %q: %w", key, err)
		}
		rec.keys = append(rec.keys, key)
		rec.values = append(rec.values, val)
	}
	return rec, expectDelim(dec, '}')
}

func jsonScalar(tok json.Token) (any, error) {
	switch x := tok.(type) {
	case nil:
		return nil, nil
	case string:
		return x, nil
	case bool:
		return table.Normalize(x)
	case json.Number:
		s := x.String()
		if !strings.ContainsAny(s, ".eE") {
			if n, err := x.Int64(); err == nil {
				return n, nil
			}
		}
		f, err := x.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	case json.Delim:
		return nil, fmt.Errorf("nested %v values are not supported", x)
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// recordsToTable aligns records on the union of their keys. Columns holding
// both integers and floats are promoted to floats.
func recordsToTable(records []jsonRecord) *table.Table {
	t := table.New()
	index := make(map[string]int)
	for _, rec := range records {
		for _, k := range rec.keys {
			if _, ok := index[k]; !ok {
				index[k] = len(t.Columns)
				t.Columns = append(t.Columns, k)
			}
		}
	}

	t.Rows = make([][]any, 0, len(records))
	for _, rec := range records {
		row := make([]any, len(t.Columns))
		for i, k := range rec.keys {
			row[index[k]] = rec.values[i]
		}
		t.Rows = append(t.Rows, row)
	}

	for col := range t.Columns {
		if t.KindOf(col) != table.KindFloat {
			continue
		}
		for _, row := range t.Rows {
			if n, ok := row[col].(int64); ok {
				row[col] = float64(n)
			}
		}
	}
	return t
}
