package formats

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/danieljhkim/lifeexp/internal/table"
)

// delimitedCodec handles CSV and TSV. The first record is the header; no
// index column is written.
type delimitedCodec struct {
	comma rune
}

func (c delimitedCodec) decode(data []byte) (*table.Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = c.comma
	r.FieldsPerRecord = -1
	if c.comma == '\t' {
		// Eurostat TSV cells are never quoted but may contain stray quotes
		r.LazyQuotes = true
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return table.New(), nil
	}
	return table.FromStrings(records[0], records[1:]), nil
}

func (c delimitedCodec) encode(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	cw.Comma = c.comma

	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = table.FormatCell(row[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
