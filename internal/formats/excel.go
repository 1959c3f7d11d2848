package formats

import (
	"bytes"
	"errors"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/danieljhkim/lifeexp/internal/table"
)

// excelCodec reads the first sheet of a workbook and writes a single-sheet
// workbook. Row 1 holds the header.
type excelCodec struct{}

func (excelCodec) decode(data []byte) (*table.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return table.New(), nil
	}
	return table.FromStrings(rows[0], rows[1:]), nil
}

func (excelCodec) encode(w io.Writer, t *table.Table) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()
	sheet := f.GetSheetName(0)

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	values := make([]any, len(t.Columns))
	for r, row := range t.Rows {
		for i := range values {
			values[i] = cellAt(row, i)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

// cellAt returns row[i], or nil when the row is short.
func cellAt(row []any, i int) any {
	if i < len(row) {
		return row[i]
	}
	return nil
}
