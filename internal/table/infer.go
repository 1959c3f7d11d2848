package table

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the inferred type of a column.
type Kind int

const (
	KindEmpty Kind = iota // every cell missing
	KindInt
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "empty"
	}
}

// FromStrings builds a table from a header and text records, inferring one
// type per column: all integers become int64, all numbers become float64,
// anything else stays a string. Empty cells are missing in every case.
// Short records are padded with missing cells.
func FromStrings(header []string, records [][]string) *Table {
	t := New(header...)
	for i := range t.Columns {
		t.Columns[i] = strings.TrimSpace(t.Columns[i])
	}

	kinds := make([]Kind, len(header))
	for col := range header {
		kinds[col] = inferColumn(records, col)
	}

	t.Rows = make([][]any, 0, len(records))
	for _, rec := range records {
		row := make([]any, len(header))
		for col := range header {
			if col >= len(rec) {
				continue
			}
			row[col] = convert(rec[col], kinds[col])
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func inferColumn(records [][]string, col int) Kind {
	kind := KindEmpty
	for _, rec := range records {
		if col >= len(rec) || rec[col] == "" {
			continue
		}
		switch cellKind(rec[col]) {
		case KindString:
			return KindString
		case KindFloat:
			kind = KindFloat
		case KindInt:
			if kind == KindEmpty {
				kind = KindInt
			}
		}
	}
	return kind
}

func cellKind(s string) Kind {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return KindInt
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) {
		return KindFloat
	}
	return KindString
}

func convert(s string, kind Kind) any {
	if s == "" {
		return nil
	}
	switch kind {
	case KindInt:
		n, _ := strconv.ParseInt(s, 10, 64)
		return n
	case KindFloat:
		f, _ := strconv.ParseFloat(s, 64)
		return f
	default:
		return s
	}
}

// KindOf returns the kind of the non-missing cells in column col. A column
// mixing ints and floats is KindFloat; any other mix is KindString.
func (t *Table) KindOf(col int) Kind {
	kind := KindEmpty
	for _, row := range t.Rows {
		switch row[col].(type) {
		case nil:
		case int64:
			if kind == KindEmpty {
				kind = KindInt
			}
		case float64:
			if kind == KindEmpty || kind == KindInt {
				kind = KindFloat
			}
		default:
			return KindString
		}
	}
	return kind
}

// FormatCell renders a cell as text. Missing cells render empty and floats
// always carry a decimal point so they re-infer as floats.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return FormatFloat(x)
	default:
		return ""
	}
}

// FormatFloat formats f in the shortest form that round-trips, keeping a
// trailing ".0" for integral values.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if math.IsInf(f, 0) || strings.ContainsAny(s, ".eE") {
		return s
	}
	return s + ".0"
}
