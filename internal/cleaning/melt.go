package cleaning

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/danieljhkim/lifeexp/internal/table"
)

// DefaultKeyColumn is the composite key column of the Eurostat dataset.
const DefaultKeyColumn = `unit,sex,age,geo\time`

var (
	// ErrMissingKeyColumn indicates the raw table has no key column.
	ErrMissingKeyColumn = errors.New("key column not found")

	// ErrMalformedKey indicates a key that does not split into four fields.
	ErrMalformedKey = errors.New("malformed composite key")
)

// MalformedKeyError reports a key that failed to split. Row is the
// zero-based source row (-1 when unknown) and Year the column being melted.
type MalformedKeyError struct {
	Row    int
	Year   string
	Key    string
	Fields int
}

func (e *MalformedKeyError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("%s: %q has %d fields, expected 4", ErrMalformedKey, e.Key, e.Fields)
	}
	return fmt.Sprintf("%s at row %d, column %q: %q has %d fields, expected 4",
		ErrMalformedKey, e.Row, e.Year, e.Key, e.Fields)
}

func (e *MalformedKeyError) Unwrap() error {
	return ErrMalformedKey
}

// Melted is one (key, year label, cell) triple produced by Melt. Row is the
// index of the source row it came from.
type Melted struct {
	Row   int
	Key   string
	Year  string
	Value any
}

// Melt holds keyColumn fixed and turns every other column into rows. Rows
// are emitted column by column: all source rows for the first year column,
// then all for the next. The result has rows × (columns − 1) entries.
func Melt(t *table.Table, keyColumn string) ([]Melted, error) {
	keyIdx := t.Index(keyColumn)
	if keyIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingKeyColumn, keyColumn)
	}

	out := make([]Melted, 0, t.Len()*(len(t.Columns)-1))
	for col, label := range t.Columns {
		if col == keyIdx {
			continue
		}
		for r, row := range t.Rows {
			out = append(out, Melted{
				Row:   r,
				Key:   keyString(cellAt(row, keyIdx)),
				Year:  label,
				Value: cellAt(row, col),
			})
		}
	}
	return out, nil
}

// Key is the composite key split into its four fields.
type Key struct {
	Unit   string
	Sex    string
	Age    string
	Region string
}

// String joins the fields back into the composite form.
func (k Key) String() string {
	return k.Unit + "," + k.Sex + "," + k.Age + "," + k.Region
}

// SplitKey splits a composite key into exactly four comma-separated fields.
func SplitKey(key string) (Key, error) {
	parts := strings.Split(key, ",")
	if len(parts) != 4 {
		return Key{}, &MalformedKeyError{Row: -1, Key: key, Fields: len(parts)}
	}
	return Key{Unit: parts[0], Sex: parts[1], Age: parts[2], Region: parts[3]}, nil
}

// ParseYear coerces a year label or cell to an integer. Integral floats
// such as "2019.0" are accepted; anything else yields nil.
func ParseYear(v any) *int64 {
	switch x := v.(type) {
	case int64:
		return &x
	case float64:
		return integral(x)
	case string:
		s := strings.TrimSpace(x)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return &n
		}
		if f, ok := parseDecimal(s); ok {
			return integral(f)
		}
	}
	return nil
}

func integral(f float64) *int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64/2 {
		return nil
	}
	n := int64(f)
	return &n
}

// ParseValue coerces a cell to a float. Missing, empty, non-numeric and NaN
// cells report ok == false.
func ParseValue(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x)
	case int64:
		return float64(x), true
	case string:
		f, ok := parseDecimal(strings.TrimSpace(x))
		if !ok || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// parseDecimal parses a decimal float. Hex literals are rejected; values
// out of float64 range saturate to ±Inf or zero.
func parseDecimal(s string) (float64, bool) {
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

func keyString(v any) string {
	if v == nil {
		return ""
	}
	return table.FormatCell(v)
}

func cellAt(row []any, i int) any {
	if i < len(row) {
		return row[i]
	}
	return nil
}
