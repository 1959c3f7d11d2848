package cleaning

import (
	"errors"

	"github.com/danieljhkim/lifeexp/internal/table"
)

// DefaultCountry is the region kept when no country is given.
const DefaultCountry = "PT"

// Columns is the fixed output schema, in order.
var Columns = []string{"unit", "sex", "age", "region", "year", "value"}

// Record is one cleaned long-format row. Value is never missing; Year is nil
// when the year label is not an integer.
type Record struct {
	Unit   string  `json:"unit"`
	Sex    string  `json:"sex"`
	Age    string  `json:"age"`
	Region string  `json:"region"`
	Year   *int64  `json:"year"`
	Value  float64 `json:"value"`
}

// Records is a cleaned long table.
type Records []Record

// Table converts the records to the six-column output table.
func (rs Records) Table() *table.Table {
	t := table.New(Columns...)
	t.Rows = make([][]any, 0, len(rs))
	for _, r := range rs {
		var year any
		if r.Year != nil {
			year = *r.Year
		}
		t.Rows = append(t.Rows, []any{r.Unit, r.Sex, r.Age, r.Region, year, r.Value})
	}
	return t
}

// Stats counts rows at each stage of a run.
type Stats struct {
	Melted       int `json:"melted"`
	MissingValue int `json:"missing_value"`
	InvalidYear  int `json:"invalid_year"`
	OtherRegion  int `json:"other_region"`
	Kept         int `json:"kept"`
}

// Result is the output of Clean.
type Result struct {
	Country string  `json:"country"`
	Records Records `json:"records"`
	Stats   Stats   `json:"stats"`
}

type options struct {
	country    string
	keyColumn  string
	strictYear bool
}

// Option configures Clean.
type Option func(*options)

// WithCountry sets the region to keep. Matching is exact and case-sensitive.
func WithCountry(country string) Option {
	return func(o *options) {
		o.country = country
	}
}

// WithKeyColumn overrides the composite key column name.
func WithKeyColumn(name string) Option {
	return func(o *options) {
		o.keyColumn = name
	}
}

// WithStrictYear drops rows whose year is not an integer instead of keeping
// them with a nil Year.
func WithStrictYear(strict bool) Option {
	return func(o *options) {
		o.strictYear = strict
	}
}

// Clean melts, splits, coerces, drops and filters a raw wide table.
// Surviving records keep melt order.
func Clean(t *table.Table, opts ...Option) (*Result, error) {
	if t == nil {
		return nil, errors.New("nil table")
	}
	o := options{country: DefaultCountry, keyColumn: DefaultKeyColumn}
	for _, opt := range opts {
		opt(&o)
	}

	melted, err := Melt(t, o.keyColumn)
	if err != nil {
		return nil, err
	}

	res := &Result{Country: o.country, Records: Records{}}
	res.Stats.Melted = len(melted)

	for _, m := range melted {
		key, err := SplitKey(m.Key)
		if err != nil {
			var mk *MalformedKeyError
			if errors.As(err, &mk) {
				mk.Row = m.Row
				mk.Year = m.Year
			}
			return nil, err
		}

		value, ok := ParseValue(m.Value)
		if !ok {
			res.Stats.MissingValue++
			continue
		}

		year := ParseYear(m.Year)
		if year == nil && o.strictYear {
			res.Stats.InvalidYear++
			continue
		}

		if key.Region != o.country {
			res.Stats.OtherRegion++
			continue
		}

		res.Records = append(res.Records, Record{
			Unit:   key.Unit,
			Sex:    key.Sex,
			Age:    key.Age,
			Region: key.Region,
			Year:   year,
			Value:  value,
		})
	}
	res.Stats.Kept = len(res.Records)
	return res, nil
}
