package table

import (
	"math"
	"reflect"
	"testing"
)

func TestFromStrings_InfersColumnKinds(t *testing.T) {
	header := []string{"unit", " 2019 ", "year", "value", "empty"}
	records := [][]string{
		{"YR", "81.2 e", "2019", "81", ""},
		{"YR", "80.1", "", "80.5", ""},
		{"YR"},
	}

	got := FromStrings(header, records)

	wantCols := []string{"unit", "2019", "year", "value", "empty"}
	if !reflect.DeepEqual(got.Columns, wantCols) {
		t.Fatalf("Columns = %v, want %v", got.Columns, wantCols)
	}

	want := [][]any{
		{"YR", "81.2 e", int64(2019), 81.0, nil},
		{"YR", "80.1", nil, 80.5, nil},
		{"YR", nil, nil, nil, nil},
	}
	if !reflect.DeepEqual(got.Rows, want) {
		t.Errorf("Rows = %#v, want %#v", got.Rows, want)
	}
}

func TestKindOf(t *testing.T) {
	tbl := New("ints", "mixed", "text", "none")
	_ = tbl.Append(int64(1), int64(1), "a", nil)
	_ = tbl.Append(int64(2), 2.5, int64(3), nil)

	tests := []struct {
		col  int
		want Kind
	}{
		{0, KindInt},
		{1, KindFloat},
		{2, KindString},
		{3, KindEmpty},
	}
	for _, tt := range tests {
		if got := tbl.KindOf(tt.col); got != tt.want {
			t.Errorf("KindOf(%d) = %v, want %v", tt.col, got, tt.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{81.2, "81.2"},
		{81, "81.0"},
		{-3, "-3.0"},
		{0.000001, "0.000001"},
		{math.Inf(1), "+Inf"},
	}
	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAppend_RejectsWrongWidth(t *testing.T) {
	tbl := New("a", "b")
	if err := tbl.Append("x"); err == nil {
		t.Error("Append with too few cells should fail")
	}
	if err := tbl.Append("x", "y"); err != nil {
		t.Errorf("Append failed: %v", err)
	}
	if tbl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tbl.Len())
	}
}

func TestColumn(t *testing.T) {
	tbl := New("region", "value")
	_ = tbl.Append("PT", 81.2)
	_ = tbl.Append("SK", 77.8)

	got, ok := tbl.Column("region")
	if !ok {
		t.Fatal("Column(region) not found")
	}
	if !reflect.DeepEqual(got, []any{"PT", "SK"}) {
		t.Errorf("Column(region) = %v", got)
	}
	if _, ok := tbl.Column("geo"); ok {
		t.Error("Column(geo) should not be found")
	}
}

func TestEqual(t *testing.T) {
	a := New("x")
	_ = a.Append(int64(1))
	b := New("x")
	_ = b.Append(int64(1))
	c := New("x")
	_ = c.Append(1.0)

	if !Equal(a, b) {
		t.Error("identical tables should be equal")
	}
	if Equal(a, c) {
		t.Error("int64 and float64 cells should not be equal")
	}
	if Equal(a, nil) {
		t.Error("table should not equal nil")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      any
		want    any
		wantErr bool
	}{
		{int32(5), int64(5), false},
		{float32(1.5), 1.5, false},
		{math.NaN(), nil, false},
		{true, int64(1), false},
		{[]byte("PT"), "PT", false},
		{struct{}{}, nil, true},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Normalize(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Normalize(%v) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
