package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/lifeexp/internal/config"
	"github.com/danieljhkim/lifeexp/internal/formats"
	"github.com/danieljhkim/lifeexp/internal/table"
)

func TestConvert_RoundTrip(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()

	cleaned, err := env.engine.Clean(ctx, &CleanRequest{})
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	for _, ext := range []string{"parquet", "xlsx", "pkl", "json", "tsv"} {
		t.Run(ext, func(t *testing.T) {
			converted := filepath.Join(env.dataDir, "PT."+ext)
			result, err := env.engine.Convert(ctx, &ConvertRequest{Input: cleaned.Output, Output: converted})
			if err != nil {
				t.Fatalf("Convert failed: %v", err)
			}
			if result.Rows != 4 || result.Columns != 6 {
				t.Errorf("converted %d rows x %d columns, want 4 x 6", result.Rows, result.Columns)
			}

			back := filepath.Join(env.dataDir, "PT_from_"+ext+".csv")
			if _, err := env.engine.Convert(ctx, &ConvertRequest{Input: converted, Output: back}); err != nil {
				t.Fatalf("Convert back failed: %v", err)
			}
			if got := readFile(t, back); got != cleanedPT {
				t.Errorf("round trip through %s changed data:\n%s", ext, got)
			}
		})
	}
}

func TestConvert_PreservesTable(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()

	input := filepath.Join(env.dataDir, config.DefaultInputName)
	output := filepath.Join(env.dataDir, "raw.parquet")
	if _, err := env.engine.Convert(ctx, &ConvertRequest{Input: input, Output: output}); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	want, err := formats.Resolve(input)
	if err != nil {
		t.Fatal(err)
	}
	wantTable, err := want.Load(input)
	if err != nil {
		t.Fatal(err)
	}
	got, err := formats.Resolve(output)
	if err != nil {
		t.Fatal(err)
	}
	gotTable, err := got.Load(output)
	if err != nil {
		t.Fatal(err)
	}
	if !table.Equal(wantTable, gotTable) {
		t.Errorf("parquet copy differs:\n got %+v\nwant %+v", gotTable, wantTable)
	}
}

func TestConvert_Validation(t *testing.T) {
	env := newTestEngine(t)

	_, err := env.engine.Convert(context.Background(), &ConvertRequest{Input: "a.csv"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}

	_, err = env.engine.Convert(context.Background(), &ConvertRequest{Input: "a.csv", Output: "b.doc"})
	if !errors.Is(err, formats.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}
