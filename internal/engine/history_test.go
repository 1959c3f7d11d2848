package engine

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/lifeexp/internal/clock"
	"github.com/danieljhkim/lifeexp/internal/config"
	"github.com/danieljhkim/lifeexp/internal/fsops"
	"github.com/danieljhkim/lifeexp/internal/hash"
	"github.com/danieljhkim/lifeexp/internal/state"
)

func TestHistory(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()

	pt, err := env.engine.Clean(ctx, &CleanRequest{})
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	if _, err := env.engine.Clean(ctx, &CleanRequest{Country: "SK"}); err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	if _, err := env.engine.Clean(ctx, &CleanRequest{Country: "SK", DryRun: true}); err != nil {
		t.Fatalf("Clean failed: %v", err)
	}
	converted := filepath.Join(env.dataDir, "PT.parquet")
	if _, err := env.engine.Convert(ctx, &ConvertRequest{Input: pt.Output, Output: converted}); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	t.Run("all runs, most recent first", func(t *testing.T) {
		result, err := env.engine.History(ctx, &HistoryRequest{})
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(result.Runs) != 3 {
			t.Fatalf("expected 3 recorded runs (dry run excluded), got %d", len(result.Runs))
		}
		if result.Runs[0].Operation != state.OpConvert || result.Runs[0].Output != converted {
			t.Errorf("most recent run = %+v", result.Runs[0])
		}
		if result.Runs[2].RunID != pt.RunID {
			t.Errorf("oldest run = %s, want %s", result.Runs[2].RunID, pt.RunID)
		}
		if result.Runs[2].Stats == nil || result.Runs[2].Stats.Kept != 4 {
			t.Errorf("clean run stats = %+v", result.Runs[2].Stats)
		}
	})

	t.Run("filtered by output", func(t *testing.T) {
		result, err := env.engine.History(ctx, &HistoryRequest{Output: pt.Output})
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(result.Runs) != 1 || result.Runs[0].RunID != pt.RunID {
			t.Errorf("runs for %s = %+v", pt.Output, result.Runs)
		}
	})

	t.Run("limit", func(t *testing.T) {
		result, err := env.engine.History(ctx, &HistoryRequest{Limit: 2})
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(result.Runs) != 2 {
			t.Errorf("expected 2 runs, got %d", len(result.Runs))
		}
	})
}

func TestHistory_WithoutRunStore(t *testing.T) {
	eng := New(fsops.NewRealFS(), hash.NewFakeHasher(), &clock.RealClock{}, *config.DefaultPaths(t.TempDir()), nil, nil, nil)

	result, err := eng.History(context.Background(), &HistoryRequest{})
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if result.Runs == nil || len(result.Runs) != 0 {
		t.Errorf("expected empty run list, got %v", result.Runs)
	}
}
