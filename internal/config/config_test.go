package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lifeexp.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		path := writeConfig(t, `
data_dir: /srv/eurostat
input: raw.tsv
country: SK
output_format: parquet
strict_year: true
metrics_file: /var/lib/node_exporter/lifeexp.prom
logging:
  level: debug
  format: json
`)
		cfg, err := Load(path, false)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if cfg.DataDir != "/srv/eurostat" || cfg.Country != "SK" || cfg.OutputFormat != "parquet" {
			t.Errorf("unexpected config: %+v", cfg)
		}
		if !cfg.StrictYear {
			t.Error("StrictYear should be true")
		}
		if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
			t.Errorf("unexpected logging config: %+v", cfg.Logging)
		}
		if got := cfg.Paths().Input; got != filepath.Join("/srv/eurostat", "raw.tsv") {
			t.Errorf("Paths().Input = %s", got)
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := writeConfig(t, "country: DE\n")
		cfg, err := Load(path, false)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if cfg.Country != "DE" {
			t.Errorf("Country = %s, want DE", cfg.Country)
		}
		if cfg.DataDir != DefaultDataDir {
			t.Errorf("DataDir = %s, want default", cfg.DataDir)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("Logging.Level = %s, want info", cfg.Logging.Level)
		}
	})

	t.Run("missing optional file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), true)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Country != "PT" {
			t.Errorf("Country = %s, want PT", cfg.Country)
		}
	})

	t.Run("missing required file fails", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), false)
		if err == nil {
			t.Fatal("expected error for missing config file")
		}
	})

	t.Run("unknown key fails", func(t *testing.T) {
		path := writeConfig(t, "contry: PT\n")
		_, err := Load(path, false)
		if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
			t.Errorf("expected parse error, got %v", err)
		}
	})

	t.Run("invalid log level fails", func(t *testing.T) {
		path := writeConfig(t, "logging:\n  level: loud\n")
		if _, err := Load(path, false); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestConfig_PathsInputWithDirectory(t *testing.T) {
	cfg := Default()
	cfg.Input = filepath.Join("elsewhere", "raw.json")

	if got := cfg.Paths().Input; got != cfg.Input {
		t.Errorf("Paths().Input = %s, want %s", got, cfg.Input)
	}
}
