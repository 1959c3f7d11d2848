package cli

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/lifeexp/internal/clock"
	"github.com/danieljhkim/lifeexp/internal/config"
	"github.com/danieljhkim/lifeexp/internal/engine"
	"github.com/danieljhkim/lifeexp/internal/fsops"
	"github.com/danieljhkim/lifeexp/internal/hash"
	"github.com/danieljhkim/lifeexp/internal/logging"
	"github.com/danieljhkim/lifeexp/internal/metrics"
	"github.com/danieljhkim/lifeexp/internal/state"
)

var (
	// settings is the effective configuration for the running command
	settings = config.Default()

	// logger is configured from settings before any command runs
	logger = logging.Discard()
)

// loadSettings builds the effective configuration: defaults, then the
// config file, then any flag set on the command line.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	path := configPath
	optional := !flags.Changed("config")
	if path == "" {
		path = config.DefaultConfigFile
	}

	cfg, err := config.Load(path, optional)
	if err != nil {
		return nil, err
	}

	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = logFormat
	}
	if flags.Changed("country") {
		cfg.Country = country
	}
	if flags.Changed("output-format") {
		cfg.OutputFormat = outputFormat
	}
	if flags.Changed("strict-year") {
		cfg.StrictYear = strictYear
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = metricsFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine(cfg *config.Config, log *slog.Logger) *engine.Engine {
	fs := fsops.NewRealFS()
	paths := cfg.Paths()
	return engine.New(
		fs,
		hash.NewSHA256Hasher(),
		&clock.RealClock{},
		*paths,
		state.NewFileRunStore(fs, paths.Runs),
		log,
		metrics.NewRecorder(),
	)
}

// flushMetrics writes the engine's metrics when a metrics file is
// configured. Failures are logged, not returned.
func flushMetrics(eng *engine.Engine, path string) {
	if path == "" {
		return
	}
	if err := eng.Metrics().WriteTextfile(path); err != nil {
		logger.Warn("metrics not written", "path", path, "error", err)
		return
	}
	logger.Debug("metrics written", "path", path)
}

// FormatError formats an error for display.
func FormatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON writes a value as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
