package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/lifeexp/internal/config"
	"github.com/danieljhkim/lifeexp/internal/engine"
	"github.com/danieljhkim/lifeexp/internal/hash"
)

var (
	// Clean flags
	country      string
	inputPath    string
	outputPath   string
	outputFormat string
	metricsFile  string
	strictYear   bool
	cleanDryRun  bool
)

func registerCleanFlags(cmd *cobra.Command, defaults *config.Config) {
	f := cmd.Flags()
	f.StringVarP(&country, "country", "c", defaults.Country, "region code to keep")
	f.StringVarP(&inputPath, "input", "i", "", "raw dataset path (default <data-dir>/"+config.DefaultInputName+")")
	f.StringVarP(&outputPath, "output", "o", "", "cleaned dataset path (default <data-dir>/<country>_life_expectancy.<output-format>)")
	f.StringVarP(&outputFormat, "output-format", "f", defaults.OutputFormat, "extension of the default output path")
	f.BoolVar(&strictYear, "strict-year", false, "drop rows whose year label is not an integer")
	f.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	f.BoolVar(&cleanDryRun, "dry-run", false, "run the pipeline without writing the output")
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg := settings
	eng := newEngine(cfg, logger)
	defer flushMetrics(eng, cfg.MetricsFile)

	// A path given on the command line is taken as is; a bare file name
	// from the config file is looked up in the data directory.
	input := cfg.Paths().Input
	if cmd.Flags().Changed("input") {
		input = inputPath
	}

	req := &engine.CleanRequest{
		Country:      cfg.Country,
		Input:        input,
		Output:       outputPath,
		OutputFormat: cfg.OutputFormat,
		StrictYear:   cfg.StrictYear,
		DryRun:       cleanDryRun,
	}

	result, err := eng.Clean(context.Background(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return outputJSON(out, result)
	}

	PrintSection(out, fmt.Sprintf("Life expectancy for %s", result.Country))
	PrintLabelValue(out, "Run", result.RunID)
	PrintLabelValue(out, "Input", fmt.Sprintf("%s (%s)", result.Input, result.InputFormat))
	PrintLabelValue(out, "Output", fmt.Sprintf("%s (%s)", result.Output, result.OutputFormat))
	PrintLabelValue(out, "Melted", fmt.Sprint(result.Stats.Melted))
	PrintLabelValue(out, "Missing values", fmt.Sprint(result.Stats.MissingValue))
	if cfg.StrictYear {
		PrintLabelValue(out, "Invalid years", fmt.Sprint(result.Stats.InvalidYear))
	}
	PrintLabelValue(out, "Other regions", fmt.Sprint(result.Stats.OtherRegion))
	PrintLabelValue(out, "Kept", fmt.Sprint(result.Stats.Kept))
	if result.SHA256 != "" {
		PrintLabelValue(out, "SHA-256", hash.Short(result.SHA256))
	}
	_, _ = fmt.Fprintln(out)

	if result.Unchanged {
		PrintEmptyState(out, fmt.Sprintf("Output unchanged since run %s", result.PreviousRunID))
	}

	if result.Stats.Kept == 0 {
		PrintWarning(out, fmt.Sprintf("No rows matched country %s", result.Country))
	}
	if result.DryRun {
		PrintWarning(out, "Dry run: output not written")
		return nil
	}
	PrintSuccess(out, fmt.Sprintf("Wrote %s to %s", PrintCount(result.Stats.Kept, "record", "records"), result.Output))
	return nil
}
