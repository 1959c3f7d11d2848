package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/lifeexp/internal/engine"
	"github.com/danieljhkim/lifeexp/internal/hash"
)

var convertDryRun bool

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a dataset to another format",
	Long: `Load a dataset and save it unchanged in the format given by the output
extension.`,
	Example: `  lifeexp convert life_expectancy/data/PT_life_expectancy.csv pt.parquet
  lifeexp convert eu_life_expectancy_raw.tsv raw.xlsx`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine(settings, logger)
		defer flushMetrics(eng, settings.MetricsFile)

		result, err := eng.Convert(context.Background(), &engine.ConvertRequest{
			Input:  args[0],
			Output: args[1],
			DryRun: convertDryRun,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, result)
		}

		if result.DryRun {
			PrintWarning(out, fmt.Sprintf("Dry run: %s would be written as %s", result.Output, result.OutputFormat))
			return nil
		}
		PrintSuccess(out, fmt.Sprintf("Converted %s (%s) to %s (%s)",
			result.Input, result.InputFormat, result.Output, result.OutputFormat))
		PrintLabelValue(out, "Rows", fmt.Sprint(result.Rows))
		PrintLabelValue(out, "Columns", fmt.Sprint(result.Columns))
		PrintLabelValue(out, "SHA-256", hash.Short(result.SHA256))
		return nil
	},
}

func init() {
	convertCmd.Flags().BoolVar(&convertDryRun, "dry-run", false, "load the input without writing the output")
}
