package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/lifeexp/internal/engine"
	"github.com/danieljhkim/lifeexp/internal/table"
)

var inspectLimit int

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the columns and first rows of a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine(settings, logger)

		result, err := eng.Inspect(context.Background(), &engine.InspectRequest{
			Path:  args[0],
			Limit: inspectLimit,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, result)
		}

		PrintSection(out, result.Path)
		PrintLabelValue(out, "Format", string(result.Format))
		PrintLabelValue(out, "Rows", fmt.Sprint(result.Rows))
		PrintLabelValue(out, "Columns", fmt.Sprint(len(result.Columns)))
		_, _ = fmt.Fprintln(out)

		colRows := make([][]string, 0, len(result.Columns))
		headers := make([]string, 0, len(result.Columns))
		for _, c := range result.Columns {
			colRows = append(colRows, []string{c.Name, c.Kind})
			headers = append(headers, c.Name)
		}
		PrintTable(out, []string{"Column", "Kind"}, colRows)

		if len(result.Preview) == 0 {
			_, _ = fmt.Fprintln(out)
			PrintEmptyState(out, "No rows to preview")
			return nil
		}

		previewRows := make([][]string, 0, len(result.Preview))
		for _, row := range result.Preview {
			cells := make([]string, len(row))
			for i, v := range row {
				cells[i] = table.FormatCell(v)
			}
			previewRows = append(previewRows, cells)
		}
		PrintSection(out, fmt.Sprintf("First %s", PrintCount(len(previewRows), "row", "rows")))
		PrintTable(out, headers, previewRows)
		return nil
	},
}

func init() {
	inspectCmd.Flags().IntVarP(&inspectLimit, "limit", "n", engine.DefaultPreviewRows, "number of rows to preview")
}
