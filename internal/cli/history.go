package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/lifeexp/internal/engine"
	"github.com/danieljhkim/lifeexp/internal/hash"
)

var (
	historyLimit  int
	historyOutput string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	Long: `List the clean and convert runs recorded in the data directory, most
recent first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine(settings, logger)

		result, err := eng.History(context.Background(), &engine.HistoryRequest{
			Output: historyOutput,
			Limit:  historyLimit,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, result)
		}

		PrintSection(out, "Run History")
		if len(result.Runs) == 0 {
			PrintEmptyState(out, "No runs recorded")
			return nil
		}

		rows := make([][]string, 0, len(result.Runs))
		for _, run := range result.Runs {
			rows = append(rows, []string{
				run.StartedAt.Local().Format(time.DateTime),
				run.Operation,
				run.Country,
				run.Output,
				fmt.Sprint(run.Rows),
				hash.Short(run.Checksum),
			})
		}
		PrintTable(out, []string{"Started", "Operation", "Country", "Output", "Rows", "SHA-256"}, rows)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to list (0 for all)")
	historyCmd.Flags().StringVar(&historyOutput, "output", "", "only list runs that wrote this path")
}
