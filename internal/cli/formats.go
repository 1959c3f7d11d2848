package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/lifeexp/internal/formats"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported file formats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		supported := formats.Supported()

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, supported)
		}

		PrintSection(out, "Supported Formats")
		rows := make([][]string, 0, len(supported))
		for _, info := range supported {
			rows = append(rows, []string{string(info.Format), strings.Join(info.Extensions, ", "), info.Description})
		}
		PrintTable(out, []string{"Format", "Extensions", "Description"}, rows)
		return nil
	},
}
