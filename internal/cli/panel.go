/*
PURPOSE:
  Defines the 'panel' subcommand.
  Lists each category's drugs and their interpretation when nothing is detected.

REQUIREMENTS:
  Implementation-discovered:
  - Useful when checking a results table by eye.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.DefaultPanel()

USAGE:
  target2mic panel
*/

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/daryltucker/target2mic/internal/engine"
	"github.com/daryltucker/target2mic/internal/model"
	"github.com/spf13/cobra"
)

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "List the reported drugs and their no-evidence interpretations",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CATEGORY\tDRUG\tDEFAULT")
		for _, c := range engine.DefaultPanel() {
			for _, call := range c.Calls {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Category, call.Drug, call.Interpretation)
			}
			if c.Category == model.CategoryEC {
				fmt.Fprintf(tw, "%s\tERY_CLI\t%s\n", c.Category, c.Inducible)
			}
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(panelCmd)
}
