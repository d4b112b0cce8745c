// internal/commands/list.go
package benchmatrix

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mwiater/benchmatrix/internal/probe"
)

// listCmd prints the registered probes with their sweep axes and defaults.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered benchmarks and their parameter axes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		bold := color.New(color.Bold)
		for _, p := range probe.All() {
			bold.Fprintf(cmd.OutOrStdout(), "%s\n", p.Name())
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p.Description())
			for _, axis := range p.DefaultAxes() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-22s default %v\n", axis.Name, axis.Values)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
