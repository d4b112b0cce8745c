// internal/commands/show_config.go
package benchmatrix

import (
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/mwiater/benchmatrix/internal/appconfig"
)

// showConfigCmd prints the fully-resolved configuration, including the
// defaults applied to omitted knobs and the axes the sweep will use.
var showConfigCmd = &cobra.Command{
	Use:   "show-config <config.json>",
	Short: "Print the resolved configuration with defaults applied",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := appconfig.Load(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if _, err := pp.Fprintln(out, cfg); err != nil {
			return err
		}
		fmt.Fprintf(out, "iterations:         %d\n", cfg.Iterations())
		fmt.Fprintf(out, "concurrent_workers: %d\n", cfg.Workers())
		fmt.Fprintf(out, "timeout:            %s\n", cfg.Timeout())
		fmt.Fprintf(out, "warmup_runs:        %d\n", cfg.WarmupRuns())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showConfigCmd)
}
