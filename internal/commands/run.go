// internal/commands/run.go
package benchmatrix

import (
	"os"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/benchmatrix/internal/appconfig"
	"github.com/mwiater/benchmatrix/internal/benchmark"
	"github.com/mwiater/benchmatrix/internal/logging"
	"github.com/mwiater/benchmatrix/internal/report"
)

// runCmd executes the benchmark sweep described by the configuration file.
var runCmd = &cobra.Command{
	Use:   "run <config.json>",
	Short: "Execute a benchmark sweep and print the JSON report on stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := appconfig.Load(args[0])
		if err != nil {
			return err
		}

		// Flags override the corresponding config file fields.
		if viper.GetBool("debug") {
			cfg.Debug = true
		}
		if path := viper.GetString("logFile"); path != "" {
			cfg.LogFile = path
		}
		if path := viper.GetString("export"); path != "" {
			cfg.ExportPath = path
		}

		if err := logging.Init(cfg.LogFile, cfg.Debug); err != nil {
			return err
		}
		if cfg.Debug {
			_, _ = pp.Fprintln(os.Stderr, cfg)
		}

		orchestrator, err := benchmark.New(cfg)
		if err != nil {
			return err
		}
		result, err := orchestrator.Run(cmd.Context())
		if err != nil {
			return err
		}

		if err := report.Write(cmd.OutOrStdout(), result); err != nil {
			return err
		}
		if cfg.ExportPath != "" {
			path, err := report.Export(cfg.ExportPath, result)
			if err != nil {
				return err
			}
			logging.Event("Report exported to %s", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
