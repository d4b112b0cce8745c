// internal/commands/root.go
package benchmatrix

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/benchmatrix/internal/logging"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "benchmatrix",
	Short: "Configuration-driven benchmark sweeps with JSON reports",
	Long: `benchmatrix expands a declarative parameter sweep into a test matrix,
executes each test case for a configured number of iterations (sequentially
or across a bounded worker pool), and emits a structured JSON report on
stdout. Progress and diagnostics go to stderr.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Init(viper.GetString("logFile"), viper.GetBool("debug"))
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	rootCmd.Version = appVersion + " (commit: " + appCommit + ", built: " + appDate + ")"

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("logFile", "", "tee diagnostics into this log file")
	rootCmd.PersistentFlags().String("export", "", "also write the report JSON to this path")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
	_ = viper.BindPFlag("export", rootCmd.PersistentFlags().Lookup("export"))
}
