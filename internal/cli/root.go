/*
PURPOSE:
  Defines the root Cobra command for the target2mic CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Interrupts cancel the running batch through the command context.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/target2mic/main.go
  - Calls: Child commands (predict, panel)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.
  - Cobra's own error printing is silenced; main prints once.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep Run logic in subcommands, Root is usually empty or helps.

USAGE:
  Called by main.go.

RELATED FILES:
  - cmd/target2mic/main.go
*/

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile   string
	logLevel  string
	logFormat string

	rootCmd = &cobra.Command{
		Use:   "target2mic",
		Short: "Predict MIC categories from detected resistance determinants",
		Long: `Turns per-isolate resistance determinant calls (EC, FQ, OTHER, TET) and
PBP allele assignments into MIC interpretations per antibiotic.
Use 'predict --help' for run options.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// Execute executes the root command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./target2mic.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")
}
