/*
PURPOSE:
  Defines the 'predict' subcommand.
  Executes a full prediction batch.

REQUIREMENTS:
  User-specified:
  - Flags for the resistance file, PBP file and output path.

  Implementation-discovered:
  - Need to load config first.
  - Apply flag overrides to config.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Run()
  - Uses: internal/config, internal/output

ERROR HANDLING:
  - Returns error if config load fails or engine run fails.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Configure logging -> Engine.Run.

USAGE:
  target2mic predict -r res_alleles.tsv -p pbp_alleles.tsv -o mic_predictions.tsv

RELATED FILES:
  - internal/cli/root.go
*/

package cli

import (
	"fmt"

	"github.com/daryltucker/target2mic/internal/config"
	"github.com/daryltucker/target2mic/internal/engine"
	"github.com/daryltucker/target2mic/internal/output"
	"github.com/spf13/cobra"
)

var (
	resFileOverride    string
	pbpFileOverride    string
	outputOverride     string
	jsonOutputOverride string
	workersOverride    int
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict MIC interpretations for a batch of isolates",
	Long: `Reads a resistance determinant table and an optional PBP allele table and
writes one row of MIC interpretations per isolate.

The resistance table is tab-delimited with a header of ID followed by
EC, FQ, OTHER and TET in any order. Each cell is "neg" or a ':'-delimited
list of determinants. The PBP table has ID, Contig and PBP_allele columns.

Output is tab-delimited with columns ID, PBP, TET, EC, FQ, OTHER. Nothing is
written unless every isolate is predicted.`,
	Example: `  # Predict with a PBP table
  target2mic predict -r res_alleles.tsv -p pbp_alleles.tsv -o mic_predictions.tsv

  # Without PBP assignments every beta-lactam is flagged
  target2mic predict -r res_alleles.tsv -o mic_predictions.tsv

  # Also write JSON Lines
  target2mic predict -r res_alleles.tsv -p pbp_alleles.tsv --json-output mic.jsonl`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// 2. Overrides
		if resFileOverride != "" {
			cfg.ResFile = resFileOverride
		}
		if pbpFileOverride != "" {
			cfg.PBPFile = pbpFileOverride
		}
		if outputOverride != "" {
			cfg.Output = outputOverride
		}
		if jsonOutputOverride != "" {
			cfg.JSONOutput = jsonOutputOverride
		}
		if workersOverride > 0 {
			cfg.Workers = workersOverride
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		if logFormat != "" {
			cfg.LogFormat = logFormat
		}

		if err := output.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
			return err
		}

		// 3. Execution
		summary, err := engine.Run(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Predicted %d isolates (%d without PBP reference) -> %s\n",
			summary.Samples, summary.MissingPBP, summary.Output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(predictCmd)

	predictCmd.Flags().StringVarP(&resFileOverride, "res-file", "r", "", "Resistance determinant table (EC/FQ/OTHER/TET)")
	predictCmd.Flags().StringVarP(&pbpFileOverride, "pbp-file", "p", "", "PBP allele table (optional)")
	predictCmd.Flags().StringVarP(&outputOverride, "output", "o", "", "Output prediction table")
	predictCmd.Flags().StringVar(&jsonOutputOverride, "json-output", "", "Also write predictions as JSON Lines to this path")
	predictCmd.Flags().IntVarP(&workersOverride, "workers", "w", 0, "Isolates predicted in parallel")
}
