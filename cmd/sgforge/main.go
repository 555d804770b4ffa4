// sgforge generates parametric SG13 layout cells and drives the
// simulation workflow around them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sgforge",
	Short: "Parametric layout cell generator for the SG13 process",
	Long: `sgforge builds parametric layout cells (MIM capacitors, RF MIM
capacitors, SiGe bipolar transistors) for the SG13 process, writes
them to GDSII, compares layouts, previews the layer stack in 3D,
and manages simulation job archives.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(cellsCmd)
	rootCmd.AddCommand(gdsCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(meshCmd)
	rootCmd.AddCommand(simCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
