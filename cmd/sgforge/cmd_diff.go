package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfell/sgforge/pkg/cells"
	"github.com/mfell/sgforge/pkg/diff"
)

var diffTolerance float64

var diffCmd = &cobra.Command{
	Use:   "diff <cell-a> <cell-b>",
	Short: "Compare two generated cells layer by layer",
	Long: `Generates both cells and reports per-layer XOR areas. The exit
status is non-zero when any layer differs by more than the tolerance.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		genA, err := cells.Lookup(args[0])
		if err != nil {
			return err
		}
		genB, err := cells.Lookup(args[1])
		if err != nil {
			return err
		}
		report := diff.XOR(genA(), genB())
		fmt.Print(report.String())
		if !report.Equal(diffTolerance) {
			return fmt.Errorf("cells %s and %s differ", args[0], args[1])
		}
		fmt.Println("cells are identical")
		return nil
	},
}

func init() {
	diffCmd.Flags().Float64Var(&diffTolerance, "tolerance", 1e-9, "XOR area tolerance in um^2")
}
