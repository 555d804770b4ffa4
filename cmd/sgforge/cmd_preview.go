package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mfell/sgforge/pkg/cells"
	"github.com/mfell/sgforge/pkg/preview"
	"github.com/mfell/sgforge/pkg/solid/sdfx"
	"github.com/mfell/sgforge/pkg/tech"
)

var previewOut string

var previewCmd = &cobra.Command{
	Use:   "preview <cell>",
	Short: "Write a 3D layer-stack preview of a cell as binary STL",
	Long: `Extrudes every layer of the generated cell through its process
z-range and writes the result as a binary STL mesh.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := tech.Get("SG13_dev")
		if err != nil {
			return err
		}
		gen, err := cells.Lookup(args[0])
		if err != nil {
			return err
		}
		out := previewOut
		if out == "" {
			out = args[0] + ".stl"
		}
		if err := preview.WriteSTL(out, gen(), t, sdfx.New()); err != nil {
			return err
		}
		logger.Info("wrote preview", zap.String("path", out))
		fmt.Println("wrote", out)
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "", "output STL path (default <cell>.stl)")
}
