package main

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mfell/sgforge/pkg/cells"
	"github.com/mfell/sgforge/pkg/gds"
	"github.com/mfell/sgforge/pkg/layout"
	"github.com/mfell/sgforge/pkg/tech"
)

var (
	nameStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

var cellsCmd = &cobra.Command{
	Use:   "cells",
	Short: "List the available cell generators",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range cells.Names() {
			gen, err := cells.Lookup(name)
			if err != nil {
				return err
			}
			c := gen()
			size := c.Size()
			fmt.Printf("%s  %s\n", nameStyle.Render(name),
				faintStyle.Render(fmt.Sprintf("%.3f x %.3f um, %d rects, %d ports",
					size.X, size.Y, len(c.Rects), len(c.Ports))))
			for _, k := range infoKeys(c.Info) {
				fmt.Printf("    %s: %v\n", k, c.Info[k])
			}
		}
		return nil
	},
}

func infoKeys(info map[string]any) []string {
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var (
	gdsOut     string
	gdsLibName string
	gdsPack    string
	gdsSpacing float64
)

var gdsCmd = &cobra.Command{
	Use:   "gds [cell...]",
	Short: "Generate cells and write them to a GDSII file",
	Long: `Generates the named cells (all of them when no names are given)
and writes each as a structure in one GDSII library. With --pack the
cells are placed side by side in a single packed structure instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := tech.Get("SG13_dev")
		if err != nil {
			return err
		}
		names := args
		if len(names) == 0 {
			names = cells.Names()
		}
		built := make([]*layout.Cell, 0, len(names))
		for _, name := range names {
			gen, err := cells.Lookup(name)
			if err != nil {
				return err
			}
			built = append(built, gen())
		}
		if gdsPack != "" {
			built = []*layout.Cell{cells.Pack(gdsPack, built, gdsSpacing)}
		}
		if err := gds.WriteFile(gdsOut, gdsLibName, t, built...); err != nil {
			return err
		}
		logger.Info("wrote gds",
			zap.String("path", gdsOut),
			zap.Int("structures", len(built)))
		fmt.Printf("wrote %d structure(s) to %s\n", len(built), gdsOut)
		return nil
	},
}

func init() {
	gdsCmd.Flags().StringVarP(&gdsOut, "out", "o", "cells.gds", "output GDSII path")
	gdsCmd.Flags().StringVar(&gdsLibName, "lib", "SG13", "GDSII library name")
	gdsCmd.Flags().StringVar(&gdsPack, "pack", "", "pack all cells into one structure with this name")
	gdsCmd.Flags().Float64Var(&gdsSpacing, "spacing", cells.PackSpacing, "spacing between packed cells in um")
}
