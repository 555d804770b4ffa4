// Package cells implements the SG13 parametric cell generators.
// Each generator is a deterministic geometric construction: it places
// rectangles at closed-form offsets, attaches ports, computes derived
// metadata, and returns the assembled cell. Several margin constants
// are legacy compatibility values and are fixed behavioral contracts.
package cells

import (
	"math"

	"github.com/mfell/sgforge/pkg/layout"
	"github.com/mfell/sgforge/pkg/tech"
)

// Geometrical constants for the MIM capacitor.
const (
	metal5MIMMargin = 0.6
	metal1MIMMargin = 0.34
)

// CMIMConfig parametrizes the MIM capacitor. Zero-value fields take
// the engineering defaults from DefaultCMIM.
type CMIMConfig struct {
	Width  float64 // MIM plate X size in um
	Length float64 // MIM plate Y size in um

	// Capacitance overrides the computed value when non-nil. It never
	// affects geometry.
	Capacitance *float64

	Model string

	LayerMetal5    layout.LayerSpec
	LayerMIM       layout.LayerSpec
	LayerTopMetal1 layout.LayerSpec
	LayerVmim      layout.LayerSpec
}

// DefaultCMIM returns the default MIM capacitor parameters.
func DefaultCMIM() CMIMConfig {
	return CMIMConfig{
		Width:          6.99,
		Length:         6.99,
		Model:          "cmim",
		LayerMetal5:    "Metal5drawing",
		LayerMIM:       "MIMdrawing",
		LayerTopMetal1: "TopMetal1drawing",
		LayerVmim:      "Vmimdrawing",
	}
}

// CMIM generates a MIM (metal-insulator-metal) capacitor cell.
//
// The MIM plate sits at the origin. The Metal5 bottom plate extends
// 0.6 beyond it on all sides; the TopMetal1 top plate is inset 0.34 in
// Y and by a width-dependent margin in X. Vmim via tiles fill the top
// plate on a 0.42/0.84 pitch grid.
func CMIM(cfg CMIMConfig) *layout.Cell {
	t := tech.MustGet("SG13_dev")
	c := layout.NewCell(cfg.Model)

	// Grid snapping happens before any derived geometry.
	width := layout.Snap(cfg.Width)
	length := layout.Snap(cfg.Length)

	// Legacy linear fit for the top plate X inset.
	metal1MIMMarginX := -0.004*width + 0.625

	capacitance := width * length * t.Param("cap_density_mim")
	if cfg.Capacitance != nil {
		capacitance = *cfg.Capacitance
	}

	// MIM dielectric plate.
	c.AddRect(cfg.LayerMIM, layout.XY{}, layout.XY{X: width, Y: length})

	// Metal5 bottom plate, margin around the MIM plate.
	metal5Size := layout.XY{
		X: width + 2*metal5MIMMargin,
		Y: length + 2*metal5MIMMargin,
	}
	c.AddRect(cfg.LayerMetal5,
		layout.XY{X: -metal5MIMMargin, Y: -metal5MIMMargin}, metal5Size)

	// TopMetal1 top plate, inset from the MIM plate.
	metal1Size := layout.XY{
		X: width - 2*metal1MIMMarginX,
		Y: length - 2*metal1MIMMargin,
	}
	c.AddRect(cfg.LayerTopMetal1,
		layout.XY{X: metal1MIMMarginX, Y: metal1MIMMargin}, metal1Size)

	// Vmim tiles inside the top plate.
	tile := t.Param("vmim_tile")
	gap := t.Param("vmim_gap")
	pitch := tile + gap
	usableX := width - 2*tile
	usableY := length - 2*tile

	nTilesX := max(int(math.Floor((usableX+gap)/pitch)), 0)
	nTilesY := max(int(math.Floor((usableY+gap)/pitch)), 0)

	for ix := 0; ix < nTilesX; ix++ {
		for iy := 0; iy < nTilesY; iy++ {
			origin := layout.XY{
				X: metal1MIMMargin + tile + float64(ix)*pitch,
				Y: metal1MIMMargin + tile + float64(iy)*pitch,
			}
			c.AddRect(cfg.LayerVmim, origin, layout.XY{X: tile, Y: tile})
		}
	}

	// Bottom plate port at the Metal5 plate center.
	c.AddPort(layout.Port{
		Name: "P1",
		Center: layout.XY{
			X: -metal5MIMMargin + metal5Size.X/2,
			Y: -metal5MIMMargin + metal5Size.Y/2,
		},
		Width:       math.Min(metal5Size.X, metal5Size.Y),
		Orientation: 180,
		Layer:       cfg.LayerMetal5,
		Type:        layout.PortElectrical,
	})

	// Top plate port at the TopMetal1 plate center.
	c.AddPort(layout.Port{
		Name: "P2",
		Center: layout.XY{
			X: metal1MIMMargin + metal1Size.X/2,
			Y: metal1MIMMargin + metal1Size.Y/2,
		},
		Width:       math.Min(metal1Size.X, metal1Size.Y),
		Orientation: 0,
		Layer:       cfg.LayerTopMetal1,
		Type:        layout.PortElectrical,
	})

	c.Info["model"] = cfg.Model
	c.Info["capacitance"] = capacitance
	c.Info["mim_width"] = width
	c.Info["mim_length"] = length
	c.Info["vmim_tile_length"] = tile
	c.Info["n_vmim_tiles"] = [2]int{nTilesX, nTilesY}

	return c
}
