package cells

import (
	"github.com/mfell/sgforge/pkg/layout"
	"github.com/mfell/sgforge/pkg/tech"
)

// RFCMIMConfig parametrizes the RF MIM capacitor scaffold.
type RFCMIMConfig struct {
	Width  float64
	Length float64

	// Capacitance overrides the computed value when non-nil.
	Capacitance *float64

	Model string

	LayerMIM        layout.LayerSpec
	LayerMetal5     layout.LayerSpec
	LayerPWellBlock layout.LayerSpec
	LayersNoQRC     []layout.LayerSpec
}

// DefaultRFCMIM returns the default RF MIM capacitor parameters.
func DefaultRFCMIM() RFCMIMConfig {
	return RFCMIMConfig{
		Width:           7.0,
		Length:          7.0,
		Model:           "rfcmim",
		LayerMIM:        "MIMdrawing",
		LayerMetal5:     "Metal5drawing",
		LayerPWellBlock: "PWellblock",
		LayersNoQRC: []layout.LayerSpec{
			"Activnoqrc",
			"TopMetal1noqrc",
			"Metal1noqrc",
			"Metal2noqrc",
			"Metal3noqrc",
			"Metal4noqrc",
			"Metal5noqrc",
		},
	}
}

// RFCMIM generates the RF MIM capacitor scaffold: the MIM plate with
// its PWell block, no-QRC exclusion layers, and the Metal5 bottom
// plate. The scaffold carries no ports yet.
//
// The MIM rectangle spans (length, width) in (X, Y) order; this
// mirrors the legacy generator and is intentional.
func RFCMIM(cfg RFCMIMConfig) *layout.Cell {
	t := tech.MustGet("SG13_dev")
	c := layout.NewCell(cfg.Model)

	length := layout.Snap(cfg.Length)
	width := layout.Snap(cfg.Width)

	capacitance := width * length * t.Param("cap_density_mim")
	if cfg.Capacitance != nil {
		capacitance = *cfg.Capacitance
	}

	mimMetal5Margin := t.Param("mim_metal5_margin")
	mimPWellMargin := t.Param("mim_pwell_margin")
	noQRCPWellMargin := t.Param("noqrc_pwell_margin")

	// MIM plate.
	c.AddRect(cfg.LayerMIM, layout.XY{}, layout.XY{X: length, Y: width})

	// PWell block around the plate.
	c.AddRect(cfg.LayerPWellBlock,
		layout.XY{X: -mimPWellMargin, Y: -mimPWellMargin},
		layout.XY{X: length + 2*mimPWellMargin, Y: width + 2*mimPWellMargin})

	// No-QRC exclusion layers, one rectangle per layer.
	noQRCMargin := mimPWellMargin + noQRCPWellMargin
	noQRCSize := layout.XY{X: length + 2*noQRCMargin, Y: width + 2*noQRCMargin}
	noQRCOrigin := layout.XY{X: -noQRCMargin, Y: -noQRCMargin}
	for _, l := range cfg.LayersNoQRC {
		c.AddRect(l, noQRCOrigin, noQRCSize)
	}

	// Metal5 bottom plate.
	c.AddRect(cfg.LayerMetal5,
		layout.XY{X: -mimMetal5Margin, Y: -mimMetal5Margin},
		layout.XY{X: length + 2*mimMetal5Margin, Y: width + 2*mimMetal5Margin})

	c.Info["model"] = cfg.Model
	c.Info["capacitance"] = capacitance
	c.Info["mim_width"] = width
	c.Info["mim_length"] = length

	return c
}
