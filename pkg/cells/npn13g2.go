package cells

import (
	"github.com/mfell/sgforge/pkg/layout"
	"github.com/mfell/sgforge/pkg/tech"
)

// Via array constants for the npn13G2 transistor. The step and offset
// values are legacy process-table constants.
const (
	npnStepX    = 1.85
	npnStepY    = 0.41
	npnYOffset  = 0.20
	npnViaRows  = 4
	npnViaLeft  = -0.3
	npnViaRight = 0.11
)

// NPN13G2Config parametrizes the npn13G2 BJT transistor.
// Several fields do not yet affect geometry; they are carried for
// device naming and netlisting compatibility.
type NPN13G2Config struct {
	STI           float64 // shallow trench isolation width in um
	Baspolyx      float64 // base poly X extension
	Bipwinx       float64 // bipolar window X extension
	Bipwiny       float64 // bipolar window Y extension
	Empolyx       float64 // emitter poly X extension
	Empolyy       float64 // emitter poly Y extension
	EmitterLength float64
	EmitterWidth  float64
	Nx            int // emitter fingers in X
	Ny            int // emitter fingers in Y
	Text          string
	CMetY1        float64
	CMetY2        float64

	LayerVia1 layout.LayerSpec
}

// DefaultNPN13G2 returns the default npn13G2 parameters.
func DefaultNPN13G2() NPN13G2Config {
	return NPN13G2Config{
		STI:           0.44,
		Baspolyx:      0.3,
		Bipwinx:       0.07,
		Bipwiny:       0.1,
		Empolyx:       0.15,
		Empolyy:       0.18,
		EmitterLength: 0.9,
		EmitterWidth:  0.7,
		Nx:            1,
		Ny:            1,
		Text:          "npn13G2",
		LayerVia1:     "Via1drawing",
	}
}

// NPN13G2 generates the npn13G2 BJT transistor base cell: per emitter
// finger, two columns of four Via1 squares. Finger columns repeat on a
// 1.85 pitch; row positions derive from the bipolar window and emitter
// poly Y extensions relative to their 0.1/0.18 defaults.
func NPN13G2(cfg NPN13G2Config) *layout.Cell {
	t := tech.MustGet("SG13_dev")
	c := layout.NewCell("npn13G2")

	viaSize := t.Param("via1_size")

	bipwinyOffset := (2*(cfg.Bipwiny-0.1) - 0) / 2
	empolyyOffset := (2 * (cfg.Empolyy - 0.18)) / 2
	leOffset := 0.0

	for ix := 0; ix < cfg.Nx; ix++ {
		for iy := 0; iy < npnViaRows; iy++ {
			bottom := -((-0.3-npnYOffset-leOffset-bipwinyOffset-empolyyOffset)+
				float64(iy)*npnStepY) + 0.2 - viaSize

			// Via column on the left side of the finger.
			c.AddRect(cfg.LayerVia1,
				layout.XY{X: npnStepX*float64(ix) + npnViaLeft, Y: bottom},
				layout.XY{X: viaSize, Y: viaSize})

			// Via column on the right side.
			c.AddRect(cfg.LayerVia1,
				layout.XY{X: npnStepX*float64(ix) + npnViaRight, Y: bottom},
				layout.XY{X: viaSize, Y: viaSize})
		}
	}

	c.Info["model"] = "npn13G2"
	c.Info["text"] = cfg.Text
	c.Info["nx"] = cfg.Nx
	c.Info["ny"] = cfg.Ny
	c.Info["emitter_width"] = cfg.EmitterWidth
	c.Info["emitter_length"] = cfg.EmitterLength

	return c
}
