package cells

import (
	"math"
	"testing"

	"github.com/mfell/sgforge/pkg/layout"
	"github.com/mfell/sgforge/pkg/tech"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCMIMDefaultGeometry(t *testing.T) {
	c := CMIM(DefaultCMIM())

	if c.Name != "cmim" {
		t.Errorf("name = %q, want cmim", c.Name)
	}

	// MIM plate at the origin.
	mim := c.LayerRects("MIMdrawing")
	if len(mim) != 1 {
		t.Fatalf("MIM rect count = %d, want 1", len(mim))
	}
	if mim[0].Origin != (layout.XY{}) {
		t.Errorf("MIM origin = %v, want (0, 0)", mim[0].Origin)
	}
	if !almostEqual(mim[0].Size.X, 6.99) || !almostEqual(mim[0].Size.Y, 6.99) {
		t.Errorf("MIM size = %v, want (6.99, 6.99)", mim[0].Size)
	}

	// Metal5 bottom plate extends 0.6 beyond the MIM plate.
	m5 := c.LayerRects("Metal5drawing")
	if len(m5) != 1 {
		t.Fatalf("Metal5 rect count = %d, want 1", len(m5))
	}
	if !almostEqual(m5[0].Origin.X, -0.6) || !almostEqual(m5[0].Origin.Y, -0.6) {
		t.Errorf("Metal5 origin = %v, want (-0.6, -0.6)", m5[0].Origin)
	}
	if !almostEqual(m5[0].Size.X, 8.19) || !almostEqual(m5[0].Size.Y, 8.19) {
		t.Errorf("Metal5 size = %v, want (8.19, 8.19)", m5[0].Size)
	}

	// TopMetal1 top plate: X inset follows the linear fit
	// -0.004*w + 0.625, Y inset is fixed at 0.34.
	tm1 := c.LayerRects("TopMetal1drawing")
	if len(tm1) != 1 {
		t.Fatalf("TopMetal1 rect count = %d, want 1", len(tm1))
	}
	wantInsetX := -0.004*6.99 + 0.625
	if !almostEqual(tm1[0].Origin.X, wantInsetX) || !almostEqual(tm1[0].Origin.Y, 0.34) {
		t.Errorf("TopMetal1 origin = %v, want (%v, 0.34)", tm1[0].Origin, wantInsetX)
	}
	if !almostEqual(tm1[0].Size.X, 6.99-2*wantInsetX) || !almostEqual(tm1[0].Size.Y, 6.31) {
		t.Errorf("TopMetal1 size = %v, want (%v, 6.31)", tm1[0].Size, 6.99-2*wantInsetX)
	}
}

func TestCMIMVmimTiles(t *testing.T) {
	c := CMIM(DefaultCMIM())

	// Default plate: usable span 6.99 - 2*0.42, pitch 1.26 -> 5x5 grid.
	tiles := c.LayerRects("Vmimdrawing")
	if len(tiles) != 25 {
		t.Fatalf("Vmim tile count = %d, want 25", len(tiles))
	}
	if got := c.Info["n_vmim_tiles"]; got != [2]int{5, 5} {
		t.Errorf("n_vmim_tiles = %v, want [5 5]", got)
	}

	// First tile sits one tile length inside the top plate Y inset.
	first := tiles[0]
	if !almostEqual(first.Origin.X, 0.76) || !almostEqual(first.Origin.Y, 0.76) {
		t.Errorf("first tile origin = %v, want (0.76, 0.76)", first.Origin)
	}
	if !almostEqual(first.Size.X, 0.42) || !almostEqual(first.Size.Y, 0.42) {
		t.Errorf("tile size = %v, want (0.42, 0.42)", first.Size)
	}

	// Tiles repeat on the 1.26 pitch.
	last := tiles[len(tiles)-1]
	if !almostEqual(last.Origin.X, 0.76+4*1.26) || !almostEqual(last.Origin.Y, 0.76+4*1.26) {
		t.Errorf("last tile origin = %v, want (%v, %v)", last.Origin, 0.76+4*1.26, 0.76+4*1.26)
	}
}

func TestCMIMSmallPlateHasNoTiles(t *testing.T) {
	cfg := DefaultCMIM()
	cfg.Width = 1.0
	cfg.Length = 1.0
	c := CMIM(cfg)

	if tiles := c.LayerRects("Vmimdrawing"); len(tiles) != 0 {
		t.Errorf("tile count = %d, want 0 for a 1x1 plate", len(tiles))
	}
	if got := c.Info["n_vmim_tiles"]; got != [2]int{0, 0} {
		t.Errorf("n_vmim_tiles = %v, want [0 0]", got)
	}
}

func TestCMIMCapacitance(t *testing.T) {
	c := CMIM(DefaultCMIM())
	want := 6.99 * 6.99 * 1.54
	if got := c.Info["capacitance"].(float64); !almostEqual(got, want) {
		t.Errorf("capacitance = %v, want %v", got, want)
	}

	// Override never touches geometry.
	override := 123.0
	cfg := DefaultCMIM()
	cfg.Capacitance = &override
	c2 := CMIM(cfg)
	if got := c2.Info["capacitance"].(float64); got != 123.0 {
		t.Errorf("overridden capacitance = %v, want 123", got)
	}
	if len(c2.Rects) != len(c.Rects) {
		t.Error("capacitance override must not change geometry")
	}
}

func TestCMIMPorts(t *testing.T) {
	c := CMIM(DefaultCMIM())

	p1 := c.MustPort("P1")
	if !almostEqual(p1.Center.X, 3.495) || !almostEqual(p1.Center.Y, 3.495) {
		t.Errorf("P1 center = %v, want (3.495, 3.495)", p1.Center)
	}
	if !almostEqual(p1.Width, 8.19) {
		t.Errorf("P1 width = %v, want 8.19", p1.Width)
	}
	if p1.Orientation != 180 {
		t.Errorf("P1 orientation = %v, want 180", p1.Orientation)
	}
	if p1.Layer != "Metal5drawing" {
		t.Errorf("P1 layer = %q, want Metal5drawing", p1.Layer)
	}

	// P2 X uses the fixed 0.34 base, not the width-dependent inset.
	p2 := c.MustPort("P2")
	wantInsetX := -0.004*6.99 + 0.625
	wantX := 0.34 + (6.99-2*wantInsetX)/2
	if !almostEqual(p2.Center.X, wantX) || !almostEqual(p2.Center.Y, 3.495) {
		t.Errorf("P2 center = %v, want (%v, 3.495)", p2.Center, wantX)
	}
	if p2.Orientation != 0 {
		t.Errorf("P2 orientation = %v, want 0", p2.Orientation)
	}
	if p2.Type != layout.PortElectrical {
		t.Errorf("P2 type = %q, want electrical", p2.Type)
	}
}

func TestCMIMSnapsInputs(t *testing.T) {
	cfg := DefaultCMIM()
	cfg.Width = 6.9912 // off grid
	c := CMIM(cfg)

	if got := c.Info["mim_width"].(float64); !almostEqual(got, 6.99) {
		t.Errorf("snapped width = %v, want 6.99", got)
	}
}

func TestCMIMPassesValidation(t *testing.T) {
	tk := tech.MustGet("SG13_dev")
	res := layout.Validate(CMIM(DefaultCMIM()), tk)
	if !res.OK() {
		t.Errorf("default cmim should validate, got: %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}
