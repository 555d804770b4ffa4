package diff

import (
	"math"
	"strings"
	"testing"

	"github.com/mfell/sgforge/pkg/cells"
	"github.com/mfell/sgforge/pkg/layout"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func rect(x, y, w, h float64) layout.Rect {
	return layout.Rect{
		Layer:  "MIMdrawing",
		Origin: layout.XY{X: x, Y: y},
		Size:   layout.XY{X: w, Y: h},
	}
}

func TestUnionArea(t *testing.T) {
	tests := []struct {
		name  string
		rects []layout.Rect
		want  float64
	}{
		{"empty", nil, 0},
		{"single", []layout.Rect{rect(0, 0, 2, 3)}, 6},
		{"disjoint", []layout.Rect{rect(0, 0, 1, 1), rect(5, 5, 2, 2)}, 5},
		{"identical", []layout.Rect{rect(0, 0, 2, 2), rect(0, 0, 2, 2)}, 4},
		{"half overlap", []layout.Rect{rect(0, 0, 2, 2), rect(1, 0, 2, 2)}, 6},
		{"contained", []layout.Rect{rect(0, 0, 4, 4), rect(1, 1, 1, 1)}, 16},
		{"corner touch", []layout.Rect{rect(0, 0, 1, 1), rect(1, 1, 1, 1)}, 2},
		{"cross", []layout.Rect{rect(-3, -1, 6, 2), rect(-1, -3, 2, 6)}, 20},
		{"degenerate ignored", []layout.Rect{rect(0, 0, 0, 5), rect(0, 0, 2, 2)}, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := UnionArea(tc.rects); !almostEqual(got, tc.want) {
				t.Errorf("UnionArea = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestXORIdenticalCells(t *testing.T) {
	rep := XOR(cells.CMIM(cells.DefaultCMIM()), cells.CMIM(cells.DefaultCMIM()))
	if !rep.Equal(1e-9) {
		t.Errorf("identical cells should have zero XOR:\n%s", rep.String())
	}
	for _, ld := range rep.Layers {
		if !almostEqual(ld.AreaA, ld.AreaB) {
			t.Errorf("layer %s areas differ: %v vs %v", ld.Layer, ld.AreaA, ld.AreaB)
		}
	}
}

func TestXORIgnoresRectDecomposition(t *testing.T) {
	// One 2x2 square against the same square cut into four quadrants.
	a := layout.NewCell("whole")
	a.AddRect("MIMdrawing", layout.XY{}, layout.XY{X: 2, Y: 2})

	b := layout.NewCell("split")
	b.AddRect("MIMdrawing", layout.XY{}, layout.XY{X: 1, Y: 1})
	b.AddRect("MIMdrawing", layout.XY{X: 1, Y: 0}, layout.XY{X: 1, Y: 1})
	b.AddRect("MIMdrawing", layout.XY{X: 0, Y: 1}, layout.XY{X: 1, Y: 1})
	b.AddRect("MIMdrawing", layout.XY{X: 1, Y: 1}, layout.XY{X: 1, Y: 1})

	rep := XOR(a, b)
	if !rep.Equal(1e-9) {
		t.Errorf("decomposition must not affect XOR:\n%s", rep.String())
	}
}

func TestXORShiftedCell(t *testing.T) {
	a := layout.NewCell("a")
	a.AddRect("MIMdrawing", layout.XY{}, layout.XY{X: 2, Y: 2})

	b := a.Translate(layout.XY{X: 1, Y: 0})

	rep := XOR(a, b)
	if rep.Equal(1e-9) {
		t.Fatal("shifted cell should differ")
	}
	if len(rep.Layers) != 1 {
		t.Fatalf("layer count = %d, want 1", len(rep.Layers))
	}
	// Union 6, intersection 2: XOR area 4.
	if got := rep.Layers[0].XORArea; !almostEqual(got, 4) {
		t.Errorf("XOR area = %v, want 4", got)
	}
}

func TestXORDisjointLayerSets(t *testing.T) {
	a := layout.NewCell("a")
	a.AddRect("MIMdrawing", layout.XY{}, layout.XY{X: 1, Y: 1})

	b := layout.NewCell("b")
	b.AddRect("Metal5drawing", layout.XY{}, layout.XY{X: 1, Y: 1})

	rep := XOR(a, b)
	if len(rep.Layers) != 2 {
		t.Fatalf("layer count = %d, want 2", len(rep.Layers))
	}
	for _, ld := range rep.Layers {
		if !almostEqual(ld.XORArea, 1) {
			t.Errorf("layer %s XOR = %v, want 1", ld.Layer, ld.XORArea)
		}
	}
}

func TestReportString(t *testing.T) {
	a := layout.NewCell("a")
	a.AddRect("MIMdrawing", layout.XY{}, layout.XY{X: 1, Y: 1})
	rep := XOR(a, a)

	s := rep.String()
	if !strings.Contains(s, "xor a vs a") {
		t.Errorf("report header missing: %q", s)
	}
	if !strings.Contains(s, "MIMdrawing") {
		t.Errorf("layer line missing: %q", s)
	}
}
