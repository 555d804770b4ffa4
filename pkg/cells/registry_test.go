package cells

import (
	"testing"

	"github.com/mfell/sgforge/pkg/layout"
)

func TestNames(t *testing.T) {
	want := []string{"cmim", "npn13G2", "rfcmim"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLookup(t *testing.T) {
	gen, err := Lookup("cmim")
	if err != nil {
		t.Fatalf("Lookup(cmim): %v", err)
	}
	if c := gen(); c.Name != "cmim" {
		t.Errorf("generated cell name = %q, want cmim", c.Name)
	}

	if _, err := Lookup("nmos"); err == nil {
		t.Error("Lookup of unknown cell should error")
	}
}

func TestAll(t *testing.T) {
	all := All()
	if len(all) != 3 {
		t.Fatalf("All() returned %d cells, want 3", len(all))
	}
	// Name order matches Names().
	for i, name := range Names() {
		if all[i].Name != name {
			t.Errorf("All()[%d].Name = %q, want %q", i, all[i].Name, name)
		}
	}
}

func TestPack(t *testing.T) {
	a := layout.NewCell("a")
	a.AddRect("MIMdrawing", layout.XY{X: -2, Y: -3}, layout.XY{X: 4, Y: 6})
	a.AddPort(layout.Port{Name: "P1", Center: layout.XY{}})

	b := layout.NewCell("b")
	b.AddRect("MIMdrawing", layout.XY{X: 1, Y: 1}, layout.XY{X: 2, Y: 2})

	top := Pack("sample", []*layout.Cell{a, b}, 10)

	if top.Name != "sample" {
		t.Errorf("name = %q, want sample", top.Name)
	}
	if len(top.Rects) != 2 {
		t.Fatalf("rect count = %d, want 2", len(top.Rects))
	}

	// First cell is normalized to the origin.
	if top.Rects[0].Origin != (layout.XY{}) {
		t.Errorf("first cell origin = %v, want (0, 0)", top.Rects[0].Origin)
	}

	// Second cell starts after the first cell's width plus spacing.
	if got := top.Rects[1].Origin; got.X != 14 || got.Y != 0 {
		t.Errorf("second cell origin = %v, want (14, 0)", got)
	}

	// The packed sample is not connectable.
	if len(top.Ports) != 0 {
		t.Errorf("port count = %d, want 0", len(top.Ports))
	}
	if top.Info["n_cells"] != 2 {
		t.Errorf("n_cells = %v, want 2", top.Info["n_cells"])
	}
}

func TestPackRegisteredCells(t *testing.T) {
	top := Pack("pdk_sample", All(), PackSpacing)

	min, _ := top.BBox()
	if min.X != 0 || min.Y != 0 {
		t.Errorf("packed bbox min = %v, want origin", min)
	}

	total := 0
	for _, c := range All() {
		total += len(c.Rects)
	}
	if len(top.Rects) != total {
		t.Errorf("packed rect count = %d, want %d", len(top.Rects), total)
	}
}
