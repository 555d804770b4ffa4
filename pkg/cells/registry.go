package cells

import (
	"fmt"
	"sort"

	"github.com/mfell/sgforge/pkg/layout"
)

// Generator produces a cell with its default parameters.
type Generator func() *layout.Cell

// builtin is the PDK cell registry. All generators here are exercised
// by the all-cells GDS output and the CLI listing.
var builtin = map[string]Generator{
	"cmim":    func() *layout.Cell { return CMIM(DefaultCMIM()) },
	"rfcmim":  func() *layout.Cell { return RFCMIM(DefaultRFCMIM()) },
	"npn13G2": func() *layout.Cell { return NPN13G2(DefaultNPN13G2()) },
}

// Names returns the registered cell names in sorted order.
func Names() []string {
	out := make([]string, 0, len(builtin))
	for name := range builtin {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the generator for a cell name.
func Lookup(name string) (Generator, error) {
	gen, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("cells: unknown cell %q", name)
	}
	return gen, nil
}

// All generates every registered cell with default parameters,
// in name order.
func All() []*layout.Cell {
	names := Names()
	out := make([]*layout.Cell, 0, len(names))
	for _, name := range names {
		out = append(out, builtin[name]())
	}
	return out
}

// PackSpacing is the gap between packed cells in um.
const PackSpacing = 30.0

// Pack arranges cells in a row with fixed spacing and returns a new
// top cell containing the translated geometry. Ports are dropped; the
// packed cell is a visual sample, not a connectable device.
func Pack(name string, cellList []*layout.Cell, spacing float64) *layout.Cell {
	top := layout.NewCell(name)
	x := 0.0
	for _, c := range cellList {
		min, _ := c.BBox()
		placed := c.Translate(layout.XY{X: x - min.X, Y: -min.Y})
		top.Rects = append(top.Rects, placed.Rects...)
		x += c.Size().X + spacing
	}
	top.Info["n_cells"] = len(cellList)
	return top
}
