// Package diff compares the geometry of two layout cells layer by
// layer. The comparison is by XOR area: the area covered by exactly
// one of the two cells on a layer. Two cells whose XOR area is zero on
// every layer draw identical shapes regardless of how the rectangles
// were decomposed.
package diff

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mfell/sgforge/pkg/layout"
)

// LayerDiff is the comparison result for one layer.
type LayerDiff struct {
	Layer   layout.LayerSpec
	AreaA   float64 // union area of cell A on this layer, um^2
	AreaB   float64 // union area of cell B on this layer, um^2
	XORArea float64 // area covered by exactly one cell, um^2
}

// Report is the full XOR comparison of two cells.
type Report struct {
	CellA  string
	CellB  string
	Layers []LayerDiff
}

// Equal reports whether the XOR area on every layer is within tol.
func (r Report) Equal(tol float64) bool {
	for _, ld := range r.Layers {
		if ld.XORArea > tol {
			return false
		}
	}
	return true
}

func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "xor %s vs %s\n", r.CellA, r.CellB)
	for _, ld := range r.Layers {
		fmt.Fprintf(&b, "  %-20s A=%.4f B=%.4f xor=%.4f\n",
			ld.Layer, ld.AreaA, ld.AreaB, ld.XORArea)
	}
	return b.String()
}

// XOR compares two cells over the union of their layer sets.
func XOR(a, b *layout.Cell) Report {
	rep := Report{CellA: a.Name, CellB: b.Name}

	seen := make(map[layout.LayerSpec]bool)
	var allLayers []layout.LayerSpec
	for _, l := range append(a.Layers(), b.Layers()...) {
		if !seen[l] {
			seen[l] = true
			allLayers = append(allLayers, l)
		}
	}
	sort.Slice(allLayers, func(i, j int) bool { return allLayers[i] < allLayers[j] })

	for _, l := range allLayers {
		ra := a.LayerRects(l)
		rb := b.LayerRects(l)
		areaA := UnionArea(ra)
		areaB := UnionArea(rb)
		both := UnionArea(overlaps(ra, rb))
		union := UnionArea(append(append([]layout.Rect{}, ra...), rb...))
		rep.Layers = append(rep.Layers, LayerDiff{
			Layer:   l,
			AreaA:   areaA,
			AreaB:   areaB,
			XORArea: union - both,
		})
	}
	return rep
}

// overlaps returns the pairwise intersection rectangles of two rect sets.
func overlaps(a, b []layout.Rect) []layout.Rect {
	var out []layout.Rect
	for _, ra := range a {
		for _, rb := range b {
			x0 := math.Max(ra.Origin.X, rb.Origin.X)
			y0 := math.Max(ra.Origin.Y, rb.Origin.Y)
			x1 := math.Min(ra.Max().X, rb.Max().X)
			y1 := math.Min(ra.Max().Y, rb.Max().Y)
			if x1 > x0 && y1 > y0 {
				out = append(out, layout.Rect{
					Origin: layout.XY{X: x0, Y: y0},
					Size:   layout.XY{X: x1 - x0, Y: y1 - y0},
				})
			}
		}
	}
	return out
}

// UnionArea computes the area covered by a set of axis-aligned
// rectangles, counting overlapping regions once. It sweeps vertical
// strips between distinct X coordinates and merges the Y intervals of
// the rectangles spanning each strip.
func UnionArea(rects []layout.Rect) float64 {
	if len(rects) == 0 {
		return 0
	}

	xs := make([]float64, 0, 2*len(rects))
	for _, r := range rects {
		if r.Size.X <= 0 || r.Size.Y <= 0 {
			continue
		}
		xs = append(xs, r.Origin.X, r.Max().X)
	}
	if len(xs) == 0 {
		return 0
	}
	sort.Float64s(xs)
	xs = dedupe(xs)

	total := 0.0
	for i := 0; i+1 < len(xs); i++ {
		x0, x1 := xs[i], xs[i+1]
		mid := (x0 + x1) / 2

		var spans []span
		for _, r := range rects {
			if r.Size.X <= 0 || r.Size.Y <= 0 {
				continue
			}
			if r.Origin.X <= mid && mid < r.Max().X {
				spans = append(spans, span{lo: r.Origin.Y, hi: r.Max().Y})
			}
		}
		total += mergedLength(spans) * (x1 - x0)
	}
	return total
}

type span struct {
	lo, hi float64
}

// mergedLength returns the total length covered by a set of intervals.
func mergedLength(spans []span) float64 {
	if len(spans) == 0 {
		return 0
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].lo < spans[j].lo })

	total := 0.0
	cur := spans[0]
	for _, s := range spans[1:] {
		if s.lo > cur.hi {
			total += cur.hi - cur.lo
			cur = s
			continue
		}
		if s.hi > cur.hi {
			cur.hi = s.hi
		}
	}
	total += cur.hi - cur.lo
	return total
}

func dedupe(sorted []float64) []float64 {
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
