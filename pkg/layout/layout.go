// Package layout defines the geometry model for SG13 layout cells.
// A Cell is a container of rectangle primitives on process layers,
// named ports, and key-value metadata. Cells are built imperatively by
// the generators in pkg/cells and are never mutated after return.
package layout

import (
	"fmt"
	"math"
	"sort"
)

// GridStep is the placement grid in micrometers. All cell dimensions
// are snapped to this grid before geometry is derived.
const GridStep = 0.005

// Snap rounds v to the nearest multiple of GridStep. Ties round to
// the even grid index, matching the legacy generators.
func Snap(v float64) float64 {
	return math.RoundToEven(v/GridStep) * GridStep
}

// LayerSpec names a process layer by its drawing name, e.g. "Metal5drawing".
// The tech package maps layer specs to GDS layer/datatype numbers.
type LayerSpec string

// XY is a 2D point or extent in micrometers.
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the component-wise sum of two points.
func (a XY) Add(b XY) XY {
	return XY{X: a.X + b.X, Y: a.Y + b.Y}
}

// Rect is an axis-aligned rectangle on a single layer.
// Origin is the lower-left corner.
type Rect struct {
	Layer  LayerSpec `json:"layer"`
	Origin XY        `json:"origin"`
	Size   XY        `json:"size"`
}

// Max returns the upper-right corner.
func (r Rect) Max() XY {
	return XY{X: r.Origin.X + r.Size.X, Y: r.Origin.Y + r.Size.Y}
}

// Center returns the rectangle center.
func (r Rect) Center() XY {
	return XY{X: r.Origin.X + r.Size.X/2, Y: r.Origin.Y + r.Size.Y/2}
}

// Area returns the rectangle area in square micrometers.
func (r Rect) Area() float64 {
	return r.Size.X * r.Size.Y
}

// PortType distinguishes electrical and optical connection points.
type PortType string

const (
	PortElectrical PortType = "electrical"
	PortOptical    PortType = "optical"
)

// Port is a named, located, oriented connection point on a cell.
type Port struct {
	Name        string    `json:"name"`
	Center      XY        `json:"center"`
	Width       float64   `json:"width"`
	Orientation float64   `json:"orientation"` // degrees, 0 = east
	Layer       LayerSpec `json:"layer"`
	Type        PortType  `json:"type"`
}

// Info carries derived cell metadata (model name, capacitance, counts).
type Info map[string]any

// Cell is a named layout geometry: rectangles, ports, and metadata.
type Cell struct {
	Name  string `json:"name"`
	Rects []Rect `json:"rects"`
	Ports []Port `json:"ports"`
	Info  Info   `json:"info"`
}

// NewCell creates an empty cell with the given name.
func NewCell(name string) *Cell {
	return &Cell{Name: name, Info: make(Info)}
}

// AddRect appends a rectangle with the given lower-left origin and size.
// It mirrors the construction order of the generators: geometry is laid
// down in drawing order and never reordered.
func (c *Cell) AddRect(layer LayerSpec, origin, size XY) Rect {
	r := Rect{Layer: layer, Origin: origin, Size: size}
	c.Rects = append(c.Rects, r)
	return r
}

// AddPort appends a port. Duplicate names are caught by Validate, not here.
func (c *Cell) AddPort(p Port) {
	if p.Type == "" {
		p.Type = PortElectrical
	}
	c.Ports = append(c.Ports, p)
}

// Port returns the named port, or nil.
func (c *Cell) Port(name string) *Port {
	for i := range c.Ports {
		if c.Ports[i].Name == name {
			return &c.Ports[i]
		}
	}
	return nil
}

// MustPort returns the named port, or panics.
func (c *Cell) MustPort(name string) *Port {
	p := c.Port(name)
	if p == nil {
		panic(fmt.Sprintf("layout: cell %q has no port %q", c.Name, name))
	}
	return p
}

// LayerRects returns all rectangles on the given layer, in drawing order.
func (c *Cell) LayerRects(layer LayerSpec) []Rect {
	var out []Rect
	for _, r := range c.Rects {
		if r.Layer == layer {
			out = append(out, r)
		}
	}
	return out
}

// Layers returns the distinct layers used by the cell, sorted by name.
func (c *Cell) Layers() []LayerSpec {
	seen := make(map[LayerSpec]bool)
	var out []LayerSpec
	for _, r := range c.Rects {
		if !seen[r.Layer] {
			seen[r.Layer] = true
			out = append(out, r.Layer)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BBox returns the bounding box over all rectangles. An empty cell
// returns two zero points.
func (c *Cell) BBox() (min, max XY) {
	if len(c.Rects) == 0 {
		return XY{}, XY{}
	}
	min = c.Rects[0].Origin
	max = c.Rects[0].Max()
	for _, r := range c.Rects[1:] {
		if r.Origin.X < min.X {
			min.X = r.Origin.X
		}
		if r.Origin.Y < min.Y {
			min.Y = r.Origin.Y
		}
		if m := r.Max(); m.X > max.X {
			max.X = m.X
		}
		if m := r.Max(); m.Y > max.Y {
			max.Y = m.Y
		}
	}
	return min, max
}

// Size returns the bounding box extent.
func (c *Cell) Size() XY {
	min, max := c.BBox()
	return XY{X: max.X - min.X, Y: max.Y - min.Y}
}

// Translate returns a copy of the cell with all geometry and ports
// shifted by d. Info is shared, not copied.
func (c *Cell) Translate(d XY) *Cell {
	out := &Cell{Name: c.Name, Info: c.Info}
	out.Rects = make([]Rect, len(c.Rects))
	for i, r := range c.Rects {
		r.Origin = r.Origin.Add(d)
		out.Rects[i] = r
	}
	out.Ports = make([]Port, len(c.Ports))
	for i, p := range c.Ports {
		p.Center = p.Center.Add(d)
		out.Ports[i] = p
	}
	return out
}
