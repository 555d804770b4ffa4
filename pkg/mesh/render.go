package mesh

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"sort"

	"github.com/llgcode/draw2d/draw2dimg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RenderOptions controls wireframe rendering.
type RenderOptions struct {
	Width, Height int
	// Groups limits rendering to physical groups whose name contains
	// any of these substrings. Empty means all groups.
	Groups    []string
	LineWidth float64
}

// DefaultRenderOptions returns a 1024x768 canvas with hairline edges.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Width: 1024, Height: 768, LineWidth: 1}
}

var groupPalette = []color.RGBA{
	{0xd6, 0x45, 0x41, 0xff}, // red
	{0x35, 0x72, 0xc6, 0xff}, // blue
	{0x3f, 0x9b, 0x4c, 0xff}, // green
	{0xe0, 0x8a, 0x2e, 0xff}, // orange
	{0x8a, 0x4f, 0xb5, 0xff}, // purple
	{0x2e, 0xa8, 0xa8, 0xff}, // teal
	{0xb5, 0x4f, 0x8a, 0xff}, // magenta
	{0x6e, 0x6e, 0x3f, 0xff}, // olive
}

// isoProject maps a 3D point onto the drawing plane using an
// isometric projection. Y grows downward later when fitted.
func isoProject(n Node) (float64, float64) {
	const c = 0.8660254037844386 // cos 30
	const s = 0.5                // sin 30
	u := (n.X - n.Y) * c
	v := (n.X+n.Y)*s - n.Z
	return u, v
}

// Render draws the mesh wireframe into a new RGBA image.
func Render(m *Mesh, opts RenderOptions) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("mesh: invalid canvas size %dx%d", opts.Width, opts.Height)
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1
	}

	filtered := len(opts.Groups) > 0
	var tags []int
	if filtered {
		tags = m.MatchGroups(opts.Groups)
		if len(tags) == 0 {
			return nil, fmt.Errorf("mesh: no physical groups match %v (have %v)", opts.Groups, m.GroupNames())
		}
	} else {
		for tag := range m.Groups {
			tags = append(tags, tag)
		}
		sort.Ints(tags)
	}
	selected := make(map[int]bool, len(tags))
	for _, t := range tags {
		selected[t] = true
	}

	// Project every node once, then fit the projected bounds to the
	// canvas with a margin.
	proj := make(map[int][2]float64, len(m.Nodes))
	minU, minV := math.Inf(1), math.Inf(1)
	maxU, maxV := math.Inf(-1), math.Inf(-1)
	for id, n := range m.Nodes {
		u, v := isoProject(n)
		proj[id] = [2]float64{u, v}
		minU, maxU = math.Min(minU, u), math.Max(maxU, u)
		minV, maxV = math.Min(minV, v), math.Max(maxV, v)
	}
	const margin = 40.0
	spanU, spanV := maxU-minU, maxV-minV
	if spanU <= 0 {
		spanU = 1
	}
	if spanV <= 0 {
		spanV = 1
	}
	scale := math.Min(
		(float64(opts.Width)-2*margin)/spanU,
		(float64(opts.Height)-2*margin)/spanV,
	)
	toCanvas := func(p [2]float64) (float64, float64) {
		x := margin + (p[0]-minU)*scale
		y := float64(opts.Height) - margin - (p[1]-minV)*scale
		return x, y
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	gc := draw2dimg.NewGraphicContext(img)
	gc.SetLineWidth(opts.LineWidth)

	colorFor := make(map[int]color.RGBA, len(tags))
	for i, tag := range tags {
		colorFor[tag] = groupPalette[i%len(groupPalette)]
	}
	elementColor := func(e Element) color.RGBA {
		if c, ok := colorFor[e.Physical]; ok {
			return c
		}
		return color.RGBA{0x88, 0x88, 0x88, 0xff}
	}

	// Shared edges only need to be drawn once per group.
	type edgeKey struct {
		a, b, group int
	}
	seen := make(map[edgeKey]bool)

	// Without a filter every element is drawn; elements outside any
	// named group fall back to gray.
	for _, e := range m.Elements {
		if filtered && !selected[e.Physical] {
			continue
		}
		col := elementColor(e)
		for _, edge := range e.Edges() {
			a, b := edge[0], edge[1]
			if a > b {
				a, b = b, a
			}
			k := edgeKey{a, b, e.Physical}
			if seen[k] {
				continue
			}
			seen[k] = true
			pa, okA := proj[a]
			pb, okB := proj[b]
			if !okA || !okB {
				continue
			}
			x0, y0 := toCanvas(pa)
			x1, y1 := toCanvas(pb)
			gc.SetStrokeColor(col)
			gc.BeginPath()
			gc.MoveTo(x0, y0)
			gc.LineTo(x1, y1)
			gc.Stroke()
		}
	}

	drawLegend(img, m, tags, colorFor)
	return img, nil
}

// drawLegend writes swatches and group names in the top-left corner.
func drawLegend(img *image.RGBA, m *Mesh, tags []int, colorFor map[int]color.RGBA) {
	const x0, y0, line = 12, 14, 16
	face := basicfont.Face7x13
	for i, tag := range tags {
		g, ok := m.Groups[tag]
		if !ok {
			continue
		}
		y := y0 + i*line
		swatch := image.Rect(x0, y-8, x0+10, y+2)
		draw.Draw(img, swatch, &image.Uniform{colorFor[tag]}, image.Point{}, draw.Src)
		d := font.Drawer{
			Dst:  img,
			Src:  image.Black,
			Face: face,
			Dot:  fixed.P(x0+16, y),
		}
		d.DrawString(g.Name)
	}
}

// RenderPNG renders the mesh and writes the image to path.
func RenderPNG(path string, m *Mesh, opts RenderOptions) error {
	img, err := Render(m, opts)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
