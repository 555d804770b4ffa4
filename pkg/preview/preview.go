// Package preview extrudes layout cells into a 3D layer stack. Every
// rectangle becomes a slab spanning its layer's z-range from the tech
// table; slabs on the same layer are merged into one mesh. The result
// is written as binary STL for external viewers.
package preview

import (
	"fmt"

	"github.com/mfell/sgforge/pkg/layout"
	"github.com/mfell/sgforge/pkg/solid"
	"github.com/mfell/sgforge/pkg/tech"
)

// Meshes produces one triangle mesh per layer of the cell.
// The tessellation is read-only and never mutates the cell.
func Meshes(c *layout.Cell, t *tech.Tech, k solid.Kernel) ([]*solid.Mesh, error) {
	var meshes []*solid.Mesh

	for _, l := range c.Layers() {
		entry, ok := t.Layer(l)
		if !ok {
			return nil, fmt.Errorf("preview: cell %q uses unknown layer %q", c.Name, l)
		}
		thickness := entry.ZMax - entry.ZMin
		if thickness <= 0 {
			return nil, fmt.Errorf("preview: layer %q has non-positive thickness", l)
		}

		var merged solid.Solid
		for _, r := range c.LayerRects(l) {
			slab := k.Box(r.Size.X, r.Size.Y, thickness)
			slab = k.Translate(slab, r.Origin.X, r.Origin.Y, entry.ZMin)
			if merged == nil {
				merged = slab
			} else {
				merged = k.Union(merged, slab)
			}
		}
		if merged == nil {
			continue
		}

		mesh, err := k.ToMesh(merged)
		if err != nil {
			return nil, fmt.Errorf("preview: meshing layer %q of cell %q: %w", l, c.Name, err)
		}
		mesh.Layer = string(l)
		meshes = append(meshes, mesh)
	}

	return meshes, nil
}

// WriteSTL extrudes the cell and writes the layer stack to an STL file.
func WriteSTL(path string, c *layout.Cell, t *tech.Tech, k solid.Kernel) error {
	meshes, err := Meshes(c, t, k)
	if err != nil {
		return err
	}
	return solid.WriteSTLFile(path, meshes...)
}
