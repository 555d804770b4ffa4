// Package solid defines the geometry kernel interface used by the 3D
// layer-stack preview. Implementations (sdfx) provide solid modeling
// behind this interface so the preview code never touches a concrete
// CAD library.
package solid

// Solid is an opaque handle to a geometry kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface. The preview only
// needs boxes, unions, and translation: layout rectangles extrude to
// axis-aligned slabs.
type Kernel interface {
	Box(x, y, z float64) Solid
	Union(a, b Solid) Solid
	Translate(s Solid, x, y, z float64) Solid

	// ToMesh converts a solid to a triangle mesh.
	ToMesh(s Solid) (*Mesh, error)
}
