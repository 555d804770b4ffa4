package solid

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

// oneTriangle is a minimal mesh: a single triangle in the z=0 plane
// with an upward normal.
func oneTriangle() *Mesh {
	return &Mesh{
		Vertices: []float32{
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
		},
		Normals: []float32{
			0, 0, 1,
			0, 0, 1,
			0, 0, 1,
		},
		Indices: []uint32{0, 1, 2},
		Layer:   "MIMdrawing",
	}
}

func TestMeshCounts(t *testing.T) {
	m := oneTriangle()
	if m.VertexCount() != 3 {
		t.Errorf("vertex count = %d, want 3", m.VertexCount())
	}
	if m.TriangleCount() != 1 {
		t.Errorf("triangle count = %d, want 1", m.TriangleCount())
	}
	if m.IsEmpty() {
		t.Error("mesh with vertices should not be empty")
	}
	if !(&Mesh{}).IsEmpty() {
		t.Error("zero mesh should be empty")
	}
}

func TestWriteSTLLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSTL(&buf, oneTriangle()); err != nil {
		t.Fatalf("WriteSTL: %v", err)
	}
	data := buf.Bytes()

	// 80-byte header, 4-byte count, 50 bytes per triangle.
	if len(data) != 84+50 {
		t.Fatalf("stream length = %d, want 134", len(data))
	}
	if !bytes.HasPrefix(data, []byte("sgforge")) {
		t.Errorf("header = %q...", data[:20])
	}
	if count := binary.LittleEndian.Uint32(data[80:84]); count != 1 {
		t.Errorf("triangle count = %d, want 1", count)
	}

	readF32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
	}
	// Facet normal is the first vertex normal.
	if nz := readF32(84 + 8); nz != 1 {
		t.Errorf("facet normal z = %v, want 1", nz)
	}
	// Second vertex follows the normal and first vertex.
	if vx := readF32(84 + 12 + 12); vx != 1 {
		t.Errorf("second vertex x = %v, want 1", vx)
	}
	// Attribute byte count is zero.
	if attr := binary.LittleEndian.Uint16(data[84+48:]); attr != 0 {
		t.Errorf("attribute count = %d, want 0", attr)
	}
}

func TestWriteSTLMultipleMeshes(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSTL(&buf, oneTriangle(), oneTriangle()); err != nil {
		t.Fatalf("WriteSTL: %v", err)
	}
	data := buf.Bytes()
	if len(data) != 84+2*50 {
		t.Errorf("stream length = %d, want 184", len(data))
	}
	if count := binary.LittleEndian.Uint32(data[80:84]); count != 2 {
		t.Errorf("triangle count = %d, want 2", count)
	}
}

func TestWriteSTLEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSTL(&buf); err != nil {
		t.Fatalf("WriteSTL with no meshes: %v", err)
	}
	if len(buf.Bytes()) != 84 {
		t.Errorf("empty stream length = %d, want 84", buf.Len())
	}
}
