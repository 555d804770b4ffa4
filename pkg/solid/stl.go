package solid

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// WriteSTL writes meshes as a single binary STL solid.
func WriteSTL(w io.Writer, meshes ...*Mesh) error {
	var header [80]byte
	copy(header[:], "sgforge layer stack preview")
	if _, err := w.Write(header[:]); err != nil {
		return err
	}

	total := 0
	for _, m := range meshes {
		total += m.TriangleCount()
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(total)); err != nil {
		return err
	}

	for _, m := range meshes {
		for t := 0; t < m.TriangleCount(); t++ {
			// Facet normal: the per-vertex normals are flat-shaded, so
			// the first vertex of the triangle carries the face normal.
			i0 := m.Indices[3*t]
			if err := writeVec(w, m.Normals, i0); err != nil {
				return err
			}
			for j := 0; j < 3; j++ {
				if err := writeVec(w, m.Vertices, m.Indices[3*t+j]); err != nil {
					return err
				}
			}
			if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteSTLFile writes meshes to a binary STL file at path.
func WriteSTLFile(path string, meshes ...*Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("solid: creating %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteSTL(f, meshes...); err != nil {
		return fmt.Errorf("solid: writing %s: %w", path, err)
	}
	return f.Close()
}

func writeVec(w io.Writer, flat []float32, idx uint32) error {
	return binary.Write(w, binary.LittleEndian, flat[3*idx:3*idx+3])
}
