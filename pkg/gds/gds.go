// Package gds writes GDSII stream files for layout cells.
// The writer emits one structure per cell, a BOUNDARY element per
// rectangle, and a TEXT element per port label. User unit is 1 um,
// database unit is 1 nm.
package gds

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/mfell/sgforge/pkg/layout"
	"github.com/mfell/sgforge/pkg/tech"
)

// GDSII record types used by the writer.
const (
	recHeader   = 0x0002
	recBgnLib   = 0x0102
	recLibName  = 0x0206
	recUnits    = 0x0305
	recEndLib   = 0x0400
	recBgnStr   = 0x0502
	recStrName  = 0x0606
	recEndStr   = 0x0700
	recBoundary = 0x0800
	recText     = 0x0C00
	recLayer    = 0x0D02
	recDatatype = 0x0E02
	recXY       = 0x1003
	recEndEl    = 0x1100
	recTextType = 0x1602
	recString   = 0x1906
)

const streamVersion = 600

// dbuPerUM converts micrometer coordinates to database units (nm).
const dbuPerUM = 1000

// Write streams a GDSII library with one structure per cell.
// Each cell must pass layout validation against the given tech table.
func Write(w io.Writer, libName string, t *tech.Tech, cellList ...*layout.Cell) error {
	for _, c := range cellList {
		if res := layout.Validate(c, t); !res.OK() {
			return fmt.Errorf("gds: cell %q failed validation: %v", c.Name, res.Errors[0])
		}
	}

	bw := bufio.NewWriter(w)
	now := time.Now()

	if err := writeRecord(bw, recHeader, int16Payload(streamVersion)); err != nil {
		return err
	}
	if err := writeRecord(bw, recBgnLib, timesPayload(now)); err != nil {
		return err
	}
	if err := writeRecord(bw, recLibName, asciiPayload(libName)); err != nil {
		return err
	}
	if err := writeRecord(bw, recUnits, unitsPayload()); err != nil {
		return err
	}

	for _, c := range cellList {
		if err := writeStructure(bw, now, t, c); err != nil {
			return fmt.Errorf("gds: cell %q: %w", c.Name, err)
		}
	}

	if err := writeRecord(bw, recEndLib, nil); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteFile writes a GDSII library to the given path.
func WriteFile(path, libName string, t *tech.Tech, cellList ...*layout.Cell) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gds: creating %s: %w", path, err)
	}
	defer f.Close()
	if err := Write(f, libName, t, cellList...); err != nil {
		return err
	}
	return f.Close()
}

func writeStructure(w io.Writer, now time.Time, t *tech.Tech, c *layout.Cell) error {
	if err := writeRecord(w, recBgnStr, timesPayload(now)); err != nil {
		return err
	}
	if err := writeRecord(w, recStrName, asciiPayload(c.Name)); err != nil {
		return err
	}

	for _, r := range c.Rects {
		entry, ok := t.Layer(r.Layer)
		if !ok {
			return fmt.Errorf("unknown layer %q", r.Layer)
		}
		if err := writeRecord(w, recBoundary, nil); err != nil {
			return err
		}
		if err := writeRecord(w, recLayer, int16Payload(entry.Layer)); err != nil {
			return err
		}
		if err := writeRecord(w, recDatatype, int16Payload(entry.Datatype)); err != nil {
			return err
		}
		if err := writeRecord(w, recXY, boundaryXY(r)); err != nil {
			return err
		}
		if err := writeRecord(w, recEndEl, nil); err != nil {
			return err
		}
	}

	for _, p := range c.Ports {
		entry, ok := t.Layer(p.Layer)
		if !ok {
			return fmt.Errorf("unknown port layer %q", p.Layer)
		}
		if err := writeRecord(w, recText, nil); err != nil {
			return err
		}
		if err := writeRecord(w, recLayer, int16Payload(entry.Layer)); err != nil {
			return err
		}
		if err := writeRecord(w, recTextType, int16Payload(entry.Datatype)); err != nil {
			return err
		}
		if err := writeRecord(w, recXY, pointXY(p.Center)); err != nil {
			return err
		}
		if err := writeRecord(w, recString, asciiPayload(p.Name)); err != nil {
			return err
		}
		if err := writeRecord(w, recEndEl, nil); err != nil {
			return err
		}
	}

	return writeRecord(w, recEndStr, nil)
}

// writeRecord emits one GDSII record: 2-byte length (header included),
// 2-byte record type, payload.
func writeRecord(w io.Writer, recType uint16, payload []byte) error {
	if len(payload)%2 != 0 {
		return fmt.Errorf("odd payload length %d for record %04x", len(payload), recType)
	}
	var hdr [4]byte
	binary.BigEndian.PutUint16(hdr[0:2], uint16(4+len(payload)))
	binary.BigEndian.PutUint16(hdr[2:4], recType)
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return err
		}
	}
	return nil
}

// DBU converts a micrometer coordinate to database units, rounding
// half away from zero.
func DBU(um float64) int32 {
	return int32(math.Round(um * dbuPerUM))
}

// boundaryXY encodes the closed 5-point outline of a rectangle.
func boundaryXY(r layout.Rect) []byte {
	x0, y0 := DBU(r.Origin.X), DBU(r.Origin.Y)
	x1, y1 := DBU(r.Max().X), DBU(r.Max().Y)
	pts := []int32{x0, y0, x1, y0, x1, y1, x0, y1, x0, y0}
	out := make([]byte, 4*len(pts))
	for i, v := range pts {
		binary.BigEndian.PutUint32(out[4*i:], uint32(v))
	}
	return out
}

func pointXY(p layout.XY) []byte {
	out := make([]byte, 8)
	binary.BigEndian.PutUint32(out[0:4], uint32(DBU(p.X)))
	binary.BigEndian.PutUint32(out[4:8], uint32(DBU(p.Y)))
	return out
}

func int16Payload(v int16) []byte {
	out := make([]byte, 2)
	binary.BigEndian.PutUint16(out, uint16(v))
	return out
}

// asciiPayload encodes a string, NUL-padded to even length.
func asciiPayload(s string) []byte {
	b := []byte(s)
	if len(b)%2 != 0 {
		b = append(b, 0)
	}
	return b
}

// timesPayload encodes the modification and access timestamps as
// twelve int16 values.
func timesPayload(t time.Time) []byte {
	out := make([]byte, 0, 24)
	fields := []int16{
		int16(t.Year()), int16(t.Month()), int16(t.Day()),
		int16(t.Hour()), int16(t.Minute()), int16(t.Second()),
	}
	for i := 0; i < 2; i++ {
		for _, f := range fields {
			out = append(out, byte(f>>8), byte(f))
		}
	}
	return out
}

// unitsPayload encodes user units per DB unit (0.001) and the DB unit
// in meters (1e-9) as excess-64 reals.
func unitsPayload() []byte {
	out := make([]byte, 0, 16)
	out = append(out, gdsReal(1.0/dbuPerUM)...)
	out = append(out, gdsReal(1e-9)...)
	return out
}

// gdsReal encodes a float64 as an 8-byte GDSII excess-64 real:
// sign bit, 7-bit base-16 exponent, 56-bit mantissa in [1/16, 1).
func gdsReal(v float64) []byte {
	out := make([]byte, 8)
	if v == 0 {
		return out
	}

	sign := byte(0)
	if v < 0 {
		sign = 0x80
		v = -v
	}

	exp := 64
	for v >= 1 {
		v /= 16
		exp++
	}
	for v < 1.0/16 {
		v *= 16
		exp--
	}

	mantissa := uint64(v * (1 << 56))
	out[0] = sign | byte(exp)
	for i := 7; i >= 1; i-- {
		out[i] = byte(mantissa)
		mantissa >>= 8
	}
	return out
}
