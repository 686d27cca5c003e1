package stl

import (
	"encoding/binary"
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/deppfellow/boxgen/internal/geometry"
)

// Triangle is one decoded STL facet.
type Triangle struct {
	Normal   v3.Vec
	Vertices [3]v3.Vec
	// Attribute is the raw attribute byte count field.
	Attribute uint16
}

// Solid is the content of a decoded binary STL file.
type Solid struct {
	Header    [HeaderSize]byte
	Triangles []Triangle
}

// DecodeBinary parses a binary STL buffer.
//
// It fails when the buffer is shorter than a header plus count, or when
// its length does not match the declared triangle count.
func DecodeBinary(data []byte) (*Solid, error) {
	if len(data) < BinarySize(0) {
		return nil, fmt.Errorf("stl: buffer is %d bytes, need at least %d", len(data), BinarySize(0))
	}

	n := binary.LittleEndian.Uint32(data[HeaderSize:])
	if want := uint64(BinarySize(0)) + uint64(n)*triangleSize; uint64(len(data)) != want {
		return nil, fmt.Errorf("stl: declared %d triangles need %d bytes, got %d", n, want, len(data))
	}

	s := &Solid{Triangles: make([]Triangle, n)}
	copy(s.Header[:], data[:HeaderSize])

	off := HeaderSize + 4
	for i := range s.Triangles {
		t := &s.Triangles[i]
		t.Normal, off = readVec(data, off)
		for j := range t.Vertices {
			t.Vertices[j], off = readVec(data, off)
		}
		t.Attribute = binary.LittleEndian.Uint16(data[off:])
		off += 2
	}

	return s, nil
}

// Volume returns the signed volume enclosed by the decoded triangles.
func (s *Solid) Volume() float64 {
	var vol float64
	for _, t := range s.Triangles {
		vol += geometry.SignedVolume(t.Vertices)
	}
	return vol
}

// UniqueVertices returns the distinct vertex positions in first-seen order.
func (s *Solid) UniqueVertices() []v3.Vec {
	seen := make(map[v3.Vec]bool)
	var out []v3.Vec
	for _, t := range s.Triangles {
		for _, v := range t.Vertices {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

func readVec(data []byte, off int) (v3.Vec, int) {
	v := v3.Vec{
		X: float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))),
		Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:]))),
		Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off+8:]))),
	}
	return v, off + 12
}
