package stl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/deppfellow/boxgen/internal/geometry"
	"github.com/pkg/errors"
)

// Encoder writes meshes as STL.
//
// The zero value writes an all-zero header. An Encoder holds no mutable
// state and is safe to share between goroutines.
type Encoder struct {
	header [HeaderSize]byte
}

var defaultEncoder = mustEncoder(DefaultHeader)

func mustEncoder(header string) *Encoder {
	e, err := NewEncoder(header)
	if err != nil {
		panic(err)
	}
	return e
}

// NewEncoder returns an Encoder that writes header into the 80-byte binary
// header, zero padded.
//
// Readers treat files whose first bytes are "solid" as ASCII STL, so such
// headers are rejected, as are headers longer than 80 bytes.
func NewEncoder(header string) (*Encoder, error) {
	if len(header) > HeaderSize {
		return nil, fmt.Errorf("stl header is %d bytes, limit is %d", len(header), HeaderSize)
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(header)), "solid") {
		return nil, errors.New(`stl header must not start with "solid"`)
	}

	e := &Encoder{}
	copy(e.header[:], header)
	return e, nil
}

// EncodeBinary encodes m as binary STL using DefaultHeader.
func EncodeBinary(m *geometry.Mesh) ([]byte, error) {
	return defaultEncoder.Binary(m)
}

// EncodeASCII encodes m as ASCII STL.
func EncodeASCII(m *geometry.Mesh) ([]byte, error) {
	return defaultEncoder.ASCII(m)
}

// Encode dispatches on format.
func (e *Encoder) Encode(m *geometry.Mesh, format Format) ([]byte, error) {
	switch format {
	case FormatBinary:
		return e.Binary(m)
	case FormatASCII:
		return e.ASCII(m)
	default:
		return nil, &EncodingError{Face: -1, Reason: fmt.Sprintf("unsupported format %q", format)}
	}
}

// Binary encodes m as binary STL.
func (e *Encoder) Binary(m *geometry.Mesh) ([]byte, error) {
	tris, err := resolve(m)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, BinarySize(len(tris)))
	copy(buf, e.header[:])
	binary.LittleEndian.PutUint32(buf[HeaderSize:], uint32(len(tris)))

	off := HeaderSize + 4
	for i, tri := range tris {
		off = putVec(buf, off, m.Faces[i].Normal)
		for _, v := range tri {
			off = putVec(buf, off, v)
		}
		// Attribute byte count stays zero.
		off += 2
	}

	return buf, nil
}

// WriteBinary streams the binary encoding of m to w.
func (e *Encoder) WriteBinary(w io.Writer, m *geometry.Mesh) (int, error) {
	data, err := e.Binary(m)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	if err != nil {
		return n, errors.Wrap(err, "write binary stl")
	}
	return n, nil
}

// ASCII encodes m as ASCII STL. Numbers are printed from their float32
// values so both layouts describe the same geometry.
func (e *Encoder) ASCII(m *geometry.Mesh) ([]byte, error) {
	tris, err := resolve(m)
	if err != nil {
		return nil, err
	}

	name := solidName(m.Name)

	var b bytes.Buffer
	b.WriteString("solid " + name + "\n")
	for i, tri := range tris {
		b.WriteString("  facet normal " + formatVec(m.Faces[i].Normal) + "\n")
		b.WriteString("    outer loop\n")
		for _, v := range tri {
			b.WriteString("      vertex " + formatVec(v) + "\n")
		}
		b.WriteString("    endloop\n")
		b.WriteString("  endfacet\n")
	}
	b.WriteString("endsolid " + name + "\n")

	return b.Bytes(), nil
}

// resolve checks every face of m and returns the triangle positions.
func resolve(m *geometry.Mesh) ([][3]v3.Vec, error) {
	if m == nil {
		return nil, &EncodingError{Face: -1, Reason: "nil mesh"}
	}
	if uint64(len(m.Faces)) > math.MaxUint32 {
		return nil, &EncodingError{Face: -1, Reason: "too many faces"}
	}

	tris := make([][3]v3.Vec, len(m.Faces))
	for i := range m.Faces {
		tri, err := m.Triangle(i)
		if err != nil {
			return nil, &EncodingError{Face: i, Reason: err.Error()}
		}
		tris[i] = tri
	}
	return tris, nil
}

func putVec(buf []byte, off int, v v3.Vec) int {
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(buf[off+8:], math.Float32bits(float32(v.Z)))
	return off + 12
}

func formatVec(v v3.Vec) string {
	return formatFloat(v.X) + " " + formatFloat(v.Y) + " " + formatFloat(v.Z)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(float64(float32(f)), 'e', 6, 32)
}

// solidName keeps the "solid" line a single token.
func solidName(name string) string {
	name = strings.Join(strings.Fields(name), "_")
	if name == "" {
		return "mesh"
	}
	return name
}
