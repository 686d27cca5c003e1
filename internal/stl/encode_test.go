package stl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/deppfellow/boxgen/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBinaryLayout(t *testing.T) {
	data, err := EncodeBinary(geometry.BuildBox(20, 20, 3))
	require.NoError(t, err)

	require.Len(t, data, 684)
	assert.Equal(t, 684, BinarySize(12))
	assert.Equal(t, uint32(12), binary.LittleEndian.Uint32(data[80:84]))
	assert.True(t, bytes.HasPrefix(data, []byte(DefaultHeader)))
	assert.Equal(t, make([]byte, HeaderSize-len(DefaultHeader)), data[len(DefaultHeader):HeaderSize])

	// Attribute byte counts are zero.
	for i := 0; i < 12; i++ {
		off := 84 + i*50 + 48
		assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(data[off:]), "triangle %d", i)
	}
}

func TestEncodeBinaryFirstTriangle(t *testing.T) {
	m := geometry.BuildBox(20, 20, 3)
	data, err := EncodeBinary(m)
	require.NoError(t, err)

	floats := make([]float32, 12)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[84+i*4:]))
	}

	tri, err := m.Triangle(0)
	require.NoError(t, err)

	n := m.Faces[0].Normal
	assert.Equal(t, []float32{float32(n.X), float32(n.Y), float32(n.Z)}, floats[0:3])
	for j, v := range tri {
		assert.Equal(t, []float32{float32(v.X), float32(v.Y), float32(v.Z)}, floats[3+j*3:6+j*3])
	}
}

func TestEncodeBinaryRoundTripVolume(t *testing.T) {
	tests := []struct {
		size, thickness float64
	}{
		{20, 3},
		{5, 1},
		{100, 20},
		{5, 20},
		{100, 1},
		{33.3, 7.7},
	}
	for _, tt := range tests {
		data, err := EncodeBinary(geometry.BuildBox(tt.size, tt.size, tt.thickness))
		require.NoError(t, err)

		solid, err := DecodeBinary(data)
		require.NoError(t, err)
		require.Len(t, solid.Triangles, 12)

		want := tt.size * tt.size * tt.thickness
		assert.InDelta(t, want, solid.Volume(), want*1e-5, "size=%v thickness=%v", tt.size, tt.thickness)
	}
}

func TestEncodeBinaryDefaultVertices(t *testing.T) {
	data, err := EncodeBinary(geometry.BuildBox(20, 20, 3))
	require.NoError(t, err)

	solid, err := DecodeBinary(data)
	require.NoError(t, err)

	verts := solid.UniqueVertices()
	require.Len(t, verts, 8)
	for _, v := range verts {
		assert.Equal(t, 10.0, math.Abs(v.X))
		assert.Equal(t, 10.0, math.Abs(v.Y))
		assert.Equal(t, 1.5, math.Abs(v.Z))
	}
}

func TestEncodeBinaryDeterministic(t *testing.T) {
	a, err := EncodeBinary(geometry.BuildBox(42, 42, 4))
	require.NoError(t, err)
	b, err := EncodeBinary(geometry.BuildBox(42, 42, 4))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestEncodeMalformedMesh(t *testing.T) {
	m := geometry.BuildBox(20, 20, 3)
	m.Faces[5].Indices[2] = 42

	_, err := EncodeBinary(m)
	require.Error(t, err)

	var encErr *EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, 5, encErr.Face)
	assert.True(t, errors.Is(err, &EncodingError{}))

	_, err = EncodeASCII(m)
	assert.True(t, errors.As(err, &encErr))

	_, err = EncodeBinary(nil)
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, -1, encErr.Face)
	assert.Equal(t, "stl: nil mesh", err.Error())
}

func TestEncodeASCII(t *testing.T) {
	data, err := EncodeASCII(geometry.BuildBox(20, 20, 3))
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "solid box\n"))
	assert.True(t, strings.HasSuffix(text, "endsolid box\n"))
	assert.Equal(t, 12, strings.Count(text, "facet normal"))
	assert.Equal(t, 12, strings.Count(text, "endfacet"))
	assert.Equal(t, 36, strings.Count(text, "vertex "))
	assert.Contains(t, text, "facet normal 0.000000e+00 0.000000e+00 -1.000000e+00")
	assert.Contains(t, text, "vertex -1.000000e+01 -1.000000e+01 -1.500000e+00")
}

func TestEncodeASCIISolidName(t *testing.T) {
	m := geometry.BuildBox(5, 5, 1)
	m.Name = "my  part"
	data, err := EncodeASCII(m)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "solid my_part\n"))

	m.Name = ""
	data, err = EncodeASCII(m)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "solid mesh\n"))
}

func TestEncoderDispatch(t *testing.T) {
	e, err := NewEncoder("test header")
	require.NoError(t, err)
	m := geometry.BuildBox(10, 10, 2)

	bin, err := e.Encode(m, FormatBinary)
	require.NoError(t, err)
	assert.Len(t, bin, 684)
	assert.True(t, bytes.HasPrefix(bin, []byte("test header\x00")))

	txt, err := e.Encode(m, FormatASCII)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(txt, []byte("solid ")))

	_, err = e.Encode(m, Format("obj"))
	var encErr *EncodingError
	assert.True(t, errors.As(err, &encErr))
}

func TestNewEncoderRejectsBadHeaders(t *testing.T) {
	_, err := NewEncoder("solid box")
	assert.Error(t, err)

	_, err = NewEncoder("  SOLID")
	assert.Error(t, err)

	_, err = NewEncoder(strings.Repeat("x", 81))
	assert.Error(t, err)

	_, err = NewEncoder(strings.Repeat("x", 80))
	assert.NoError(t, err)

	_, err = NewEncoder("")
	assert.NoError(t, err)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteBinary(t *testing.T) {
	var buf bytes.Buffer
	n, err := defaultEncoder.WriteBinary(&buf, geometry.BuildBox(20, 20, 3))
	require.NoError(t, err)
	assert.Equal(t, 684, n)
	assert.Equal(t, 684, buf.Len())

	_, err = defaultEncoder.WriteBinary(failingWriter{}, geometry.BuildBox(20, 20, 3))
	assert.ErrorContains(t, err, "disk full")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatBinary, false},
		{"binary", FormatBinary, false},
		{"ascii", FormatASCII, false},
		{"ASCII", "", true},
		{"obj", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestDecodeBinaryRejectsBadInput(t *testing.T) {
	_, err := DecodeBinary(make([]byte, 83))
	assert.Error(t, err)

	data, err := EncodeBinary(geometry.BuildBox(20, 20, 3))
	require.NoError(t, err)

	_, err = DecodeBinary(data[:683])
	assert.Error(t, err)

	binary.LittleEndian.PutUint32(data[80:], 13)
	_, err = DecodeBinary(data)
	assert.Error(t, err)
}

func TestDecodeBinaryNormals(t *testing.T) {
	data, err := EncodeBinary(geometry.BuildBox(20, 20, 3))
	require.NoError(t, err)
	solid, err := DecodeBinary(data)
	require.NoError(t, err)

	for i, tri := range solid.Triangles {
		n := geometry.WindingNormal(tri.Vertices)
		assert.InDelta(t, tri.Normal.X, n.X, 1e-6, "triangle %d", i)
		assert.InDelta(t, tri.Normal.Y, n.Y, 1e-6, "triangle %d", i)
		assert.InDelta(t, tri.Normal.Z, n.Z, 1e-6, "triangle %d", i)
		assert.Equal(t, uint16(0), tri.Attribute)
	}
	assert.Equal(t, v3.Vec{Z: -1}, solid.Triangles[0].Normal)
}
