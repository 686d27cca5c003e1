package geometry

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBoxTopology(t *testing.T) {
	m := BuildBox(20, 20, 3)

	assert.Equal(t, BoxName, m.Name)
	assert.Equal(t, 8, m.VertexCount())
	assert.Equal(t, 12, m.TriangleCount())
	assert.False(t, m.IsEmpty())

	// 8 distinct corners.
	seen := make(map[v3.Vec]bool)
	for _, v := range m.Vertices {
		seen[v] = true
	}
	assert.Len(t, seen, 8)
}

func TestBuildBoxDefaultCoordinates(t *testing.T) {
	m := BuildBox(20, 20, 3)

	for _, v := range m.Vertices {
		assert.Equal(t, 10.0, math.Abs(v.X))
		assert.Equal(t, 10.0, math.Abs(v.Y))
		assert.Equal(t, 1.5, math.Abs(v.Z))
	}

	min, max := m.Bounds()
	assert.Equal(t, v3.Vec{X: -10, Y: -10, Z: -1.5}, min)
	assert.Equal(t, v3.Vec{X: 10, Y: 10, Z: 1.5}, max)
}

func TestBuildBoxWatertight(t *testing.T) {
	m := BuildBox(30, 12, 4)

	// Every undirected edge is shared by exactly two faces, and every
	// directed edge appears once: consistent winding.
	undirected := make(map[[2]int]int)
	directed := make(map[[2]int]int)
	for _, f := range m.Faces {
		for j := 0; j < 3; j++ {
			a, b := f.Indices[j], f.Indices[(j+1)%3]
			directed[[2]int{a, b}]++
			if a > b {
				a, b = b, a
			}
			undirected[[2]int{a, b}]++
		}
	}
	assert.Len(t, undirected, 18)
	for edge, n := range undirected {
		assert.Equal(t, 2, n, "edge %v", edge)
	}
	for edge, n := range directed {
		assert.Equal(t, 1, n, "directed edge %v", edge)
	}
}

func TestBuildBoxNormalsMatchWinding(t *testing.T) {
	m := BuildBox(20, 20, 3)

	for i, f := range m.Faces {
		tri, err := m.Triangle(i)
		require.NoError(t, err)

		got := WindingNormal(tri)
		assert.InDelta(t, f.Normal.X, got.X, 1e-9, "face %d", i)
		assert.InDelta(t, f.Normal.Y, got.Y, 1e-9, "face %d", i)
		assert.InDelta(t, f.Normal.Z, got.Z, 1e-9, "face %d", i)
		assert.InDelta(t, 1.0, f.Normal.Length(), 1e-12)
	}
}

func TestBuildBoxVolume(t *testing.T) {
	tests := []struct {
		name              string
		length, width, tk float64
	}{
		{"defaults", 20, 20, 3},
		{"minimum", 5, 5, 1},
		{"maximum", 100, 100, 20},
		{"non square", 42.5, 7.25, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := BuildBox(tt.length, tt.width, tt.tk)
			assert.InDelta(t, tt.length*tt.width*tt.tk, m.Volume(), 1e-6)
		})
	}
}

func TestBuildBoxReturnsFreshMesh(t *testing.T) {
	a := BuildBox(20, 20, 3)
	b := BuildBox(20, 20, 3)

	a.Faces[0].Indices[0] = 7
	a.Vertices[0].X = 99

	assert.Equal(t, 0, b.Faces[0].Indices[0])
	assert.Equal(t, -10.0, b.Vertices[0].X)
	assert.Equal(t, 0, BuildBox(1, 1, 1).Faces[0].Indices[0])
}

func TestBuildBoxDegenerateDoesNotPanic(t *testing.T) {
	m := BuildBox(0, 10, 10)
	assert.Equal(t, 12, m.TriangleCount())
	assert.InDelta(t, 0.0, m.Volume(), 1e-12)
}

func TestMeshTriangleOutOfRange(t *testing.T) {
	m := BuildBox(10, 10, 10)

	_, err := m.Triangle(12)
	assert.Error(t, err)

	_, err = m.Triangle(-1)
	assert.Error(t, err)

	m.Faces[3].Indices[1] = 8
	_, err = m.Triangle(3)
	assert.ErrorContains(t, err, "vertex index 8")
}

func TestMeshEmpty(t *testing.T) {
	m := &Mesh{}
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0.0, m.Volume())

	min, max := m.Bounds()
	assert.Equal(t, v3.Vec{}, min)
	assert.Equal(t, v3.Vec{}, max)
}

func TestWindingNormalDegenerate(t *testing.T) {
	tri := [3]v3.Vec{{X: 1}, {X: 2}, {X: 3}}
	assert.Equal(t, v3.Vec{}, WindingNormal(tri))
}
