// Package geometry builds the triangulated solids the service exports.
//
// It holds an indexed triangle mesh (shared vertices + faces that point
// into them) and the builder for the only shape family the API offers:
// an axis-aligned rectangular box centered at the origin.
//
// Vertices use the float64 vector type from sdfx (github.com/deadsy/sdfx/vec/v3).
// Narrowing to float32 happens later, in the STL encoder.
package geometry

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Face is one triangle of a Mesh.
//
// Indices point into Mesh.Vertices and are ordered counter-clockwise when
// the triangle is viewed from outside the solid (right-hand rule).
// Normal is the outward unit normal of the triangle.
type Face struct {
	Indices [3]int
	Normal  v3.Vec
}

// Mesh is an indexed triangle mesh.
//
// A Mesh is owned by whoever built it. Nothing in this package caches or
// shares meshes between callers.
type Mesh struct {
	// Name ends up in the ASCII STL "solid <name>" line.
	Name     string
	Vertices []v3.Vec
	Faces    []Face
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Faces) == 0
}

// Triangle resolves face i into its three vertex positions.
//
// It fails when i is not a face of the mesh or when one of the face's
// vertex indices does not point into Vertices.
func (m *Mesh) Triangle(i int) ([3]v3.Vec, error) {
	var tri [3]v3.Vec
	if i < 0 || i >= len(m.Faces) {
		return tri, fmt.Errorf("face %d out of range [0, %d)", i, len(m.Faces))
	}
	for j, idx := range m.Faces[i].Indices {
		if idx < 0 || idx >= len(m.Vertices) {
			return tri, fmt.Errorf("face %d: vertex index %d out of range [0, %d)", i, idx, len(m.Vertices))
		}
		tri[j] = m.Vertices[idx]
	}
	return tri, nil
}

// Bounds returns the axis-aligned bounding box of all vertices.
// An empty mesh returns two zero vectors.
func (m *Mesh) Bounds() (min, max v3.Vec) {
	if len(m.Vertices) == 0 {
		return min, max
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		min = v3.Vec{X: minf(min.X, v.X), Y: minf(min.Y, v.Y), Z: minf(min.Z, v.Z)}
		max = v3.Vec{X: maxf(max.X, v.X), Y: maxf(max.Y, v.Y), Z: maxf(max.Z, v.Z)}
	}
	return min, max
}

// Volume returns the signed volume enclosed by the mesh.
//
// Each face contributes the signed volume of the tetrahedron it spans with
// the origin. For a closed mesh with outward winding the sum is the
// enclosed volume; inverted winding makes it negative.
// Faces with invalid indices are skipped.
func (m *Mesh) Volume() float64 {
	var vol float64
	for i := range m.Faces {
		tri, err := m.Triangle(i)
		if err != nil {
			continue
		}
		vol += SignedVolume(tri)
	}
	return vol
}

// SignedVolume is the signed volume of the tetrahedron (origin, a, b, c).
func SignedVolume(tri [3]v3.Vec) float64 {
	return tri[0].Dot(tri[1].Cross(tri[2])) / 6.0
}

// WindingNormal returns the unit normal implied by the vertex order of tri.
// A degenerate triangle yields the zero vector.
func WindingNormal(tri [3]v3.Vec) v3.Vec {
	n := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0]))
	l := n.Length()
	if l == 0 {
		return v3.Vec{}
	}
	return n.MulScalar(1 / l)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
