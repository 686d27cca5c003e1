package geometry

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// BoxName is the mesh name given to every box built by BuildBox.
const BoxName = "box"

// Corner i of the box sits on the positive side of X when bit 0 of i is
// set, of Y for bit 1 and of Z for bit 2:
//
//	0 (-,-,-)  1 (+,-,-)  2 (-,+,-)  3 (+,+,-)
//	4 (-,-,+)  5 (+,-,+)  6 (-,+,+)  7 (+,+,+)
const boxCorners = 8

// boxFaces lists the 12 triangles of a box, two per side, wound
// counter-clockwise as seen from outside.
var boxFaces = [12]Face{
	// -Z
	{Indices: [3]int{0, 2, 3}, Normal: v3.Vec{Z: -1}},
	{Indices: [3]int{0, 3, 1}, Normal: v3.Vec{Z: -1}},
	// +Z
	{Indices: [3]int{4, 5, 7}, Normal: v3.Vec{Z: 1}},
	{Indices: [3]int{4, 7, 6}, Normal: v3.Vec{Z: 1}},
	// -Y
	{Indices: [3]int{0, 1, 5}, Normal: v3.Vec{Y: -1}},
	{Indices: [3]int{0, 5, 4}, Normal: v3.Vec{Y: -1}},
	// +Y
	{Indices: [3]int{2, 6, 7}, Normal: v3.Vec{Y: 1}},
	{Indices: [3]int{2, 7, 3}, Normal: v3.Vec{Y: 1}},
	// -X
	{Indices: [3]int{0, 4, 6}, Normal: v3.Vec{X: -1}},
	{Indices: [3]int{0, 6, 2}, Normal: v3.Vec{X: -1}},
	// +X
	{Indices: [3]int{1, 3, 7}, Normal: v3.Vec{X: 1}},
	{Indices: [3]int{1, 7, 5}, Normal: v3.Vec{X: 1}},
}

// BuildBox returns an axis-aligned box centered at the origin whose full
// extents along X, Y and Z are length, width and thickness.
//
// The mesh always has 8 vertices and 12 faces and is closed. Inputs are
// expected to be validated by the caller: zero or negative extents give a
// flat or inside-out box, not an error.
func BuildBox(length, width, thickness float64) *Mesh {
	half := v3.Vec{X: length / 2, Y: width / 2, Z: thickness / 2}

	vertices := make([]v3.Vec, boxCorners)
	for i := range vertices {
		v := v3.Vec{X: -half.X, Y: -half.Y, Z: -half.Z}
		if i&1 != 0 {
			v.X = half.X
		}
		if i&2 != 0 {
			v.Y = half.Y
		}
		if i&4 != 0 {
			v.Z = half.Z
		}
		vertices[i] = v
	}

	faces := make([]Face, len(boxFaces))
	copy(faces, boxFaces[:])

	return &Mesh{
		Name:     BoxName,
		Vertices: vertices,
		Faces:    faces,
	}
}
