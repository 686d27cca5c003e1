// Package stl serializes triangle meshes to the STL file format.
//
// Two layouts are supported:
//   - binary: 80-byte header, uint32 triangle count, then 50 bytes per
//     triangle (normal, three vertices, attribute byte count). All numbers
//     are little-endian, coordinates are float32.
//   - ASCII: "solid <name>" ... "endsolid <name>" with one facet block per
//     triangle.
//
// Encoding is pure and deterministic: the same mesh and header always
// produce the same bytes.
package stl

import (
	"fmt"
)

const (
	// HeaderSize is the fixed size of the binary STL header.
	HeaderSize = 80

	// triangleSize is normal (12) + 3 vertices (36) + attribute count (2).
	triangleSize = 50

	// DefaultHeader is written into the binary header when none is configured.
	DefaultHeader = "boxgen binary STL"
)

// BinarySize returns the size in bytes of a binary STL holding n triangles.
func BinarySize(n int) int {
	return HeaderSize + 4 + n*triangleSize
}

// Format selects the STL layout.
type Format string

const (
	FormatBinary Format = "binary"
	FormatASCII  Format = "ascii"
)

// ParseFormat maps a request value to a Format. The empty string means
// binary. Matching is case-sensitive, like the request validation.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatBinary:
		return FormatBinary, nil
	case FormatASCII:
		return FormatASCII, nil
	default:
		return "", fmt.Errorf("unknown STL format %q", s)
	}
}

// EncodingError reports a mesh that cannot be written as STL.
type EncodingError struct {
	// Face is the offending face index, or -1 when the problem is not tied
	// to a single face.
	Face   int
	Reason string
}

func (e *EncodingError) Error() string {
	if e.Face < 0 {
		return "stl: " + e.Reason
	}
	return fmt.Sprintf("stl: face %d: %s", e.Face, e.Reason)
}

// Is makes errors.Is(err, &EncodingError{}) match any EncodingError.
func (e *EncodingError) Is(target error) bool {
	_, ok := target.(*EncodingError)
	return ok
}
