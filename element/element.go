// Package element describes the standard cell shapes found in
// element-to-vertex meshes and the vertex loops of their faces.
package element

import "fmt"

type ElementGeometry uint8

const (
	Tet ElementGeometry = iota
	Hex
	Prism
	Pyramid
)

// Shapes lists every supported cell shape
var Shapes = []ElementGeometry{Tet, Pyramid, Prism, Hex}

func (eg ElementGeometry) String() string {
	switch eg {
	case Tet:
		return "Tet"
	case Hex:
		return "Hex"
	case Prism:
		return "Prism"
	case Pyramid:
		return "Pyramid"
	default:
		return fmt.Sprintf("ElementGeometry(%d)", uint8(eg))
	}
}

// NumVertices returns the number of corner vertices of the shape, or 0 for
// an unknown shape
func (eg ElementGeometry) NumVertices() int {
	switch eg {
	case Tet:
		return 4
	case Hex:
		return 8
	case Prism:
		return 6
	case Pyramid:
		return 5
	default:
		return 0
	}
}

// Local face loops. Vertex numbering:
//
//	Tet:     0-1-2 base, 3 apex
//	Pyramid: 0-1-2-3 base loop, 4 apex
//	Prism:   0-1-2 bottom, 3-4-5 top (3 above 0)
//	Hex:     0-1-2-3 bottom loop, 4-7 top loop (4 above 0)
//
// Each loop is wound so that its area vector points out of an element whose
// base loop runs counter-clockwise seen from the apex or top side.
var localFaces = map[ElementGeometry][][]int{
	Tet: {
		{0, 1, 2},
		{0, 3, 1},
		{1, 3, 2},
		{0, 2, 3},
	},
	Pyramid: {
		{0, 1, 2, 3},
		{0, 4, 1},
		{1, 4, 2},
		{2, 4, 3},
		{3, 4, 0},
	},
	Prism: {
		{0, 1, 2},
		{3, 5, 4},
		{0, 3, 4, 1},
		{1, 4, 5, 2},
		{2, 5, 3, 0},
	},
	Hex: {
		{0, 1, 2, 3},
		{4, 7, 6, 5},
		{0, 4, 5, 1},
		{1, 5, 6, 2},
		{2, 6, 7, 3},
		{3, 7, 4, 0},
	},
}

// LocalFaces returns the local vertex loops of every face of the shape, or
// nil for an unknown shape. The result must not be modified.
func (eg ElementGeometry) LocalFaces() [][]int {
	return localFaces[eg]
}

// FaceVertices maps the local face loops of eg onto the global vertex
// indices of one element
func FaceVertices(eg ElementGeometry, vertices []int) [][]int {
	lf := eg.LocalFaces()
	faces := make([][]int, len(lf))
	for i, loop := range lf {
		faces[i] = make([]int, len(loop))
		for j, lv := range loop {
			faces[i][j] = vertices[lv]
		}
	}
	return faces
}

// FromVertexCount returns the shape with n corner vertices
func FromVertexCount(n int) (ElementGeometry, error) {
	for _, eg := range Shapes {
		if eg.NumVertices() == n {
			return eg, nil
		}
	}
	return 0, fmt.Errorf("no 3D element with %d vertices", n)
}
