package mesh

import "gonum.org/v1/gonum/spatial/r3"

// validate checks the raw topology arrays in a fixed order and returns the
// first violation found. Geometry is not inspected.
func validate(points []r3.Vec, faces [][]int, owner, neighbour []int,
	nInternalFaces, nCells int) error {

	if len(owner) != len(faces) {
		return &OwnerLengthMismatchError{Expected: len(faces), Got: len(owner)}
	}
	if len(neighbour) != nInternalFaces {
		return &NeighbourLengthMismatchError{Expected: nInternalFaces, Got: len(neighbour)}
	}
	if nInternalFaces > len(faces) {
		return &InternalFaceCountError{NInternalFaces: nInternalFaces, NFaces: len(faces)}
	}
	if nCells < 0 {
		return &CellCountError{NCells: nCells}
	}

	for face, cell := range owner {
		if cell < 0 || cell >= nCells {
			return &OwnerIndexOutOfRangeError{Face: face, Cell: cell, NCells: nCells}
		}
	}
	for face, cell := range neighbour {
		if cell < 0 || cell >= nCells {
			return &NeighbourIndexOutOfRangeError{Face: face, Cell: cell, NCells: nCells}
		}
	}

	nPoints := len(points)
	for face, verts := range faces {
		for _, point := range verts {
			if point < 0 || point >= nPoints {
				return &PointIndexOutOfRangeError{Face: face, Point: point, NPoints: nPoints}
			}
		}
	}
	return nil
}
