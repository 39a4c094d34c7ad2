// Package connectivity derives cell addressing from face-based
// owner/neighbour topology.
package connectivity

import "slices"

// CellFaces returns the faces of each cell. Owner faces come first in face
// order, then the internal faces the cell neighbours, also in face order.
func CellFaces(owner, neighbour []int, nInternalFaces, nCells int) [][]int {
	count := make([]int, nCells)
	for _, o := range owner {
		count[o]++
	}
	for f := 0; f < nInternalFaces; f++ {
		count[neighbour[f]]++
	}

	cellFaces := make([][]int, nCells)
	for c := range cellFaces {
		cellFaces[c] = make([]int, 0, count[c])
	}
	for f, o := range owner {
		cellFaces[o] = append(cellFaces[o], f)
	}
	for f := 0; f < nInternalFaces; f++ {
		n := neighbour[f]
		cellFaces[n] = append(cellFaces[n], f)
	}
	return cellFaces
}

// CellCells returns the neighbouring cells of each cell, one entry per
// internal face in face order. A pair of cells sharing several faces appears
// once per shared face.
func CellCells(owner, neighbour []int, nInternalFaces, nCells int) [][]int {
	cellCells := make([][]int, nCells)
	for f := 0; f < nInternalFaces; f++ {
		o, n := owner[f], neighbour[f]
		cellCells[o] = append(cellCells[o], n)
		cellCells[n] = append(cellCells[n], o)
	}
	return cellCells
}

// CellPoints returns the sorted, duplicate free vertex set of each cell.
func CellPoints(cellFaces, faces [][]int) [][]int {
	cellPoints := make([][]int, len(cellFaces))
	for c, cf := range cellFaces {
		var n int
		for _, f := range cf {
			n += len(faces[f])
		}
		pts := make([]int, 0, n)
		for _, f := range cf {
			pts = append(pts, faces[f]...)
		}
		slices.Sort(pts)
		cellPoints[c] = slices.Clip(slices.Compact(pts))
	}
	return cellPoints
}
