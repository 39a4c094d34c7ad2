package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Cells computes the signed volume and the centroid of every cell from the
// face geometry and the owner/neighbour addressing. Owner faces contribute
// with their area vector as stored, neighbour faces (the first
// nInternalFaces) with it negated.
//
// The inputs are assumed to be consistent: len(owner) == len(faceCentres),
// len(neighbour) >= nInternalFaces and all cell indices < nCells.
func Cells(faceCentres, faceAreas []r3.Vec, owner, neighbour []int,
	nInternalFaces, nCells int) (volumes []float64, centres []r3.Vec) {

	// Reference point: mean of the centres of every incident face
	cRef := make([]r3.Vec, nCells)
	nFaces := make([]int, nCells)
	for f, o := range owner {
		cRef[o] = r3.Add(cRef[o], faceCentres[f])
		nFaces[o]++
	}
	for f := 0; f < nInternalFaces; f++ {
		n := neighbour[f]
		cRef[n] = r3.Add(cRef[n], faceCentres[f])
		nFaces[n]++
	}
	for c := range cRef {
		if nFaces[c] > 0 {
			cRef[c] = r3.Scale(1/float64(nFaces[c]), cRef[c])
		}
	}

	volumes = make([]float64, nCells)
	weighted := make([]r3.Vec, nCells)
	addPyramid := func(c int, fc, sf r3.Vec) {
		pyrVol := r3.Dot(sf, r3.Sub(fc, cRef[c])) / 3
		pyrCentre := r3.Add(r3.Scale(0.75, cRef[c]), r3.Scale(0.25, fc))
		volumes[c] += pyrVol
		weighted[c] = r3.Add(weighted[c], r3.Scale(pyrVol, pyrCentre))
	}

	for f, o := range owner {
		addPyramid(o, faceCentres[f], faceAreas[f])
	}
	for f := 0; f < nInternalFaces; f++ {
		addPyramid(neighbour[f], faceCentres[f], r3.Scale(-1, faceAreas[f]))
	}

	centres = make([]r3.Vec, nCells)
	for c := range centres {
		if math.Abs(volumes[c]) > VSmall {
			centres[c] = r3.Scale(1/volumes[c], weighted[c])
		} else {
			centres[c] = cRef[c]
		}
	}
	return volumes, centres
}

// CellsFromPoints runs the face integration and then Cells.
func CellsFromPoints(points []r3.Vec, faces [][]int, owner, neighbour []int,
	nInternalFaces, nCells int) (volumes []float64, centres []r3.Vec) {
	faceCentres, faceAreas := Faces(points, faces)
	return Cells(faceCentres, faceAreas, owner, neighbour, nInternalFaces, nCells)
}
