// Package geometry integrates face and cell properties of polyhedral
// finite-volume meshes. Faces are fan-triangulated about their vertex mean
// and cells are split into pyramids about the mean of their face centres, so
// neither planar faces nor convex cells are assumed.
package geometry

import "gonum.org/v1/gonum/spatial/r3"

// VSmall is the magnitude below which an area or volume is treated as zero
// and the centroid falls back to the reference point.
const VSmall = 1e-30

// Face returns the centroid and the area vector of the polygon defined by the
// vertex loop face. The area vector follows the vertex winding; its magnitude
// is the face area. Every index in face must be valid for points.
func Face(points []r3.Vec, face []int) (centre, area r3.Vec) {
	n := len(face)
	if n == 0 {
		return
	}

	var pRef r3.Vec
	for _, idx := range face {
		pRef = r3.Add(pRef, points[idx])
	}
	pRef = r3.Scale(1/float64(n), pRef)

	var (
		weighted r3.Vec
		sumMag   float64
	)
	for i := 0; i < n; i++ {
		vCur := points[face[i]]
		vNext := points[face[(i+1)%n]]

		triArea := r3.Scale(0.5, r3.Cross(r3.Sub(vNext, pRef), r3.Sub(vCur, pRef)))
		triCentre := r3.Scale(1./3., r3.Add(r3.Add(vCur, vNext), pRef))
		triMag := r3.Norm(triArea)

		area = r3.Add(area, triArea)
		weighted = r3.Add(weighted, r3.Scale(triMag, triCentre))
		sumMag += triMag
	}

	// sumMag >= |area|, so the division is safe once |area| clears VSmall.
	// For planar convex faces the two are equal.
	if r3.Norm(area) > VSmall {
		centre = r3.Scale(1/sumMag, weighted)
	} else {
		centre = pRef
	}
	return centre, area
}

// Faces applies Face to every face of the mesh in a single pass.
func Faces(points []r3.Vec, faces [][]int) (centres, areas []r3.Vec) {
	centres = make([]r3.Vec, len(faces))
	areas = make([]r3.Vec, len(faces))
	for f, face := range faces {
		centres[f], areas[f] = Face(points, face)
	}
	return centres, areas
}

// FanConsistent reports whether every non-degenerate fan triangle of face
// is wound the same way as the face as a whole. Self-intersecting loops,
// such as a quad with two vertices swapped, fail.
func FanConsistent(points []r3.Vec, face []int) bool {
	n := len(face)
	if n < 3 {
		return true
	}
	var pRef r3.Vec
	for _, idx := range face {
		pRef = r3.Add(pRef, points[idx])
	}
	pRef = r3.Scale(1/float64(n), pRef)

	tris := make([]r3.Vec, n)
	var area r3.Vec
	for i := 0; i < n; i++ {
		vCur := points[face[i]]
		vNext := points[face[(i+1)%n]]
		tris[i] = r3.Cross(r3.Sub(vNext, pRef), r3.Sub(vCur, pRef))
		area = r3.Add(area, tris[i])
	}
	for _, tri := range tris {
		if r3.Norm(tri) > VSmall && r3.Dot(tri, area) <= 0 {
			return false
		}
	}
	return true
}
