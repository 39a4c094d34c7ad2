package utils

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// RawMesh holds the unvalidated arrays accepted by mesh.New
type RawMesh struct {
	Points         []r3.Vec
	Faces          [][]int
	Owner          []int
	Neighbour      []int
	NInternalFaces int
	NCells         int
}

// TestMeshes provides a collection of standard meshes with known geometry,
// shared by the package tests
type TestMeshes struct {
	UnitCube     RawMesh // 1 cell, 6 boundary faces
	TwoCubes     RawMesh // 2 cells joined at x=1
	LShapedPrism RawMesh // 1 non-convex cell, volume 3
	Box          RawMesh // 3x2x2 structured grid of unit cells
}

// GetStandardTestMeshes returns freshly allocated standard meshes
func GetStandardTestMeshes() *TestMeshes {
	return &TestMeshes{
		UnitCube:     UnitCube(),
		TwoCubes:     TwoCubes(),
		LShapedPrism: LShapedPrism(),
		Box:          BoxGrid(3, 2, 2, r3.Vec{X: 3, Y: 2, Z: 2}),
	}
}

// UnitCube returns the cube [0,1]^3 as one cell with outward wound faces
func UnitCube() RawMesh {
	return RawMesh{
		Points: unitCubePoints(),
		Faces: [][]int{
			{0, 1, 2, 3}, // z-
			{4, 7, 6, 5}, // z+
			{0, 4, 5, 1}, // y-
			{2, 6, 7, 3}, // y+
			{0, 3, 7, 4}, // x-
			{1, 5, 6, 2}, // x+
		},
		Owner:     []int{0, 0, 0, 0, 0, 0},
		Neighbour: []int{},
		NCells:    1,
	}
}

func unitCubePoints() []r3.Vec {
	return []r3.Vec{
		{X: 0, Y: 0, Z: 0}, // 0
		{X: 1, Y: 0, Z: 0}, // 1
		{X: 1, Y: 1, Z: 0}, // 2
		{X: 0, Y: 1, Z: 0}, // 3
		{X: 0, Y: 0, Z: 1}, // 4
		{X: 1, Y: 0, Z: 1}, // 5
		{X: 1, Y: 1, Z: 1}, // 6
		{X: 0, Y: 1, Z: 1}, // 7
	}
}

// TwoCubes returns cells [0,1]x[0,1]^2 and [1,2]x[0,1]^2 sharing the
// internal face 0 at x=1, owned by cell 0
func TwoCubes() RawMesh {
	points := append(unitCubePoints(),
		r3.Vec{X: 2, Y: 0, Z: 0}, // 8
		r3.Vec{X: 2, Y: 1, Z: 0}, // 9
		r3.Vec{X: 2, Y: 0, Z: 1}, // 10
		r3.Vec{X: 2, Y: 1, Z: 1}, // 11
	)
	return RawMesh{
		Points: points,
		Faces: [][]int{
			{1, 5, 6, 2},   // internal, +x
			{0, 1, 2, 3},   // cell 0 z-
			{4, 7, 6, 5},   // cell 0 z+
			{0, 4, 5, 1},   // cell 0 y-
			{2, 6, 7, 3},   // cell 0 y+
			{0, 3, 7, 4},   // cell 0 x-
			{8, 10, 11, 9}, // cell 1 x+
			{1, 5, 10, 8},  // cell 1 y-
			{2, 9, 11, 6},  // cell 1 y+
			{1, 8, 9, 2},   // cell 1 z-
			{5, 6, 11, 10}, // cell 1 z+
		},
		Owner:          []int{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1},
		Neighbour:      []int{1},
		NInternalFaces: 1,
		NCells:         2,
	}
}

// LShapedPrism returns a single non-convex cell: the L-shaped hexagon
// (0,0) (2,0) (2,1) (1,1) (1,2) (0,2) extruded over z in [0,1].
// Volume 3, centroid (5/6, 5/6, 1/2).
func LShapedPrism() RawMesh {
	outline := []r3.Vec{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1},
		{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2},
	}
	n := len(outline)
	points := make([]r3.Vec, 0, 2*n)
	points = append(points, outline...)
	for _, p := range outline {
		points = append(points, r3.Vec{X: p.X, Y: p.Y, Z: 1})
	}

	bottom := make([]int, n)
	top := make([]int, n)
	for i := 0; i < n; i++ {
		bottom[i] = i
		top[i] = n + (n-i)%n
	}
	faces := [][]int{bottom, top}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		faces = append(faces, []int{i, n + i, n + j, j})
	}

	return RawMesh{
		Points:    points,
		Faces:     faces,
		Owner:     make([]int, len(faces)),
		Neighbour: []int{},
		NCells:    1,
	}
}

// BoxGrid returns a structured nx*ny*nz hexahedral grid spanning
// [0,size.X]x[0,size.Y]x[0,size.Z]. Cell (i,j,k) has index i+nx*(j+ny*k).
// Internal faces come first in upper triangular order (by owner, then
// neighbour), followed by the boundary faces.
func BoxGrid(nx, ny, nz int, size r3.Vec) RawMesh {
	pt := func(i, j, k int) int { return i + (nx+1)*(j+(ny+1)*k) }
	cell := func(i, j, k int) int { return i + nx*(j+ny*k) }

	points := make([]r3.Vec, 0, (nx+1)*(ny+1)*(nz+1))
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				points = append(points, r3.Vec{
					X: size.X * float64(i) / float64(nx),
					Y: size.Y * float64(j) / float64(ny),
					Z: size.Z * float64(k) / float64(nz),
				})
			}
		}
	}

	// Faces normal to +x, +y, +z with lower corner at point (i,j,k)
	xFace := func(i, j, k int) []int { return []int{pt(i, j, k), pt(i, j, k+1), pt(i, j+1, k+1), pt(i, j+1, k)} }
	yFace := func(i, j, k int) []int { return []int{pt(i+1, j, k), pt(i+1, j, k+1), pt(i, j, k+1), pt(i, j, k)} }
	zFace := func(i, j, k int) []int { return []int{pt(i, j, k), pt(i, j+1, k), pt(i+1, j+1, k), pt(i+1, j, k)} }

	raw := RawMesh{Points: points, NCells: nx * ny * nz}
	addFace := func(f []int, o int) {
		raw.Faces = append(raw.Faces, f)
		raw.Owner = append(raw.Owner, o)
	}

	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				c := cell(i, j, k)
				if i+1 < nx {
					addFace(xFace(i+1, j, k), c)
					raw.Neighbour = append(raw.Neighbour, cell(i+1, j, k))
				}
				if j+1 < ny {
					addFace(yFace(i, j+1, k), c)
					raw.Neighbour = append(raw.Neighbour, cell(i, j+1, k))
				}
				if k+1 < nz {
					addFace(zFace(i, j, k+1), c)
					raw.Neighbour = append(raw.Neighbour, cell(i, j, k+1))
				}
			}
		}
	}
	raw.NInternalFaces = len(raw.Faces)

	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			addFace(Reversed(xFace(0, j, k)), cell(0, j, k))
			addFace(xFace(nx, j, k), cell(nx-1, j, k))
		}
	}
	for k := 0; k < nz; k++ {
		for i := 0; i < nx; i++ {
			addFace(Reversed(yFace(i, 0, k)), cell(i, 0, k))
			addFace(yFace(i, ny, k), cell(i, ny-1, k))
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			addFace(Reversed(zFace(i, j, 0)), cell(i, j, 0))
			addFace(zFace(i, j, nz), cell(i, j, nz-1))
		}
	}
	if raw.Neighbour == nil {
		raw.Neighbour = []int{}
	}
	return raw
}

// Reversed returns a copy of the vertex loop in the opposite winding
func Reversed(face []int) []int {
	r := make([]int, len(face))
	for i, v := range face {
		r[len(face)-1-i] = v
	}
	return r
}

// Translated returns a copy of raw with every point shifted by offset
func (raw RawMesh) Translated(offset r3.Vec) RawMesh {
	out := raw
	out.Points = make([]r3.Vec, len(raw.Points))
	for i, p := range raw.Points {
		out.Points[i] = r3.Add(p, offset)
	}
	return out
}

// InsideOut returns a copy of raw with every face wound the other way
func (raw RawMesh) InsideOut() RawMesh {
	out := raw
	out.Faces = make([][]int, len(raw.Faces))
	for f, face := range raw.Faces {
		out.Faces[f] = Reversed(face)
	}
	return out
}
