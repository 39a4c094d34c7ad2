// Package mesh holds the validated, immutable face-based topology of a
// finite-volume mesh and serves its derived geometry and connectivity.
//
// A Mesh is built once with New. Every derived quantity is computed on
// first use, exactly once, and the same backing slice is returned on every
// later call. A Mesh may be shared between goroutines without locking.
// Slices returned by any accessor belong to the Mesh and must not be
// modified.
package mesh

import (
	"math"
	"sync"

	"github.com/notargets/fvmesh/connectivity"
	"github.com/notargets/fvmesh/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is a validated face-based finite-volume mesh.
type Mesh struct {
	points         []r3.Vec
	faces          [][]int
	owner          []int
	neighbour      []int
	nInternalFaces int
	nCells         int

	// Write-once caches. Paired quantities share one initializer.
	faceGeometry func() ([]r3.Vec, []r3.Vec)
	cellGeometry func() ([]float64, []r3.Vec)
	magFaceAreas func() []float64
	cellFaces    func() [][]int
	cellCells    func() [][]int
	cellPoints   func() [][]int
	bounds       func() r3.Box
}

// New validates the raw topology and returns the mesh. The mesh takes
// ownership of the slices; the caller must not modify them afterwards.
//
// Checks run in this order and the first failure is returned: owner length,
// neighbour length, internal face count, cell count, owner range, neighbour
// range, point range. All errors implement Error.
func New(points []r3.Vec, faces [][]int, owner, neighbour []int,
	nInternalFaces, nCells int) (*Mesh, error) {
	if err := validate(points, faces, owner, neighbour, nInternalFaces, nCells); err != nil {
		return nil, err
	}

	m := &Mesh{
		points:         points,
		faces:          faces,
		owner:          owner,
		neighbour:      neighbour,
		nInternalFaces: nInternalFaces,
		nCells:         nCells,
	}

	m.faceGeometry = sync.OnceValues(func() ([]r3.Vec, []r3.Vec) {
		return geometry.Faces(m.points, m.faces)
	})
	m.cellGeometry = sync.OnceValues(func() ([]float64, []r3.Vec) {
		centres, areas := m.faceGeometry()
		return geometry.Cells(centres, areas, m.owner, m.neighbour, m.nInternalFaces, m.nCells)
	})
	m.magFaceAreas = sync.OnceValue(func() []float64 {
		areas := m.FaceAreas()
		mag := make([]float64, len(areas))
		for f, sf := range areas {
			mag[f] = r3.Norm(sf)
		}
		return mag
	})
	m.cellFaces = sync.OnceValue(func() [][]int {
		return connectivity.CellFaces(m.owner, m.neighbour, m.nInternalFaces, m.nCells)
	})
	m.cellCells = sync.OnceValue(func() [][]int {
		return connectivity.CellCells(m.owner, m.neighbour, m.nInternalFaces, m.nCells)
	})
	m.cellPoints = sync.OnceValue(func() [][]int {
		return connectivity.CellPoints(m.cellFaces(), m.faces)
	})
	m.bounds = sync.OnceValue(m.computeBounds)

	return m, nil
}

// Raw topology as passed to New. The returned slices are shared with the
// mesh and must not be modified.

func (m *Mesh) Points() []r3.Vec    { return m.points }
func (m *Mesh) Faces() [][]int      { return m.faces }
func (m *Mesh) Owner() []int        { return m.owner }
func (m *Mesh) Neighbour() []int    { return m.neighbour }
func (m *Mesh) NInternalFaces() int { return m.nInternalFaces }
func (m *Mesh) NCells() int         { return m.nCells }
func (m *Mesh) NFaces() int         { return len(m.faces) }
func (m *Mesh) NPoints() int        { return len(m.points) }

// IsInternalFace reports whether face f has a neighbour cell.
func (m *Mesh) IsInternalFace(f int) bool {
	return f >= 0 && f < m.nInternalFaces
}

// FaceCentres returns the area weighted centroid of every face.
func (m *Mesh) FaceCentres() []r3.Vec {
	centres, _ := m.faceGeometry()
	return centres
}

// FaceAreas returns the area vector of every face, oriented out of the owner
// cell when the face is wound accordingly.
func (m *Mesh) FaceAreas() []r3.Vec {
	_, areas := m.faceGeometry()
	return areas
}

// MagFaceAreas returns |FaceAreas()[f]| for every face.
func (m *Mesh) MagFaceAreas() []float64 {
	return m.magFaceAreas()
}

// CellVolumes returns the signed volume of every cell. Cells whose faces are
// wound inwards have negative volume.
func (m *Mesh) CellVolumes() []float64 {
	volumes, _ := m.cellGeometry()
	return volumes
}

// CellCentres returns the volume weighted centroid of every cell. Cells of
// negligible volume report the mean of their face centres.
func (m *Mesh) CellCentres() []r3.Vec {
	_, centres := m.cellGeometry()
	return centres
}

// CellFaces returns, per cell, its owned faces followed by the internal
// faces it neighbours, each group in ascending face order.
func (m *Mesh) CellFaces() [][]int {
	return m.cellFaces()
}

// CellCells returns, per cell, the cells across each of its internal faces.
// Duplicates are kept when two cells share more than one face.
func (m *Mesh) CellCells() [][]int {
	return m.cellCells()
}

// CellPoints returns, per cell, the ascending set of its vertex indices.
func (m *Mesh) CellPoints() [][]int {
	return m.cellPoints()
}

// Bounds returns the axis aligned bounding box of the points. An empty mesh
// has a zero box.
func (m *Mesh) Bounds() r3.Box {
	return m.bounds()
}

func (m *Mesh) computeBounds() (box r3.Box) {
	if len(m.points) == 0 {
		return
	}
	box.Min = r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	box.Max = r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, p := range m.points {
		box.Min = r3.Vec{X: math.Min(box.Min.X, p.X), Y: math.Min(box.Min.Y, p.Y), Z: math.Min(box.Min.Z, p.Z)}
		box.Max = r3.Vec{X: math.Max(box.Max.X, p.X), Y: math.Max(box.Max.Y, p.Y), Z: math.Max(box.Max.Z, p.Z)}
	}
	return box
}
