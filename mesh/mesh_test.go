package mesh_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/fvmesh/mesh"
	"github.com/notargets/fvmesh/utils"
)

func newMesh(t *testing.T, raw utils.RawMesh) *mesh.Mesh {
	t.Helper()
	m, err := mesh.New(raw.Points, raw.Faces, raw.Owner, raw.Neighbour,
		raw.NInternalFaces, raw.NCells)
	require.NoError(t, err)
	return m
}

func assertVecNear(t *testing.T, expected, got r3.Vec, tol float64, msgAndArgs ...interface{}) {
	t.Helper()
	diff := r3.Norm(r3.Sub(got, expected))
	assert.Lessf(t, diff, tol, "expected %v, got %v: %v", expected, got, msgAndArgs)
}

// outwardAreaSum returns the sum of the outward area vectors of cell c
func outwardAreaSum(m *mesh.Mesh, c int) (sum r3.Vec) {
	sf := m.FaceAreas()
	for _, f := range m.CellFaces()[c] {
		if m.Owner()[f] == c {
			sum = r3.Add(sum, sf[f])
		} else {
			sum = r3.Sub(sum, sf[f])
		}
	}
	return sum
}

func TestUnitCube(t *testing.T) {
	m := newMesh(t, utils.UnitCube())

	assert.Equal(t, 1, m.NCells())
	assert.Equal(t, 6, m.NFaces())
	assert.Equal(t, 8, m.NPoints())
	assert.Equal(t, 0, m.NInternalFaces())

	vols := m.CellVolumes()
	require.Len(t, vols, 1)
	assert.Less(t, math.Abs(vols[0]-1), 1e-10, "cell volume %v", vols[0])

	centres := m.CellCentres()
	require.Len(t, centres, 1)
	assertVecNear(t, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, centres[0], 1e-10)

	areas := m.FaceAreas()
	require.Len(t, areas, 6)
	for f, sf := range areas {
		assert.Lessf(t, math.Abs(r3.Norm(sf)-1), 1e-10, "face %d area %v", f, sf)
	}
	assert.InDeltaSlice(t, []float64{1, 1, 1, 1, 1, 1}, m.MagFaceAreas(), 1e-12)

	expectedNormals := []r3.Vec{
		{Z: -1}, {Z: 1}, {Y: -1}, {Y: 1}, {X: -1}, {X: 1},
	}
	for f, n := range expectedNormals {
		assertVecNear(t, n, areas[f], 1e-12, "face", f)
	}

	assert.Less(t, r3.Norm(outwardAreaSum(m, 0)), 1e-12)
	assert.Len(t, m.CellFaces()[0], 6)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, m.CellPoints()[0])
}

func TestTwoCubes(t *testing.T) {
	m := newMesh(t, utils.TwoCubes())

	vols := m.CellVolumes()
	require.Len(t, vols, 2)
	for c, v := range vols {
		assert.Lessf(t, math.Abs(v-1), 1e-10, "cell %d volume %v", c, v)
	}

	centres := m.CellCentres()
	assertVecNear(t, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, centres[0], 1e-10)
	assertVecNear(t, r3.Vec{X: 1.5, Y: 0.5, Z: 0.5}, centres[1], 1e-10)

	cc := m.CellCells()
	require.Len(t, cc, 2)
	assert.Contains(t, cc[0], 1)
	assert.Contains(t, cc[1], 0)

	cf := m.CellFaces()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, cf[0])
	assert.Equal(t, []int{6, 7, 8, 9, 10, 0}, cf[1], "owner faces first, then neighbour faces")

	for c := 0; c < m.NCells(); c++ {
		assert.Lessf(t, r3.Norm(outwardAreaSum(m, c)), 1e-12, "cell %d not closed", c)
	}
	assert.True(t, m.IsInternalFace(0))
	assert.False(t, m.IsInternalFace(1))
	assert.False(t, m.IsInternalFace(-1))
}

func TestBoxGridGeometry(t *testing.T) {
	nx, ny, nz := 3, 2, 2
	m := newMesh(t, utils.BoxGrid(nx, ny, nz, r3.Vec{X: 3, Y: 2, Z: 2}))

	assert.Equal(t, nx*ny*nz, m.NCells())
	assert.Equal(t, 20, m.NInternalFaces())
	assert.Equal(t, 52, m.NFaces())

	vols := m.CellVolumes()
	centres := m.CellCentres()
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				c := i + nx*(j+ny*k)
				assert.InDeltaf(t, 1.0, vols[c], 1e-10, "cell %d", c)
				expected := r3.Vec{X: float64(i) + 0.5, Y: float64(j) + 0.5, Z: float64(k) + 0.5}
				assertVecNear(t, expected, centres[c], 1e-10, "cell", c)
				assert.Lessf(t, r3.Norm(outwardAreaSum(m, c)), 1e-12, "cell %d not closed", c)
			}
		}
	}

	box := m.Bounds()
	assert.Equal(t, r3.Vec{}, box.Min)
	assert.Equal(t, r3.Vec{X: 3, Y: 2, Z: 2}, box.Max)
}

func TestNonConvexCell(t *testing.T) {
	m := newMesh(t, utils.LShapedPrism())

	assert.InDelta(t, 3.0, m.CellVolumes()[0], 1e-10)
	assertVecNear(t, r3.Vec{X: 5. / 6., Y: 5. / 6., Z: 0.5}, m.CellCentres()[0], 1e-10)
	assert.Less(t, r3.Norm(outwardAreaSum(m, 0)), 1e-12)

	// The hexagonal caps are non-convex; their centroid is that of the L
	assertVecNear(t, r3.Vec{X: 5. / 6., Y: 5. / 6.}, m.FaceCentres()[0], 1e-12)
	assertVecNear(t, r3.Vec{X: 5. / 6., Y: 5. / 6., Z: 1}, m.FaceCentres()[1], 1e-12)
	assertVecNear(t, r3.Vec{Z: -3}, m.FaceAreas()[0], 1e-12)
}

func TestInsideOutCell(t *testing.T) {
	m := newMesh(t, utils.UnitCube().InsideOut())

	assert.InDelta(t, -1.0, m.CellVolumes()[0], 1e-10)
	assertVecNear(t, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, m.CellCentres()[0], 1e-10)
}

func TestTranslatedCube(t *testing.T) {
	offset := r3.Vec{X: 1e6, Y: -2e6, Z: 3e6}
	m := newMesh(t, utils.UnitCube().Translated(offset))

	assert.InDelta(t, 1.0, m.CellVolumes()[0], 1e-8)
	assertVecNear(t, r3.Add(offset, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}), m.CellCentres()[0], 1e-6)
}

func TestCellWithoutFaces(t *testing.T) {
	raw := utils.UnitCube()
	raw.NCells = 2
	m := newMesh(t, raw)

	assert.Equal(t, []float64{1, 0}, roundSlice(m.CellVolumes()))
	assert.Equal(t, r3.Vec{}, m.CellCentres()[1])
	assert.Empty(t, m.CellFaces()[1])
	assert.Empty(t, m.CellCells()[1])
	assert.Empty(t, m.CellPoints()[1])
}

func roundSlice(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Round(v*1e9) / 1e9
	}
	return out
}

func TestDegenerateGeometry(t *testing.T) {
	// Collinear face: zero area, centre falls back to the vertex mean
	points := []r3.Vec{{X: 0}, {X: 1}, {X: 2}}
	m, err := mesh.New(points, [][]int{{0, 1, 2}}, []int{0}, []int{}, 0, 1)
	require.NoError(t, err)

	assert.Equal(t, r3.Vec{}, m.FaceAreas()[0])
	assertVecNear(t, r3.Vec{X: 1}, m.FaceCentres()[0], 1e-15)
	assert.Equal(t, 0.0, m.CellVolumes()[0])
	assertVecNear(t, r3.Vec{X: 1}, m.CellCentres()[0], 1e-15)
}

func TestEmptyMesh(t *testing.T) {
	m, err := mesh.New(nil, nil, nil, nil, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, m.NFaces())
	assert.Equal(t, 0, m.NPoints())
	assert.Empty(t, m.FaceCentres())
	assert.Empty(t, m.CellVolumes())
	assert.Empty(t, m.CellFaces())
	assert.Equal(t, r3.Box{}, m.Bounds())
}

func TestCellPointsMatchCellFaces(t *testing.T) {
	tm := utils.GetStandardTestMeshes()
	for name, raw := range map[string]utils.RawMesh{
		"unit-cube":  tm.UnitCube,
		"two-cubes":  tm.TwoCubes,
		"box":        tm.Box,
		"non-convex": tm.LShapedPrism,
	} {
		t.Run(name, func(t *testing.T) {
			m := newMesh(t, raw)
			for c, pts := range m.CellPoints() {
				union := make(map[int]bool)
				for _, f := range m.CellFaces()[c] {
					for _, p := range m.Faces()[f] {
						union[p] = true
					}
				}
				assert.Len(t, pts, len(union), "cell %d", c)
				for i, p := range pts {
					assert.True(t, union[p], "cell %d point %d", c, p)
					if i > 0 {
						assert.Less(t, pts[i-1], p, "cell %d points not strictly ascending", c)
					}
				}
			}
		})
	}
}

func TestLazyAccessorsReturnSameStorage(t *testing.T) {
	m := newMesh(t, utils.TwoCubes())

	assert.Same(t, &m.FaceCentres()[0], &m.FaceCentres()[0])
	assert.Same(t, &m.FaceAreas()[0], &m.FaceAreas()[0])
	assert.Same(t, &m.MagFaceAreas()[0], &m.MagFaceAreas()[0])
	assert.Same(t, &m.CellVolumes()[0], &m.CellVolumes()[0])
	assert.Same(t, &m.CellCentres()[0], &m.CellCentres()[0])
	assert.Same(t, &m.CellFaces()[0], &m.CellFaces()[0])
	assert.Same(t, &m.CellCells()[0], &m.CellCells()[0])
	assert.Same(t, &m.CellPoints()[0], &m.CellPoints()[0])
}

func TestConcurrentFirstAccess(t *testing.T) {
	m := newMesh(t, utils.BoxGrid(4, 4, 4, r3.Vec{X: 1, Y: 1, Z: 1}))

	const workers = 32
	type seen struct {
		vols    *float64
		centres *r3.Vec
		areas   *r3.Vec
		faces   *[]int
		cells   *[]int
		points  *[]int
	}
	results := make([]seen, workers)

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			<-start
			// Alternate the entry point so paired caches race each other
			if w%2 == 0 {
				results[w].centres = &m.CellCentres()[0]
				results[w].vols = &m.CellVolumes()[0]
			} else {
				results[w].vols = &m.CellVolumes()[0]
				results[w].centres = &m.CellCentres()[0]
			}
			results[w].areas = &m.FaceAreas()[0]
			results[w].points = &m.CellPoints()[0]
			results[w].cells = &m.CellCells()[0]
			results[w].faces = &m.CellFaces()[0]
		}(w)
	}
	close(start)
	wg.Wait()

	for w := 1; w < workers; w++ {
		assert.Same(t, results[0].vols, results[w].vols)
		assert.Same(t, results[0].centres, results[w].centres)
		assert.Same(t, results[0].areas, results[w].areas)
		assert.Same(t, results[0].faces, results[w].faces)
		assert.Same(t, results[0].cells, results[w].cells)
		assert.Same(t, results[0].points, results[w].points)
	}
	assert.InDelta(t, 1./64., m.CellVolumes()[0], 1e-12)
}
