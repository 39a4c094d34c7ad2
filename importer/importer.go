// Package importer converts element-to-vertex meshes, as read from Gambit,
// Gmsh or SU2 files, into validated face-based meshes.
package importer

import (
	"fmt"

	gocfdmesh "github.com/notargets/gocfd/DG3D/mesh"
	"github.com/notargets/gocfd/DG3D/mesh/readers"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/fvmesh/element"
	"github.com/notargets/fvmesh/geometry"
	"github.com/notargets/fvmesh/mesh"
	"github.com/notargets/fvmesh/utils"
)

type options struct {
	logger      *zap.Logger
	orientFaces bool
}

// Option configures an import
type Option func(*options)

// WithLogger sets the logger used for import diagnostics
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithOrientFaces controls whether every face is rewound so that its area
// vector points out of its owner element. Enabled by default.
func WithOrientFaces(orient bool) Option {
	return func(o *options) { o.orientFaces = orient }
}

func newOptions(opts []Option) *options {
	o := &options{logger: zap.NewNop(), orientFaces: true}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ReadMeshFile reads a mesh file (format chosen by extension) and converts
// its 3D elements to a face-based mesh.
func ReadMeshFile(path string, opts ...Option) (*mesh.Mesh, error) {
	o := newOptions(opts)
	m, err := readers.ReadMeshFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mesh file %s: %w", path, err)
	}
	o.logger.Debug("mesh file read",
		zap.String("path", path),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("elements", len(m.EtoV)))
	return FromGocfd(m, opts...)
}

// FromGocfd converts the 3D elements of a gocfd mesh. Lower dimensional
// elements (boundary patches) are skipped.
func FromGocfd(m *gocfdmesh.Mesh, opts ...Option) (*mesh.Mesh, error) {
	vertices := make([]r3.Vec, len(m.Vertices))
	for i, v := range m.Vertices {
		switch len(v) {
		case 3:
			vertices[i] = r3.Vec{X: v[0], Y: v[1], Z: v[2]}
		case 2:
			vertices[i] = r3.Vec{X: v[0], Y: v[1]}
		default:
			return nil, fmt.Errorf("vertex %d has %d coordinates", i, len(v))
		}
	}

	// Untyped meshes are taken to hold 3D elements only
	elements := m.EtoV
	if len(m.ElementTypes) == len(m.EtoV) {
		_, elements, _ = m.FilterByDimension(3)
	}
	return FromElements(vertices, elements, opts...)
}

// FromElements builds a face-based mesh from element-to-vertex connectivity.
// The shape of each element is taken from its vertex count (4 tet, 5
// pyramid, 6 prism, 8 hex) and its vertices must follow the local numbering
// of package element; faces that fold over themselves, as a hex given in
// tensor order produces, are rejected. Element k becomes cell k.
func FromElements(vertices []r3.Vec, elements [][]int, opts ...Option) (*mesh.Mesh, error) {
	o := newOptions(opts)

	fm := utils.NewFaceMatcher()
	for k, ev := range elements {
		eg, err := element.FromVertexCount(len(ev))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", k, err)
		}
		for _, v := range ev {
			if v < 0 || v >= len(vertices) {
				return nil, fmt.Errorf("element %d references vertex %d of %d", k, v, len(vertices))
			}
		}
		for lf, fv := range element.FaceVertices(eg, ev) {
			if !geometry.FanConsistent(vertices, fv) {
				return nil, fmt.Errorf("element %d: %s face %d is self-intersecting, check the vertex order",
					k, eg, lf)
			}
			err = fm.Add(utils.ElementFace{Element: k, LocalID: lf, Vertices: fv})
			if err != nil {
				return nil, err
			}
		}
	}

	matched := fm.Faces()
	nInternal := fm.NumInternal()
	faces := make([][]int, len(matched))
	owner := make([]int, len(matched))
	neighbour := make([]int, nInternal)
	var flipped int
	for f, mf := range matched {
		faces[f] = mf.Owner.Vertices
		owner[f] = mf.Owner.Element
		if mf.IsInternal() {
			neighbour[f] = mf.Neighbour.Element
		}
		if o.orientFaces && pointsInward(vertices, elements[owner[f]], faces[f]) {
			faces[f] = utils.Reversed(faces[f])
			flipped++
		}
	}

	msh, err := mesh.New(vertices, faces, owner, neighbour, nInternal, len(elements))
	if err != nil {
		return nil, fmt.Errorf("building face mesh: %w", err)
	}
	o.logger.Info("element mesh converted",
		zap.Int("cells", msh.NCells()),
		zap.Int("faces", msh.NFaces()),
		zap.Int("internalFaces", msh.NInternalFaces()),
		zap.Int("reorientedFaces", flipped))
	return msh, nil
}

// pointsInward reports whether the area vector of face points into the
// element whose vertices are ev
func pointsInward(vertices []r3.Vec, ev []int, face []int) bool {
	var centroid r3.Vec
	for _, v := range ev {
		centroid = r3.Add(centroid, vertices[v])
	}
	centroid = r3.Scale(1/float64(len(ev)), centroid)
	fc, sf := geometry.Face(vertices, face)
	return r3.Dot(sf, r3.Sub(fc, centroid)) < 0
}
