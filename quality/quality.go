// Package quality reports the standard finite-volume mesh checks:
// cell closedness, face non-orthogonality and volume and area extremes.
package quality

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/notargets/fvmesh/config"
	"github.com/notargets/fvmesh/mesh"
)

// Report summarises the geometric quality of a mesh
type Report struct {
	NCells         int
	NFaces         int
	NInternalFaces int
	NPoints        int
	Bounds         r3.Box

	// Cell volumes
	TotalVolume        float64
	MinVolume          float64
	MaxVolume          float64
	NonPositiveVolumes int // Cells with volume <= 0

	// Face area magnitudes
	MinFaceArea float64
	MaxFaceArea float64

	// Closedness[c] = |sum of outward area vectors| / sum of area magnitudes
	Closedness    []float64
	MaxClosedness float64
	WorstClosed   int // Cell with MaxClosedness, -1 without cells

	// NonOrthogonality[f] is the angle in degrees between the area vector of
	// internal face f and the owner to neighbour centre vector
	NonOrthogonality     []float64
	MaxNonOrthogonality  float64
	MeanNonOrthogonality float64
	WorstNonOrthogonal   int // Face with MaxNonOrthogonality, -1 without internal faces
}

// CheckMesh computes the quality report of m
func CheckMesh(m *mesh.Mesh) *Report {
	r := &Report{
		NCells:             m.NCells(),
		NFaces:             m.NFaces(),
		NInternalFaces:     m.NInternalFaces(),
		NPoints:            m.NPoints(),
		Bounds:             m.Bounds(),
		WorstClosed:        -1,
		WorstNonOrthogonal: -1,
	}

	vols := m.CellVolumes()
	if len(vols) > 0 {
		r.TotalVolume = floats.Sum(vols)
		r.MinVolume = floats.Min(vols)
		r.MaxVolume = floats.Max(vols)
	}
	for _, v := range vols {
		if v <= 0 {
			r.NonPositiveVolumes++
		}
	}

	magSf := m.MagFaceAreas()
	if len(magSf) > 0 {
		r.MinFaceArea = floats.Min(magSf)
		r.MaxFaceArea = floats.Max(magSf)
	}

	r.closedness(m)
	r.nonOrthogonality(m)
	return r
}

func (r *Report) closedness(m *mesh.Mesh) {
	var (
		sf      = m.FaceAreas()
		magSf   = m.MagFaceAreas()
		owner   = m.Owner()
		nbr     = m.Neighbour()
		sumSf   = make([]r3.Vec, m.NCells())
		sumMag  = make([]float64, m.NCells())
		nInt    = m.NInternalFaces()
		closedC = make([]float64, m.NCells())
	)
	for f, o := range owner {
		sumSf[o] = r3.Add(sumSf[o], sf[f])
		sumMag[o] += magSf[f]
	}
	for f := 0; f < nInt; f++ {
		n := nbr[f]
		sumSf[n] = r3.Sub(sumSf[n], sf[f])
		sumMag[n] += magSf[f]
	}
	for c := range closedC {
		if sumMag[c] > 0 {
			closedC[c] = r3.Norm(sumSf[c]) / sumMag[c]
		}
		if r.WorstClosed < 0 || closedC[c] > r.MaxClosedness {
			r.MaxClosedness = closedC[c]
			r.WorstClosed = c
		}
	}
	r.Closedness = closedC
}

func (r *Report) nonOrthogonality(m *mesh.Mesh) {
	var (
		sf    = m.FaceAreas()
		cc    = m.CellCentres()
		owner = m.Owner()
		nbr   = m.Neighbour()
		nInt  = m.NInternalFaces()
	)
	angles := make([]float64, nInt)
	for f := 0; f < nInt; f++ {
		d := r3.Sub(cc[nbr[f]], cc[owner[f]])
		denom := r3.Norm(d) * r3.Norm(sf[f])
		if denom > 0 {
			cos := math.Max(-1, math.Min(1, r3.Dot(d, sf[f])/denom))
			angles[f] = math.Acos(cos) * 180 / math.Pi
		} else {
			angles[f] = 90
		}
		if r.WorstNonOrthogonal < 0 || angles[f] > r.MaxNonOrthogonality {
			r.MaxNonOrthogonality = angles[f]
			r.WorstNonOrthogonal = f
		}
	}
	if nInt > 0 {
		r.MeanNonOrthogonality = stat.Mean(angles, nil)
	}
	r.NonOrthogonality = angles
}

// Check returns every threshold violation of the report, combined into one
// error, or nil when the mesh passes
func (r *Report) Check(cfg config.QualityConfig) error {
	var err error
	if r.NCells > 0 && r.MinVolume < cfg.MinVolume {
		err = multierr.Append(err, fmt.Errorf("minimum cell volume %g below %g (%d non-positive cells)",
			r.MinVolume, cfg.MinVolume, r.NonPositiveVolumes))
	}
	if r.MaxClosedness > cfg.MaxClosedness {
		err = multierr.Append(err, fmt.Errorf("cell %d not closed: closedness %g above %g",
			r.WorstClosed, r.MaxClosedness, cfg.MaxClosedness))
	}
	if r.MaxNonOrthogonality > cfg.MaxNonOrthogonality {
		err = multierr.Append(err, fmt.Errorf("face %d non-orthogonality %.2f above %.2f degrees",
			r.WorstNonOrthogonal, r.MaxNonOrthogonality, cfg.MaxNonOrthogonality))
	}
	return err
}

// String returns a printable summary of the report
func (r *Report) String() string {
	var sb strings.Builder

	sb.WriteString("=== Mesh Quality Summary ===\n")
	sb.WriteString(fmt.Sprintf("  Points: %d\n", r.NPoints))
	sb.WriteString(fmt.Sprintf("  Faces: %d (%d internal, %d boundary)\n",
		r.NFaces, r.NInternalFaces, r.NFaces-r.NInternalFaces))
	sb.WriteString(fmt.Sprintf("  Cells: %d\n", r.NCells))
	sb.WriteString(fmt.Sprintf("  Bounding box: (%g %g %g) (%g %g %g)\n",
		r.Bounds.Min.X, r.Bounds.Min.Y, r.Bounds.Min.Z,
		r.Bounds.Max.X, r.Bounds.Max.Y, r.Bounds.Max.Z))

	sb.WriteString("\n--- Volumes ---\n")
	sb.WriteString(fmt.Sprintf("  Total: %g\n", r.TotalVolume))
	sb.WriteString(fmt.Sprintf("  Min: %g  Max: %g\n", r.MinVolume, r.MaxVolume))
	sb.WriteString(fmt.Sprintf("  Non-positive cells: %d\n", r.NonPositiveVolumes))

	sb.WriteString("\n--- Faces ---\n")
	sb.WriteString(fmt.Sprintf("  Area min: %g  max: %g\n", r.MinFaceArea, r.MaxFaceArea))
	sb.WriteString(fmt.Sprintf("  Max closedness: %g (cell %d)\n", r.MaxClosedness, r.WorstClosed))
	sb.WriteString(fmt.Sprintf("  Non-orthogonality max: %.2f (face %d)  mean: %.2f\n",
		r.MaxNonOrthogonality, r.WorstNonOrthogonal, r.MeanNonOrthogonality))

	return sb.String()
}
