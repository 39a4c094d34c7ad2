package mesh

import "fmt"

// Error is implemented by every structural error returned from New. The set
// of implementations is closed; match a specific one with errors.As.
type Error interface {
	error
	meshError()
}

// OwnerLengthMismatchError reports len(owner) != len(faces)
type OwnerLengthMismatchError struct {
	Expected int // len(faces)
	Got      int // len(owner)
}

func (e *OwnerLengthMismatchError) Error() string {
	return fmt.Sprintf("owner length mismatch: expected %d, got %d", e.Expected, e.Got)
}

// NeighbourLengthMismatchError reports len(neighbour) != nInternalFaces
type NeighbourLengthMismatchError struct {
	Expected int // nInternalFaces
	Got      int // len(neighbour)
}

func (e *NeighbourLengthMismatchError) Error() string {
	return fmt.Sprintf("neighbour length mismatch: expected %d, got %d", e.Expected, e.Got)
}

// InternalFaceCountError reports more internal faces than faces
type InternalFaceCountError struct {
	NInternalFaces int
	NFaces         int
}

func (e *InternalFaceCountError) Error() string {
	return fmt.Sprintf("internal face count out of range: n_internal_faces %d, n_faces %d",
		e.NInternalFaces, e.NFaces)
}

// CellCountError reports a negative cell count
type CellCountError struct {
	NCells int
}

func (e *CellCountError) Error() string {
	return fmt.Sprintf("cell count out of range: n_cells %d", e.NCells)
}

// OwnerIndexOutOfRangeError reports owner[Face] outside [0, NCells)
type OwnerIndexOutOfRangeError struct {
	Face   int
	Cell   int
	NCells int
}

func (e *OwnerIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("owner index out of range: face %d, cell %d, n_cells %d",
		e.Face, e.Cell, e.NCells)
}

// NeighbourIndexOutOfRangeError reports neighbour[Face] outside [0, NCells)
type NeighbourIndexOutOfRangeError struct {
	Face   int
	Cell   int
	NCells int
}

func (e *NeighbourIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("neighbour index out of range: face %d, cell %d, n_cells %d",
		e.Face, e.Cell, e.NCells)
}

// PointIndexOutOfRangeError reports a vertex of face Face outside [0, NPoints)
type PointIndexOutOfRangeError struct {
	Face    int
	Point   int
	NPoints int
}

func (e *PointIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("point index out of range: face %d, point %d, n_points %d",
		e.Face, e.Point, e.NPoints)
}

func (*OwnerLengthMismatchError) meshError()      {}
func (*NeighbourLengthMismatchError) meshError()  {}
func (*InternalFaceCountError) meshError()        {}
func (*CellCountError) meshError()                {}
func (*OwnerIndexOutOfRangeError) meshError()     {}
func (*NeighbourIndexOutOfRangeError) meshError() {}
func (*PointIndexOutOfRangeError) meshError()     {}
