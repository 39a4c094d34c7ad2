package utils

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ElementFace identifies one local face of one element
type ElementFace struct {
	Element  int   // Element index
	LocalID  int   // Local face number within the element
	Vertices []int // Global vertex loop as given by the element
}

// MatchedFace is a mesh face seen from one element (boundary) or two
// elements (internal). Owner is always the lower element index.
type MatchedFace struct {
	Owner     ElementFace
	Neighbour *ElementFace // nil on the boundary
}

// IsInternal reports whether the face joins two elements
func (mf *MatchedFace) IsInternal() bool { return mf.Neighbour != nil }

// FaceMatcher pairs element faces that share the same vertex set
type FaceMatcher struct {
	faces   []MatchedFace
	faceMap map[string]int // sorted vertex key -> index into faces
}

// NewFaceMatcher returns an empty matcher
func NewFaceMatcher() *FaceMatcher {
	return &FaceMatcher{faceMap: make(map[string]int)}
}

// FaceKey returns an orientation independent key for a vertex loop
func FaceKey(vertices []int) string {
	sorted := slices.Clone(vertices)
	slices.Sort(sorted)
	parts := make([]string, len(sorted))
	for i, v := range sorted {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// Add registers a face of an element. A second face with the same vertex
// set closes an internal face; a third is a non-manifold error.
func (fm *FaceMatcher) Add(ef ElementFace) error {
	key := FaceKey(ef.Vertices)
	idx, exists := fm.faceMap[key]
	if !exists {
		fm.faceMap[key] = len(fm.faces)
		fm.faces = append(fm.faces, MatchedFace{Owner: ef})
		return nil
	}

	mf := &fm.faces[idx]
	if mf.Neighbour != nil {
		return fmt.Errorf("face {%s} of element %d is already shared by elements %d and %d",
			key, ef.Element, mf.Owner.Element, mf.Neighbour.Element)
	}
	if ef.Element == mf.Owner.Element {
		return fmt.Errorf("element %d lists face {%s} twice (local faces %d and %d)",
			ef.Element, key, mf.Owner.LocalID, ef.LocalID)
	}
	if ef.Element < mf.Owner.Element {
		ef, mf.Owner = mf.Owner, ef
	}
	mf.Neighbour = &ef
	return nil
}

// Faces returns the matched faces ordered for face-based addressing:
// internal faces first, ascending by owner then neighbour, then boundary
// faces ascending by owner then local face number.
func (fm *FaceMatcher) Faces() []MatchedFace {
	out := slices.Clone(fm.faces)
	slices.SortStableFunc(out, func(a, b MatchedFace) int {
		switch {
		case a.IsInternal() && !b.IsInternal():
			return -1
		case !a.IsInternal() && b.IsInternal():
			return 1
		}
		if a.Owner.Element != b.Owner.Element {
			return a.Owner.Element - b.Owner.Element
		}
		if a.IsInternal() {
			if a.Neighbour.Element != b.Neighbour.Element {
				return a.Neighbour.Element - b.Neighbour.Element
			}
		}
		return a.Owner.LocalID - b.Owner.LocalID
	})
	return out
}

// NumInternal returns the number of faces shared by two elements
func (fm *FaceMatcher) NumInternal() (n int) {
	for i := range fm.faces {
		if fm.faces[i].IsInternal() {
			n++
		}
	}
	return
}
