package vispipe

import "fmt"

// Extent is an index box [xmin,xmax,ymin,ymax,zmin,zmax] over a structured index space.
// Bounds are inclusive.
type Extent [6]int

// EmptyExtent is the canonical empty Extent
var EmptyExtent = Extent{0, -1, 0, -1, 0, -1}

// IsEmpty returns true iff any axis has max < min
func (e Extent) IsEmpty() bool {
	return e[1] < e[0] || e[3] < e[2] || e[5] < e[4]
}

// Contains returns true iff inner lies entirely within e
func (e Extent) Contains(inner Extent) bool {
	return inner[0] >= e[0] && inner[1] <= e[1] &&
		inner[2] >= e[2] && inner[3] <= e[3] &&
		inner[4] >= e[4] && inner[5] <= e[5]
}

// Equal returns true iff both Extents have identical bounds
func (e Extent) Equal(other Extent) bool {
	return e == other
}

// Intersect returns the overlap of two Extents, or EmptyExtent if they do not overlap
func (e Extent) Intersect(other Extent) Extent {
	if e.IsEmpty() || other.IsEmpty() {
		return EmptyExtent
	}
	var res Extent
	for axis := 0; axis < 3; axis++ {
		res[2*axis] = maxInt(e[2*axis], other[2*axis])
		res[2*axis+1] = minInt(e[2*axis+1], other[2*axis+1])
		if res[2*axis+1] < res[2*axis] {
			return EmptyExtent
		}
	}
	return res
}

// Grow expands a non-empty Extent by n on every side
func (e Extent) Grow(n int) Extent {
	if e.IsEmpty() {
		return e
	}
	for axis := 0; axis < 3; axis++ {
		e[2*axis] -= n
		e[2*axis+1] += n
	}
	return e
}

// Clamp restricts e to outer, component-wise
func (e Extent) Clamp(outer Extent) Extent {
	for axis := 0; axis < 3; axis++ {
		if e[2*axis] < outer[2*axis] {
			e[2*axis] = outer[2*axis]
		}
		if e[2*axis+1] > outer[2*axis+1] {
			e[2*axis+1] = outer[2*axis+1]
		}
	}
	return e
}

// Dimensions returns the number of points along each axis
func (e Extent) Dimensions() [3]int {
	if e.IsEmpty() {
		return [3]int{0, 0, 0}
	}
	return [3]int{e[1] - e[0] + 1, e[3] - e[2] + 1, e[5] - e[4] + 1}
}

// NumberOfPoints returns the number of points covered by this Extent
func (e Extent) NumberOfPoints() int {
	d := e.Dimensions()
	return d[0] * d[1] * d[2]
}

// CellDimensions returns the number of cells along each axis. A flat axis counts as one cell layer.
func (e Extent) CellDimensions() [3]int {
	if e.IsEmpty() {
		return [3]int{0, 0, 0}
	}
	d := e.Dimensions()
	for axis := range d {
		if d[axis] > 1 {
			d[axis]--
		}
	}
	return d
}

// NumberOfCells returns the number of cells covered by this Extent
func (e Extent) NumberOfCells() int {
	d := e.CellDimensions()
	return d[0] * d[1] * d[2]
}

// CellExtent returns the index box of the cells of this Extent, addressed by their lower corner point
func (e Extent) CellExtent() Extent {
	if e.IsEmpty() {
		return EmptyExtent
	}
	for axis := 0; axis < 3; axis++ {
		if e[2*axis+1] > e[2*axis] {
			e[2*axis+1]--
		}
	}
	return e
}

func (e Extent) String() string {
	return fmt.Sprintf("[%d,%d,%d,%d,%d,%d]", e[0], e[1], e[2], e[3], e[4], e[5])
}

// Bounds is a world-space box [xmin,xmax,ymin,ymax,zmin,zmax]
type Bounds [6]float64

// EmptyBounds is the canonical empty Bounds
var EmptyBounds = Bounds{0, -1, 0, -1, 0, -1}

// IsEmpty returns true iff any axis has max < min
func (b Bounds) IsEmpty() bool {
	return b[1] < b[0] || b[3] < b[2] || b[5] < b[4]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
