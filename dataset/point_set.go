package dataset

import (
	"fmt"

	"github.com/go-sif/vispipe"
)

// PointSet is an unstructured container of points, partitioned into pieces
type PointSet struct {
	piece       vispipe.PieceRequest
	points      [][3]float64
	scalars     map[string][]float64
	pointArrays map[string][]uint8
	cellArrays  map[string][]uint8
}

// NewPointSet creates an empty PointSet
func NewPointSet() *PointSet {
	return &PointSet{
		piece:       vispipe.WholePieceRequest,
		scalars:     make(map[string][]float64),
		pointArrays: make(map[string][]uint8),
		cellArrays:  make(map[string][]uint8),
	}
}

// ExtentType returns Pieces
func (p *PointSet) ExtentType() vispipe.ExtentType {
	return vispipe.Pieces
}

// DataExtent returns EmptyExtent, since a PointSet is not structured
func (p *PointSet) DataExtent() vispipe.Extent {
	return vispipe.EmptyExtent
}

// SetDataExtent does nothing
func (p *PointSet) SetDataExtent(ext vispipe.Extent) {}

// DataPiece returns the piece held by this PointSet
func (p *PointSet) DataPiece() vispipe.PieceRequest {
	return p.piece
}

// SetDataPiece records the piece held by this PointSet
func (p *PointSet) SetDataPiece(piece vispipe.PieceRequest) {
	p.piece = piece
}

// CropToExtent does nothing, since a PointSet has no extent
func (p *PointSet) CropToExtent(ext vispipe.Extent) error {
	return nil
}

// AppendPoint adds a point, returning its index. Existing named arrays are extended with zero values.
func (p *PointSet) AppendPoint(pt [3]float64) int {
	p.points = append(p.points, pt)
	for name, v := range p.scalars {
		p.scalars[name] = append(v, 0)
	}
	for name, v := range p.pointArrays {
		p.pointArrays[name] = append(v, 0)
	}
	return len(p.points) - 1
}

// Points returns the points of this PointSet
func (p *PointSet) Points() [][3]float64 {
	return p.points
}

// NumberOfPoints returns the number of points of this PointSet
func (p *PointSet) NumberOfPoints() int {
	return len(p.points)
}

// Bounds returns the world-space box of all points
func (p *PointSet) Bounds() vispipe.Bounds {
	if len(p.points) == 0 {
		return vispipe.EmptyBounds
	}
	b := vispipe.Bounds{p.points[0][0], p.points[0][0], p.points[0][1], p.points[0][1], p.points[0][2], p.points[0][2]}
	for _, pt := range p.points[1:] {
		for axis := 0; axis < 3; axis++ {
			if pt[axis] < b[2*axis] {
				b[2*axis] = pt[axis]
			}
			if pt[axis] > b[2*axis+1] {
				b[2*axis+1] = pt[axis]
			}
		}
	}
	return b
}

// SetScalars stores a named float64 point array
func (p *PointSet) SetScalars(name string, values []float64) error {
	if len(values) != len(p.points) {
		return fmt.Errorf("scalars %s have %d values for %d points", name, len(values), len(p.points))
	}
	p.scalars[name] = values
	return nil
}

// Scalars returns a named float64 point array
func (p *PointSet) Scalars(name string) ([]float64, bool) {
	v, ok := p.scalars[name]
	return v, ok
}

// AddPointArray stores a named uint8 point array
func (p *PointSet) AddPointArray(name string, values []uint8) {
	p.pointArrays[name] = values
}

// AddCellArray stores a named uint8 cell array
func (p *PointSet) AddCellArray(name string, values []uint8) {
	p.cellArrays[name] = values
}

// PointArray returns a named uint8 point array
func (p *PointSet) PointArray(name string) ([]uint8, bool) {
	v, ok := p.pointArrays[name]
	return v, ok
}

// CellArray returns a named uint8 cell array
func (p *PointSet) CellArray(name string) ([]uint8, bool) {
	v, ok := p.cellArrays[name]
	return v, ok
}

// Initialize releases all data held by this PointSet
func (p *PointSet) Initialize() {
	p.piece = vispipe.WholePieceRequest
	p.points = nil
	p.scalars = make(map[string][]float64)
	p.pointArrays = make(map[string][]uint8)
	p.cellArrays = make(map[string][]uint8)
}

// CopyFrom makes this PointSet a copy of src, sharing no slices with it
func (p *PointSet) CopyFrom(src *PointSet) {
	p.Initialize()
	p.piece = src.piece
	p.points = append([][3]float64(nil), src.points...)
	for name, v := range src.scalars {
		p.scalars[name] = append([]float64(nil), v...)
	}
	for name, v := range src.pointArrays {
		p.pointArrays[name] = append([]uint8(nil), v...)
	}
	for name, v := range src.cellArrays {
		p.cellArrays[name] = append([]uint8(nil), v...)
	}
}
