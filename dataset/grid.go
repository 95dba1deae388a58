package dataset

import (
	"fmt"

	"github.com/go-sif/vispipe"
)

// Grid is a structured container of points over an Extent, with an origin and spacing in
// world space. Arrays are stored x fastest.
type Grid struct {
	extent      vispipe.Extent
	piece       vispipe.PieceRequest
	Origin      [3]float64
	Spacing     [3]float64
	scalars     map[string][]float64
	pointArrays map[string][]uint8
	cellArrays  map[string][]uint8
}

// NewGrid creates an empty Grid over ext with unit spacing
func NewGrid(ext vispipe.Extent) *Grid {
	if ext.IsEmpty() {
		ext = vispipe.EmptyExtent
	}
	return &Grid{
		extent:      ext,
		piece:       vispipe.WholePieceRequest,
		Spacing:     [3]float64{1, 1, 1},
		scalars:     make(map[string][]float64),
		pointArrays: make(map[string][]uint8),
		cellArrays:  make(map[string][]uint8),
	}
}

// ExtentType returns Extent3D
func (g *Grid) ExtentType() vispipe.ExtentType {
	return vispipe.Extent3D
}

// DataExtent returns the extent held by this Grid
func (g *Grid) DataExtent() vispipe.Extent {
	return g.extent
}

// SetDataExtent resizes this Grid to ext, keeping the values of overlapping points and cells
func (g *Grid) SetDataExtent(ext vispipe.Extent) {
	if ext.IsEmpty() {
		ext = vispipe.EmptyExtent
	}
	if ext == g.extent {
		return
	}
	g.remap(ext)
}

// DataPiece returns the piece held by this Grid
func (g *Grid) DataPiece() vispipe.PieceRequest {
	return g.piece
}

// SetDataPiece records the piece held by this Grid
func (g *Grid) SetDataPiece(p vispipe.PieceRequest) {
	g.piece = p
}

// NumberOfPoints returns the number of points of this Grid
func (g *Grid) NumberOfPoints() int {
	return g.extent.NumberOfPoints()
}

// NumberOfCells returns the number of cells of this Grid
func (g *Grid) NumberOfCells() int {
	return g.extent.NumberOfCells()
}

// PointIndex returns the array index of a point, or -1 if it lies outside this Grid
func (g *Grid) PointIndex(i, j, k int) int {
	return boxIndex(g.extent, i, j, k)
}

// PointCoordinates returns the world-space position of a point
func (g *Grid) PointCoordinates(i, j, k int) [3]float64 {
	return [3]float64{
		g.Origin[0] + float64(i)*g.Spacing[0],
		g.Origin[1] + float64(j)*g.Spacing[1],
		g.Origin[2] + float64(k)*g.Spacing[2],
	}
}

// Bounds returns the world-space box covered by this Grid
func (g *Grid) Bounds() vispipe.Bounds {
	if g.extent.IsEmpty() {
		return vispipe.EmptyBounds
	}
	lo := g.PointCoordinates(g.extent[0], g.extent[2], g.extent[4])
	hi := g.PointCoordinates(g.extent[1], g.extent[3], g.extent[5])
	return vispipe.Bounds{lo[0], hi[0], lo[1], hi[1], lo[2], hi[2]}
}

// SetScalars stores a named float64 point array
func (g *Grid) SetScalars(name string, values []float64) error {
	if len(values) != g.NumberOfPoints() {
		return fmt.Errorf("scalars %s have %d values for %d points", name, len(values), g.NumberOfPoints())
	}
	g.scalars[name] = values
	return nil
}

// Scalars returns a named float64 point array
func (g *Grid) Scalars(name string) ([]float64, bool) {
	v, ok := g.scalars[name]
	return v, ok
}

// ScalarAt returns the value of a named point array at a point
func (g *Grid) ScalarAt(name string, i, j, k int) (float64, bool) {
	v, ok := g.scalars[name]
	idx := g.PointIndex(i, j, k)
	if !ok || idx < 0 {
		return 0, false
	}
	return v[idx], true
}

// AddPointArray stores a named uint8 point array
func (g *Grid) AddPointArray(name string, values []uint8) {
	g.pointArrays[name] = values
}

// AddCellArray stores a named uint8 cell array
func (g *Grid) AddCellArray(name string, values []uint8) {
	g.cellArrays[name] = values
}

// PointArray returns a named uint8 point array
func (g *Grid) PointArray(name string) ([]uint8, bool) {
	v, ok := g.pointArrays[name]
	return v, ok
}

// CellArray returns a named uint8 cell array
func (g *Grid) CellArray(name string) ([]uint8, bool) {
	v, ok := g.cellArrays[name]
	return v, ok
}

// CropToExtent discards all points and cells outside ext
func (g *Grid) CropToExtent(ext vispipe.Extent) error {
	target := ext.Intersect(g.extent)
	if target == g.extent {
		return nil
	}
	g.remap(target)
	return nil
}

// Initialize releases all data held by this Grid
func (g *Grid) Initialize() {
	g.extent = vispipe.EmptyExtent
	g.piece = vispipe.WholePieceRequest
	g.scalars = make(map[string][]float64)
	g.pointArrays = make(map[string][]uint8)
	g.cellArrays = make(map[string][]uint8)
}

func (g *Grid) remap(ext vispipe.Extent) {
	from := g.extent
	for name, v := range g.scalars {
		g.scalars[name] = remapFloat64(v, from, ext)
	}
	for name, v := range g.pointArrays {
		g.pointArrays[name] = remapUint8(v, from, ext)
	}
	for name, v := range g.cellArrays {
		g.cellArrays[name] = remapUint8(v, from.CellExtent(), ext.CellExtent())
	}
	g.extent = ext
}

func boxIndex(box vispipe.Extent, i, j, k int) int {
	if i < box[0] || i > box[1] || j < box[2] || j > box[3] || k < box[4] || k > box[5] {
		return -1
	}
	dx := box[1] - box[0] + 1
	dy := box[3] - box[2] + 1
	return (i - box[0]) + dx*((j-box[2])+dy*(k-box[4]))
}

// remapFloat64 copies the values of src over box from into a new array over box to
func remapFloat64(src []float64, from, to vispipe.Extent) []float64 {
	dst := make([]float64, to.NumberOfPoints())
	overlap := from.Intersect(to)
	if overlap.IsEmpty() || len(src) != from.NumberOfPoints() {
		return dst
	}
	width := overlap[1] - overlap[0] + 1
	for k := overlap[4]; k <= overlap[5]; k++ {
		for j := overlap[2]; j <= overlap[3]; j++ {
			s := boxIndex(from, overlap[0], j, k)
			d := boxIndex(to, overlap[0], j, k)
			copy(dst[d:d+width], src[s:s+width])
		}
	}
	return dst
}

// remapUint8 copies the values of src over box from into a new array over box to
func remapUint8(src []uint8, from, to vispipe.Extent) []uint8 {
	dst := make([]uint8, to.NumberOfPoints())
	overlap := from.Intersect(to)
	if overlap.IsEmpty() || len(src) != from.NumberOfPoints() {
		return dst
	}
	width := overlap[1] - overlap[0] + 1
	for k := overlap[4]; k <= overlap[5]; k++ {
		for j := overlap[2]; j <= overlap[3]; j++ {
			s := boxIndex(from, overlap[0], j, k)
			d := boxIndex(to, overlap[0], j, k)
			copy(dst[d:d+width], src[s:s+width])
		}
	}
	return dst
}
