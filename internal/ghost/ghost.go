package ghost

import (
	"math"

	"github.com/go-sif/vispipe"
)

// PointLevels returns one ghost level per point of actual, x fastest: the Chebyshev distance of
// the point from zero, the zero-ghost region owned by the piece. zero is clamped to whole, so
// points on the boundary of the whole extent are never ghosts only by being on that boundary.
func PointLevels(whole, zero, actual vispipe.Extent) []uint8 {
	levels := make([]uint8, actual.NumberOfPoints())
	fillLevels(levels, zero.Intersect(whole), actual)
	return levels
}

// CellLevels returns one ghost level per cell of actual, x fastest. A cell is addressed by its
// lower corner point and belongs to the piece owning that point. A flat axis counts as one cell
// layer.
func CellLevels(whole, zero, actual vispipe.Extent) []uint8 {
	levels := make([]uint8, actual.NumberOfCells())
	fillLevels(levels, zero.Intersect(whole), actual.CellExtent())
	return levels
}

func fillLevels(levels []uint8, zero, box vispipe.Extent) {
	if box.IsEmpty() {
		return
	}
	if zero.IsEmpty() {
		for i := range levels {
			levels[i] = math.MaxUint8
		}
		return
	}
	idx := 0
	for k := box[4]; k <= box[5]; k++ {
		dk := distance(k, zero[4], zero[5])
		for j := box[2]; j <= box[3]; j++ {
			djk := maxInt(dk, distance(j, zero[2], zero[3]))
			for i := box[0]; i <= box[1]; i++ {
				d := maxInt(djk, distance(i, zero[0], zero[1]))
				if d > math.MaxUint8 {
					d = math.MaxUint8
				}
				levels[idx] = uint8(d)
				idx++
			}
		}
	}
}

func distance(v, lo, hi int) int {
	if v < lo {
		return lo - v
	}
	if v > hi {
		return v - hi
	}
	return 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Needed returns true iff structured data produced for req must be annotated with ghost levels.
// prev is the piece the data held before it was stamped with req.
func Needed(d vispipe.DataObject, prev, req vispipe.PieceRequest) bool {
	if req.NumberOfPieces <= 1 {
		return false
	}
	if prev != req {
		return true
	}
	if _, ok := d.PointArray(vispipe.GhostLevelsArrayName); !ok {
		return true
	}
	if req.GhostLevel > 0 {
		if _, ok := d.CellArray(vispipe.GhostLevelsArrayName); !ok {
			return true
		}
	}
	return false
}

// Generate annotates structured data with point ghost levels, and with cell ghost levels when
// ghost layers were requested. zero is the piece's extent without ghost layers.
func Generate(d vispipe.DataObject, whole, zero vispipe.Extent, req vispipe.PieceRequest) {
	actual := d.DataExtent()
	d.AddPointArray(vispipe.GhostLevelsArrayName, PointLevels(whole, zero, actual))
	if req.GhostLevel > 0 {
		d.AddCellArray(vispipe.GhostLevelsArrayName, CellLevels(whole, zero, actual))
	}
}
