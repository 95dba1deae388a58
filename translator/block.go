package translator

import (
	"github.com/go-sif/vispipe"
)

// SplitMode selects which axis a Block translator splits first
type SplitMode int

const (
	// BlockMode always splits the axis with the most points, preferring x, then y, then z on ties
	BlockMode SplitMode = iota
	// XSlabMode splits along x while possible, then falls back to BlockMode
	XSlabMode
	// YSlabMode splits along y while possible, then falls back to BlockMode
	YSlabMode
	// ZSlabMode splits along z while possible, then falls back to BlockMode
	ZSlabMode
)

// ParseSplitMode translates a textual split mode ("block", "x", "y", "z") into a SplitMode
func ParseSplitMode(mode string) (SplitMode, bool) {
	switch mode {
	case "block", "":
		return BlockMode, true
	case "x", "xslab":
		return XSlabMode, true
	case "y", "yslab":
		return YSlabMode, true
	case "z", "zslab":
		return ZSlabMode, true
	default:
		return BlockMode, false
	}
}

// Block divides a whole extent into non-overlapping blocks by recursive bisection of points.
// At each step the remaining pieces are split in two groups of n/2 and n-n/2 pieces, and the
// chosen axis is divided proportionally. Pieces which cannot receive at least one point map to
// the empty extent.
type Block struct {
	Mode SplitMode
}

// NewBlock creates a Block translator in BlockMode
func NewBlock() *Block {
	return &Block{Mode: BlockMode}
}

// PieceToExtent returns the block of whole belonging to a piece, grown by its ghost level
func (b *Block) PieceToExtent(whole vispipe.Extent, req vispipe.PieceRequest) (vispipe.Extent, error) {
	if err := req.Validate(); err != nil {
		return vispipe.EmptyExtent, err
	}
	if whole.IsEmpty() {
		return vispipe.EmptyExtent, nil
	}
	if req.NumberOfPieces == 1 {
		return whole, nil
	}
	ext, ok := b.split(whole, req.Piece, req.NumberOfPieces)
	if !ok {
		return vispipe.EmptyExtent, nil
	}
	if req.GhostLevel > 0 {
		ext = ext.Grow(req.GhostLevel).Clamp(whole)
	}
	return ext, nil
}

func (b *Block) split(ext vispipe.Extent, piece, numPieces int) (vispipe.Extent, bool) {
	for numPieces > 1 {
		axis := b.splitAxis(ext)
		if axis < 0 {
			// the first remaining piece keeps the region
			return ext, piece == 0
		}
		lo, hi := ext[2*axis], ext[2*axis+1]
		size := hi - lo + 1
		numFirst := numPieces / 2
		points := size * numFirst / numPieces
		if points < 1 {
			points = 1
		} else if points > size-1 {
			points = size - 1
		}
		mid := lo + points
		if piece < numFirst {
			ext[2*axis+1] = mid - 1
			numPieces = numFirst
		} else {
			ext[2*axis] = mid
			piece -= numFirst
			numPieces -= numFirst
		}
	}
	return ext, true
}

// splitAxis returns the axis to split next, or -1 if no axis has at least two points
func (b *Block) splitAxis(ext vispipe.Extent) int {
	dims := ext.Dimensions()
	switch b.Mode {
	case XSlabMode:
		if dims[0] >= 2 {
			return 0
		}
	case YSlabMode:
		if dims[1] >= 2 {
			return 1
		}
	case ZSlabMode:
		if dims[2] >= 2 {
			return 2
		}
	}
	axis := -1
	for a := 0; a < 3; a++ {
		if dims[a] >= 2 && (axis < 0 || dims[a] > dims[axis]) {
			axis = a
		}
	}
	return axis
}
