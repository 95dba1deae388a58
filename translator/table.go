package translator

import (
	"fmt"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/errors"
)

// Table translates pieces through an explicit table of extents, one per piece
type Table struct {
	extents   []vispipe.Extent
	available []bool
	// MaximumGhostLevel caps the ghost growth applied to table extents. Negative means no cap.
	MaximumGhostLevel int
}

// NewTable creates a Table for numPieces pieces. Every entry starts empty and available.
func NewTable(numPieces int) *Table {
	if numPieces < 1 {
		numPieces = 1
	}
	t := &Table{
		extents:           make([]vispipe.Extent, numPieces),
		available:         make([]bool, numPieces),
		MaximumGhostLevel: -1,
	}
	for i := range t.extents {
		t.extents[i] = vispipe.EmptyExtent
		t.available[i] = true
	}
	return t
}

// NumberOfPieces returns the number of entries in this Table
func (t *Table) NumberOfPieces() int {
	return len(t.extents)
}

func (t *Table) checkPiece(piece int) error {
	if piece < 0 || piece >= len(t.extents) {
		return errors.InvalidPieceError{Piece: piece, NumberOfPieces: len(t.extents)}
	}
	return nil
}

// SetExtentForPiece records the zero-ghost extent of a piece
func (t *Table) SetExtentForPiece(piece int, ext vispipe.Extent) error {
	if err := t.checkPiece(piece); err != nil {
		return err
	}
	t.extents[piece] = ext
	return nil
}

// ExtentForPiece returns the zero-ghost extent of a piece
func (t *Table) ExtentForPiece(piece int) (vispipe.Extent, error) {
	if err := t.checkPiece(piece); err != nil {
		return vispipe.EmptyExtent, err
	}
	return t.extents[piece], nil
}

// SetPieceAvailable marks whether a piece can be produced at all
func (t *Table) SetPieceAvailable(piece int, available bool) error {
	if err := t.checkPiece(piece); err != nil {
		return err
	}
	t.available[piece] = available
	return nil
}

// PieceAvailable returns true iff a piece exists and can be produced
func (t *Table) PieceAvailable(piece int) bool {
	return t.checkPiece(piece) == nil && t.available[piece]
}

// FillFrom fills every entry of this Table with the zero-ghost extents another translator assigns to whole
func (t *Table) FillFrom(src vispipe.ExtentTranslator, whole vispipe.Extent) error {
	n := len(t.extents)
	for piece := 0; piece < n; piece++ {
		ext, err := src.PieceToExtent(whole, vispipe.PieceRequest{Piece: piece, NumberOfPieces: n})
		if err != nil {
			return fmt.Errorf("unable to fill table entry %d: %w", piece, err)
		}
		t.extents[piece] = ext
	}
	return nil
}

// PieceToExtent returns the table extent for a piece, grown by its (capped) ghost level
func (t *Table) PieceToExtent(whole vispipe.Extent, req vispipe.PieceRequest) (vispipe.Extent, error) {
	if err := req.Validate(); err != nil {
		return vispipe.EmptyExtent, err
	}
	if req.NumberOfPieces != len(t.extents) {
		return vispipe.EmptyExtent, errors.InvalidPieceError{Piece: req.Piece, NumberOfPieces: req.NumberOfPieces, GhostLevel: req.GhostLevel}
	}
	if !t.available[req.Piece] {
		return vispipe.EmptyExtent, nil
	}
	ext := t.extents[req.Piece].Intersect(whole)
	if ext.IsEmpty() {
		return vispipe.EmptyExtent, nil
	}
	ghost := req.GhostLevel
	if t.MaximumGhostLevel >= 0 && ghost > t.MaximumGhostLevel {
		ghost = t.MaximumGhostLevel
	}
	if ghost > 0 {
		ext = ext.Grow(ghost).Clamp(whole)
	}
	return ext, nil
}
