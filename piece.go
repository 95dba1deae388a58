package vispipe

import (
	"fmt"

	"github.com/go-sif/vispipe/errors"
)

// PieceRequest identifies one unstructured partition of a dataset, plus the number of
// ghost layers requested around it
type PieceRequest struct {
	Piece          int
	NumberOfPieces int
	GhostLevel     int
}

// WholePieceRequest requests all of a dataset as a single piece, without ghosts
var WholePieceRequest = PieceRequest{Piece: 0, NumberOfPieces: 1, GhostLevel: 0}

// Validate returns an InvalidPieceError if this PieceRequest is malformed
func (p PieceRequest) Validate() error {
	if p.Piece < 0 || p.NumberOfPieces < 1 || p.Piece >= p.NumberOfPieces || p.GhostLevel < 0 {
		return errors.InvalidPieceError{Piece: p.Piece, NumberOfPieces: p.NumberOfPieces, GhostLevel: p.GhostLevel}
	}
	return nil
}

// WithGhostLevel returns a copy of this PieceRequest with a different ghost level
func (p PieceRequest) WithGhostLevel(ghostLevel int) PieceRequest {
	p.GhostLevel = ghostLevel
	return p
}

func (p PieceRequest) String() string {
	return fmt.Sprintf("piece %d/%d (ghost %d)", p.Piece, p.NumberOfPieces, p.GhostLevel)
}

// ExtentState records which extent and piece a DataObject currently holds
type ExtentState struct {
	DataExtent         Extent
	DataPiece          int
	DataNumberOfPieces int
	DataGhostLevel     int
}

// ExtentStateOf captures the current ExtentState of a DataObject
func ExtentStateOf(d DataObject) ExtentState {
	p := d.DataPiece()
	return ExtentState{
		DataExtent:         d.DataExtent(),
		DataPiece:          p.Piece,
		DataNumberOfPieces: p.NumberOfPieces,
		DataGhostLevel:     p.GhostLevel,
	}
}
