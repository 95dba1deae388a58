package translator

import (
	"testing"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/errors"
	"github.com/stretchr/testify/require"
)

func TestTableLookup(t *testing.T) {
	whole := vispipe.Extent{0, 9, 0, 9, 0, 0}
	table := NewTable(2)
	require.Nil(t, table.SetExtentForPiece(0, vispipe.Extent{0, 2, 0, 9, 0, 0}))
	require.Nil(t, table.SetExtentForPiece(1, vispipe.Extent{3, 9, 0, 9, 0, 0}))
	ext, err := table.PieceToExtent(whole, vispipe.PieceRequest{Piece: 1, NumberOfPieces: 2})
	require.Nil(t, err)
	require.Equal(t, vispipe.Extent{3, 9, 0, 9, 0, 0}, ext)
	ext, err = table.PieceToExtent(whole, vispipe.PieceRequest{Piece: 0, NumberOfPieces: 2, GhostLevel: 2})
	require.Nil(t, err)
	require.Equal(t, vispipe.Extent{0, 4, 0, 9, 0, 0}, ext)
}

func TestTableGhostCap(t *testing.T) {
	whole := vispipe.Extent{0, 9, 0, 9, 0, 0}
	table := NewTable(2)
	require.Nil(t, table.FillFrom(NewBlock(), whole))
	table.MaximumGhostLevel = 1
	ext, err := table.PieceToExtent(whole, vispipe.PieceRequest{Piece: 1, NumberOfPieces: 2, GhostLevel: 3})
	require.Nil(t, err)
	require.Equal(t, vispipe.Extent{4, 9, 0, 9, 0, 0}, ext)
}

func TestTableUnavailablePiece(t *testing.T) {
	whole := vispipe.Extent{0, 9, 0, 9, 0, 0}
	table := NewTable(2)
	require.Nil(t, table.FillFrom(NewBlock(), whole))
	require.Nil(t, table.SetPieceAvailable(0, false))
	require.False(t, table.PieceAvailable(0))
	require.True(t, table.PieceAvailable(1))
	ext, err := table.PieceToExtent(whole, vispipe.PieceRequest{Piece: 0, NumberOfPieces: 2})
	require.Nil(t, err)
	require.True(t, ext.IsEmpty())
}

func TestTableMismatchedPieceCount(t *testing.T) {
	table := NewTable(3)
	_, err := table.PieceToExtent(vispipe.Extent{0, 9, 0, 0, 0, 0}, vispipe.PieceRequest{Piece: 0, NumberOfPieces: 2})
	require.IsType(t, errors.InvalidPieceError{}, err)
	require.IsType(t, errors.InvalidPieceError{}, table.SetExtentForPiece(3, vispipe.EmptyExtent))
}
