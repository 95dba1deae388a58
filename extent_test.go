package vispipe

import (
	"testing"

	"github.com/go-sif/vispipe/errors"
	"github.com/stretchr/testify/require"
)

func TestExtentEmptiness(t *testing.T) {
	require.True(t, EmptyExtent.IsEmpty())
	require.True(t, Extent{0, 9, 5, 4, 0, 0}.IsEmpty())
	require.False(t, Extent{0, 0, 0, 0, 0, 0}.IsEmpty())
	require.Equal(t, 0, EmptyExtent.NumberOfPoints())
	require.Equal(t, 0, EmptyExtent.NumberOfCells())
}

func TestExtentContains(t *testing.T) {
	whole := Extent{0, 9, 0, 9, 0, 0}
	require.True(t, whole.Contains(whole))
	require.True(t, whole.Contains(Extent{2, 5, 2, 5, 0, 0}))
	require.False(t, whole.Contains(Extent{20, 25, 0, 9, 0, 0}))
	require.False(t, whole.Contains(Extent{0, 9, 0, 9, 0, 1}))
	require.True(t, whole.Equal(Extent{0, 9, 0, 9, 0, 0}))
}

func TestExtentIntersect(t *testing.T) {
	a := Extent{0, 5, 0, 5, 0, 0}
	require.Equal(t, Extent{3, 5, 2, 5, 0, 0}, a.Intersect(Extent{3, 9, 2, 9, 0, 0}))
	require.Equal(t, EmptyExtent, a.Intersect(Extent{6, 9, 0, 5, 0, 0}))
	require.Equal(t, EmptyExtent, a.Intersect(EmptyExtent))
}

func TestExtentGrowAndClamp(t *testing.T) {
	whole := Extent{0, 9, 0, 9, 0, 0}
	grown := Extent{0, 4, 0, 9, 0, 0}.Grow(1)
	require.Equal(t, Extent{-1, 5, -1, 10, -1, 1}, grown)
	require.Equal(t, Extent{0, 5, 0, 9, 0, 0}, grown.Clamp(whole))
	require.Equal(t, EmptyExtent, EmptyExtent.Grow(3))
}

func TestExtentCounts(t *testing.T) {
	e := Extent{0, 9, 0, 4, 0, 0}
	require.Equal(t, [3]int{10, 5, 1}, e.Dimensions())
	require.Equal(t, 50, e.NumberOfPoints())
	require.Equal(t, [3]int{9, 4, 1}, e.CellDimensions())
	require.Equal(t, 36, e.NumberOfCells())
	require.Equal(t, Extent{0, 8, 0, 3, 0, 0}, e.CellExtent())
	require.Equal(t, "[0,9,0,4,0,0]", e.String())
}

func TestPieceRequestValidate(t *testing.T) {
	require.Nil(t, WholePieceRequest.Validate())
	require.Nil(t, PieceRequest{Piece: 3, NumberOfPieces: 4, GhostLevel: 2}.Validate())
	for _, bad := range []PieceRequest{
		{Piece: -1, NumberOfPieces: 2},
		{Piece: 2, NumberOfPieces: 2},
		{Piece: 0, NumberOfPieces: 0},
		{Piece: 0, NumberOfPieces: 1, GhostLevel: -1},
	} {
		require.IsType(t, errors.InvalidPieceError{}, bad.Validate())
	}
	require.Equal(t, PieceRequest{Piece: 1, NumberOfPieces: 2, GhostLevel: 3}, PieceRequest{Piece: 1, NumberOfPieces: 2}.WithGhostLevel(3))
}

func TestChannelSinkDoesNotBlock(t *testing.T) {
	ch := make(chan Event, 1)
	sink := ChannelSink(ch)
	sink(Event{Type: PreExecuteEvent})
	sink(Event{Type: PostExecuteEvent})
	require.Equal(t, PreExecuteEvent, (<-ch).Type)
	require.Equal(t, "DataGenerated", DataGeneratedEvent.String())
}
