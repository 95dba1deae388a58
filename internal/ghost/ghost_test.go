package ghost

import (
	"testing"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/dataset"
	"github.com/stretchr/testify/require"
)

func TestPointLevelsChebyshev(t *testing.T) {
	whole := vispipe.Extent{0, 9, 0, 9, 0, 0}
	zero := vispipe.Extent{0, 4, 0, 9, 0, 0}
	actual := vispipe.Extent{0, 6, 0, 9, 0, 0}
	levels := PointLevels(whole, zero, actual)
	require.Len(t, levels, actual.NumberOfPoints())
	g := dataset.NewGrid(actual)
	for j := 0; j <= 9; j++ {
		require.Equal(t, uint8(0), levels[g.PointIndex(4, j, 0)])
		require.Equal(t, uint8(1), levels[g.PointIndex(5, j, 0)])
		require.Equal(t, uint8(2), levels[g.PointIndex(6, j, 0)])
	}
}

func TestPointLevelsCorner(t *testing.T) {
	whole := vispipe.Extent{0, 9, 0, 9, 0, 0}
	zero := vispipe.Extent{5, 9, 5, 9, 0, 0}
	actual := vispipe.Extent{3, 9, 3, 9, 0, 0}
	levels := PointLevels(whole, zero, actual)
	g := dataset.NewGrid(actual)
	require.Equal(t, uint8(2), levels[g.PointIndex(3, 3, 0)])
	require.Equal(t, uint8(2), levels[g.PointIndex(3, 7, 0)])
	require.Equal(t, uint8(1), levels[g.PointIndex(4, 3+1, 0)])
	require.Equal(t, uint8(0), levels[g.PointIndex(9, 9, 0)])
}

func TestCellLevelsLowerCornerOwnership(t *testing.T) {
	whole := vispipe.Extent{0, 9, 0, 0, 0, 0}
	zero := vispipe.Extent{5, 9, 0, 0, 0, 0}
	actual := vispipe.Extent{3, 9, 0, 0, 0, 0}
	levels := CellLevels(whole, zero, actual)
	// cells 3..8, flat y and z
	require.Equal(t, []uint8{2, 1, 0, 0, 0, 0}, levels)
}

func TestGenerateAndNeeded(t *testing.T) {
	whole := vispipe.Extent{0, 9, 0, 9, 0, 0}
	req := vispipe.PieceRequest{Piece: 0, NumberOfPieces: 2, GhostLevel: 1}
	g := dataset.NewGrid(vispipe.Extent{0, 5, 0, 9, 0, 0})
	require.True(t, Needed(g, vispipe.WholePieceRequest, req))
	Generate(g, whole, vispipe.Extent{0, 4, 0, 9, 0, 0}, req)
	points, ok := g.PointArray(vispipe.GhostLevelsArrayName)
	require.True(t, ok)
	require.Len(t, points, 60)
	cells, ok := g.CellArray(vispipe.GhostLevelsArrayName)
	require.True(t, ok)
	require.Len(t, cells, 45)
	require.False(t, Needed(g, req, req))
	require.False(t, Needed(g, vispipe.WholePieceRequest, vispipe.WholePieceRequest))
}

func TestGenerateWithoutGhostLayersSkipsCells(t *testing.T) {
	whole := vispipe.Extent{0, 9, 0, 9, 0, 0}
	req := vispipe.PieceRequest{Piece: 1, NumberOfPieces: 2}
	g := dataset.NewGrid(vispipe.Extent{5, 9, 0, 9, 0, 0})
	Generate(g, whole, vispipe.Extent{5, 9, 0, 9, 0, 0}, req)
	points, ok := g.PointArray(vispipe.GhostLevelsArrayName)
	require.True(t, ok)
	for _, l := range points {
		require.Equal(t, uint8(0), l)
	}
	_, ok = g.CellArray(vispipe.GhostLevelsArrayName)
	require.False(t, ok)
}
