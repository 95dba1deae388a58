package translator

import (
	"testing"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/errors"
	"github.com/stretchr/testify/require"
)

func TestBlockScenarioTwoPieces(t *testing.T) {
	tr := NewBlock()
	whole := vispipe.Extent{0, 9, 0, 9, 0, 0}
	ext, err := tr.PieceToExtent(whole, vispipe.PieceRequest{Piece: 0, NumberOfPieces: 2})
	require.Nil(t, err)
	require.Equal(t, vispipe.Extent{0, 4, 0, 9, 0, 0}, ext)
	ext, err = tr.PieceToExtent(whole, vispipe.PieceRequest{Piece: 1, NumberOfPieces: 2})
	require.Nil(t, err)
	require.Equal(t, vispipe.Extent{5, 9, 0, 9, 0, 0}, ext)
}

func TestBlockSinglePieceIsWhole(t *testing.T) {
	whole := vispipe.Extent{-3, 7, 2, 4, 0, 11}
	ext, err := NewBlock().PieceToExtent(whole, vispipe.PieceRequest{Piece: 0, NumberOfPieces: 1, GhostLevel: 3})
	require.Nil(t, err)
	require.Equal(t, whole, ext)
}

func TestBlockInvalidPiece(t *testing.T) {
	tr := NewBlock()
	whole := vispipe.Extent{0, 9, 0, 9, 0, 0}
	for _, req := range []vispipe.PieceRequest{
		{Piece: 2, NumberOfPieces: 2},
		{Piece: -1, NumberOfPieces: 2},
		{Piece: 0, NumberOfPieces: 0},
		{Piece: 0, NumberOfPieces: 2, GhostLevel: -1},
	} {
		_, err := tr.PieceToExtent(whole, req)
		require.NotNil(t, err)
		require.IsType(t, errors.InvalidPieceError{}, err)
	}
}

func TestBlockPartitionCompleteness(t *testing.T) {
	wholes := []vispipe.Extent{
		{0, 9, 0, 9, 0, 0},
		{0, 0, 0, 0, 0, 0},
		{-5, 5, 0, 3, 2, 8},
		{0, 31, 0, 0, 0, 0},
		{0, 2, 0, 2, 0, 2},
	}
	modes := []SplitMode{BlockMode, XSlabMode, YSlabMode, ZSlabMode}
	for _, mode := range modes {
		tr := &Block{Mode: mode}
		for _, whole := range wholes {
			for n := 1; n <= 40; n++ {
				counts := make(map[[3]int]int)
				for p := 0; p < n; p++ {
					ext, err := tr.PieceToExtent(whole, vispipe.PieceRequest{Piece: p, NumberOfPieces: n})
					require.Nil(t, err)
					if ext.IsEmpty() {
						continue
					}
					require.True(t, whole.Contains(ext), "piece %d/%d %v escapes %v", p, n, ext, whole)
					for k := ext[4]; k <= ext[5]; k++ {
						for j := ext[2]; j <= ext[3]; j++ {
							for i := ext[0]; i <= ext[1]; i++ {
								counts[[3]int{i, j, k}]++
							}
						}
					}
				}
				require.Equal(t, whole.NumberOfPoints(), len(counts), "mode %d whole %v pieces %d", mode, whole, n)
				for pt, c := range counts {
					require.Equal(t, 1, c, "point %v covered %d times", pt, c)
				}
			}
		}
	}
}

func TestBlockEmptyWhole(t *testing.T) {
	ext, err := NewBlock().PieceToExtent(vispipe.EmptyExtent, vispipe.PieceRequest{Piece: 1, NumberOfPieces: 4})
	require.Nil(t, err)
	require.True(t, ext.IsEmpty())
}

func TestBlockDeterminism(t *testing.T) {
	whole := vispipe.Extent{0, 63, 0, 17, 0, 5}
	req := vispipe.PieceRequest{Piece: 5, NumberOfPieces: 13, GhostLevel: 2}
	first, err := NewBlock().PieceToExtent(whole, req)
	require.Nil(t, err)
	for i := 0; i < 10; i++ {
		again, err := NewBlock().PieceToExtent(whole, req)
		require.Nil(t, err)
		require.Equal(t, first, again)
	}
}

func TestBlockGhostMonotonicity(t *testing.T) {
	tr := NewBlock()
	whole := vispipe.Extent{0, 19, 0, 9, 0, 4}
	for n := 2; n <= 8; n++ {
		for p := 0; p < n; p++ {
			prev, err := tr.PieceToExtent(whole, vispipe.PieceRequest{Piece: p, NumberOfPieces: n})
			require.Nil(t, err)
			for g := 1; g <= 4; g++ {
				ext, err := tr.PieceToExtent(whole, vispipe.PieceRequest{Piece: p, NumberOfPieces: n, GhostLevel: g})
				require.Nil(t, err)
				require.True(t, ext.Contains(prev))
				require.True(t, whole.Contains(ext))
				prev = ext
			}
		}
	}
}

func TestBlockGhostClampedAtBoundary(t *testing.T) {
	whole := vispipe.Extent{0, 9, 0, 9, 0, 0}
	ext, err := NewBlock().PieceToExtent(whole, vispipe.PieceRequest{Piece: 0, NumberOfPieces: 2, GhostLevel: 1})
	require.Nil(t, err)
	require.Equal(t, vispipe.Extent{0, 5, 0, 9, 0, 0}, ext)
}

func TestBlockTooManyPiecesYieldsEmpty(t *testing.T) {
	whole := vispipe.Extent{0, 1, 0, 0, 0, 0}
	tr := NewBlock()
	var nonEmpty int
	for p := 0; p < 5; p++ {
		ext, err := tr.PieceToExtent(whole, vispipe.PieceRequest{Piece: p, NumberOfPieces: 5})
		require.Nil(t, err)
		if !ext.IsEmpty() {
			nonEmpty++
		}
	}
	require.Equal(t, 2, nonEmpty)
}

func TestSlabMode(t *testing.T) {
	whole := vispipe.Extent{0, 9, 0, 19, 0, 0}
	ext, err := (&Block{Mode: XSlabMode}).PieceToExtent(whole, vispipe.PieceRequest{Piece: 1, NumberOfPieces: 2})
	require.Nil(t, err)
	require.Equal(t, vispipe.Extent{5, 9, 0, 19, 0, 0}, ext)
	ext, err = NewBlock().PieceToExtent(whole, vispipe.PieceRequest{Piece: 1, NumberOfPieces: 2})
	require.Nil(t, err)
	require.Equal(t, vispipe.Extent{0, 9, 10, 19, 0, 0}, ext)
}
