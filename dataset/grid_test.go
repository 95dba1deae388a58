package dataset

import (
	"testing"

	"github.com/go-sif/vispipe"
	"github.com/stretchr/testify/require"
)

func createRampGrid(t *testing.T, ext vispipe.Extent) *Grid {
	g := NewGrid(ext)
	values := make([]float64, g.NumberOfPoints())
	for k := ext[4]; k <= ext[5]; k++ {
		for j := ext[2]; j <= ext[3]; j++ {
			for i := ext[0]; i <= ext[1]; i++ {
				values[g.PointIndex(i, j, k)] = float64(100*k + 10*j + i)
			}
		}
	}
	require.Nil(t, g.SetScalars("ramp", values))
	return g
}

func TestGridCropKeepsValues(t *testing.T) {
	g := createRampGrid(t, vispipe.Extent{0, 9, 0, 9, 0, 0})
	g.AddCellArray("cells", make([]uint8, g.NumberOfCells()))
	require.Nil(t, g.CropToExtent(vispipe.Extent{2, 5, 2, 5, 0, 0}))
	require.Equal(t, vispipe.Extent{2, 5, 2, 5, 0, 0}, g.DataExtent())
	require.Equal(t, 16, g.NumberOfPoints())
	v, ok := g.ScalarAt("ramp", 3, 4, 0)
	require.True(t, ok)
	require.Equal(t, 43.0, v)
	_, ok = g.ScalarAt("ramp", 6, 4, 0)
	require.False(t, ok)
	cells, ok := g.CellArray("cells")
	require.True(t, ok)
	require.Len(t, cells, 9)
}

func TestGridCropOutsideEmpties(t *testing.T) {
	g := createRampGrid(t, vispipe.Extent{0, 3, 0, 3, 0, 3})
	require.Nil(t, g.CropToExtent(vispipe.Extent{10, 12, 0, 3, 0, 3}))
	require.True(t, g.DataExtent().IsEmpty())
	require.Equal(t, 0, g.NumberOfPoints())
}

func TestGridSetDataExtentGrows(t *testing.T) {
	g := createRampGrid(t, vispipe.Extent{0, 1, 0, 1, 0, 0})
	g.SetDataExtent(vispipe.Extent{0, 2, 0, 1, 0, 0})
	v, ok := g.ScalarAt("ramp", 1, 1, 0)
	require.True(t, ok)
	require.Equal(t, 11.0, v)
	v, ok = g.ScalarAt("ramp", 2, 1, 0)
	require.True(t, ok)
	require.Equal(t, 0.0, v)
}

func TestGridCellCountsWithFlatAxis(t *testing.T) {
	g := NewGrid(vispipe.Extent{0, 9, 0, 9, 0, 0})
	require.Equal(t, 81, g.NumberOfCells())
	require.Equal(t, 1, NewGrid(vispipe.Extent{4, 4, 4, 4, 4, 4}).NumberOfCells())
}

func TestGridBounds(t *testing.T) {
	g := NewGrid(vispipe.Extent{1, 3, 0, 2, 0, 0})
	g.Spacing = [3]float64{0.5, 2, 1}
	require.Equal(t, vispipe.Bounds{0.5, 1.5, 0, 4, 0, 0}, g.Bounds())
}

func TestPointSetArraysFollowPoints(t *testing.T) {
	p := NewPointSet()
	p.AppendPoint([3]float64{1, 2, 3})
	require.Nil(t, p.SetScalars("s", []float64{7}))
	p.AppendPoint([3]float64{-1, 5, 0})
	s, ok := p.Scalars("s")
	require.True(t, ok)
	require.Equal(t, []float64{7, 0}, s)
	require.Equal(t, vispipe.Bounds{-1, 1, 2, 5, 0, 3}, p.Bounds())
	require.True(t, p.DataExtent().IsEmpty())
	p.Initialize()
	require.Equal(t, 0, p.NumberOfPoints())
}
