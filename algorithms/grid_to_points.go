package algorithms

import (
	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/dataset"
)

// GridToPoints converts the points of a structured input into an unstructured PointSet, so that
// piece requests downstream are translated into extents upstream
type GridToPoints struct {
	vispipe.AlgorithmBase
	DropGhosts bool // iff true, points with a non-zero ghost level are not converted
}

// Ports declares a structured input and an unstructured output
func (c *GridToPoints) Ports() vispipe.PortSpec {
	return vispipe.PortSpec{
		Inputs:  []vispipe.InputPortSpec{{Name: "input", Accepts: []vispipe.ExtentType{vispipe.Extent3D}}},
		Outputs: []vispipe.ExtentType{vispipe.Pieces},
	}
}

// NewOutputData creates an empty PointSet
func (c *GridToPoints) NewOutputData(port int) vispipe.DataObject {
	return dataset.NewPointSet()
}

// RequestInformation declares that any number of pieces can be produced
func (c *GridToPoints) RequestInformation(ctx vispipe.StageContext) error {
	ctx.Output(0).SetMaximumNumberOfPieces(-1)
	return nil
}

// RequestData converts every point of the input
func (c *GridToPoints) RequestData(ctx vispipe.StageContext) error {
	in, err := inputGrid(ctx, 0, 0)
	if err != nil {
		return err
	}
	out, err := outputPoints(ctx, 0)
	if err != nil {
		return err
	}
	src, _ := in.Scalars(ScalarsName)
	ghosts, hasGhosts := in.PointArray(vispipe.GhostLevelsArrayName)
	ext := in.DataExtent()
	out.Initialize()
	var values []float64
	if !ext.IsEmpty() {
		for k := ext[4]; k <= ext[5]; k++ {
			for j := ext[2]; j <= ext[3]; j++ {
				for i := ext[0]; i <= ext[1]; i++ {
					idx := in.PointIndex(i, j, k)
					if c.DropGhosts && hasGhosts && ghosts[idx] > 0 {
						continue
					}
					out.AppendPoint(in.PointCoordinates(i, j, k))
					if src != nil {
						values = append(values, src[idx])
					}
				}
			}
		}
	}
	if src == nil {
		return nil
	}
	return out.SetScalars(ScalarsName, values)
}
