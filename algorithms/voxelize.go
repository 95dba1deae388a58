package algorithms

import (
	"math"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/dataset"
)

// Voxelize counts the points of an unstructured input falling nearest to each point of a unit
// spaced structured output
type Voxelize struct {
	vispipe.AlgorithmBase
	Whole vispipe.Extent
}

// Ports declares an unstructured input and a structured output
func (v *Voxelize) Ports() vispipe.PortSpec {
	return vispipe.PortSpec{
		Inputs:  []vispipe.InputPortSpec{{Name: "input", Accepts: []vispipe.ExtentType{vispipe.Pieces}}},
		Outputs: []vispipe.ExtentType{vispipe.Extent3D},
	}
}

// NewOutputData creates an empty Grid
func (v *Voxelize) NewOutputData(port int) vispipe.DataObject {
	return dataset.NewGrid(vispipe.EmptyExtent)
}

// RequestInformation publishes the whole extent of the output
func (v *Voxelize) RequestInformation(ctx vispipe.StageContext) error {
	out := ctx.Output(0)
	out.SetWholeExtent(v.Whole)
	out.SetMaximumNumberOfPieces(-1)
	return nil
}

// RequestData bins the input points over the update extent
func (v *Voxelize) RequestData(ctx vispipe.StageContext) error {
	in, err := inputPoints(ctx, 0, 0)
	if err != nil {
		return err
	}
	out, err := outputGrid(ctx, 0)
	if err != nil {
		return err
	}
	ext := ctx.Output(0).UpdateExtent()
	out.Initialize()
	out.Origin = [3]float64{}
	out.Spacing = [3]float64{1, 1, 1}
	out.SetDataExtent(ext)
	counts := make([]float64, ext.NumberOfPoints())
	for _, pt := range in.Points() {
		idx := out.PointIndex(int(math.Round(pt[0])), int(math.Round(pt[1])), int(math.Round(pt[2])))
		if idx >= 0 {
			counts[idx]++
		}
	}
	return out.SetScalars(ScalarsName, counts)
}
