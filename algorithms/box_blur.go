package algorithms

import (
	"fmt"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/dataset"
)

// BoxBlur averages each point's scalar over the box of Radius points around it, so it requests
// Radius extra points on every side of its input
type BoxBlur struct {
	vispipe.AlgorithmBase
	Radius int
}

// Ports declares a single structured input and output
func (b *BoxBlur) Ports() vispipe.PortSpec {
	return vispipe.PortSpec{
		Inputs:  []vispipe.InputPortSpec{{Name: "input", Accepts: []vispipe.ExtentType{vispipe.Extent3D}}},
		Outputs: []vispipe.ExtentType{vispipe.Extent3D},
	}
}

// NewOutputData creates an empty Grid
func (b *BoxBlur) NewOutputData(port int) vispipe.DataObject {
	return dataset.NewGrid(vispipe.EmptyExtent)
}

// RequestUpdateExtent grows the request on the input by the blur radius
func (b *BoxBlur) RequestUpdateExtent(ctx vispipe.StageContext) error {
	update := ctx.Output(0).UpdateExtent()
	in := ctx.Input(0, 0)
	if update.IsEmpty() {
		in.SetUpdateExtent(vispipe.EmptyExtent)
		return nil
	}
	in.SetUpdateExtent(update.Grow(b.Radius).Clamp(in.WholeExtent()))
	return nil
}

// RequestData blurs the input over the update extent
func (b *BoxBlur) RequestData(ctx vispipe.StageContext) error {
	in, err := inputGrid(ctx, 0, 0)
	if err != nil {
		return err
	}
	out, err := outputGrid(ctx, 0)
	if err != nil {
		return err
	}
	src, ok := in.Scalars(ScalarsName)
	if !ok && in.NumberOfPoints() > 0 {
		return fmt.Errorf("input of %s has no %s array", ctx.Name(), ScalarsName)
	}
	have := in.DataExtent()
	target := ctx.Output(0).UpdateExtent().Intersect(have)
	out.Initialize()
	out.Origin = in.Origin
	out.Spacing = in.Spacing
	out.SetDataExtent(target)
	values := make([]float64, 0, target.NumberOfPoints())
	if !target.IsEmpty() {
		for k := target[4]; k <= target[5]; k++ {
			for j := target[2]; j <= target[3]; j++ {
				for i := target[0]; i <= target[1]; i++ {
					box := vispipe.Extent{i, i, j, j, k, k}.Grow(b.Radius).Intersect(have)
					values = append(values, b.average(in, src, box))
				}
			}
		}
	}
	return out.SetScalars(ScalarsName, values)
}

func (b *BoxBlur) average(in *dataset.Grid, src []float64, box vispipe.Extent) float64 {
	sum := 0.0
	for k := box[4]; k <= box[5]; k++ {
		for j := box[2]; j <= box[3]; j++ {
			for i := box[0]; i <= box[1]; i++ {
				sum += src[in.PointIndex(i, j, k)]
			}
		}
	}
	return sum / float64(box.NumberOfPoints())
}
