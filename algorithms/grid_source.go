package algorithms

import (
	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/dataset"
	"github.com/go-sif/vispipe/translator"
)

// GridSource produces a scalar field over the requested part of a structured whole extent
type GridSource struct {
	vispipe.AlgorithmBase
	Whole       vispipe.Extent
	Origin      [3]float64
	Spacing     [3]float64
	OverProduce bool                    // iff true, the whole extent is produced for every request
	Field       func(i, j, k int) float64 // value at a point, defaulting to i + 100j + 10000k
	Pieces      *translator.Table         // if set, the fixed pieces this source can be split into
}

// NewGridSource creates a GridSource with unit spacing
func NewGridSource(whole vispipe.Extent) *GridSource {
	return &GridSource{Whole: whole, Spacing: [3]float64{1, 1, 1}}
}

// Ports declares a single structured output
func (s *GridSource) Ports() vispipe.PortSpec {
	return vispipe.PortSpec{Outputs: []vispipe.ExtentType{vispipe.Extent3D}}
}

// NewOutputData creates an empty Grid
func (s *GridSource) NewOutputData(port int) vispipe.DataObject {
	return dataset.NewGrid(vispipe.EmptyExtent)
}

// RequestInformation publishes the whole extent and its bounding box, along with the piece
// table when there is one
func (s *GridSource) RequestInformation(ctx vispipe.StageContext) error {
	out := ctx.Output(0)
	out.SetWholeExtent(s.Whole)
	if s.Pieces != nil {
		out.SetExtentTranslator(s.Pieces)
		out.SetMaximumNumberOfPieces(s.Pieces.NumberOfPieces())
	} else {
		out.SetMaximumNumberOfPieces(-1)
	}
	if s.Whole.IsEmpty() {
		out.SetWholeBoundingBox(vispipe.EmptyBounds)
		return nil
	}
	var b vispipe.Bounds
	for axis := 0; axis < 3; axis++ {
		b[2*axis] = s.Origin[axis] + float64(s.Whole[2*axis])*s.Spacing[axis]
		b[2*axis+1] = s.Origin[axis] + float64(s.Whole[2*axis+1])*s.Spacing[axis]
	}
	out.SetWholeBoundingBox(b)
	return nil
}

// RequestData fills the update extent, or the whole extent when over-producing
func (s *GridSource) RequestData(ctx vispipe.StageContext) error {
	grid, err := outputGrid(ctx, 0)
	if err != nil {
		return err
	}
	ext := ctx.Output(0).UpdateExtent()
	if s.OverProduce {
		ext = ctx.Output(0).WholeExtent()
	}
	field := s.Field
	if field == nil {
		field = func(i, j, k int) float64 { return float64(i + 100*j + 10000*k) }
	}
	grid.Initialize()
	grid.Origin = s.Origin
	grid.Spacing = s.Spacing
	grid.SetDataExtent(ext)
	values := make([]float64, 0, ext.NumberOfPoints())
	if !ext.IsEmpty() {
		for k := ext[4]; k <= ext[5]; k++ {
			for j := ext[2]; j <= ext[3]; j++ {
				for i := ext[0]; i <= ext[1]; i++ {
					values = append(values, field(i, j, k))
				}
			}
		}
	}
	ctx.Logger().WithField("extent", ext.String()).Debug("generated grid")
	return grid.SetScalars(ScalarsName, values)
}
