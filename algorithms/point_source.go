package algorithms

import (
	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/dataset"
)

// PointSource produces Count points along the x axis, divided evenly among the requested pieces.
// Point n sits at (n, 0, 0) and carries the scalar n.
type PointSource struct {
	vispipe.AlgorithmBase
	Count int
}

// Ports declares a single unstructured output
func (s *PointSource) Ports() vispipe.PortSpec {
	return vispipe.PortSpec{Outputs: []vispipe.ExtentType{vispipe.Pieces}}
}

// NewOutputData creates an empty PointSet
func (s *PointSource) NewOutputData(port int) vispipe.DataObject {
	return dataset.NewPointSet()
}

// RequestInformation declares that any number of pieces can be produced
func (s *PointSource) RequestInformation(ctx vispipe.StageContext) error {
	ctx.Output(0).SetMaximumNumberOfPieces(-1)
	return nil
}

// RequestData produces the points of the requested piece
func (s *PointSource) RequestData(ctx vispipe.StageContext) error {
	points, err := outputPoints(ctx, 0)
	if err != nil {
		return err
	}
	req := ctx.Output(0).UpdatePiece()
	first := s.Count * req.Piece / req.NumberOfPieces
	last := s.Count * (req.Piece + 1) / req.NumberOfPieces
	points.Initialize()
	values := make([]float64, 0, last-first)
	for n := first; n < last; n++ {
		points.AppendPoint([3]float64{float64(n), 0, 0})
		values = append(values, float64(n))
	}
	return points.SetScalars(ScalarsName, values)
}
