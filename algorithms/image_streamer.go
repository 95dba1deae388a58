package algorithms

import (
	"fmt"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/dataset"
	"github.com/go-sif/vispipe/translator"
)

// ImageStreamer assembles its update extent from Divisions chunks, pulling one chunk from its
// input per execution so that upstream never holds more than a chunk
type ImageStreamer struct {
	vispipe.AlgorithmBase
	Divisions int
	Mode      translator.SplitMode
}

// Ports declares a single structured input and output
func (s *ImageStreamer) Ports() vispipe.PortSpec {
	return vispipe.PortSpec{
		Inputs:  []vispipe.InputPortSpec{{Name: "input", Accepts: []vispipe.ExtentType{vispipe.Extent3D}}},
		Outputs: []vispipe.ExtentType{vispipe.Extent3D},
	}
}

// NewOutputData creates an empty Grid
func (s *ImageStreamer) NewOutputData(port int) vispipe.DataObject {
	return dataset.NewGrid(vispipe.EmptyExtent)
}

// chunks divides ext into at most Divisions non-empty extents
func (s *ImageStreamer) chunks(ext vispipe.Extent) ([]vispipe.Extent, error) {
	n := s.Divisions
	if n < 1 {
		n = 1
	}
	splitter := &translator.Block{Mode: s.Mode}
	var res []vispipe.Extent
	for p := 0; p < n; p++ {
		c, err := splitter.PieceToExtent(ext, vispipe.PieceRequest{Piece: p, NumberOfPieces: n})
		if err != nil {
			return nil, err
		}
		if !c.IsEmpty() {
			res = append(res, c)
		}
	}
	return res, nil
}

// RequestUpdateExtent requests the first chunk from the input
func (s *ImageStreamer) RequestUpdateExtent(ctx vispipe.StageContext) error {
	chunks, err := s.chunks(ctx.Output(0).UpdateExtent())
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		ctx.Input(0, 0).SetUpdateExtent(vispipe.EmptyExtent)
		return nil
	}
	ctx.Input(0, 0).SetUpdateExtent(chunks[0])
	return nil
}

// RequestData copies one chunk of the input into the output, asking to continue until every
// chunk has been copied
func (s *ImageStreamer) RequestData(ctx vispipe.StageContext) error {
	out, err := outputGrid(ctx, 0)
	if err != nil {
		return err
	}
	update := ctx.Output(0).UpdateExtent()
	chunks, err := s.chunks(update)
	if err != nil {
		return err
	}
	iter := ctx.Iteration()
	if iter == 0 {
		out.Initialize()
		out.SetDataExtent(update)
		if err := out.SetScalars(ScalarsName, make([]float64, update.NumberOfPoints())); err != nil {
			return err
		}
	}
	if iter >= len(chunks) {
		ctx.SetContinueExecuting(false)
		return nil
	}
	data, err := ctx.UpdateInputExtent(0, 0, chunks[iter])
	if err != nil {
		return err
	}
	in, ok := data.(*dataset.Grid)
	if !ok {
		return fmt.Errorf("input of %s is not a Grid", ctx.Name())
	}
	out.Origin = in.Origin
	out.Spacing = in.Spacing
	src, _ := in.Scalars(ScalarsName)
	dst, _ := out.Scalars(ScalarsName)
	c := chunks[iter].Intersect(in.DataExtent())
	if src != nil && !c.IsEmpty() {
		for k := c[4]; k <= c[5]; k++ {
			for j := c[2]; j <= c[3]; j++ {
				for i := c[0]; i <= c[1]; i++ {
					dst[out.PointIndex(i, j, k)] = src[in.PointIndex(i, j, k)]
				}
			}
		}
	}
	ctx.Logger().WithField("chunk", chunks[iter].String()).Debug("streamed chunk")
	ctx.SetContinueExecuting(iter+1 < len(chunks))
	return nil
}
