package algorithms

import (
	"fmt"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/dataset"
)

// ScalarsName is the point array produced and consumed by the Algorithms of this package
const ScalarsName = "scalars"

func outputGrid(ctx vispipe.StageContext, port int) (*dataset.Grid, error) {
	g, ok := ctx.Output(port).Data().(*dataset.Grid)
	if !ok {
		return nil, fmt.Errorf("output %d of %s is not a Grid", port, ctx.Name())
	}
	return g, nil
}

func outputPoints(ctx vispipe.StageContext, port int) (*dataset.PointSet, error) {
	p, ok := ctx.Output(port).Data().(*dataset.PointSet)
	if !ok {
		return nil, fmt.Errorf("output %d of %s is not a PointSet", port, ctx.Name())
	}
	return p, nil
}

func inputGrid(ctx vispipe.StageContext, port, conn int) (*dataset.Grid, error) {
	g, ok := ctx.Input(port, conn).Data().(*dataset.Grid)
	if !ok {
		return nil, fmt.Errorf("input %d connection %d of %s is not a Grid", port, conn, ctx.Name())
	}
	return g, nil
}

func inputPoints(ctx vispipe.StageContext, port, conn int) (*dataset.PointSet, error) {
	p, ok := ctx.Input(port, conn).Data().(*dataset.PointSet)
	if !ok {
		return nil, fmt.Errorf("input %d connection %d of %s is not a PointSet", port, conn, ctx.Name())
	}
	return p, nil
}
