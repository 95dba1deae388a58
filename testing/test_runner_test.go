package testing

import (
	"context"
	"sync"
	"testing"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/algorithms"
	"github.com/go-sif/vispipe/cluster"
	"github.com/go-sif/vispipe/logging"
	"github.com/go-sif/vispipe/pipeline"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestLocalRunPieces(t *testing.T) {
	defer goleak.VerifyNone(t)
	var lock sync.Mutex
	ranks := make(map[int]bool)
	err := LocalRunPieces(context.Background(), &cluster.NodeOptions{BasePort: 17410}, 4, func(ctx context.Context, ec vispipe.ExecutionContext) error {
		e := pipeline.CreateExecutive(&pipeline.Config{Logger: logging.GetLoggerAtLevel(logging.ErrorLevel)})
		grid, err := e.AddStage("grid", algorithms.NewGridSource(vispipe.Extent{0, 19, 0, 9, 0, 4}))
		if err != nil {
			return err
		}
		points, err := e.AddStage("points", &algorithms.GridToPoints{DropGhosts: true})
		if err != nil {
			return err
		}
		if err := e.SetInputConnection(points, 0, vispipe.Out(grid, 0)); err != nil {
			return err
		}
		m := &cluster.PieceManager{Executive: e, Output: vispipe.Out(points, 0), GhostLevel: 1, ExecutionContext: ec}
		res, err := m.Run(ctx)
		if err != nil {
			return err
		}
		// ghost points are dropped, so the pieces add up to the whole grid exactly once
		require.Equal(t, 20*10*5, res.TotalPoints)
		lock.Lock()
		ranks[ec.Rank] = true
		lock.Unlock()
		return nil
	})
	require.Nil(t, err)
	require.Len(t, ranks, 4)
}

func TestLocalRunPiecesReturnsErrors(t *testing.T) {
	defer goleak.VerifyNone(t)
	err := LocalRunPieces(context.Background(), &cluster.NodeOptions{BasePort: 17420}, 2, func(ctx context.Context, ec vispipe.ExecutionContext) error {
		if ec.IsRoot() {
			return context.Canceled
		}
		return nil
	})
	require.Equal(t, context.Canceled, err)
}
