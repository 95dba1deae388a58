package cluster

import (
	"context"
	"testing"
	"time"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/algorithms"
	"github.com/go-sif/vispipe/errors"
	"github.com/go-sif/vispipe/logging"
	"github.com/go-sif/vispipe/pipeline"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func startTestNodes(t *testing.T, basePort int, size int) []*Node {
	nodes := make([]*Node, size)
	for r := range nodes {
		n, err := CreateNode(&NodeOptions{Rank: r, Size: size, BasePort: basePort, RPCTimeout: 2 * time.Second, DialTimeout: 2 * time.Second})
		require.Nil(t, err)
		require.Nil(t, n.Start())
		nodes[r] = n
	}
	return nodes
}

func stopTestNodes(nodes []*Node) {
	for _, n := range nodes {
		n.Close()
	}
}

// runOnEveryRank runs fn concurrently for every node, returning the first error
func runOnEveryRank(ctx context.Context, nodes []*Node, fn func(ctx context.Context, n *Node) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, n := range nodes {
		n := n
		g.Go(func() error {
			return fn(gctx, n)
		})
	}
	return g.Wait()
}

func TestSendReceive(t *testing.T) {
	defer goleak.VerifyNone(t)
	nodes := startTestNodes(t, 17310, 2)
	defer stopTestNodes(nodes)
	ctx := context.Background()

	err := runOnEveryRank(ctx, nodes, func(ctx context.Context, n *Node) error {
		if n.Rank() == 0 {
			if err := n.Send(ctx, []float64{1, 2, 3}, 1, 5); err != nil {
				return err
			}
			return n.Send(ctx, []float64{4}, 1, 5)
		}
		buf := make([]float64, 4)
		count, err := n.Receive(ctx, buf, 0, 5)
		if err != nil {
			return err
		}
		require.Equal(t, 3, count)
		require.Equal(t, []float64{1, 2, 3}, buf[:count])
		count, err = n.Receive(ctx, buf, 0, 5)
		if err != nil {
			return err
		}
		require.Equal(t, []float64{4}, buf[:count])
		return nil
	})
	require.Nil(t, err)
}

func TestReceiveIntoShortBuffer(t *testing.T) {
	nodes := startTestNodes(t, 17320, 1)
	defer stopTestNodes(nodes)
	ctx := context.Background()
	n := nodes[0]
	require.Nil(t, n.Send(ctx, []float64{1, 2, 3}, 0, 0))
	_, err := n.Receive(ctx, make([]float64, 2), 0, 0)
	require.IsType(t, errors.TransportError{}, err)
}

func TestReservedTagsAndRanks(t *testing.T) {
	n, err := CreateNode(&NodeOptions{Rank: 0, Size: 1})
	require.Nil(t, err)
	ctx := context.Background()
	require.IsType(t, errors.TransportError{}, n.Send(ctx, []float64{1}, 0, -1))
	require.IsType(t, errors.TransportError{}, n.Send(ctx, []float64{1}, 3, 0))
	_, err = n.Receive(ctx, []float64{0}, 0, -3)
	require.IsType(t, errors.TransportError{}, err)
}

func TestCollectives(t *testing.T) {
	defer goleak.VerifyNone(t)
	size := 3
	nodes := startTestNodes(t, 17330, size)
	defer stopTestNodes(nodes)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := runOnEveryRank(ctx, nodes, func(ctx context.Context, n *Node) error {
		r := float64(n.Rank())
		buf := []float64{0, 0}
		if n.Rank() == 1 {
			buf = []float64{7, 8}
		}
		if err := n.Broadcast(ctx, buf, 1); err != nil {
			return err
		}
		require.Equal(t, []float64{7, 8}, buf)

		all := make([]float64, 2*size)
		if err := n.Gather(ctx, []float64{r, 10 * r}, all, 0); err != nil {
			return err
		}
		if n.Rank() == 0 {
			require.Equal(t, []float64{0, 0, 1, 10, 2, 20}, all)
		}

		out := make([]float64, 2)
		if err := n.ReduceSum(ctx, []float64{r, 1}, out, 2); err != nil {
			return err
		}
		if n.Rank() == 2 {
			require.Equal(t, []float64{3, 3}, out)
		}
		if err := n.ReduceMax(ctx, []float64{r, -r}, out, 0); err != nil {
			return err
		}
		if n.Rank() == 0 {
			require.Equal(t, []float64{2, 0}, out)
		}
		if err := n.ReduceMin(ctx, []float64{r, -r}, out, 0); err != nil {
			return err
		}
		if n.Rank() == 0 {
			require.Equal(t, []float64{0, -2}, out)
		}
		return nil
	})
	require.Nil(t, err)
}

func createGridPipeline(t *testing.T) (*pipeline.Executive, vispipe.OutputHandle) {
	e := pipeline.CreateExecutive(&pipeline.Config{Logger: logging.GetLoggerAtLevel(logging.ErrorLevel)})
	src, err := e.AddStage("source", algorithms.NewGridSource(vispipe.Extent{0, 9, 0, 9, 0, 0}))
	require.Nil(t, err)
	return e, vispipe.Out(src, 0)
}

func TestPieceManagerCombinesPieces(t *testing.T) {
	defer goleak.VerifyNone(t)
	size := 2
	nodes := startTestNodes(t, 17340, size)
	defer stopTestNodes(nodes)

	results := make([]*PieceResult, size)
	err := runOnEveryRank(context.Background(), nodes, func(ctx context.Context, n *Node) error {
		e, out := createGridPipeline(t)
		m := &PieceManager{Executive: e, Output: out, ExecutionContext: n.ExecutionContext()}
		res, err := m.Run(ctx)
		results[n.Rank()] = res
		return err
	})
	require.Nil(t, err)
	for r, res := range results {
		require.Equal(t, vispipe.Extent{0, 9, 0, 9, 0, 0}, res.GlobalExtent, "rank %d", r)
	}
	require.Equal(t, []vispipe.Extent{{0, 4, 0, 9, 0, 0}, {5, 9, 0, 9, 0, 0}}, results[0].Extents)
	require.Nil(t, results[1].Extents)
	require.Equal(t, vispipe.Extent{5, 9, 0, 9, 0, 0}, results[1].LocalExtent)
}

func TestPieceManagerCountsPoints(t *testing.T) {
	defer goleak.VerifyNone(t)
	size := 2
	nodes := startTestNodes(t, 17350, size)
	defer stopTestNodes(nodes)

	err := runOnEveryRank(context.Background(), nodes, func(ctx context.Context, n *Node) error {
		e := pipeline.CreateExecutive(&pipeline.Config{Logger: logging.GetLoggerAtLevel(logging.ErrorLevel)})
		src, err := e.AddStage("source", &algorithms.PointSource{Count: 10})
		if err != nil {
			return err
		}
		m := &PieceManager{Executive: e, Output: vispipe.Out(src, 0), ExecutionContext: n.ExecutionContext()}
		res, err := m.Run(ctx)
		if err != nil {
			return err
		}
		require.Equal(t, 10, res.TotalPoints)
		require.True(t, res.GlobalExtent.IsEmpty())
		return nil
	})
	require.Nil(t, err)
}

type failingSource struct {
	algorithms.PointSource
	fail bool
}

func (f *failingSource) RequestData(ctx vispipe.StageContext) error {
	if f.fail {
		return errors.TransportError{Reason: "induced"}
	}
	return f.PointSource.RequestData(ctx)
}

func TestPieceManagerAgreesOnFailure(t *testing.T) {
	defer goleak.VerifyNone(t)
	size := 2
	nodes := startTestNodes(t, 17360, size)
	defer stopTestNodes(nodes)

	errs := make([]error, size)
	runOnEveryRank(context.Background(), nodes, func(ctx context.Context, n *Node) error {
		e := pipeline.CreateExecutive(&pipeline.Config{Logger: logging.GetLoggerAtLevel(logging.FatalLevel)})
		src, err := e.AddStage("source", &failingSource{PointSource: algorithms.PointSource{Count: 10}, fail: n.Rank() == 1})
		if err != nil {
			return err
		}
		m := &PieceManager{Executive: e, Output: vispipe.Out(src, 0), ExecutionContext: n.ExecutionContext()}
		_, errs[n.Rank()] = m.Run(ctx)
		return nil
	})
	require.NotNil(t, errs[0])
	require.NotNil(t, errs[1])
}
