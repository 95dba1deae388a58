package testing

import (
	"context"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/cluster"
	"golang.org/x/sync/errgroup"
)

// LocalRunPieces starts size Nodes on localhost and runs fn once per rank, concurrently,
// each with the ExecutionContext of its own Node. The Nodes are stopped once every rank
// has returned. The first error encountered is returned.
func LocalRunPieces(ctx context.Context, opts *cluster.NodeOptions, size int, fn func(ctx context.Context, ec vispipe.ExecutionContext) error) (err error) {
	// handle panics
	defer func() {
		if r := recover(); r != nil {
			if anErr, ok := r.(error); ok {
				err = anErr
			} else {
				panic(r)
			}
		}
	}()

	nodes := make([]*cluster.Node, 0, size)
	defer func() {
		for _, n := range nodes {
			n.GracefulStop()
		}
	}()
	for rank := 0; rank < size; rank++ {
		nopts := cluster.CloneNodeOptions(opts)
		nopts.Host = "127.0.0.1"
		nopts.Rank = rank
		nopts.Size = size
		nopts.Peers = nil
		node, err := cluster.CreateNode(nopts)
		if err != nil {
			return err
		}
		if err := node.Start(); err != nil {
			return err
		}
		nodes = append(nodes, node)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, node := range nodes {
		ec := node.ExecutionContext()
		g.Go(func() error {
			return fn(gctx, ec)
		})
	}
	return g.Wait()
}
