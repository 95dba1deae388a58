package vispipe

import "context"

// A Transport exchanges float64 buffers between the ranks of a parallel job.
// Only blocking calls are required; the collectives are rooted at a given rank.
type Transport interface {
	Send(ctx context.Context, buf []float64, dest int, tag int) error
	Receive(ctx context.Context, buf []float64, src int, tag int) (int, error) // Receive returns the number of values received
	Broadcast(ctx context.Context, buf []float64, root int) error
	Gather(ctx context.Context, send []float64, recv []float64, root int) error // recv must hold Size*len(send) values on root
	ReduceMax(ctx context.Context, send []float64, recv []float64, root int) error
	ReduceMin(ctx context.Context, send []float64, recv []float64, root int) error
	ReduceSum(ctx context.Context, send []float64, recv []float64, root int) error
	Close() error
}

// ExecutionContext describes this process's place in a parallel job
type ExecutionContext struct {
	Rank      int
	Size      int
	Transport Transport
}

// IsRoot returns true iff this is rank 0
func (e ExecutionContext) IsRoot() bool {
	return e.Rank == 0
}
