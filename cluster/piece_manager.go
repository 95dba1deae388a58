package cluster

import (
	"context"
	"fmt"
	"math"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/pipeline"
	multierror "github.com/hashicorp/go-multierror"
)

// PieceManager updates one piece of a pipeline output per rank, then combines a summary of
// the results across the job
type PieceManager struct {
	Executive        *pipeline.Executive
	Output           vispipe.OutputHandle
	GhostLevel       int
	ExecutionContext vispipe.ExecutionContext
}

// PieceResult summarizes a PieceManager run. GlobalExtent and TotalPoints are known on every
// rank; Extents holds the data extent of every rank, in rank order, on the root only.
type PieceResult struct {
	LocalExtent  vispipe.Extent
	GlobalExtent vispipe.Extent
	TotalPoints  int
	Extents      []vispipe.Extent
}

const rootRank = 0

// Run updates the piece belonging to this rank. Every rank takes part in every exchange,
// even when its own update fails, so that no rank is left waiting on a peer.
func (m *PieceManager) Run(ctx context.Context) (*PieceResult, error) {
	ec := m.ExecutionContext
	if ec.Transport == nil {
		return nil, fmt.Errorf("PieceManager requires a Transport")
	}
	localErr := m.updatePiece(ctx)

	// agree on success
	status := []float64{1}
	if localErr != nil {
		status[0] = 0
	}
	agreed := []float64{0}
	if err := ec.Transport.ReduceMin(ctx, status, agreed, rootRank); err != nil {
		return nil, multierror.Append(localErr, err).ErrorOrNil()
	}
	if err := ec.Transport.Broadcast(ctx, agreed, rootRank); err != nil {
		return nil, multierror.Append(localErr, err).ErrorOrNil()
	}
	if agreed[0] == 0 {
		if localErr != nil {
			return nil, localErr
		}
		return nil, fmt.Errorf("rank %d: update failed on another rank", ec.Rank)
	}

	res := &PieceResult{LocalExtent: vispipe.EmptyExtent}
	var points int
	if d := m.Executive.Output(m.Output); d != nil {
		res.LocalExtent = d.DataExtent()
		if pc, ok := d.(vispipe.PointCounter); ok {
			points = pc.NumberOfPoints()
		}
	}

	global, err := m.reduceExtent(ctx, res.LocalExtent)
	if err != nil {
		return nil, err
	}
	res.GlobalExtent = global

	total := []float64{0}
	if err := ec.Transport.ReduceSum(ctx, []float64{float64(points)}, total, rootRank); err != nil {
		return nil, err
	}
	if err := ec.Transport.Broadcast(ctx, total, rootRank); err != nil {
		return nil, err
	}
	res.TotalPoints = int(total[0])

	all := make([]float64, 6*ec.Size)
	if err := ec.Transport.Gather(ctx, extentToFloats(res.LocalExtent), all, rootRank); err != nil {
		return nil, err
	}
	if ec.Rank == rootRank {
		res.Extents = make([]vispipe.Extent, ec.Size)
		for r := range res.Extents {
			res.Extents[r] = floatsToExtent(all[6*r : 6*r+6])
		}
	}
	return res, nil
}

func (m *PieceManager) updatePiece(ctx context.Context) error {
	if err := m.Executive.UpdateInformation(ctx); err != nil {
		return err
	}
	req := vispipe.PieceRequest{Piece: m.ExecutionContext.Rank, NumberOfPieces: m.ExecutionContext.Size, GhostLevel: m.GhostLevel}
	if _, err := m.Executive.SetUpdatePiece(m.Output, req); err != nil {
		return err
	}
	return m.Executive.Update(ctx, m.Output)
}

// reduceExtent returns the smallest extent containing the data extents of all ranks
func (m *PieceManager) reduceExtent(ctx context.Context, local vispipe.Extent) (vispipe.Extent, error) {
	t := m.ExecutionContext.Transport
	lo := make([]float64, 3)
	hi := make([]float64, 3)
	for axis := 0; axis < 3; axis++ {
		if local.IsEmpty() {
			lo[axis], hi[axis] = math.Inf(1), math.Inf(-1)
			continue
		}
		lo[axis], hi[axis] = float64(local[2*axis]), float64(local[2*axis+1])
	}
	glo := make([]float64, 3)
	ghi := make([]float64, 3)
	if err := t.ReduceMin(ctx, lo, glo, rootRank); err != nil {
		return vispipe.EmptyExtent, err
	}
	if err := t.ReduceMax(ctx, hi, ghi, rootRank); err != nil {
		return vispipe.EmptyExtent, err
	}
	both := append(glo, ghi...)
	if err := t.Broadcast(ctx, both, rootRank); err != nil {
		return vispipe.EmptyExtent, err
	}
	if math.IsInf(both[0], 1) {
		return vispipe.EmptyExtent, nil
	}
	var global vispipe.Extent
	for axis := 0; axis < 3; axis++ {
		global[2*axis] = int(both[axis])
		global[2*axis+1] = int(both[3+axis])
	}
	return global, nil
}

func extentToFloats(ext vispipe.Extent) []float64 {
	out := make([]float64, 6)
	for i, v := range ext {
		out[i] = float64(v)
	}
	return out
}

func floatsToExtent(vals []float64) vispipe.Extent {
	var ext vispipe.Extent
	for i := range ext {
		ext[i] = int(vals[i])
	}
	return ext
}
