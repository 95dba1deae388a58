package algorithms

import (
	"fmt"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/dataset"
	"github.com/go-sif/vispipe/internal/pcache"
)

// PieceCache keeps copies of the pieces passing through it, serving repeated requests without
// re-executing upstream. Cached pieces are dropped when anything upstream is modified.
type PieceCache struct {
	vispipe.AlgorithmBase
	cache pcache.DataCache
	hits  int
}

// NewPieceCache creates a PieceCache holding at most size pieces
func NewPieceCache(size int) *PieceCache {
	return &PieceCache{cache: pcache.NewLRU(&pcache.LRUConfig{InitialSize: size})}
}

// Ports declares a single unstructured input and output
func (c *PieceCache) Ports() vispipe.PortSpec {
	return vispipe.PortSpec{
		Inputs:  []vispipe.InputPortSpec{{Name: "input", Accepts: []vispipe.ExtentType{vispipe.Pieces}}},
		Outputs: []vispipe.ExtentType{vispipe.Pieces},
	}
}

// NewOutputData creates an empty PointSet
func (c *PieceCache) NewOutputData(port int) vispipe.DataObject {
	return dataset.NewPointSet()
}

// Hits returns the number of requests served from the cache
func (c *PieceCache) Hits() int {
	return c.hits
}

// CachedPieces returns the number of pieces currently held
func (c *PieceCache) CachedPieces() int {
	return c.cache.CurrentSize()
}

// RequestInformation runs whenever the pipeline upstream changed, invalidating every cached piece
func (c *PieceCache) RequestInformation(ctx vispipe.StageContext) error {
	c.cache.Clear()
	return nil
}

// RequestUpdateExtent leaves the input's current data in place when the requested piece is cached
func (c *PieceCache) RequestUpdateExtent(ctx vispipe.StageContext) error {
	key := ctx.Output(0).UpdatePiece().String()
	if _, err := c.cache.Get(key); err != nil {
		return nil
	}
	in := ctx.Input(0, 0)
	if d := in.Data(); d != nil {
		if _, err := in.SetUpdatePiece(d.DataPiece()); err != nil {
			return err
		}
	}
	return nil
}

// RequestData copies the requested piece from the cache, or from the input
func (c *PieceCache) RequestData(ctx vispipe.StageContext) error {
	out, err := outputPoints(ctx, 0)
	if err != nil {
		return err
	}
	key := ctx.Output(0).UpdatePiece().String()
	if cached, err := c.cache.Get(key); err == nil {
		c.hits++
		out.CopyFrom(cached.(*dataset.PointSet))
		return nil
	}
	in, err := inputPoints(ctx, 0, 0)
	if err != nil {
		return err
	}
	if in.DataPiece() != ctx.Output(0).UpdatePiece() {
		return fmt.Errorf("input of %s holds piece %s, not %s", ctx.Name(), in.DataPiece(), key)
	}
	kept := dataset.NewPointSet()
	kept.CopyFrom(in)
	c.cache.Add(key, kept)
	out.CopyFrom(in)
	return nil
}
