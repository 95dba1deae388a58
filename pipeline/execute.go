package pipeline

import (
	"context"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/errors"
	"github.com/go-sif/vispipe/internal/ghost"
)

// Update brings the data of an output port (or every output port, given AllPorts) up to date with
// its current request, re-executing the Stage as long as it asks to continue
func (e *Executive) Update(ctx context.Context, h vispipe.OutputHandle) error {
	s, err := e.checkOutput(h, "Update", true)
	if err != nil {
		return err
	}
	if err := e.processInformation(ctx, s, e.newRequest(requestInformation, h.Port)); err != nil {
		return err
	}
	return e.update(ctx, s, h.Port)
}

func (e *Executive) update(ctx context.Context, s *stage, port int) (err error) {
	// a failed update must not leave the next one mid-continuation
	defer func() {
		if err != nil {
			s.continueExecuting = false
		}
	}()
	if err := e.processUpdateExtent(ctx, s, e.newRequest(requestUpdateExtent, port)); err != nil {
		return err
	}
	req := e.newRequest(requestData, port)
	if err := e.processData(ctx, s, req); err != nil {
		return err
	}
	for s.continueExecuting {
		if err := e.processData(ctx, s, req); err != nil {
			return err
		}
	}
	return nil
}

// UpdateWholeExtent requests the whole extent of an output port, then updates it
func (e *Executive) UpdateWholeExtent(ctx context.Context, h vispipe.OutputHandle) error {
	s, err := e.checkOutput(h, "UpdateWholeExtent", true)
	if err != nil {
		return err
	}
	if err := e.processInformation(ctx, s, e.newRequest(requestInformation, h.Port)); err != nil {
		return err
	}
	if h.Port == vispipe.AllPorts {
		for port := range s.outputs {
			e.store.SetUpdateExtentToWholeExtent(vispipe.Out(s.id, port))
		}
	} else {
		e.store.SetUpdateExtentToWholeExtent(h)
	}
	return e.update(ctx, s, h.Port)
}

// UpdateData executes every Stage, from upstream down, whose data does not satisfy its request.
// The request must already have been propagated.
func (e *Executive) UpdateData(ctx context.Context, h vispipe.OutputHandle) error {
	s, err := e.checkOutput(h, "UpdateData", true)
	if err != nil {
		return err
	}
	return e.processData(ctx, s, e.newRequest(requestData, h.Port))
}

func (e *Executive) processData(ctx context.Context, s *stage, req *request) error {
	if s.busy {
		return errors.ReentrantRequestError{Stage: int(s.id), Op: "UpdateData"}
	}
	if !e.needToExecuteData(s, req.fromPort) {
		e.statsTracker.Satisfied(int(s.id))
		return nil
	}
	for _, conns := range s.inputs {
		for _, h := range conns {
			if err := e.processData(ctx, e.stages[h.Stage], req.forward(h.Port)); err != nil {
				return err
			}
		}
	}
	return e.executeData(ctx, s, req)
}

// executeData calls RequestData once, then stamps the outputs it produced
func (e *Executive) executeData(ctx context.Context, s *stage, req *request) error {
	log := e.stageLog(s, req)
	if !s.continueExecuting {
		s.iteration = 0
		e.emit(s, vispipe.PreExecuteEvent, vispipe.AllPorts)
	}
	prev := make([]vispipe.PieceRequest, len(s.outputs))
	for port, out := range s.outputs {
		if out.data != nil {
			prev[port] = out.data.DataPiece()
		}
	}
	sctx := e.createStageContext(ctx, s, req)
	log.WithField("iteration", s.iteration).Debug("executing")
	e.statsTracker.StartExecute(int(s.id))
	err := e.callAlgorithm(sctx, "RequestData", s.algorithm.RequestData)
	e.statsTracker.EndExecute(int(s.id))
	s.iteration++
	if err != nil {
		s.continueExecuting = false
		log.WithError(err).Error("execution failed")
		return err
	}
	s.continueExecuting = sctx.continueExecuting
	e.cropOutputs(s)
	e.markOutputsGenerated(s, sctx, prev)
	if sctx.AbortRequested() {
		s.continueExecuting = false
		log.Warn("execution aborted")
		e.emit(s, vispipe.AbortedEvent, vispipe.AllPorts)
		return errors.AbortedError{Stage: int(s.id)}
	}
	if !s.continueExecuting {
		e.emit(s, vispipe.PostExecuteEvent, vispipe.AllPorts)
	}
	return nil
}

// cropOutputs removes data outside the update extent from structured outputs which requested an exact extent
func (e *Executive) cropOutputs(s *stage) {
	for port, out := range s.outputs {
		h := vispipe.Out(s.id, port)
		if out.data == nil || out.data.ExtentType() != vispipe.Extent3D || !e.store.RequestExactExtent(h) {
			continue
		}
		target := e.store.UpdateExtent(h).Intersect(out.data.DataExtent())
		if target == out.data.DataExtent() {
			continue
		}
		if err := out.data.CropToExtent(target); err != nil {
			e.log.WithError(err).WithField("stage", s.id).Error("unable to crop output")
		}
	}
}

// markOutputsGenerated stamps every output with the request it was produced for
func (e *Executive) markOutputsGenerated(s *stage, sctx *stageContext, prev []vispipe.PieceRequest) {
	for port, out := range s.outputs {
		if out.data == nil || sctx.notGenerated[port] {
			continue
		}
		h := vispipe.Out(s.id, port)
		req := e.store.UpdatePiece(h)
		out.data.SetDataPiece(req)
		out.generated = true
		out.updateTime = e.tick()
		out.timeIndex, out.hasTime = e.store.UpdateTimeIndex(h)
		if out.data.ExtentType() == vispipe.Extent3D && ghost.Needed(out.data, prev[port], req) {
			e.generateGhostLevels(s, h, out.data, req)
		}
		e.emit(s, vispipe.DataGeneratedEvent, port)
	}
}

func (e *Executive) generateGhostLevels(s *stage, h vispipe.OutputHandle, d vispipe.DataObject, req vispipe.PieceRequest) {
	tr := e.store.ExtentTranslator(h)
	if tr == nil {
		tr = e.conf.DefaultTranslator()
	}
	whole := e.store.WholeExtent(h)
	zero, err := tr.PieceToExtent(whole, req.WithGhostLevel(0))
	if err != nil {
		e.log.WithError(err).WithField("stage", s.id).Error("unable to compute ghost levels")
		return
	}
	ghost.Generate(d, whole, zero, req)
}
