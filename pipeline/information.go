package pipeline

import (
	"context"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/errors"
	"github.com/go-sif/vispipe/internal/info"
	iutil "github.com/go-sif/vispipe/internal/util"
)

// UpdateInformation brings the data objects and pipeline information of every Stage up to date
func (e *Executive) UpdateInformation(ctx context.Context) error {
	req := e.newRequest(requestInformation, vispipe.AllPorts)
	for _, s := range e.stages {
		if err := e.processInformation(ctx, s, req); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executive) needToExecuteInformation(s *stage) bool {
	for _, out := range s.outputs {
		if out.data == nil {
			return true
		}
	}
	return s.informationTime == 0 || s.informationTime < e.pipelineMTime(s)
}

// processInformation runs the information pass on a Stage, after every Stage upstream of it
func (e *Executive) processInformation(ctx context.Context, s *stage, req *request) error {
	if req.visited[s.id] {
		return nil
	}
	req.visited[s.id] = true
	for _, conns := range s.inputs {
		for _, h := range conns {
			if err := e.processInformation(ctx, e.stages[h.Stage], req.forward(h.Port)); err != nil {
				return err
			}
		}
	}
	if !e.needToExecuteInformation(s) {
		return nil
	}
	if s.busy {
		return errors.ReentrantRequestError{Stage: int(s.id), Op: "UpdateInformation"}
	}
	log := e.stageLog(s, req)
	log.Debug("executing information pass")
	if err := e.updateDataObjects(s); err != nil {
		log.WithError(err).Error("unable to create output data")
		return err
	}
	e.copyDefaultInformation(s)
	sctx := e.createStageContext(ctx, s, req)
	if err := e.callAlgorithm(sctx, "RequestInformation", s.algorithm.RequestInformation); err != nil {
		log.WithError(err).Error("information pass failed")
		return err
	}
	for port := range s.outputs {
		h := vispipe.Out(s.id, port)
		switch e.store.ExtentType(h) {
		case vispipe.Pieces:
			if !e.store.Has(h, info.MaximumNumberOfPiecesKey) {
				e.store.SetMaximumNumberOfPieces(h, -1)
			}
		case vispipe.Extent3D:
			if !e.store.Has(h, info.WholeExtentKey) {
				e.store.SetWholeExtent(h, vispipe.EmptyExtent)
			}
		}
		if !e.store.UpdateExtentInitialized(h) {
			e.store.SetUpdateExtentToWholeExtent(h)
		}
	}
	s.informationTime = e.tick()
	return nil
}

// updateDataObjects creates output data objects which are missing or of the wrong extent type
func (e *Executive) updateDataObjects(s *stage) error {
	for port, out := range s.outputs {
		declared := s.ports.Outputs[port]
		if out.data != nil && out.data.ExtentType() == declared {
			continue
		}
		var data vispipe.DataObject
		err := iutil.SafeAlgorithmCall(s.name, "NewOutputData", func() error {
			data = s.algorithm.NewOutputData(port)
			return nil
		})
		if err != nil {
			return errors.AlgorithmError{Stage: int(s.id), Name: s.name, Pass: "NewOutputData", Err: err}
		}
		if data == nil {
			return errors.MissingPipelineInfoError{Stage: int(s.id), Port: port, Key: "DATA_OBJECT"}
		}
		if data.ExtentType() != declared {
			return errors.MissingPipelineInfoError{Stage: int(s.id), Port: port, Key: "DATA_EXTENT_TYPE"}
		}
		out.data = data
		out.generated = false
	}
	return nil
}

// copyDefaultInformation copies the information of the first input to every output, then sets
// per-type defaults which the Algorithm may override
func (e *Executive) copyDefaultInformation(s *stage) {
	if len(s.inputs) > 0 && len(s.inputs[0]) > 0 {
		from := s.inputs[0][0]
		for port := range s.outputs {
			e.store.CopyDefaults(from, vispipe.Out(s.id, port))
		}
	}
	for port := range s.outputs {
		h := vispipe.Out(s.id, port)
		switch e.store.ExtentType(h) {
		case vispipe.Pieces:
			// most unstructured algorithms generate all their data at once
			if !e.store.Has(h, info.MaximumNumberOfPiecesKey) {
				e.store.SetMaximumNumberOfPieces(h, 1)
			}
		case vispipe.Extent3D:
			if e.store.ExtentTranslator(h) == nil {
				e.store.SetExtentTranslator(h, e.conf.DefaultTranslator())
			}
		}
	}
}
