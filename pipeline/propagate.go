package pipeline

import (
	"context"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/errors"
	iutil "github.com/go-sif/vispipe/internal/util"
	multierror "github.com/hashicorp/go-multierror"
)

// PropagateUpdateExtent forwards the request on an output port to every Stage upstream which
// must execute to satisfy it
func (e *Executive) PropagateUpdateExtent(ctx context.Context, h vispipe.OutputHandle) error {
	s, err := e.checkOutput(h, "PropagateUpdateExtent", true)
	if err != nil {
		return err
	}
	return e.processUpdateExtent(ctx, s, e.newRequest(requestUpdateExtent, h.Port))
}

func (e *Executive) processUpdateExtent(ctx context.Context, s *stage, req *request) error {
	if s.busy {
		return errors.ReentrantRequestError{Stage: int(s.id), Op: "PropagateUpdateExtent"}
	}
	log := e.stageLog(s, req)
	if err := e.verifyOutputInformation(s, req.fromPort); err != nil {
		log.WithError(err).Error("invalid request")
		return err
	}
	e.statsTracker.Propagated(int(s.id))
	if !e.needToExecuteData(s, req.fromPort) {
		log.Debug("request already satisfied")
		return nil
	}
	if err := e.validateInputs(s); err != nil {
		log.WithError(err).Error("invalid inputs")
		return err
	}
	if err := e.copyDefaultUpdateRequest(s, req); err != nil {
		return err
	}
	if req.algorithmBeforeForward {
		sctx := e.createStageContext(ctx, s, req)
		if err := e.callAlgorithm(sctx, "RequestUpdateExtent", s.algorithm.RequestUpdateExtent); err != nil {
			log.WithError(err).Error("update extent pass failed")
			return err
		}
	}
	for _, conns := range s.inputs {
		for _, h := range conns {
			if err := e.processUpdateExtent(ctx, e.stages[h.Stage], req.forward(h.Port)); err != nil {
				return err
			}
		}
	}
	return nil
}

// copyDefaultUpdateRequest converts the request on the requesting output into a request on every
// input connection, across extent types. Connections which cannot be converted are skipped,
// unless StrictInputs is set.
func (e *Executive) copyDefaultUpdateRequest(s *stage, req *request) error {
	if len(s.outputs) == 0 {
		return nil
	}
	outPort := req.fromPort
	if outPort < 0 {
		outPort = 0
	}
	from := vispipe.Out(s.id, outPort)
	outType := e.store.ExtentType(from)
	var skipped *multierror.Error
	unmanaged := func(port, conn int, reason string) error {
		err := errors.UnmanagedInputError{Stage: int(s.id), InputPort: port, Connection: conn, Reason: reason}
		if e.conf.StrictInputs {
			return err
		}
		skipped = multierror.Append(skipped, err)
		return nil
	}
	for port, conns := range s.inputs {
		for conn, h := range conns {
			if idx, ok := e.store.UpdateTimeIndex(from); ok {
				e.store.SetUpdateTimeIndex(h, idx)
			}
			inData := e.stages[h.Stage].outputs[h.Port].data
			if inData == nil {
				if err := unmanaged(port, conn, "producer has no data object"); err != nil {
					return err
				}
				continue
			}
			switch inData.ExtentType() {
			case vispipe.Pieces:
				if outType == vispipe.Pieces {
					e.store.CopyPieceRequest(from, h)
				} else {
					e.store.SetUpdateExtentToWholeExtent(h)
				}
			case vispipe.Extent3D:
				if outType == vispipe.Extent3D {
					e.store.CopyUpdateExtent(from, h)
					continue
				}
				if e.store.ExtentTranslator(h) == nil {
					if err := unmanaged(port, conn, "producer has no extent translator"); err != nil {
						return err
					}
					continue
				}
				if _, err := e.store.SetUpdatePiece(h, e.store.UpdatePiece(from)); err != nil {
					return err
				}
			}
		}
	}
	if skipped.ErrorOrNil() != nil {
		e.stageLog(s, req).Warnf("skipped unmanaged inputs:\n%s", iutil.FormatMultiError(skipped.Errors))
	}
	return nil
}
