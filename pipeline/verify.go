package pipeline

import (
	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/errors"
	"github.com/go-sif/vispipe/internal/info"
)

// VerifyOutputInformation checks that the request on an output port (or every output port, given
// AllPorts) is complete and within range
func (e *Executive) VerifyOutputInformation(h vispipe.OutputHandle) error {
	s, err := e.checkOutput(h, "VerifyOutputInformation", true)
	if err != nil {
		return err
	}
	return e.verifyOutputInformation(s, h.Port)
}

func (e *Executive) verifyOutputInformation(s *stage, port int) error {
	if port == vispipe.AllPorts {
		for p := range s.outputs {
			if err := e.verifyOutputInformation(s, p); err != nil {
				return err
			}
		}
		return nil
	}
	h := vispipe.Out(s.id, port)
	if s.outputs[port].data == nil {
		return errors.MissingPipelineInfoError{Stage: int(s.id), Port: port, Key: "DATA_OBJECT"}
	}
	switch e.store.ExtentType(h) {
	case vispipe.Pieces:
		for _, k := range []info.Key{info.MaximumNumberOfPiecesKey, info.UpdatePieceKey, info.UpdateNumberOfPiecesKey} {
			if !e.store.Has(h, k) {
				return errors.MissingPipelineInfoError{Stage: int(s.id), Port: port, Key: k.String()}
			}
		}
		// defaults the ghost level
		e.store.UpdatePiece(h)
	case vispipe.Extent3D:
		for _, k := range []info.Key{info.WholeExtentKey, info.UpdateExtentKey} {
			if !e.store.Has(h, k) {
				return errors.MissingPipelineInfoError{Stage: int(s.id), Port: port, Key: k.String()}
			}
		}
		whole := e.store.WholeExtent(h)
		update := e.store.UpdateExtent(h)
		if !update.IsEmpty() && !whole.Contains(update) {
			return errors.ExtentOutOfRangeError{Stage: int(s.id), Port: port, UpdateExtent: update, WholeExtent: whole}
		}
	}
	return nil
}

// NeedToExecuteData returns true iff the data of an output port (or any output port, given
// AllPorts) does not satisfy its current request
func (e *Executive) NeedToExecuteData(h vispipe.OutputHandle) bool {
	s, err := e.checkOutput(h, "NeedToExecuteData", true)
	if err != nil {
		return false
	}
	return e.needToExecuteData(s, h.Port)
}

func (e *Executive) needToExecuteData(s *stage, port int) bool {
	if s.continueExecuting {
		return true
	}
	if port == vispipe.AllPorts {
		// sinks have nothing to cache
		if len(s.outputs) == 0 {
			return true
		}
		for p := range s.outputs {
			if e.needToExecuteData(s, p) {
				return true
			}
		}
		return false
	}
	out := s.outputs[port]
	if out.data == nil || !out.generated || out.updateTime < e.pipelineMTime(s) {
		return true
	}
	h := vispipe.Out(s.id, port)
	if idx, ok := e.store.UpdateTimeIndex(h); ok && (!out.hasTime || out.timeIndex != idx) {
		return true
	}
	switch out.data.ExtentType() {
	case vispipe.Pieces:
		return out.data.DataPiece() != e.store.UpdatePiece(h)
	case vispipe.Extent3D:
		update := e.store.UpdateExtent(h)
		return !update.IsEmpty() && !out.data.DataExtent().Contains(update)
	}
	return false
}

// validateInputs checks the number and extent types of a Stage's input connections
func (e *Executive) validateInputs(s *stage) error {
	for port, spec := range s.ports.Inputs {
		conns := s.inputs[port]
		if len(conns) == 0 && !spec.Optional {
			return errors.InputCountError{Stage: int(s.id), Port: port, Count: 0}
		}
		if len(conns) > 1 && !spec.Repeatable {
			return errors.InputCountError{Stage: int(s.id), Port: port, Count: len(conns)}
		}
		for conn, h := range conns {
			d := e.stages[h.Stage].outputs[h.Port].data
			if d != nil && !spec.AcceptsType(d.ExtentType()) {
				return errors.InputTypeError{Stage: int(s.id), Port: port, Connection: conn, Actual: d.ExtentType().String()}
			}
		}
	}
	return nil
}
