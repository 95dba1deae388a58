package pipeline

import (
	"context"
	"time"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/errors"
	"github.com/sirupsen/logrus"
)

// stageContext is the view of the current request handed to an Algorithm for one call
type stageContext struct {
	ctx               context.Context
	exec              *Executive
	stage             *stage
	req               *request
	continueExecuting bool
	aborted           bool
	notGenerated      map[int]bool
}

func (e *Executive) createStageContext(ctx context.Context, s *stage, req *request) *stageContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &stageContext{
		ctx:               ctx,
		exec:              e,
		stage:             s,
		req:               req,
		continueExecuting: s.continueExecuting,
		notGenerated:      make(map[int]bool),
	}
}

func (s *stageContext) Deadline() (deadline time.Time, ok bool) {
	return s.ctx.Deadline()
}

func (s *stageContext) Done() <-chan struct{} {
	return s.ctx.Done()
}

func (s *stageContext) Err() error {
	return s.ctx.Err()
}

func (s *stageContext) Value(key interface{}) interface{} {
	return s.ctx.Value(key)
}

func (s *stageContext) Stage() vispipe.StageID {
	return s.stage.id
}

func (s *stageContext) Name() string {
	return s.stage.name
}

func (s *stageContext) RequestingPort() int {
	return s.req.fromPort
}

func (s *stageContext) NumberOfInputPorts() int {
	return len(s.stage.inputs)
}

func (s *stageContext) NumberOfInputConnections(port int) int {
	if port < 0 || port >= len(s.stage.inputs) {
		return 0
	}
	return len(s.stage.inputs[port])
}

func (s *stageContext) inputHandle(port, conn int) (vispipe.OutputHandle, error) {
	if port < 0 || port >= len(s.stage.inputs) {
		return vispipe.OutputHandle{Stage: -1, Port: -1}, errors.PortRangeError{Stage: int(s.stage.id), Port: port, NumPorts: len(s.stage.inputs), Op: "Input"}
	}
	conns := s.stage.inputs[port]
	if conn < 0 || conn >= len(conns) {
		return vispipe.OutputHandle{Stage: -1, Port: -1}, errors.PortRangeError{Stage: int(s.stage.id), Port: conn, NumPorts: len(conns), Op: "Input"}
	}
	return conns[conn], nil
}

func (s *stageContext) Input(port, conn int) vispipe.PortView {
	h, err := s.inputHandle(port, conn)
	if err != nil {
		s.Logger().WithError(err).Error("invalid input connection")
	}
	return &portView{exec: s.exec, h: h}
}

func (s *stageContext) Output(port int) vispipe.PortView {
	return &portView{exec: s.exec, h: vispipe.Out(s.stage.id, port)}
}

func (s *stageContext) ContinueExecuting() bool {
	return s.continueExecuting
}

func (s *stageContext) SetContinueExecuting(c bool) {
	s.continueExecuting = c
}

func (s *stageContext) Iteration() int {
	return s.stage.iteration
}

func (s *stageContext) Abort() {
	s.aborted = true
}

func (s *stageContext) AbortRequested() bool {
	return s.aborted || s.ctx.Err() != nil
}

func (s *stageContext) SetDataNotGenerated(port int) {
	s.notGenerated[port] = true
}

func (s *stageContext) UpdateInputExtent(port, conn int, ext vispipe.Extent) (vispipe.DataObject, error) {
	h, err := s.inputHandle(port, conn)
	if err != nil {
		return nil, err
	}
	s.exec.store.SetUpdateExtent(h, ext)
	return s.pullInput(h)
}

func (s *stageContext) UpdateInputPiece(port, conn int, req vispipe.PieceRequest) (vispipe.DataObject, error) {
	h, err := s.inputHandle(port, conn)
	if err != nil {
		return nil, err
	}
	if _, err := s.exec.store.SetUpdatePiece(h, req); err != nil {
		return nil, err
	}
	return s.pullInput(h)
}

// pullInput runs the propagate and data passes on a single producer
func (s *stageContext) pullInput(h vispipe.OutputHandle) (d vispipe.DataObject, err error) {
	producer := s.exec.stages[h.Stage]
	defer func() {
		if err != nil {
			producer.continueExecuting = false
		}
	}()
	propagate := s.req.forward(h.Port)
	propagate.kind = requestUpdateExtent
	propagate.algorithmBeforeForward = true
	if err := s.exec.processUpdateExtent(s.ctx, producer, propagate); err != nil {
		return nil, err
	}
	data := s.req.forward(h.Port)
	data.kind = requestData
	if err := s.exec.processData(s.ctx, producer, data); err != nil {
		return nil, err
	}
	for producer.continueExecuting {
		if err := s.exec.processData(s.ctx, producer, data); err != nil {
			return nil, err
		}
	}
	return producer.outputs[h.Port].data, nil
}

func (s *stageContext) Logger() *logrus.Entry {
	return s.exec.stageLog(s.stage, s.req)
}

// portView exposes the store record and data of one output port
type portView struct {
	exec *Executive
	h    vispipe.OutputHandle
}

func (p *portView) Handle() vispipe.OutputHandle {
	return p.h
}

func (p *portView) ExtentType() vispipe.ExtentType {
	return p.exec.store.ExtentType(p.h)
}

func (p *portView) Data() vispipe.DataObject {
	if p.h.Stage < 0 || int(p.h.Stage) >= len(p.exec.stages) {
		return nil
	}
	outs := p.exec.stages[p.h.Stage].outputs
	if p.h.Port < 0 || p.h.Port >= len(outs) {
		return nil
	}
	return outs[p.h.Port].data
}

func (p *portView) WholeExtent() vispipe.Extent {
	return p.exec.store.WholeExtent(p.h)
}

func (p *portView) SetWholeExtent(ext vispipe.Extent) bool {
	return p.exec.store.SetWholeExtent(p.h, ext)
}

func (p *portView) MaximumNumberOfPieces() int {
	return p.exec.store.MaximumNumberOfPieces(p.h)
}

func (p *portView) SetMaximumNumberOfPieces(n int) bool {
	return p.exec.store.SetMaximumNumberOfPieces(p.h, n)
}

func (p *portView) UpdateExtent() vispipe.Extent {
	return p.exec.store.UpdateExtent(p.h)
}

func (p *portView) SetUpdateExtent(ext vispipe.Extent) bool {
	return p.exec.store.SetUpdateExtent(p.h, ext)
}

func (p *portView) UpdatePiece() vispipe.PieceRequest {
	return p.exec.store.UpdatePiece(p.h)
}

func (p *portView) SetUpdatePiece(req vispipe.PieceRequest) (bool, error) {
	return p.exec.store.SetUpdatePiece(p.h, req)
}

func (p *portView) SetUpdateExtentToWholeExtent() bool {
	return p.exec.store.SetUpdateExtentToWholeExtent(p.h)
}

func (p *portView) ExtentTranslator() vispipe.ExtentTranslator {
	return p.exec.store.ExtentTranslator(p.h)
}

func (p *portView) SetExtentTranslator(t vispipe.ExtentTranslator) bool {
	return p.exec.store.SetExtentTranslator(p.h, t)
}

func (p *portView) RequestExactExtent() bool {
	return p.exec.store.RequestExactExtent(p.h)
}

func (p *portView) SetRequestExactExtent(exact bool) bool {
	return p.exec.store.SetRequestExactExtent(p.h, exact)
}

func (p *portView) WholeBoundingBox() vispipe.Bounds {
	return p.exec.store.WholeBoundingBox(p.h)
}

func (p *portView) SetWholeBoundingBox(b vispipe.Bounds) bool {
	return p.exec.store.SetWholeBoundingBox(p.h, b)
}

func (p *portView) TimeSteps() []float64 {
	return p.exec.store.TimeSteps(p.h)
}

func (p *portView) SetTimeSteps(steps []float64) bool {
	return p.exec.store.SetTimeSteps(p.h, steps)
}

func (p *portView) UpdateTimeIndex() (int, bool) {
	return p.exec.store.UpdateTimeIndex(p.h)
}

func (p *portView) SetUpdateTimeIndex(idx int) bool {
	return p.exec.store.SetUpdateTimeIndex(p.h, idx)
}
