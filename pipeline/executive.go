package pipeline

import (
	"fmt"

	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/errors"
	"github.com/go-sif/vispipe/internal/info"
	"github.com/go-sif/vispipe/internal/stats"
	uuid "github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

// output is the data side of an output port
type output struct {
	data       vispipe.DataObject
	generated  bool
	updateTime uint64
	timeIndex  int
	hasTime    bool
}

// stage is an Algorithm placed in the graph of an Executive
type stage struct {
	id                vispipe.StageID
	name              string
	algorithm         vispipe.Algorithm
	ports             vispipe.PortSpec
	inputs            [][]vispipe.OutputHandle // producer output ports, by input port and connection
	outputs           []*output
	mtime             uint64
	informationTime   uint64
	continueExecuting bool
	iteration         int
	busy              bool
}

// Executive drives a graph of Algorithms with streaming, demand-driven semantics. It owns the
// pipeline information of every output port. An Executive is not safe for concurrent use.
type Executive struct {
	id           string
	conf         *Config
	log          *logrus.Entry
	store        *info.Store
	stages       []*stage
	clock        uint64
	statsTracker *stats.RunStatistics
}

// CreateExecutive is a factory for Executives
func CreateExecutive(conf *Config) *Executive {
	if conf == nil {
		conf = &Config{}
	}
	ensureDefaultConfigValues(conf)
	id, err := uuid.NewV4()
	if err != nil {
		conf.Logger.Fatalf("failed to generate UUID: %v", err)
	}
	log := conf.Logger.WithField("executive", id.String())
	return &Executive{
		id:           id.String(),
		conf:         conf,
		log:          log,
		store:        info.NewStore(log),
		statsTracker: stats.CreateRunStatistics(),
	}
}

// ID returns the unique id of this Executive
func (e *Executive) ID() string {
	return e.id
}

// Stats returns execution statistics for this Executive
func (e *Executive) Stats() vispipe.RuntimeStatistics {
	return e.statsTracker
}

// NumberOfStages returns the number of Stages added to this Executive
func (e *Executive) NumberOfStages() int {
	return len(e.stages)
}

func (e *Executive) tick() uint64 {
	e.clock++
	return e.clock
}

// AddStage places an Algorithm in the graph, registering its output ports
func (e *Executive) AddStage(name string, alg vispipe.Algorithm) (vispipe.StageID, error) {
	if alg == nil {
		return -1, fmt.Errorf("Algorithm for stage %s cannot be nil", name)
	}
	spec := alg.Ports()
	s := &stage{
		id:        vispipe.StageID(len(e.stages)),
		name:      name,
		algorithm: alg,
		ports:     spec,
		inputs:    make([][]vispipe.OutputHandle, len(spec.Inputs)),
		outputs:   make([]*output, len(spec.Outputs)),
		mtime:     e.tick(),
	}
	for i := range s.outputs {
		s.outputs[i] = &output{}
	}
	e.store.Register(s.id, spec.Outputs)
	e.statsTracker.AddStage()
	e.stages = append(e.stages, s)
	e.log.WithFields(logrus.Fields{"stage": s.id, "name": name}).Debug("added stage")
	return s.id, nil
}

// Algorithm returns the Algorithm of a Stage, or nil
func (e *Executive) Algorithm(id vispipe.StageID) vispipe.Algorithm {
	s, err := e.lookupStage(id, "Algorithm")
	if err != nil {
		return nil
	}
	return s.algorithm
}

func (e *Executive) lookupStage(id vispipe.StageID, op string) (*stage, error) {
	if id < 0 || int(id) >= len(e.stages) {
		err := errors.UnknownStageError{Stage: int(id)}
		e.log.WithError(err).WithField("op", op).Error("unknown stage")
		return nil, err
	}
	return e.stages[id], nil
}

// checkOutput returns the Stage owning an output handle. AllPorts is accepted iff allowAll.
func (e *Executive) checkOutput(h vispipe.OutputHandle, op string, allowAll bool) (*stage, error) {
	s, err := e.lookupStage(h.Stage, op)
	if err != nil {
		return nil, err
	}
	if allowAll && h.Port == vispipe.AllPorts {
		return s, nil
	}
	if h.Port < 0 || h.Port >= len(s.outputs) {
		err := errors.PortRangeError{Stage: int(h.Stage), Port: h.Port, NumPorts: len(s.outputs), Op: op}
		e.log.WithError(err).Error("invalid port")
		return nil, err
	}
	return s, nil
}

// SetInputConnection replaces all connections of an input port with a single producer output
func (e *Executive) SetInputConnection(consumer vispipe.StageID, inputPort int, producer vispipe.OutputHandle) error {
	return e.connect(consumer, inputPort, producer, true)
}

// Connect appends a producer output to the connections of an input port
func (e *Executive) Connect(producer vispipe.OutputHandle, consumer vispipe.StageID, inputPort int) error {
	return e.connect(consumer, inputPort, producer, false)
}

func (e *Executive) connect(consumer vispipe.StageID, inputPort int, producer vispipe.OutputHandle, replace bool) error {
	c, err := e.lookupStage(consumer, "Connect")
	if err != nil {
		return err
	}
	if inputPort < 0 || inputPort >= len(c.inputs) {
		return errors.PortRangeError{Stage: int(consumer), Port: inputPort, NumPorts: len(c.inputs), Op: "Connect"}
	}
	if _, err := e.checkOutput(producer, "Connect", false); err != nil {
		return err
	}
	if e.dependsOn(producer.Stage, consumer) {
		return errors.CycleError{Producer: int(producer.Stage), Consumer: int(consumer)}
	}
	if replace {
		c.inputs[inputPort] = []vispipe.OutputHandle{producer}
	} else {
		if !c.ports.Inputs[inputPort].Repeatable && len(c.inputs[inputPort]) > 0 {
			return errors.InputCountError{Stage: int(consumer), Port: inputPort, Count: len(c.inputs[inputPort]) + 1}
		}
		c.inputs[inputPort] = append(c.inputs[inputPort], producer)
	}
	e.topologyChanged(c)
	return nil
}

// Disconnect removes one connection from an input port
func (e *Executive) Disconnect(consumer vispipe.StageID, inputPort int, conn int) error {
	c, err := e.lookupStage(consumer, "Disconnect")
	if err != nil {
		return err
	}
	if inputPort < 0 || inputPort >= len(c.inputs) {
		return errors.PortRangeError{Stage: int(consumer), Port: inputPort, NumPorts: len(c.inputs), Op: "Disconnect"}
	}
	conns := c.inputs[inputPort]
	if conn < 0 || conn >= len(conns) {
		return errors.PortRangeError{Stage: int(consumer), Port: conn, NumPorts: len(conns), Op: "Disconnect"}
	}
	c.inputs[inputPort] = append(conns[:conn:conn], conns[conn+1:]...)
	e.topologyChanged(c)
	return nil
}

// NumberOfInputConnections returns the number of connections of an input port
func (e *Executive) NumberOfInputConnections(consumer vispipe.StageID, inputPort int) int {
	c, err := e.lookupStage(consumer, "NumberOfInputConnections")
	if err != nil || inputPort < 0 || inputPort >= len(c.inputs) {
		return 0
	}
	return len(c.inputs[inputPort])
}

// InputConnection returns the producer output feeding one connection of an input port
func (e *Executive) InputConnection(consumer vispipe.StageID, inputPort int, conn int) (vispipe.OutputHandle, bool) {
	c, err := e.lookupStage(consumer, "InputConnection")
	if err != nil || inputPort < 0 || inputPort >= len(c.inputs) || conn < 0 || conn >= len(c.inputs[inputPort]) {
		return vispipe.OutputHandle{Stage: -1, Port: -1}, false
	}
	return c.inputs[inputPort][conn], true
}

// dependsOn returns true iff upstream is s or feeds s
func (e *Executive) dependsOn(s vispipe.StageID, upstream vispipe.StageID) bool {
	if s == upstream {
		return true
	}
	for _, conns := range e.stages[s].inputs {
		for _, h := range conns {
			if e.dependsOn(h.Stage, upstream) {
				return true
			}
		}
	}
	return false
}

// topologyChanged resets the pipeline information of a Stage whose inputs changed
func (e *Executive) topologyChanged(s *stage) {
	s.mtime = e.tick()
	s.informationTime = 0
	for port := range s.outputs {
		e.store.Reset(vispipe.Out(s.id, port))
	}
}

// Modified marks the parameters of a Stage's Algorithm as changed, so that it re-executes on the next update
func (e *Executive) Modified(id vispipe.StageID) error {
	s, err := e.lookupStage(id, "Modified")
	if err != nil {
		return err
	}
	s.mtime = e.tick()
	return nil
}

// pipelineMTime returns the newest modification time of a Stage and everything upstream of it
func (e *Executive) pipelineMTime(s *stage) uint64 {
	t := s.mtime
	for _, conns := range s.inputs {
		for _, h := range conns {
			if pt := e.pipelineMTime(e.stages[h.Stage]); pt > t {
				t = pt
			}
		}
	}
	return t
}

// ResetPipelineInformation clears the pipeline information of an output port
func (e *Executive) ResetPipelineInformation(h vispipe.OutputHandle) error {
	if _, err := e.checkOutput(h, "ResetPipelineInformation", false); err != nil {
		return err
	}
	e.store.Reset(h)
	return nil
}

// Output returns the DataObject of an output port, or nil
func (e *Executive) Output(h vispipe.OutputHandle) vispipe.DataObject {
	s, err := e.checkOutput(h, "Output", false)
	if err != nil {
		return nil
	}
	return s.outputs[h.Port].data
}

func (e *Executive) emit(s *stage, t vispipe.EventType, port int) {
	e.conf.OnEvent(vispipe.Event{Type: t, Stage: s.id, Name: s.name, Port: port, Iteration: s.iteration})
}

func (e *Executive) stageLog(s *stage, req *request) *logrus.Entry {
	return e.log.WithFields(logrus.Fields{"stage": s.id, "name": s.name, "request": req.id})
}
