package pipeline

import (
	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/errors"
	iutil "github.com/go-sif/vispipe/internal/util"
	uuid "github.com/gofrs/uuid"
)

type requestKind int

const (
	requestInformation requestKind = iota
	requestUpdateExtent
	requestData
)

func (k requestKind) String() string {
	switch k {
	case requestInformation:
		return "RequestInformation"
	case requestUpdateExtent:
		return "RequestUpdateExtent"
	default:
		return "RequestData"
	}
}

// request is one pass through the graph, tagged with the output port it is made on
type request struct {
	kind                   requestKind
	id                     string
	fromPort               int
	algorithmBeforeForward bool
	visited                map[vispipe.StageID]bool
}

func (e *Executive) newRequest(kind requestKind, fromPort int) *request {
	id, err := uuid.NewV4()
	if err != nil {
		e.log.Fatalf("failed to generate UUID: %v", err)
	}
	return &request{
		kind:                   kind,
		id:                     id.String(),
		fromPort:               fromPort,
		algorithmBeforeForward: kind == requestUpdateExtent,
		visited:                make(map[vispipe.StageID]bool),
	}
}

// forward returns the same request, made on a producer's output port
func (r *request) forward(port int) *request {
	next := *r
	next.fromPort = port
	return &next
}

// callAlgorithm runs one pass of a Stage's Algorithm, guarding against re-entry and panics
func (e *Executive) callAlgorithm(sctx *stageContext, pass string, call func(vispipe.StageContext) error) error {
	s := sctx.stage
	if s.busy {
		return errors.ReentrantRequestError{Stage: int(s.id), Op: pass}
	}
	s.busy = true
	defer func() { s.busy = false }()
	err := iutil.SafeAlgorithmCall(s.name, pass, func() error { return call(sctx) })
	if err != nil {
		return errors.AlgorithmError{Stage: int(s.id), Name: s.name, Pass: pass, Err: err}
	}
	return nil
}
