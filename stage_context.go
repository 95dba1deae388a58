package vispipe

import (
	"context"

	"github.com/sirupsen/logrus"
)

// A StageContext is a Context enhanced with a Stage's view of the current request
type StageContext interface {
	context.Context
	Stage() StageID                        // Stage returns the id of the Stage being called
	Name() string                          // Name returns the name the Stage was added with
	RequestingPort() int                   // RequestingPort returns the output port the request originated from, or AllPorts
	NumberOfInputPorts() int               // NumberOfInputPorts returns the number of declared input ports
	NumberOfInputConnections(port int) int // NumberOfInputConnections returns the number of connections on an input port
	Input(port, conn int) PortView         // Input returns the pipeline information of an input connection
	Output(port int) PortView              // Output returns the pipeline information of an output port
	ContinueExecuting() bool               // ContinueExecuting returns true iff this Stage asked to execute again
	SetContinueExecuting(c bool)           // SetContinueExecuting asks the executive to call RequestData again within the same update
	Iteration() int                        // Iteration returns the number of RequestData calls made so far in this update
	Abort()                                // Abort asks the executive to stop after the current call
	AbortRequested() bool                  // AbortRequested returns true iff Abort was called or the Context has ended
	SetDataNotGenerated(port int)          // SetDataNotGenerated leaves an output port's generation state unchanged after this call
	// UpdateInputExtent requests a structured extent from one input connection and brings it up to date
	UpdateInputExtent(port, conn int, ext Extent) (DataObject, error)
	// UpdateInputPiece requests a piece from one input connection and brings it up to date
	UpdateInputPiece(port, conn int, req PieceRequest) (DataObject, error)
	Logger() *logrus.Entry // Logger returns a logger tagged with this Stage
}

// A PortView exposes the pipeline information and data of one port
type PortView interface {
	Handle() OutputHandle
	ExtentType() ExtentType
	Data() DataObject
	WholeExtent() Extent
	SetWholeExtent(ext Extent) bool
	MaximumNumberOfPieces() int
	SetMaximumNumberOfPieces(n int) bool
	UpdateExtent() Extent
	SetUpdateExtent(ext Extent) bool
	UpdatePiece() PieceRequest
	SetUpdatePiece(req PieceRequest) (bool, error)
	SetUpdateExtentToWholeExtent() bool
	ExtentTranslator() ExtentTranslator
	SetExtentTranslator(t ExtentTranslator) bool
	RequestExactExtent() bool
	SetRequestExactExtent(exact bool) bool
	WholeBoundingBox() Bounds
	SetWholeBoundingBox(b Bounds) bool
	TimeSteps() []float64
	SetTimeSteps(steps []float64) bool
	UpdateTimeIndex() (int, bool)
	SetUpdateTimeIndex(idx int) bool
}
