package errors

import (
	"fmt"
)

// PortRangeError occurs when a port index is outside the ports declared by a Stage
type PortRangeError struct {
	Stage    int
	Port     int
	NumPorts int
	Op       string
}

// Error returns a textual representation of this PortRangeError
func (e PortRangeError) Error() string {
	return fmt.Sprintf("%s: port %d of stage %d is out of range [0, %d)", e.Op, e.Port, e.Stage, e.NumPorts)
}

// MissingPipelineInfoError occurs when a required pipeline information field has not been set
type MissingPipelineInfoError struct {
	Stage int
	Port  int
	Key   string
}

// Error returns a textual representation of this MissingPipelineInfoError
func (e MissingPipelineInfoError) Error() string {
	return fmt.Sprintf("stage %d port %d is missing pipeline information %s", e.Stage, e.Port, e.Key)
}

// ExtentOutOfRangeError occurs when a non-empty update extent does not lie within the whole extent
type ExtentOutOfRangeError struct {
	Stage        int
	Port         int
	UpdateExtent [6]int
	WholeExtent  [6]int
}

// Error returns a textual representation of this ExtentOutOfRangeError
func (e ExtentOutOfRangeError) Error() string {
	return fmt.Sprintf("stage %d port %d: update extent %v is outside the whole extent %v", e.Stage, e.Port, e.UpdateExtent, e.WholeExtent)
}

// InvalidPieceError occurs when a piece request is malformed
type InvalidPieceError struct {
	Piece          int
	NumberOfPieces int
	GhostLevel     int
}

// Error returns a textual representation of this InvalidPieceError
func (e InvalidPieceError) Error() string {
	return fmt.Sprintf("invalid piece request %d/%d with ghost level %d", e.Piece, e.NumberOfPieces, e.GhostLevel)
}

// UnmanagedInputError occurs when an input connection cannot receive a streaming request
type UnmanagedInputError struct {
	Stage      int
	InputPort  int
	Connection int
	Reason     string
}

// Error returns a textual representation of this UnmanagedInputError
func (e UnmanagedInputError) Error() string {
	return fmt.Sprintf("stage %d input %d connection %d is not managed by the streaming executive: %s", e.Stage, e.InputPort, e.Connection, e.Reason)
}

// UnknownStageError occurs when a stage id does not belong to an executive
type UnknownStageError struct {
	Stage int
}

// Error returns a textual representation of this UnknownStageError
func (e UnknownStageError) Error() string {
	return fmt.Sprintf("stage %d does not exist", e.Stage)
}

// InputCountError occurs when an input port has too few or too many connections
type InputCountError struct {
	Stage int
	Port  int
	Count int
}

// Error returns a textual representation of this InputCountError
func (e InputCountError) Error() string {
	return fmt.Sprintf("stage %d input port %d has an invalid number of connections (%d)", e.Stage, e.Port, e.Count)
}

// InputTypeError occurs when the data on an input connection is not accepted by the port
type InputTypeError struct {
	Stage      int
	Port       int
	Connection int
	Actual     string
}

// Error returns a textual representation of this InputTypeError
func (e InputTypeError) Error() string {
	return fmt.Sprintf("stage %d input port %d connection %d does not accept %s data", e.Stage, e.Port, e.Connection, e.Actual)
}

// ReentrantRequestError occurs when an algorithm calls back into the executive for its own stage
type ReentrantRequestError struct {
	Stage int
	Op    string
}

// Error returns a textual representation of this ReentrantRequestError
func (e ReentrantRequestError) Error() string {
	return fmt.Sprintf("%s: stage %d is already executing", e.Op, e.Stage)
}

// CycleError occurs when a connection would make the stage graph cyclic
type CycleError struct {
	Producer int
	Consumer int
}

// Error returns a textual representation of this CycleError
func (e CycleError) Error() string {
	return fmt.Sprintf("connecting stage %d to stage %d would create a cycle", e.Producer, e.Consumer)
}

// AbortedError occurs when a stage's execution was aborted
type AbortedError struct {
	Stage int
}

// Error returns a textual representation of this AbortedError
func (e AbortedError) Error() string {
	return fmt.Sprintf("execution of stage %d was aborted", e.Stage)
}

// AlgorithmError occurs when an algorithm returns an error or panics
type AlgorithmError struct {
	Stage int
	Name  string
	Pass  string
	Err   error
}

// Error returns a textual representation of this AlgorithmError
func (e AlgorithmError) Error() string {
	return fmt.Sprintf("stage %d (%s) failed during %s: %v", e.Stage, e.Name, e.Pass, e.Err)
}

// Unwrap returns the underlying algorithm error
func (e AlgorithmError) Unwrap() error {
	return e.Err
}

// TransportError occurs when a message cannot be delivered or decoded
type TransportError struct {
	Rank   int
	Peer   int
	Tag    int
	Reason string
}

// Error returns a textual representation of this TransportError
func (e TransportError) Error() string {
	return fmt.Sprintf("rank %d: transport failure with peer %d (tag %d): %s", e.Rank, e.Peer, e.Tag, e.Reason)
}
