package vispipe

import "fmt"

// StageID identifies a Stage within an executive
type StageID int

// AllPorts addresses every output port of a Stage at once
const AllPorts = -1

// OutputHandle addresses one output port of one Stage
type OutputHandle struct {
	Stage StageID
	Port  int
}

// Out is shorthand for building an OutputHandle
func Out(stage StageID, port int) OutputHandle {
	return OutputHandle{Stage: stage, Port: port}
}

func (h OutputHandle) String() string {
	return fmt.Sprintf("%d:%d", h.Stage, h.Port)
}
