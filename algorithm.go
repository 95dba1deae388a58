package vispipe

// InputPortSpec declares what an input port accepts
type InputPortSpec struct {
	Name       string
	Accepts    []ExtentType // empty accepts any ExtentType
	Optional   bool         // iff true, the port may have no connections
	Repeatable bool         // iff true, the port may have more than one connection
}

// AcceptsType returns true iff data of ExtentType t may be connected to this port
func (s InputPortSpec) AcceptsType(t ExtentType) bool {
	if len(s.Accepts) == 0 {
		return true
	}
	for _, a := range s.Accepts {
		if a == t {
			return true
		}
	}
	return false
}

// PortSpec declares the input and output ports of an Algorithm
type PortSpec struct {
	Inputs  []InputPortSpec
	Outputs []ExtentType
}

// An Algorithm is a processing step in a pipeline. The executive calls it in three passes:
// information (what could be produced), update extent (what inputs are needed for the
// current request) and data (produce it).
type Algorithm interface {
	Ports() PortSpec                            // Ports declares the ports of this Algorithm. Must be constant.
	NewOutputData(port int) DataObject          // NewOutputData creates an empty DataObject for an output port
	RequestInformation(ctx StageContext) error  // RequestInformation sets whole extents and piece hints on outputs
	RequestUpdateExtent(ctx StageContext) error // RequestUpdateExtent may override the requests forwarded to inputs
	RequestData(ctx StageContext) error         // RequestData produces output data for the current request
}

// AlgorithmBase supplies the default information and update extent behaviour, which leaves
// the executive's defaults in place. Embed it in Algorithms.
type AlgorithmBase struct{}

// RequestInformation does nothing
func (AlgorithmBase) RequestInformation(ctx StageContext) error {
	return nil
}

// RequestUpdateExtent does nothing
func (AlgorithmBase) RequestUpdateExtent(ctx StageContext) error {
	return nil
}
