package pipeline

import (
	"github.com/go-sif/vispipe"
)

// WholeExtent returns the whole extent of an output port
func (e *Executive) WholeExtent(h vispipe.OutputHandle) vispipe.Extent {
	return e.store.WholeExtent(h)
}

// UpdateExtent returns the requested extent of an output port
func (e *Executive) UpdateExtent(h vispipe.OutputHandle) vispipe.Extent {
	return e.store.UpdateExtent(h)
}

// SetUpdateExtent requests a structured extent on an output port, returning true iff the request changed
func (e *Executive) SetUpdateExtent(h vispipe.OutputHandle, ext vispipe.Extent) bool {
	return e.store.SetUpdateExtent(h, ext)
}

// UpdatePiece returns the requested piece of an output port
func (e *Executive) UpdatePiece(h vispipe.OutputHandle) vispipe.PieceRequest {
	return e.store.UpdatePiece(h)
}

// SetUpdatePiece requests a piece on an output port, returning true iff the request changed.
// On structured ports the piece is translated into an update extent.
func (e *Executive) SetUpdatePiece(h vispipe.OutputHandle, req vispipe.PieceRequest) (bool, error) {
	return e.store.SetUpdatePiece(h, req)
}

// SetUpdateExtentToWholeExtent requests everything an output port can produce
func (e *Executive) SetUpdateExtentToWholeExtent(h vispipe.OutputHandle) bool {
	return e.store.SetUpdateExtentToWholeExtent(h)
}

// UpdateExtentInitialized returns true iff the request of an output port was set explicitly
func (e *Executive) UpdateExtentInitialized(h vispipe.OutputHandle) bool {
	return e.store.UpdateExtentInitialized(h)
}

// MaximumNumberOfPieces returns the piece count hint of an output port
func (e *Executive) MaximumNumberOfPieces(h vispipe.OutputHandle) int {
	return e.store.MaximumNumberOfPieces(h)
}

// SetMaximumNumberOfPieces sets the piece count hint of an output port
func (e *Executive) SetMaximumNumberOfPieces(h vispipe.OutputHandle, n int) bool {
	return e.store.SetMaximumNumberOfPieces(h, n)
}

// RequestExactExtent returns true iff an output port is cropped to exactly its update extent
func (e *Executive) RequestExactExtent(h vispipe.OutputHandle) bool {
	return e.store.RequestExactExtent(h)
}

// SetRequestExactExtent sets whether an output port is cropped to exactly its update extent
func (e *Executive) SetRequestExactExtent(h vispipe.OutputHandle, exact bool) bool {
	return e.store.SetRequestExactExtent(h, exact)
}

// ExtentTranslator returns the translator of an output port
func (e *Executive) ExtentTranslator(h vispipe.OutputHandle) vispipe.ExtentTranslator {
	return e.store.ExtentTranslator(h)
}

// SetExtentTranslator sets the translator of an output port. nil removes it.
func (e *Executive) SetExtentTranslator(h vispipe.OutputHandle, t vispipe.ExtentTranslator) bool {
	return e.store.SetExtentTranslator(h, t)
}

// WholeBoundingBox returns the world-space box of an output port's whole extent
func (e *Executive) WholeBoundingBox(h vispipe.OutputHandle) vispipe.Bounds {
	return e.store.WholeBoundingBox(h)
}

// TimeSteps returns the time steps an output port can produce
func (e *Executive) TimeSteps(h vispipe.OutputHandle) []float64 {
	return e.store.TimeSteps(h)
}

// UpdateTimeIndex returns the requested time step of an output port, if set
func (e *Executive) UpdateTimeIndex(h vispipe.OutputHandle) (int, bool) {
	return e.store.UpdateTimeIndex(h)
}

// SetUpdateTimeIndex requests a time step on an output port
func (e *Executive) SetUpdateTimeIndex(h vispipe.OutputHandle, idx int) bool {
	return e.store.SetUpdateTimeIndex(h, idx)
}
