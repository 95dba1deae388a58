package vispipe

// An ExtentTranslator maps a piece request onto a structured extent of a whole extent.
// Implementations must be deterministic.
type ExtentTranslator interface {
	// PieceToExtent returns the sub-extent of whole for a piece, grown by the request's ghost level
	// and clamped to whole. Pieces which receive no region map to EmptyExtent.
	PieceToExtent(whole Extent, req PieceRequest) (Extent, error)
}
