package info

import (
	"github.com/go-sif/vispipe"
)

// Key identifies one field of a PortInfo record
type Key uint16

const (
	// WholeExtentKey is the full extent a port could ever produce
	WholeExtentKey Key = 1 << iota
	// MaximumNumberOfPiecesKey is the number of pieces a port can be divided into
	MaximumNumberOfPiecesKey
	// UpdateExtentKey is the structured extent currently requested
	UpdateExtentKey
	// UpdatePieceKey is the piece currently requested
	UpdatePieceKey
	// UpdateNumberOfPiecesKey is the number of pieces the request divides the data into
	UpdateNumberOfPiecesKey
	// UpdateGhostLevelKey is the number of ghost layers currently requested
	UpdateGhostLevelKey
	// UpdateExtentInitializedKey records whether the request was set explicitly
	UpdateExtentInitializedKey
	// ExtentTranslatorKey is the translator for piece requests on structured ports
	ExtentTranslatorKey
	// ExactExtentKey requests cropping to exactly the update extent
	ExactExtentKey
	// WholeBoundingBoxKey is the world-space box of the whole extent
	WholeBoundingBoxKey
	// TimeStepsKey lists the time values a port can produce
	TimeStepsKey
	// UpdateTimeIndexKey is the index of the time step currently requested
	UpdateTimeIndexKey
)

// pieceKeys are the fields describing a piece request
const pieceKeys = UpdatePieceKey | UpdateNumberOfPiecesKey | UpdateGhostLevelKey

func (k Key) String() string {
	switch k {
	case WholeExtentKey:
		return "WHOLE_EXTENT"
	case MaximumNumberOfPiecesKey:
		return "MAXIMUM_NUMBER_OF_PIECES"
	case UpdateExtentKey:
		return "UPDATE_EXTENT"
	case UpdatePieceKey:
		return "UPDATE_PIECE_NUMBER"
	case UpdateNumberOfPiecesKey:
		return "UPDATE_NUMBER_OF_PIECES"
	case UpdateGhostLevelKey:
		return "UPDATE_NUMBER_OF_GHOST_LEVELS"
	case UpdateExtentInitializedKey:
		return "UPDATE_EXTENT_INITIALIZED"
	case ExtentTranslatorKey:
		return "EXTENT_TRANSLATOR"
	case ExactExtentKey:
		return "EXACT_EXTENT"
	case WholeBoundingBoxKey:
		return "WHOLE_BOUNDING_BOX"
	case TimeStepsKey:
		return "TIME_STEPS"
	case UpdateTimeIndexKey:
		return "UPDATE_TIME_INDEX"
	default:
		return "UNKNOWN"
	}
}

// PortInfo is the pipeline information of one output port. Every field but the extent type
// carries a presence bit.
type PortInfo struct {
	extentType       vispipe.ExtentType
	has              Key
	wholeExtent      vispipe.Extent
	maxPieces        int
	updateExtent     vispipe.Extent
	piece            int
	numPieces        int
	ghostLevel       int
	initialized      bool
	translator       vispipe.ExtentTranslator
	exact            bool
	wholeBoundingBox vispipe.Bounds
	timeSteps        []float64
	timeIndex        int
}

func newPortInfo(t vispipe.ExtentType) *PortInfo {
	return &PortInfo{extentType: t}
}

// reset returns this PortInfo to its unset state
func (p *PortInfo) reset() {
	*p = PortInfo{extentType: p.extentType}
}

func (p *PortInfo) hasKey(k Key) bool {
	return p.has&k == k
}

func (p *PortInfo) remove(k Key) {
	p.has &^= k
	if k&ExtentTranslatorKey != 0 {
		p.translator = nil
	}
	if k&TimeStepsKey != 0 {
		p.timeSteps = nil
	}
}

func (p *PortInfo) setPiece(req vispipe.PieceRequest) bool {
	changed := !p.hasKey(pieceKeys) || p.piece != req.Piece || p.numPieces != req.NumberOfPieces || p.ghostLevel != req.GhostLevel
	p.piece, p.numPieces, p.ghostLevel = req.Piece, req.NumberOfPieces, req.GhostLevel
	p.has |= pieceKeys
	return changed
}

func (p *PortInfo) setUpdateExtent(ext vispipe.Extent) bool {
	changed := !p.hasKey(UpdateExtentKey) || p.updateExtent != ext
	p.updateExtent = ext
	p.has |= UpdateExtentKey
	return changed
}

func (p *PortInfo) setInitialized(initialized bool) {
	p.initialized = initialized
	p.has |= UpdateExtentInitializedKey
}
