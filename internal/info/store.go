package info

import (
	"github.com/go-sif/vispipe"
	"github.com/go-sif/vispipe/errors"
	"github.com/sirupsen/logrus"
)

// Store is the arena of PortInfo records of an executive, addressed by OutputHandles.
// Accessors are permissive: an out-of-range handle is logged as a PortRangeError, getters
// return defaults and setters report no change.
type Store struct {
	log   *logrus.Entry
	ports [][]*PortInfo
}

// NewStore creates an empty Store
func NewStore(log *logrus.Entry) *Store {
	return &Store{log: log}
}

// Register creates the PortInfo records of a stage's output ports
func (s *Store) Register(stage vispipe.StageID, types []vispipe.ExtentType) {
	for int(stage) >= len(s.ports) {
		s.ports = append(s.ports, nil)
	}
	records := make([]*PortInfo, len(types))
	for i, t := range types {
		records[i] = newPortInfo(t)
	}
	s.ports[stage] = records
}

// NumberOfPorts returns the number of output ports registered for a stage
func (s *Store) NumberOfPorts(stage vispipe.StageID) int {
	if stage < 0 || int(stage) >= len(s.ports) {
		return 0
	}
	return len(s.ports[stage])
}

// Lookup returns the PortInfo for a handle, or a PortRangeError
func (s *Store) Lookup(h vispipe.OutputHandle, op string) (*PortInfo, error) {
	n := s.NumberOfPorts(h.Stage)
	if h.Port < 0 || h.Port >= n {
		return nil, errors.PortRangeError{Stage: int(h.Stage), Port: h.Port, NumPorts: n, Op: op}
	}
	return s.ports[h.Stage][h.Port], nil
}

func (s *Store) port(h vispipe.OutputHandle, op string) *PortInfo {
	p, err := s.Lookup(h, op)
	if err != nil {
		s.log.WithError(err).Error("invalid port")
		return nil
	}
	return p
}

// ExtentType returns the extent type declared for a port
func (s *Store) ExtentType(h vispipe.OutputHandle) vispipe.ExtentType {
	if p := s.port(h, "ExtentType"); p != nil {
		return p.extentType
	}
	return vispipe.Pieces
}

// Reset clears every field of a port, except its extent type
func (s *Store) Reset(h vispipe.OutputHandle) {
	if p := s.port(h, "ResetPipelineInformation"); p != nil {
		p.reset()
	}
}

// Has returns true iff every field in k is present on a port
func (s *Store) Has(h vispipe.OutputHandle, k Key) bool {
	if p := s.port(h, "Has"); p != nil {
		return p.hasKey(k)
	}
	return false
}

// Remove clears the fields in k on a port
func (s *Store) Remove(h vispipe.OutputHandle, k Key) {
	if p := s.port(h, "Remove"); p != nil {
		p.remove(k)
	}
}

// WholeExtent returns the whole extent of a port, persisting EmptyExtent if unset
func (s *Store) WholeExtent(h vispipe.OutputHandle) vispipe.Extent {
	p := s.port(h, "GetWholeExtent")
	if p == nil {
		return vispipe.EmptyExtent
	}
	if !p.hasKey(WholeExtentKey) {
		p.wholeExtent = vispipe.EmptyExtent
		p.has |= WholeExtentKey
	}
	return p.wholeExtent
}

// SetWholeExtent sets the whole extent of a port
func (s *Store) SetWholeExtent(h vispipe.OutputHandle, ext vispipe.Extent) bool {
	p := s.port(h, "SetWholeExtent")
	if p == nil {
		return false
	}
	changed := !p.hasKey(WholeExtentKey) || p.wholeExtent != ext
	p.wholeExtent = ext
	p.has |= WholeExtentKey
	return changed
}

// MaximumNumberOfPieces returns the piece count hint of a port, persisting -1 if unset
func (s *Store) MaximumNumberOfPieces(h vispipe.OutputHandle) int {
	p := s.port(h, "GetMaximumNumberOfPieces")
	if p == nil {
		return -1
	}
	if !p.hasKey(MaximumNumberOfPiecesKey) {
		p.maxPieces = -1
		p.has |= MaximumNumberOfPiecesKey
	}
	return p.maxPieces
}

// SetMaximumNumberOfPieces sets the piece count hint of a port. -1 means arbitrarily divisible.
func (s *Store) SetMaximumNumberOfPieces(h vispipe.OutputHandle, n int) bool {
	p := s.port(h, "SetMaximumNumberOfPieces")
	if p == nil {
		return false
	}
	changed := !p.hasKey(MaximumNumberOfPiecesKey) || p.maxPieces != n
	p.maxPieces = n
	p.has |= MaximumNumberOfPiecesKey
	return changed
}

// UpdateExtent returns the update extent of a port. If unset, EmptyExtent is persisted and the
// request is marked as not explicitly initialized.
func (s *Store) UpdateExtent(h vispipe.OutputHandle) vispipe.Extent {
	p := s.port(h, "GetUpdateExtent")
	if p == nil {
		return vispipe.EmptyExtent
	}
	if !p.hasKey(UpdateExtentKey) {
		p.setUpdateExtent(vispipe.EmptyExtent)
		p.setInitialized(false)
	}
	return p.updateExtent
}

// SetUpdateExtent explicitly requests a structured extent on a port. On structured ports the
// piece request is reset to a single piece, since it no longer describes the request.
func (s *Store) SetUpdateExtent(h vispipe.OutputHandle, ext vispipe.Extent) bool {
	p := s.port(h, "SetUpdateExtent")
	if p == nil {
		return false
	}
	changed := p.setUpdateExtent(ext)
	if p.extentType == vispipe.Extent3D && p.setPiece(vispipe.WholePieceRequest) {
		changed = true
	}
	p.setInitialized(true)
	return changed
}

// UpdateExtentInitialized returns true iff the request of a port was explicitly set
func (s *Store) UpdateExtentInitialized(h vispipe.OutputHandle) bool {
	if p := s.port(h, "GetUpdateExtentInitialized"); p != nil {
		return p.hasKey(UpdateExtentInitializedKey) && p.initialized
	}
	return false
}

// UpdatePiece returns the piece request of a port, persisting piece 0 of 1 without ghosts for
// any unset field
func (s *Store) UpdatePiece(h vispipe.OutputHandle) vispipe.PieceRequest {
	p := s.port(h, "GetUpdatePiece")
	if p == nil {
		return vispipe.WholePieceRequest
	}
	if !p.hasKey(UpdatePieceKey) {
		p.piece = 0
		p.has |= UpdatePieceKey
	}
	if !p.hasKey(UpdateNumberOfPiecesKey) {
		p.numPieces = 1
		p.has |= UpdateNumberOfPiecesKey
	}
	if !p.hasKey(UpdateGhostLevelKey) {
		p.ghostLevel = 0
		p.has |= UpdateGhostLevelKey
	}
	return vispipe.PieceRequest{Piece: p.piece, NumberOfPieces: p.numPieces, GhostLevel: p.ghostLevel}
}

// SetUpdatePiece requests a piece on a port. The request is validated before anything is
// written. On structured ports the piece is translated into the update extent with the port's
// extent translator, which must be set.
func (s *Store) SetUpdatePiece(h vispipe.OutputHandle, req vispipe.PieceRequest) (bool, error) {
	p, err := s.Lookup(h, "SetUpdatePiece")
	if err != nil {
		s.log.WithError(err).Error("invalid port")
		return false, err
	}
	if err := req.Validate(); err != nil {
		return false, err
	}
	if p.extentType != vispipe.Extent3D {
		changed := p.setPiece(req)
		p.setInitialized(true)
		return changed, nil
	}
	if p.translator == nil {
		return false, errors.MissingPipelineInfoError{Stage: int(h.Stage), Port: h.Port, Key: ExtentTranslatorKey.String()}
	}
	ext, err := p.translator.PieceToExtent(s.WholeExtent(h), req)
	if err != nil {
		return false, err
	}
	changed := p.setPiece(req)
	if p.setUpdateExtent(ext) {
		changed = true
	}
	p.setInitialized(true)
	return changed, nil
}

// SetUpdateExtentToWholeExtent requests everything a port can produce. The request is left
// marked as not explicitly initialized.
func (s *Store) SetUpdateExtentToWholeExtent(h vispipe.OutputHandle) bool {
	p := s.port(h, "SetUpdateExtentToWholeExtent")
	if p == nil {
		return false
	}
	changed := p.setPiece(vispipe.WholePieceRequest)
	if p.extentType == vispipe.Extent3D && p.setUpdateExtent(s.WholeExtent(h)) {
		changed = true
	}
	p.setInitialized(false)
	return changed
}

// ExtentTranslator returns the translator of a port, or nil
func (s *Store) ExtentTranslator(h vispipe.OutputHandle) vispipe.ExtentTranslator {
	if p := s.port(h, "GetExtentTranslator"); p != nil && p.hasKey(ExtentTranslatorKey) {
		return p.translator
	}
	return nil
}

// SetExtentTranslator sets the translator of a port. The translator is shared, not owned.
func (s *Store) SetExtentTranslator(h vispipe.OutputHandle, t vispipe.ExtentTranslator) bool {
	p := s.port(h, "SetExtentTranslator")
	if p == nil {
		return false
	}
	if t == nil {
		changed := p.hasKey(ExtentTranslatorKey)
		p.remove(ExtentTranslatorKey)
		return changed
	}
	changed := !p.hasKey(ExtentTranslatorKey) || p.translator != t
	p.translator = t
	p.has |= ExtentTranslatorKey
	return changed
}

// RequestExactExtent returns the exact extent flag of a port, persisting false if unset
func (s *Store) RequestExactExtent(h vispipe.OutputHandle) bool {
	p := s.port(h, "GetRequestExactExtent")
	if p == nil {
		return false
	}
	if !p.hasKey(ExactExtentKey) {
		p.exact = false
		p.has |= ExactExtentKey
	}
	return p.exact
}

// SetRequestExactExtent sets whether a port's output must be cropped to exactly its update extent
func (s *Store) SetRequestExactExtent(h vispipe.OutputHandle, exact bool) bool {
	p := s.port(h, "SetRequestExactExtent")
	if p == nil {
		return false
	}
	changed := !p.hasKey(ExactExtentKey) || p.exact != exact
	p.exact = exact
	p.has |= ExactExtentKey
	return changed
}

// WholeBoundingBox returns the whole bounding box of a port, persisting EmptyBounds if unset
func (s *Store) WholeBoundingBox(h vispipe.OutputHandle) vispipe.Bounds {
	p := s.port(h, "GetWholeBoundingBox")
	if p == nil {
		return vispipe.EmptyBounds
	}
	if !p.hasKey(WholeBoundingBoxKey) {
		p.wholeBoundingBox = vispipe.EmptyBounds
		p.has |= WholeBoundingBoxKey
	}
	return p.wholeBoundingBox
}

// SetWholeBoundingBox sets the whole bounding box of a port
func (s *Store) SetWholeBoundingBox(h vispipe.OutputHandle, b vispipe.Bounds) bool {
	p := s.port(h, "SetWholeBoundingBox")
	if p == nil {
		return false
	}
	changed := !p.hasKey(WholeBoundingBoxKey) || p.wholeBoundingBox != b
	p.wholeBoundingBox = b
	p.has |= WholeBoundingBoxKey
	return changed
}

// TimeSteps returns the time steps a port can produce, or nil
func (s *Store) TimeSteps(h vispipe.OutputHandle) []float64 {
	if p := s.port(h, "GetTimeSteps"); p != nil && p.hasKey(TimeStepsKey) {
		return p.timeSteps
	}
	return nil
}

// SetTimeSteps sets the time steps a port can produce
func (s *Store) SetTimeSteps(h vispipe.OutputHandle, steps []float64) bool {
	p := s.port(h, "SetTimeSteps")
	if p == nil {
		return false
	}
	changed := !p.hasKey(TimeStepsKey) || !equalSteps(p.timeSteps, steps)
	p.timeSteps = append([]float64(nil), steps...)
	p.has |= TimeStepsKey
	return changed
}

// UpdateTimeIndex returns the requested time step index of a port, if one is set
func (s *Store) UpdateTimeIndex(h vispipe.OutputHandle) (int, bool) {
	if p := s.port(h, "GetUpdateTimeIndex"); p != nil && p.hasKey(UpdateTimeIndexKey) {
		return p.timeIndex, true
	}
	return 0, false
}

// SetUpdateTimeIndex requests a time step on a port
func (s *Store) SetUpdateTimeIndex(h vispipe.OutputHandle, idx int) bool {
	p := s.port(h, "SetUpdateTimeIndex")
	if p == nil {
		return false
	}
	changed := !p.hasKey(UpdateTimeIndexKey) || p.timeIndex != idx
	p.timeIndex = idx
	p.has |= UpdateTimeIndexKey
	return changed
}

// CopyDefaults copies the information a consumer inherits from its first input: whole extent,
// piece count hint, translator, bounding box and time steps. Fields absent on from are removed
// from to.
func (s *Store) CopyDefaults(from, to vispipe.OutputHandle) {
	src := s.port(from, "CopyDefaultInformation")
	dst := s.port(to, "CopyDefaultInformation")
	if src == nil || dst == nil {
		return
	}
	for _, k := range []Key{WholeExtentKey, MaximumNumberOfPiecesKey, ExtentTranslatorKey, WholeBoundingBoxKey, TimeStepsKey} {
		if !src.hasKey(k) {
			dst.remove(k)
			continue
		}
		switch k {
		case WholeExtentKey:
			dst.wholeExtent = src.wholeExtent
		case MaximumNumberOfPiecesKey:
			dst.maxPieces = src.maxPieces
		case ExtentTranslatorKey:
			dst.translator = src.translator
		case WholeBoundingBoxKey:
			dst.wholeBoundingBox = src.wholeBoundingBox
		case TimeStepsKey:
			dst.timeSteps = append([]float64(nil), src.timeSteps...)
		}
		dst.has |= k
	}
}

// CopyPieceRequest copies the piece request of from onto to, along with its initialized flag
func (s *Store) CopyPieceRequest(from, to vispipe.OutputHandle) bool {
	src := s.port(from, "CopyPieceRequest")
	dst := s.port(to, "CopyPieceRequest")
	if src == nil || dst == nil {
		return false
	}
	changed := dst.setPiece(s.UpdatePiece(from))
	dst.setInitialized(src.hasKey(UpdateExtentInitializedKey) && src.initialized)
	return changed
}

// CopyUpdateExtent copies the structured request of from onto to, along with its initialized
// flag. The piece request of to is reset to a single piece.
func (s *Store) CopyUpdateExtent(from, to vispipe.OutputHandle) bool {
	src := s.port(from, "CopyUpdateExtent")
	dst := s.port(to, "CopyUpdateExtent")
	if src == nil || dst == nil || !src.hasKey(UpdateExtentKey) {
		return false
	}
	changed := dst.setUpdateExtent(src.updateExtent)
	if dst.setPiece(vispipe.WholePieceRequest) {
		changed = true
	}
	dst.setInitialized(src.hasKey(UpdateExtentInitializedKey) && src.initialized)
	return changed
}

func equalSteps(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
