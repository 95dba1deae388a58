package vispipe

// ExtentType describes how a port's data is partitioned
type ExtentType int

const (
	// Pieces indicates unstructured data, partitioned into numbered pieces
	Pieces ExtentType = iota
	// Extent3D indicates structured data, partitioned by index boxes
	Extent3D
)

func (t ExtentType) String() string {
	switch t {
	case Pieces:
		return "PIECES"
	case Extent3D:
		return "EXTENT_3D"
	default:
		return "UNKNOWN"
	}
}
