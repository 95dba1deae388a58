package vispipe

// GhostLevelsArrayName is the name of the uint8 point and cell arrays holding ghost levels
const GhostLevelsArrayName = "vispipeGhostLevels"

// A DataObject is the data produced on an output port. It knows which extent or piece it
// currently holds, and can carry named uint8 point and cell arrays.
type DataObject interface {
	ExtentType() ExtentType            // ExtentType returns the partitioning scheme of this DataObject
	DataExtent() Extent                // DataExtent returns the structured extent held, or EmptyExtent for unstructured data
	SetDataExtent(ext Extent)          // SetDataExtent resizes structured data to hold ext. A no-op for unstructured data.
	DataPiece() PieceRequest           // DataPiece returns the piece currently held
	SetDataPiece(p PieceRequest)       // SetDataPiece records the piece currently held
	CropToExtent(ext Extent) error     // CropToExtent discards everything outside ext
	AddPointArray(name string, values []uint8)
	AddCellArray(name string, values []uint8)
	PointArray(name string) ([]uint8, bool)
	CellArray(name string) ([]uint8, bool)
	Initialize() // Initialize releases all data held
}

// PointCounter is implemented by DataObjects which can report their number of points
type PointCounter interface {
	NumberOfPoints() int
}
