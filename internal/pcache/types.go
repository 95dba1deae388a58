package pcache

import (
	"github.com/go-sif/vispipe"
)

// DataCache is a cache for the DataObjects produced for previous requests
type DataCache interface {
	Clear()
	Add(key string, value vispipe.DataObject)
	Get(key string) (value vispipe.DataObject, err error) // returns the DataObject and marks it most recently used, if present. Returns an error otherwise.
	Remove(key string) bool
	CurrentSize() int
	Resize(frac float64) bool // resize by a fraction RELATIVE TO THE CURRENT NUMBER OF ITEMS IN THE CACHE
}
