package pcache

import (
	"container/list"
	"fmt"
	"log"
	"sync"

	"github.com/docker/docker/pkg/locker"
	"github.com/go-sif/vispipe"
)

// lru is an LRU cache for DataObjects
type lru struct {
	config         *LRUConfig
	plocks         *locker.Locker
	pmapLock       sync.Mutex
	pmap           map[string]*list.Element
	recentListLock sync.Mutex
	recentList     *list.List // back is oldest, front is newest
	maxSize        int
}

type cachedData struct {
	key   string
	value vispipe.DataObject
}

// LRUConfig configures an LRU DataCache
type LRUConfig struct {
	InitialSize int
	OnEvict     func(key string, value vispipe.DataObject) // called outside of any cache lock
}

// NewLRU produces an LRU DataCache
func NewLRU(config *LRUConfig) DataCache {
	if config.InitialSize < 1 {
		log.Panicf("LRUConfig.InitialSize %d must be at least 1", config.InitialSize)
	}
	return &lru{
		config:     config,
		plocks:     locker.New(),
		pmap:       make(map[string]*list.Element),
		recentList: list.New(),
		maxSize:    config.InitialSize,
	}
}

func (c *lru) Clear() {
	c.pmapLock.Lock()
	defer c.pmapLock.Unlock()
	c.recentListLock.Lock()
	defer c.recentListLock.Unlock()
	c.pmap = make(map[string]*list.Element)
	c.recentList.Init()
}

func (c *lru) Add(key string, value vispipe.DataObject) {
	c.plocks.Lock(key)
	defer c.plocks.Unlock(key)

	c.pmapLock.Lock()
	c.recentListLock.Lock()
	if e, ok := c.pmap[key]; ok {
		c.recentList.Remove(e)
	}
	c.pmap[key] = c.recentList.PushFront(&cachedData{key: key, value: value})
	evicted := c.trim()
	c.recentListLock.Unlock()
	c.pmapLock.Unlock()
	c.notify(evicted)
}

// Get returns the DataObject cached under key, if present
func (c *lru) Get(key string) (value vispipe.DataObject, err error) {
	c.plocks.Lock(key)
	defer c.plocks.Unlock(key)
	c.pmapLock.Lock()
	defer c.pmapLock.Unlock()
	e, ok := c.pmap[key]
	if !ok {
		return nil, fmt.Errorf("DataObject %s is not in the cache", key)
	}
	c.recentListLock.Lock()
	c.recentList.MoveToFront(e)
	c.recentListLock.Unlock()
	return e.Value.(*cachedData).value, nil
}

func (c *lru) Remove(key string) bool {
	c.plocks.Lock(key)
	defer c.plocks.Unlock(key)
	c.pmapLock.Lock()
	defer c.pmapLock.Unlock()
	e, ok := c.pmap[key]
	if !ok {
		return false
	}
	delete(c.pmap, key)
	c.recentListLock.Lock()
	c.recentList.Remove(e)
	c.recentListLock.Unlock()
	return true
}

func (c *lru) CurrentSize() int {
	c.recentListLock.Lock()
	defer c.recentListLock.Unlock()
	return c.recentList.Len()
}

func (c *lru) Resize(frac float64) bool {
	if frac <= 0 {
		return false
	}
	c.pmapLock.Lock()
	c.recentListLock.Lock()
	newSize := int(float64(c.recentList.Len()) * frac)
	if newSize < 1 {
		newSize = 1
	}
	c.maxSize = newSize
	evicted := c.trim()
	c.recentListLock.Unlock()
	c.pmapLock.Unlock()
	c.notify(evicted)
	return true
}

// trim evicts the oldest entries until the cache fits. Both locks must be held.
func (c *lru) trim() []*cachedData {
	var evicted []*cachedData
	for c.recentList.Len() > c.maxSize {
		oldest := c.recentList.Back()
		c.recentList.Remove(oldest)
		cd := oldest.Value.(*cachedData)
		delete(c.pmap, cd.key)
		evicted = append(evicted, cd)
	}
	return evicted
}

func (c *lru) notify(evicted []*cachedData) {
	if c.config.OnEvict == nil {
		return
	}
	for _, cd := range evicted {
		c.config.OnEvict(cd.key, cd.value)
	}
}
