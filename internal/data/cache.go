package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"solar-savings/internal/model"
	"solar-savings/internal/savings"
)

// Snapshot holds everything one load pass produced.
type Snapshot struct {
	Samples []model.EnergySample
	Prices  []model.PriceInterval
	Report  *savings.ParseReport
	Loaded  time.Time
}

// LoadCache memoizes file-load results for repeated presentation-layer
// invocations. Keys are derived from each file's path, mtime and size, so a
// touched or rewritten file misses the cache naturally and no TTL is needed.
// The core pipeline never sees the cache; callers consult it before loading.
type LoadCache struct {
	mu    sync.RWMutex
	store map[string]*Snapshot
}

func NewLoadCache() *LoadCache {
	return &LoadCache{store: make(map[string]*Snapshot)}
}

// Key builds the cache key for a set of input files. Paths are sorted first
// so the key does not depend on discovery order.
func (c *LoadCache) Key(paths []string) (string, error) {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	h := sha256.New()
	for _, p := range sorted {
		info, err := os.Stat(p)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(h, "%s|%d|%d\n", p, info.ModTime().UnixNano(), info.Size())
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (c *LoadCache) Get(key string) (*Snapshot, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap, ok := c.store[key]
	return snap, ok
}

func (c *LoadCache) Set(key string, snap *Snapshot) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = snap
}

func (c *LoadCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*Snapshot)
}
