// Package usecase contains the application use cases that orchestrate the
// domain layer: training runs, the version lifecycle, scoring, and the
// contract analysis and reporting reads.
package usecase

import (
	"sync"

	"github.com/FluentFlier/aegis/internal/domain/model"
)

// ActiveCache holds the process-local copy of the active weight version so
// the scoring hot path does not hit the registry on every request. Writers
// swap it only after the registry transaction has committed; a miss falls
// through to the repository.
type ActiveCache struct {
	mu sync.RWMutex
	v  *model.WeightVersion
}

func NewActiveCache() *ActiveCache {
	return &ActiveCache{}
}

// Get returns the cached active version, if any.
func (c *ActiveCache) Get() (model.WeightVersion, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.v == nil {
		return model.WeightVersion{}, false
	}
	return *c.v, true
}

// Set replaces the cached active version.
func (c *ActiveCache) Set(v model.WeightVersion) {
	v = v.ClearEvents()
	c.mu.Lock()
	c.v = &v
	c.mu.Unlock()
}

// Clear drops the cached version, forcing the next read through to the
// registry.
func (c *ActiveCache) Clear() {
	c.mu.Lock()
	c.v = nil
	c.mu.Unlock()
}
