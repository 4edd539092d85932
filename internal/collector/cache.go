package collector

import (
	"sync"

	"github.com/prabalesh/sysmon/internal/models"
)

// IdentityCache holds the system identity after the first successful read.
// A failed read leaves it empty so the next call retries.
type IdentityCache struct {
	identity models.SystemIdentity
	valid    bool

	mutex sync.RWMutex
}

func (c *IdentityCache) Get() (models.SystemIdentity, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.identity, c.valid
}

func (c *IdentityCache) Set(id models.SystemIdentity) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.identity = id
	c.valid = true
}
