package driver

import (
	"sync"

	"turbalance/internal/diag"
)

// memoCache дедуплицирует файлы с одинаковым содержимым в рамках одного запуска.
type memoCache struct {
	mu    sync.RWMutex
	byKey map[Digest][]diag.Diagnostic
}

func newMemoCache(capHint int) *memoCache {
	return &memoCache{byKey: make(map[Digest][]diag.Diagnostic, capHint)}
}

func (c *memoCache) get(key Digest) ([]diag.Diagnostic, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	diags, ok := c.byKey[key]
	c.mu.RUnlock()
	return diags, ok
}

func (c *memoCache) put(key Digest, diags []diag.Diagnostic) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.byKey[key] = diags
	c.mu.Unlock()
}
