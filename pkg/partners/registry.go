package partners

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the configured courier adapters keyed by courier code.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]Adapter),
	}
}

func (r *Registry) Register(adapter Adapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := adapter.Code()
	if _, exists := r.adapters[code]; exists {
		return fmt.Errorf("adapter already registered for courier %s", code)
	}

	r.adapters[code] = adapter
	return nil
}

func (r *Registry) Get(code string) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, exists := r.adapters[code]
	return adapter, exists
}

func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]string, 0, len(r.adapters))
	for code := range r.adapters {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
