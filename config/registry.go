package config

import (
	"fmt"
	"sort"
	"sync"
)

// Setter applies a string-encoded value to a live parameter
type Setter func(value string) error

// Adjuster nudges a numeric parameter by a signed delta
type Adjuster func(delta float64) error

type entry struct {
	set    Setter
	adjust Adjuster
}

// Registry maps dotted parameter keys to typed setter closures.
// Systems register closures for the keys they own at Init; runtime
// mutation from any source (keyboard, bridge) flows through the same
// validated Apply/Adjust paths. A rejected value returns an error and
// leaves the previous value in force.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewRegistry creates an empty parameter registry
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]entry),
	}
}

// Register binds a setter to a key, overwriting any previous binding
func (r *Registry) Register(key string, set Setter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = entry{set: set}
}

// RegisterAdjustable binds both an absolute setter and a delta adjuster
func (r *Registry) RegisterAdjustable(key string, set Setter, adjust Adjuster) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = entry{set: set, adjust: adjust}
}

// Apply routes a string value to the key's setter
func (r *Registry) Apply(key, value string) error {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown parameter %q", key)
	}
	return e.set(value)
}

// Adjust nudges a key by delta; keys registered without an adjuster
// reject
func (r *Registry) Adjust(key string, delta float64) error {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown parameter %q", key)
	}
	if e.adjust == nil {
		return fmt.Errorf("parameter %q is not adjustable", key)
	}
	return e.adjust(delta)
}

// Has reports whether a key is registered
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}

// Keys returns all registered keys in sorted order
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
