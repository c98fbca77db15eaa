package pass

import "sync"

// globalRegistry is the single global registry for built-in passes.
var globalRegistry = &Registry{
	passes: make(map[string]Pass),
}

// Registry stores registered passes for discovery, preserving registration
// order (the catalog order is the default pipeline order).
type Registry struct {
	mu     sync.RWMutex
	passes map[string]Pass
	order  []string
}

// Register adds a pass to the global registry.
// Call this from init() functions in catalog packages. Re-registering a
// name replaces the pass but keeps its original position.
func Register(p Pass) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	if _, exists := globalRegistry.passes[p.Name]; !exists {
		globalRegistry.order = append(globalRegistry.order, p.Name)
	}
	globalRegistry.passes[p.Name] = p
}

// All returns every registered pass in registration order.
func All() []Pass {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	out := make([]Pass, 0, len(globalRegistry.order))
	for _, name := range globalRegistry.order {
		out = append(out, globalRegistry.passes[name])
	}
	return out
}

// Get returns a registered pass by name.
func Get(name string) (Pass, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	p, ok := globalRegistry.passes[name]
	return p, ok
}

// Names returns the registered pass names in registration order.
func Names() []string {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	out := make([]string, len(globalRegistry.order))
	copy(out, globalRegistry.order)
	return out
}

// Count returns the number of registered passes.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.passes)
}

// Clear removes all registered passes. Used for testing.
func Clear() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.passes = make(map[string]Pass)
	globalRegistry.order = nil
}
