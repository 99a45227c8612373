// Package intercept implements the bridge's global patches: decorators over
// the host environment's network-fetch and image-display primitives, and the
// file-input accept widener with its mutation observer.
//
// Each patch installs at most once per registry lifetime. Re-wrapping an
// already-wrapped primitive would compound redirections and break the
// original call chain, so installers return false instead of wrapping twice.
package intercept

import (
	"sort"
	"sync"
)

// Patch names tracked by the registry.
const (
	PatchFetch  = "fetch"
	PatchImages = "images"
	PatchInputs = "inputs"
)

// Registry tracks which patches are installed. Thread-safe.
type Registry struct {
	mu        sync.Mutex
	installed map[string]bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{installed: make(map[string]bool)}
}

// defaultRegistry backs installs when callers pass a nil registry, so a
// patch installed with no explicit registry is still process-wide once.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

// Install marks name installed and reports whether this call was the first.
// Callers must only apply a patch when Install returns true.
func (r *Registry) Install(name string) bool {
	if r == nil {
		r = defaultRegistry
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.installed[name] {
		return false
	}
	r.installed[name] = true
	return true
}

// Installed reports whether name is installed.
func (r *Registry) Installed(name string) bool {
	if r == nil {
		r = defaultRegistry
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.installed[name]
}

// Names returns the installed patch names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		r = defaultRegistry
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.installed))
	for n := range r.installed {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
