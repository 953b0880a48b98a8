package hal

import (
	"fmt"
	"sort"
	"sync"

	"github.com/snagkit/usbsnap/pkg"
)

// Factory opens a new Backend around a fresh native enumeration context.
type Factory func() (Backend, error)

var (
	registryMu  sync.RWMutex
	backends    = make(map[string]Factory)
	defaultName string
)

// Register makes a backend factory available under the given name.
// Registering a name again replaces the previous factory.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = f
}

// SetDefault selects the backend opened by OpenDefault. The name must
// already be registered.
func SetDefault(name string) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := backends[name]; !ok {
		return fmt.Errorf("%w: %q", pkg.ErrUnknownBackend, name)
	}
	defaultName = name
	return nil
}

// Open opens a new backend instance by name.
func Open(name string) (Backend, error) {
	registryMu.RLock()
	f, ok := backends[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", pkg.ErrUnknownBackend, name)
	}
	return f()
}

// OpenDefault opens a new instance of the default backend. If no
// default was claimed and exactly one backend is registered, that
// backend is used.
func OpenDefault() (Backend, error) {
	registryMu.RLock()
	name := defaultName
	if name == "" && len(backends) == 1 {
		for n := range backends {
			name = n
		}
	}
	f, ok := backends[name]
	registryMu.RUnlock()
	if !ok {
		return nil, pkg.ErrNoBackend
	}
	return f()
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(backends))
	for n := range backends {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
