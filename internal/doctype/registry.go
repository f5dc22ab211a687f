package doctype

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrNotFound is returned when a document type name is not registered
	ErrNotFound = errors.New("document type not found")

	// ErrDuplicateDefinition is returned when a name is re-registered with an
	// incompatible field set
	ErrDuplicateDefinition = errors.New("conflicting document type registration")

	// ErrRegistryFrozen is returned when registration is attempted after the
	// boot window has closed
	ErrRegistryFrozen = errors.New("registry is frozen")
)

// Registry holds every registered document-type definition, keyed by name.
// It is populated single-threaded during process initialization and then
// frozen; after Freeze all access is read-only and safe without contention.
type Registry struct {
	mu     sync.RWMutex
	types  map[string]*DocType
	frozen bool
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*DocType)}
}

// Register adds a definition to the registry. Registering the identical
// definition twice succeeds idempotently, which keeps module re-imports safe;
// registering the same name with a different field signature fails with
// ErrDuplicateDefinition.
func (r *Registry) Register(dt *DocType) error {
	if err := dt.Validate(); err != nil {
		return fmt.Errorf("invalid document type: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("%w: cannot register %s", ErrRegistryFrozen, dt.Name)
	}

	if existing, ok := r.types[dt.Name]; ok {
		if existing.Fingerprint() == dt.Fingerprint() {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrDuplicateDefinition, dt.Name)
	}

	r.types[dt.Name] = dt
	return nil
}

// Lookup returns the definition for the given name
func (r *Registry) Lookup(name string) (*DocType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dt, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return dt, nil
}

// Exists reports whether the name is registered
func (r *Registry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[name]
	return ok
}

// Names returns the registered names, sorted, as a fresh slice. Callers may
// iterate and restart freely; the route generator walks this at startup.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered document types
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// Freeze closes the registration window. Any later Register call fails;
// this marks the transition from boot to serving.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Frozen reports whether the registration window has closed
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}
