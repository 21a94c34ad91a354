package providers

import (
	"sync"
)

// Registry manages all available providers. The default provider backs
// the fallback paths: unknown provider names resolve to it and failed
// embedding calls retry against it.
type Registry struct {
	providers map[string]Provider
	defaultID string
	mu        sync.RWMutex
}

// NewRegistry creates a new provider registry.
func NewRegistry(defaultID string) *Registry {
	return &Registry{
		providers: make(map[string]Provider),
		defaultID: defaultID,
	}
}

// Register adds a provider to the registry.
func (r *Registry) Register(id string, provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[id] = provider
}

// Get retrieves a provider by ID. Returns nil when not registered.
func (r *Registry) Get(id string) Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.providers[id]
}

// Default returns the default provider, or nil when it is not registered.
func (r *Registry) Default() Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.providers[r.defaultID]
}

// DefaultID returns the configured default provider ID.
func (r *Registry) DefaultID() string {
	return r.defaultID
}

// Has checks if a provider is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.providers[id]
	return exists
}

// List returns all registered provider IDs.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	return ids
}

// GetAll returns a copy of the registered providers keyed by ID.
func (r *Registry) GetAll() map[string]Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make(map[string]Provider, len(r.providers))
	for k, v := range r.providers {
		providers[k] = v
	}
	return providers
}
