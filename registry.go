package anonym

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Factory builds a transformer bound to target from options encoded with codec.
// options may be empty, in which case the transformer's defaults apply.
type Factory func(target Target, options []byte, codec Codec) (Transformer, error)

type registration struct {
	description string
	factory     Factory
}

// Registry maps transformer IDs to factories.
// Registries are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registration)}
}

// BuiltinRegistry returns a registry holding the builtin transformers.
func BuiltinRegistry() *Registry {
	r := NewRegistry()
	r.Register(string(TransformerRedacted), NewRedacted(Target{}, nil).Description(), newRedactedFactory)
	r.Register(string(TransformerMasked), (&Masked{}).Description(), newMaskedFactory)
	r.Register(string(TransformerHashed), (&Hashed{}).Description(), newHashedFactory)
	r.Register(string(TransformerTransient), NewTransient(Target{}).Description(), newTransientFactory)
	return r
}

// Register adds or replaces the factory for id.
// Returns the registry for chaining.
func (r *Registry) Register(id, description string, f Factory) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = registration{description: description, factory: f}
	return r
}

// Lookup returns the factory registered for id.
func (r *Registry) Lookup(id string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e.factory, ok
}

// Description returns the description registered for id.
func (r *Registry) Description(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[id].description
}

// IDs returns the registered IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// New builds the transformer registered for id.
func (r *Registry) New(ctx context.Context, id string, target Target, options []byte, codec Codec) (Transformer, error) {
	f, ok := r.Lookup(id)
	if !ok {
		return nil, newConfigError(ErrUnknownTransformer, id, target.String(), nil)
	}
	if len(options) > 0 && codec == nil {
		return nil, newConfigError(ErrInvalidOption, id, target.String(), errors.New("options given without a codec"))
	}

	t, err := f(target, options, codec)
	if err != nil {
		return nil, newConfigError(ErrInvalidOption, id, target.String(), err)
	}
	if t.ID() != id {
		return nil, newConfigError(ErrInvalidOption, id, target.String(),
			fmt.Errorf("factory returned transformer %q", t.ID()))
	}

	emitTransformerCreated(ctx, t)
	return t, nil
}

var (
	defaultRegistry   *Registry
	defaultRegistryMu sync.RWMutex
)

// Default returns the process-wide registry, creating it with the builtin
// transformers on first use.
func Default() *Registry {
	// Fast path: read-lock check
	defaultRegistryMu.RLock()
	if r := defaultRegistry; r != nil {
		defaultRegistryMu.RUnlock()
		return r
	}
	defaultRegistryMu.RUnlock()

	defaultRegistryMu.Lock()
	defer defaultRegistryMu.Unlock()

	// Double-check pattern
	if defaultRegistry == nil {
		defaultRegistry = BuiltinRegistry()
	}
	return defaultRegistry
}

// Reset discards the process-wide registry and any custom registrations.
// This is primarily useful for test isolation.
func Reset() {
	defaultRegistryMu.Lock()
	defer defaultRegistryMu.Unlock()
	defaultRegistry = nil
}
