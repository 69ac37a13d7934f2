package directory

import (
	"context"
	"fmt"
)

// Candidate is the remote directory's representation of an official.
// Office is empty when the provider covers a single office title.
type Candidate struct {
	NativeID string
	Name     string
	Party    string
	Region   string
	Office   string
	PhotoURL string
}

// Provider captures a single open-data directory integration
// (federal chamber, senate, state assemblies, etc.).
type Provider interface {
	Name() string
	SearchByName(ctx context.Context, name string) ([]Candidate, error)
}

// Registry keeps a mapping from provider names to their implementations.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: map[string]Provider{}}
}

// Register adds or replaces a provider implementation.
func (r *Registry) Register(provider Provider) {
	if r.providers == nil {
		r.providers = map[string]Provider{}
	}
	r.providers[provider.Name()] = provider
}

// Resolve returns a provider by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Provider, error) {
	if provider, ok := r.providers[name]; ok {
		return provider, nil
	}
	return nil, fmt.Errorf("directory provider %s is not registered", name)
}
