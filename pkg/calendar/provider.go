package calendar

import (
	"context"
	"fmt"
	"time"
)

// Provider retrieves events for a time window from a calendar source.
type Provider interface {
	GetEvents(ctx context.Context, from time.Time, to time.Time) ([]Event, error)
}

// Factory constructs a Provider. Factories are registered under the name
// used by the "input" configuration option.
type Factory func(ctx context.Context) (Provider, error)

// Registry maps input names to provider factories. It replaces dynamic
// lookup of sources by string: every source is registered explicitly at
// startup and unknown names fail fast.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
}

func (r *Registry) New(ctx context.Context, name string) (Provider, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown calendar provider %q", name)
	}
	return factory(ctx)
}
