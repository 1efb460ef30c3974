package shutdown

import (
	"context"
)

// HookFunc performs one unit of teardown work when the analyzer service
// receives a shutdown signal.
type HookFunc func(ctx context.Context) error

// Hook pairs a HookFunc with a name used for logging.
type Hook struct {
	// Name identifies the hook for logging purposes.
	Name string

	// Fn is the shutdown function to execute.
	Fn HookFunc
}

// Registry manages shutdown hooks, run in registration order. The
// analyzer service has exactly one long-lived resource to tear down
// (its HTTP listener), so hooks need no priority tiering: a future
// second hook (for example flushing a final metrics snapshot) simply
// registers after the first and runs after it.
type Registry struct {
	hooks []Hook
}

// NewRegistry creates a new hook registry.
func NewRegistry() *Registry {
	return &Registry{
		hooks: make([]Hook, 0),
	}
}

// Register adds a shutdown hook to the registry.
func (r *Registry) Register(name string, fn HookFunc) {
	r.hooks = append(r.hooks, Hook{Name: name, Fn: fn})
}

// RegisterHook adds a Hook struct to the registry.
func (r *Registry) RegisterHook(hook Hook) {
	r.hooks = append(r.hooks, hook)
}

// Hooks returns all registered hooks in registration order.
func (r *Registry) Hooks() []Hook {
	result := make([]Hook, len(r.hooks))
	copy(result, r.hooks)
	return result
}

// Clear removes all registered hooks.
func (r *Registry) Clear() {
	r.hooks = r.hooks[:0]
}

// Count returns the number of registered hooks.
func (r *Registry) Count() int {
	return len(r.hooks)
}
