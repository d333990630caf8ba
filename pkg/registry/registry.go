package registry

import (
	"slices"
	"sync"

	"github.com/aretw0/automata/pkg/domain"
)

// Registry holds the machines of one session, keyed by name.
// Iteration follows registration order. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	machines map[string]*domain.Machine
	order    []string
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		machines: make(map[string]*domain.Machine),
	}
}

// Register adds a machine under its name.
// If a machine with the same name exists, it is replaced in place.
func (r *Registry) Register(m *domain.Machine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.machines[m.Name]; !ok {
		r.order = append(r.order, m.Name)
	}
	r.machines[m.Name] = m
}

// Get looks up a machine by name.
func (r *Registry) Get(name string) (*domain.Machine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.machines[name]
	if !ok {
		return nil, domain.ErrMachineNotFound
	}
	return m, nil
}

// Remove deletes a machine. Removing an unknown name is a no-op.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.machines[name]; !ok {
		return
	}
	delete(r.machines, name)
	r.order = slices.DeleteFunc(r.order, func(n string) bool { return n == name })
}

// List returns the machines in registration order.
func (r *Registry) List() []*domain.Machine {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Machine, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.machines[name])
	}
	return out
}

// Len returns the number of registered machines.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
