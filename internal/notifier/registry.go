package notifier

import (
	"fmt"
	"sync"

	"github.com/flipdeck/flipdeck/internal/alert"
)

// Registry holds the configured delivery channels. Delivery errors are
// collected per channel rather than aborting the fan-out, so one dead
// webhook never silences the rest.
type Registry struct {
	mu        sync.RWMutex
	notifiers map[string]Notifier
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{notifiers: make(map[string]Notifier)}
}

// Register adds a channel. Names must be unique.
func (r *Registry) Register(n Notifier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := n.Name()
	if _, exists := r.notifiers[name]; exists {
		return fmt.Errorf("notifier %s already registered", name)
	}
	r.notifiers[name] = n
	return nil
}

// Get returns the channel registered under name.
func (r *Registry) Get(name string) (Notifier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, exists := r.notifiers[name]
	if !exists {
		return nil, fmt.Errorf("notifier %s not found", name)
	}
	return n, nil
}

// GetAll returns every registered channel.
func (r *Registry) GetAll() []Notifier {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Notifier, 0, len(r.notifiers))
	for _, n := range r.notifiers {
		out = append(out, n)
	}
	return out
}

// NotifyAll fans one alert out to every channel and returns the
// delivery errors keyed by channel name.
func (r *Registry) NotifyAll(a alert.Alert) map[string]error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	errs := make(map[string]error)
	for name, n := range r.notifiers {
		if err := n.Send(a); err != nil {
			errs[name] = err
		}
	}
	return errs
}

// NotifyAllBatch fans a group of alerts out in one call per channel.
func (r *Registry) NotifyAllBatch(alerts []alert.Alert) map[string]error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	errs := make(map[string]error)
	for name, n := range r.notifiers {
		if err := n.SendBatch(alerts); err != nil {
			errs[name] = err
		}
	}
	return errs
}
