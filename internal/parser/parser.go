package parser

import (
	"chronomap/pkg/models"
)

// Strategy turns raw document text into candidate events. Implementations
// must be safe for concurrent use; a parse call either completes or
// returns partial results, it never fails as a whole.
type Strategy interface {
	Name() string
	Description() string
	Parse(text string) []models.ParsedEvent
}

// Info describes a registered strategy for API listings.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Registry holds the available parser strategies. It is built once at
// startup and passed explicitly to whoever needs it; there is no
// package-level registry.
type Registry struct {
	order      []string
	strategies map[string]Strategy
}

func NewRegistry(strategies ...Strategy) *Registry {
	r := &Registry{strategies: make(map[string]Strategy, len(strategies))}
	for _, s := range strategies {
		if _, dup := r.strategies[s.Name()]; !dup {
			r.order = append(r.order, s.Name())
		}
		r.strategies[s.Name()] = s
	}
	return r
}

// DefaultRegistry returns the two built-in strategies.
func DefaultRegistry() *Registry {
	return NewRegistry(NewHeuristic(), NewStructured())
}

func (r *Registry) Get(name string) (Strategy, bool) {
	s, ok := r.strategies[name]
	return s, ok
}

func (r *Registry) Valid(name string) bool {
	_, ok := r.strategies[name]
	return ok
}

// Available lists strategies in registration order.
func (r *Registry) Available() []Info {
	out := make([]Info, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Info{Name: name, Description: r.strategies[name].Description()})
	}
	return out
}
