package processor

import (
	"fmt"

	"chronomap/internal/parser"
	"chronomap/pkg/models"
)

// Service dispatches parse requests to a parser strategy. The registry is
// injected at construction; there is no process-wide singleton and
// nothing to reset between tests.
//
// Parsing is synchronous and bounded by the request size ceiling. A
// job-based implementation for large documents would satisfy the same
// interface.
type Service struct {
	registry *parser.Registry
}

func New(registry *parser.Registry) *Service {
	return &Service{registry: registry}
}

// ParseSync runs the named strategy over text and returns its candidate
// events. Unknown strategies are an error; callers validate the strategy
// name before accepting a request.
func (s *Service) ParseSync(text, strategy string) ([]models.ParsedEvent, error) {
	p, ok := s.registry.Get(strategy)
	if !ok {
		return nil, fmt.Errorf("unknown parser strategy %q", strategy)
	}
	return p.Parse(text), nil
}

// Valid reports whether a strategy name is registered.
func (s *Service) Valid(strategy string) bool {
	return s.registry.Valid(strategy)
}

// Strategies lists the registered strategies.
func (s *Service) Strategies() []parser.Info {
	return s.registry.Available()
}
