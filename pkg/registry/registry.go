// Package registry provides the read-only catalogue of survey definitions.
// It is populated once at startup and never mutated afterwards, so lookups
// are safe from any number of sessions without synchronization.
package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/careerloop/surveyflow/internal/flow"
	"github.com/careerloop/surveyflow/internal/logging"
	"github.com/careerloop/surveyflow/pkg/domain"
)

// Registry maps survey IDs to definitions, with one designated default used
// when an unknown ID is requested.
type Registry struct {
	defs      map[string]*domain.Definition
	defaultID string
	logger    *slog.Logger
}

// Option configures the Registry.
type Option func(*Registry)

// WithLogger sets the logger used for load-time validation warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New builds a registry from the given definitions. Each definition is
// validated on the way in: hard defects (empty option lists, bot chain
// cycles, unknown kinds) fail construction, while degradable ones (dangling
// edges, unreachable steps) are logged as warnings since the interpreter
// handles them at runtime.
func New(defaultID string, defs []*domain.Definition, opts ...Option) (*Registry, error) {
	r := &Registry{
		defs:   make(map[string]*domain.Definition, len(defs)),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, def := range defs {
		if _, exists := r.defs[def.ID()]; exists {
			return nil, fmt.Errorf("duplicate survey definition %q", def.ID())
		}

		issues := flow.Validate(def)
		if hard := flow.Errors(issues); len(hard) > 0 {
			return nil, fmt.Errorf("survey definition %q is invalid: %s", def.ID(), hard[0].Message)
		}
		for _, issue := range issues {
			r.logger.Warn("survey definition issue",
				"survey", def.ID(), "step", issue.StepID, "issue", issue.Message)
		}

		r.defs[def.ID()] = def
	}

	if len(r.defs) == 0 {
		return nil, fmt.Errorf("registry needs at least one survey definition")
	}
	if _, ok := r.defs[defaultID]; !ok {
		return nil, fmt.Errorf("default survey %q is not among the registered definitions", defaultID)
	}
	r.defaultID = defaultID

	return r, nil
}

// Get returns the definition for the given ID, falling back to the default
// definition when the ID is unknown. Never fails: an unknown survey ID is a
// recoverable host mistake, not a hard error.
func (r *Registry) Get(id string) *domain.Definition {
	if def, ok := r.defs[id]; ok {
		return def
	}
	return r.defs[r.defaultID]
}

// Lookup returns the definition for the given ID without the default
// fallback.
func (r *Registry) Lookup(id string) (*domain.Definition, bool) {
	def, ok := r.defs[id]
	return def, ok
}

// DefaultID returns the designated default survey ID.
func (r *Registry) DefaultID() string { return r.defaultID }

// IDs returns the registered survey IDs in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.defs))
	for id := range r.defs {
		ids = append(ids, id)
	}
	sort.Strings(ids) // Deterministic order
	return ids
}
