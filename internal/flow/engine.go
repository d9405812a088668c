// Package flow implements the survey interpreter: a pure state-transition
// core that walks a definition graph in response to user events. It performs
// no I/O; the session store owns persistence and event ordering.
package flow

import (
	"log/slog"

	"github.com/careerloop/surveyflow/internal/logging"
	"github.com/careerloop/surveyflow/pkg/domain"
)

// Engine interprets survey definitions. It is stateless and safe for
// concurrent use; all session state flows through arguments and returns.
type Engine struct {
	logger *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a structured logger for configuration-defect reports
// (cycle aborts, dangling edges). Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a new interpreter.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start creates a session positioned at the definition's entry step.
// If the entry is a bot message chain it is replayed immediately, so the
// returned session always sits at an interactive step or is completed.
func (e *Engine) Start(def *domain.Definition) *domain.Session {
	s := domain.NewSession(def.ID(), "")
	return e.advance(def, s, def.EntryID())
}

// Reset is equivalent to Start: transcript and variables are discarded and
// the session is repositioned at the entry step.
func (e *Engine) Reset(def *domain.Definition) *domain.Session {
	return e.Start(def)
}

// Submit dispatches an event to the matching operation based on its kind.
func (e *Engine) Submit(def *domain.Definition, s *domain.Session, ev domain.Event) (*domain.Session, error) {
	switch ev.Kind {
	case domain.EventOption:
		return e.SubmitOption(def, s, ev.Value)
	case domain.EventText:
		return e.SubmitText(def, s, ev.Value)
	case domain.EventDropdown:
		return e.SubmitDropdown(def, s, ev.Value)
	default:
		return s, domain.ErrKindMismatch
	}
}
