package surveyflow

import (
	"context"
	"log/slog"

	"github.com/careerloop/surveyflow/internal/config"
	"github.com/careerloop/surveyflow/internal/logging"
	"github.com/careerloop/surveyflow/internal/surveys"
	"github.com/careerloop/surveyflow/pkg/adapters/memory"
	"github.com/careerloop/surveyflow/pkg/domain"
	"github.com/careerloop/surveyflow/pkg/ports"
	"github.com/careerloop/surveyflow/pkg/registry"
	"github.com/careerloop/surveyflow/pkg/session"
)

// Version is the library version, used by the CLI and the HTTP info surface.
var Version = "0.4.0"

// Engine is the high-level entry point for the surveyflow library.
// It wraps the definition registry and the session manager and provides a
// simplified API for hosts embedding the survey widget backend.
type Engine struct {
	registry *registry.Registry
	manager  *session.Manager

	cataloguePath string
	store         ports.StateStore
	locker        ports.DistributedLocker
	onComplete    session.CompletionFunc
	logger        *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithRegistry injects a pre-built definition registry, bypassing both the
// catalogue file and the shipped surveys.
func WithRegistry(reg *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = reg
	}
}

// WithCatalogue loads the definition registry from a YAML catalogue file.
func WithCatalogue(path string) Option {
	return func(e *Engine) {
		e.cataloguePath = path
	}
}

// WithStore injects a custom session store (default: in-memory).
func WithStore(store ports.StateStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker enables distributed locking for multi-replica deployments.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithCompletionFunc registers the callback that receives the final
// variables map whenever a session completes.
func WithCompletionFunc(fn session.CompletionFunc) Option {
	return func(e *Engine) {
		e.onComplete = fn
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New initializes a new surveyflow Engine.
// By default it registers the shipped survey graphs and keeps sessions in
// memory; WithCatalogue, WithRegistry and WithStore override those defaults.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		logger: logging.NewNop(),
	}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.registry == nil {
		if eng.cataloguePath != "" {
			cat, err := config.Load(eng.cataloguePath)
			if err != nil {
				return nil, err
			}
			reg, err := cat.Registry(registry.WithLogger(eng.logger))
			if err != nil {
				return nil, err
			}
			eng.registry = reg
		} else {
			reg, err := registry.New(surveys.DefaultID, surveys.All(),
				registry.WithLogger(eng.logger))
			if err != nil {
				return nil, err
			}
			eng.registry = reg
		}
	}

	if eng.store == nil {
		eng.store = memory.NewStore()
	}

	managerOpts := []session.Option{
		session.WithLogger(eng.logger),
	}
	if eng.locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(eng.locker))
	}
	if eng.onComplete != nil {
		managerOpts = append(managerOpts, session.WithCompletionFunc(eng.onComplete))
	}

	eng.manager = session.NewManager(eng.registry, eng.store, managerOpts...)

	return eng, nil
}

// Open creates or resumes the session for the given widget instance.
func (e *Engine) Open(ctx context.Context, sessionID, surveyID string) (*session.View, error) {
	return e.manager.Open(ctx, sessionID, surveyID)
}

// HandleEvent dispatches one user event to the session.
func (e *Engine) HandleEvent(ctx context.Context, sessionID string, ev domain.Event) (*session.View, error) {
	return e.manager.HandleEvent(ctx, sessionID, ev)
}

// Restart discards the session's progress and starts over.
func (e *Engine) Restart(ctx context.Context, sessionID string) (*session.View, error) {
	return e.manager.Restart(ctx, sessionID)
}

// Close drops the session.
func (e *Engine) Close(ctx context.Context, sessionID string) error {
	return e.manager.Close(ctx, sessionID)
}

// Current returns the session snapshot without mutating it.
func (e *Engine) Current(ctx context.Context, sessionID string) (*session.View, error) {
	return e.manager.Current(ctx, sessionID)
}

// Transcript returns the ordered chat history for a session.
func (e *Engine) Transcript(ctx context.Context, sessionID string) ([]domain.Message, error) {
	return e.manager.Transcript(ctx, sessionID)
}

// Variables returns the captured answers of a completed session. For an
// active session it returns nil; answers are only exposed once the session
// is done.
func (e *Engine) Variables(ctx context.Context, sessionID string) (map[string]string, error) {
	view, err := e.manager.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return view.Variables, nil
}

// Manager returns the underlying session manager, for adapters that need
// the full surface (e.g. the HTTP server).
func (e *Engine) Manager() *session.Manager {
	return e.manager
}

// Registry returns the definition catalogue.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}
