package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/careerloop/surveyflow/internal/flow"
	"github.com/careerloop/surveyflow/internal/logging"
	"github.com/careerloop/surveyflow/pkg/domain"
	"github.com/careerloop/surveyflow/pkg/ports"
	"github.com/careerloop/surveyflow/pkg/registry"
)

// CompletionFunc is invoked when a session transitions to a completed state.
// It receives the final variables map; the manager does not persist results
// itself, forwarding them is the host's concern.
type CompletionFunc func(sessionID, surveyID string, variables map[string]string)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu     sync.Mutex
	refs   int
	unlock ports.UnlockFunc // Function to release distributed lock (if any)
}

// Manager orchestrates session access, ensuring a single session's events
// are processed in arrival order. It uses reference counting to garbage
// collect unused locks.
type Manager struct {
	registry *registry.Registry
	engine   *flow.Engine
	store    ports.StateStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker     ports.DistributedLocker // Optional distributed locker
	logger     *slog.Logger
	onComplete CompletionFunc
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithCompletionFunc registers the completion callback.
func WithCompletionFunc(fn CompletionFunc) Option {
	return func(m *Manager) {
		m.onComplete = fn
	}
}

// NewManager creates a session manager over the given registry and store.
func NewManager(reg *registry.Registry, store ports.StateStore, opts ...Option) *Manager {
	m := &Manager{
		registry: reg,
		store:    store,
		locks:    make(map[string]*lockEntry),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.engine = flow.NewEngine(flow.WithLogger(m.logger))
	return m
}

// Open resumes the session if one exists for the same survey, otherwise
// starts a fresh one. Re-opening a widget mid-survey does not lose progress;
// switching to a different survey always performs a full reset, partial
// cross-definition state is never carried over.
func (m *Manager) Open(ctx context.Context, sessionID, surveyID string) (*View, error) {
	def := m.registry.Get(surveyID)

	var view *View
	err := m.withLock(ctx, sessionID, func(ctx context.Context) error {
		sess, err := m.store.Load(ctx, sessionID)
		switch {
		case err == nil && sess.DefinitionID == def.ID():
			// Resume in place.
		case err == nil || err == domain.ErrSessionNotFound:
			sess = m.engine.Start(def)
			if err := m.store.Save(ctx, sessionID, sess); err != nil {
				return fmt.Errorf("failed to initialize session: %w", err)
			}
			m.notifyIfDone(sessionID, nil, sess)
		default:
			return fmt.Errorf("failed to check session existence: %w", err)
		}

		view = viewOf(sessionID, def, sess)
		return nil
	})
	return view, err
}

// HandleEvent dispatches one user event to the interpreter. An event whose
// kind does not match the current step is rejected here, before the
// interpreter is invoked; the returned view reflects the unchanged session
// alongside the typed rejection error.
func (m *Manager) HandleEvent(ctx context.Context, sessionID string, ev domain.Event) (*View, error) {
	if !ev.Valid() {
		return nil, domain.ErrKindMismatch
	}

	var view *View
	var rejection error
	err := m.withLock(ctx, sessionID, func(ctx context.Context) error {
		sess, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		def := m.registry.Get(sess.DefinitionID)

		if reject := checkEventShape(def, sess, ev); reject != nil {
			view = viewOf(sessionID, def, sess)
			rejection = reject
			return nil
		}

		next, submitErr := m.engine.Submit(def, sess, ev)
		if submitErr != nil {
			view = viewOf(sessionID, def, sess)
			rejection = submitErr
			return nil
		}

		if err := m.store.Save(ctx, sessionID, next); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		m.notifyIfDone(sessionID, sess, next)
		view = viewOf(sessionID, def, next)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, rejection
}

// Restart discards transcript and variables and repositions the session at
// the survey's entry step.
func (m *Manager) Restart(ctx context.Context, sessionID string) (*View, error) {
	var view *View
	err := m.withLock(ctx, sessionID, func(ctx context.Context) error {
		sess, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		def := m.registry.Get(sess.DefinitionID)

		fresh := m.engine.Reset(def)
		if err := m.store.Save(ctx, sessionID, fresh); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		m.notifyIfDone(sessionID, nil, fresh)
		view = viewOf(sessionID, def, fresh)
		return nil
	})
	return view, err
}

// Close drops the session. The widget is gone; nothing is persisted.
func (m *Manager) Close(ctx context.Context, sessionID string) error {
	return m.withLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// Current returns the snapshot for an existing session without mutating it.
func (m *Manager) Current(ctx context.Context, sessionID string) (*View, error) {
	var view *View
	err := m.withLock(ctx, sessionID, func(ctx context.Context) error {
		sess, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		view = viewOf(sessionID, m.registry.Get(sess.DefinitionID), sess)
		return nil
	})
	return view, err
}

// Transcript returns the ordered chat history for a session.
func (m *Manager) Transcript(ctx context.Context, sessionID string) ([]domain.Message, error) {
	view, err := m.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return view.Transcript, nil
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Registry returns the definition catalogue backing this manager.
func (m *Manager) Registry() *registry.Registry {
	return m.registry
}

// checkEventShape rejects events whose kind cannot apply to the current
// step, keeping shape validation out of the interpreter per the store's
// contract. Completed sessions pass through: the interpreter answers those
// with its own idempotent no-op.
func checkEventShape(def *domain.Definition, sess *domain.Session, ev domain.Event) error {
	if sess.Done() {
		return nil
	}
	step, ok := def.Step(sess.CurrentStepID)
	if !ok {
		return nil
	}

	expected := map[string]domain.EventKind{
		domain.KindUserOptions:  domain.EventOption,
		domain.KindUserInput:    domain.EventText,
		domain.KindUserDropdown: domain.EventDropdown,
	}
	if want, ok := expected[step.Kind]; ok && want != ev.Kind {
		return domain.ErrKindMismatch
	}
	return nil
}

// notifyIfDone fires the completion callback when a session transitioned
// into a done state. Cycle aborts are additionally logged as configuration
// defects.
func (m *Manager) notifyIfDone(sessionID string, prev, next *domain.Session) {
	if !next.Done() || (prev != nil && prev.Done()) {
		return
	}

	if next.Status == domain.StatusCompletedWithError {
		m.logger.Error("session aborted by interpreter, definition is defective",
			"session_id", sessionID, "survey", next.DefinitionID)
	}

	if m.onComplete != nil {
		vars := make(map[string]string, len(next.Variables))
		for k, v := range next.Variables {
			vars[k] = v
		}
		m.onComplete(sessionID, next.DefinitionID, vars)
	}
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after
// unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it
// reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return // Should not happen if paired correctly
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// withLock executes a function while holding the lock for the session.
func (m *Manager) withLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	// Distributed Locking
	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, 30*time.Second)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
