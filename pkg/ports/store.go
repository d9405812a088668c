package ports

import (
	"context"

	"github.com/careerloop/surveyflow/pkg/domain"
)

// StateStore defines the interface for keeping session state between events.
// The default is a plain in-memory map; a server deployment can swap in the
// Redis adapter without touching the core.
type StateStore interface {
	// Save persists the session for a given session ID.
	Save(ctx context.Context, sessionID string, s *domain.Session) error

	// Load retrieves the session for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
