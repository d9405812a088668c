package domain

// Status defines the lifecycle of a session.
type Status string

const (
	// StatusActive means the session is waiting at an interactive step.
	StatusActive Status = "active"
	// StatusCompleted means a terminal step (or a dangling edge) was reached.
	StatusCompleted Status = "completed"
	// StatusCompletedWithError means the interpreter aborted the session,
	// e.g. after detecting a cycle in a bot message chain. Distinguishable
	// from a clean completion so hosts can flag the definition as defective.
	StatusCompletedWithError Status = "completed_with_error"
)

// Actor identifies the author of a transcript message.
type Actor string

const (
	ActorBot  Actor = "bot"
	ActorUser Actor = "user"
)

// Message is one entry of a session transcript. The transcript is append-only;
// Seq is the zero-based position of the message within it.
type Message struct {
	Actor   Actor  `json:"actor"`
	Content string `json:"content"`
	Seq     int    `json:"seq"`
}

// Session is the live, per-widget traversal state over a definition.
// It is mutated only by the flow interpreter in response to events.
type Session struct {
	// DefinitionID references the survey definition being traversed.
	// Definitions are shared and read-only; many sessions may reference
	// the same one concurrently.
	DefinitionID string `json:"definition_id"`

	// CurrentStepID is the interactive step the session is waiting at.
	// Empty once the session is completed.
	CurrentStepID string `json:"current_step_id,omitempty"`

	// Status indicates whether the session is active or done.
	Status Status `json:"status"`

	// Transcript holds the ordered chat history.
	Transcript []Message `json:"transcript"`

	// Variables maps variable names to captured answer values.
	Variables map[string]string `json:"variables"`
}

// NewSession creates a clean session positioned at the given step.
func NewSession(definitionID, stepID string) *Session {
	return &Session{
		DefinitionID:  definitionID,
		CurrentStepID: stepID,
		Status:        StatusActive,
		Variables:     make(map[string]string),
	}
}

// Done reports whether the session has reached a terminal state.
func (s *Session) Done() bool {
	return s.Status != StatusActive
}

// Append adds a message to the transcript, assigning its sequence position.
func (s *Session) Append(actor Actor, content string) {
	s.Transcript = append(s.Transcript, Message{
		Actor:   actor,
		Content: content,
		Seq:     len(s.Transcript),
	})
}

// Clone creates a copy of the session with deep-copied transcript and
// variables, so the interpreter can mutate the copy without touching the
// original (rejected events must leave the input session untouched).
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	next := *s
	next.Transcript = make([]Message, len(s.Transcript))
	copy(next.Transcript, s.Transcript)
	next.Variables = make(map[string]string, len(s.Variables))
	for k, v := range s.Variables {
		next.Variables[k] = v
	}
	return &next
}
