package domain

// EventKind identifies the shape of a user event.
type EventKind string

const (
	// EventOption is a pick from a user_options step.
	EventOption EventKind = "option"
	// EventText is a free-text submission for a user_input step.
	EventText EventKind = "text"
	// EventDropdown is a selection on a user_dropdown step.
	EventDropdown EventKind = "dropdown"
)

// Event is one piece of user input dispatched to the engine. The kind must
// match the session's current step kind, otherwise the event is rejected
// without touching the session.
type Event struct {
	Kind  EventKind `json:"kind"`
	Value string    `json:"value"`
}

// Valid reports whether the event kind is one the engine understands.
func (e Event) Valid() bool {
	switch e.Kind {
	case EventOption, EventText, EventDropdown:
		return true
	}
	return false
}
