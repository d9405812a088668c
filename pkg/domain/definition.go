package domain

import "fmt"

// Definition is the static, named graph of steps describing one complete
// conversational script. It is immutable once constructed: the adjacency
// index is built exactly once, so lookups during traversal are plain map
// reads and the structure is safe for unsynchronized concurrent use.
type Definition struct {
	id      string
	steps   []Step
	byID    map[string]*Step
	entryID string
}

// NewDefinition builds a definition from an ordered list of steps.
// The first step is the entry point. Duplicate or empty step IDs are
// rejected here; dangling transition targets are not (the interpreter
// treats them as implicit termination, and the validator reports them).
func NewDefinition(id string, steps []Step) (*Definition, error) {
	if id == "" {
		return nil, fmt.Errorf("definition ID is required")
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("definition %q has no steps", id)
	}

	d := &Definition{
		id:      id,
		steps:   make([]Step, len(steps)),
		byID:    make(map[string]*Step, len(steps)),
		entryID: steps[0].ID,
	}
	copy(d.steps, steps)

	for i := range d.steps {
		s := &d.steps[i]
		if s.ID == "" {
			return nil, fmt.Errorf("definition %q: step %d is missing an ID", id, i)
		}
		if _, exists := d.byID[s.ID]; exists {
			return nil, fmt.Errorf("definition %q: duplicate step ID %q", id, s.ID)
		}
		d.byID[s.ID] = s
	}

	return d, nil
}

// ID returns the definition identifier.
func (d *Definition) ID() string { return d.id }

// EntryID returns the ID of the entry step.
func (d *Definition) EntryID() string { return d.entryID }

// Step looks up a step by ID.
func (d *Definition) Step(id string) (*Step, bool) {
	s, ok := d.byID[id]
	return s, ok
}

// Steps returns the steps in declaration order. The returned slice is a
// copy; callers cannot mutate the definition through it.
func (d *Definition) Steps() []Step {
	out := make([]Step, len(d.steps))
	copy(out, d.steps)
	return out
}

// Len returns the number of steps in the graph.
func (d *Definition) Len() int { return len(d.steps) }
