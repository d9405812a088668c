package domain

// StepKind constants define the control flow behavior of a step.
const (
	// KindBotMessage displays content and continues immediately (soft step).
	KindBotMessage = "bot_message"
	// KindUserOptions displays a set of buttons and halts waiting for a pick (hard step).
	KindUserOptions = "user_options"
	// KindUserInput halts waiting for free text (hard step).
	KindUserInput = "user_input"
	// KindUserDropdown halts waiting for a selection from a list (hard step).
	KindUserDropdown = "user_dropdown"
)

// Option is one selectable answer on a user_options step.
// Each option carries its own outgoing edge.
type Option struct {
	Label      string `json:"label" yaml:"label"`
	Value      string `json:"value" yaml:"value"`
	NextStepID string `json:"next,omitempty" yaml:"next,omitempty"`
}

// Choice is one entry of a user_dropdown step. Unlike Option it has no
// outgoing edge of its own; the step's NextStepID is used regardless of
// the value picked.
type Choice struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Step represents a single node in a survey graph.
type Step struct {
	ID   string `json:"id" yaml:"id"`
	Kind string `json:"kind" yaml:"kind"`

	// Prompt is the text shown when the step activates. Optional for
	// bot_message steps, expected for interactive ones.
	Prompt string `json:"prompt,omitempty" yaml:"prompt,omitempty"`

	// VariableName, when set on an interactive step, is the slot in the
	// session's variable map that receives the captured value.
	VariableName string `json:"variable,omitempty" yaml:"variable,omitempty"`

	// NextStepID is the single outgoing edge for bot_message, user_input
	// and user_dropdown steps. user_options steps route per option instead.
	NextStepID string `json:"next,omitempty" yaml:"next,omitempty"`

	// Terminal marks a bot_message as the end of the graph. A terminal
	// step has no outgoing edge.
	Terminal bool `json:"terminal,omitempty" yaml:"terminal,omitempty"`

	// Options holds the answers of a user_options step (non-empty there).
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`

	// Choices holds the entries of a user_dropdown step (non-empty there).
	Choices []Choice `json:"choices,omitempty" yaml:"choices,omitempty"`

	// Input configuration for user_input steps.
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Multiline   bool   `json:"multiline,omitempty" yaml:"multiline,omitempty"`
}

// Interactive reports whether the step halts the flow waiting for user input.
func (s *Step) Interactive() bool {
	switch s.Kind {
	case KindUserOptions, KindUserInput, KindUserDropdown:
		return true
	}
	return false
}

// OptionByValue returns the option with the given machine value, or nil.
func (s *Step) OptionByValue(value string) *Option {
	for i := range s.Options {
		if s.Options[i].Value == value {
			return &s.Options[i]
		}
	}
	return nil
}

// ChoiceByValue returns the dropdown choice with the given value, or nil.
func (s *Step) ChoiceByValue(value string) *Choice {
	for i := range s.Choices {
		if s.Choices[i].Value == value {
			return &s.Choices[i]
		}
	}
	return nil
}
