package flow

import (
	"strings"

	"github.com/careerloop/surveyflow/pkg/domain"
)

// SubmitOption handles a pick on a user_options step. Unknown values are
// rejected and the session is returned unchanged. On success the option's
// label is echoed into the transcript, the value captured if the step has a
// variable name, and the session advances along the option's own edge.
func (e *Engine) SubmitOption(def *domain.Definition, s *domain.Session, value string) (*domain.Session, error) {
	step, err := e.currentStep(def, s, domain.KindUserOptions)
	if err != nil {
		return s, err
	}

	opt := step.OptionByValue(value)
	if opt == nil {
		return s, domain.ErrUnknownOption
	}

	next := s.Clone()
	next.Append(domain.ActorUser, opt.Label)
	if step.VariableName != "" {
		next.Variables[step.VariableName] = opt.Value
	}
	return e.advance(def, next, opt.NextStepID), nil
}

// SubmitText handles a free-text submission on a user_input step.
// Empty or whitespace-only text is rejected.
func (e *Engine) SubmitText(def *domain.Definition, s *domain.Session, text string) (*domain.Session, error) {
	step, err := e.currentStep(def, s, domain.KindUserInput)
	if err != nil {
		return s, err
	}

	if strings.TrimSpace(text) == "" {
		return s, domain.ErrEmptyInput
	}

	next := s.Clone()
	next.Append(domain.ActorUser, text)
	if step.VariableName != "" {
		next.Variables[step.VariableName] = text
	}
	return e.advance(def, next, step.NextStepID), nil
}

// SubmitDropdown handles a selection on a user_dropdown step. The value is
// resolved to its human-readable label for the transcript echo; otherwise it
// behaves like SubmitText with the step's single outgoing edge.
func (e *Engine) SubmitDropdown(def *domain.Definition, s *domain.Session, value string) (*domain.Session, error) {
	step, err := e.currentStep(def, s, domain.KindUserDropdown)
	if err != nil {
		return s, err
	}

	choice := step.ChoiceByValue(value)
	if choice == nil {
		return s, domain.ErrUnknownOption
	}

	next := s.Clone()
	next.Append(domain.ActorUser, choice.Label)
	if step.VariableName != "" {
		next.Variables[step.VariableName] = choice.Value
	}
	return e.advance(def, next, step.NextStepID), nil
}

// currentStep resolves the session's current step and checks it against the
// kind the submit operation expects. All rejection paths leave the session
// untouched.
func (e *Engine) currentStep(def *domain.Definition, s *domain.Session, kind string) (*domain.Step, error) {
	if s.Done() {
		return nil, domain.ErrSessionDone
	}

	step, ok := def.Step(s.CurrentStepID)
	if !ok {
		// The session points at a step that no longer exists in the
		// definition. Degrade the same way a dangling edge does.
		return nil, domain.ErrSessionDone
	}

	if step.Kind != kind {
		return nil, domain.ErrKindMismatch
	}
	return step, nil
}
