package dsl

import "github.com/careerloop/surveyflow/pkg/domain"

// StepBuilder provides a fluent API for configuring a step.
type StepBuilder struct {
	step    domain.Step
	builder *Builder
}

// Option adds a selectable answer with its own outgoing edge.
func (s *StepBuilder) Option(label, value, target string) *StepBuilder {
	s.step.Options = append(s.step.Options, domain.Option{
		Label:      label,
		Value:      value,
		NextStepID: target,
	})
	return s
}

// Choice adds a dropdown entry.
func (s *StepBuilder) Choice(label, value string) *StepBuilder {
	s.step.Choices = append(s.step.Choices, domain.Choice{
		Label: label,
		Value: value,
	})
	return s
}

// SaveTo specifies the variable that receives the captured input.
func (s *StepBuilder) SaveTo(variable string) *StepBuilder {
	s.step.VariableName = variable
	return s
}

// Placeholder sets the input hint for a free-text step.
func (s *StepBuilder) Placeholder(hint string) *StepBuilder {
	s.step.Placeholder = hint
	return s
}

// Multiline marks a free-text step as multi-line.
func (s *StepBuilder) Multiline() *StepBuilder {
	s.step.Multiline = true
	return s
}

// Go adds the single outgoing edge of the step.
func (s *StepBuilder) Go(target string) *StepBuilder {
	s.step.NextStepID = target
	return s
}

// Terminal marks the step as the end of the flow.
func (s *StepBuilder) Terminal() *StepBuilder {
	s.step.Terminal = true
	s.step.NextStepID = ""
	return s
}

// Build returns the underlying domain.Step.
// This is primarily used by the Builder, but exposed for advanced usage.
func (s *StepBuilder) Build() domain.Step {
	return s.step
}
