package dsl

import (
	"fmt"

	"github.com/careerloop/surveyflow/pkg/domain"
)

// Builder manages the graph construction. Steps keep their insertion order;
// the first step added becomes the entry point.
type Builder struct {
	id    string
	order []string
	steps map[string]*StepBuilder
}

// New creates a new survey builder with the given definition ID.
func New(id string) *Builder {
	return &Builder{
		id:    id,
		steps: make(map[string]*StepBuilder),
	}
}

// add creates (or returns) the step builder for the given ID.
func (b *Builder) add(id, kind string) *StepBuilder {
	if sb, ok := b.steps[id]; ok {
		sb.step.Kind = kind
		return sb
	}
	sb := &StepBuilder{
		step: domain.Step{
			ID:   id,
			Kind: kind,
		},
		builder: b,
	}
	b.steps[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Bot adds a bot message step (soft step, auto-advances).
func (b *Builder) Bot(id, text string) *StepBuilder {
	sb := b.add(id, domain.KindBotMessage)
	sb.step.Prompt = text
	return sb
}

// Ask adds a multiple-choice step (hard step).
func (b *Builder) Ask(id, prompt string) *StepBuilder {
	sb := b.add(id, domain.KindUserOptions)
	sb.step.Prompt = prompt
	return sb
}

// Input adds a free-text step (hard step).
func (b *Builder) Input(id, prompt string) *StepBuilder {
	sb := b.add(id, domain.KindUserInput)
	sb.step.Prompt = prompt
	return sb
}

// Dropdown adds a dropdown step (hard step).
func (b *Builder) Dropdown(id, prompt string) *StepBuilder {
	sb := b.add(id, domain.KindUserDropdown)
	sb.step.Prompt = prompt
	return sb
}

// Build compiles the graph into an immutable definition.
func (b *Builder) Build() (*domain.Definition, error) {
	steps := make([]domain.Step, 0, len(b.order))
	for _, id := range b.order {
		steps = append(steps, b.steps[id].step)
	}

	def, err := domain.NewDefinition(b.id, steps)
	if err != nil {
		return nil, fmt.Errorf("failed to build definition: %w", err)
	}
	return def, nil
}

// MustBuild is Build for static graphs declared in code, where a
// construction error is a programming mistake.
func (b *Builder) MustBuild() *domain.Definition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}
