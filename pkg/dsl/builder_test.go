package dsl_test

import (
	"testing"

	"github.com/careerloop/surveyflow/pkg/domain"
	"github.com/careerloop/surveyflow/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_FirstStepIsEntry(t *testing.T) {
	b := dsl.New("survey")
	b.Bot("greet", "Hello").Go("ask")
	b.Input("ask", "Name?").SaveTo("name").Go("bye")
	b.Bot("bye", "Bye").Terminal()

	def, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "survey", def.ID())
	assert.Equal(t, "greet", def.EntryID())
	assert.Equal(t, 3, def.Len())
}

func TestBuilder_StepConfiguration(t *testing.T) {
	b := dsl.New("survey")
	b.Ask("pick", "Choose one").
		SaveTo("choice").
		Option("First", "first", "a").
		Option("Second", "second", "b")
	b.Dropdown("dd", "Select").
		Choice("X", "x").
		Choice("Y", "y").
		Go("a")
	b.Input("free", "Write").
		Placeholder("anything").
		Multiline().
		Go("a")
	b.Bot("a", "done").Terminal()

	def := b.MustBuild()

	pick, ok := def.Step("pick")
	require.True(t, ok)
	assert.Equal(t, domain.KindUserOptions, pick.Kind)
	assert.Equal(t, "choice", pick.VariableName)
	require.Len(t, pick.Options, 2)
	assert.Equal(t, domain.Option{Label: "Second", Value: "second", NextStepID: "b"}, pick.Options[1])

	dd, ok := def.Step("dd")
	require.True(t, ok)
	assert.Equal(t, domain.KindUserDropdown, dd.Kind)
	require.Len(t, dd.Choices, 2)
	assert.Equal(t, "a", dd.NextStepID)

	free, ok := def.Step("free")
	require.True(t, ok)
	assert.Equal(t, "anything", free.Placeholder)
	assert.True(t, free.Multiline)

	a, ok := def.Step("a")
	require.True(t, ok)
	assert.True(t, a.Terminal)
	assert.Empty(t, a.NextStepID)
}

func TestBuilder_TerminalClearsEdge(t *testing.T) {
	b := dsl.New("survey")
	b.Bot("end", "Bye").Go("somewhere").Terminal()

	def := b.MustBuild()
	end, _ := def.Step("end")
	assert.Empty(t, end.NextStepID)
}

func TestBuilder_EmptyGraphFails(t *testing.T) {
	_, err := dsl.New("empty").Build()
	assert.Error(t, err)
}

func TestMustBuild_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		dsl.New("empty").MustBuild()
	})
}
