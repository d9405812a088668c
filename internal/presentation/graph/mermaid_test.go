package graph_test

import (
	"strings"
	"testing"

	"github.com/careerloop/surveyflow/internal/presentation/graph"
	"github.com/careerloop/surveyflow/pkg/dsl"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	b := dsl.New("demo")
	b.Bot("greet", "Hi").Go("pick")
	b.Ask("pick", "Choose").
		Option("Option \"A\"", "a", "end").
		Option("Option B", "b", "free-text")
	b.Input("free-text", "Write").Go("end")
	b.Bot("end", "Bye").Terminal()

	out := graph.GenerateMermaid(b.MustBuild())

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))

	// Entry is a circle, interactive steps are parallelograms, the terminal
	// step is a stadium.
	assert.Contains(t, out, `greet(("greet"))`)
	assert.Contains(t, out, `pick[/"pick"/]`)
	assert.Contains(t, out, `end(["end"])`)

	// Option edges carry their labels; quotes are neutralized.
	assert.Contains(t, out, `pick -- "Option 'A'" --> end`)
	assert.Contains(t, out, `pick -- "Option B" --> free_text`)

	// Dashes in IDs are sanitized for Mermaid.
	assert.Contains(t, out, `free_text[/"free-text"/]`)
	assert.Contains(t, out, "free_text --> end")
}

func TestGenerateMermaid_SkipsDanglingOptionEdges(t *testing.T) {
	b := dsl.New("demo")
	b.Ask("pick", "Choose").
		Option("A", "a", "end").
		Option("No edge", "noop", "")
	b.Bot("end", "Bye").Terminal()

	out := graph.GenerateMermaid(b.MustBuild())

	assert.Contains(t, out, `pick -- "A" --> end`)
	assert.NotContains(t, out, "No edge")
}
