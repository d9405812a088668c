package flow_test

import (
	"testing"

	"github.com/careerloop/surveyflow/internal/flow"
	"github.com/careerloop/surveyflow/pkg/domain"
	"github.com/careerloop/surveyflow/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// surveyDef builds a small survey exercising every step kind:
// welcome (bot) -> mood (options) -> [detail (input) | bye] -> team (dropdown) -> bye (terminal)
func surveyDef(t *testing.T) *domain.Definition {
	t.Helper()

	b := dsl.New("checkin")
	b.Bot("welcome", "Welcome!").Go("mood")
	b.Ask("mood", "How are you feeling?").
		SaveTo("mood").
		Option("Great", "great", "bye").
		Option("Not great", "bad", "detail")
	b.Input("detail", "Tell us more").
		SaveTo("detail").
		Go("team")
	b.Dropdown("team", "Which team are you on?").
		SaveTo("team").
		Choice("Platform", "platform").
		Choice("Product", "product").
		Go("bye")
	b.Bot("bye", "Thanks, see you!").Terminal()

	return b.MustBuild()
}

func TestStart_ReplaysBotChainUntilInteractive(t *testing.T) {
	def := surveyDef(t)
	engine := flow.NewEngine()

	s := engine.Start(def)

	assert.Equal(t, domain.StatusActive, s.Status)
	assert.Equal(t, "mood", s.CurrentStepID)
	require.Len(t, s.Transcript, 1)
	assert.Equal(t, domain.ActorBot, s.Transcript[0].Actor)
	assert.Equal(t, "Welcome!", s.Transcript[0].Content)
}

func TestStart_InteractiveEntryHaltsImmediately(t *testing.T) {
	b := dsl.New("direct")
	b.Input("name", "What's your name?").SaveTo("name").Go("done")
	b.Bot("done", "Hi!").Terminal()
	def := b.MustBuild()

	s := flow.NewEngine().Start(def)

	assert.Equal(t, "name", s.CurrentStepID)
	assert.Empty(t, s.Transcript, "no bot message was passed on the way in")
}

func TestStart_AllBotGraphCompletesWithoutInput(t *testing.T) {
	b := dsl.New("announcement")
	b.Bot("a", "First").Go("b")
	b.Bot("b", "Second").Terminal()
	def := b.MustBuild()

	s := flow.NewEngine().Start(def)

	assert.Equal(t, domain.StatusCompleted, s.Status)
	assert.Empty(t, s.CurrentStepID)
	require.Len(t, s.Transcript, 2)
	assert.Equal(t, "First", s.Transcript[0].Content)
	assert.Equal(t, "Second", s.Transcript[1].Content)
}

func TestSubmitOption(t *testing.T) {
	def := surveyDef(t)
	engine := flow.NewEngine()

	t.Run("routes along the option's own edge", func(t *testing.T) {
		s := engine.Start(def)

		next, err := engine.SubmitOption(def, s, "bad")
		require.NoError(t, err)
		assert.Equal(t, "detail", next.CurrentStepID)
		assert.Equal(t, "bad", next.Variables["mood"])

		// The label, not the machine value, is echoed.
		last := next.Transcript[len(next.Transcript)-1]
		assert.Equal(t, domain.ActorUser, last.Actor)
		assert.Equal(t, "Not great", last.Content)
	})

	t.Run("terminal route completes the session", func(t *testing.T) {
		s := engine.Start(def)

		next, err := engine.SubmitOption(def, s, "great")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, next.Status)
		assert.Equal(t, "Thanks, see you!", next.Transcript[len(next.Transcript)-1].Content)
	})

	t.Run("unknown value is rejected, session untouched", func(t *testing.T) {
		s := engine.Start(def)
		before := s.Clone()

		same, err := engine.SubmitOption(def, s, "fabricated")
		assert.ErrorIs(t, err, domain.ErrUnknownOption)
		assert.Equal(t, before, same)
	})

	t.Run("wrong step kind is rejected", func(t *testing.T) {
		s := engine.Start(def)
		next, err := engine.SubmitOption(def, s, "bad")
		require.NoError(t, err)

		// Session now sits at a user_input step.
		_, err = engine.SubmitOption(def, next, "great")
		assert.ErrorIs(t, err, domain.ErrKindMismatch)
	})
}

func TestSubmitText(t *testing.T) {
	def := surveyDef(t)
	engine := flow.NewEngine()

	atDetail := func(t *testing.T) *domain.Session {
		s := engine.Start(def)
		s, err := engine.SubmitOption(def, s, "bad")
		require.NoError(t, err)
		return s
	}

	t.Run("captures the raw text verbatim", func(t *testing.T) {
		s := atDetail(t)

		next, err := engine.SubmitText(def, s, "  too many bugs  ")
		require.NoError(t, err)
		assert.Equal(t, "  too many bugs  ", next.Variables["detail"])
		assert.Equal(t, "  too many bugs  ", next.Transcript[len(next.Transcript)-1].Content)
		assert.Equal(t, "team", next.CurrentStepID)
	})

	t.Run("whitespace-only text is rejected", func(t *testing.T) {
		s := atDetail(t)
		before := s.Clone()

		same, err := engine.SubmitText(def, s, "   \n\t ")
		assert.ErrorIs(t, err, domain.ErrEmptyInput)
		assert.Equal(t, before, same)
	})
}

func TestSubmitDropdown(t *testing.T) {
	def := surveyDef(t)
	engine := flow.NewEngine()

	s := engine.Start(def)
	s, err := engine.SubmitOption(def, s, "bad")
	require.NoError(t, err)
	s, err = engine.SubmitText(def, s, "deploys are slow")
	require.NoError(t, err)

	t.Run("unknown choice is rejected", func(t *testing.T) {
		_, err := engine.SubmitDropdown(def, s, "marketing")
		assert.ErrorIs(t, err, domain.ErrUnknownOption)
	})

	t.Run("echoes the label and captures the value", func(t *testing.T) {
		next, err := engine.SubmitDropdown(def, s, "platform")
		require.NoError(t, err)
		assert.Equal(t, "platform", next.Variables["team"])
		assert.Equal(t, domain.StatusCompleted, next.Status)

		// "Platform" echo, then the terminal bot message.
		n := len(next.Transcript)
		assert.Equal(t, "Platform", next.Transcript[n-2].Content)
		assert.Equal(t, "Thanks, see you!", next.Transcript[n-1].Content)
	})
}

func TestSubmit_DispatchesByEventKind(t *testing.T) {
	def := surveyDef(t)
	engine := flow.NewEngine()
	s := engine.Start(def)

	next, err := engine.Submit(def, s, domain.Event{Kind: domain.EventOption, Value: "great"})
	require.NoError(t, err)
	assert.True(t, next.Done())

	_, err = engine.Submit(def, s, domain.Event{Kind: "gesture", Value: "wave"})
	assert.ErrorIs(t, err, domain.ErrKindMismatch)
}

func TestSubmit_CompletedSessionIsIdempotentNoOp(t *testing.T) {
	def := surveyDef(t)
	engine := flow.NewEngine()

	s := engine.Start(def)
	s, err := engine.SubmitOption(def, s, "great")
	require.NoError(t, err)
	require.True(t, s.Done())
	before := s.Clone()

	same, err := engine.SubmitOption(def, s, "great")
	assert.ErrorIs(t, err, domain.ErrSessionDone)
	assert.Equal(t, before, same)
}

func TestAdvance_DanglingEdgeCompletesGracefully(t *testing.T) {
	b := dsl.New("dangling")
	b.Input("q", "Anything else?").Go("missing_step")
	def := b.MustBuild()

	engine := flow.NewEngine()
	s := engine.Start(def)

	next, err := engine.SubmitText(def, s, "nope")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, next.Status)
	assert.Empty(t, next.CurrentStepID)
}

func TestAdvance_BotCycleAbortsSession(t *testing.T) {
	// Built from raw steps: the validating load paths refuse such a graph,
	// but the interpreter must survive one anyway.
	def, err := domain.NewDefinition("loop", []domain.Step{
		{ID: "a", Kind: domain.KindBotMessage, Prompt: "A", NextStepID: "b"},
		{ID: "b", Kind: domain.KindBotMessage, Prompt: "B", NextStepID: "a"},
	})
	require.NoError(t, err)

	s := flow.NewEngine().Start(def)

	assert.Equal(t, domain.StatusCompletedWithError, s.Status)
	assert.Empty(t, s.CurrentStepID)
	// Each prompt was spoken exactly once before the abort.
	require.Len(t, s.Transcript, 2)
}

func TestReset_DiscardsProgress(t *testing.T) {
	def := surveyDef(t)
	engine := flow.NewEngine()

	s := engine.Start(def)
	s, err := engine.SubmitOption(def, s, "bad")
	require.NoError(t, err)
	require.NotEmpty(t, s.Variables)

	fresh := engine.Reset(def)
	assert.Equal(t, "mood", fresh.CurrentStepID)
	assert.Empty(t, fresh.Variables)
	assert.Len(t, fresh.Transcript, 1)
}

func TestEngine_IsDeterministic(t *testing.T) {
	def := surveyDef(t)
	engine := flow.NewEngine()

	run := func() *domain.Session {
		s := engine.Start(def)
		s, err := engine.SubmitOption(def, s, "bad")
		require.NoError(t, err)
		s, err = engine.SubmitText(def, s, "flaky search results")
		require.NoError(t, err)
		s, err = engine.SubmitDropdown(def, s, "product")
		require.NoError(t, err)
		return s
	}

	assert.Equal(t, run(), run())
}

func TestTranscript_SequenceIsContiguous(t *testing.T) {
	def := surveyDef(t)
	engine := flow.NewEngine()

	s := engine.Start(def)
	s, err := engine.SubmitOption(def, s, "bad")
	require.NoError(t, err)
	s, err = engine.SubmitText(def, s, "onboarding is confusing")
	require.NoError(t, err)

	for i, msg := range s.Transcript {
		assert.Equal(t, i, msg.Seq)
	}
}
