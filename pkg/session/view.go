package session

import "github.com/careerloop/surveyflow/pkg/domain"

// StepView describes the current interactive step to the rendering layer:
// which affordance to draw (buttons, text box, dropdown) and with what
// content. It carries no graph topology; the UI never sees step targets.
type StepView struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	Prompt      string          `json:"prompt,omitempty"`
	Options     []domain.Option `json:"options,omitempty"`
	Choices     []domain.Choice `json:"choices,omitempty"`
	Placeholder string          `json:"placeholder,omitempty"`
	Multiline   bool            `json:"multiline,omitempty"`
}

// View is a read-only snapshot of a session handed to the host after every
// operation: transcript for chat-history rendering, the current step
// descriptor (nil once completed), and the captured variables once the
// session is done.
type View struct {
	SessionID  string            `json:"session_id"`
	SurveyID   string            `json:"survey_id"`
	Status     domain.Status     `json:"status"`
	Step       *StepView         `json:"step,omitempty"`
	Transcript []domain.Message  `json:"transcript"`
	Variables  map[string]string `json:"variables,omitempty"`
}

// viewOf builds the host-facing snapshot for a session.
func viewOf(sessionID string, def *domain.Definition, sess *domain.Session) *View {
	v := &View{
		SessionID:  sessionID,
		SurveyID:   sess.DefinitionID,
		Status:     sess.Status,
		Transcript: append([]domain.Message(nil), sess.Transcript...),
	}

	if sess.Done() {
		// Completion exposes the final variables so the host can forward
		// them to whatever sink it chooses.
		v.Variables = make(map[string]string, len(sess.Variables))
		for k, val := range sess.Variables {
			v.Variables[k] = val
		}
		return v
	}

	if step, ok := def.Step(sess.CurrentStepID); ok {
		v.Step = &StepView{
			ID:          step.ID,
			Kind:        step.Kind,
			Prompt:      step.Prompt,
			Options:     append([]domain.Option(nil), step.Options...),
			Choices:     append([]domain.Choice(nil), step.Choices...),
			Placeholder: step.Placeholder,
			Multiline:   step.Multiline,
		}
	}
	return v
}
