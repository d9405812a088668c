package flow

import "github.com/careerloop/surveyflow/pkg/domain"

// advance follows the edge landing on stepID and replays any chain of
// consecutive bot message steps, appending their prompts to the transcript,
// until it reaches an interactive step or the session completes. The session
// is mutated in place; callers pass a clone when the original must survive.
//
// The loop keeps a visited set as a cycle guard: bot chains are expected to
// be acyclic by construction, but the source data is not trusted to enforce
// that. A revisit aborts the chain and marks the session as completed with
// an error instead of spinning forever.
func (e *Engine) advance(def *domain.Definition, s *domain.Session, stepID string) *domain.Session {
	visited := make(map[string]struct{})
	current := stepID

	for {
		// A dangling or absent edge is implicit termination, not a crash.
		if current == "" {
			s.CurrentStepID = ""
			s.Status = domain.StatusCompleted
			return s
		}

		step, ok := def.Step(current)
		if !ok {
			e.logger.Warn("transition target missing, completing session",
				"definition", def.ID(), "target", current)
			s.CurrentStepID = ""
			s.Status = domain.StatusCompleted
			return s
		}

		if step.Interactive() {
			s.CurrentStepID = current
			s.Status = domain.StatusActive
			return s
		}

		if _, seen := visited[current]; seen {
			e.logger.Error("bot message chain revisited a step, aborting session",
				"definition", def.ID(), "step", current, "err", domain.ErrCycleDetected)
			s.CurrentStepID = ""
			s.Status = domain.StatusCompletedWithError
			return s
		}
		visited[current] = struct{}{}

		if step.Prompt != "" {
			s.Append(domain.ActorBot, step.Prompt)
		}

		if step.Terminal {
			s.CurrentStepID = ""
			s.Status = domain.StatusCompleted
			return s
		}

		current = step.NextStepID
	}
}
