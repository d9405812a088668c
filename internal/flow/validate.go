package flow

import (
	"fmt"
	"strings"

	"github.com/careerloop/surveyflow/pkg/domain"
)

// Severity classifies a validation issue.
type Severity string

const (
	// SeverityError marks defects that make a definition unusable
	// (empty option lists, bot steps with no exit, bot chain cycles).
	SeverityError Severity = "error"
	// SeverityWarning marks defects the interpreter degrades gracefully
	// from (dangling targets become implicit termination, unreachable
	// steps are never visited).
	SeverityWarning Severity = "warning"
)

// Issue is one finding of Validate.
type Issue struct {
	Severity Severity
	StepID   string
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] step %q: %s", i.Severity, i.StepID, i.Message)
}

// Validate crawls the definition from its entry step and reports structural
// defects. Dangling references and bot chain cycles are caught once here,
// at load time, rather than discovered ad hoc during traversal.
func Validate(def *domain.Definition) []Issue {
	var issues []Issue

	report := func(sev Severity, stepID, format string, args ...any) {
		issues = append(issues, Issue{
			Severity: sev,
			StepID:   stepID,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	// Per-step shape checks.
	for _, step := range def.Steps() {
		switch step.Kind {
		case domain.KindBotMessage:
			if step.Terminal && step.NextStepID != "" {
				report(SeverityError, step.ID, "terminal step must not have an outgoing edge")
			}
			if !step.Terminal && step.NextStepID == "" {
				report(SeverityWarning, step.ID, "bot message has no next step; session will complete here")
			}
		case domain.KindUserOptions:
			if len(step.Options) == 0 {
				report(SeverityError, step.ID, "user_options step has no options")
			}
			for _, opt := range step.Options {
				if opt.Value == "" {
					report(SeverityError, step.ID, "option %q has no value", opt.Label)
				}
			}
		case domain.KindUserInput:
			// Free text needs an edge to be useful; a missing one still
			// degrades to implicit termination.
			if step.NextStepID == "" {
				report(SeverityWarning, step.ID, "user_input has no next step")
			}
		case domain.KindUserDropdown:
			if len(step.Choices) == 0 {
				report(SeverityError, step.ID, "user_dropdown step has no choices")
			}
		default:
			report(SeverityError, step.ID, "unknown step kind %q", step.Kind)
		}
	}

	// Crawl from the entry: dangling targets and reachability.
	visited := make(map[string]bool)
	queue := []string{def.EntryID()}

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		step, ok := def.Step(currentID)
		if !ok {
			report(SeverityWarning, currentID, "transition target does not exist")
			continue
		}

		for _, target := range outgoing(step) {
			if target != "" && !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	for _, step := range def.Steps() {
		if !visited[step.ID] {
			report(SeverityWarning, step.ID, "step is unreachable from the entry step")
		}
	}

	// Bot chain cycle detection: follow bot->bot edges only, which is the
	// path the auto-advance loop walks without waiting for input.
	issues = append(issues, findBotCycles(def)...)

	return issues
}

// Strict returns an error if the definition has any issue at all, warnings
// included. Used by the validate CLI command; the registry only enforces
// SeverityError findings.
func Strict(def *domain.Definition) error {
	issues := Validate(def)
	if len(issues) == 0 {
		return nil
	}
	lines := make([]string, len(issues))
	for i, issue := range issues {
		lines[i] = issue.String()
	}
	return fmt.Errorf("definition %q has %d issue(s):\n- %s",
		def.ID(), len(issues), strings.Join(lines, "\n- "))
}

// Errors filters the findings down to hard defects.
func Errors(issues []Issue) []Issue {
	var out []Issue
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			out = append(out, issue)
		}
	}
	return out
}

func outgoing(step *domain.Step) []string {
	if step.Kind == domain.KindUserOptions {
		targets := make([]string, 0, len(step.Options))
		for _, opt := range step.Options {
			targets = append(targets, opt.NextStepID)
		}
		return targets
	}
	if step.Terminal {
		return nil
	}
	return []string{step.NextStepID}
}

func findBotCycles(def *domain.Definition) []Issue {
	var issues []Issue
	reported := map[string]bool{}

	for _, start := range def.Steps() {
		if start.Kind != domain.KindBotMessage || reported[start.ID] {
			continue
		}

		seen := map[string]bool{}
		current := start.ID
		for {
			step, ok := def.Step(current)
			if !ok || step.Kind != domain.KindBotMessage || step.Terminal {
				break
			}
			if seen[current] {
				if !reported[current] {
					issues = append(issues, Issue{
						Severity: SeverityError,
						StepID:   current,
						Message:  "bot message chain loops back through this step",
					})
				}
				// Mark the whole walk as reported so each cycle
				// surfaces once, not once per member.
				for id := range seen {
					reported[id] = true
				}
				break
			}
			seen[current] = true
			current = step.NextStepID
			if current == "" {
				break
			}
		}
	}

	return issues
}
