/*
Package surveyflow is a deterministic conversational survey engine: a small
interpreter that walks a directed graph of typed steps (bot message, multiple
choice, free text, dropdown), captures user responses into named variables,
and decides the next step via per-option or per-step transition rules.

The engine manages state transitions, transcripts, and variable capture,
while the host owns rendering and result persistence. This Hexagonal
Architecture lets the same core back a floating chat widget over HTTP, a
terminal runner, or tests.

# Concept

A survey is a Definition: a named, immutable graph of steps validated at
load time. Each open widget holds a Session: the live traversal state
(current position, transcript, captured variables). The interpreter is a
pure transition function; the session manager serializes a session's events
and is the only component that calls the interpreter's mutating operations.

# Key Properties

  - Deterministic: the same definition and event sequence always produce
    the same final session.
  - Total: every operation returns a resulting session, possibly unchanged
    with a typed rejection; nothing here is fatal to the host.
  - Degrading: dangling transition targets complete the session instead of
    crashing, and bot message cycles are detected instead of hanging.

# Usage

	eng, err := surveyflow.New(
		surveyflow.WithCompletionFunc(func(sessionID, surveyID string, vars map[string]string) {
			log.Printf("survey %s done: %v", surveyID, vars)
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	view, _ := eng.Open(ctx, "widget-1", "feedback")

	// Render view.Step, collect input, then:
	view, err = eng.HandleEvent(ctx, "widget-1", domain.Event{
		Kind:  domain.EventOption,
		Value: "amazing",
	})
*/
package surveyflow
