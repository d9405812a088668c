// Package cli implements the interactive terminal runner: a plain-text
// stand-in for the floating chat widget, driving the same engine API.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/careerloop/surveyflow"
	"github.com/careerloop/surveyflow/internal/presentation/tui"
	"github.com/careerloop/surveyflow/pkg/domain"
	"github.com/careerloop/surveyflow/pkg/session"
	"golang.org/x/term"
)

// RunOptions configures an interactive run.
type RunOptions struct {
	CataloguePath string
	SurveyID      string
	Debug         bool
}

const localSessionID = "local"

// Run executes one survey interactively on the terminal. It renders bot
// messages as they are appended to the transcript and prompts according to
// the current step descriptor.
func Run(opts RunOptions) error {
	logger := NewLogger(opts.Debug)

	engineOpts := []surveyflow.Option{
		surveyflow.WithLogger(logger),
	}
	if opts.CataloguePath != "" {
		engineOpts = append(engineOpts, surveyflow.WithCatalogue(opts.CataloguePath))
	}

	eng, err := surveyflow.New(engineOpts...)
	if err != nil {
		return fmt.Errorf("error initializing engine: %w", err)
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	render := renderFunc(interactive)
	if interactive {
		tui.PrintBanner(surveyflow.Version)
	}

	ctx := context.Background()
	view, err := eng.Open(ctx, localSessionID, opts.SurveyID)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	lastSeq := printNewBotMessages(view, -1, render)

	for view.Status == domain.StatusActive && view.Step != nil {
		ev, quit, err := promptForEvent(reader, view.Step, interactive)
		if err != nil {
			return err
		}
		if quit {
			fmt.Println("Bye!")
			return nil
		}

		next, evErr := eng.HandleEvent(ctx, localSessionID, ev)
		if evErr != nil {
			printRejection(evErr)
			continue
		}

		view = next
		lastSeq = printNewBotMessages(view, lastSeq, render)
	}

	printOutcome(view)
	return nil
}

// promptForEvent renders the affordance for the current step and reads one
// user event from stdin.
func promptForEvent(reader *bufio.Reader, step *session.StepView, interactive bool) (domain.Event, bool, error) {
	switch step.Kind {
	case domain.KindUserOptions:
		for i, opt := range step.Options {
			fmt.Printf("  %d) %s\n", i+1, opt.Label)
		}
		line, quit, err := readLine(reader, interactive)
		if err != nil || quit {
			return domain.Event{}, quit, err
		}
		value := line
		if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 && n <= len(step.Options) {
			value = step.Options[n-1].Value
		}
		return domain.Event{Kind: domain.EventOption, Value: value}, false, nil

	case domain.KindUserDropdown:
		for i, c := range step.Choices {
			fmt.Printf("  %d) %s\n", i+1, c.Label)
		}
		line, quit, err := readLine(reader, interactive)
		if err != nil || quit {
			return domain.Event{}, quit, err
		}
		value := line
		if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 && n <= len(step.Choices) {
			value = step.Choices[n-1].Value
		}
		return domain.Event{Kind: domain.EventDropdown, Value: value}, false, nil

	default: // user_input
		if step.Prompt != "" {
			fmt.Println(step.Prompt)
		}
		if step.Placeholder != "" {
			fmt.Printf("  (%s)\n", step.Placeholder)
		}
		line, quit, err := readLine(reader, interactive)
		if err != nil || quit {
			return domain.Event{}, quit, err
		}
		return domain.Event{Kind: domain.EventText, Value: line}, false, nil
	}
}

func readLine(reader *bufio.Reader, interactive bool) (string, bool, error) {
	if interactive {
		fmt.Print(tui.Prompt())
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", true, nil // EOF: treat as quit
	}
	line = strings.TrimSpace(line)
	if line == "exit" || line == "quit" {
		return "", true, nil
	}
	return line, false, nil
}

// printNewBotMessages prints transcript entries past lastSeq authored by
// the bot and returns the highest sequence seen. The user's own input is
// already on screen, so user echoes are skipped.
func printNewBotMessages(view *session.View, lastSeq int, render func(string) string) int {
	for _, msg := range view.Transcript {
		if msg.Seq <= lastSeq {
			continue
		}
		lastSeq = msg.Seq
		if msg.Actor == domain.ActorBot {
			fmt.Print(render(msg.Content))
		}
	}
	if view.Status == domain.StatusActive && view.Step != nil && view.Step.Kind != domain.KindUserInput && view.Step.Prompt != "" {
		fmt.Print(render(view.Step.Prompt))
	}
	return lastSeq
}

func renderFunc(interactive bool) func(string) string {
	if !interactive {
		return func(s string) string { return s + "\n" }
	}
	markdown := tui.NewRenderer()
	return func(s string) string {
		out, err := markdown(s)
		if err != nil {
			return s + "\n"
		}
		return out
	}
}

func printRejection(err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownOption):
		fmt.Println("That's not one of the choices — pick a number from the list.")
	case errors.Is(err, domain.ErrEmptyInput):
		fmt.Println("Please type an answer (or 'quit' to leave).")
	case errors.Is(err, domain.ErrSessionDone):
		// Completed mid-loop; the outcome printer handles it.
	default:
		fmt.Printf("Input not accepted: %v\n", err)
	}
}

func printOutcome(view *session.View) {
	if view.Status == domain.StatusCompletedWithError {
		fmt.Println("\nThe survey ended unexpectedly (the script has a defect).")
		return
	}
	if len(view.Variables) > 0 {
		fmt.Println("\nCaptured answers:")
		for k, v := range view.Variables {
			fmt.Printf("  %s = %s\n", k, v)
		}
	}
}
