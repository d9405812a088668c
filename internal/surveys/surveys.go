// Package surveys holds the survey graphs shipped with the platform.
// They are plain data: each function assembles a definition with the dsl
// builder and the registry validates it at startup.
package surveys

import (
	"github.com/careerloop/surveyflow/pkg/domain"
	"github.com/careerloop/surveyflow/pkg/dsl"
)

// Shipped survey IDs.
const (
	IDFeedback       = "feedback"
	IDJobPreferences = "job-preferences"
)

// DefaultID is the survey served when an unknown ID is requested.
const DefaultID = IDFeedback

// All returns the shipped definitions.
func All() []*domain.Definition {
	return []*domain.Definition{
		Feedback(),
		JobPreferences(),
	}
}

// Feedback is the product feedback survey shown by the floating assistant.
func Feedback() *domain.Definition {
	b := dsl.New(IDFeedback)

	b.Bot("greet", "Hey there! 👋 Got a minute to tell us how we're doing?").
		Go("ask_experience")

	// No variable on purpose: the pick only routes the flow.
	b.Ask("ask_experience", "How has your experience been so far?").
		Option("🚀 Amazing!", "amazing", "loved_intro").
		Option("🙂 It was okay", "okay", "improve_intro").
		Option("😕 Needs improvement", "needs_improvement", "improve_intro")

	b.Bot("loved_intro", "Love to hear it! Which feature won you over?").
		Go("ask_loved")
	b.Input("ask_loved", "").
		Placeholder("The resume analyzer, cover letters, interview prep...").
		SaveTo("loved_feature").
		Go("ask_referral")

	b.Bot("improve_intro", "Thanks for being honest — that's how we get better.").
		Go("ask_improvement")
	b.Input("ask_improvement", "What should we improve first?").
		Multiline().
		SaveTo("improvement_request").
		Go("ask_referral")

	b.Dropdown("ask_referral", "How likely are you to recommend us to a friend?").
		Choice("Very likely", "very_likely").
		Choice("Somewhat likely", "somewhat_likely").
		Choice("Not likely", "not_likely").
		SaveTo("referral_likelihood").
		Go("thanks")

	b.Bot("thanks", "Thank you for the feedback! 💙 It goes straight to the team.").
		Terminal()

	return b.MustBuild()
}

// JobPreferences is the onboarding survey that seeds the matching profile.
func JobPreferences() *domain.Definition {
	b := dsl.New(IDJobPreferences)

	b.Bot("intro", "Let's set up your job preferences so we can match you better.").
		Go("ask_role")

	b.Input("ask_role", "What role are you looking for?").
		Placeholder("e.g. Backend Engineer").
		SaveTo("desired_role").
		Go("ask_seniority")

	b.Ask("ask_seniority", "What seniority level fits you best?").
		SaveTo("seniority").
		Option("Junior", "junior", "ask_work_mode").
		Option("Mid-level", "mid", "ask_work_mode").
		Option("Senior", "senior", "ask_work_mode").
		Option("Lead / Principal", "lead", "ask_work_mode")

	b.Dropdown("ask_work_mode", "How do you prefer to work?").
		Choice("Fully remote", "remote").
		Choice("Hybrid", "hybrid").
		Choice("On-site", "onsite").
		SaveTo("work_mode").
		Go("ask_relocation")

	b.Ask("ask_relocation", "Would you consider relocating for the right offer?").
		SaveTo("open_to_relocation").
		Option("Yes, I'd relocate", "yes", "wrap").
		Option("No, I'm staying put", "no", "wrap")

	b.Bot("wrap", "All set! ✨ We'll use this to rank your matches.").
		Terminal()

	return b.MustBuild()
}
