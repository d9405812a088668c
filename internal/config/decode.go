package config

import (
	"fmt"

	"github.com/careerloop/surveyflow/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// stepRecord is the on-disk shape of one step. Which fields are required
// depends on the kind; requireFields enforces that after decoding.
type stepRecord struct {
	ID       string `mapstructure:"id"`
	Kind     string `mapstructure:"kind"`
	Text     string `mapstructure:"text"`
	Variable string `mapstructure:"variable"`
	Next     string `mapstructure:"next"`
	Terminal bool   `mapstructure:"terminal"`

	Options         []optionRecord `mapstructure:"options"`
	DropdownOptions []choiceRecord `mapstructure:"dropdown_options"`

	Placeholder string `mapstructure:"placeholder"`
	InputType   string `mapstructure:"input_type"` // "text" (default) or "multiline"
}

type optionRecord struct {
	Text  string `mapstructure:"text"`
	Value string `mapstructure:"value"`
	Next  string `mapstructure:"next"`
}

type choiceRecord struct {
	Label string `mapstructure:"label"`
	Value string `mapstructure:"value"`
}

func decodeStep(raw map[string]any) (domain.Step, error) {
	var rec stepRecord

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &rec,
		ErrorUnused: true, // Unknown keys are typos, not extensions.
	})
	if err != nil {
		return domain.Step{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return domain.Step{}, fmt.Errorf("malformed step record: %w", err)
	}

	if rec.ID == "" {
		return domain.Step{}, fmt.Errorf("step is missing an id")
	}

	switch rec.Kind {
	case domain.KindBotMessage:
		if !rec.Terminal && rec.Next == "" {
			return domain.Step{}, fmt.Errorf("bot_message %q needs either next or terminal", rec.ID)
		}
		if rec.Terminal && rec.Next != "" {
			return domain.Step{}, fmt.Errorf("bot_message %q has both next and terminal", rec.ID)
		}
		return domain.Step{
			ID:         rec.ID,
			Kind:       domain.KindBotMessage,
			Prompt:     rec.Text,
			NextStepID: rec.Next,
			Terminal:   rec.Terminal,
		}, nil

	case domain.KindUserOptions:
		if len(rec.Options) == 0 {
			return domain.Step{}, fmt.Errorf("user_options %q has no options", rec.ID)
		}
		opts := make([]domain.Option, 0, len(rec.Options))
		for _, o := range rec.Options {
			if o.Text == "" || o.Value == "" {
				return domain.Step{}, fmt.Errorf("user_options %q: options need text and value", rec.ID)
			}
			opts = append(opts, domain.Option{
				Label:      o.Text,
				Value:      o.Value,
				NextStepID: o.Next,
			})
		}
		return domain.Step{
			ID:           rec.ID,
			Kind:         domain.KindUserOptions,
			Prompt:       rec.Text,
			VariableName: rec.Variable,
			Options:      opts,
		}, nil

	case domain.KindUserInput:
		if rec.InputType != "" && rec.InputType != "text" && rec.InputType != "multiline" {
			return domain.Step{}, fmt.Errorf("user_input %q: unknown input_type %q", rec.ID, rec.InputType)
		}
		return domain.Step{
			ID:           rec.ID,
			Kind:         domain.KindUserInput,
			Prompt:       rec.Text,
			VariableName: rec.Variable,
			NextStepID:   rec.Next,
			Placeholder:  rec.Placeholder,
			Multiline:    rec.InputType == "multiline",
		}, nil

	case domain.KindUserDropdown:
		if len(rec.DropdownOptions) == 0 {
			return domain.Step{}, fmt.Errorf("user_dropdown %q has no dropdown_options", rec.ID)
		}
		choices := make([]domain.Choice, 0, len(rec.DropdownOptions))
		for _, c := range rec.DropdownOptions {
			if c.Label == "" || c.Value == "" {
				return domain.Step{}, fmt.Errorf("user_dropdown %q: choices need label and value", rec.ID)
			}
			choices = append(choices, domain.Choice{Label: c.Label, Value: c.Value})
		}
		return domain.Step{
			ID:           rec.ID,
			Kind:         domain.KindUserDropdown,
			Prompt:       rec.Text,
			VariableName: rec.Variable,
			NextStepID:   rec.Next,
			Choices:      choices,
		}, nil

	case "":
		return domain.Step{}, fmt.Errorf("step %q is missing a kind", rec.ID)
	default:
		return domain.Step{}, fmt.Errorf("step %q has unknown kind %q", rec.ID, rec.Kind)
	}
}
