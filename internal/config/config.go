// Package config loads survey catalogues from YAML. A catalogue names the
// default survey and carries each definition as a flat list of step records
// with kind-specific required fields; decoding is strict so typos in step
// records fail at load time instead of surfacing mid-conversation.
package config

import (
	"fmt"
	"os"

	"github.com/careerloop/surveyflow/pkg/domain"
	"github.com/careerloop/surveyflow/pkg/registry"
	"gopkg.in/yaml.v3"
)

// Catalogue is the parsed result of a surveys file.
type Catalogue struct {
	DefaultID   string
	Definitions []*domain.Definition
}

// Registry builds the definition registry from the catalogue.
func (c *Catalogue) Registry(opts ...registry.Option) (*registry.Registry, error) {
	return registry.New(c.DefaultID, c.Definitions, opts...)
}

type catalogueFile struct {
	Default string       `yaml:"default"`
	Surveys []surveyFile `yaml:"surveys"`
}

type surveyFile struct {
	ID    string           `yaml:"id"`
	Steps []map[string]any `yaml:"steps"`
}

// Load reads and parses a catalogue file.
func Load(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalogue payload.
func Parse(data []byte) (*Catalogue, error) {
	var file catalogueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid catalogue YAML: %w", err)
	}

	if len(file.Surveys) == 0 {
		return nil, fmt.Errorf("catalogue has no surveys")
	}

	cat := &Catalogue{DefaultID: file.Default}
	for _, sf := range file.Surveys {
		if sf.ID == "" {
			return nil, fmt.Errorf("survey entry is missing an id")
		}

		steps := make([]domain.Step, 0, len(sf.Steps))
		for i, raw := range sf.Steps {
			step, err := decodeStep(raw)
			if err != nil {
				return nil, fmt.Errorf("survey %q, step %d: %w", sf.ID, i, err)
			}
			steps = append(steps, step)
		}

		def, err := domain.NewDefinition(sf.ID, steps)
		if err != nil {
			return nil, err
		}
		cat.Definitions = append(cat.Definitions, def)
	}

	if cat.DefaultID == "" {
		// A single-survey catalogue doesn't need to repeat itself.
		cat.DefaultID = cat.Definitions[0].ID()
	}

	return cat, nil
}
