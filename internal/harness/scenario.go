package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: a script to execute and
// assertions over the outcomes and final state.
type Scenario struct {
	// Name uniquely identifies this scenario. It is also the golden file
	// name for trace comparison.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Script is the inline sigil script, one command per line.
	Script string `yaml:"script"`

	// Assertions validate the outcomes and the final state.
	Assertions []Assertion `yaml:"assertions"`

	// RunToken is an optional fixed run token for deterministic tests.
	// If empty, defaults to "test-run-default" for deterministic golden
	// file comparison.
	RunToken string `yaml:"run_token,omitempty"`
}

// Assertion validates one aspect of a scenario result. The Type field
// selects which of the remaining fields apply.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Line is the 0-based outcome index (line_executed).
	Line int `yaml:"line,omitempty"`

	// Executed is the expected execution flag (line_executed).
	Executed bool `yaml:"executed,omitempty"`

	// Entity is the entity name (entity_exists, entity_absent).
	Entity string `yaml:"entity,omitempty"`

	// Kind is the expected entity kind (entity_exists, optional).
	Kind string `yaml:"kind,omitempty"`

	// Verified is the expected verified flag (entity_exists, optional).
	Verified *bool `yaml:"verified,omitempty"`

	// Components is an expected component subset (entity_exists, optional).
	Components []string `yaml:"components,omitempty"`

	// Count is the expected entity count (entity_count).
	Count int `yaml:"count,omitempty"`

	// Value is the expected counter value (counter_value).
	Value int64 `yaml:"value,omitempty"`
}

// Assertion type constants.
const (
	AssertLineExecuted = "line_executed"
	AssertEntityExists = "entity_exists"
	AssertEntityAbsent = "entity_absent"
	AssertEntityCount  = "entity_count"
	AssertCounterValue = "counter_value"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Script == "" {
		return fmt.Errorf("script is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertLineExecuted:
		if a.Line < 0 {
			return fmt.Errorf("assertions[%d]: line must be non-negative for line_executed", index)
		}
	case AssertEntityExists:
		if a.Entity == "" {
			return fmt.Errorf("assertions[%d]: entity is required for entity_exists", index)
		}
	case AssertEntityAbsent:
		if a.Entity == "" {
			return fmt.Errorf("assertions[%d]: entity is required for entity_absent", index)
		}
	case AssertEntityCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for entity_count", index)
		}
	case AssertCounterValue:
		if a.Value < 0 {
			return fmt.Errorf("assertions[%d]: value must be non-negative for counter_value", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
