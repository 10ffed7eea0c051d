package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/annotizer/internal/ident"
)

// Scenario is one annotation run with its expectations.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Specs lists CUE files declaring signatures.
	Specs []string `yaml:"specs"`

	// Target is the declared signature the steps decorate.
	Target string `yaml:"target"`

	// Strict raises reports about undeclared parameter names to warn level.
	Strict bool `yaml:"strict,omitempty"`

	// Namespaces declares the participating projects in order.
	Namespaces []NamespaceDecl `yaml:"namespaces"`

	// Steps are applied to the target in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final metadata.
	Assertions []Assertion `yaml:"assertions"`
}

// NamespaceDecl declares a namespace under a short alias.
type NamespaceDecl struct {
	Alias string `yaml:"alias"`

	// ID is the canonical identifier. Empty means generate one.
	ID string `yaml:"id,omitempty"`

	// ParameterPolicy is "overwrite" (default) or "append".
	ParameterPolicy string `yaml:"parameter_policy,omitempty"`
}

// Parameter policies.
const (
	PolicyOverwrite = "overwrite"
	PolicyAppend    = "append"
)

// Step applies one decorator issued by a namespace. Exactly one of Params
// and Return is set; a null return value cannot be expressed.
type Step struct {
	Namespace string         `yaml:"namespace"`
	Params    map[string]any `yaml:"params,omitempty"`
	Return    any            `yaml:"return,omitempty"`
}

// Kind returns "params" or "return".
func (s Step) Kind() string {
	if s.Params != nil {
		return "params"
	}
	return "return"
}

// Assertion validates the final metadata.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Slot is a parameter name or "return".
	Slot string `yaml:"slot,omitempty"`

	// Namespace is an alias from Scenario.Namespaces.
	Namespace string `yaml:"namespace,omitempty"`

	// Key defaults to "doc" (used by slot_equals).
	Key string `yaml:"key,omitempty"`

	// Value is the expected value (used by slot_equals).
	Value any `yaml:"value,omitempty"`

	// Count is the expected number of namespaces (used by slot_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertSlotEquals        = "slot_equals"
	AssertSlotAbsent        = "slot_absent"
	AssertNamespaceIsolated = "namespace_isolated"
	AssertSlotCount         = "slot_count"
)

// LoadScenario reads and parses a scenario YAML file. Relative spec paths
// are resolved against the scenario file's directory.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving relative spec paths against basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	for i, specPath := range scenario.Specs {
		if !filepath.IsAbs(specPath) && basePath != "" {
			scenario.Specs[i] = filepath.Join(basePath, specPath)
		}
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	for _, specPath := range scenario.Specs {
		if _, err := os.Stat(specPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("invalid scenario: spec file not found: %s", specPath)
		}
	}
	return scenario, nil
}

// ParseScenario decodes scenario YAML without validating it. Unknown fields
// are rejected so typos surface as errors.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// Validate checks required fields and cross references.
func (s *Scenario) Validate() error {
	return validateScenario(s)
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Specs) == 0 {
		return fmt.Errorf("specs list is required and must be non-empty")
	}
	if s.Target == "" {
		return fmt.Errorf("target is required")
	}
	if len(s.Namespaces) == 0 {
		return fmt.Errorf("namespaces list is required and must be non-empty")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	aliases := make(map[string]bool, len(s.Namespaces))
	for i, ns := range s.Namespaces {
		if ns.Alias == "" {
			return fmt.Errorf("namespaces[%d]: alias is required", i)
		}
		if aliases[ns.Alias] {
			return fmt.Errorf("namespaces[%d]: duplicate alias %q", i, ns.Alias)
		}
		aliases[ns.Alias] = true

		if ns.ID != "" {
			if _, err := ident.Parse(ns.ID); err != nil {
				return fmt.Errorf("namespaces[%d]: %w", i, err)
			}
		}
		switch ns.ParameterPolicy {
		case "", PolicyOverwrite, PolicyAppend:
		default:
			return fmt.Errorf("namespaces[%d]: unknown parameter_policy %q", i, ns.ParameterPolicy)
		}
	}

	for i, step := range s.Steps {
		if !aliases[step.Namespace] {
			return fmt.Errorf("steps[%d]: unknown namespace %q", i, step.Namespace)
		}
		if (step.Params == nil) == (step.Return == nil) {
			return fmt.Errorf("steps[%d]: exactly one of params and return is required", i)
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i], aliases); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion, aliases map[string]bool) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}
	if a.Namespace != "" && !aliases[a.Namespace] {
		return fmt.Errorf("assertions[%d]: unknown namespace %q", index, a.Namespace)
	}

	switch a.Type {
	case AssertSlotEquals:
		if a.Slot == "" || a.Namespace == "" {
			return fmt.Errorf("assertions[%d]: slot and namespace are required for slot_equals", index)
		}
	case AssertSlotAbsent:
		if a.Slot == "" {
			return fmt.Errorf("assertions[%d]: slot is required for slot_absent", index)
		}
	case AssertNamespaceIsolated:
		if a.Namespace == "" {
			return fmt.Errorf("assertions[%d]: namespace is required for namespace_isolated", index)
		}
	case AssertSlotCount:
		if a.Slot == "" {
			return fmt.Errorf("assertions[%d]: slot is required for slot_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for slot_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
