// Package plan contains the in-memory representation of call plans: named
// sequences of registry invocations loaded from YAML or JSON documents.
// A plan seeds a variable scope, runs its steps in order and may pin the
// expected rendering of any step result.
package plan

import (
	"fmt"
)

// Plan represents a call plan definition
type Plan struct {
	// Name is the unique identifier for the plan
	Name string `json:"name" yaml:"name"`

	// Description provides a human-readable description of the plan
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Imports maps short package aliases to full package paths for
	// registered payload types
	Imports Imports `json:"imports,omitempty" yaml:"imports,omitempty"`

	// Vars seed the variable scope before the first step runs
	Vars Vars `json:"vars,omitempty" yaml:"vars,omitempty"`

	// Steps define the invocation sequence
	Steps []*Step `json:"steps,omitempty" yaml:"steps,omitempty"`

	// SourceURL records the origin of a loaded plan
	SourceURL string `json:"-" yaml:"-"`
}

// Step represents a single invocation within a plan
type Step struct {
	// ID optionally identifies the step; unnamed steps go by position
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Call holds the call expression, i.e. math.add(15, $base)
	Call string `json:"call" yaml:"call"`

	// As binds the step result to a variable visible to later steps
	As string `json:"as,omitempty" yaml:"as,omitempty"`

	// Expect optionally pins the rendered result the step must produce
	Expect *string `json:"expect,omitempty" yaml:"expect,omitempty"`
}

// Label returns the step identity used in diagnostics; unnamed steps are
// labelled by their position
func (s *Step) Label(index int) string {
	if s.ID != "" {
		return s.ID
	}
	return fmt.Sprintf("step[%d]", index)
}

// Var declares a scope variable with an optional registered payload type
type Var struct {
	// Name identifies the variable within the plan scope
	Name string `json:"name" yaml:"name"`

	// Type optionally names a registered type the value converts into,
	// i.e. search.Request or []string
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Value holds the literal or structured initial value
	Value interface{} `json:"value,omitempty" yaml:"value,omitempty"`
}

// Vars represents ordered variable declarations
type Vars []*Var

// Lookup returns the declaration of name, or nil
func (v Vars) Lookup(name string) *Var {
	for _, item := range v {
		if item.Name == name {
			return item
		}
	}
	return nil
}

// Step returns the step with the supplied ID, or nil
func (p *Plan) Step(id string) *Step {
	for _, step := range p.Steps {
		if step.ID == id {
			return step
		}
	}
	return nil
}

// Validate performs a best-effort structural validation of the plan. The
// returned slice is empty when the plan is sound; otherwise it contains
// human-readable error descriptions. Call expressions are not parsed here,
// only static properties are verified.
func (p *Plan) Validate() []error {
	var issues []error
	if p.Name == "" {
		issues = append(issues, fmt.Errorf("plan name is empty"))
	}
	if len(p.Steps) == 0 {
		issues = append(issues, fmt.Errorf("plan has no steps"))
	}

	seen := map[string]bool{}
	for i, step := range p.Steps {
		if step.Call == "" {
			issues = append(issues, fmt.Errorf("%v has no call expression", step.Label(i)))
		}
		if step.ID != "" {
			if seen[step.ID] {
				issues = append(issues, fmt.Errorf("duplicate step id %s", step.ID))
			}
			seen[step.ID] = true
		}
		if step.As != "" && !isIdentifier(step.As) {
			issues = append(issues, fmt.Errorf("%v binds invalid variable name %q", step.Label(i), step.As))
		}
	}

	names := map[string]bool{}
	for _, item := range p.Vars {
		if !isIdentifier(item.Name) {
			issues = append(issues, fmt.Errorf("invalid variable name %q", item.Name))
		}
		if names[item.Name] {
			issues = append(issues, fmt.Errorf("duplicate variable %s", item.Name))
		}
		names[item.Name] = true
	}

	if !p.Imports.IsUnique() {
		issues = append(issues, fmt.Errorf("duplicate import alias"))
	}
	return issues
}

func isIdentifier(candidate string) bool {
	if candidate == "" {
		return false
	}
	for i, r := range candidate {
		alpha := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		digit := r >= '0' && r <= '9'
		if !alpha && !(digit && i > 0) {
			return false
		}
	}
	return true
}
