// Package plan loads call-plan documents from YAML, keeps a
// location-keyed cache of parsed definitions and renders plans back into
// YAML with stable key order.
package plan

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/viant/funcly/internal/yml"
	"github.com/viant/funcly/model/plan"
	"github.com/viant/funcly/service/dao/plan/calls"
	"github.com/viant/funcly/service/meta"
)

// Service is the call-plan DAO
type Service struct {
	metaService *meta.Service
	cache       map[string]*plan.Plan
	mux         sync.RWMutex
}

// DecodeYAML decodes a plan from YAML or JSON bytes
func (s *Service) DecodeYAML(encoded []byte) (*plan.Plan, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(encoded, &node); err != nil {
		return nil, err
	}
	return s.ParsePlan("", &node)
}

// Load loads the plan at the supplied URL, serving repeated loads from the
// cache until Refresh discards the location.
func (s *Service) Load(ctx context.Context, URL string) (*plan.Plan, error) {
	if filepath.Ext(URL) == "" {
		URL += ".yaml"
	}
	s.mux.RLock()
	cached := s.cache[URL]
	s.mux.RUnlock()
	if cached != nil {
		return cached, nil
	}

	var node yaml.Node
	if err := s.metaService.Load(ctx, URL, &node); err != nil {
		return nil, fmt.Errorf("failed to load plan from %s: %w", URL, err)
	}
	aPlan, err := s.ParsePlan(URL, &node)
	if err != nil {
		return nil, err
	}
	s.mux.Lock()
	s.cache[URL] = aPlan
	s.mux.Unlock()
	return aPlan, nil
}

// Refresh discards the cached definition for the location, forcing the
// next Load to fetch it again.
func (s *Service) Refresh(location string) {
	if filepath.Ext(location) == "" {
		location += ".yaml"
	}
	s.mux.Lock()
	delete(s.cache, location)
	s.mux.Unlock()
}

// Upsert stores a parsed definition under the location, making it
// immediately available to Load without a fetch.
func (s *Service) Upsert(location string, aPlan *plan.Plan) {
	if filepath.Ext(location) == "" {
		location += ".yaml"
	}
	s.mux.Lock()
	s.cache[location] = aPlan
	s.mux.Unlock()
}

// ParsePlan converts a YAML document into a validated plan
func (s *Service) ParsePlan(URL string, node *yaml.Node) (*plan.Plan, error) {
	aPlan := &plan.Plan{
		SourceURL: URL,
		Name:      planNameFromURL(URL),
	}
	if err := parsePlan((*yml.Node)(node), aPlan); err != nil {
		return nil, fmt.Errorf("failed to parse plan from %s: %w", URL, err)
	}
	if aPlan.Name == "" {
		aPlan.Name = generateAnonymousName()
	}
	if issues := aPlan.Validate(); len(issues) > 0 {
		return nil, issues[0]
	}
	// Reject malformed call expressions at load time, not step run time
	for i, step := range aPlan.Steps {
		if _, err := calls.Parse([]byte(step.Call)); err != nil {
			return nil, fmt.Errorf("%v: %w", step.Label(i), err)
		}
	}
	return aPlan, nil
}

// planNameFromURL extracts the plan name from a URL (file name without extension)
func planNameFromURL(URL string) string {
	if URL == "" {
		return ""
	}
	base := filepath.Base(URL)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// parsePlan converts a YAML node tree into the plan model
func parsePlan(node *yml.Node, aPlan *plan.Plan) error {
	rootNode := node
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		rootNode = (*yml.Node)(node.Content[0])
	}
	return rootNode.Pairs(func(key string, valueNode *yml.Node) error {
		switch strings.ToLower(key) {
		case "name":
			aPlan.Name = valueNode.Text()
		case "description":
			aPlan.Description = valueNode.Text()
		case "imports", "import":
			if err := valueNode.Pairs(func(alias string, pathNode *yml.Node) error {
				aPlan.Imports = append(aPlan.Imports, &plan.Import{Package: alias, PkgPath: pathNode.Text()})
				return nil
			}); err != nil {
				return fmt.Errorf("failed to parse imports: %w", err)
			}
		case "vars":
			vars, err := parseVars(valueNode)
			if err != nil {
				return fmt.Errorf("failed to parse vars: %w", err)
			}
			aPlan.Vars = vars
		case "steps":
			steps, err := parseSteps(valueNode)
			if err != nil {
				return fmt.Errorf("failed to parse steps: %w", err)
			}
			aPlan.Steps = steps
		}
		return nil
	})
}

// parseVars accepts both the mapping shorthand (name: value) and the
// sequence form with name/type/value keys
func parseVars(node *yml.Node) (plan.Vars, error) {
	var vars plan.Vars
	switch node.Kind {
	case yaml.MappingNode:
		if err := node.Pairs(func(name string, valueNode *yml.Node) error {
			vars = append(vars, &plan.Var{Name: name, Value: valueNode.Interface()})
			return nil
		}); err != nil {
			return nil, err
		}
	case yaml.SequenceNode:
		if err := node.Items(func(index int, item *yml.Node) error {
			aVar := &plan.Var{}
			if err := item.Pairs(func(key string, valueNode *yml.Node) error {
				switch strings.ToLower(key) {
				case "name":
					aVar.Name = valueNode.Text()
				case "type":
					aVar.Type = valueNode.Text()
				case "value":
					aVar.Value = valueNode.Interface()
				}
				return nil
			}); err != nil {
				return err
			}
			vars = append(vars, aVar)
			return nil
		}); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("vars should be a mapping or a sequence")
	}
	return vars, nil
}

// parseSteps accepts scalar shorthand items holding a bare call expression
// next to the mapping form with id/call/as/expect keys
func parseSteps(node *yml.Node) ([]*plan.Step, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("steps should be a sequence")
	}
	var steps []*plan.Step
	err := node.Items(func(index int, item *yml.Node) error {
		if item.Kind == yaml.ScalarNode {
			steps = append(steps, &plan.Step{Call: item.Value})
			return nil
		}
		step := &plan.Step{}
		if err := item.Pairs(func(key string, valueNode *yml.Node) error {
			switch strings.ToLower(key) {
			case "id":
				step.ID = valueNode.Text()
			case "call":
				step.Call = valueNode.Text()
			case "as":
				step.As = valueNode.Text()
			case "expect":
				expected := valueNode.Text()
				step.Expect = &expected
			}
			return nil
		}); err != nil {
			return err
		}
		steps = append(steps, step)
		return nil
	})
	return steps, err
}

// EncodeYAML renders the plan as a YAML document with stable key order,
// suitable for Upsert round-trips and for persisting programmatic plans.
func (s *Service) EncodeYAML(aPlan *plan.Plan) ([]byte, error) {
	if aPlan == nil {
		return nil, fmt.Errorf("plan was nil")
	}
	root := (*yml.Node)(yml.NewMap())
	root.Put("name", aPlan.Name)
	if aPlan.Description != "" {
		root.Put("description", aPlan.Description)
	}
	if len(aPlan.Imports) > 0 {
		imports := (*yml.Node)(yml.NewMap())
		for _, anImport := range aPlan.Imports {
			imports.Put(anImport.Package, anImport.PkgPath)
		}
		root.Put("imports", imports)
	}
	if len(aPlan.Vars) > 0 {
		vars := (*yml.Node)(yml.NewSlice())
		for _, aVar := range aPlan.Vars {
			item := (*yml.Node)(yml.NewMap())
			item.Put("name", aVar.Name)
			if aVar.Type != "" {
				item.Put("type", aVar.Type)
			}
			if aVar.Value != nil {
				item.Put("value", aVar.Value)
			}
			vars.Append(item)
		}
		root.Put("vars", vars)
	}
	steps := (*yml.Node)(yml.NewSlice())
	for _, step := range aPlan.Steps {
		item := (*yml.Node)(yml.NewMap())
		if step.ID != "" {
			item.Put("id", step.ID)
		}
		item.Put("call", step.Call)
		if step.As != "" {
			item.Put("as", step.As)
		}
		if step.Expect != nil {
			item.Put("expect", *step.Expect)
		}
		steps.Append(item)
	}
	root.Put("steps", steps)
	return yaml.Marshal((*yaml.Node)(root))
}

// New creates a plan DAO
func New(opts ...Option) *Service {
	ret := &Service{
		metaService: meta.New(afs.New(), ""),
		cache:       make(map[string]*plan.Plan),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
