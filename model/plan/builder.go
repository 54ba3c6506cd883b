package plan

// New creates a named, empty plan
func New(name string) *Plan {
	return &Plan{Name: name}
}

// WithDescription sets the plan description
func (p *Plan) WithDescription(description string) *Plan {
	p.Description = description
	return p
}

// WithImport declares a package alias for registered payload types
func (p *Plan) WithImport(pkg, pkgPath string) *Plan {
	p.Imports = append(p.Imports, &Import{Package: pkg, PkgPath: pkgPath})
	return p
}

// WithVar seeds a scope variable
func (p *Plan) WithVar(name string, aValue interface{}) *Plan {
	p.Vars = append(p.Vars, &Var{Name: name, Value: aValue})
	return p
}

// WithTypedVar seeds a scope variable converted into the named registered type
func (p *Plan) WithTypedVar(name, typeName string, aValue interface{}) *Plan {
	p.Vars = append(p.Vars, &Var{Name: name, Type: typeName, Value: aValue})
	return p
}

// AddStep appends a step with the supplied call expression and returns it
// for further chaining
func (p *Plan) AddStep(call string) *Step {
	step := &Step{Call: call}
	p.Steps = append(p.Steps, step)
	return step
}

// WithID names the step
func (s *Step) WithID(id string) *Step {
	s.ID = id
	return s
}

// WithAs binds the step result to a variable
func (s *Step) WithAs(name string) *Step {
	s.As = name
	return s
}

// WithExpect pins the rendered result the step must produce
func (s *Step) WithExpect(expected string) *Step {
	s.Expect = &expected
	return s
}
