package extension

import "github.com/viant/funcly/model/plan"

type Option func(*Types)

// WithImports scopes a lookup to additional package aliases, i.e. the
// imports declared by the plan being resolved
func WithImports(imports plan.Imports) Option {
	return func(t *Types) {
		t.imports = append(t.imports, imports...)
	}
}
