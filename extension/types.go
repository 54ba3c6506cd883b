package extension

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/viant/funcly/model/plan"
	"github.com/viant/x"
)

// Types indexes Go types by name so plans can declare payload variables
// without compiling against them. Registering a type records its package
// alias, which lets plans reference the short form, i.e. search.Request.
type Types struct {
	x.Registry
	imports plan.Imports
}

// Register adds a data type to the registry
func (t *Types) Register(dataType *x.Type) {
	if dataType.PkgPath != "" {
		if idx := strings.LastIndex(dataType.PkgPath, "/"); idx > 0 {
			pkgPath := dataType.PkgPath[:idx]
			if !t.imports.HasPkgPath(pkgPath) {
				t.imports = append(t.imports, &plan.Import{Package: dataType.PkgPath[idx+1:], PkgPath: dataType.PkgPath})
			}
		}
	}
	t.Registry.Register(dataType)
}

// Lookup resolves a type name, honouring a leading slice or map modifier
// and any import aliases supplied via options. It returns nil when the
// base type is unknown.
func (t *Types) Lookup(dataType string, options ...Option) *x.Type {
	scope := &Types{imports: t.imports}
	for _, opt := range options {
		opt(scope)
	}

	typeModifier := ""
	if idx := strings.LastIndex(dataType, "]"); idx != -1 {
		typeModifier = dataType[:idx+1]
		dataType = dataType[idx+1:]
	}

	if idx := strings.LastIndex(dataType, "."); idx != -1 {
		pkg := dataType[:idx]
		typeName := dataType[idx+1:]
		if pkgPath := scope.imports.PkgPath(pkg); pkgPath != "" {
			pkg = pkgPath
		}
		dataType = fmt.Sprintf("%s.%s", pkg, typeName)
	}
	ret := t.Registry.Lookup(dataType)
	if ret == nil {
		return nil
	}

	rType := ret.Type
	switch strings.TrimSpace(typeModifier) {
	case "[]":
		rType = reflect.SliceOf(rType)
	case "[][]":
		rType = reflect.SliceOf(reflect.SliceOf(rType))
	case "map[string]":
		rType = reflect.MapOf(reflect.TypeOf(""), rType)
	case "map[string][]":
		rType = reflect.MapOf(reflect.TypeOf(""), reflect.SliceOf(rType))
	}
	if rType != ret.Type {
		return x.NewType(rType)
	}
	return ret
}

// Imports returns the package aliases accumulated from registered types
func (t *Types) Imports() plan.Imports {
	return t.imports
}

// NewTypes creates a type registry
func NewTypes(options ...x.RegistryOption) *Types {
	return &Types{
		Registry: *x.NewRegistry(options...),
	}
}
