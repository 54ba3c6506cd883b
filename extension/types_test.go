package extension

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/x"

	"github.com/viant/funcly/model/types"
)

type searchRequest struct {
	Query string
}

func TestTypes_Lookup(t *testing.T) {
	registry := NewTypes()
	registry.Register(x.NewType(reflect.TypeOf(searchRequest{})))

	resolved := registry.Lookup("searchRequest")
	require.NotNil(t, resolved)
	assert.Equal(t, reflect.TypeOf(searchRequest{}), resolved.Type)

	sliced := registry.Lookup("[]searchRequest")
	require.NotNil(t, sliced)
	assert.Equal(t, reflect.Slice, sliced.Type.Kind())
	assert.Equal(t, reflect.TypeOf(searchRequest{}), sliced.Type.Elem())

	mapped := registry.Lookup("map[string]searchRequest")
	require.NotNil(t, mapped)
	assert.Equal(t, reflect.Map, mapped.Type.Kind())

	assert.Nil(t, registry.Lookup("unknown"))
	assert.NotEmpty(t, registry.Imports())
}

type stubService struct {
	name string
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Methods() types.Methods {
	return types.Methods{{Name: "run"}}
}

func (s *stubService) Method(name string) (types.Executable, error) {
	if name != "run" {
		return nil, types.NewMethodNotFoundError(name)
	}
	return func(ctx context.Context, input, output interface{}) error { return nil }, nil
}

func (s *stubService) InitTypes(registry *Types) {
	registry.Register(x.NewType(reflect.TypeOf(searchRequest{})))
}

func TestActions_Register(t *testing.T) {
	actions := NewActions()
	actions.Register(&stubService{name: "search"})

	assert.NotNil(t, actions.Lookup("search"))
	assert.Nil(t, actions.Lookup("missing"))
	assert.Equal(t, []string{"search"}, actions.Services())
	assert.NotNil(t, actions.Types().Lookup("searchRequest"), "registered via DataTypeIniter")
}
