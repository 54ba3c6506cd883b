package nop

import (
	"context"
	"reflect"

	"github.com/viant/funcly/model/types"
)

const name = "nop"

// Service performs no operation; it exists so that plans can carry
// placeholder steps.
type Service struct{}

type Input struct{}

// Output represents nop output
type Output struct {
}

// New creates a new nop service
func New() *Service {
	return &Service{}
}

// Name returns the service name
func (s *Service) Name() string {
	return name
}

// Methods returns the service methods
func (s *Service) Methods() types.Methods {
	return []types.Method{
		{
			Name:        "nop",
			Description: "Performs no operation and returns immediately.",
			Input:       reflect.TypeOf(&Input{}),
			Output:      reflect.TypeOf(&Output{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	return s.nop, nil
}

// does nothing
func (s *Service) nop(ctx context.Context, in, out interface{}) error {
	return nil
}
