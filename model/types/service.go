package types

import (
	"context"
	"reflect"
)

// Executable is an action method: it reads the typed input and populates
// the typed output
type Executable func(ctx context.Context, input, output interface{}) error

// Method	action method descriptor
type Method struct {
	Name        string
	Description string
	Input       reflect.Type
	Output      reflect.Type
}

type Methods []Method

func (m Methods) Lookup(name string) *Method {
	for i := range m {
		method := &m[i]
		if method.Name == name {
			return method
		}
	}
	return nil
}

// Service groups related action methods under a service name. Services
// are mounted into a registry, one function per method, qualified with
// the service name.
type Service interface {
	Name() string
	Methods() Methods
	Method(name string) (Executable, error)
}

// Proxy decorates an action service
type Proxy func(base Service) Service
