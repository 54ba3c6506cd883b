package extension

import (
	"sync"

	"github.com/viant/funcly/model/types"
	"github.com/viant/x"
)

// DataTypeIniter lets an action service register its payload types when
// it is added to the actions registry
type DataTypeIniter interface {
	InitTypes(types *Types)
}

// Actions indexes action services by name and shares a type registry with
// them
type Actions struct {
	types    *Types
	services map[string]types.Service
	mux      sync.RWMutex
}

// Types returns the shared type registry
func (s *Actions) Types() *Types {
	return s.types
}

// Lookup returns a service by name, or nil
func (s *Actions) Lookup(name string) types.Service {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.services[name]
}

// Services returns the registered service names
func (s *Actions) Services() []string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	result := make([]string, 0, len(s.services))
	for name := range s.services {
		result = append(result, name)
	}
	return result
}

// Register registers a service, replacing any previous one of the same name
func (s *Actions) Register(service types.Service) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if initer, ok := service.(DataTypeIniter); ok {
		initer.InitTypes(s.types)
	}
	s.services[service.Name()] = service
}

// NewActions creates an actions registry seeded with the supplied types
func NewActions(goTypes ...*x.Type) *Actions {
	ret := &Actions{
		types:    NewTypes(),
		services: make(map[string]types.Service),
	}
	for _, t := range goTypes {
		if t != nil {
			ret.types.Register(t)
		}
	}
	return ret
}
