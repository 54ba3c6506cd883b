// Package registry implements a name-indexed registry of type-erased
// callables. Registration accepts ordinary Go functions and reduces them
// to the uniform callable form; invocation packs native arguments into
// values and dispatches by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/viant/funcly/erase"
	"github.com/viant/funcly/model/types"
)

// Registry maps names to type-erased callables. All methods are safe for
// concurrent use. Registering an already bound name replaces the previous
// entry; the last registration wins.
type Registry struct {
	mux        sync.RWMutex
	entries    map[string]*entry
	generation uint64
}

type entry struct {
	callable  types.Callable
	signature *types.Signature
}

// New creates an empty registry
func New() *Registry {
	return &Registry{entries: map[string]*entry{}}
}

// Register erases fn and binds it to name. See erase.Callable for the
// accepted function shapes.
func (r *Registry) Register(name string, fn interface{}) error {
	if name == "" {
		return fmt.Errorf("function name was empty")
	}
	callable, signature, err := erase.Callable(name, fn)
	if err != nil {
		return err
	}
	r.bind(name, callable, signature)
	return nil
}

// MustRegister registers fn and panics on an invalid registration
func (r *Registry) MustRegister(name string, fn interface{}) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// RegisterCallable binds an already erased callable with its signature,
// bypassing reflection. Used with the erase generic constructors and by
// adapters that build callables of their own.
func (r *Registry) RegisterCallable(name string, callable types.Callable, signature *types.Signature) error {
	if name == "" {
		return fmt.Errorf("function name was empty")
	}
	if callable == nil {
		return fmt.Errorf("function %q: nil callable", name)
	}
	if signature == nil {
		return fmt.Errorf("function %q: nil signature", name)
	}
	r.bind(name, callable, signature)
	return nil
}

func (r *Registry) bind(name string, callable types.Callable, signature *types.Signature) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.entries[name] = &entry{callable: callable, signature: signature}
	r.generation++
}

// Unregister removes name, reporting whether it was bound
func (r *Registry) Unregister(name string) bool {
	r.mux.Lock()
	defer r.mux.Unlock()
	if _, ok := r.entries[name]; !ok {
		return false
	}
	delete(r.entries, name)
	r.generation++
	return true
}

// Clear removes every registration
func (r *Registry) Clear() {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.entries = map[string]*entry{}
	r.generation++
}

// Has reports whether name is bound
func (r *Registry) Has(name string) bool {
	r.mux.RLock()
	defer r.mux.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// Size returns the number of bound names
func (r *Registry) Size() int {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return len(r.entries)
}

// Names returns the bound names. The result is sorted for stable output;
// callers must not rely on any relation to registration order.
func (r *Registry) Names() []string {
	r.mux.RLock()
	result := make([]string, 0, len(r.entries))
	for name := range r.entries {
		result = append(result, name)
	}
	r.mux.RUnlock()
	sort.Strings(result)
	return result
}

// Signature returns the declared signature, or nil when name is unknown
func (r *Registry) Signature(name string) *types.Signature {
	r.mux.RLock()
	defer r.mux.RUnlock()
	if bound, ok := r.entries[name]; ok {
		return bound.signature
	}
	return nil
}

// Signatures returns every declared signature ordered by name
func (r *Registry) Signatures() types.Signatures {
	names := r.Names()
	result := make(types.Signatures, 0, len(names))
	r.mux.RLock()
	defer r.mux.RUnlock()
	for _, name := range names {
		if bound, ok := r.entries[name]; ok {
			result = append(result, *bound.signature)
		}
	}
	return result
}

// Generation returns a counter that increments on every mutation. Callers
// caching resolved callables compare generations to detect staleness.
func (r *Registry) Generation() uint64 {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return r.generation
}

// Resolve returns the callable and signature bound to name together with
// the generation observed under the same lock; ok is false for an unknown
// name.
func (r *Registry) Resolve(name string) (types.Callable, *types.Signature, uint64, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	bound, ok := r.entries[name]
	if !ok {
		return nil, nil, r.generation, false
	}
	return bound.callable, bound.signature, r.generation, true
}
