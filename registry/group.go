package registry

import (
	"context"
	"sort"
	"strings"

	"github.com/viant/funcly/model/types"
	"github.com/viant/funcly/model/value"
)

// Separator joins a group name and a function name in a qualified name.
const Separator = "."

// Qualify returns the qualified name of fn within group, i.e. math.add
func Qualify(group, name string) string {
	if group == "" {
		return name
	}
	return group + Separator + name
}

// Group is a named view over a registry. It holds no state of its own:
// registrations land in the underlying registry under qualified names, so
// a group survives only as long as at least one of its functions does.
type Group struct {
	name     string
	registry *Registry
}

// Group returns a view over all functions qualified with name
func (r *Registry) Group(name string) *Group {
	return &Group{name: name, registry: r}
}

// Groups returns the distinct group names, taken as the leading segment
// of every qualified name, in lexical order
func (r *Registry) Groups() []string {
	r.mux.RLock()
	seen := map[string]bool{}
	for name := range r.entries {
		if index := strings.Index(name, Separator); index > 0 {
			seen[name[:index]] = true
		}
	}
	r.mux.RUnlock()
	result := make([]string, 0, len(seen))
	for name := range seen {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// DropGroup unregisters every function in the named group, returning the
// number of removed registrations
func (r *Registry) DropGroup(name string) int {
	prefix := name + Separator
	r.mux.Lock()
	defer r.mux.Unlock()
	removed := 0
	for bound := range r.entries {
		if strings.HasPrefix(bound, prefix) {
			delete(r.entries, bound)
			removed++
		}
	}
	if removed > 0 {
		r.generation++
	}
	return removed
}

// Name returns the group name
func (g *Group) Name() string {
	return g.name
}

// Qualify returns the qualified name of fn within this group
func (g *Group) Qualify(name string) string {
	return Qualify(g.name, name)
}

// Register binds fn under the qualified name
func (g *Group) Register(name string, fn interface{}) error {
	return g.registry.Register(g.Qualify(name), fn)
}

// MustRegister registers fn and panics on an invalid registration
func (g *Group) MustRegister(name string, fn interface{}) {
	g.registry.MustRegister(g.Qualify(name), fn)
}

// RegisterCallable binds an already erased callable under the qualified name
func (g *Group) RegisterCallable(name string, callable types.Callable, signature *types.Signature) error {
	return g.registry.RegisterCallable(g.Qualify(name), callable, signature)
}

// Has reports whether name is bound within this group
func (g *Group) Has(name string) bool {
	return g.registry.Has(g.Qualify(name))
}

// Names returns the short names bound within this group, sorted
func (g *Group) Names() []string {
	prefix := g.name + Separator
	var result []string
	for _, name := range g.registry.Names() {
		if strings.HasPrefix(name, prefix) {
			result = append(result, name[len(prefix):])
		}
	}
	return result
}

// Size returns the number of functions bound within this group
func (g *Group) Size() int {
	return len(g.Names())
}

// Call invokes a group function with packed values
func (g *Group) Call(ctx context.Context, name string, args ...value.Value) (value.Value, error) {
	return g.registry.Call(ctx, g.Qualify(name), args...)
}

// CallVoid invokes a group function with native arguments, discarding any
// result
func (g *Group) CallVoid(ctx context.Context, name string, args ...interface{}) error {
	return g.registry.CallVoid(ctx, g.Qualify(name), args...)
}

// Unregister removes a group function, reporting whether it was bound
func (g *Group) Unregister(name string) bool {
	return g.registry.Unregister(g.Qualify(name))
}

// Clear unregisters every function in this group, returning the number of
// removed registrations
func (g *Group) Clear() int {
	return g.registry.DropGroup(g.name)
}
