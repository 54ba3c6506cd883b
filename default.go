package funcly

import (
	"context"
	"sync"

	"github.com/viant/funcly/model/value"
	"github.com/viant/funcly/registry"
)

var (
	defaultMux      sync.Mutex
	defaultRegistry *registry.Registry
)

// Default returns the shared registry, creating it on first use. The
// instance is plain – no builtin groups – so package-level registrations
// see exactly what they put in. Prefer an explicit registry owned by the
// caller; the shared instance exists for small programs and tests.
func Default() *registry.Registry {
	defaultMux.Lock()
	defer defaultMux.Unlock()
	if defaultRegistry == nil {
		defaultRegistry = registry.New()
	}
	return defaultRegistry
}

// ResetDefault discards the shared registry; the next Default call
// creates a fresh one. Intended for tests.
func ResetDefault() {
	defaultMux.Lock()
	defer defaultMux.Unlock()
	defaultRegistry = nil
}

// Register binds fn under name in the shared registry
func Register(name string, fn interface{}) error {
	return Default().Register(name, fn)
}

// MustRegister registers fn in the shared registry, panicking on an
// invalid registration
func MustRegister(name string, fn interface{}) {
	Default().MustRegister(name, fn)
}

// Has reports whether name is bound in the shared registry
func Has(name string) bool {
	return Default().Has(name)
}

// Names returns the sorted names bound in the shared registry
func Names() []string {
	return Default().Names()
}

// Unregister removes name from the shared registry, reporting whether it
// was bound
func Unregister(name string) bool {
	return Default().Unregister(name)
}

// Call invokes a shared-registry function with packed values
func Call(ctx context.Context, name string, args ...value.Value) (value.Value, error) {
	return Default().Call(ctx, name, args...)
}

// CallAs invokes a shared-registry function with native arguments and
// extracts the result as T
func CallAs[T any](ctx context.Context, name string, args ...interface{}) (T, error) {
	return registry.CallAs[T](ctx, Default(), name, args...)
}

// TryCallAs is CallAs with every failure collapsed into ok=false
func TryCallAs[T any](ctx context.Context, name string, args ...interface{}) (T, bool) {
	return registry.TryCallAs[T](ctx, Default(), name, args...)
}

// CallVoid invokes a shared-registry function with native arguments,
// discarding any result
func CallVoid(ctx context.Context, name string, args ...interface{}) error {
	return Default().CallVoid(ctx, name, args...)
}

// TryCallVoid reports whether the call succeeded
func TryCallVoid(ctx context.Context, name string, args ...interface{}) bool {
	return Default().TryCallVoid(ctx, name, args...)
}
