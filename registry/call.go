package registry

import (
	"context"

	"github.com/viant/funcly/model/types"
	"github.com/viant/funcly/model/value"
)

// Call invokes the function bound to name with packed values. The callable
// runs outside the registry lock, so invoked functions may themselves
// register, unregister or call other functions.
func (r *Registry) Call(ctx context.Context, name string, args ...value.Value) (value.Value, error) {
	callable, _, _, ok := r.Resolve(name)
	if !ok {
		return value.Value{}, types.NewNotFoundError(name)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return callable(ctx, args)
}

// CallVoid invokes the function bound to name with native arguments,
// discarding any result. Success is a nil error; a valued function called
// this way simply has its result dropped.
func (r *Registry) CallVoid(ctx context.Context, name string, args ...interface{}) error {
	_, err := r.Call(ctx, name, value.Values(args...)...)
	return err
}

// TryCallVoid reports whether the call succeeded, collapsing an unknown
// name, mismatched arguments and a function error alike into false.
// Success of a void function is distinct from "no value": it reports true.
func (r *Registry) TryCallVoid(ctx context.Context, name string, args ...interface{}) bool {
	return r.CallVoid(ctx, name, args...) == nil
}

// CallAs invokes the function bound to name with native arguments and
// extracts the result as T. A result that does not fit T fails with
// *types.TypeMismatchError after the function has already run.
func CallAs[T any](ctx context.Context, r *Registry, name string, args ...interface{}) (T, error) {
	var zero T
	result, err := r.Call(ctx, name, value.Values(args...)...)
	if err != nil {
		return zero, err
	}
	out, err := value.As[T](result)
	if err != nil {
		return zero, types.NewTypeMismatchError(name, err)
	}
	return out, nil
}

// TryCallAs is CallAs with every failure collapsed into ok=false
func TryCallAs[T any](ctx context.Context, r *Registry, name string, args ...interface{}) (T, bool) {
	out, err := CallAs[T](ctx, r, name, args...)
	return out, err == nil
}
