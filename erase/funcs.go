package erase

import (
	"context"
	"reflect"

	"github.com/viant/funcly/model/types"
	"github.com/viant/funcly/model/value"
)

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Func0 erases a no-argument function. Unlike the reflection path the
// generic constructors keep reflection off the invocation path entirely.
func Func0[R any](name string, fn func() R) (types.Callable, *types.Signature) {
	signature := &types.Signature{Name: name, Result: typeOf[R]()}
	callable := func(ctx context.Context, in []value.Value) (value.Value, error) {
		if len(in) != 0 {
			return value.Value{}, types.NewArityError(name, 0, len(in))
		}
		return value.Of(fn()), nil
	}
	return callable, signature
}

// Func1 erases a single-argument function
func Func1[A, R any](name string, fn func(A) R) (types.Callable, *types.Signature) {
	signature := &types.Signature{Name: name, Args: []reflect.Type{typeOf[A]()}, Result: typeOf[R]()}
	callable := func(ctx context.Context, in []value.Value) (value.Value, error) {
		if len(in) != 1 {
			return value.Value{}, types.NewArityError(name, 1, len(in))
		}
		a, err := value.As[A](in[0])
		if err != nil {
			return value.Value{}, types.NewArgumentMismatchError(name, 0, err)
		}
		return value.Of(fn(a)), nil
	}
	return callable, signature
}

// Func2 erases a two-argument function
func Func2[A, B, R any](name string, fn func(A, B) R) (types.Callable, *types.Signature) {
	signature := &types.Signature{Name: name, Args: []reflect.Type{typeOf[A](), typeOf[B]()}, Result: typeOf[R]()}
	callable := func(ctx context.Context, in []value.Value) (value.Value, error) {
		if len(in) != 2 {
			return value.Value{}, types.NewArityError(name, 2, len(in))
		}
		a, err := value.As[A](in[0])
		if err != nil {
			return value.Value{}, types.NewArgumentMismatchError(name, 0, err)
		}
		b, err := value.As[B](in[1])
		if err != nil {
			return value.Value{}, types.NewArgumentMismatchError(name, 1, err)
		}
		return value.Of(fn(a, b)), nil
	}
	return callable, signature
}

// Proc0 erases a no-argument procedure; its callable yields a void value
func Proc0(name string, fn func()) (types.Callable, *types.Signature) {
	signature := &types.Signature{Name: name}
	callable := func(ctx context.Context, in []value.Value) (value.Value, error) {
		if len(in) != 0 {
			return value.Value{}, types.NewArityError(name, 0, len(in))
		}
		fn()
		return value.Value{}, nil
	}
	return callable, signature
}

// Proc1 erases a single-argument procedure
func Proc1[A any](name string, fn func(A)) (types.Callable, *types.Signature) {
	signature := &types.Signature{Name: name, Args: []reflect.Type{typeOf[A]()}}
	callable := func(ctx context.Context, in []value.Value) (value.Value, error) {
		if len(in) != 1 {
			return value.Value{}, types.NewArityError(name, 1, len(in))
		}
		a, err := value.As[A](in[0])
		if err != nil {
			return value.Value{}, types.NewArgumentMismatchError(name, 0, err)
		}
		fn(a)
		return value.Value{}, nil
	}
	return callable, signature
}

// Proc2 erases a two-argument procedure
func Proc2[A, B any](name string, fn func(A, B)) (types.Callable, *types.Signature) {
	signature := &types.Signature{Name: name, Args: []reflect.Type{typeOf[A](), typeOf[B]()}}
	callable := func(ctx context.Context, in []value.Value) (value.Value, error) {
		if len(in) != 2 {
			return value.Value{}, types.NewArityError(name, 2, len(in))
		}
		a, err := value.As[A](in[0])
		if err != nil {
			return value.Value{}, types.NewArgumentMismatchError(name, 0, err)
		}
		b, err := value.As[B](in[1])
		if err != nil {
			return value.Value{}, types.NewArgumentMismatchError(name, 1, err)
		}
		fn(a, b)
		return value.Value{}, nil
	}
	return callable, signature
}
