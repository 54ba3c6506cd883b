// Package erase reduces ordinary Go functions to the uniform callable
// form used by the registry. The reflection path accepts any fixed-arity
// function, with an optional leading context.Context and an optional
// trailing error, neither of which appears in the derived signature. The
// generic constructors in funcs.go cover the common arities without
// reflection on the invocation path.
package erase

import (
	"context"
	"fmt"
	"reflect"

	"github.com/viant/funcly/model/types"
	"github.com/viant/funcly/model/value"
)

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// Callable erases fn into the uniform callable form and derives its
// signature. Supported shapes:
//
//	func([ctx,] args...)
//	func([ctx,] args...) R
//	func([ctx,] args...) error
//	func([ctx,] args...) (R, error)
//
// Scalar parameters and results map to the value kinds; any other type is
// matched by exact payload identity at call time. Variadic functions are
// rejected.
func Callable(name string, fn interface{}) (types.Callable, *types.Signature, error) {
	if fn == nil {
		return nil, nil, fmt.Errorf("function %q: nil function", name)
	}
	rv := reflect.ValueOf(fn)
	rt := rv.Type()
	if rt.Kind() != reflect.Func {
		return nil, nil, fmt.Errorf("function %q: expected func, got %T", name, fn)
	}
	if rt.IsVariadic() {
		return nil, nil, fmt.Errorf("function %q: variadic functions are not supported", name)
	}

	ctxAware := rt.NumIn() > 0 && rt.In(0) == ctxType
	start := 0
	if ctxAware {
		start = 1
	}
	args := make([]reflect.Type, 0, rt.NumIn()-start)
	for i := start; i < rt.NumIn(); i++ {
		args = append(args, rt.In(i))
	}

	var result reflect.Type
	errAware := false
	switch rt.NumOut() {
	case 0:
	case 1:
		if rt.Out(0) == errType {
			errAware = true
		} else {
			result = rt.Out(0)
		}
	case 2:
		if rt.Out(1) != errType {
			return nil, nil, fmt.Errorf("function %q: second return value must be error, got %s", name, rt.Out(1))
		}
		result = rt.Out(0)
		errAware = true
	default:
		return nil, nil, fmt.Errorf("function %q: at most two return values are supported", name)
	}

	signature := &types.Signature{Name: name, Args: args, Result: result}
	callable := func(ctx context.Context, in []value.Value) (value.Value, error) {
		if len(in) != len(args) {
			return value.Value{}, types.NewArityError(name, len(args), len(in))
		}
		callArgs := make([]reflect.Value, 0, rt.NumIn())
		if ctxAware {
			if ctx == nil {
				ctx = context.Background()
			}
			callArgs = append(callArgs, reflect.ValueOf(ctx))
		}
		for i, arg := range in {
			typed, err := value.ToType(arg, args[i])
			if err != nil {
				return value.Value{}, types.NewArgumentMismatchError(name, i, err)
			}
			callArgs = append(callArgs, typed)
		}
		out := rv.Call(callArgs)
		if errAware {
			if errValue := out[len(out)-1]; !errValue.IsNil() {
				return value.Value{}, errValue.Interface().(error)
			}
		}
		if result == nil {
			return value.Value{}, nil
		}
		return value.Of(out[0].Interface()), nil
	}
	return callable, signature, nil
}
