// Package action binds action services into a registry. Every service
// method is mounted as a callable qualified with the service name, i.e.
// printer.print; the method input is built from a single argument via
// structology conversion, so callers can pass a decoded map or a typed
// struct interchangeably.
package action

import (
	"context"
	"fmt"
	"reflect"

	"github.com/viant/funcly/extension"
	"github.com/viant/funcly/model/types"
	"github.com/viant/funcly/model/value"
	"github.com/viant/funcly/registry"
	"github.com/viant/structology/conv"
)

// Mounter registers action service methods as registry functions.
type Mounter struct {
	registry  *registry.Registry
	converter *conv.Converter
}

// NewMounter creates a mounter bound to the supplied registry.
func NewMounter(aRegistry *registry.Registry) *Mounter {
	options := conv.DefaultOptions()
	options.ClonePointerData = true
	options.IgnoreUnmapped = true
	options.AccessUnexported = true
	return &Mounter{
		registry:  aRegistry,
		converter: conv.NewConverter(options),
	}
}

// MountAll mounts every service held by the actions registry.
func (m *Mounter) MountAll(actions *extension.Actions) error {
	for _, name := range actions.Services() {
		if err := m.Mount(actions.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

// Mount registers one function per service method, replacing previous
// bindings of the same qualified name.
func (m *Mounter) Mount(service types.Service) error {
	if service == nil {
		return fmt.Errorf("action service was empty")
	}
	for _, method := range service.Methods() {
		executable, err := service.Method(method.Name)
		if err != nil {
			return fmt.Errorf("failed to mount %v.%v: %w", service.Name(), method.Name, err)
		}
		qualified := service.Name() + "." + method.Name
		callable := m.callable(qualified, method, executable)
		if err := m.registry.RegisterCallable(qualified, callable, methodSignature(qualified, method)); err != nil {
			return err
		}
	}
	return nil
}

// callable adapts an action method to the registry calling convention.
// The method accepts zero arguments or a single payload converted into
// the input type; an empty output struct yields a void result.
func (m *Mounter) callable(qualified string, method types.Method, executable types.Executable) types.Callable {
	voidResult := method.Output == nil || isEmptyStruct(method.Output)
	return func(ctx context.Context, args []value.Value) (value.Value, error) {
		if len(args) > 1 {
			return value.Void(), types.NewArityError(qualified, 1, len(args))
		}
		var payload interface{}
		if len(args) == 1 {
			payload = args[0].Interface()
		}
		input, err := m.typedValue(method.Input, payload)
		if err != nil {
			return value.Void(), types.NewArgumentMismatchError(qualified, 0, err)
		}
		output, err := m.typedValue(method.Output, nil)
		if err != nil {
			return value.Void(), err
		}
		if err := executable(ctx, input, output); err != nil {
			return value.Void(), err
		}
		if voidResult {
			return value.Void(), nil
		}
		return value.Any(output), nil
	}
}

// typedValue builds a new instance of rType populated from src, i.e. a
// yaml-decoded map converted into the method input struct
func (m *Mounter) typedValue(rType reflect.Type, src interface{}) (interface{}, error) {
	if rType == nil {
		return nil, nil
	}
	instance := newInstancePtr(rType)
	if src == nil {
		return instance, nil
	}
	if err := m.converter.Convert(src, instance); err != nil {
		return nil, err
	}
	return instance, nil
}

func newInstancePtr(rType reflect.Type) interface{} {
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	return reflect.New(rType).Interface()
}

func methodSignature(qualified string, method types.Method) *types.Signature {
	signature := &types.Signature{Name: qualified}
	if method.Input != nil {
		signature.Args = []reflect.Type{method.Input}
	}
	if method.Output != nil && !isEmptyStruct(method.Output) {
		signature.Result = method.Output
	}
	return signature
}

func isEmptyStruct(rType reflect.Type) bool {
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	return rType.Kind() == reflect.Struct && rType.NumField() == 0
}
