package value

import (
	"reflect"
)

// Of packs a native Go value. Signed integers and small unsigned integers
// become KindInt, floats become KindFloat, strings and booleans map to
// their kinds, nil becomes void and a Value passes through unchanged.
// Everything else, including uint64 which may not fit a signed integer,
// is carried as an opaque KindAny payload.
func Of(v interface{}) Value {
	switch actual := v.(type) {
	case nil:
		return Value{}
	case Value:
		return actual
	case int:
		return Int(int64(actual))
	case int64:
		return Int(actual)
	case int32:
		return Int(int64(actual))
	case int16:
		return Int(int64(actual))
	case int8:
		return Int(int64(actual))
	case uint8:
		return Int(int64(actual))
	case uint16:
		return Int(int64(actual))
	case uint32:
		return Int(int64(actual))
	case float64:
		return Float(actual)
	case float32:
		return Float(float64(actual))
	case string:
		return String(actual)
	case bool:
		return Bool(actual)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return Int(int64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.String:
		return String(rv.String())
	case reflect.Bool:
		return Bool(rv.Bool())
	}
	return Any(v)
}

// Values packs a native argument list
func Values(args ...interface{}) []Value {
	if len(args) == 0 {
		return nil
	}
	result := make([]Value, len(args))
	for i, arg := range args {
		result[i] = Of(arg)
	}
	return result
}

// As extracts a value as T. Scalar kinds convert to any Go type of the
// matching kind class, including named types, with overflow detection for
// narrow integers. KindAny payloads require T to be assignable from the
// payload's dynamic type. Kinds never cross: an integer value does not
// become a float or a string.
func As[T any](v Value) (T, error) {
	var zero T
	switch target := interface{}(&zero).(type) {
	case *int64:
		x, err := v.AsInt()
		if err != nil {
			return zero, err
		}
		*target = x
		return zero, nil
	case *float64:
		x, err := v.AsFloat()
		if err != nil {
			return zero, err
		}
		*target = x
		return zero, nil
	case *string:
		x, err := v.AsString()
		if err != nil {
			return zero, err
		}
		*target = x
		return zero, nil
	case *bool:
		x, err := v.AsBool()
		if err != nil {
			return zero, err
		}
		*target = x
		return zero, nil
	}
	out, err := ToType(v, reflect.TypeOf(&zero).Elem())
	if err != nil {
		return zero, err
	}
	return out.Interface().(T), nil
}

// ToType extracts a value into the supplied reflect type, applying the
// same rules as As.
func ToType(v Value, t reflect.Type) (reflect.Value, error) {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		x, err := v.AsInt()
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(t).Elem()
		if out.OverflowInt(x) {
			return reflect.Value{}, NewMismatchError(t.String(), v.kind.String())
		}
		out.SetInt(x)
		return out, nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		x, err := v.AsInt()
		if err != nil {
			return reflect.Value{}, err
		}
		if x < 0 {
			return reflect.Value{}, NewMismatchError(t.String(), v.kind.String())
		}
		out := reflect.New(t).Elem()
		if out.OverflowUint(uint64(x)) {
			return reflect.Value{}, NewMismatchError(t.String(), v.kind.String())
		}
		out.SetUint(uint64(x))
		return out, nil
	case reflect.Float32, reflect.Float64:
		x, err := v.AsFloat()
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(t).Elem()
		out.SetFloat(x)
		return out, nil
	case reflect.String:
		x, err := v.AsString()
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(t).Elem()
		out.SetString(x)
		return out, nil
	case reflect.Bool:
		x, err := v.AsBool()
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(t).Elem()
		out.SetBool(x)
		return out, nil
	}
	payload := v.Interface()
	if payload == nil {
		if t.Kind() == reflect.Interface {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, NewMismatchError(t.String(), v.kind.String())
	}
	rv := reflect.ValueOf(payload)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, NewMismatchError(t.String(), rv.Type().String())
	}
	if t.Kind() == reflect.Interface {
		out := reflect.New(t).Elem()
		out.Set(rv)
		return out, nil
	}
	return rv, nil
}
