package erase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/funcly/model/types"
	"github.com/viant/funcly/model/value"
)

func TestCallable_Invoke(t *testing.T) {
	testCases := []struct {
		name     string
		fn       interface{}
		args     []value.Value
		expected value.Value
	}{
		{
			name:     "two int arguments",
			fn:       func(a, b int) int { return a + b },
			args:     value.Values(15, 25),
			expected: value.Int(40),
		},
		{
			name:     "string argument",
			fn:       func(name string) string { return "Hello, " + name },
			args:     value.Values("World"),
			expected: value.String("Hello, World"),
		},
		{
			name:     "float argument",
			fn:       func(x float64) float64 { return x * x },
			args:     value.Values(1.5),
			expected: value.Float(2.25),
		},
		{
			name:     "bool argument",
			fn:       func(b bool) bool { return !b },
			args:     value.Values(true),
			expected: value.Bool(false),
		},
		{
			name:     "no arguments",
			fn:       func() int64 { return 7 },
			expected: value.Int(7),
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			callable, _, err := Callable("fn", testCase.fn)
			require.NoError(t, err)
			actual, err := callable(context.Background(), testCase.args)
			require.NoError(t, err)
			assert.EqualValues(t, testCase.expected, actual)
		})
	}
}

func TestCallable_Signature(t *testing.T) {
	_, signature, err := Callable("add", func(a, b int) int { return a + b })
	require.NoError(t, err)
	assert.Equal(t, "add", signature.Name)
	assert.Equal(t, 2, signature.Arity())
	assert.False(t, signature.Void())
	assert.Equal(t, "add(int, int) int", signature.String())

	_, signature, err = Callable("log", func(ctx context.Context, message string) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, signature.Arity())
	assert.True(t, signature.Void())
	assert.Equal(t, "log(string)", signature.String())
}

func TestCallable_Context(t *testing.T) {
	type key string
	var seen interface{}
	callable, _, err := Callable("probe", func(ctx context.Context) {
		seen = ctx.Value(key("tenant"))
	})
	require.NoError(t, err)
	_, err = callable(context.WithValue(context.Background(), key("tenant"), "acme"), nil)
	require.NoError(t, err)
	assert.Equal(t, "acme", seen)
}

func TestCallable_Error(t *testing.T) {
	div, _, err := Callable("div", func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return a / b, nil
	})
	require.NoError(t, err)

	actual, err := div(context.Background(), value.Values(10, 2))
	require.NoError(t, err)
	assert.EqualValues(t, value.Int(5), actual)

	_, err = div(context.Background(), value.Values(10, 0))
	assert.EqualError(t, err, "division by zero")
}

func TestCallable_Procedure(t *testing.T) {
	var captured []string
	callable, signature, err := Callable("append", func(item string) {
		captured = append(captured, item)
	})
	require.NoError(t, err)
	assert.True(t, signature.Void())
	actual, err := callable(context.Background(), value.Values("first"))
	require.NoError(t, err)
	assert.True(t, actual.IsVoid())
	assert.Equal(t, []string{"first"}, captured)
}

func TestCallable_ArgumentMismatch(t *testing.T) {
	callable, _, err := Callable("square", func(x int) int { return x * x })
	require.NoError(t, err)

	t.Run("arity", func(t *testing.T) {
		_, err := callable(context.Background(), value.Values(1, 2))
		var mismatch *types.ArgumentMismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, -1, mismatch.Index)
	})

	t.Run("kind", func(t *testing.T) {
		_, err := callable(context.Background(), value.Values("not a number"))
		var mismatch *types.ArgumentMismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, 0, mismatch.Index)
		var cause *value.MismatchError
		assert.True(t, errors.As(err, &cause))
	})
}

func TestCallable_OpaqueArgument(t *testing.T) {
	type request struct{ Query string }
	callable, signature, err := Callable("search", func(r request) string { return r.Query })
	require.NoError(t, err)
	assert.Equal(t, 1, signature.Arity())

	actual, err := callable(context.Background(), []value.Value{value.Any(request{Query: "books"})})
	require.NoError(t, err)
	assert.EqualValues(t, value.String("books"), actual)

	_, err = callable(context.Background(), value.Values("books"))
	var mismatch *types.ArgumentMismatchError
	require.True(t, errors.As(err, &mismatch))
}

func TestCallable_Reject(t *testing.T) {
	testCases := []struct {
		name string
		fn   interface{}
	}{
		{name: "nil", fn: nil},
		{name: "not a func", fn: 42},
		{name: "variadic", fn: func(values ...int) int { return 0 }},
		{name: "second return not error", fn: func() (int, string) { return 0, "" }},
		{name: "three returns", fn: func() (int, int, error) { return 0, 0, nil }},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, _, err := Callable("fn", testCase.fn)
			assert.Error(t, err)
		})
	}
}

func TestFuncs(t *testing.T) {
	t.Run("func2", func(t *testing.T) {
		callable, signature := Func2("add", func(a, b int64) int64 { return a + b })
		assert.Equal(t, "add(int64, int64) int64", signature.String())
		actual, err := callable(context.Background(), value.Values(15, 25))
		require.NoError(t, err)
		assert.EqualValues(t, value.Int(40), actual)
	})

	t.Run("func1", func(t *testing.T) {
		callable, _ := Func1("upper", strings.ToUpper)
		actual, err := callable(context.Background(), value.Values("abc"))
		require.NoError(t, err)
		assert.EqualValues(t, value.String("ABC"), actual)
	})

	t.Run("func0", func(t *testing.T) {
		callable, signature := Func0("answer", func() int64 { return 42 })
		assert.Equal(t, 0, signature.Arity())
		actual, err := callable(context.Background(), nil)
		require.NoError(t, err)
		assert.EqualValues(t, value.Int(42), actual)
	})

	t.Run("proc1", func(t *testing.T) {
		var last string
		callable, signature := Proc1("remember", func(s string) { last = s })
		assert.True(t, signature.Void())
		actual, err := callable(context.Background(), value.Values("kept"))
		require.NoError(t, err)
		assert.True(t, actual.IsVoid())
		assert.Equal(t, "kept", last)
	})

	t.Run("proc2", func(t *testing.T) {
		sum := int64(0)
		callable, _ := Proc2("accumulate", func(a, b int64) { sum = a + b })
		_, err := callable(context.Background(), value.Values(2, 3))
		require.NoError(t, err)
		assert.Equal(t, int64(5), sum)
	})

	t.Run("argument mismatch", func(t *testing.T) {
		callable, _ := Func1("upper", strings.ToUpper)
		_, err := callable(context.Background(), value.Values(1))
		var mismatch *types.ArgumentMismatchError
		require.True(t, errors.As(err, &mismatch))
		_, err = callable(context.Background(), nil)
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, -1, mismatch.Index)
	})
}
