package builtin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/funcly/internal/clock"
	"github.com/viant/funcly/registry"
)

func newBuiltinRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	require.NoError(t, Register(r))
	return r
}

func TestRegister(t *testing.T) {
	r := newBuiltinRegistry(t)
	assert.ElementsMatch(t, []string{GroupMath, GroupStrings, GroupUtil}, r.Groups())
	assert.True(t, r.Has("math.add"))
	assert.True(t, r.Has("strings.upper"))
	assert.True(t, r.Has("util.print"))
}

func TestMathGroup(t *testing.T) {
	r := newBuiltinRegistry(t)
	ctx := context.Background()

	testCases := []struct {
		description string
		name        string
		args        []interface{}
		expect      int64
	}{
		{description: "add", name: "math.add", args: []interface{}{2, 3}, expect: 5},
		{description: "sub", name: "math.sub", args: []interface{}{2, 3}, expect: -1},
		{description: "mul", name: "math.mul", args: []interface{}{6, 7}, expect: 42},
		{description: "square", name: "math.square", args: []interface{}{7}, expect: 49},
		{description: "abs", name: "math.abs", args: []interface{}{-4}, expect: 4},
		{description: "max", name: "math.max", args: []interface{}{2, 9}, expect: 9},
		{description: "factorial", name: "math.factorial", args: []interface{}{5}, expect: 120},
		{description: "factorial of zero", name: "math.factorial", args: []interface{}{0}, expect: 1},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual, err := registry.CallAs[int64](ctx, r, testCase.name, testCase.args...)
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}

	quotient, err := registry.CallAs[float64](ctx, r, "math.div", 10, 4)
	require.NoError(t, err)
	assert.Equal(t, 2.5, quotient)

	root, err := registry.CallAs[float64](ctx, r, "math.sqrt", 16.0)
	require.NoError(t, err)
	assert.Equal(t, 4.0, root)

	power, err := registry.CallAs[float64](ctx, r, "math.pow", 2.0, 10.0)
	require.NoError(t, err)
	assert.Equal(t, 1024.0, power)

	_, err = registry.CallAs[float64](ctx, r, "math.div", 1, 0)
	assert.ErrorContains(t, err, "division by zero")

	_, err = registry.CallAs[float64](ctx, r, "math.sqrt", -1.0)
	assert.ErrorContains(t, err, "negative")

	_, err = registry.CallAs[int64](ctx, r, "math.factorial", -1)
	assert.ErrorContains(t, err, "negative")

	_, err = registry.CallAs[int64](ctx, r, "math.factorial", 21)
	assert.ErrorContains(t, err, "overflows")
}

func TestStringsGroup(t *testing.T) {
	r := newBuiltinRegistry(t)
	ctx := context.Background()

	testCases := []struct {
		description string
		name        string
		args        []interface{}
		expect      string
	}{
		{description: "upper", name: "strings.upper", args: []interface{}{"go"}, expect: "GO"},
		{description: "lower", name: "strings.lower", args: []interface{}{"GO"}, expect: "go"},
		{description: "concat", name: "strings.concat", args: []interface{}{"fun", "cly"}, expect: "funcly"},
		{description: "reverse", name: "strings.reverse", args: []interface{}{"abc"}, expect: "cba"},
		{description: "reverse multi byte", name: "strings.reverse", args: []interface{}{"héllo"}, expect: "olléh"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual, err := registry.CallAs[string](ctx, r, testCase.name, testCase.args...)
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}

	length, err := registry.CallAs[int64](ctx, r, "strings.length", "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(5), length)
}

func TestUtilGroup(t *testing.T) {
	r := newBuiltinRegistry(t)
	ctx := context.Background()

	even, err := registry.CallAs[bool](ctx, r, "util.is_even", 4)
	require.NoError(t, err)
	assert.True(t, even)

	odd, err := registry.CallAs[bool](ctx, r, "util.is_even", 3)
	require.NoError(t, err)
	assert.False(t, odd)

	fib, err := registry.CallAs[int64](ctx, r, "util.fibonacci", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(55), fib)

	_, err = registry.CallAs[int64](ctx, r, "util.fibonacci", -1)
	assert.ErrorContains(t, err, "negative")

	for i := 0; i < 20; i++ {
		drawn, err := registry.CallAs[int64](ctx, r, "util.random_int", 1, 6)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, drawn, int64(1))
		assert.LessOrEqual(t, drawn, int64(6))
	}
	pinned, err := registry.CallAs[int64](ctx, r, "util.random_int", 5, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), pinned)

	_, err = registry.CallAs[int64](ctx, r, "util.random_int", 9, 3)
	assert.ErrorContains(t, err, "invalid range")

	pinnedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock.NowFunc = func() time.Time { return pinnedTime }
	defer func() { clock.NowFunc = time.Now }()
	now, err := registry.CallAs[int64](ctx, r, "util.now_unix")
	require.NoError(t, err)
	assert.Equal(t, pinnedTime.Unix(), now)
}
