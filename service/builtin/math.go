package builtin

import (
	"fmt"
	"math"

	"github.com/viant/funcly/registry"
)

// GroupMath qualifies the arithmetic builtins, i.e. math.add
const GroupMath = "math"

func registerMath(r *registry.Registry) error {
	return registerAll(r.Group(GroupMath), map[string]interface{}{
		"add":       func(a, b int64) int64 { return a + b },
		"sub":       func(a, b int64) int64 { return a - b },
		"mul":       func(a, b int64) int64 { return a * b },
		"div":       div,
		"square":    func(n int64) int64 { return n * n },
		"sqrt":      sqrt,
		"pow":       math.Pow,
		"abs":       abs,
		"max":       maxInt,
		"factorial": factorial,
	})
}

// div yields a float quotient, not a truncated integer one
func div(a, b int64) (float64, error) {
	if b == 0 {
		return 0, fmt.Errorf("division by zero")
	}
	return float64(a) / float64(b), nil
}

func sqrt(x float64) (float64, error) {
	if x < 0 {
		return 0, fmt.Errorf("square root of negative number %v", x)
	}
	return math.Sqrt(x), nil
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func maxInt(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// factorial caps at 20!, the largest factorial an int64 holds
func factorial(n int64) (int64, error) {
	if n < 0 {
		return 0, fmt.Errorf("factorial of negative number %v", n)
	}
	if n > 20 {
		return 0, fmt.Errorf("factorial of %v overflows int64", n)
	}
	result := int64(1)
	for i := int64(2); i <= n; i++ {
		result *= i
	}
	return result, nil
}
