package builtin

import (
	"fmt"
	"math/rand/v2"

	"github.com/viant/funcly/internal/clock"
	"github.com/viant/funcly/registry"
)

// GroupUtil qualifies the utility builtins, i.e. util.now_unix
const GroupUtil = "util"

func registerUtil(r *registry.Registry) error {
	return registerAll(r.Group(GroupUtil), map[string]interface{}{
		"is_even":    func(n int64) bool { return n%2 == 0 },
		"fibonacci":  fibonacci,
		"random_int": randomInt,
		"now_unix":   func() int64 { return clock.Now().Unix() },
		"print":      func(message interface{}) { fmt.Println(message) },
	})
}

// fibonacci caps at the 92nd element, the largest an int64 holds
func fibonacci(n int64) (int64, error) {
	if n < 0 {
		return 0, fmt.Errorf("fibonacci of negative number %v", n)
	}
	if n > 92 {
		return 0, fmt.Errorf("fibonacci of %v overflows int64", n)
	}
	a, b := int64(0), int64(1)
	for i := int64(0); i < n; i++ {
		a, b = b, a+b
	}
	return a, nil
}

// randomInt draws uniformly from the inclusive [min, max] range
func randomInt(min, max int64) (int64, error) {
	if min > max {
		return 0, fmt.Errorf("invalid range [%v, %v]", min, max)
	}
	span := max - min + 1
	if span <= 0 {
		return 0, fmt.Errorf("range [%v, %v] exceeds int64 span", min, max)
	}
	return min + rand.Int64N(span), nil
}
