package builtin

import (
	"strings"

	"github.com/viant/funcly/registry"
)

// GroupStrings qualifies the text builtins, i.e. strings.upper
const GroupStrings = "strings"

func registerStrings(r *registry.Registry) error {
	return registerAll(r.Group(GroupStrings), map[string]interface{}{
		"upper":   strings.ToUpper,
		"lower":   strings.ToLower,
		"concat":  func(a, b string) string { return a + b },
		"length":  func(s string) int64 { return int64(len(s)) },
		"reverse": reverse,
	})
}

// reverse flips s rune-wise so multi-byte characters survive
func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
