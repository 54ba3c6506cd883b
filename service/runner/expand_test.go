package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type execInfo struct {
	Stdout string
	Status int
}

func TestExpand(t *testing.T) {
	scope := map[string]interface{}{
		"who":   "World",
		"count": 3,
		"ratio": 2.5,
		"flag":  true,
		"exec":  &execInfo{Stdout: "done", Status: 0},
		"run": map[string]interface{}{
			"Summary": map[string]interface{}{"total": 7},
			"labels":  map[string]string{"env": "dev"},
		},
	}

	testCases := []struct {
		description string
		text        string
		expect      interface{}
	}{
		{
			description: "no reference passes through",
			text:        "plain text",
			expect:      "plain text",
		},
		{
			description: "sole reference keeps type",
			text:        "$count",
			expect:      3,
		},
		{
			description: "interpolation stringifies",
			text:        "Hello, $who!",
			expect:      "Hello, World!",
		},
		{
			description: "numeric interpolation",
			text:        "count=$count ratio=$ratio flag=$flag",
			expect:      "count=3 ratio=2.5 flag=true",
		},
		{
			description: "struct field path",
			text:        "$exec.stdout",
			expect:      "done",
		},
		{
			description: "nested map path",
			text:        "$run.summary.total",
			expect:      7,
		},
		{
			description: "string map path",
			text:        "$run.labels.env",
			expect:      "dev",
		},
		{
			description: "trailing period stays outside the reference",
			text:        "Hello, $who.",
			expect:      "Hello, World.",
		},
		{
			description: "unresolved keeps token",
			text:        "Hello, $missing!",
			expect:      "Hello, $missing!",
		},
		{
			description: "unresolved sole reference keeps text",
			text:        "$missing",
			expect:      "$missing",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.EqualValues(t, testCase.expect, expand(testCase.text, scope))
		})
	}
}

func TestResolvePath(t *testing.T) {
	scope := map[string]interface{}{
		"exec": execInfo{Stdout: "ok", Status: 2},
	}
	resolved, ok := resolvePath(scope, "exec.Status")
	assert.True(t, ok)
	assert.Equal(t, 2, resolved)

	_, ok = resolvePath(scope, "exec.unknown")
	assert.False(t, ok)

	_, ok = resolvePath(scope, "missing")
	assert.False(t, ok)
}
