package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_IsAllowed(t *testing.T) {
	testCases := []struct {
		name     string
		policy   *Policy
		function string
		expected bool
	}{
		{name: "nil policy admits all", policy: nil, function: "math.add", expected: true},
		{name: "empty policy admits all", policy: &Policy{}, function: "math.add", expected: true},
		{name: "blocked exact", policy: &Policy{BlockList: []string{"math.add"}}, function: "math.add", expected: false},
		{name: "blocked case-insensitive", policy: &Policy{BlockList: []string{"Math.Add"}}, function: "math.add", expected: false},
		{name: "blocked group", policy: &Policy{BlockList: []string{"math.*"}}, function: "math.sqrt", expected: false},
		{name: "group block spares others", policy: &Policy{BlockList: []string{"math.*"}}, function: "strings.upper", expected: true},
		{name: "allow list admits listed", policy: &Policy{AllowList: []string{"strings.*"}}, function: "strings.upper", expected: true},
		{name: "allow list rejects unlisted", policy: &Policy{AllowList: []string{"strings.*"}}, function: "math.add", expected: false},
		{name: "block wins over allow", policy: &Policy{AllowList: []string{"math.add"}, BlockList: []string{"math.add"}}, function: "math.add", expected: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.policy.IsAllowed(testCase.function))
		})
	}
}

func TestPolicy_Context(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	p := &Policy{Mode: ModeDeny}
	ctx := WithPolicy(context.Background(), p)
	assert.Same(t, p, FromContext(ctx))
}

func TestPolicy_Config(t *testing.T) {
	assert.Nil(t, ToConfig(nil))
	assert.Nil(t, FromConfig(nil))

	p := &Policy{Mode: ModeAsk, AllowList: []string{"a"}, BlockList: []string{"b"}}
	restored := FromConfig(ToConfig(p))
	assert.Equal(t, p.Mode, restored.Mode)
	assert.Equal(t, p.AllowList, restored.AllowList)
	assert.Equal(t, p.BlockList, restored.BlockList)
	assert.Nil(t, restored.Ask)
}
