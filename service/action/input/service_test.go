package input

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestService_Ask(t *testing.T) {
	testCases := []struct {
		description string
		input       *AskInput
		typed       string
		expected    string
	}{
		{
			description: "typed answer wins",
			input:       &AskInput{Message: "Your name?", Default: "anon"},
			typed:       "Bob\n",
			expected:    "Bob",
		},
		{
			description: "empty line falls back to default",
			input:       &AskInput{Message: "Your city?", Default: "NYC"},
			typed:       "\n",
			expected:    "NYC",
		},
		{
			description: "EOF counts as empty answer",
			input:       &AskInput{Message: "Anything?", Default: "nothing"},
			typed:       "",
			expected:    "nothing",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			out := new(bytes.Buffer)
			srv := NewWithIO(strings.NewReader(testCase.typed), out)
			executable, err := srv.Method("ask")
			assert.NoError(t, err)
			output := &AskOutput{}
			err = executable(context.Background(), testCase.input, output)
			assert.NoError(t, err)
			assert.EqualValues(t, testCase.expected, output.Text)
			assert.Contains(t, out.String(), strings.TrimSpace(testCase.input.Message))
		})
	}
}

func TestService_Confirm(t *testing.T) {
	testCases := []struct {
		description string
		input       *ConfirmInput
		typed       string
		expected    bool
	}{
		{
			description: "yes approves",
			input:       &ConfirmInput{Message: "Proceed?"},
			typed:       "yes\n",
			expected:    true,
		},
		{
			description: "short y approves",
			input:       &ConfirmInput{Message: "Proceed?"},
			typed:       "Y\n",
			expected:    true,
		},
		{
			description: "anything else denies",
			input:       &ConfirmInput{Message: "Proceed?", Default: true},
			typed:       "maybe\n",
			expected:    false,
		},
		{
			description: "empty line takes the default",
			input:       &ConfirmInput{Message: "Proceed?", Default: true},
			typed:       "\n",
			expected:    true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			out := new(bytes.Buffer)
			srv := NewWithIO(strings.NewReader(testCase.typed), out)
			executable, err := srv.Method("confirm")
			assert.NoError(t, err)
			output := &ConfirmOutput{}
			err = executable(context.Background(), testCase.input, output)
			assert.NoError(t, err)
			assert.EqualValues(t, testCase.expected, output.Approved)
		})
	}
}

func TestService_UnknownMethod(t *testing.T) {
	srv := New()
	_, err := srv.Method("shout")
	assert.Error(t, err)
}
