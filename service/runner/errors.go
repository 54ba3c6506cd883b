package runner

import (
	"errors"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// ErrDenied marks a call skipped by the active execution policy
var ErrDenied = errors.New("denied by policy")

// ExpectationError reports a step whose rendered result did not match
// the expected text declared on the step.
type ExpectationError struct {
	Step     string
	Expected string
	Actual   string
	Diff     string
}

func (e *ExpectationError) Error() string {
	return fmt.Sprintf("%s: expectation mismatch\n%s", e.Step, e.Diff)
}

// newExpectationError builds an ExpectationError with a unified diff of
// the expected versus the actual rendering
func newExpectationError(step, expected, actual string) error {
	unified := difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	}
	diff, err := difflib.GetUnifiedDiffString(unified)
	if err != nil {
		diff = fmt.Sprintf("expected %q, actual %q", expected, actual)
	}
	return &ExpectationError{Step: step, Expected: expected, Actual: actual, Diff: diff}
}
