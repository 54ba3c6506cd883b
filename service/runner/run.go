package runner

import (
	"fmt"
	"strings"
	"time"

	"github.com/viant/funcly/model/value"
	"github.com/viant/funcly/progress"
	"github.com/viant/toolbox"
)

// Run captures the outcome of a single plan execution.
type Run struct {
	ID        string
	Plan      string
	StartedAt time.Time
	Elapsed   time.Duration

	// Outcomes records one entry per attempted step, in plan order.
	// Steps after an aborting failure are not attempted and have no
	// outcome; the progress snapshot counts them as skipped.
	Outcomes []*Outcome

	// Scope holds the variable scope as it stood when the run finished
	Scope map[string]interface{}

	// Progress is the final counter snapshot of the run tracker
	Progress progress.Snapshot
}

// Outcome describes a single attempted step
type Outcome struct {
	Step     string
	Call     string
	Result   value.Value
	Rendered string
	Err      error
	Skipped  bool
	Elapsed  time.Duration
}

// Transcript renders the run as one line per attempted step, suitable
// for logs and demos.
func (r *Run) Transcript() string {
	var b strings.Builder
	for _, outcome := range r.Outcomes {
		switch {
		case outcome.Skipped:
			fmt.Fprintf(&b, "%s: %s ~ skipped\n", outcome.Step, outcome.Call)
		case outcome.Err != nil:
			fmt.Fprintf(&b, "%s: %s ! %v\n", outcome.Step, outcome.Call, outcome.Err)
		case outcome.Result.IsVoid():
			fmt.Fprintf(&b, "%s: %s\n", outcome.Step, outcome.Call)
		default:
			fmt.Fprintf(&b, "%s: %s = %s\n", outcome.Step, outcome.Call, outcome.Rendered)
		}
	}
	return b.String()
}

// Invocation is the event payload published for every plan call; all
// values are pre-rendered so that consumers need no access to the run.
type Invocation struct {
	RunID    string   `json:"runID"`
	Plan     string   `json:"plan,omitempty"`
	Step     string   `json:"step"`
	Function string   `json:"function"`
	Args     []string `json:"args,omitempty"`
	Result   string   `json:"result,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// renderValue produces the canonical text rendering of a result, used
// for expectation checks, transcripts and events. Void renders empty.
func renderValue(v value.Value) string {
	if v.IsVoid() {
		return ""
	}
	return toolbox.AsString(v.Interface())
}

func renderArgs(args []value.Value) []string {
	if len(args) == 0 {
		return nil
	}
	rendered := make([]string, 0, len(args))
	for _, arg := range args {
		rendered = append(rendered, renderValue(arg))
	}
	return rendered
}
