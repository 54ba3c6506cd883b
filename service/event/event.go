// Package event publishes invocation lifecycle events over pluggable
// queue vendors. Components subscribe with typed listeners; every typed
// event is additionally mirrored onto an untyped firehose queue.
package event

import (
	"time"

	"github.com/viant/funcly/internal/clock"
)

// Invocation lifecycle event types.
const (
	TypeCallStarted   = "call.started"
	TypeCallCompleted = "call.completed"
	TypeCallFailed    = "call.failed"
	TypeCallDenied    = "call.denied"
)

// Context identifies the invocation an event belongs to
type Context struct {
	RunID       string `json:"runID"`
	Step        string `json:"step"`
	EventType   string `json:"eventType"`
	Function    string `json:"function"`
	TimeTakenMs int    `json:"timeTakenMs"`
}

// Event carries a typed payload together with its invocation context
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

// NewEvent creates an event for the supplied invocation context
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
