// Package progress provides a lightweight tracker that keeps aggregated
// step counters for a single plan run. The tracker instance lives in the
// run context – every component that receives the context can atomically
// update the counters via the Delta helper without requiring a global
// registry.

package progress

import (
	"context"
	"sync"
	"time"
)

// Delta represents an incremental counter change emitted by the runner.
// The fields are signed and can be either positive or negative.
type Delta struct {
	Total     int
	Completed int
	Skipped   int
	Failed    int
	Running   int
	Pending   int
}

// Snapshot is a plain copy of the tracker state suitable for read-only
// inspection.
type Snapshot struct {
	// Identification – informative only, filled when the run starts.
	RunID     string
	Plan      string
	StartedAt time.Time

	// Counters – modified via Update().
	TotalSteps     int
	CompletedSteps int
	SkippedSteps   int
	FailedSteps    int
	RunningSteps   int
	PendingSteps   int
}

// Progress keeps aggregated step counters for a plan run. It is safe for
// concurrent use.
type Progress struct {
	mux      sync.Mutex
	state    Snapshot
	onChange func(Snapshot)
}

// Update applies the supplied delta to the tracker. When an onChange
// callback is registered it is invoked with a copy of the updated state
// outside the critical section so that the callback can perform slow
// operations without blocking the runner.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mux.Lock()
	p.state.TotalSteps += d.Total
	p.state.CompletedSteps += d.Completed
	p.state.SkippedSteps += d.Skipped
	p.state.FailedSteps += d.Failed
	p.state.RunningSteps += d.Running
	p.state.PendingSteps += d.Pending
	snapshot := p.state
	cb := p.onChange
	p.mux.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the tracker state.
func (p *Progress) Snapshot() Snapshot {
	if p == nil {
		return Snapshot{}
	}
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.state
}

// OnChange registers a callback invoked after every Update. Passing nil
// disables the callback; only one callback can be active at a time.
func (p *Progress) OnChange(cb func(Snapshot)) {
	if p == nil {
		return
	}
	p.mux.Lock()
	p.onChange = cb
	p.mux.Unlock()
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a new Progress tracker, embeds it in a derived
// context and returns both. The optional onChange callback is invoked
// after every counter update.
func WithNewTracker(ctx context.Context, runID, planName string, onChange func(Snapshot)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		state: Snapshot{
			RunID:     runID,
			Plan:      planName,
			StartedAt: time.Now(),
		},
		onChange: onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the Progress tracker from ctx; ok is false when the
// context carries no tracker.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// GetSnapshot combines FromContext and Snapshot; ok is false when the
// context carries no tracker.
func GetSnapshot(ctx context.Context) (Snapshot, bool) {
	if tr, ok := FromContext(ctx); ok {
		return tr.Snapshot(), true
	}
	return Snapshot{}, false
}

// UpdateCtx looks up the tracker in ctx, if any, and applies the delta.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
