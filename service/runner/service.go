// Package runner executes call plans against a registry. The service
// resolves step arguments from the run scope, gates every call through
// the optional execution policy, emits tracing spans, progress deltas
// and lifecycle events, and after the registered function runs calls an
// optional listener that can observe the data that flew through the step.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"
	"sync"

	"github.com/viant/funcly/extension"
	"github.com/viant/funcly/internal/clock"
	"github.com/viant/funcly/internal/idgen"
	"github.com/viant/funcly/model/plan"
	"github.com/viant/funcly/model/types"
	"github.com/viant/funcly/model/value"
	"github.com/viant/funcly/policy"
	"github.com/viant/funcly/progress"
	"github.com/viant/funcly/registry"
	"github.com/viant/funcly/service/dao/plan/calls"
	"github.com/viant/funcly/service/event"
	"github.com/viant/funcly/tracing"
	"github.com/viant/structology/conv"
)

// Listener is invoked once a step call completes (regardless of whether
// it returned an error or not). Implementations can log, collect metrics
// or perform any other side-effects they require.
//
// For convenience the listener is defined as a function type rather than
// an interface; users can therefore pass a plain function literal when
// customising the runner.
type Listener func(step *plan.Step, args []value.Value, result value.Value, err error)

// StdoutListener prints every executed call with its rendered result or
// error to standard output.
func StdoutListener(step *plan.Step, args []value.Value, result value.Value, err error) {
	if step == nil {
		return
	}
	if err != nil {
		fmt.Printf("%v ! %v\n", step.Call, err)
		return
	}
	if result.IsVoid() {
		fmt.Println(step.Call)
		return
	}
	fmt.Printf("%v = %v\n", step.Call, renderValue(result))
}

// Option is used to customise the runner instance.
type Option func(*service)

// WithListener overrides the listener invoked after every executed call.
// Passing nil disables the callback entirely.
func WithListener(l Listener) Option {
	return func(s *service) {
		s.listener = l
	}
}

// WithEventService attaches an event service; the runner publishes an
// Invocation event for every call lifecycle transition.
func WithEventService(events *event.Service) Option {
	return func(s *service) {
		s.events = events
	}
}

// WithTypes attaches the type registry used to convert typed plan vars
func WithTypes(types *extension.Types) Option {
	return func(s *service) {
		s.types = types
	}
}

// WithProgressListener registers a callback invoked after every progress
// counter update of runs started without an ambient tracker.
func WithProgressListener(onChange func(progress.Snapshot)) Option {
	return func(s *service) {
		s.onProgress = onChange
	}
}

// Service executes call plans and ad-hoc call expressions.
type Service interface {
	// RunPlan executes the plan steps in order. The optional input map
	// overlays the plan vars in the initial scope. A failing step aborts
	// the run; the partial run is returned along with the error.
	RunPlan(ctx context.Context, aPlan *plan.Plan, input map[string]interface{}) (*Run, error)

	// Eval parses and executes a single call expression against scope
	Eval(ctx context.Context, expression string, scope map[string]interface{}) (value.Value, error)
}

// service is the concrete implementation of Service.
type service struct {
	registry   *registry.Registry
	types      *extension.Types
	converter  *conv.Converter
	events     *event.Service
	listener   Listener
	onProgress func(progress.Snapshot)

	// resolved callables, invalidated whenever the registry mutates
	mux        sync.Mutex
	resolved   map[string]types.Callable
	generation uint64
}

// RunPlan executes a plan sequentially.
func (s *service) RunPlan(ctx context.Context, aPlan *plan.Plan, input map[string]interface{}) (*Run, error) {
	if aPlan == nil {
		return nil, fmt.Errorf("plan was empty")
	}
	if issues := aPlan.Validate(); len(issues) > 0 {
		return nil, fmt.Errorf("invalid plan %v: %w", aPlan.Name, errors.Join(issues...))
	}

	run := &Run{ID: idgen.New(), Plan: aPlan.Name, StartedAt: clock.Now()}
	scope, err := s.seedScope(aPlan)
	if err != nil {
		return nil, err
	}
	for k, v := range input {
		scope[k] = v
	}
	run.Scope = scope

	tracker, ok := progress.FromContext(ctx)
	if !ok {
		ctx, tracker = progress.WithNewTracker(ctx, run.ID, aPlan.Name, s.onProgress)
	}
	tracker.Update(progress.Delta{Total: len(aPlan.Steps), Pending: len(aPlan.Steps)})

	var failure error
	for i, step := range aPlan.Steps {
		outcome, err := s.runStep(ctx, run, step, i, scope)
		run.Outcomes = append(run.Outcomes, outcome)
		if err != nil {
			failure = err
			if remaining := len(aPlan.Steps) - i - 1; remaining > 0 {
				tracker.Update(progress.Delta{Pending: -remaining, Skipped: remaining})
			}
			break
		}
	}

	run.Elapsed = clock.Now().Sub(run.StartedAt)
	run.Progress = tracker.Snapshot()
	if failure != nil {
		return run, fmt.Errorf("plan %v failed: %w", aPlan.Name, failure)
	}
	return run, nil
}

// Eval executes a single call expression, i.e. math.add(1, $base).
func (s *service) Eval(ctx context.Context, expression string, scope map[string]interface{}) (value.Value, error) {
	parsed, err := calls.Parse([]byte(expression))
	if err != nil {
		return value.Void(), err
	}
	if scope == nil {
		scope = map[string]interface{}{}
	}
	args, err := resolveArgs(parsed, scope)
	if err != nil {
		return value.Void(), err
	}
	if !allowed(ctx, parsed.Name, args) {
		return value.Void(), fmt.Errorf("%v: %w", parsed.Name, ErrDenied)
	}
	ctx, span := tracing.StartSpan(ctx, parsed.Name, "INTERNAL")
	result, err := s.call(ctx, parsed.Name, args)
	tracing.EndSpan(span, err)
	return result, err
}

// runStep executes one step. The returned error is non-nil only for
// failures that abort the run; a policy denial records a skipped outcome
// and lets the run continue.
func (s *service) runStep(ctx context.Context, run *Run, step *plan.Step, index int, scope map[string]interface{}) (*Outcome, error) {
	label := step.Label(index)
	outcome := &Outcome{Step: label, Call: step.Call}

	parsed, err := calls.Parse([]byte(step.Call))
	if err != nil {
		outcome.Err = err
		return outcome, fmt.Errorf("%s: %w", label, err)
	}
	args, err := resolveArgs(parsed, scope)
	if err != nil {
		outcome.Err = err
		return outcome, fmt.Errorf("%s: %w", label, err)
	}
	inv := &Invocation{RunID: run.ID, Plan: run.Plan, Step: label, Function: parsed.Name, Args: renderArgs(args)}

	if !allowed(ctx, parsed.Name, args) {
		outcome.Skipped = true
		outcome.Err = ErrDenied
		progress.UpdateCtx(ctx, progress.Delta{Pending: -1, Skipped: 1})
		inv.Error = ErrDenied.Error()
		s.publish(ctx, event.TypeCallDenied, inv, 0)
		return outcome, nil
	}

	progress.UpdateCtx(ctx, progress.Delta{Pending: -1, Running: 1})
	ctx, span := tracing.StartSpan(ctx, parsed.Name, "INTERNAL")
	span.WithAttributes(map[string]string{"run.id": run.ID, "step": label, "function": parsed.Name})
	s.publish(ctx, event.TypeCallStarted, inv, 0)

	started := clock.Now()
	result, err := s.call(ctx, parsed.Name, args)
	outcome.Elapsed = clock.Now().Sub(started)
	tracing.EndSpan(span, err)

	outcome.Result = result
	outcome.Rendered = renderValue(result)
	if err == nil && step.Expect != nil && outcome.Rendered != *step.Expect {
		err = newExpectationError(label, *step.Expect, outcome.Rendered)
	}
	outcome.Err = err

	tookMs := int(outcome.Elapsed.Milliseconds())
	if err != nil {
		progress.UpdateCtx(ctx, progress.Delta{Running: -1, Failed: 1})
		inv.Error = err.Error()
		s.publish(ctx, event.TypeCallFailed, inv, tookMs)
		if s.listener != nil {
			s.listener(step, args, result, err)
		}
		return outcome, fmt.Errorf("%s: %w", label, err)
	}

	if step.As != "" {
		scope[step.As] = result.Interface()
	}
	progress.UpdateCtx(ctx, progress.Delta{Running: -1, Completed: 1})
	inv.Result = outcome.Rendered
	s.publish(ctx, event.TypeCallCompleted, inv, tookMs)
	if s.listener != nil {
		s.listener(step, args, result, nil)
	}
	return outcome, nil
}

// call invokes a registered function via the per-runner resolution cache
func (s *service) call(ctx context.Context, name string, args []value.Value) (value.Value, error) {
	callable, ok := s.resolve(name)
	if !ok {
		return value.Void(), types.NewNotFoundError(name)
	}
	return callable(ctx, args)
}

// resolve looks up a callable, caching resolutions until the registry
// generation moves.
func (s *service) resolve(name string) (types.Callable, bool) {
	generation := s.registry.Generation()
	s.mux.Lock()
	if s.generation != generation {
		s.resolved = make(map[string]types.Callable)
		s.generation = generation
	}
	if callable, ok := s.resolved[name]; ok {
		s.mux.Unlock()
		return callable, true
	}
	s.mux.Unlock()

	callable, _, observed, ok := s.registry.Resolve(name)
	if !ok {
		return nil, false
	}
	s.mux.Lock()
	if observed == s.generation {
		s.resolved[name] = callable
	}
	s.mux.Unlock()
	return callable, true
}

// seedScope materialises the plan vars; a var with a declared type is
// converted into a new instance of the registered type.
func (s *service) seedScope(aPlan *plan.Plan) (map[string]interface{}, error) {
	scope := make(map[string]interface{})
	for _, aVar := range aPlan.Vars {
		val := aVar.Value
		if aVar.Type != "" {
			if s.types == nil {
				return nil, fmt.Errorf("var %v declares type %v but no type registry is attached", aVar.Name, aVar.Type)
			}
			dataType := s.types.Lookup(aVar.Type, extension.WithImports(aPlan.Imports))
			if dataType == nil {
				return nil, fmt.Errorf("unknown type %v for var %v", aVar.Type, aVar.Name)
			}
			instance := reflect.New(dataType.Type).Interface()
			if err := s.converter.Convert(val, instance); err != nil {
				return nil, fmt.Errorf("failed to convert var %v into %v: %w", aVar.Name, aVar.Type, err)
			}
			val = instance
		}
		scope[aVar.Name] = val
	}
	return scope, nil
}

// resolveArgs materialises parsed arguments against the scope. Variables
// resolve to their typed scope value; string literals holding $refs are
// interpolated.
func resolveArgs(call *calls.Call, scope map[string]interface{}) ([]value.Value, error) {
	if len(call.Args) == 0 {
		return nil, nil
	}
	args := make([]value.Value, 0, len(call.Args))
	for i, arg := range call.Args {
		if arg.IsVariable() {
			resolved, ok := resolvePath(scope, arg.Variable)
			if !ok {
				return nil, fmt.Errorf("unresolved variable $%v at argument %d", arg.Variable, i)
			}
			args = append(args, value.Of(resolved))
			continue
		}
		if arg.Value.Kind() == value.KindString {
			text, _ := arg.Value.AsString()
			if strings.Contains(text, "$") {
				args = append(args, value.Of(expand(text, scope)))
				continue
			}
		}
		args = append(args, arg.Value)
	}
	return args, nil
}

// allowed evaluates the context policy for a call. A nil policy admits
// everything; ModeAsk without an AskFunc denies.
func allowed(ctx context.Context, function string, args []value.Value) bool {
	p := policy.FromContext(ctx)
	if p == nil {
		return true
	}
	if !p.IsAllowed(function) {
		return false
	}
	switch p.Mode {
	case policy.ModeDeny:
		return false
	case policy.ModeAsk:
		if p.Ask == nil {
			return false
		}
		return p.Ask(ctx, function, args, p)
	}
	return true
}

// publish emits an invocation lifecycle event when an event service is
// attached.
func (s *service) publish(ctx context.Context, eventType string, inv *Invocation, tookMs int) {
	if s.events == nil {
		return
	}
	publisher, err := event.PublisherOf[*Invocation](s.events)
	if err != nil {
		log.Printf("failed to acquire invocation publisher: %v", err)
		return
	}
	eCtx := &event.Context{
		RunID:       inv.RunID,
		Step:        inv.Step,
		EventType:   eventType,
		Function:    inv.Function,
		TimeTakenMs: tookMs,
	}
	if err = publisher.Publish(ctx, event.NewEvent[*Invocation](eCtx, inv)); err != nil {
		log.Printf("failed to publish %v event: %v", eventType, err)
	}
}

// NewService creates a new runner instance.
func NewService(aRegistry *registry.Registry, opts ...Option) Service {
	options := conv.DefaultOptions()
	options.ClonePointerData = true
	options.IgnoreUnmapped = true
	options.AccessUnexported = true

	s := &service{
		registry:  aRegistry,
		converter: conv.NewConverter(options),
		listener:  StdoutListener,
		resolved:  make(map[string]types.Callable),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}
