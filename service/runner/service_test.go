package runner

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/x"

	"github.com/viant/funcly/extension"
	"github.com/viant/funcly/model/plan"
	"github.com/viant/funcly/model/types"
	"github.com/viant/funcly/model/value"
	"github.com/viant/funcly/policy"
	"github.com/viant/funcly/registry"
	"github.com/viant/funcly/service/event"
	"github.com/viant/funcly/service/messaging"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	require.NoError(t, r.Register("math.add", func(a, b int) int { return a + b }))
	require.NoError(t, r.Register("math.mul", func(a, b int) int { return a * b }))
	require.NoError(t, r.Register("strings.concat", func(a, b string) string { return a + b }))
	require.NoError(t, r.Register("util.print", func(message interface{}) {}))
	return r
}

func TestService_RunPlan(t *testing.T) {
	aPlan := plan.New("calculator").WithVar("base", 15)
	aPlan.AddStep("math.add($base, 27)").WithID("sum").WithAs("total").WithExpect("42")
	aPlan.AddStep("math.mul($total, 2)").WithAs("doubled")
	aPlan.AddStep("util.print($doubled)")

	runner := NewService(newTestRegistry(t), WithListener(nil))
	run, err := runner.RunPlan(context.Background(), aPlan, nil)
	require.NoError(t, err)
	require.NotNil(t, run)
	require.Len(t, run.Outcomes, 3)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "42", run.Outcomes[0].Rendered)
	assert.Equal(t, int64(42), run.Scope["total"])
	assert.Equal(t, int64(84), run.Scope["doubled"])
	assert.True(t, run.Outcomes[2].Result.IsVoid())

	assert.Equal(t, 3, run.Progress.TotalSteps)
	assert.Equal(t, 3, run.Progress.CompletedSteps)
	assert.Equal(t, 0, run.Progress.PendingSteps)
	assert.Equal(t, 0, run.Progress.RunningSteps)

	transcript := run.Transcript()
	assert.Contains(t, transcript, "sum: math.add($base, 27) = 42")
	assert.Contains(t, transcript, "step[2]: util.print($doubled)")
}

func TestService_RunPlan_inputOverlay(t *testing.T) {
	aPlan := plan.New("overlay").WithVar("base", 1)
	aPlan.AddStep("math.add($base, 1)").WithAs("next")

	runner := NewService(newTestRegistry(t), WithListener(nil))
	run, err := runner.RunPlan(context.Background(), aPlan, map[string]interface{}{"base": 41})
	require.NoError(t, err)
	assert.Equal(t, int64(42), run.Scope["next"])
}

func TestService_RunPlan_interpolation(t *testing.T) {
	aPlan := plan.New("greeting").WithVar("who", "World")
	aPlan.AddStep(`strings.concat("Hello, $who", "!")`).WithAs("greeting").WithExpect("Hello, World!")

	runner := NewService(newTestRegistry(t), WithListener(nil))
	run, err := runner.RunPlan(context.Background(), aPlan, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", run.Scope["greeting"])
}

func TestService_RunPlan_expectationMismatch(t *testing.T) {
	aPlan := plan.New("mismatch")
	aPlan.AddStep("math.add(1, 2)").WithID("sum").WithExpect("5")
	aPlan.AddStep("math.mul(2, 2)")

	runner := NewService(newTestRegistry(t), WithListener(nil))
	run, err := runner.RunPlan(context.Background(), aPlan, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expectation mismatch")

	var mismatch *ExpectationError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "5", mismatch.Expected)
	assert.Equal(t, "3", mismatch.Actual)
	assert.Contains(t, mismatch.Diff, "-5")
	assert.Contains(t, mismatch.Diff, "+3")

	require.NotNil(t, run)
	require.Len(t, run.Outcomes, 1)
	assert.Equal(t, 1, run.Progress.FailedSteps)
	assert.Equal(t, 1, run.Progress.SkippedSteps)
}

func TestService_RunPlan_unknownFunction(t *testing.T) {
	aPlan := plan.New("unknown")
	aPlan.AddStep("missing.fn()")

	runner := NewService(newTestRegistry(t), WithListener(nil))
	_, err := runner.RunPlan(context.Background(), aPlan, nil)
	require.Error(t, err)

	var notFound *types.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestService_RunPlan_unresolvedVariable(t *testing.T) {
	aPlan := plan.New("unresolved")
	aPlan.AddStep("math.add($missing, 1)")

	runner := NewService(newTestRegistry(t), WithListener(nil))
	_, err := runner.RunPlan(context.Background(), aPlan, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unresolved variable $missing")
}

func TestService_RunPlan_policy(t *testing.T) {
	aPlan := plan.New("guarded")
	aPlan.AddStep("math.add(1, 2)").WithAs("sum")
	aPlan.AddStep("util.print($sum)")
	aPlan.AddStep("math.mul($sum, 2)").WithAs("doubled")

	runner := NewService(newTestRegistry(t), WithListener(nil))
	ctx := policy.WithPolicy(context.Background(), &policy.Policy{BlockList: []string{"util.*"}})
	run, err := runner.RunPlan(ctx, aPlan, nil)
	require.NoError(t, err)
	require.Len(t, run.Outcomes, 3)

	assert.True(t, run.Outcomes[1].Skipped)
	assert.ErrorIs(t, run.Outcomes[1].Err, ErrDenied)
	assert.Equal(t, int64(6), run.Scope["doubled"])
	assert.Equal(t, 2, run.Progress.CompletedSteps)
	assert.Equal(t, 1, run.Progress.SkippedSteps)
}

func TestService_RunPlan_policyAsk(t *testing.T) {
	aPlan := plan.New("asked")
	aPlan.AddStep("math.add(1, 2)")

	var asked []string
	aPolicy := &policy.Policy{
		Mode: policy.ModeAsk,
		Ask: func(ctx context.Context, function string, args []value.Value, p *policy.Policy) bool {
			asked = append(asked, function)
			return true
		},
	}
	runner := NewService(newTestRegistry(t), WithListener(nil))
	run, err := runner.RunPlan(policy.WithPolicy(context.Background(), aPolicy), aPlan, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"math.add"}, asked)
	assert.Equal(t, 1, run.Progress.CompletedSteps)
}

type greetRequest struct {
	Who   string `json:"who"`
	Times int    `json:"times"`
}

func TestService_RunPlan_typedVar(t *testing.T) {
	dataTypes := extension.NewTypes()
	dataTypes.Register(x.NewType(reflect.TypeOf(greetRequest{})))

	aPlan := plan.New("typed")
	aPlan.WithTypedVar("greet", "greetRequest", map[string]interface{}{"who": "World", "times": 2})
	aPlan.AddStep(`strings.concat("Hello, ", $greet.who)`).WithAs("greeting")

	runner := NewService(newTestRegistry(t), WithListener(nil), WithTypes(dataTypes))
	run, err := runner.RunPlan(context.Background(), aPlan, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World", run.Scope["greeting"])

	seeded, ok := run.Scope["greet"].(*greetRequest)
	require.True(t, ok)
	assert.Equal(t, "World", seeded.Who)
	assert.Equal(t, 2, seeded.Times)
}

func TestService_RunPlan_events(t *testing.T) {
	events, err := event.New(messaging.VendorMemory)
	require.NoError(t, err)
	defer events.Shutdown()

	var mux sync.Mutex
	var seen []string
	require.NoError(t, event.SetListenerOf[*Invocation](events, func(e *event.Event[*Invocation]) {
		mux.Lock()
		defer mux.Unlock()
		seen = append(seen, e.Context.EventType)
	}))

	aPlan := plan.New("observed")
	aPlan.AddStep("math.add(1, 2)")

	runner := NewService(newTestRegistry(t), WithListener(nil), WithEventService(events))
	_, err = runner.RunPlan(context.Background(), aPlan, nil)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		mux.Lock()
		defer mux.Unlock()
		return len(seen) >= 2
	}, time.Second, 10*time.Millisecond)
	mux.Lock()
	defer mux.Unlock()
	assert.Contains(t, seen, event.TypeCallStarted)
	assert.Contains(t, seen, event.TypeCallCompleted)
}

func TestService_RunPlan_listener(t *testing.T) {
	aPlan := plan.New("listened")
	aPlan.AddStep("math.add(20, 22)")

	var calls []string
	listener := func(step *plan.Step, args []value.Value, result value.Value, err error) {
		calls = append(calls, step.Call)
		assert.NoError(t, err)
		assert.Equal(t, "42", renderValue(result))
	}
	runner := NewService(newTestRegistry(t), WithListener(listener))
	_, err := runner.RunPlan(context.Background(), aPlan, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"math.add(20, 22)"}, calls)
}

func TestService_Eval(t *testing.T) {
	runner := NewService(newTestRegistry(t), WithListener(nil))

	result, err := runner.Eval(context.Background(), "math.add(40, $offset)", map[string]interface{}{"offset": 2})
	require.NoError(t, err)
	got, err := result.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)

	_, err = runner.Eval(context.Background(), "math.add(", nil)
	assert.Error(t, err)

	denied := policy.WithPolicy(context.Background(), &policy.Policy{Mode: policy.ModeDeny})
	_, err = runner.Eval(denied, "math.add(1, 2)", nil)
	assert.ErrorIs(t, err, ErrDenied)
}

func TestService_resolutionCache(t *testing.T) {
	aRegistry := newTestRegistry(t)
	runner := NewService(aRegistry, WithListener(nil)).(*service)

	aPlan := plan.New("cached")
	aPlan.AddStep("math.add(1, 2)")
	_, err := runner.RunPlan(context.Background(), aPlan, nil)
	require.NoError(t, err)
	_, ok := runner.resolved["math.add"]
	assert.True(t, ok)

	// any registry mutation moves the generation and flushes the cache
	require.True(t, aRegistry.Unregister("math.add"))
	_, err = runner.RunPlan(context.Background(), aPlan, nil)
	require.Error(t, err)
	var notFound *types.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
