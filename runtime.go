package funcly

import (
	"context"
	"fmt"

	"github.com/viant/funcly/model/plan"
	"github.com/viant/funcly/model/value"
	"github.com/viant/funcly/policy"
	dplan "github.com/viant/funcly/service/dao/plan"
	"github.com/viant/funcly/service/event"
	"github.com/viant/funcly/service/runner"
)

// Runtime executes call plans. It pairs the plan DAO with the runner and
// applies the service-level execution policy to runs that carry none.
type Runtime struct {
	planDAO *dplan.Service
	runner  runner.Service
	events  *event.Service
	policy  *policy.Policy
}

// ---------------------------------------------------------------------------
// Plan hot-swap helpers
// ---------------------------------------------------------------------------

// RefreshPlan discards any cached copy of the plan definition located at
// the given URL/location. The next LoadPlan call will reload the file via
// the configured meta-service (i.e. one extra disk/cloud round-trip).
func (r *Runtime) RefreshPlan(location string) error {
	if r == nil || r.planDAO == nil {
		return fmt.Errorf("runtime not fully initialised – planDAO missing")
	}
	r.planDAO.Refresh(location)
	return nil
}

// UpsertDefinition parses the supplied YAML bytes and stores the
// resulting plan definition in the in-memory cache under the specified
// location. When data is nil the call falls back to RefreshPlan, causing
// a lazy reload on next use.
func (r *Runtime) UpsertDefinition(location string, data []byte) error {
	if r == nil || r.planDAO == nil {
		return fmt.Errorf("runtime not fully initialised – planDAO missing")
	}
	if data == nil {
		return r.RefreshPlan(location)
	}
	aPlan, err := r.planDAO.DecodeYAML(data)
	if err != nil {
		return fmt.Errorf("failed to decode plan YAML: %w", err)
	}
	aPlan.SourceURL = location
	r.planDAO.Upsert(location, aPlan)
	return nil
}

// ---------------------------------------------------------------------------
// Convenience helpers
// ---------------------------------------------------------------------------

// LoadPlan loads a plan definition
func (r *Runtime) LoadPlan(ctx context.Context, location string) (*plan.Plan, error) {
	return r.planDAO.Load(ctx, location)
}

// DecodeYAMLPlan parses a plan definition from YAML bytes
func (r *Runtime) DecodeYAMLPlan(data []byte) (*plan.Plan, error) {
	return r.planDAO.DecodeYAML(data)
}

// RunPlan executes a plan; the optional input map overlays the plan vars
func (r *Runtime) RunPlan(ctx context.Context, aPlan *plan.Plan, input map[string]interface{}) (*runner.Run, error) {
	return r.runner.RunPlan(r.ensurePolicy(ctx), aPlan, input)
}

// Run loads the plan at location and executes it
func (r *Runtime) Run(ctx context.Context, location string, input map[string]interface{}) (*runner.Run, error) {
	aPlan, err := r.LoadPlan(ctx, location)
	if err != nil {
		return nil, err
	}
	return r.RunPlan(ctx, aPlan, input)
}

// Eval executes a single call expression, i.e. math.add(1, 2)
func (r *Runtime) Eval(ctx context.Context, expression string, scope map[string]interface{}) (value.Value, error) {
	return r.runner.Eval(r.ensurePolicy(ctx), expression, scope)
}

// ensurePolicy attaches the service-level policy unless the context
// already carries one
func (r *Runtime) ensurePolicy(ctx context.Context) context.Context {
	if r.policy == nil {
		return ctx
	}
	if policy.FromContext(ctx) != nil {
		return ctx
	}
	return policy.WithPolicy(ctx, r.policy)
}
