// Package policy provides a simple, optional per-call approval layer that
// can be attached to an invocation via context. It is deliberately
// decoupled from the rest of funcly so that using it is entirely opt-in –
// callers that do not embed a Policy in their context keep the original
// "auto" behaviour.

package policy

import (
	"context"
	"strings"

	"github.com/viant/funcly/model/value"
)

// Execution modes recognised by the runner.
const (
	ModeAsk  = "ask"  // ask user before every call
	ModeAuto = "auto" // execute automatically (default)
	ModeDeny = "deny" // block execution
)

// AskFunc is invoked when Mode==ask. Returning true approves the call,
// false rejects it. Implementations may mutate the policy, for example
// switching to ModeAuto after the first approval.
type AskFunc func(
	ctx context.Context,
	function string, // qualified function name
	args []value.Value, // packed arguments – may be nil
	p *Policy,
) bool

// Policy represents the approval settings for the current run.
//
//   - Mode controls the high-level behaviour (ask / auto / deny).
//   - AllowList, BlockList allow coarse filtering regardless of Mode.
//   - Ask is only used when Mode==ask.
//
// A nil *Policy means "execute everything automatically" and is therefore
// the zero-cost default.
type Policy struct {
	Mode      string   // ask / auto / deny      (default = auto)
	AllowList []string // whitelist (empty => all)
	BlockList []string // blacklist
	Ask       AskFunc  // used only when Mode==ask
}

// Config represents the declarative, serialisable part of a Policy, used
// when a Policy with an AskFunc cannot be persisted.
type Config struct {
	Mode      string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	AllowList []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	BlockList []string `json:"block,omitempty" yaml:"block,omitempty"`
}

// ToConfig converts a runtime Policy into a persistable Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{
		Mode:      p.Mode,
		AllowList: append([]string(nil), p.AllowList...),
		BlockList: append([]string(nil), p.BlockList...),
	}
}

// FromConfig converts a stored Config back to a runtime Policy without an
// AskFunc.
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	return &Policy{
		Mode:      c.Mode,
		AllowList: append([]string(nil), c.AllowList...),
		BlockList: append([]string(nil), c.BlockList...),
	}
}

// IsAllowed evaluates AllowList / BlockList against the qualified function
// name. Matching is case-insensitive; an entry ending in ".*" matches every
// function of that group, i.e. "math.*" covers "math.add". BlockList has
// priority; an empty AllowList admits everything.
func (p *Policy) IsAllowed(function string) bool {
	if p == nil {
		return true
	}

	normalized := strings.ToLower(function)
	for _, b := range p.BlockList {
		if matches(normalized, strings.ToLower(b)) {
			return false
		}
	}
	if len(p.AllowList) == 0 {
		return true
	}
	for _, a := range p.AllowList {
		if matches(normalized, strings.ToLower(a)) {
			return true
		}
	}
	return false
}

func matches(function, pattern string) bool {
	if group, ok := strings.CutSuffix(pattern, ".*"); ok {
		return strings.HasPrefix(function, group+".")
	}
	return function == pattern
}

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the policy, or nil when none is attached.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
