package funcly

import (
	"fmt"

	"github.com/viant/funcly/policy"
	"github.com/viant/funcly/service/messaging"
)

// Config is a serialisable representation of the service configuration.
// It can be populated from JSON or YAML; the zero value is useful – all
// nested fields inherit their package defaults.
type Config struct {
	Meta   MetaConfig   `json:"meta" yaml:"meta"`
	Events EventsConfig `json:"events" yaml:"events"`

	// Policy optionally declares the execution policy applied to runs
	// started without one in their context
	Policy *policy.Config `json:"policy,omitempty" yaml:"policy,omitempty"`

	// DisableBuiltins skips registration of the stock function groups
	DisableBuiltins bool `json:"disableBuiltins,omitempty" yaml:"disableBuiltins,omitempty"`
}

// MetaConfig locates plan definitions.
type MetaConfig struct {
	// BaseURL prefixes relative plan locations, i.e. embed:///plans
	BaseURL string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
}

// EventsConfig selects the invocation event transport.
type EventsConfig struct {
	// Vendor names the queue vendor; empty disables event publishing
	Vendor string `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	// BaseURL roots the queue directories of the fs vendor
	BaseURL string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
}

// DefaultConfig returns a Config populated with the same defaults the
// constructors previously hard-coded. Callers may modify the returned
// struct before passing it to New via WithConfig.
func DefaultConfig() *Config {
	return &Config{
		Events: EventsConfig{Vendor: string(messaging.VendorMemory)},
	}
}

// Validate returns an error describing invalid settings, or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	switch c.Events.Vendor {
	case "", string(messaging.VendorMemory):
	case string(messaging.VendorFs):
		if c.Events.BaseURL == "" {
			return fmt.Errorf("events.baseURL is required for the %v vendor", messaging.VendorFs)
		}
	default:
		return fmt.Errorf("events.vendor must be one of %v, %v", messaging.VendorMemory, messaging.VendorFs)
	}
	if c.Policy != nil {
		switch c.Policy.Mode {
		case "", policy.ModeAuto, policy.ModeAsk, policy.ModeDeny:
		default:
			return fmt.Errorf("policy.mode must be one of %v, %v, %v", policy.ModeAsk, policy.ModeAuto, policy.ModeDeny)
		}
	}
	return nil
}
