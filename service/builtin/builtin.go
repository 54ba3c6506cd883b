// Package builtin ships the stock function groups: math, strings and
// util. They are regular registrations with no special status; callers
// that want a bare registry simply skip Register.
package builtin

import (
	"fmt"

	"github.com/viant/funcly/registry"
)

// Register binds every builtin group into the registry.
func Register(r *registry.Registry) error {
	for _, register := range []func(*registry.Registry) error{
		registerMath,
		registerStrings,
		registerUtil,
	} {
		if err := register(r); err != nil {
			return err
		}
	}
	return nil
}

// registerAll binds each function under its group-qualified name
func registerAll(group *registry.Group, functions map[string]interface{}) error {
	for name, fn := range functions {
		if err := group.Register(name, fn); err != nil {
			return fmt.Errorf("failed to register %v: %w", group.Qualify(name), err)
		}
	}
	return nil
}
