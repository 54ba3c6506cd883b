// Package idgen wraps the UUID generator so that it can be stubbed in
// tests. It lives under `internal` because callers should treat the
// produced identifiers as opaque strings.
package idgen

import "github.com/google/uuid"

// NewFunc produces identifiers; tests stub it for determinism.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier as string.
func New() string { return NewFunc() }
