// Package model contains the in-memory representation of call plans,
// dynamic values and callable contracts.
//
// The `value` sub-package holds the dynamic value that crosses every
// call boundary, `types` defines the erased callable contract together
// with its error taxonomy, and `plan` models the YAML call-plan
// documents. The root model package simply aggregates those building
// blocks so that they can be referenced with a single import path.
package model
