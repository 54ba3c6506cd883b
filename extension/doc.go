// Package extension provides run-time registries that let funcly work
// with user-defined Go types, for example opaque payloads declared by
// plan variables or action inputs and outputs.
//
// The registries are normally modified through the public APIs under the
// root funcly package, therefore most applications do not need to import
// this package directly.
package extension
