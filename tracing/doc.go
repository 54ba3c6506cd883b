// Package tracing wraps OpenTelemetry span management behind a few helper
// functions so call sites stay small. Instrumentation lives in a separate
// package so that applications which do not require tracing can exclude it
// from their build.
package tracing
