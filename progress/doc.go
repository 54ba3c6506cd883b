// Package progress defines primitives for reporting and aggregating the
// progress of a plan run. It abstracts away the delivery mechanism so that
// callers can consume step counters in a uniform way whether they poll a
// snapshot or subscribe to change callbacks.
package progress
