// Package policy provides optional declarative rules applied on top of a
// running plan – for example to require human approval for selected
// function calls or to block groups of functions outright.
package policy
