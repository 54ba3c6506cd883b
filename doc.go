// Package funcly provides a type-erased, name-indexed function registry
// with typed call helpers, plus an optional plan layer that sequences
// registered calls declaratively (for example in YAML).
//
// At its core sits the registry: functions of arbitrary signatures are
// erased at registration time into a uniform callable, and invoked by
// name with dynamically typed values. Extraction is strict – kinds never
// coerce – and failures surface as typed errors (unknown name, argument
// mismatch, result type mismatch).
//
//	r := registry.New()
//	_ = r.Register("add", func(a, b int) int { return a + b })
//	sum, _ := registry.CallAs[int64](ctx, r, "add", 15, 25)
//
// On top of the registry, the high-level Service façade wires builtin
// function groups, action services, a plan DAO and a runner:
//
//	srv, _ := funcly.New()
//	rt := srv.Runtime()
//	aPlan, _ := rt.LoadPlan(ctx, "calculator.yaml")
//	run, _ := rt.RunPlan(ctx, aPlan, nil)
//	fmt.Print(run.Transcript())
//
// For more details see the README and individual sub-packages.
package funcly
