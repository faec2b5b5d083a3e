// Package refine drives a quadrature rule by step doubling until the Runge
// error estimate meets a tolerance, and assembles the converged result with
// its sample table and iteration trace.
//
// What
//
//   - Run / RunIntegrand: one-shot refinement for (a, b, f, epsilon, rule).
//   - Session: the same loop in re-entrant form; any parameter change
//     resets the trace, the result and the error before the next step.
//   - BuildTable: (i, x_i, f(x_i)) rows of the converged partition, or a
//     Placeholder when the table would exceed the row limit.
//
// State machine
//
//	Initializing ──step──▶ Iterating ──estimate ≤ ε──▶ Converged
//	                          │  ▲
//	                          │  └── n ← 2n
//	                          └──── validation / evaluation error ──▶ Failed
//
// Every step checks, in order: epsilon, n ≤ MaxPartitions, a < b and, for
// Simpson, n even. It then evaluates the rule at n and 2n from scratch
// (samples are never reused), appends an Iteration for 2n, and accepts the
// 2n value when its Runge estimate is ≤ epsilon.
//
// Options
//
//   - DefaultOptions(): background context, MaxPartitions 1,000,000,
//     TableLimit 500, rule-specific start n, no-op hooks, discarding logger.
//   - WithContext(ctx)            cancellation, checked once per step.
//   - WithMaxPartitions(n)        partition ceiling.
//   - WithTableLimit(rows)        largest materialised table.
//   - WithInitialPartitions(n)    override the rule's starting n.
//   - WithAntiderivative(F)       exact-value reporting for Run.
//   - WithOnIteration(fn)         per-step hook; an error aborts the run.
//   - WithOnFinish(fn)            called once on Converged or Failed.
//   - WithLogger(l)               *slog.Logger for Debug/Info/Warn records.
//   - WithCacheSize(n)            Session memo size; 0 disables it.
//
// Errors
//
//   - ErrInvalidTolerance   epsilon ≤ 0, NaN or ±Inf.
//   - ErrCeilingExceeded    n grew past MaxPartitions.
//   - ErrInvalidBounds      a ≥ b (from package quadrature).
//   - ErrOddPartition       Simpson with odd n.
//   - ErrEvaluation         the integrand panicked or returned NaN/±Inf.
//   - ErrIntegrandNotFound  Session parameters name an unknown integrand.
//   - ErrOptionViolation    an invalid Option value.
//   - ctx.Err() and hook errors, as returned.
//
// No error is retried. A failed parameter set stays Failed until the caller
// supplies different parameters.
//
// Usage
//
//	in, _ := integrand.Default().Lookup(1)
//	res, err := refine.RunIntegrand(in, 0, 1, 0.01, quadrature.Trapezoid)
//	if err != nil {
//		// res.Iterations still shows how far the loop got
//	}
//	fmt.Println(res.Value, res.Delta, res.Percent)
package refine
