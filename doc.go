// Package quadra is an adaptive numerical integration engine: it evaluates
// definite integrals of one-variable functions with the classical quadrature
// rules and refines the partition by step doubling until the Runge error
// estimate meets a tolerance.
//
// What is in the box
//
//	integrand/  — registry of integrands f with optional antiderivative F
//	quadrature/ — left, right, mid, trapezoid and Simpson rules; Runge estimate
//	refine/     — the doubling loop (Run, Session), sample tables, results
//	metrics/    — Prometheus counters fed by the loop hooks
//	config/     — defaults, QUADRA_* env and file settings for the CLI
//	cmd/quadra/ — `quadra run` and `quadra list`
//
// Quick start
//
//	in, _ := integrand.Default().Lookup(1)
//	res, err := refine.RunIntegrand(in, 0, 1, 0.01, quadrature.Trapezoid)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("n=%d I=%.6f exact=%.6f (%.3f%%)\n", res.N, res.Value, res.Exact, res.Percent)
//
// All arithmetic is float64. Runs are synchronous and share no state.
package quadra
