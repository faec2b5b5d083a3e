// Package metrics exports Prometheus instrumentation for the refinement
// loop. A Recorder plugs into refine through its hook options:
//
//	rec := metrics.NewRecorder(prometheus.DefaultRegisterer)
//	res, err := refine.Run(a, b, f, eps, kind, rec.Options(kind)...)
//
// Collected series:
//
//   - quadra_runs_total{rule, outcome}       terminal runs by outcome
//   - quadra_iterations_total{rule}          doubling steps appended to a trace
//   - quadra_converged_partitions{rule}      histogram of the converged n
//   - quadra_iterations_per_run{rule}        histogram of trace length per run
//
// Outcome is one of converged, invalid_input, ceiling, evaluation,
// canceled or error. A Recorder is safe for concurrent use.
package metrics
