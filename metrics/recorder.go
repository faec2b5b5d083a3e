// SPDX-License-Identifier: MIT

package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/quadra/quadrature"
	"github.com/katalvlaran/quadra/refine"
)

// Outcome label values.
const (
	OutcomeConverged    = "converged"
	OutcomeInvalidInput = "invalid_input"
	OutcomeCeiling      = "ceiling"
	OutcomeEvaluation   = "evaluation"
	OutcomeCanceled     = "canceled"
	OutcomeError        = "error"
)

// Recorder holds the collectors of one registry.
type Recorder struct {
	runs          *prometheus.CounterVec
	iterations    *prometheus.CounterVec
	partitions    *prometheus.HistogramVec
	iterationsRun *prometheus.HistogramVec
}

// NewRecorder registers the quadra collectors with reg. It panics if they
// are already registered there, like promauto does.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "quadra_runs_total",
			Help: "Total refinement runs by rule and outcome",
		}, []string{"rule", "outcome"}),
		iterations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "quadra_iterations_total",
			Help: "Total doubling steps appended to a trace",
		}, []string{"rule"}),
		partitions: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quadra_converged_partitions",
			Help:    "Partition count at convergence",
			Buckets: prometheus.ExponentialBuckets(2, 4, 11), // 2 to ~2M
		}, []string{"rule"}),
		iterationsRun: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quadra_iterations_per_run",
			Help:    "Trace length of a terminal run",
			Buckets: prometheus.LinearBuckets(1, 2, 10),
		}, []string{"rule"}),
	}
}

// ObserveIteration counts one appended step.
func (r *Recorder) ObserveIteration(kind quadrature.Kind, _ refine.Iteration) {
	r.iterations.WithLabelValues(kind.String()).Inc()
}

// ObserveRun records a terminal run. res may be nil when the run never
// started.
func (r *Recorder) ObserveRun(kind quadrature.Kind, res *refine.Result, err error) {
	rule := kind.String()
	r.runs.WithLabelValues(rule, Outcome(err)).Inc()
	if res == nil {
		return
	}
	r.iterationsRun.WithLabelValues(rule).Observe(float64(len(res.Iterations)))
	if err == nil && res.State == refine.Converged {
		r.partitions.WithLabelValues(rule).Observe(float64(res.N))
	}
}

// Options returns the refine hooks feeding r for runs of kind.
func (r *Recorder) Options(kind quadrature.Kind) []refine.Option {
	return []refine.Option{
		refine.WithOnIteration(func(it refine.Iteration) error {
			r.ObserveIteration(kind, it)
			return nil
		}),
		refine.WithOnFinish(func(res *refine.Result, err error) {
			r.ObserveRun(kind, res, err)
		}),
	}
}

// Outcome classifies a run error into a label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeConverged
	case errors.Is(err, refine.ErrCeilingExceeded):
		return OutcomeCeiling
	case errors.Is(err, refine.ErrEvaluation):
		return OutcomeEvaluation
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	case errors.Is(err, refine.ErrInvalidBounds),
		errors.Is(err, refine.ErrOddPartition),
		errors.Is(err, refine.ErrInvalidTolerance),
		errors.Is(err, refine.ErrIntegrandNotFound),
		errors.Is(err, refine.ErrOptionViolation):
		return OutcomeInvalidInput
	}

	return OutcomeError
}
