// SPDX-License-Identifier: MIT

package refine

import (
	"fmt"
	"math"

	"github.com/katalvlaran/quadra/integrand"
	"github.com/katalvlaran/quadra/quadrature"
)

// walker encapsulates the mutable state of one refinement loop: a single
// (rule, bounds, integrand, epsilon) combination. It is never shared.
type walker struct {
	kind  quadrature.Kind
	a, b  float64
	eps   float64
	f     func(float64) float64
	antid func(float64) float64
	opts  Options

	// precondition failure (bad option, unknown integrand) reported on the
	// first step instead of evaluating anything.
	pending error

	state  State
	n      int
	trace  []Iteration
	result *Result
	err    error
}

// Run drives rule kind over [a, b] on f, doubling the partition count until
// the Runge estimate is ≤ epsilon.
//
// Each step validates, in order: epsilon, n ≤ MaxPartitions, a < b, and
// (Simpson) n even. It then evaluates the rule at n and 2n from scratch,
// appends an Iteration for 2n and either converges on the 2n value or
// doubles n.
//
// On failure the returned Result is neutral (State Failed, zero values) but
// carries the Iterations completed so far; the error is returned with it.
func Run(a, b float64, f func(float64) float64, epsilon float64, kind quadrature.Kind, opts ...Option) (*Result, error) {
	w := newWalker(kind, a, b, f, epsilon, resolve(opts))

	return w.run()
}

// RunIntegrand is Run with f and the antiderivative taken from in.
func RunIntegrand(in integrand.Integrand, a, b, epsilon float64, kind quadrature.Kind, opts ...Option) (*Result, error) {
	o := resolve(opts)
	o.Antiderivative = in.Antiderivative
	w := newWalker(kind, a, b, in.Fn, epsilon, o)

	return w.run()
}

func newWalker(kind quadrature.Kind, a, b float64, f func(float64) float64, eps float64, o Options) *walker {
	w := &walker{
		kind:    kind,
		a:       a,
		b:       b,
		eps:     eps,
		f:       f,
		antid:   o.Antiderivative,
		opts:    o,
		pending: o.err,
	}
	w.reset()

	return w
}

// reset returns the walker to Initializing: starting n, empty trace, no
// result and no error.
func (w *walker) reset() {
	w.state = Initializing
	w.n = w.kind.StartPartitions()
	if w.opts.InitialPartitions > 0 {
		w.n = w.opts.InitialPartitions
	}
	w.trace = nil
	w.result = nil
	w.err = nil
}

// run steps until a terminal state.
func (w *walker) run() (*Result, error) {
	for !w.state.Terminal() {
		w.step()
	}

	return w.result, w.err
}

// step performs one iteration of the state machine. It is a no-op once the
// walker is terminal.
func (w *walker) step() {
	if w.state.Terminal() {
		return
	}
	w.state = Iterating

	if err := w.check(); err != nil {
		w.fail(err)
		return
	}

	coarse, _, err := quadrature.Evaluate(w.kind, w.a, w.b, w.n, w.f)
	if err != nil {
		w.fail(err)
		return
	}
	next := 2 * w.n
	fine, sums, err := quadrature.Evaluate(w.kind, w.a, w.b, next, w.f)
	if err != nil {
		w.fail(err)
		return
	}

	it := Iteration{
		N:     next,
		Step:  (w.b - w.a) / float64(next),
		Value: fine,
		Error: quadrature.RungeEstimate(w.kind, coarse, fine),
		Sums:  sums,
	}
	w.trace = append(w.trace, it)
	w.opts.Logger.Debug("refine: iteration",
		"rule", w.kind.String(), "n", it.N, "value", it.Value, "runge", it.Error, "eps", w.eps)

	if err := w.opts.OnIteration(it); err != nil {
		w.fail(err)
		return
	}

	if it.Error <= w.eps {
		w.converge(it)
		return
	}
	w.n = next
}

// check validates the step's preconditions without touching f.
func (w *walker) check() error {
	if w.pending != nil {
		return w.pending
	}
	if err := w.opts.Ctx.Err(); err != nil {
		return err
	}
	if math.IsNaN(w.eps) || math.IsInf(w.eps, 0) || w.eps <= 0 {
		return fmt.Errorf("%w: epsilon=%g", ErrInvalidTolerance, w.eps)
	}
	if w.n > w.opts.MaxPartitions {
		return fmt.Errorf("%w: n=%d > %d", ErrCeilingExceeded, w.n, w.opts.MaxPartitions)
	}
	if w.f == nil {
		return quadrature.ErrNilFunc
	}

	// bounds, then Simpson parity
	return quadrature.Validate(w.kind, w.a, w.b, w.n)
}

func (w *walker) converge(last Iteration) {
	table, oversized, err := BuildTable(w.kind, w.a, w.b, last.N, w.f, w.opts.TableLimit)
	if err != nil {
		w.fail(err)
		return
	}

	res, err := assemble(w.kind, w.a, w.b, w.antid, last, table, oversized, w.snapshot())
	if err != nil {
		w.fail(err)
		return
	}
	w.result = res
	w.state = Converged
	w.opts.Logger.Info("refine: converged",
		"rule", w.kind.String(), "n", last.N, "value", last.Value, "runge", last.Error,
		"iterations", len(w.trace))
	w.opts.OnFinish(w.result, nil)
}

func (w *walker) fail(err error) {
	w.err = err
	w.result = &Result{Rule: w.kind, State: Failed, Iterations: w.snapshot()}
	w.state = Failed
	w.opts.Logger.Warn("refine: failed",
		"rule", w.kind.String(), "n", w.n, "iterations", len(w.trace), "err", err)
	w.opts.OnFinish(w.result, err)
}

// snapshot copies the trace so results never alias walker state.
func (w *walker) snapshot() []Iteration {
	out := make([]Iteration, len(w.trace))
	copy(out, w.trace)

	return out
}
