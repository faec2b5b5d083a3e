// SPDX-License-Identifier: MIT

package refine

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/katalvlaran/quadra/integrand"
	"github.com/katalvlaran/quadra/quadrature"
)

// Params identifies one refinement problem. Any change of any field
// restarts the loop from Initializing.
type Params struct {
	IntegrandID int
	A, B        float64
	Epsilon     float64
	Rule        quadrature.Kind
}

// Session is the re-entrant form of Run: a caller feeds parameters with
// SetParams, advances with Step or Evaluate, and inspects the loop between
// steps. Changing parameters atomically drops the trace, the result and any
// error of the previous parameter set.
//
// Converged results are memoised per Params; revisiting a parameter set
// restores a copy of the stored result (and its trace) on the next Step
// and reports it to OnFinish without running OnIteration.
//
// A Session is not safe for concurrent use.
type Session struct {
	reg   *integrand.Registry
	opts  Options
	cache *lru.Cache[Params, *Result]

	params Params
	set    bool
	w      *walker
}

// NewSession returns a Session resolving integrand IDs against reg
// (integrand.Default() when nil). Options apply to every parameter set.
func NewSession(reg *integrand.Registry, opts ...Option) (*Session, error) {
	o := resolve(opts)
	if o.err != nil {
		return nil, o.err
	}
	if reg == nil {
		reg = integrand.Default()
	}

	s := &Session{reg: reg, opts: o}
	if o.CacheSize > 0 {
		c, err := lru.New[Params, *Result](o.CacheSize)
		if err != nil {
			return nil, err
		}
		s.cache = c
	}

	return s, nil
}

// SetParams installs p. It reports whether the loop was reset; setting the
// current parameters again is a no-op.
func (s *Session) SetParams(p Params) bool {
	if s.set && p == s.params {
		return false
	}
	s.params = p
	s.set = true

	o := s.opts
	in, err := s.reg.Lookup(p.IntegrandID)
	if err == nil {
		o.Antiderivative = in.Antiderivative
	}
	s.w = newWalker(p.Rule, p.A, p.B, in.Fn, p.Epsilon, o)
	if err != nil {
		s.w.pending = err
	}

	return true
}

// Params returns the current parameter set.
func (s *Session) Params() Params { return s.params }

// State returns the loop phase; Initializing before any SetParams.
func (s *Session) State() State {
	if s.w == nil {
		return Initializing
	}

	return s.w.state
}

// Converged reports whether the current parameter set has converged.
func (s *Session) Converged() bool { return s.State() == Converged }

// Trace returns a copy of the iterations recorded so far.
func (s *Session) Trace() []Iteration {
	if s.w == nil {
		return nil
	}

	return s.w.snapshot()
}

// Result returns the frozen result once terminal, else nil. The memo keeps
// its own copy, so callers may modify what they receive.
func (s *Session) Result() *Result {
	if s.w == nil {
		return nil
	}

	return s.w.result
}

// Err returns the failure of the current parameter set, if any.
func (s *Session) Err() error {
	if s.w == nil {
		return nil
	}

	return s.w.err
}

// Step runs one iteration and returns the resulting state and error.
// Calling Step after a terminal state does nothing; calling it before
// SetParams returns ErrNoParams.
func (s *Session) Step() (State, error) {
	if s.w == nil {
		return Initializing, ErrNoParams
	}
	if s.w.state.Terminal() {
		return s.State(), s.Err()
	}

	if s.w.state == Initializing && s.cache != nil && s.w.pending == nil && s.w.opts.Ctx.Err() == nil {
		if res, ok := s.cache.Get(s.params); ok {
			s.restore(res)
			return s.w.state, nil
		}
	}

	s.w.step()
	if s.w.state == Converged && s.cache != nil {
		s.cache.Add(s.params, s.w.result.clone())
	}

	return s.w.state, s.w.err
}

// Evaluate steps until the current parameter set is terminal.
func (s *Session) Evaluate() (*Result, error) {
	if s.w == nil {
		return nil, ErrNoParams
	}
	for !s.w.state.Terminal() {
		s.Step()
	}

	return s.w.result, s.w.err
}

// restore installs a copy of a memoised result as if the loop had just
// converged, and reports it to OnFinish. No iteration runs.
func (s *Session) restore(res *Result) {
	res = res.clone()
	s.w.trace = append([]Iteration(nil), res.Iterations...)
	s.w.n = res.N
	s.w.result = res
	s.w.state = Converged
	s.w.opts.Logger.Debug("refine: cache hit",
		"rule", res.Rule.String(), "integrand", s.params.IntegrandID, "n", res.N)
	s.w.opts.OnFinish(res, nil)
}
