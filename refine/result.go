// SPDX-License-Identifier: MIT

package refine

import (
	"math"

	"github.com/katalvlaran/quadra/quadrature"
)

// assemble freezes a converged run into a Result.
//
// Without an antiderivative Exact, Delta and Percent are 0 and HasExact is
// false. Percent is also 0 when the exact value is 0.
// A failing antiderivative is reported like a failing integrand.
func assemble(kind quadrature.Kind, a, b float64, antid func(float64) float64,
	last Iteration, table *SampleTable, oversized *Placeholder, trace []Iteration) (*Result, error) {
	r := &Result{
		Rule:       kind,
		State:      Converged,
		N:          last.N,
		Step:       last.Step,
		Value:      last.Value,
		RungeError: last.Error,
		Table:      table,
		Oversized:  oversized,
		Iterations: trace,
	}
	if antid == nil {
		return r, nil
	}

	fb, err := quadrature.Sample(antid, b)
	if err != nil {
		return nil, err
	}
	fa, err := quadrature.Sample(antid, a)
	if err != nil {
		return nil, err
	}

	r.Exact = fb - fa
	r.HasExact = true
	delta := r.Exact - r.Value
	r.Delta = math.Abs(delta)
	if r.Exact != 0 {
		r.Percent = math.Abs(delta/r.Exact) * 100
	}

	return r, nil
}

// clone deep-copies r so a memoised result never aliases one handed out.
func (r *Result) clone() *Result {
	c := *r
	c.Iterations = append([]Iteration(nil), r.Iterations...)
	if r.Table != nil {
		c.Table = &SampleTable{
			Headers: append([]string(nil), r.Table.Headers...),
			Rows:    append([]Row(nil), r.Table.Rows...),
		}
	}
	if r.Oversized != nil {
		p := *r.Oversized
		c.Oversized = &p
	}

	return &c
}
