// SPDX-License-Identifier: MIT

package integrand

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry operations.
var (
	// ErrIntegrandNotFound is returned when no integrand is registered under an ID.
	ErrIntegrandNotFound = errors.New("integrand: not found")

	// ErrDuplicateID is returned when Register is called twice with the same ID.
	ErrDuplicateID = errors.New("integrand: duplicate id")

	// ErrNilFunc is returned when an integrand is registered without an evaluator.
	ErrNilFunc = errors.New("integrand: nil evaluator")
)

// Func is a real function of one real variable.
type Func func(x float64) float64

// Integrand is a registered function together with its formula label and an
// optional closed-form antiderivative.
type Integrand struct {
	// ID identifies the integrand inside its Registry.
	ID int

	// Formula is a display label (LaTeX-ish), never parsed.
	Formula string

	// Fn evaluates f(x). Required.
	Fn Func

	// Antiderivative evaluates F(x) with F' = f. Optional; nil suppresses
	// exact-value reporting only.
	Antiderivative Func
}

// HasAntiderivative reports whether a closed-form F is configured.
func (in Integrand) HasAntiderivative() bool {
	return in.Antiderivative != nil
}

// Exact returns F(b) − F(a) and true, or (0, false) when no antiderivative
// is configured.
func (in Integrand) Exact(a, b float64) (float64, bool) {
	if in.Antiderivative == nil {
		return 0, false
	}

	return in.Antiderivative(b) - in.Antiderivative(a), true
}

// String returns "#<id> <formula>".
func (in Integrand) String() string {
	return fmt.Sprintf("#%d %s", in.ID, in.Formula)
}
