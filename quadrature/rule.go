// SPDX-License-Identifier: MIT

package quadrature

import (
	"errors"
	"fmt"
	"math"
)

// Evaluate approximates ∫_a^b f(x) dx with rule k on n equal subintervals.
//
// Contract:
//   - a < b, both finite;
//   - n > 0, and even for Simpson;
//   - f non-nil.
//
// A panic inside f, or a NaN/±Inf sample, is returned as *EvalError.
// Evaluate never reuses samples between calls.
func Evaluate(k Kind, a, b float64, n int, f func(float64) float64) (float64, Sums, error) {
	if err := Validate(k, a, b, n); err != nil {
		return 0, Sums{}, err
	}
	if f == nil {
		return 0, Sums{}, ErrNilFunc
	}

	h := (b - a) / float64(n)
	switch k {
	case Left, Right, Mid:
		return rectangle(k, a, h, n, f)
	case Trapezoid:
		return trapezoid(a, b, h, n, f)
	default:
		return simpson(a, b, h, n, f)
	}
}

// Validate runs the input checks of Evaluate without touching f.
// Order: rule → bounds → partition → parity.
func Validate(k Kind, a, b float64, n int) error {
	if !k.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownRule, int(k))
	}
	if !finite(a) || !finite(b) || a >= b {
		return fmt.Errorf("%w: a=%g b=%g", ErrInvalidBounds, a, b)
	}
	if n <= 0 {
		return fmt.Errorf("%w: n=%d", ErrBadPartition, n)
	}
	if k == Simpson && n%2 != 0 {
		return fmt.Errorf("%w: n=%d", ErrOddPartition, n)
	}

	return nil
}

// RungeEstimate returns |fine − coarse| / k.RungeDivisor(), where coarse was
// computed on n and fine on 2n subintervals.
func RungeEstimate(k Kind, coarse, fine float64) float64 {
	return math.Abs(fine-coarse) / k.RungeDivisor()
}

// NodeRange returns the inclusive index range [lo, hi] of the sample
// points rule k uses on n subintervals, as listed in a sample table.
// Simpson lists interior points only.
func (k Kind) NodeRange(n int) (lo, hi int) {
	switch k {
	case Left:
		return 0, n - 1
	case Trapezoid:
		return 0, n
	case Simpson:
		return 1, n - 1
	}

	return 1, n
}

// Node returns x_i for rule k with origin a and step h.
// Mid samples the centre of the i-th subinterval (i from 1).
func (k Kind) Node(a, h float64, i int) float64 {
	if k == Mid {
		return a + (float64(i)-0.5)*h
	}

	return a + float64(i)*h
}

// rectangle covers Left, Right and Mid: every node weighs h.
func rectangle(k Kind, a, h float64, n int, f func(float64) float64) (float64, Sums, error) {
	lo, hi := k.NodeRange(n)
	var sum float64
	for i := lo; i <= hi; i++ {
		y, err := sample(f, k.Node(a, h, i))
		if err != nil {
			return 0, Sums{}, err
		}
		sum += y
	}

	return h * sum, Sums{Total: sum}, nil
}

func trapezoid(a, b, h float64, n int, f func(float64) float64) (float64, Sums, error) {
	ends, err := endpoints(a, b, f)
	if err != nil {
		return 0, Sums{}, err
	}

	var interior float64
	for i := 1; i < n; i++ {
		y, err := sample(f, a+float64(i)*h)
		if err != nil {
			return 0, Sums{}, err
		}
		interior += y
	}

	return h * (ends/2 + interior), Sums{Total: interior, Ends: ends}, nil
}

func simpson(a, b, h float64, n int, f func(float64) float64) (float64, Sums, error) {
	ends, err := endpoints(a, b, f)
	if err != nil {
		return 0, Sums{}, err
	}

	var odd, even float64
	for i := 1; i < n; i++ {
		y, err := sample(f, a+float64(i)*h)
		if err != nil {
			return 0, Sums{}, err
		}
		if i%2 == 1 {
			odd += y
		} else {
			even += y
		}
	}

	value := h / 3 * (ends + 4*odd + 2*even)

	return value, Sums{Total: odd + even, Ends: ends, Odd: odd, Even: even}, nil
}

func endpoints(a, b float64, f func(float64) float64) (float64, error) {
	fa, err := sample(f, a)
	if err != nil {
		return 0, err
	}
	fb, err := sample(f, b)
	if err != nil {
		return 0, err
	}

	return fa + fb, nil
}

// Sample evaluates f at x with the same failure handling as Evaluate.
func Sample(f func(float64) float64, x float64) (float64, error) {
	if f == nil {
		return 0, ErrNilFunc
	}

	return sample(f, x)
}

// sample converts a panic or a non-finite value of f(x) into *EvalError.
func sample(f func(float64) float64, x float64) (y float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			y, err = 0, &EvalError{X: x, Cause: cause}
		}
	}()

	y = f(x)
	if !finite(y) {
		return 0, &EvalError{X: x, Cause: errors.New("non-finite value")}
	}

	return y, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
