// SPDX-License-Identifier: MIT

package quadrature

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Match them with errors.Is.
var (
	// ErrInvalidBounds is returned when a ≥ b or a bound is not finite.
	ErrInvalidBounds = errors.New("quadrature: a must be less than b")

	// ErrBadPartition is returned when the partition count is not positive.
	ErrBadPartition = errors.New("quadrature: partition count must be positive")

	// ErrOddPartition is returned when Simpson is asked for an odd partition count.
	ErrOddPartition = errors.New("quadrature: simpson requires an even partition count")

	// ErrUnknownRule is returned for a Kind outside the supported set.
	ErrUnknownRule = errors.New("quadrature: unknown rule")

	// ErrNilFunc is returned when the integrand is nil.
	ErrNilFunc = errors.New("quadrature: integrand is nil")

	// ErrEvaluation marks a failure of the integrand itself. The concrete
	// error is an *EvalError carrying the sample point.
	ErrEvaluation = errors.New("quadrature: integrand evaluation failed")
)

// EvalError reports an integrand failure at a specific sample point.
type EvalError struct {
	X     float64
	Cause error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%v at x=%g: %v", ErrEvaluation, e.X, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *EvalError) Unwrap() error { return e.Cause }

// Is makes errors.Is(err, ErrEvaluation) hold for every *EvalError.
func (e *EvalError) Is(target error) bool { return target == ErrEvaluation }

// Kind tags a quadrature rule.
type Kind int

const (
	// Left rectangle rule: samples x_0..x_{n-1}.
	Left Kind = iota

	// Right rectangle rule: samples x_1..x_n.
	Right

	// Mid rectangle rule: samples the midpoint of every subinterval.
	Mid

	// Trapezoid rule: endpoints weighted ½, interior points 1.
	Trapezoid

	// Simpson rule: parabolic fit over pairs of subintervals, n even.
	Simpson
)

var kindNames = [...]string{
	Left:      "left",
	Right:     "right",
	Mid:       "mid",
	Trapezoid: "trapezoid",
	Simpson:   "simpson",
}

// Kinds returns all rules in declaration order.
func Kinds() []Kind {
	return []Kind{Left, Right, Mid, Trapezoid, Simpson}
}

// Valid reports whether k is one of the five supported rules.
func (k Kind) Valid() bool {
	return k >= Left && k <= Simpson
}

// String returns the lower-case rule tag.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}

	return kindNames[k]
}

// MarshalText encodes k as its tag.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRule, int(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText decodes a tag produced by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v

	return nil
}

// ParseKind resolves a rule tag (case-insensitive, surrounding spaces ignored).
func ParseKind(s string) (Kind, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == tag {
			return Kind(k), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownRule, s)
}

// Order is the theoretical convergence order p of the rule (error ~ h^p).
func (k Kind) Order() int {
	switch k {
	case Left, Right:
		return 1
	case Mid, Trapezoid:
		return 2
	case Simpson:
		return 4
	}

	return 0
}

// RungeDivisor is the denominator applied to |I(2n) − I(n)|.
// Rectangle rules use 1; see the package documentation.
func (k Kind) RungeDivisor() float64 {
	switch k {
	case Trapezoid:
		return 3
	case Simpson:
		return 15
	}

	return 1
}

// StartPartitions is the partition count a refinement loop begins with.
func (k Kind) StartPartitions() int {
	if k == Left || k == Right {
		return 4
	}

	return 2
}

// Sums are the rule-specific intermediate sums of one evaluation.
//
//   - Total: Σ f over the rule's weighted-1 nodes (all nodes for rectangle
//     rules, interior nodes for Trapezoid and Simpson).
//   - Ends:  f(a) + f(b); zero for rectangle rules.
//   - Odd, Even: Simpson's parity-split interior sums; zero otherwise.
type Sums struct {
	Total float64 `json:"total"`
	Ends  float64 `json:"ends,omitempty"`
	Odd   float64 `json:"odd,omitempty"`
	Even  float64 `json:"even,omitempty"`
}
