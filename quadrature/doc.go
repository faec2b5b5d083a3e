// Package quadrature implements fixed-partition quadrature rules and the
// Runge error estimate used to compare two of their results.
//
// What
//
//   - Kind: tagged rule (Left, Right, Mid, Trapezoid, Simpson).
//   - Evaluate: approximates ∫_a^b f(x) dx on n equal subintervals and
//     returns the rule's auxiliary sums (for worked-solution display).
//   - RungeEstimate: |I(2n) − I(n)| / divisor with a per-rule divisor.
//   - Node / NodeRange: the sample points x_i a rule touches.
//
// Rules (h = (b − a)/n)
//
//	Left       h·Σ_{i=0}^{n-1} f(a + i·h)
//	Right      h·Σ_{i=1}^{n}   f(a + i·h)
//	Mid        h·Σ_{i=1}^{n}   f(a + (i − ½)·h)
//	Trapezoid  h·[(f(a) + f(b))/2 + Σ_{i=1}^{n-1} f(x_i)]
//	Simpson    h/3·[f(a) + f(b) + 4·Σ_odd f(x_i) + 2·Σ_even f(x_i)]   (n even)
//
// Runge divisors
//
//	Left, Right, Mid → 1 (raw difference)
//	Trapezoid        → 3
//	Simpson          → 15
//
// The rectangle divisor does not follow 2^p − 1 for the rule's order; it is
// kept as 1 so estimates stay comparable with previously published traces.
//
// Errors
//
//   - ErrInvalidBounds  a ≥ b, or a bound is NaN/±Inf.
//   - ErrBadPartition   n ≤ 0.
//   - ErrOddPartition   Simpson with odd n.
//   - ErrUnknownRule    tag outside the five kinds.
//   - ErrNilFunc        nil integrand.
//   - ErrEvaluation     f panicked or returned NaN/±Inf (as *EvalError).
//
// Every function here is pure: identical inputs give identical outputs.
//
// Complexity: Evaluate is O(n) time, O(1) memory.
package quadrature
