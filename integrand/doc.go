// Package integrand holds the registry of integrands that the refinement
// engine can be pointed at: a function f(x), its display formula and, when
// known, a closed-form antiderivative F(x) used for the reference value
// F(b) − F(a).
//
// What
//
//   - Integrand: immutable value type (ID, Formula, Fn, Antiderivative).
//   - Registry: lookup by integer ID, deterministic listing in ID order.
//   - Default(): the three built-in polynomial integrands.
//
// A missing antiderivative is not an error: the engine still integrates,
// it only stops reporting the exact value. A missing ID is an error
// (ErrIntegrandNotFound).
//
// Usage
//
//	reg := integrand.Default()
//	in, err := reg.Lookup(1)
//	if err != nil {
//		// ErrIntegrandNotFound
//	}
//	exact, ok := in.Exact(0, 1) // -7/12, true
package integrand
