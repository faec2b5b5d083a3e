// SPDX-License-Identifier: MIT

package integrand

// Built-in integrands. Powers are written out as products so the results
// are bit-for-bit reproducible across platforms.
var builtins = []Integrand{
	{
		ID:      1,
		Formula: `\int_{a}^{b} (-x^3 - x^2 - 2x + 1) dx`,
		Fn: func(x float64) float64 {
			return -x*x*x - x*x - 2*x + 1
		},
		Antiderivative: func(x float64) float64 {
			x2 := x * x
			return -x2*x2/4 - x2*x/3 - x2 + x
		},
	},
	{
		ID:      2,
		Formula: `\int_{a}^{b} (-3x^5 - 5x^2 + 4x - 2) dx`,
		Fn: func(x float64) float64 {
			x2 := x * x
			return -3*x2*x2*x - 5*x2 + 4*x - 2
		},
		Antiderivative: func(x float64) float64 {
			x2 := x * x
			x3 := x2 * x
			return -0.5*x3*x3 - (5.0/3.0)*x3 + 2*x2 - 2*x
		},
	},
	{
		ID:      3,
		Formula: `\int_{a}^{b} (-x^3 - x^2 + x + 3) dx`,
		Fn: func(x float64) float64 {
			return -x*x*x - x*x + x + 3
		},
		Antiderivative: func(x float64) float64 {
			x2 := x * x
			return -0.25*x2*x2 - x2*x/3 + 0.5*x2 + 3*x
		},
	},
}

// Builtins returns a copy of the built-in integrands in ID order.
func Builtins() []Integrand {
	out := make([]Integrand, len(builtins))
	copy(out, builtins)

	return out
}

// Default returns a fresh registry populated with Builtins.
func Default() *Registry {
	r, err := NewRegistry(builtins...)
	if err != nil {
		// builtins are static; a failure here is a programming error.
		panic(err)
	}

	return r
}
