package refine_test

import (
	"testing"

	"github.com/katalvlaran/quadra/integrand"
	"github.com/katalvlaran/quadra/quadrature"
	"github.com/katalvlaran/quadra/refine"
)

func benchmarkRun(b *testing.B, k quadrature.Kind, eps float64) {
	in, err := integrand.Default().Lookup(2)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := refine.RunIntegrand(in, 0, 1, eps, k); err != nil {
			b.Fatalf("RunIntegrand failed: %v", err)
		}
	}
}

func BenchmarkRun_Trapezoid(b *testing.B) { benchmarkRun(b, quadrature.Trapezoid, 1e-6) }
func BenchmarkRun_Simpson(b *testing.B) { benchmarkRun(b, quadrature.Simpson, 1e-9) }
func BenchmarkRun_Mid(b *testing.B) { benchmarkRun(b, quadrature.Mid, 1e-6) }

// BenchmarkSession_CacheHit measures revisiting a converged parameter set.
func BenchmarkSession_CacheHit(b *testing.B) {
	s, err := refine.NewSession(nil)
	if err != nil {
		b.Fatal(err)
	}
	p := refine.Params{IntegrandID: 1, A: 0, B: 1, Epsilon: 1e-4, Rule: quadrature.Trapezoid}
	q := p
	q.Rule = quadrature.Simpson

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%2 == 0 {
			s.SetParams(p)
		} else {
			s.SetParams(q)
		}
		if _, err := s.Evaluate(); err != nil {
			b.Fatal(err)
		}
	}
}
