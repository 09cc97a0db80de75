package optimizations

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestAdamFirstStepClosedForm(t *testing.T) {
	p0 := []float64{0.5, -1.0, 2.0, 0.0}
	g := []float64{0.1, -0.3, 0.0, 2.0}
	p := mat.NewDense(2, 2, append([]float64(nil), p0...))
	grad := mat.NewDense(2, 2, g)

	const lr, wd, eps = 0.01, 0.01, 1e-8
	opt := NewAdamW([]*mat.Dense{p}, lr, 0.9, 0.999, eps, wd)
	opt.Step([]*mat.Dense{grad})

	// With zero moments, bias correction gives mhat = g and vhat = g².
	for k := range p0 {
		want := p0[k] - lr*(g[k]/(math.Abs(g[k])+eps)+wd*p0[k])
		got := p.RawMatrix().Data[k]
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("param %d: got %.12g want %.12g", k, got, want)
		}
	}
	if opt.Steps() != 1 {
		t.Fatalf("Steps() = %d, want 1", opt.Steps())
	}
}

func TestAdamMovesAgainstGradient(t *testing.T) {
	p := mat.NewDense(1, 1, []float64{3})
	opt := NewAdamW([]*mat.Dense{p}, 0.1, 0.9, 0.999, 1e-8, 0)
	// Minimise (p-1)²; the gradient is 2(p-1).
	for i := 0; i < 500; i++ {
		g := mat.NewDense(1, 1, []float64{2 * (p.At(0, 0) - 1)})
		opt.Step([]*mat.Dense{g})
	}
	if got := p.At(0, 0); math.Abs(got-1) > 0.05 {
		t.Fatalf("p = %g, want ≈ 1", got)
	}
}

func TestAdamShapeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on shape mismatch")
		}
	}()
	p := mat.NewDense(2, 2, nil)
	opt := NewAdamW([]*mat.Dense{p}, 0.1, 0.9, 0.999, 1e-8, 0)
	opt.Step([]*mat.Dense{mat.NewDense(2, 3, nil)})
}
