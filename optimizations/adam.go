package optimizations

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// AdamUpdateInPlace applies one bias-corrected AdamW step to p:
// p -= lr * (mhat/(sqrt(vhat)+eps) + wd * p).
// m and v are updated in place; t is the 1-based step number.
func AdamUpdateInPlace(
	p, g, m, v *mat.Dense,
	t int,
	lr, beta1, beta2, eps, weightDecay float64,
) {
	pr, pc := p.Dims()
	if gr, gc := g.Dims(); gr != pr || gc != pc {
		panic("adamUpdateInPlace: grad shape mismatch")
	}
	if mr, mc := m.Dims(); mr != pr || mc != pc {
		panic("adamUpdateInPlace: m shape mismatch")
	}
	if vr, vc := v.Dims(); vr != pr || vc != pc {
		panic("adamUpdateInPlace: v shape mismatch")
	}
	c1 := 1.0 / (1.0 - math.Pow(beta1, float64(t)))
	c2 := 1.0 / (1.0 - math.Pow(beta2, float64(t)))
	for i := 0; i < pr; i++ {
		pRow, gRow := p.RawRowView(i), g.RawRowView(i)
		mRow, vRow := m.RawRowView(i), v.RawRowView(i)
		for j := 0; j < pc; j++ {
			gij := gRow[j]
			mRow[j] = beta1*mRow[j] + (1.0-beta1)*gij
			vRow[j] = beta2*vRow[j] + (1.0-beta2)*gij*gij
			mhat := mRow[j] * c1
			vhat := vRow[j] * c2
			update := mhat/(math.Sqrt(vhat)+eps) + weightDecay*pRow[j]
			pRow[j] -= lr * update
		}
	}
}

// AdamW keeps per-parameter moment estimates across steps.
type AdamW struct {
	LR, Beta1, Beta2, Eps, WeightDecay float64

	params []*mat.Dense
	m, v   []*mat.Dense
	t      int
}

// NewAdamW allocates zeroed moments shaped like each parameter.
func NewAdamW(params []*mat.Dense, lr, beta1, beta2, eps, weightDecay float64) *AdamW {
	opt := &AdamW{
		LR: lr, Beta1: beta1, Beta2: beta2, Eps: eps, WeightDecay: weightDecay,
		params: params,
		m:      make([]*mat.Dense, len(params)),
		v:      make([]*mat.Dense, len(params)),
	}
	for i, p := range params {
		opt.m[i] = zerosLike(p)
		opt.v[i] = zerosLike(p)
	}
	return opt
}

// Step updates every parameter with its matching gradient.
func (opt *AdamW) Step(grads []*mat.Dense) {
	if len(grads) != len(opt.params) {
		panic("AdamW.Step: gradient count mismatch")
	}
	opt.t++
	for i, p := range opt.params {
		AdamUpdateInPlace(p, grads[i], opt.m[i], opt.v[i], opt.t,
			opt.LR, opt.Beta1, opt.Beta2, opt.Eps, opt.WeightDecay)
	}
}

// Steps is the number of updates applied so far.
func (opt *AdamW) Steps() int { return opt.t }

func zerosLike(a *mat.Dense) *mat.Dense {
	r, c := a.Dims()
	return mat.NewDense(r, c, nil)
}
