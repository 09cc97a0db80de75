package utils

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// NormalArray returns size samples from N(0, sigma²) drawn from src.
func NormalArray(size int, sigma float64, src rand.Source) []float64 {
	dist := distuv.Normal{Mu: 0, Sigma: sigma, Src: src}
	out := make([]float64, size)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

// Softmax writes softmax(logits) into dst and returns it. dst may be nil.
func Softmax(dst, logits []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(logits))
	}
	if len(dst) != len(logits) {
		panic("Softmax: dst length mismatch")
	}
	lse := floats.LogSumExp(logits)
	for i, v := range logits {
		dst[i] = math.Exp(v - lse)
	}
	return dst
}

// CrossEntropyWithIndex returns -log softmax(logits)[gold].
func CrossEntropyWithIndex(logits []float64, gold int) float64 {
	if gold < 0 || gold >= len(logits) {
		panic(fmt.Sprintf("CrossEntropyWithIndex: gold %d out of range [0,%d)", gold, len(logits)))
	}
	return floats.LogSumExp(logits) - logits[gold]
}

// CrossEntropyGrad writes d(-log softmax(logits)[gold])/dlogits, i.e.
// softmax(logits) - onehot(gold), into dst.
func CrossEntropyGrad(dst, logits []float64, gold int) []float64 {
	dst = Softmax(dst, logits)
	dst[gold] -= 1.0
	return dst
}
