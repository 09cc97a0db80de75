package bigram

import (
	"errors"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Linux-Server/ML-Task/utils"
)

// Generate extends seed by maxNew tokens, each drawn from the softmax of the
// last position's logits. The whole sequence is fed back every step even
// though only its final token affects the prediction.
func (m *Model) Generate(seed []int, maxNew int, rng *rand.Rand) ([]int, error) {
	if len(seed) == 0 {
		return nil, errors.New("bigram: generate needs a non-empty seed")
	}
	idx := make([]int, len(seed), len(seed)+maxNew)
	copy(idx, seed)
	probs := make([]float64, m.V)
	for i := 0; i < maxNew; i++ {
		out, err := m.Forward([][]int{idx}, nil)
		if err != nil {
			return nil, err
		}
		utils.Softmax(probs, out.Last(0))
		next := distuv.NewCategorical(probs, rng).Rand()
		idx = append(idx, int(next))
	}
	return idx, nil
}
