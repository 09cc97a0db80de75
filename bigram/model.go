package bigram

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/Linux-Server/ML-Task/utils"
)

var ErrShape = errors.New("bigram: bad input shape")

// Model predicts the next token from the current one only. Row i of Table
// holds the logits over the next token given token i.
type Model struct {
	V     int
	Table *mat.Dense // (V x V)
	Grad  *mat.Dense // (V x V), dL/dTable accumulated by Backward

	training bool
}

// Output is the result of one forward pass over a (B x T) batch.
type Output struct {
	Logits  *mat.Dense // (B*T x V); row b*T+t predicts the token after x[b][t]
	B, T    int
	Loss    float64 // mean cross-entropy, valid only if HasLoss
	HasLoss bool

	x, y [][]int
}

// Last returns the logits row for the final position of sequence b.
func (o *Output) Last(b int) []float64 {
	return o.Logits.RawRowView(b*o.T + o.T - 1)
}

// New creates a V x V table initialised from N(0,1).
func New(vocabSize int, rng *rand.Rand) (*Model, error) {
	if vocabSize <= 0 {
		return nil, fmt.Errorf("bigram: vocab size must be > 0, got %d", vocabSize)
	}
	return &Model{
		V:        vocabSize,
		Table:    mat.NewDense(vocabSize, vocabSize, utils.NormalArray(vocabSize*vocabSize, 1.0, rng)),
		Grad:     mat.NewDense(vocabSize, vocabSize, nil),
		training: true,
	}, nil
}

// Parameters returns the trainable matrices, in the order Grads reports
// their gradients.
func (m *Model) Parameters() []*mat.Dense { return []*mat.Dense{m.Table} }

// Grads returns the gradient buffers paired with Parameters.
func (m *Model) Grads() []*mat.Dense { return []*mat.Dense{m.Grad} }

// Train and Eval switch modes. The lookup behaves the same in both; callers
// still bracket read-only measurements with Eval/Train.
func (m *Model) Train()         { m.training = true }
func (m *Model) Eval()          { m.training = false }
func (m *Model) Training() bool { return m.training }

// ZeroGrad clears the accumulated gradient.
func (m *Model) ZeroGrad() { m.Grad.Zero() }

// Forward looks up the logits for every position of x. If y is non-nil the
// mean cross-entropy against y is computed as well. Forward does not mutate
// the model and is safe for concurrent use.
func (m *Model) Forward(x, y [][]int) (*Output, error) {
	B, T, err := m.checkCodes("contexts", x)
	if err != nil {
		return nil, err
	}
	if y != nil {
		yb, yt, err := m.checkCodes("targets", y)
		if err != nil {
			return nil, err
		}
		if yb != B || yt != T {
			return nil, fmt.Errorf("%w: targets are %dx%d, contexts are %dx%d", ErrShape, yb, yt, B, T)
		}
	}

	logits := mat.NewDense(B*T, m.V, nil)
	for b := 0; b < B; b++ {
		for t := 0; t < T; t++ {
			logits.SetRow(b*T+t, m.Table.RawRowView(x[b][t]))
		}
	}
	out := &Output{Logits: logits, B: B, T: T, x: x}
	if y == nil {
		return out, nil
	}

	sum := 0.0
	for b := 0; b < B; b++ {
		for t := 0; t < T; t++ {
			sum += utils.CrossEntropyWithIndex(logits.RawRowView(b*T+t), y[b][t])
		}
	}
	out.Loss = sum / float64(B*T)
	out.HasLoss = true
	out.y = y
	return out, nil
}

// Backward accumulates dLoss/dTable for the forward pass that produced out,
// against the targets that pass was scored on.
func (m *Model) Backward(out *Output) error {
	if !out.HasLoss {
		return errors.New("bigram: backward needs a forward pass with targets")
	}
	n := float64(out.B * out.T)
	tmp := make([]float64, m.V)
	for b := 0; b < out.B; b++ {
		for t := 0; t < out.T; t++ {
			utils.CrossEntropyGrad(tmp, out.Logits.RawRowView(b*out.T+t), out.y[b][t])
			floats.AddScaled(m.Grad.RawRowView(out.x[b][t]), 1/n, tmp)
		}
	}
	return nil
}

// checkCodes validates a rectangular, non-empty batch of in-range codes.
func (m *Model) checkCodes(name string, seqs [][]int) (B, T int, err error) {
	if len(seqs) == 0 || len(seqs[0]) == 0 {
		return 0, 0, fmt.Errorf("%w: %s batch is empty", ErrShape, name)
	}
	B, T = len(seqs), len(seqs[0])
	for b, seq := range seqs {
		if len(seq) != T {
			return 0, 0, fmt.Errorf("%w: %s row %d has length %d, want %d", ErrShape, name, b, len(seq), T)
		}
		for t, c := range seq {
			if c < 0 || c >= m.V {
				return 0, 0, fmt.Errorf("bigram: %s[%d][%d] = %d outside vocab [0,%d)", name, b, t, c, m.V)
			}
		}
	}
	return B, T, nil
}
