package params

import (
	"errors"
	"fmt"
)

// Vocabulary maps corpus characters to dense codes and back.
// IDToToken is sorted by code point; TokenToID is its inverse.
type Vocabulary struct {
	TokenToID map[rune]int
	IDToToken []rune
}

// Size is |V|.
func (v Vocabulary) Size() int { return len(v.IDToToken) }

type TrainingConfig struct {
	// Data
	InputPath string  // corpus file read at startup
	TrainFrac float64 // leading fraction of the corpus used for training

	// Batching
	BatchSize int // sequences per batch
	BlockSize int // context length (window)

	// Optimization
	MaxIters     int
	LearningRate float64
	AdamBeta1    float64 // default 0.9
	AdamBeta2    float64 // default 0.999
	AdamEps      float64 // default 1e-8
	WeightDecay  float64 // AdamW-style, 0 disables

	// Evaluation
	EvalInterval int // estimate loss every N iterations (iteration 0 included)
	EvalIters    int // batches averaged per split
	EvalWorkers  int // goroutines computing eval batch losses

	// Sampling
	Seed         uint64
	MaxNewTokens int
}

var errBadConfig = errors.New("invalid training config")

// Validate rejects settings the training loop cannot run with.
func (c TrainingConfig) Validate() error {
	switch {
	case c.BatchSize <= 0:
		return fmt.Errorf("%w: BatchSize must be > 0, got %d", errBadConfig, c.BatchSize)
	case c.BlockSize <= 0:
		return fmt.Errorf("%w: BlockSize must be > 0, got %d", errBadConfig, c.BlockSize)
	case c.MaxIters < 0:
		return fmt.Errorf("%w: MaxIters must be >= 0, got %d", errBadConfig, c.MaxIters)
	case c.EvalInterval <= 0:
		return fmt.Errorf("%w: EvalInterval must be > 0, got %d", errBadConfig, c.EvalInterval)
	case c.EvalIters <= 0:
		return fmt.Errorf("%w: EvalIters must be > 0, got %d", errBadConfig, c.EvalIters)
	case c.TrainFrac <= 0 || c.TrainFrac > 1:
		return fmt.Errorf("%w: TrainFrac must be in (0,1], got %g", errBadConfig, c.TrainFrac)
	case c.LearningRate <= 0:
		return fmt.Errorf("%w: LearningRate must be > 0, got %g", errBadConfig, c.LearningRate)
	case c.MaxNewTokens < 0:
		return fmt.Errorf("%w: MaxNewTokens must be >= 0, got %d", errBadConfig, c.MaxNewTokens)
	}
	return nil
}

// Config is fixed at build time. Defaults match torch.optim.AdamW.
var Config = TrainingConfig{
	InputPath: "input.txt",
	TrainFrac: 0.9,

	BatchSize: 32,
	BlockSize: 8,

	MaxIters:     3000,
	LearningRate: 1e-2,
	AdamBeta1:    0.9,
	AdamBeta2:    0.999,
	AdamEps:      1e-8,
	WeightDecay:  0.01,

	EvalInterval: 300,
	EvalIters:    200,
	EvalWorkers:  4,

	Seed:         42,
	MaxNewTokens: 300,
}
