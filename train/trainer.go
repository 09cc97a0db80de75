package train

import (
	"fmt"
	"io"
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/Linux-Server/ML-Task/IO"
	"github.com/Linux-Server/ML-Task/bigram"
	"github.com/Linux-Server/ML-Task/optimizations"
	"github.com/Linux-Server/ML-Task/params"
)

// Losses is the averaged held-out estimate for both splits.
type Losses struct {
	Train float64
	Val   float64
}

// Trainer owns everything a run mutates: the model, its optimizer state, the
// iteration counter and the random stream used for batching.
type Trainer struct {
	Model  *bigram.Model
	Opt    *optimizations.AdamW
	Config params.TrainingConfig
	Out    io.Writer

	TrainData []int
	ValData   []int
	Iter      int

	rng *rand.Rand
}

// New validates the configuration and both splits before any training happens.
func New(model *bigram.Model, trainData, valData []int, cfg params.TrainingConfig, rng *rand.Rand, out io.Writer) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := IO.CheckSplit("train", trainData, cfg.BlockSize); err != nil {
		return nil, err
	}
	if err := IO.CheckSplit("val", valData, cfg.BlockSize); err != nil {
		return nil, err
	}
	opt := optimizations.NewAdamW(model.Parameters(), cfg.LearningRate,
		cfg.AdamBeta1, cfg.AdamBeta2, cfg.AdamEps, cfg.WeightDecay)
	return &Trainer{
		Model:     model,
		Opt:       opt,
		Config:    cfg,
		Out:       out,
		TrainData: trainData,
		ValData:   valData,
		rng:       rng,
	}, nil
}

// Run trains for Config.MaxIters iterations, reporting estimated losses every
// EvalInterval iterations starting at 0.
func (tr *Trainer) Run() error {
	cfg := tr.Config
	for ; tr.Iter < cfg.MaxIters; tr.Iter++ {
		if tr.Iter%cfg.EvalInterval == 0 {
			losses, err := tr.EstimateLoss()
			if err != nil {
				return fmt.Errorf("step %d: %w", tr.Iter, err)
			}
			fmt.Fprintf(tr.Out, "step %d : train loss: %.4f and val loss : %.4f\n",
				tr.Iter, losses.Train, losses.Val)
		}
		if _, err := tr.Step(); err != nil {
			return fmt.Errorf("step %d: %w", tr.Iter, err)
		}
	}
	return nil
}

// Step runs one forward/backward pass on a fresh training batch and applies
// one AdamW update. It returns the batch loss before the update.
func (tr *Trainer) Step() (float64, error) {
	batch, err := IO.GetBatch(tr.TrainData, tr.Config.BatchSize, tr.Config.BlockSize, tr.rng)
	if err != nil {
		return 0, err
	}
	out, err := tr.Model.Forward(batch.X, batch.Y)
	if err != nil {
		return 0, err
	}
	tr.Model.ZeroGrad()
	if err := tr.Model.Backward(out); err != nil {
		return 0, err
	}
	tr.Opt.Step(tr.Model.Grads())
	return out.Loss, nil
}

// EstimateLoss averages the loss of EvalIters random batches per split. The
// model is put in eval mode for the measurement and restored afterwards.
func (tr *Trainer) EstimateLoss() (Losses, error) {
	if tr.Model.Training() {
		tr.Model.Eval()
		defer tr.Model.Train()
	}
	trainLoss, err := tr.splitLoss(tr.TrainData)
	if err != nil {
		return Losses{}, fmt.Errorf("train split: %w", err)
	}
	valLoss, err := tr.splitLoss(tr.ValData)
	if err != nil {
		return Losses{}, fmt.Errorf("val split: %w", err)
	}
	return Losses{Train: trainLoss, Val: valLoss}, nil
}

// splitLoss draws all batches from the rng first so the estimate does not
// depend on how many workers compute the losses.
func (tr *Trainer) splitLoss(data []int) (float64, error) {
	n := tr.Config.EvalIters
	batches := make([]IO.Batch, n)
	for k := range batches {
		b, err := IO.GetBatch(data, tr.Config.BatchSize, tr.Config.BlockSize, tr.rng)
		if err != nil {
			return 0, err
		}
		batches[k] = b
	}

	losses := make([]float64, n)
	errs := make([]error, n)
	work := func(k int) {
		out, err := tr.Model.Forward(batches[k].X, batches[k].Y)
		if err != nil {
			errs[k] = err
			return
		}
		losses[k] = out.Loss
	}

	workers := min(max(tr.Config.EvalWorkers, 1), n)
	if workers == 1 {
		for k := 0; k < n; k++ {
			work(k)
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				for k := range jobs {
					work(k)
				}
			}()
		}
		for k := 0; k < n; k++ {
			jobs <- k
		}
		close(jobs)
		wg.Wait()
	}

	for _, err := range errs {
		if err != nil {
			return 0, err
		}
	}
	return stat.Mean(losses, nil), nil
}
