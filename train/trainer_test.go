package train

import (
	"bytes"
	"errors"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/Linux-Server/ML-Task/IO"
	"github.com/Linux-Server/ML-Task/bigram"
	"github.com/Linux-Server/ML-Task/params"
)

func testConfig() params.TrainingConfig {
	cfg := params.Config
	cfg.BatchSize = 8
	cfg.BlockSize = 4
	cfg.MaxIters = 200
	cfg.EvalInterval = 50
	cfg.EvalIters = 10
	cfg.EvalWorkers = 3
	cfg.LearningRate = 1e-1
	return cfg
}

// cyclic returns codes 0,1,..,v-1,0,1,.. so each token has one successor.
func cyclic(n, v int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i % v
	}
	return out
}

func newTrainer(t *testing.T, cfg params.TrainingConfig, seed uint64, out *bytes.Buffer) *Trainer {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed))
	model, err := bigram.New(5, rng)
	if err != nil {
		t.Fatal(err)
	}
	data := cyclic(400, 5)
	trainData, valData, err := IO.SplitCorpus(data, cfg.TrainFrac)
	if err != nil {
		t.Fatal(err)
	}
	tr, err := New(model, trainData, valData, cfg, rng, out)
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestNewRejectsShortSplit(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewPCG(1, 1))
	model, _ := bigram.New(5, rng)
	_, err := New(model, cyclic(100, 5), cyclic(cfg.BlockSize, 5), cfg, rng, &bytes.Buffer{})
	if !errors.Is(err, IO.ErrSplitTooShort) {
		t.Fatalf("err = %v, want ErrSplitTooShort", err)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.EvalInterval = 0
	rng := rand.New(rand.NewPCG(1, 1))
	model, _ := bigram.New(5, rng)
	if _, err := New(model, cyclic(100, 5), cyclic(100, 5), cfg, rng, &bytes.Buffer{}); err == nil {
		t.Fatal("expected config error")
	}
}

func TestRunReportsAndLearns(t *testing.T) {
	var out bytes.Buffer
	cfg := testConfig()
	tr := newTrainer(t, cfg, 42, &out)

	before, err := tr.EstimateLoss()
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.Run(); err != nil {
		t.Fatal(err)
	}
	after, err := tr.EstimateLoss()
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != cfg.MaxIters/cfg.EvalInterval {
		t.Fatalf("got %d report lines, want %d:\n%s", len(lines), cfg.MaxIters/cfg.EvalInterval, out.String())
	}
	re := regexp.MustCompile(`^step (\d+) : train loss: \d+\.\d{4} and val loss : \d+\.\d{4}$`)
	for i, line := range lines {
		m := re.FindStringSubmatch(line)
		if m == nil {
			t.Fatalf("line %d malformed: %q", i, line)
		}
		if want := strconv.Itoa(i * cfg.EvalInterval); m[1] != want {
			t.Fatalf("line %d reports step %s, want %s", i, m[1], want)
		}
	}

	if tr.Opt.Steps() != cfg.MaxIters {
		t.Fatalf("optimizer took %d steps, want %d", tr.Opt.Steps(), cfg.MaxIters)
	}
	if !(after.Train < before.Train/2) || !(after.Val < before.Val/2) {
		t.Fatalf("loss did not drop: before %+v after %+v", before, after)
	}
	if !tr.Model.Training() {
		t.Fatal("model left in eval mode")
	}
}

func TestEstimateLossIndependentOfWorkers(t *testing.T) {
	cfg := testConfig()
	cfg.EvalWorkers = 1
	serial, err := newTrainer(t, cfg, 7, &bytes.Buffer{}).EstimateLoss()
	if err != nil {
		t.Fatal(err)
	}
	cfg.EvalWorkers = 8
	parallel, err := newTrainer(t, cfg, 7, &bytes.Buffer{}).EstimateLoss()
	if err != nil {
		t.Fatal(err)
	}
	if serial != parallel {
		t.Fatalf("serial %+v != parallel %+v", serial, parallel)
	}
}

func TestEstimateLossDoesNotTouchParameters(t *testing.T) {
	tr := newTrainer(t, testConfig(), 3, &bytes.Buffer{})
	before := append([]float64(nil), tr.Model.Table.RawMatrix().Data...)
	losses, err := tr.EstimateLoss()
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range tr.Model.Table.RawMatrix().Data {
		if v != before[i] {
			t.Fatal("EstimateLoss modified the parameter table")
		}
	}
	if math.IsNaN(losses.Train) || losses.Train <= 0 || losses.Val <= 0 {
		t.Fatalf("implausible losses %+v", losses)
	}
}
