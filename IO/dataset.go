package IO

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"unicode/utf8"
)

var ErrSplitTooShort = errors.New("split too short for block size")

// Batch holds BatchSize windows of BlockSize codes. Y is X shifted left by one.
type Batch struct {
	X [][]int
	Y [][]int
}

// ReadCorpus loads the whole training text.
func ReadCorpus(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("%s: %w", path, ErrEmptyCorpus)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%s: not valid UTF-8", path)
	}
	return string(raw), nil
}

// SplitCorpus cuts data at floor(frac*len(data)); the prefix trains, the
// suffix validates. Both results alias data.
func SplitCorpus(data []int, frac float64) (train, val []int, err error) {
	if len(data) == 0 {
		return nil, nil, ErrEmptyCorpus
	}
	if frac <= 0 || frac > 1 {
		return nil, nil, fmt.Errorf("train fraction must be in (0,1], got %g", frac)
	}
	n := int(math.Floor(frac * float64(len(data))))
	return data[:n:n], data[n:], nil
}

// CheckSplit reports whether data can yield a window of blockSize plus its
// next-token target.
func CheckSplit(name string, data []int, blockSize int) error {
	if len(data) <= blockSize {
		return fmt.Errorf("%s split: %w: have %d codes, need at least %d", name, ErrSplitTooShort, len(data), blockSize+1)
	}
	return nil
}

// GetBatch draws batchSize windows uniformly with replacement.
func GetBatch(data []int, batchSize, blockSize int, rng *rand.Rand) (Batch, error) {
	if batchSize <= 0 || blockSize <= 0 {
		return Batch{}, fmt.Errorf("batch size and block size must be > 0, got %d and %d", batchSize, blockSize)
	}
	if err := CheckSplit("batch", data, blockSize); err != nil {
		return Batch{}, err
	}
	b := Batch{
		X: make([][]int, batchSize),
		Y: make([][]int, batchSize),
	}
	for i := 0; i < batchSize; i++ {
		start := rng.IntN(len(data) - blockSize)
		b.X[i] = data[start : start+blockSize : start+blockSize]
		b.Y[i] = data[start+1 : start+blockSize+1 : start+blockSize+1]
	}
	return b, nil
}
