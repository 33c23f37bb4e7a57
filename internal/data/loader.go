package data

import (
	"fmt"
	"math/rand"

	"github.com/descent-ml/descent/internal/tensor"
)

// Loader yields the fixed-size mini-batches of one dataset pass.
//
// Every batch it produces has exactly batchSize examples: a trailing
// remainder smaller than the batch size is dropped, so step semantics
// never depend on a variable batch width. With shuffling enabled the
// example order is re-drawn on every Reset, giving a different batch
// composition per epoch while staying reproducible under a seeded rng.
type Loader struct {
	set       *Set
	batchSize int
	shuffle   bool
	rng       *rand.Rand
	order     []int
	cursor    int
}

// NewLoader creates a Loader over the dataset.
//
// The rng is only required when shuffle is true. Returns an error if
// the batch size is not positive or exceeds the dataset, which would
// make every epoch empty.
func NewLoader(set *Set, batchSize int, shuffle bool, rng *rand.Rand) (*Loader, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be > 0 (got %d)", batchSize)
	}
	if batchSize > set.Len() {
		return nil, fmt.Errorf("batch size %d exceeds dataset size %d", batchSize, set.Len())
	}
	if shuffle && rng == nil {
		return nil, fmt.Errorf("shuffling requires a random source")
	}

	order := make([]int, set.Len())
	for i := range order {
		order[i] = i
	}

	l := &Loader{
		set:       set,
		batchSize: batchSize,
		shuffle:   shuffle,
		rng:       rng,
		order:     order,
	}
	l.Reset()
	return l, nil
}

// BatchesPerEpoch returns how many full batches one pass yields.
func (l *Loader) BatchesPerEpoch() int {
	return l.set.Len() / l.batchSize
}

// Reset rewinds the loader to the start of the dataset and, when
// shuffling is enabled, re-draws the example order.
func (l *Loader) Reset() {
	l.cursor = 0
	if l.shuffle {
		l.rng.Shuffle(len(l.order), func(i, j int) {
			l.order[i], l.order[j] = l.order[j], l.order[i]
		})
	}
}

// Next returns the next full batch of the current pass.
//
// The boolean is false once fewer than batchSize examples remain; the
// remainder is not delivered. Call Reset to start the next pass.
func (l *Loader) Next() (Batch, bool) {
	if l.cursor+l.batchSize > l.set.Len() {
		return Batch{}, false
	}

	inputs := tensor.Zeros(tensor.Shape{l.batchSize, l.set.dim})
	inputsData := inputs.Data()
	labels := make([]int, l.batchSize)

	for i := 0; i < l.batchSize; i++ {
		idx := l.order[l.cursor+i]
		copy(inputsData[i*l.set.dim:(i+1)*l.set.dim], l.set.inputs[idx])
		labels[i] = l.set.labels[idx]
	}
	l.cursor += l.batchSize

	return Batch{Inputs: inputs, Labels: labels}, true
}
