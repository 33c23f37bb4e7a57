// Package data provides in-memory datasets and the batch sequence the
// training loop consumes.
//
// The training core never performs dataset I/O: callers build a Set
// from whatever source they have (decoded files, synthetic generators,
// test fixtures) and hand the loop a Loader over it. File decoding
// lives with the callers, next to the files.
package data

import "github.com/descent-ml/descent/internal/tensor"

// Batch is one mini-batch of training examples.
//
// Inputs has shape [batch_size, features]; Labels holds one class index
// per row. A Batch is immutable once built: the loop reads it, the
// model never writes to it.
type Batch struct {
	Inputs *tensor.Tensor
	Labels []int
}

// Size returns the number of examples in the batch.
func (b Batch) Size() int {
	return len(b.Labels)
}
