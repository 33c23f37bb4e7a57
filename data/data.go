// Package data provides dataset and batching functionality for Descent.
//
// This package wraps the internal data implementation and exports a clean
// public API for assembling in-memory datasets and iterating them in
// fixed-size batches. The training core never reads files or sockets;
// callers decode whatever format they have into a Set and hand the
// trainer a Loader.
//
// Example usage:
//
//	import (
//	    "math/rand"
//
//	    "github.com/descent-ml/descent/data"
//	)
//
//	set, err := data.NewSet(inputs, labels, 10)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	train, test, err := set.Split(0.9)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rng := rand.New(rand.NewSource(42))
//	loader, err := data.NewLoader(train, 32, true, rng)
//	if err != nil {
//	    log.Fatal(err)
//	}
package data

import (
	"math/rand"

	"github.com/descent-ml/descent/internal/data"
)

// Batch is one fixed-size slice of training examples: an input matrix
// of shape [batch_size, dim] and one label per row.
//
// Note: This is a type alias because trainer.Source's Next method
// references the internal batch type, and an alias keeps the two
// interchangeable without a conversion layer.
type Batch = data.Batch

// Set is an immutable in-memory dataset, validated at construction.
type Set = data.Set

// NewSet builds a dataset from raw inputs and labels.
//
// Every input row must have the same width, every label must lie in
// [0, numClasses), and the set must not be empty.
func NewSet(inputs [][]float32, labels []int, numClasses int) (*Set, error) {
	return data.NewSet(inputs, labels, numClasses)
}

// Loader iterates a Set in fixed-size batches, optionally reshuffling
// at every epoch. Remainder samples that do not fill a batch are
// dropped.
type Loader = data.Loader

// NewLoader creates a batch iterator over the set.
//
// batchSize must be positive and no larger than the set. When shuffle
// is true an rng is required; the same seed reproduces the same batch
// order.
func NewLoader(set *Set, batchSize int, shuffle bool, rng *rand.Rand) (*Loader, error) {
	return data.NewLoader(set, batchSize, shuffle, rng)
}

// SyntheticClassification generates a linearly separable Gaussian
// cluster dataset, useful for demos and tests when no real data is on
// disk.
func SyntheticClassification(n, dim, classes int, rng *rand.Rand) *Set {
	return data.SyntheticClassification(n, dim, classes, rng)
}
