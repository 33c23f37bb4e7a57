package nn

import (
	"math"
	"math/rand"

	"github.com/descent-ml/descent/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// This initialization keeps the variance of activations roughly constant
// across layers, which matters even in a three-layer network.
//
// The caller supplies the random source so a fixed seed reproduces the
// same initial weights.
func Xavier(fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) *tensor.Tensor {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Zeros(shape)
	data := t.Data()
	for i := range data {
		data[i] = float32((rng.Float64()*2.0 - 1.0) * bound)
	}
	return t
}

// Zeros creates a zero-filled tensor. This is the bias initialization.
func Zeros(shape tensor.Shape) *tensor.Tensor {
	return tensor.Zeros(shape)
}
