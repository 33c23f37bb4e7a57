// Copyright 2025 Descent ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/descent-ml/descent/internal/tensor"
)

// Type aliases for public API

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3} represents a 2×3 matrix; Shape{5} a vector.
type Shape = tensor.Shape

// Tensor is a dense float32 tensor stored in row-major order.
//
// Tensors are either vectors (rank 1) or matrices (rank 2). Each tensor
// owns its buffer exclusively; operations that produce values allocate
// fresh tensors, and only Set and AddScaled mutate in place.
type Tensor = tensor.Tensor

// New creates a zero-filled tensor with the given shape.
//
// Example:
//
//	w, err := tensor.New(tensor.Shape{784, 128})
func New(shape Shape) (*Tensor, error) {
	return tensor.New(shape)
}

// FromSlice creates a tensor from existing data. The data is copied.
//
// Example:
//
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// Zeros creates a tensor filled with zeros.
// Panics if the shape is invalid.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Ones creates a tensor filled with ones.
// Panics if the shape is invalid.
func Ones(shape Shape) *Tensor {
	return tensor.Ones(shape)
}

// Full creates a tensor filled with the given value.
// Panics if the shape is invalid.
func Full(shape Shape, value float32) *Tensor {
	return tensor.Full(shape, value)
}

// Randn creates a tensor with values drawn from the standard normal
// distribution N(0, 1), using the caller's random source.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	w := tensor.Randn(tensor.Shape{784, 128}, rng)
func Randn(shape Shape, rng *rand.Rand) *Tensor {
	return tensor.Randn(shape, rng)
}
