package tensor

import (
	"fmt"
	"math/rand"

	"github.com/chewxy/math32"
)

// Zeros creates a tensor filled with zeros.
// Panics if the shape is invalid.
func Zeros(shape Shape) *Tensor {
	t, err := New(shape)
	if err != nil {
		panic(fmt.Sprintf("tensor.Zeros: %v", err))
	}
	return t
}

// Ones creates a tensor filled with ones.
// Panics if the shape is invalid.
func Ones(shape Shape) *Tensor {
	return Full(shape, 1)
}

// Full creates a tensor filled with the given value.
// Panics if the shape is invalid.
func Full(shape Shape, value float32) *Tensor {
	t, err := New(shape)
	if err != nil {
		panic(fmt.Sprintf("tensor.Full: %v", err))
	}
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// Randn creates a tensor with values drawn from the standard normal
// distribution N(0, 1) using the Box-Muller transform.
//
// The caller supplies the random source so runs stay reproducible under
// a fixed seed. Panics if the shape is invalid.
func Randn(shape Shape, rng *rand.Rand) *Tensor {
	t, err := New(shape)
	if err != nil {
		panic(fmt.Sprintf("tensor.Randn: %v", err))
	}
	for i := range t.data {
		u1 := rng.Float64()
		u2 := rng.Float64()
		for u1 == 0 {
			u1 = rng.Float64()
		}
		z := math32.Sqrt(-2*math32.Log(float32(u1))) * math32.Cos(2*math32.Pi*float32(u2))
		t.data[i] = z
	}
	return t
}
