package nn

import (
	"fmt"

	"github.com/descent-ml/descent/internal/tensor"
)

// ReLU is a Rectified Linear Unit activation layer.
//
// Applies the element-wise function: f(x) = max(0, x)
//
// The backward pass uses the cached pre-activation values: gradient
// flows through where the pre-activation was strictly positive and is
// zero everywhere else. An input of exactly 0 blocks the gradient.
type ReLU struct {
	cachedInput *tensor.Tensor
}

// NewReLU creates a new ReLU activation layer.
func NewReLU() *ReLU {
	return &ReLU{}
}

// Forward applies f(x) = max(0, x) and caches the pre-activation input.
func (r *ReLU) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	r.cachedInput = input

	out := input.Clone()
	data := out.Data()
	for i, v := range data {
		if v < 0 {
			data[i] = 0
		}
	}
	return out, nil
}

// Backward masks the incoming gradient with the cached pre-activation,
// consuming the cache.
//
// For each element: grad_in = grad_out where pre_activation > 0, else 0.
func (r *ReLU) Backward(gradOutput *tensor.Tensor) *tensor.Tensor {
	if r.cachedInput == nil {
		panic("ReLU.Backward: no cached pre-activation, Forward must run first in each step")
	}

	pre := r.cachedInput
	r.cachedInput = nil

	if !gradOutput.Shape().Equal(pre.Shape()) {
		panic(fmt.Sprintf("ReLU.Backward: gradient shape %v does not match forward shape %v",
			[]int(gradOutput.Shape()), []int(pre.Shape())))
	}

	grad := gradOutput.Clone()
	gradData := grad.Data()
	preData := pre.Data()
	for i := range gradData {
		if preData[i] <= 0 {
			gradData[i] = 0
		}
	}
	return grad
}

// Parameters returns nil (ReLU has no trainable parameters).
func (r *ReLU) Parameters() []*Parameter {
	return nil
}
