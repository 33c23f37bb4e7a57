package nn

import (
	"fmt"
	"math/rand"

	"github.com/descent-ml/descent/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [in_features, out_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [batch_size, out_features]
//
// Weights are initialized using Xavier/Glorot initialization.
// Biases are initialized to zeros.
//
// Backward computes the three gradients from their closed forms:
//
//	grad_W = xT @ grad_y          [in_features, out_features]
//	grad_b = column_sums(grad_y)  [out_features]
//	grad_x = grad_y @ WT          [batch_size, in_features]
//
// where x is the input cached during the forward pass. The cache lives
// for one forward/backward pair only.
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter // [in_features, out_features]
	bias        *Parameter // [out_features]
	cachedInput *tensor.Tensor
}

// NewLinear creates a new Linear layer.
//
// Weights are initialized using Xavier/Glorot uniform distribution from
// the supplied random source. Biases are initialized to zeros.
// Panics if either feature count is not positive.
func NewLinear(inFeatures, outFeatures int, rng *rand.Rand) *Linear {
	if inFeatures <= 0 || outFeatures <= 0 {
		panic(fmt.Sprintf("nn.NewLinear: feature counts must be positive, got (%d, %d)", inFeatures, outFeatures))
	}

	weight := NewParameter("weight", Xavier(inFeatures, outFeatures, tensor.Shape{inFeatures, outFeatures}, rng))
	bias := NewParameter("bias", Zeros(tensor.Shape{outFeatures}))

	return &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
	}
}

// Forward computes y = x @ W + b and caches x for the backward pass.
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
//
// Returns a DimensionError if the input is not a matrix or its width
// does not match the layer. A failed forward leaves no cache behind.
func (l *Linear) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	shape := input.Shape()
	if len(shape) != 2 {
		return nil, &DimensionError{
			Op:   "Linear.Forward",
			Want: "2D input [batch, features]",
			Got:  fmt.Sprintf("shape %v", []int(shape)),
		}
	}
	if shape[1] != l.inFeatures {
		return nil, &DimensionError{
			Op:   "Linear.Forward",
			Want: fmt.Sprintf("%d input features", l.inFeatures),
			Got:  fmt.Sprintf("%d", shape[1]),
		}
	}

	l.cachedInput = input
	return input.MatMul(l.weight.Tensor()).AddRowVec(l.bias.Tensor()), nil
}

// Backward computes the parameter gradients and the input gradient
// from the cached forward input, consuming the cache.
//
// Weight and bias gradients are stored on the layer's Parameters; the
// returned tensor is grad_x for the previous layer.
func (l *Linear) Backward(gradOutput *tensor.Tensor) *tensor.Tensor {
	if l.cachedInput == nil {
		panic("Linear.Backward: no cached input, Forward must run first in each step")
	}

	x := l.cachedInput
	l.cachedInput = nil

	gradShape := gradOutput.Shape()
	if len(gradShape) != 2 || gradShape[0] != x.Shape()[0] || gradShape[1] != l.outFeatures {
		panic(fmt.Sprintf("Linear.Backward: gradient shape %v does not match forward output [%d, %d]",
			[]int(gradShape), x.Shape()[0], l.outFeatures))
	}

	// grad_W = xT @ grad_y
	l.weight.SetGrad(x.MatMulAT(gradOutput))

	// grad_b = column sums of grad_y
	l.bias.SetGrad(gradOutput.ColSums())

	// grad_x = grad_y @ WT
	return gradOutput.MatMulBT(l.weight.Tensor())
}

// Parameters returns [weight, bias].
func (l *Linear) Parameters() []*Parameter {
	return []*Parameter{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *Parameter {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear) Bias() *Parameter {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}
