// Package nn implements the layers of the digit classifier.
//
// The package provides the building blocks of the fixed feed-forward
// architecture:
//   - Layer interface: forward pass, hand-derived backward pass, parameters
//   - Parameter: a tensor bundled with its gradient
//   - Linear: fully connected layer
//   - ReLU: rectified linear activation
//   - SoftmaxCrossEntropy: loss with closed-form gradient
//   - Network: the input -> hidden -> output stack
//
// Every layer computes its own gradients from explicit formulas. There is
// no computation graph and no automatic differentiation: backward passes
// work because each layer caches exactly the activations its formula
// needs during forward.
package nn

import "github.com/descent-ml/descent/internal/tensor"

// Layer is the interface implemented by every stage of the network.
//
// A layer participates in one training step as follows: Forward consumes
// a batch and caches whatever its gradient formula needs, Backward
// consumes the gradient flowing back from the next stage and returns the
// gradient for the previous one. The cache is valid for a single
// forward/backward pair; Backward without a preceding Forward panics.
type Layer interface {
	// Forward computes the layer output for a [batch, features] input.
	//
	// Data-dependent failures (wrong input width, malformed batches)
	// are returned as errors and leave the layer unchanged.
	Forward(input *tensor.Tensor) (*tensor.Tensor, error)

	// Backward consumes the gradient of the loss with respect to this
	// layer's output and returns the gradient with respect to its input.
	// Parameter gradients are stored on the layer's Parameters.
	//
	// Calling Backward without a cached forward activation, or with a
	// gradient whose shape does not match the forward output, is a
	// sequencing bug and panics.
	Backward(gradOutput *tensor.Tensor) *tensor.Tensor

	// Parameters returns the trainable parameters of this layer.
	// Layers without parameters return nil.
	Parameters() []*Parameter
}
