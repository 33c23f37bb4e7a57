// Copyright 2025 Descent ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/descent-ml/descent/internal/nn"
	"github.com/descent-ml/descent/internal/tensor"
)

// Layer is the interface implemented by every stage of the network.
type Layer = nn.Layer

// Parameter represents a trainable parameter bundled with its gradient.
type Parameter = nn.Parameter

// NewParameter creates a new trainable parameter from an initialized tensor.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return nn.NewParameter(name, t)
}

// Layers

// Linear represents a fully connected layer with a hand-derived
// backward pass.
type Linear = nn.Linear

// NewLinear creates a new linear layer with Xavier-initialized weights
// and zero biases.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	layer := nn.NewLinear(784, 128, rng)
func NewLinear(inFeatures, outFeatures int, rng *rand.Rand) *Linear {
	return nn.NewLinear(inFeatures, outFeatures, rng)
}

// ReLU represents the rectified linear activation.
type ReLU = nn.ReLU

// NewReLU creates a new ReLU activation layer.
func NewReLU() *ReLU {
	return nn.NewReLU()
}

// Network

// Network is the feed-forward digit classifier.
type Network = nn.Network

// NewMLP creates the multi-layer perceptron: an input layer, hidden
// Linear+ReLU blocks, and a final Linear projection to class logits.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	model, err := nn.NewMLP(784, []int{128, 64}, 10, rng)
func NewMLP(inputDim int, hiddenDims []int, numClasses int, rng *rand.Rand) (*Network, error) {
	return nn.NewMLP(inputDim, hiddenDims, numClasses, rng)
}

// Loss

// SoftmaxCrossEntropy computes softmax cross-entropy loss and its
// closed-form gradient in a single fused forward call.
type SoftmaxCrossEntropy = nn.SoftmaxCrossEntropy

// NewSoftmaxCrossEntropy creates the loss stage.
//
// Example:
//
//	criterion := nn.NewSoftmaxCrossEntropy()
//	loss, lossGrad, err := criterion.Forward(logits, labels)
func NewSoftmaxCrossEntropy() *SoftmaxCrossEntropy {
	return nn.NewSoftmaxCrossEntropy()
}

// Accuracy returns the fraction of logit rows whose argmax equals the
// label, in [0, 1]. Panics if the label count does not match the batch.
func Accuracy(logits *tensor.Tensor, labels []int) float32 {
	return nn.Accuracy(logits, labels)
}

// Errors

// DimensionError reports an input whose shape does not match what an
// operation requires.
type DimensionError = nn.DimensionError

// InvalidInputError reports a structurally malformed input, such as an
// empty batch or an out-of-range label.
type InvalidInputError = nn.InvalidInputError

// NumericalInstabilityError reports a NaN or Inf detected in logits,
// loss values, or gradients.
type NumericalInstabilityError = nn.NumericalInstabilityError

// Compile-time checks that every layer satisfies the Layer interface.
var (
	_ Layer = (*Linear)(nil)
	_ Layer = (*ReLU)(nil)
)
