// Copyright 2025 Descent ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layers and loss of the digit classifier.
//
// # Overview
//
// This package contains:
//   - Layers: Linear, ReLU
//   - Loss: SoftmaxCrossEntropy with a closed-form gradient
//   - Network: the input -> hidden -> output stack built by NewMLP
//   - Utilities: Layer interface, Parameter, Accuracy
//   - Errors: DimensionError, InvalidInputError, NumericalInstabilityError
//
// There is no computation graph and no automatic differentiation: every
// layer computes its gradients from an explicit hand-derived formula,
// caching during forward exactly the activations its formula needs.
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/descent-ml/descent/nn"
//	)
//
//	func main() {
//	    rng := rand.New(rand.NewSource(42))
//
//	    // 784 -> 128 -> ReLU -> 64 -> ReLU -> 10
//	    model, err := nn.NewMLP(784, []int{128, 64}, 10, rng)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    criterion := nn.NewSoftmaxCrossEntropy()
//
//	    logits, err := model.Forward(inputs)
//	    loss, lossGrad, err := criterion.Forward(logits, labels)
//	    model.Backward(lossGrad)
//	}
//
// # Error Model
//
// Data-dependent failures (wrong widths, bad labels, non-finite values)
// are returned as typed errors and leave the model unchanged. Sequencing
// mistakes (Backward without Forward, mismatched gradient shapes) are
// programmer errors and panic.
package nn
