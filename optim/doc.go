// Copyright 2025 Descent ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the parameter update stage of training.
//
// # Overview
//
// This package contains:
//   - SGD: plain stochastic gradient descent
//   - Optimizer interface for custom update rules
//
// # Basic Usage
//
//	import (
//	    "github.com/descent-ml/descent/nn"
//	    "github.com/descent-ml/descent/optim"
//	)
//
//	func main() {
//	    model, _ := nn.NewMLP(784, []int{128, 64}, 10, rng)
//	    criterion := nn.NewSoftmaxCrossEntropy()
//
//	    optimizer := optim.NewSGD(
//	        model.Parameters(),
//	        optim.SGDConfig{LR: 0.01},
//	    )
//
//	    // Training loop
//	    for each batch {
//	        logits, _ := model.Forward(batch.Inputs)
//	        _, lossGrad, _ := criterion.Forward(logits, batch.Labels)
//	        model.Backward(lossGrad)
//
//	        optimizer.Step()
//	        optimizer.ZeroGrad()
//	    }
//	}
//
// # Gradient Lifecycle
//
// Gradients are read directly from each Parameter, where the backward
// pass stored them, and are valid for exactly one update. Step panics
// if any parameter is missing its gradient; ZeroGrad discards them so
// stale values cannot leak into the next iteration.
package optim
