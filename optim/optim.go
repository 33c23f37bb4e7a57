// Copyright 2025 Descent ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/descent-ml/descent/internal/nn"
	"github.com/descent-ml/descent/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// SGD (Stochastic Gradient Descent)

// SGD implements plain stochastic gradient descent:
// param = param - lr * gradient, in place, with no momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for the SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer over the given parameters.
//
// Example:
//
//	model, _ := nn.NewMLP(784, []int{128, 64}, 10, rng)
//	optimizer := optim.NewSGD(
//	    model.Parameters(),
//	    optim.SGDConfig{LR: 0.01},
//	)
func NewSGD(params []*nn.Parameter, config SGDConfig) *SGD {
	return optim.NewSGD(params, config)
}

// Compile-time check that SGD satisfies the Optimizer interface.
var _ Optimizer = (*SGD)(nil)
