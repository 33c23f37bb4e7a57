// Copyright 2025 Descent ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package trainer provides the training loop of the digit classifier.
//
// # Overview
//
// This package contains:
//   - Step: the per-batch state machine (forward, loss, backward, update)
//   - Run: the bounded epoch loop with periodic status reporting
//   - Evaluate: the forward-only pass over a dataset
//   - Source: the abstract provider of training batches
//
// # Basic Usage
//
//	import (
//	    "github.com/descent-ml/descent/nn"
//	    "github.com/descent-ml/descent/optim"
//	    "github.com/descent-ml/descent/trainer"
//	)
//
//	func main() {
//	    model, _ := nn.NewMLP(784, []int{128, 64}, 10, rng)
//	    criterion := nn.NewSoftmaxCrossEntropy()
//	    optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.01})
//
//	    summary, err := trainer.Run(model, criterion, optimizer, loader, trainer.RunConfig{
//	        Epochs:      5,
//	        ReportEvery: 100,
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("loss %.4f -> %.4f\n", summary.InitialLoss, summary.FinalLoss)
//	}
//
// # The Step State Machine
//
// Step exposes the five stages of one training iteration as explicit
// transitions:
//
//	Ready -> Forward -> ComputeLoss -> Backward -> Update -> Discard -> Ready
//
// Each method checks the current phase and panics when called out of
// order, so a loop that updates twice or skips the backward pass fails
// immediately. Data errors (bad batch widths, non-finite values) abort
// the iteration, return the step to Ready, and leave the parameters
// untouched.
//
// # Execution Model
//
// Training is single-threaded and synchronous: each step runs to
// completion before the next begins, and exactly one batch is in flight
// at any time. Training length is bounded by the epoch count.
package trainer
