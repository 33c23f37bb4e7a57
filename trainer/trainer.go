// Copyright 2025 Descent ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package trainer

import (
	"github.com/descent-ml/descent/internal/data"
	"github.com/descent-ml/descent/internal/nn"
	"github.com/descent-ml/descent/internal/optim"
	"github.com/descent-ml/descent/internal/trainer"
)

// Source is the abstract provider of training batches. One epoch is one
// Reset followed by Next calls until ok is false. data.Loader is the
// standard implementation.
type Source = trainer.Source

// Phase is the position of a Step inside one training iteration.
type Phase = trainer.Phase

// Step phases, in transition order.
const (
	Ready        Phase = trainer.Ready
	ForwardDone  Phase = trainer.ForwardDone
	LossComputed Phase = trainer.LossComputed
	BackwardDone Phase = trainer.BackwardDone
	Updated      Phase = trainer.Updated
)

// Step owns one forward -> loss -> backward -> update cycle over a
// network, enforcing the transition order at every method.
type Step = trainer.Step

// NewStep creates a Step in the Ready phase.
//
// Example:
//
//	step := trainer.NewStep(model, criterion, optimizer)
//	if _, err := step.Run(batch); err != nil {
//	    // parameters are unchanged; the step is back in Ready
//	}
func NewStep(net *nn.Network, criterion *nn.SoftmaxCrossEntropy, opt optim.Optimizer) *Step {
	return trainer.NewStep(net, criterion, opt)
}

// RunConfig captures the knobs of the training loop.
type RunConfig = trainer.RunConfig

// Summary describes a finished training run.
type Summary = trainer.Summary

// Run trains the network on the source for a fixed number of epochs,
// logging a status line every RunConfig.ReportEvery steps.
func Run(net *nn.Network, criterion *nn.SoftmaxCrossEntropy, opt optim.Optimizer, source Source, cfg RunConfig) (Summary, error) {
	return trainer.Run(net, criterion, opt, source, cfg)
}

// EvalResult describes one evaluation pass.
type EvalResult = trainer.EvalResult

// Evaluate runs the network over the source without training it:
// forward passes and loss bookkeeping only, no gradients.
func Evaluate(net *nn.Network, criterion *nn.SoftmaxCrossEntropy, source Source) (EvalResult, error) {
	return trainer.Evaluate(net, criterion, source)
}

// Compile-time check that the standard loader feeds the trainer.
var _ Source = (*data.Loader)(nil)
