// Package optim implements the parameter update stage of training.
//
// This package provides:
//   - Optimizer interface: the update stage contract
//   - SGD: plain stochastic gradient descent
//
// Gradients are read directly from each Parameter, where the backward
// pass stored them. An optimizer consumes them exactly once per step:
// after Step the caller drops them with ZeroGrad, because a gradient
// describes the parameter values it was computed against and reusing it
// after an update would apply stale information.
//
// Example usage:
//
//	optimizer := optim.NewSGD(net.Parameters(), optim.SGDConfig{LR: 0.01})
//
//	for each batch {
//	    logits, _ := net.Forward(batch.Inputs)
//	    _, lossGrad, _ := criterion.Forward(logits, batch.Labels)
//	    net.Backward(lossGrad)
//	    optimizer.Step()
//	    optimizer.ZeroGrad()
//	}
package optim

// Optimizer is the interface for parameter update algorithms.
type Optimizer interface {
	// Step applies one gradient update to every parameter, in place.
	//
	// Every parameter must carry a gradient from a completed backward
	// pass; a missing gradient is a sequencing bug and panics.
	Step()

	// ZeroGrad discards all parameter gradients.
	//
	// Call after every Step so stale gradients cannot leak into the
	// next iteration.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float32
}
