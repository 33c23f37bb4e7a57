package optim

import (
	"fmt"

	"github.com/descent-ml/descent/internal/nn"
)

// SGD implements plain stochastic gradient descent.
//
// Update rule:
//
//	param = param - lr * gradient
//
// applied elementwise and in place to every parameter. There is no
// momentum and no weight decay: the update depends only on the current
// gradient and the learning rate.
//
// Example:
//
//	optimizer := optim.NewSGD(net.Parameters(), optim.SGDConfig{LR: 0.01})
//
//	for each batch {
//	    // ... forward, loss, backward ...
//	    optimizer.Step()
//	    optimizer.ZeroGrad()
//	}
type SGD struct {
	params []*nn.Parameter
	lr     float32
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR float32 // Learning rate (default: 0.01)
}

// NewSGD creates a new SGD optimizer over the given parameters.
//
// A zero LR selects the default of 0.01. A negative LR is a
// configuration bug and panics; validated configuration should reject
// it long before an optimizer is built.
func NewSGD(params []*nn.Parameter, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	if config.LR < 0 {
		panic(fmt.Sprintf("optim.NewSGD: learning rate must be positive, got %f", config.LR))
	}

	return &SGD{
		params: params,
		lr:     config.LR,
	}
}

// Step applies param -= lr * grad to every parameter, in place.
//
// Every parameter must carry the gradient stored by the backward pass
// of the current step. A nil gradient means Step was called before a
// completed backward pass (or twice for the same batch), which is a
// sequencing bug and panics.
func (s *SGD) Step() {
	for _, param := range s.params {
		grad := param.Grad()
		if grad == nil {
			panic(fmt.Sprintf("optim.SGD.Step: parameter %q has no gradient; backward must complete before each update",
				param.Name()))
		}
		param.Tensor().AddScaled(-s.lr, grad)
	}
}

// ZeroGrad discards the gradients of all parameters.
func (s *SGD) ZeroGrad() {
	for _, param := range s.params {
		param.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float32 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float32) {
	if lr <= 0 {
		panic(fmt.Sprintf("optim.SGD.SetLR: learning rate must be positive, got %f", lr))
	}
	s.lr = lr
}

var _ Optimizer = (*SGD)(nil)
