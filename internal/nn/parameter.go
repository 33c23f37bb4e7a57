package nn

import "github.com/descent-ml/descent/internal/tensor"

// Parameter represents a trainable parameter in the network.
//
// A parameter bundles the value tensor with the gradient tensor computed
// for it during the current step, so the update stage never has to pair
// values and gradients by position. The gradient is nil outside the
// window between a backward pass and the following ZeroGrad.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightTensor)
//	w := weight.Tensor()
//	g := weight.Grad() // nil until a backward pass has run
type Parameter struct {
	name   string         // Parameter name (e.g., "weight", "bias")
	tensor *tensor.Tensor // The parameter value
	grad   *tensor.Tensor // Gradient for the current step, nil when stale
}

// NewParameter creates a new trainable parameter.
//
// The tensor should be initialized before creating the Parameter.
// The gradient starts out nil and is set by the layer's backward pass.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return &Parameter{
		name:   name,
		tensor: t,
		grad:   nil,
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Tensor returns the parameter value tensor.
func (p *Parameter) Tensor() *tensor.Tensor {
	return p.tensor
}

// Grad returns the gradient tensor for the current step.
//
// Returns nil if no gradient has been computed, or if the gradient has
// been discarded after an update.
func (p *Parameter) Grad() *tensor.Tensor {
	return p.grad
}

// SetGrad stores the gradient computed during the backward pass,
// replacing any previous one.
func (p *Parameter) SetGrad(grad *tensor.Tensor) {
	p.grad = grad
}

// ZeroGrad discards the gradient.
//
// Gradients are valid for exactly one update: once a step has applied
// them they are stale, and dropping them makes any accidental reuse
// fail instead of silently reapplying old values.
func (p *Parameter) ZeroGrad() {
	p.grad = nil
}
