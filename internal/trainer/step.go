package trainer

import (
	"fmt"

	"github.com/descent-ml/descent/internal/data"
	"github.com/descent-ml/descent/internal/nn"
	"github.com/descent-ml/descent/internal/optim"
	"github.com/descent-ml/descent/internal/tensor"
)

// Phase is the position of a Step inside one training iteration.
//
// A step moves through the phases strictly in order:
//
//	Ready -> ForwardDone -> LossComputed -> BackwardDone -> Updated -> Ready
//
// Each Step method performs exactly one transition and panics when
// called in any other phase. Data errors abort the iteration and return
// the step to Ready without touching the parameters.
type Phase int

const (
	// Ready means no batch is in flight.
	Ready Phase = iota
	// ForwardDone means logits exist for the current batch.
	ForwardDone
	// LossComputed means the scalar loss and its logits gradient exist.
	LossComputed
	// BackwardDone means every parameter carries a fresh gradient.
	BackwardDone
	// Updated means the parameters changed but the stale gradients
	// have not been discarded yet.
	Updated
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Ready:
		return "Ready"
	case ForwardDone:
		return "ForwardDone"
	case LossComputed:
		return "LossComputed"
	case BackwardDone:
		return "BackwardDone"
	case Updated:
		return "Updated"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Step owns one forward -> loss -> backward -> update cycle over a
// network.
//
// A training step is a small state machine, and Step enforces it:
// every method checks the current phase first, so calling Update
// twice, or Backward before ComputeLoss, fails loudly instead of
// silently training on stale activations or reapplying gradients.
//
// A Step is not safe for concurrent use; batches are strictly
// sequential, one in flight at a time.
type Step struct {
	net       *nn.Network
	criterion *nn.SoftmaxCrossEntropy
	opt       optim.Optimizer

	phase    Phase
	logits   *tensor.Tensor
	labels   []int
	loss     float32
	lossGrad *tensor.Tensor
}

// NewStep creates a Step in the Ready phase.
func NewStep(net *nn.Network, criterion *nn.SoftmaxCrossEntropy, opt optim.Optimizer) *Step {
	return &Step{
		net:       net,
		criterion: criterion,
		opt:       opt,
		phase:     Ready,
	}
}

// Phase returns the current phase.
func (s *Step) Phase() Phase {
	return s.phase
}

// Forward runs the batch through the network and holds on to the
// logits. Transition: Ready -> ForwardDone.
//
// An empty batch or a shape mismatch is returned as an error and leaves
// the step in Ready with the parameters untouched.
func (s *Step) Forward(batch data.Batch) error {
	s.mustBeIn(Ready, "Forward")

	if batch.Inputs == nil || batch.Size() == 0 {
		return &nn.InvalidInputError{
			Op:     "trainer.Step.Forward",
			Reason: "empty batch",
		}
	}

	logits, err := s.net.Forward(batch.Inputs)
	if err != nil {
		s.abort()
		return err
	}

	s.logits = logits
	s.labels = batch.Labels
	s.phase = ForwardDone
	return nil
}

// ComputeLoss reduces the logits to the scalar batch loss and obtains
// the gradient that seeds backpropagation.
// Transition: ForwardDone -> LossComputed.
//
// Malformed labels and non-finite logits or loss are returned as errors
// and reset the step to Ready.
func (s *Step) ComputeLoss() (float32, error) {
	s.mustBeIn(ForwardDone, "ComputeLoss")

	loss, lossGrad, err := s.criterion.Forward(s.logits, s.labels)
	if err != nil {
		s.abort()
		return 0, err
	}

	s.loss = loss
	s.lossGrad = lossGrad
	s.phase = LossComputed
	return loss, nil
}

// Backward propagates the loss gradient through the network, leaving a
// gradient on every parameter. Transition: LossComputed -> BackwardDone.
//
// If any parameter gradient comes out non-finite the step aborts with a
// NumericalInstabilityError: partial gradients are discarded and the
// parameters keep their values from the last committed update.
func (s *Step) Backward() error {
	s.mustBeIn(LossComputed, "Backward")

	s.net.Backward(s.lossGrad)

	for _, param := range s.net.Parameters() {
		grad := param.Grad()
		if grad == nil || grad.AllFinite() {
			continue
		}
		s.abort()
		return &nn.NumericalInstabilityError{
			Stage:  "gradient",
			Detail: fmt.Sprintf("NaN or Inf in gradient of %q; the learning rate may be too high", param.Name()),
		}
	}

	s.phase = BackwardDone
	return nil
}

// Update commits the step: the optimizer applies every gradient to its
// parameter, in place. Transition: BackwardDone -> Updated.
func (s *Step) Update() {
	s.mustBeIn(BackwardDone, "Update")

	s.opt.Step()
	s.phase = Updated
}

// Discard drops the now-stale gradients and readies the step for the
// next batch. Transition: Updated -> Ready.
//
// A gradient describes the parameter values it was computed against;
// after Update those values are gone, so keeping the gradients around
// could only ever reapply stale information.
func (s *Step) Discard() {
	s.mustBeIn(Updated, "Discard")

	s.opt.ZeroGrad()
	s.logits = nil
	s.labels = nil
	s.lossGrad = nil
	s.phase = Ready
}

// Run drives one complete iteration over the batch and returns its
// loss. The step ends in Ready whether the iteration succeeds or fails;
// on failure the parameters are exactly as the last successful Update
// left them.
func (s *Step) Run(batch data.Batch) (float32, error) {
	if err := s.Forward(batch); err != nil {
		return 0, err
	}
	loss, err := s.ComputeLoss()
	if err != nil {
		return 0, err
	}
	if err := s.Backward(); err != nil {
		return 0, err
	}
	s.Update()
	s.Discard()
	return loss, nil
}

// abort resets a failed iteration: partial gradients are dropped and
// the phase returns to Ready. Parameters are never touched here, so
// prior committed updates survive any failed step.
func (s *Step) abort() {
	s.opt.ZeroGrad()
	s.logits = nil
	s.labels = nil
	s.lossGrad = nil
	s.phase = Ready
}

func (s *Step) mustBeIn(want Phase, op string) {
	if s.phase != want {
		panic(fmt.Sprintf("trainer.Step.%s: illegal in phase %s, requires %s", op, s.phase, want))
	}
}
