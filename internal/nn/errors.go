package nn

import "fmt"

// DimensionError reports an input whose shape does not match what an
// operation requires. It names the operation and both shapes so the
// mismatch can be traced to its source.
type DimensionError struct {
	Op   string // operation that rejected the input (e.g., "Linear.Forward")
	Want string // expected dimensions, human readable
	Got  string // actual dimensions
}

// Error implements the error interface.
func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: dimension mismatch: expected %s, got %s", e.Op, e.Want, e.Got)
}

// InvalidInputError reports a structurally malformed input, such as an
// empty batch or a label outside the valid class range.
type InvalidInputError struct {
	Op     string // operation that rejected the input
	Reason string // what was wrong with it
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: invalid input: %s", e.Op, e.Reason)
}

// NumericalInstabilityError reports a NaN or Inf detected in logits,
// loss values, or gradients. These are never masked: the step that
// produced them fails instead of training on garbage.
type NumericalInstabilityError struct {
	Stage  string // where the bad value appeared (e.g., "logits", "loss", "gradient")
	Detail string // which quantity was non-finite
}

// Error implements the error interface.
func (e *NumericalInstabilityError) Error() string {
	return fmt.Sprintf("numerical instability in %s: %s", e.Stage, e.Detail)
}
