package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrTruncated          = errors.New("file is truncated")
)

// ValidationError provides detailed information about a malformed
// header, so corrupt or hand-edited files are rejected with a reason
// instead of a generic failure.
type ValidationError struct {
	Type    string // kind of violation (e.g., "out_of_bounds", "shape_size_mismatch")
	Tensor  string // primary tensor name involved, if any
	Tensor2 string // secondary tensor name (for overlap errors)
	Details string // additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Tensor2 != "" {
		return fmt.Sprintf("%s: tensors %q and %q: %s", e.Type, e.Tensor, e.Tensor2, e.Details)
	}
	if e.Tensor != "" {
		return fmt.Sprintf("%s: tensor %q: %s", e.Type, e.Tensor, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}
