package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// validateHeader checks the decoded header against the data section
// before any tensor is materialized. A malformed file is rejected with
// a ValidationError naming the violation.
func validateHeader(h *Header, dataSize int64) error {
	if len(h.Tensors) > MaxTensorCount {
		return &ValidationError{
			Type:    "too_many_tensors",
			Details: fmt.Sprintf("got %d, max %d", len(h.Tensors), MaxTensorCount),
		}
	}

	arch := h.Architecture
	if arch.InputDim <= 0 || arch.NumClasses <= 0 {
		return &ValidationError{
			Type:    "invalid_architecture",
			Details: fmt.Sprintf("input_dim=%d, num_classes=%d (must be positive)", arch.InputDim, arch.NumClasses),
		}
	}
	for i, hd := range arch.HiddenSizes {
		if hd <= 0 {
			return &ValidationError{
				Type:    "invalid_architecture",
				Details: fmt.Sprintf("hidden_sizes[%d]=%d (must be positive)", i, hd),
			}
		}
	}

	for _, t := range h.Tensors {
		if err := validateTensorName(t.Name); err != nil {
			return err
		}
		if err := validateTensorShape(t); err != nil {
			return err
		}
	}

	return validateTensorOffsets(h.Tensors, dataSize)
}

// validateTensorName rejects names that are too long or contain path
// characters, which have no business in a state-dict key.
func validateTensorName(name string) error {
	if len(name) > MaxTensorNameLen {
		return &ValidationError{
			Type:    "name_too_long",
			Tensor:  name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen),
		}
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") || strings.Contains(name, "\x00") {
		return &ValidationError{
			Type:    "invalid_name",
			Tensor:  name,
			Details: "contains path separator, '..', or null byte",
		}
	}
	return nil
}

// validateTensorShape checks that a tensor's declared byte size matches
// its shape, so the reader never trusts a size the shape contradicts.
func validateTensorShape(t TensorMeta) error {
	if len(t.Shape) == 0 || len(t.Shape) > 2 {
		return &ValidationError{
			Type:    "invalid_shape",
			Tensor:  t.Name,
			Details: fmt.Sprintf("rank %d (must be 1 or 2)", len(t.Shape)),
		}
	}
	elements := int64(1)
	for _, d := range t.Shape {
		if d <= 0 {
			return &ValidationError{
				Type:    "invalid_shape",
				Tensor:  t.Name,
				Details: fmt.Sprintf("dimension %d (must be positive)", d),
			}
		}
		elements *= int64(d)
	}
	if t.Size != elements*4 {
		return &ValidationError{
			Type:    "shape_size_mismatch",
			Tensor:  t.Name,
			Details: fmt.Sprintf("shape %v implies %d bytes, header says %d", t.Shape, elements*4, t.Size),
		}
	}
	return nil
}

// validateTensorOffsets checks for negative, out-of-bounds, and
// overlapping tensor regions in the data section.
func validateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	sorted := make([]TensorMeta, len(tensors))
	copy(sorted, tensors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, t := range sorted {
		if t.Offset < 0 || t.Size < 0 {
			return &ValidationError{
				Type:    "negative_offset",
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset=%d, size=%d (negative values not allowed)", t.Offset, t.Size),
			}
		}
		if t.Offset+t.Size > dataSize {
			return &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", t.Offset, t.Size, dataSize),
			}
		}
		if i < len(sorted)-1 {
			next := sorted[i+1]
			if t.Offset+t.Size > next.Offset {
				return &ValidationError{
					Type:    "offset_overlap",
					Tensor:  t.Name,
					Tensor2: next.Name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						t.Offset, t.Offset+t.Size, next.Offset, next.Offset+next.Size),
				}
			}
		}
	}

	return nil
}
