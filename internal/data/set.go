package data

import "fmt"

// Set is a validated in-memory dataset of (input vector, label) pairs.
//
// Construction checks the invariants once, so batches drawn from a Set
// never need re-validation: every input has the same width, every label
// lies in [0, numClasses), and the two slices line up.
type Set struct {
	inputs     [][]float32
	labels     []int
	dim        int
	numClasses int
}

// NewSet builds a dataset from raw inputs and labels.
//
// The slices are retained, not copied; the caller must not mutate them
// afterwards. Returns an error if the dataset is empty, the lengths
// differ, the input widths are not uniform, or a label is out of range.
func NewSet(inputs [][]float32, labels []int, numClasses int) (*Set, error) {
	if numClasses <= 0 {
		return nil, fmt.Errorf("number of classes must be > 0 (got %d)", numClasses)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}
	if len(inputs) != len(labels) {
		return nil, fmt.Errorf("input count (%d) != label count (%d)", len(inputs), len(labels))
	}

	dim := len(inputs[0])
	if dim == 0 {
		return nil, fmt.Errorf("sample 0 has zero features")
	}
	for i, in := range inputs {
		if len(in) != dim {
			return nil, fmt.Errorf("sample %d has %d features, expected %d", i, len(in), dim)
		}
	}
	for i, label := range labels {
		if label < 0 || label >= numClasses {
			return nil, fmt.Errorf("label %d at sample %d outside [0, %d)", label, i, numClasses)
		}
	}

	return &Set{
		inputs:     inputs,
		labels:     labels,
		dim:        dim,
		numClasses: numClasses,
	}, nil
}

// Len returns the number of examples.
func (s *Set) Len() int {
	return len(s.inputs)
}

// Dim returns the feature width of every input.
func (s *Set) Dim() int {
	return s.dim
}

// NumClasses returns the number of label classes.
func (s *Set) NumClasses() int {
	return s.numClasses
}

// Split partitions the dataset into two Sets, the first holding
// (1 - fraction) of the examples and the second the rest.
//
// The split is positional: shuffle before building the Set if the
// source data is ordered by class. Returns an error if the fraction
// leaves either side empty.
func (s *Set) Split(fraction float64) (*Set, *Set, error) {
	if fraction <= 0 || fraction >= 1 {
		return nil, nil, fmt.Errorf("split fraction must be in (0, 1), got %g", fraction)
	}

	splitIdx := int(float64(s.Len()) * (1.0 - fraction))
	if splitIdx == 0 || splitIdx == s.Len() {
		return nil, nil, fmt.Errorf("split fraction %g leaves an empty partition for %d samples", fraction, s.Len())
	}

	first := &Set{
		inputs:     s.inputs[:splitIdx],
		labels:     s.labels[:splitIdx],
		dim:        s.dim,
		numClasses: s.numClasses,
	}
	second := &Set{
		inputs:     s.inputs[splitIdx:],
		labels:     s.labels[splitIdx:],
		dim:        s.dim,
		numClasses: s.numClasses,
	}
	return first, second, nil
}
