package tensor

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// Tensor is a dense float32 tensor stored in row-major order.
//
// Tensors are either vectors (rank 1) or matrices (rank 2). Each tensor
// owns its buffer exclusively: operations never alias two tensors to the
// same memory, and every op that produces a new value allocates a fresh
// buffer. The only mutating operations are Set, Set1, and AddScaled, all
// of which are explicit about it.
//
// Example:
//
//	w, _ := tensor.New(tensor.Shape{784, 128})
//	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
type Tensor struct {
	shape Shape
	data  []float32
}

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Tensor{
		shape: shape.Clone(),
		data:  make([]float32, shape.NumElements()),
	}, nil
}

// FromSlice creates a tensor from existing data.
//
// The data is copied, so the caller keeps ownership of the slice.
// Returns an error if the shape is invalid or the element count does
// not match the shape.
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), []int(shape), shape.NumElements())
	}
	t := &Tensor{
		shape: shape.Clone(),
		data:  make([]float32, len(data)),
	}
	copy(t.data, data)
	return t, nil
}

// Shape returns the tensor's shape. The returned slice must not be modified.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Data returns the underlying buffer without copying.
//
// The layout is row-major: element (i, j) of a matrix lives at
// data[i*cols + j].
func (t *Tensor) Data() []float32 {
	return t.data
}

// Rank returns the number of dimensions (1 or 2).
func (t *Tensor) Rank() int {
	return len(t.shape)
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Rows returns the number of rows of a matrix.
// Panics if the tensor is not rank 2.
func (t *Tensor) Rows() int {
	t.mustBeMatrix("Rows")
	return t.shape[0]
}

// Cols returns the number of columns of a matrix.
// Panics if the tensor is not rank 2.
func (t *Tensor) Cols() int {
	t.mustBeMatrix("Cols")
	return t.shape[1]
}

// At returns element (i, j) of a matrix.
// Panics if the tensor is not rank 2 or the indices are out of range.
func (t *Tensor) At(i, j int) float32 {
	t.mustBeMatrix("At")
	return t.data[t.index(i, j)]
}

// Set assigns element (i, j) of a matrix.
// Panics if the tensor is not rank 2 or the indices are out of range.
func (t *Tensor) Set(i, j int, v float32) {
	t.mustBeMatrix("Set")
	t.data[t.index(i, j)] = v
}

// At1 returns element i of a vector.
// Panics if the tensor is not rank 1 or the index is out of range.
func (t *Tensor) At1(i int) float32 {
	t.mustBeVector("At1")
	return t.data[t.index1(i)]
}

// Set1 assigns element i of a vector.
// Panics if the tensor is not rank 1 or the index is out of range.
func (t *Tensor) Set1(i int, v float32) {
	t.mustBeVector("Set1")
	t.data[t.index1(i)] = v
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	clone := &Tensor{
		shape: t.shape.Clone(),
		data:  make([]float32, len(t.data)),
	}
	copy(clone.data, t.data)
	return clone
}

// Equal reports whether two tensors have the same shape and identical
// element values. NaN is not equal to anything, including itself.
func (t *Tensor) Equal(other *Tensor) bool {
	if !t.shape.Equal(other.shape) {
		return false
	}
	for i, v := range t.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// AllFinite reports whether every element is a finite number
// (no NaN, no ±Inf).
func (t *Tensor) AllFinite() bool {
	for _, v := range t.data {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// String renders the tensor for debugging. Large tensors are elided.
func (t *Tensor) String() string {
	const maxShown = 8
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tensor(shape=%v, data=[", []int(t.shape))
	for i, v := range t.data {
		if i == maxShown {
			sb.WriteString(", ...")
			break
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%g", v)
	}
	sb.WriteString("])")
	return sb.String()
}

func (t *Tensor) index(i, j int) int {
	rows, cols := t.shape[0], t.shape[1]
	if i < 0 || i >= rows || j < 0 || j >= cols {
		panic(fmt.Sprintf("tensor: index (%d, %d) out of range for shape %v", i, j, []int(t.shape)))
	}
	return i*cols + j
}

func (t *Tensor) index1(i int) int {
	if i < 0 || i >= len(t.data) {
		panic(fmt.Sprintf("tensor: index %d out of range for shape %v", i, []int(t.shape)))
	}
	return i
}

func (t *Tensor) mustBeMatrix(op string) {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("tensor.%s: requires a 2D tensor, got shape %v", op, []int(t.shape)))
	}
}

func (t *Tensor) mustBeVector(op string) {
	if len(t.shape) != 1 {
		panic(fmt.Sprintf("tensor.%s: requires a 1D tensor, got shape %v", op, []int(t.shape)))
	}
}
