package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// MatMul computes the matrix product t @ other.
//
// Shapes: (m, k) @ (k, n) -> (m, n).
//
// The multiplication runs on gonum's float32 BLAS kernels (Sgemm).
// Panics on shape mismatch.
func (t *Tensor) MatMul(other *Tensor) *Tensor {
	t.mustBeMatrix("MatMul")
	other.mustBeMatrix("MatMul")
	if t.shape[1] != other.shape[0] {
		panic(fmt.Sprintf("tensor.MatMul: shape mismatch: %v @ %v", []int(t.shape), []int(other.shape)))
	}
	out := Zeros(Shape{t.shape[0], other.shape[1]})
	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1, t.general(), other.general(), 0, out.general())
	return out
}

// MatMulAT computes tT @ other without materializing the transpose.
//
// Shapes: (k, m) and (k, n) -> (m, n).
//
// This is the weight-gradient product, where the cached forward input
// appears transposed. Panics on shape mismatch.
func (t *Tensor) MatMulAT(other *Tensor) *Tensor {
	t.mustBeMatrix("MatMulAT")
	other.mustBeMatrix("MatMulAT")
	if t.shape[0] != other.shape[0] {
		panic(fmt.Sprintf("tensor.MatMulAT: shape mismatch: %v (transposed) @ %v", []int(t.shape), []int(other.shape)))
	}
	out := Zeros(Shape{t.shape[1], other.shape[1]})
	blas32.Gemm(blas.Trans, blas.NoTrans, 1, t.general(), other.general(), 0, out.general())
	return out
}

// MatMulBT computes t @ otherT without materializing the transpose.
//
// Shapes: (m, k) and (n, k) -> (m, n).
//
// This is the input-gradient product, where the weight matrix appears
// transposed. Panics on shape mismatch.
func (t *Tensor) MatMulBT(other *Tensor) *Tensor {
	t.mustBeMatrix("MatMulBT")
	other.mustBeMatrix("MatMulBT")
	if t.shape[1] != other.shape[1] {
		panic(fmt.Sprintf("tensor.MatMulBT: shape mismatch: %v @ %v (transposed)", []int(t.shape), []int(other.shape)))
	}
	out := Zeros(Shape{t.shape[0], other.shape[0]})
	blas32.Gemm(blas.NoTrans, blas.Trans, 1, t.general(), other.general(), 0, out.general())
	return out
}

// AddRowVec adds a vector to every row of a matrix and returns the result.
//
// Shapes: (m, n) + (n,) -> (m, n). This is the bias addition of a dense
// layer. Panics on shape mismatch.
func (t *Tensor) AddRowVec(v *Tensor) *Tensor {
	t.mustBeMatrix("AddRowVec")
	if v.Rank() != 1 || v.shape[0] != t.shape[1] {
		panic(fmt.Sprintf("tensor.AddRowVec: vector shape %v does not match %d matrix columns",
			[]int(v.shape), t.shape[1]))
	}
	out := t.Clone()
	cols := t.shape[1]
	for i := 0; i < t.shape[0]; i++ {
		row := blas32.Vector{N: cols, Inc: 1, Data: out.data[i*cols : (i+1)*cols]}
		blas32.Axpy(1, v.vector(), row)
	}
	return out
}

// ColSums returns the per-column sums of a matrix as a vector.
//
// Shapes: (m, n) -> (n,). Computed as a single Sgemv call against a ones
// vector. This is the bias-gradient reduction.
func (t *Tensor) ColSums() *Tensor {
	t.mustBeMatrix("ColSums")
	out := Zeros(Shape{t.shape[1]})
	ones := Ones(Shape{t.shape[0]})
	blas32.Gemv(blas.Trans, 1, t.general(), ones.vector(), 0, out.vector())
	return out
}

// AddScaled adds alpha*other to t in place: t[i] += alpha * other[i].
//
// The SGD update p = p - lr*g is AddScaled(-lr, grad) on the parameter
// tensor. Panics on shape mismatch.
func (t *Tensor) AddScaled(alpha float32, other *Tensor) {
	if !t.shape.Equal(other.shape) {
		panic(fmt.Sprintf("tensor.AddScaled: shape mismatch: %v vs %v", []int(t.shape), []int(other.shape)))
	}
	blas32.Axpy(alpha, other.vector(), t.vector())
}

// general views a rank-2 tensor as a row-major blas32 matrix. No copy.
func (t *Tensor) general() blas32.General {
	return blas32.General{
		Rows:   t.shape[0],
		Cols:   t.shape[1],
		Stride: t.shape[1],
		Data:   t.data,
	}
}

// vector views the flattened buffer as a blas32 vector. No copy.
func (t *Tensor) vector() blas32.Vector {
	return blas32.Vector{N: len(t.data), Inc: 1, Data: t.data}
}
