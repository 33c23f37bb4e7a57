// Copyright 2025 Descent ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor operations in Descent.
//
// # Overview
//
// This package contains:
//   - Tensor: dense float32 vectors (rank 1) and matrices (rank 2)
//   - Shape: dimension list with validation
//   - Constructors: New, FromSlice, Zeros, Ones, Full, Randn
//
// Every operation that produces a value allocates a fresh tensor; the
// only in-place mutators are Set, Set1, and AddScaled. Matrix products
// run on gonum's BLAS bindings.
//
// # Basic Usage
//
//	import "github.com/descent-ml/descent/tensor"
//
//	func main() {
//	    x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    w := tensor.Zeros(tensor.Shape{3, 4})
//
//	    y := x.MatMul(w) // [2, 3] x [3, 4] -> [2, 4]
//	    fmt.Println(y.Shape())
//	}
//
// # Matrix Products
//
// Three product forms cover the forward and backward passes of a
// linear layer without materializing any transpose:
//
//	y := x.MatMul(w)       // x  @ w
//	gw := x.MatMulAT(gy)   // xᵀ @ gy
//	gx := gy.MatMulBT(w)   // gy @ wᵀ
//
// # Reproducibility
//
// Randn takes the *rand.Rand explicitly, so a fixed seed reproduces
// the exact same initialization:
//
//	rng := rand.New(rand.NewSource(42))
//	w := tensor.Randn(tensor.Shape{784, 128}, rng)
package tensor
