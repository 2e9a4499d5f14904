// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/dnn/internal/tensor"
)

// Shape is a list of dimension sizes.
type Shape = tensor.Shape

// ShapeOf returns the shape of m.
func ShapeOf(m mat.Matrix) Shape {
	return tensor.ShapeOf(m)
}

// ShapeError reports incompatible operand shapes.
type ShapeError = tensor.ShapeError

// Error kinds.
var (
	// ErrConfiguration marks invalid settings: unknown kinds, bad sizes.
	ErrConfiguration = tensor.ErrConfiguration

	// ErrShapeMismatch marks incompatible operand shapes.
	ErrShapeMismatch = tensor.ErrShapeMismatch

	// ErrPrecondition marks a call made out of order.
	ErrPrecondition = tensor.ErrPrecondition
)
