// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/dnn/internal/optim"
)

// Optimizer applies gradient updates to parameter matrices.
type Optimizer = optim.Optimizer

// Kind identifies an optimization algorithm.
type Kind = optim.Kind

// GradientDescent is plain gradient descent.
const GradientDescent = optim.GradientDescent

// DefaultLR is used when New is given a non-positive rate.
const DefaultLR = optim.DefaultLR

// ErrUnsupportedOptimizer is returned for an unknown Kind.
var ErrUnsupportedOptimizer = optim.ErrUnsupportedOptimizer

// New creates an optimizer of the given kind.
//
// Example:
//
//	opt, err := optim.New(optim.GradientDescent, 0.1)
//	err = opt.Update(w, dw) // w -= 0.1 * dw
func New(kind Kind, lr float64) (*Optimizer, error) {
	return optim.New(kind, lr)
}
