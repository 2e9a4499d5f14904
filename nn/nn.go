// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/dnn/internal/nn"
)

// Layer is a trainable layer of a dense stack.
type Layer = nn.Layer

// LayerKind identifies a layer implementation.
type LayerKind = nn.LayerKind

// DenseKind identifies Dense layers.
const DenseKind = nn.DenseKind

// Dense is a fully connected layer.
type Dense = nn.Dense

// NewDense creates the dense layer at position index of a stack.
//
// Example:
//
//	rng := rand.New(rand.NewPCG(1, 2))
//	layer, err := nn.NewDense(0, 784, 60, nn.ReLU, nn.InitXavier, rng)
func NewDense(index, inFeatures, outFeatures int, activation Activation, init Initializer, rng *rand.Rand) (*Dense, error) {
	return nn.NewDense(index, inFeatures, outFeatures, activation, init, rng)
}

// Parameter is a trainable matrix and its gradient.
type Parameter = nn.Parameter

// NewParameter creates a parameter with a zeroed gradient.
func NewParameter(name string, value *mat.Dense) *Parameter {
	return nn.NewParameter(name, value)
}

// Activations

// Activation is an element-wise nonlinearity.
type Activation = nn.Activation

// Supported activations.
const (
	NoActivation = nn.NoActivation
	ReLU         = nn.ReLU
)

// ParseActivation maps a name such as "relu" to an Activation.
func ParseActivation(name string) (Activation, error) {
	return nn.ParseActivation(name)
}

// ApplyActivation applies a to x element-wise, in place.
func ApplyActivation(x *mat.Dense, a Activation) error {
	return nn.ApplyActivation(x, a)
}

// ActivationDerivative returns the derivative of a evaluated from the
// activation's output y.
func ActivationDerivative(y *mat.Dense, a Activation) (*mat.Dense, error) {
	return nn.ActivationDerivative(y, a)
}

// Loss

// LossKind identifies a loss function.
type LossKind = nn.LossKind

// SoftmaxCrossEntropy is the cross-entropy of row-softmax probabilities.
const SoftmaxCrossEntropy = nn.SoftmaxCrossEntropy

// Loss computes a loss value and its gradient.
type Loss = nn.Loss

// NewLoss returns the loss of the given kind.
func NewLoss(kind LossKind) (Loss, error) {
	return nn.NewLoss(kind)
}

// Initialization

// Initializer selects how weights and biases are drawn.
type Initializer = nn.Initializer

// Supported initializers.
const (
	InitXavier  = nn.InitXavier
	InitUniform = nn.InitUniform
)

// Xavier returns a Glorot-uniform fanIn×fanOut matrix.
func Xavier(fanIn, fanOut int, rng *rand.Rand) *mat.Dense {
	return nn.Xavier(fanIn, fanOut, rng)
}

// Errors

// Configuration and precondition errors returned by layers.
var (
	ErrUnsupportedActivation = nn.ErrUnsupportedActivation
	ErrUnsupportedLoss       = nn.ErrUnsupportedLoss
	ErrInvalidLayer          = nn.ErrInvalidLayer
	ErrBackwardBeforeForward = nn.ErrBackwardBeforeForward
	ErrUpdateBeforeBackward  = nn.ErrUpdateBeforeBackward
)
