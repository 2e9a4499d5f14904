// Package optim implements the parameter update rules used during training.
//
// An Optimizer is created once per training run and shared by every layer.
// The dense classifier resets its learning rate before each mini-batch and
// then asks each layer to apply it to its (parameter, gradient) pairs:
//
//	opt, _ := optim.New(optim.GradientDescent, 0.01)
//	opt.SetLearningRate(lr / math.Sqrt(float64(batchRows)))
//	_ = opt.Update(weight, weightGrad)
//	_ = opt.Update(bias, biasGrad)
package optim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/dnn/internal/tensor"
)

// ErrUnsupportedOptimizer is returned for an optimizer kind outside Kind's
// enumeration.
var ErrUnsupportedOptimizer = fmt.Errorf("%w: unsupported optimizer", tensor.ErrConfiguration)

// Kind enumerates the update rules.
type Kind int

// Supported optimizers.
const (
	GradientDescent Kind = iota
)

// String returns the name of the optimizer kind.
func (k Kind) String() string {
	switch k {
	case GradientDescent:
		return "gradient_descent"
	default:
		return fmt.Sprintf("optimizer(%d)", int(k))
	}
}

// DefaultLR is the learning rate of an optimizer created with lr <= 0.
const DefaultLR = 0.01

// Optimizer applies one update rule to parameter matrices in place.
//
// It keeps no per-parameter state, so a single instance can update every
// layer's tensors one after another within a batch.
type Optimizer struct {
	kind Kind
	lr   float64
}

// New creates an optimizer of the given kind.
func New(kind Kind, lr float64) (*Optimizer, error) {
	switch kind {
	case GradientDescent:
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedOptimizer, kind)
	}
	if lr <= 0 {
		lr = DefaultLR
	}
	return &Optimizer{kind: kind, lr: lr}, nil
}

// Kind returns the optimizer kind.
func (o *Optimizer) Kind() Kind {
	return o.kind
}

// SetLearningRate replaces the learning rate. No history is kept.
func (o *Optimizer) SetLearningRate(lr float64) {
	o.lr = lr
}

// LearningRate returns the current learning rate.
func (o *Optimizer) LearningRate() float64 {
	return o.lr
}

// Update applies the update rule to param using grad. The two matrices
// must have identical shapes.
func (o *Optimizer) Update(param, grad *mat.Dense) error {
	if err := tensor.CheckSame("optimizer update", param, grad); err != nil {
		return err
	}
	switch o.kind {
	case GradientDescent:
		descend(param, grad, o.lr)
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedOptimizer, o.kind)
	}
}
