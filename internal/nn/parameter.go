package nn

import (
	"gonum.org/v1/gonum/mat"
)

// Parameter is a trainable matrix together with its gradient.
//
// Both matrices are allocated once, with identical shapes, and are
// overwritten in place: the value by optimizer updates, the gradient by
// every backward pass. Gradients never accumulate across batches.
type Parameter struct {
	name  string     // Parameter name (e.g., "0.weight")
	value *mat.Dense // Current value
	grad  *mat.Dense // Gradient from the most recent backward pass
}

// NewParameter wraps value as a parameter with a zeroed gradient of the
// same shape.
func NewParameter(name string, value *mat.Dense) *Parameter {
	r, c := value.Dims()
	return &Parameter{
		name:  name,
		value: value,
		grad:  mat.NewDense(r, c, nil),
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the parameter matrix.
func (p *Parameter) Value() *mat.Dense {
	return p.value
}

// Grad returns the gradient matrix.
func (p *Parameter) Grad() *mat.Dense {
	return p.grad
}

// NumElements returns the number of scalar weights in the parameter.
func (p *Parameter) NumElements() int {
	r, c := p.value.Dims()
	return r * c
}

// ZeroGrad clears the gradient in place.
func (p *Parameter) ZeroGrad() {
	p.grad.Zero()
}
