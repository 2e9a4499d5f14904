// Package nn implements the building blocks of a dense classifier:
//   - Layer: the contract between a layer and the orchestrator that drives it
//   - Dense: fully connected layer with an optional activation
//   - Activation: pointwise nonlinearities (ReLU)
//   - Loss: softmax cross-entropy gradient
//   - Parameter: a trainable matrix plus its gradient
//
// Layers never reference each other. The orchestrator hands every layer the
// input it was fed and the gradient coming back from the layer after it.
package nn

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/dnn/internal/optim"
)

// LayerKind enumerates the layer kinds a stack may hold.
type LayerKind int

// Supported layer kinds.
const (
	DenseKind LayerKind = iota
)

// String returns the name of the layer kind.
func (k LayerKind) String() string {
	if k == DenseKind {
		return "dense"
	}
	return "unknown"
}

// Layer is one stage of a sequential stack.
//
// Per batch a layer moves through idle -> forward done -> backward done ->
// idle: ForwardPass caches the output, BackwardPass consumes that cache and
// fills the parameter gradients, Update applies them. Calling BackwardPass
// or Update out of order returns an ErrPrecondition error.
//
// The interface is sealed; Dense is the only implementation.
type Layer interface {
	// Kind identifies the concrete layer kind.
	Kind() LayerKind

	// Index is the position of the layer in its stack. The layer at index 0
	// does not propagate a gradient to its input.
	Index() int

	// InFeatures and OutFeatures are the input and output widths.
	InFeatures() int
	OutFeatures() int

	// Forward computes the output for inference. It caches nothing and does
	// not change the layer state.
	Forward(input mat.Matrix) (*mat.Dense, error)

	// ForwardPass computes the output for training and caches it.
	ForwardPass(input mat.Matrix) error

	// BackwardPass consumes the gradient of the loss with respect to this
	// layer's output, which it modifies in place. It returns the gradient
	// with respect to its input, or nil for the first layer of a stack.
	BackwardPass(input mat.Matrix, grad *mat.Dense) (*mat.Dense, error)

	// Update sets the optimizer's learning rate to lr and applies it to
	// every parameter.
	Update(opt *optim.Optimizer, lr float64) error

	// Output returns the cached output of the last ForwardPass.
	Output() *mat.Dense

	// Parameters returns the trainable parameters of the layer.
	Parameters() []*Parameter

	sealed()
}
