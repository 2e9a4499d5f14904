package nn

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/dnn/internal/optim"
	"github.com/born-ml/dnn/internal/tensor"
)

type layerState int

const (
	stateIdle layerState = iota
	stateForwardDone
	stateBackwardDone
)

// Dense implements a fully connected layer.
//
// Performs the transformation: y = act(x @ W + b)
// where:
//   - x is the input with shape [batch_size, in_features]
//   - W is the weight matrix with shape [in_features, out_features]
//   - b is the bias row with shape [1, out_features], added to every row
//   - act is the configured activation, if any
//
// Example:
//
//	rng := rand.New(rand.NewPCG(1, 2))
//	layer, _ := nn.NewDense(0, 784, 60, nn.ReLU, nn.InitXavier, rng)
//	out, _ := layer.Forward(batch) // shape: [rows, 60]
type Dense struct {
	index       int
	inFeatures  int
	outFeatures int
	activation  Activation
	weight      *Parameter // [in_features, out_features]
	bias        *Parameter // [1, out_features]

	// Scratch reused batch to batch; reshaped only when the row count changes.
	output *mat.Dense // post-activation cache of the last ForwardPass
	deriv  *mat.Dense // activation derivative at output
	dInput *mat.Dense // gradient handed to the previous layer

	state layerState
}

var _ Layer = (*Dense)(nil)

// NewDense creates the dense layer at position index of a stack.
func NewDense(index, inFeatures, outFeatures int, activation Activation, init Initializer, rng *rand.Rand) (*Dense, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: negative index %d", ErrInvalidLayer, index)
	}
	if err := (tensor.Shape{inFeatures, outFeatures}).Validate(); err != nil {
		return nil, fmt.Errorf("dense[%d]: %w", index, err)
	}
	if !validLayerActivation(activation) {
		return nil, fmt.Errorf("dense[%d]: %w: %v", index, ErrUnsupportedActivation, activation)
	}

	w, b, err := init.initialize(inFeatures, outFeatures, rng)
	if err != nil {
		return nil, fmt.Errorf("dense[%d]: %w", index, err)
	}

	return &Dense{
		index:       index,
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		activation:  activation,
		weight:      NewParameter(fmt.Sprintf("%d.weight", index), w),
		bias:        NewParameter(fmt.Sprintf("%d.bias", index), b),
	}, nil
}

func (d *Dense) sealed() {}

// Kind returns DenseKind.
func (d *Dense) Kind() LayerKind { return DenseKind }

// Index returns the position of the layer in its stack.
func (d *Dense) Index() int { return d.index }

// InFeatures returns the number of input features.
func (d *Dense) InFeatures() int { return d.inFeatures }

// OutFeatures returns the number of output features.
func (d *Dense) OutFeatures() int { return d.outFeatures }

// Activation returns the configured activation.
func (d *Dense) Activation() Activation { return d.activation }

// Weight returns the weight parameter.
func (d *Dense) Weight() *Parameter { return d.weight }

// Bias returns the bias parameter.
func (d *Dense) Bias() *Parameter { return d.bias }

// Output returns the cached output of the last ForwardPass, or nil.
func (d *Dense) Output() *mat.Dense { return d.output }

// Parameters returns [weight, bias].
func (d *Dense) Parameters() []*Parameter {
	return []*Parameter{d.weight, d.bias}
}

// Forward computes act(input @ W + b) into a new matrix.
func (d *Dense) Forward(input mat.Matrix) (*mat.Dense, error) {
	rows, err := d.checkInput("forward", input)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(rows, d.outFeatures, nil)
	if err := d.affine(out, input); err != nil {
		return nil, err
	}
	return out, nil
}

// ForwardPass computes the same output as Forward into the layer's cache.
func (d *Dense) ForwardPass(input mat.Matrix) error {
	d.state = stateIdle
	rows, err := d.checkInput("forward pass", input)
	if err != nil {
		return err
	}
	d.output = tensor.Reuse(d.output, rows, d.outFeatures)
	if err := d.affine(d.output, input); err != nil {
		return err
	}
	d.state = stateForwardDone
	return nil
}

// BackwardPass fills the weight and bias gradients from grad, the gradient
// of the loss with respect to this layer's output.
//
// input must be the matrix given to the preceding ForwardPass. grad is
// multiplied in place by the activation derivative. For every layer but the
// first, the gradient with respect to input (grad @ W.T) is returned in a
// buffer owned by the layer and valid until its next BackwardPass.
func (d *Dense) BackwardPass(input mat.Matrix, grad *mat.Dense) (*mat.Dense, error) {
	if d.state != stateForwardDone {
		return nil, fmt.Errorf("dense[%d]: %w", d.index, ErrBackwardBeforeForward)
	}
	rows, _ := d.output.Dims()
	if ir, ic := input.Dims(); ir != rows || ic != d.inFeatures {
		return nil, &tensor.ShapeError{
			Op:   d.op("backward pass input"),
			Want: tensor.Shape{rows, d.inFeatures},
			Got:  tensor.Shape{ir, ic},
		}
	}
	if err := tensor.CheckSame(d.op("backward pass gradient"), d.output, grad); err != nil {
		return nil, err
	}

	if d.activation != NoActivation {
		d.deriv = tensor.Reuse(d.deriv, rows, d.outFeatures)
		if err := activationDerivativeInto(d.deriv, d.output, d.activation); err != nil {
			return nil, fmt.Errorf("dense[%d]: %w", d.index, err)
		}
		grad.MulElem(grad, d.deriv)
	}

	d.weight.grad.Mul(input.T(), grad)
	if err := tensor.ColSums(d.bias.grad, grad); err != nil {
		return nil, err
	}
	d.state = stateBackwardDone

	if d.index == 0 {
		return nil, nil
	}
	d.dInput = tensor.Reuse(d.dInput, rows, d.inFeatures)
	d.dInput.Mul(grad, d.weight.value.T())
	return d.dInput, nil
}

// Update sets the optimizer rate to lr and applies it to (W, dW) and then
// (b, db).
func (d *Dense) Update(opt *optim.Optimizer, lr float64) error {
	if d.state != stateBackwardDone {
		return fmt.Errorf("dense[%d]: %w", d.index, ErrUpdateBeforeBackward)
	}
	opt.SetLearningRate(lr)
	for _, p := range d.Parameters() {
		if err := opt.Update(p.value, p.grad); err != nil {
			return fmt.Errorf("dense[%d] %s: %w", d.index, p.name, err)
		}
	}
	d.state = stateIdle
	return nil
}

func (d *Dense) affine(dst *mat.Dense, input mat.Matrix) error {
	dst.Mul(input, d.weight.value)
	if err := tensor.AddRowVector(dst, d.bias.value); err != nil {
		return err
	}
	if d.activation == NoActivation {
		return nil
	}
	if err := ApplyActivation(dst, d.activation); err != nil {
		return fmt.Errorf("dense[%d]: %w", d.index, err)
	}
	return nil
}

func (d *Dense) checkInput(what string, input mat.Matrix) (int, error) {
	rows, cols := input.Dims()
	if cols != d.inFeatures || rows == 0 {
		return 0, &tensor.ShapeError{
			Op:   d.op(what),
			Want: tensor.Shape{rows, d.inFeatures},
			Got:  tensor.Shape{rows, cols},
		}
	}
	return rows, nil
}

func (d *Dense) op(what string) string {
	return fmt.Sprintf("dense[%d] %s", d.index, what)
}
