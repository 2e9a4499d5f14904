// Package dnn assembles dense layers into a trainable classifier.
//
// A Classifier owns an ordered stack of nn.Dense layers, one shared
// gradient-descent optimizer and a softmax cross-entropy loss. Training
// runs mini-batch gradient descent; inference returns arg-max class
// indices.
package dnn

import (
	"fmt"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/dnn/internal/nn"
	"github.com/born-ml/dnn/internal/optim"
	"github.com/born-ml/dnn/internal/parallel"
	"github.com/born-ml/dnn/internal/tensor"
)

// Config controls how a Classifier seeds and initializes its layers.
type Config struct {
	// Seed drives weight initialization and shuffling. Zero picks a
	// time-based seed.
	Seed uint64

	// Init selects the weight initializer for every layer.
	Init nn.Initializer

	// Parallel bounds the row-wise work done per batch.
	Parallel parallel.Config
}

// DefaultConfig returns Xavier initialization, a time-based seed and the
// default parallel settings.
func DefaultConfig() Config {
	return Config{
		Init:     nn.InitXavier,
		Parallel: parallel.DefaultConfig(),
	}
}

// Inferer classifies rows of a matrix. It is the read-only view of a
// Classifier handed to epoch callbacks.
type Inferer interface {
	Infer(inputs mat.Matrix) ([]int, error)
}

// Classifier is a feed-forward stack of dense layers trained with
// softmax cross-entropy.
//
// A Classifier is not safe for concurrent use.
type Classifier struct {
	cfg    Config
	layers []*nn.Dense
	opt    *optim.Optimizer
	loss   nn.Loss
	rng    *rand.Rand

	// Per-batch scratch, reshaped when the batch row count changes.
	probs *mat.Dense
	grad  *mat.Dense
}

var _ Inferer = (*Classifier)(nil)

// New creates an empty classifier.
func New(cfg Config) *Classifier {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	// Both kinds are the package defaults and cannot fail.
	opt, _ := optim.New(optim.GradientDescent, optim.DefaultLR)
	loss, _ := nn.NewLoss(nn.SoftmaxCrossEntropy)

	return &Classifier{
		cfg:  cfg,
		opt:  opt,
		loss: loss,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// AddDense appends a dense layer mapping in features to out features.
//
// Widths of consecutive layers are not cross-checked here; a mismatch
// surfaces as a shape error on the first batch, or from Validate.
func (c *Classifier) AddDense(in, out int, activation nn.Activation) error {
	layer, err := nn.NewDense(len(c.layers), in, out, activation, c.cfg.Init, c.rng)
	if err != nil {
		return fmt.Errorf("add dense: %w", err)
	}
	c.layers = append(c.layers, layer)
	return nil
}

// Validate reports whether the stack is non-empty and every layer's
// input width matches the previous layer's output width.
func (c *Classifier) Validate() error {
	if len(c.layers) == 0 {
		return fmt.Errorf("%w: classifier has no layers", tensor.ErrConfiguration)
	}
	for i := 1; i < len(c.layers); i++ {
		prev, cur := c.layers[i-1], c.layers[i]
		if prev.OutFeatures() != cur.InFeatures() {
			return &tensor.ShapeError{
				Op:     fmt.Sprintf("dense[%d]", i),
				Want:   tensor.Shape{prev.OutFeatures()},
				Got:    tensor.Shape{cur.InFeatures()},
				Detail: "input width differs from previous output width",
			}
		}
	}
	return nil
}

// Layers returns the number of layers.
func (c *Classifier) Layers() int { return len(c.layers) }

// Layer returns the layer at index i.
func (c *Classifier) Layer(i int) nn.Layer { return c.layers[i] }

// Parameters returns every weight and bias, in layer order.
func (c *Classifier) Parameters() []*nn.Parameter {
	params := make([]*nn.Parameter, 0, 2*len(c.layers))
	for _, l := range c.layers {
		params = append(params, l.Parameters()...)
	}
	return params
}

// NumParameters returns the total count of trainable scalars.
func (c *Classifier) NumParameters() int {
	n := 0
	for _, p := range c.Parameters() {
		n += p.NumElements()
	}
	return n
}

// Infer returns the predicted class of every row of inputs.
//
// It runs the stack without caching anything, so it may be called between
// training epochs without disturbing training state.
func (c *Classifier) Infer(inputs mat.Matrix) ([]int, error) {
	if len(c.layers) == 0 {
		return nil, fmt.Errorf("infer: %w: classifier has no layers", tensor.ErrConfiguration)
	}
	var (
		x   = inputs
		out *mat.Dense
		err error
	)
	for _, l := range c.layers {
		out, err = l.Forward(x)
		if err != nil {
			return nil, fmt.Errorf("infer: %w", err)
		}
		x = out
	}
	tensor.SoftmaxRows(out, c.cfg.Parallel)
	return tensor.ArgMaxRows(out, c.cfg.Parallel), nil
}
