package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LossKind enumerates the objectives a classifier can train against.
type LossKind int

// Supported losses.
const (
	SoftmaxCrossEntropy LossKind = iota
)

// String returns the name of the loss kind.
func (k LossKind) String() string {
	switch k {
	case SoftmaxCrossEntropy:
		return "softmax_cross_entropy"
	default:
		return fmt.Sprintf("loss(%d)", int(k))
	}
}

// Loss computes the seed gradient of backpropagation for one kind of
// objective. It is stateless; one value serves a whole training run.
//
// Example:
//
//	loss, _ := nn.NewLoss(nn.SoftmaxCrossEntropy)
//	grad, err := loss.Gradient(probs, labels) // probs already softmax-normalized
type Loss struct {
	kind LossKind
}

// NewLoss returns the loss for kind.
func NewLoss(kind LossKind) (Loss, error) {
	switch kind {
	case SoftmaxCrossEntropy:
		return Loss{kind: kind}, nil
	default:
		return Loss{}, fmt.Errorf("%w: %v", ErrUnsupportedLoss, kind)
	}
}

// Kind returns the loss kind.
func (l Loss) Kind() LossKind {
	return l.kind
}

// Gradient returns dL/d(output) for the given probabilities and labels.
func (l Loss) Gradient(probs *mat.Dense, labels []int) (*mat.Dense, error) {
	r, c := probs.Dims()
	dst := mat.NewDense(r, c, nil)
	if err := l.GradientInto(dst, probs, labels); err != nil {
		return nil, err
	}
	return dst, nil
}

// GradientInto writes dL/d(output) into dst, which must have the shape of
// probs. dst may be probs itself.
func (l Loss) GradientInto(dst, probs *mat.Dense, labels []int) error {
	switch l.kind {
	case SoftmaxCrossEntropy:
		return crossEntropyGradient(dst, probs, labels)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedLoss, l.kind)
	}
}

// Value returns the mean loss over the batch.
func (l Loss) Value(probs *mat.Dense, labels []int) (float64, error) {
	switch l.kind {
	case SoftmaxCrossEntropy:
		return crossEntropyValue(probs, labels)
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedLoss, l.kind)
	}
}
