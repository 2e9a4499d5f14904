package nn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/dnn/internal/nn"
	"github.com/born-ml/dnn/internal/tensor"
)

func newLoss(t *testing.T) nn.Loss {
	t.Helper()
	loss, err := nn.NewLoss(nn.SoftmaxCrossEntropy)
	require.NoError(t, err)
	return loss
}

func TestCrossEntropy_Gradient(t *testing.T) {
	probs := mat.NewDense(1, 3, []float64{0.2, 0.3, 0.5})

	grad, err := newLoss(t).Gradient(probs, []int{1})
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{0.2, -0.7, 0.5}, grad.RawMatrix().Data, 1e-12)
	assert.Equal(t, []float64{0.2, 0.3, 0.5}, probs.RawMatrix().Data, "input must be left untouched")
}

func TestCrossEntropy_GradientBatch(t *testing.T) {
	probs := mat.NewDense(3, 2, []float64{
		0.9, 0.1,
		0.4, 0.6,
		0.5, 0.5,
	})
	grad, err := newLoss(t).Gradient(probs, []int{0, 0, 1})
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{-0.1, 0.1, -0.6, 0.6, 0.5, -0.5}, grad.RawMatrix().Data, 1e-12)

	// Every row of softmax - onehot sums to zero.
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0.0, grad.At(i, 0)+grad.At(i, 1), 1e-12)
	}
}

func TestCrossEntropy_GradientInPlace(t *testing.T) {
	probs := mat.NewDense(1, 3, []float64{0.2, 0.3, 0.5})
	require.NoError(t, newLoss(t).GradientInto(probs, probs, []int{2}))
	assert.InDeltaSlice(t, []float64{0.2, 0.3, -0.5}, probs.RawMatrix().Data, 1e-12)
}

func TestCrossEntropy_Preconditions(t *testing.T) {
	loss := newLoss(t)
	probs := mat.NewDense(2, 3, []float64{0.2, 0.3, 0.5, 0.1, 0.1, 0.8})

	_, err := loss.Gradient(probs, []int{0})
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch, "row count mismatch")

	_, err = loss.Gradient(probs, []int{0, 3})
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch, "label past the last class")

	_, err = loss.Gradient(probs, []int{-1, 0})
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch, "negative label")

	err = loss.GradientInto(mat.NewDense(2, 2, nil), probs, []int{0, 1})
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch, "destination shape")
}

func TestCrossEntropy_Value(t *testing.T) {
	probs := mat.NewDense(2, 2, []float64{
		0.5, 0.5,
		0.25, 0.75,
	})
	got, err := newLoss(t).Value(probs, []int{0, 1})
	require.NoError(t, err)

	want := -(math.Log(0.5) + math.Log(0.75)) / 2
	assert.InDelta(t, want, got, 1e-12)

	// A zero probability stays finite.
	got, err = newLoss(t).Value(mat.NewDense(1, 2, []float64{1, 0}), []int{1})
	require.NoError(t, err)
	assert.False(t, math.IsInf(got, 0))
}

func TestNewLoss_Unsupported(t *testing.T) {
	_, err := nn.NewLoss(nn.LossKind(5))
	require.Error(t, err)
	assert.ErrorIs(t, err, nn.ErrUnsupportedLoss)
	assert.ErrorIs(t, err, tensor.ErrConfiguration)

	var zero nn.Loss
	assert.Equal(t, nn.SoftmaxCrossEntropy, zero.Kind())
	assert.Equal(t, "softmax_cross_entropy", zero.Kind().String())
}
