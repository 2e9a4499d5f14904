package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/dnn/internal/optim"
	"github.com/born-ml/dnn/internal/tensor"
)

// TestGradientDescent_SimpleUpdate checks param - lr * grad on a scalar.
func TestGradientDescent_SimpleUpdate(t *testing.T) {
	opt, err := optim.New(optim.GradientDescent, 0.1)
	require.NoError(t, err)

	param := mat.NewDense(1, 1, []float64{1.0})
	grad := mat.NewDense(1, 1, []float64{0.5})

	require.NoError(t, opt.Update(param, grad))

	// Expected: 1.0 - 0.1 * 0.5 = 0.95
	assert.InDelta(t, 0.95, param.At(0, 0), 1e-12)
	assert.Equal(t, 0.5, grad.At(0, 0), "gradient must not be modified")
}

// TestGradientDescent_Matrix updates every element independently.
func TestGradientDescent_Matrix(t *testing.T) {
	opt, err := optim.New(optim.GradientDescent, 0.5)
	require.NoError(t, err)

	param := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	grad := mat.NewDense(2, 2, []float64{2, 0, -2, 4})

	require.NoError(t, opt.Update(param, grad))
	assert.Equal(t, []float64{0, 2, 4, 2}, param.RawMatrix().Data)
}

// TestGradientDescent_ShapeMismatch rejects gradients of another shape.
func TestGradientDescent_ShapeMismatch(t *testing.T) {
	opt, err := optim.New(optim.GradientDescent, 0.1)
	require.NoError(t, err)

	param := mat.NewDense(2, 3, nil)
	grad := mat.NewDense(3, 2, nil)

	err = opt.Update(param, grad)
	require.Error(t, err)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
	assert.Equal(t, 0.0, mat.Sum(param), "param must be left untouched")
}

// TestGradientDescent_SetLearningRate replaces the rate without history.
func TestGradientDescent_SetLearningRate(t *testing.T) {
	opt, err := optim.New(optim.GradientDescent, 0.01)
	require.NoError(t, err)
	assert.Equal(t, 0.01, opt.LearningRate())

	opt.SetLearningRate(0.2)
	opt.SetLearningRate(0.1)
	assert.Equal(t, 0.1, opt.LearningRate())

	param := mat.NewDense(1, 1, []float64{1})
	require.NoError(t, opt.Update(param, mat.NewDense(1, 1, []float64{1})))
	assert.InDelta(t, 0.9, param.At(0, 0), 1e-12)
}

// TestGradientDescent_SharedAcrossParameters mirrors one optimizer
// serving several layers in sequence.
func TestGradientDescent_SharedAcrossParameters(t *testing.T) {
	opt, err := optim.New(optim.GradientDescent, 1)
	require.NoError(t, err)

	w := mat.NewDense(1, 2, []float64{1, 1})
	b := mat.NewDense(1, 1, []float64{1})
	require.NoError(t, opt.Update(w, mat.NewDense(1, 2, []float64{0.25, 0.5})))
	require.NoError(t, opt.Update(b, mat.NewDense(1, 1, []float64{1})))

	assert.Equal(t, []float64{0.75, 0.5}, w.RawMatrix().Data)
	assert.Equal(t, 0.0, b.At(0, 0))
}

// TestNew_DefaultsAndKinds covers constructor edge cases.
func TestNew_DefaultsAndKinds(t *testing.T) {
	opt, err := optim.New(optim.GradientDescent, 0)
	require.NoError(t, err)
	assert.Equal(t, optim.DefaultLR, opt.LearningRate())
	assert.Equal(t, optim.GradientDescent, opt.Kind())
	assert.Equal(t, "gradient_descent", opt.Kind().String())

	_, err = optim.New(optim.Kind(7), 0.1)
	require.Error(t, err)
	assert.ErrorIs(t, err, optim.ErrUnsupportedOptimizer)
	assert.ErrorIs(t, err, tensor.ErrConfiguration)
}

// TestGradientDescent_StridedView updates a sub-matrix without touching
// the rest of the backing storage.
func TestGradientDescent_StridedView(t *testing.T) {
	opt, err := optim.New(optim.GradientDescent, 1)
	require.NoError(t, err)

	full := mat.NewDense(2, 3, []float64{1, 1, 1, 1, 1, 1})
	view := full.Slice(0, 2, 1, 3).(*mat.Dense)

	require.NoError(t, opt.Update(view, mat.NewDense(2, 2, []float64{1, 1, 1, 1})))
	assert.Equal(t, []float64{1, 0, 0, 1, 0, 0}, full.RawMatrix().Data)
}
