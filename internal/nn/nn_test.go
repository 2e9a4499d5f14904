package nn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/dnn/internal/nn"
)

// TestParameter tests Parameter creation and methods.
func TestParameter(t *testing.T) {
	value := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	param := nn.NewParameter("test_param", value)

	assert.Equal(t, "test_param", param.Name())
	assert.Same(t, value, param.Value())
	assert.Equal(t, 6, param.NumElements())

	r, c := param.Grad().Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 0.0, mat.Sum(param.Grad()))

	param.Grad().Set(1, 1, 5)
	param.ZeroGrad()
	assert.Equal(t, 0.0, mat.Sum(param.Grad()))
}

// TestXavier checks the Glorot bound.
func TestXavier(t *testing.T) {
	w := nn.Xavier(784, 60, newRNG())
	bound := math.Sqrt(6.0 / (784 + 60))

	r, c := w.Dims()
	require.Equal(t, 784, r)
	require.Equal(t, 60, c)
	assert.LessOrEqual(t, mat.Max(w), bound)
	assert.GreaterOrEqual(t, mat.Min(w), -bound)
	assert.NotEqual(t, 0.0, mat.Max(w))
}

// TestUniform checks the range and seeding of Uniform.
func TestUniform(t *testing.T) {
	a := nn.Uniform(10, 10, -1, 1, newRNG())
	b := nn.Uniform(10, 10, -1, 1, newRNG())

	assert.True(t, mat.Equal(a, b), "same seed, same values")
	assert.LessOrEqual(t, mat.Max(a), 1.0)
	assert.GreaterOrEqual(t, mat.Min(a), -1.0)
}

// TestInitializers checks bias handling of both initializers.
func TestInitializers(t *testing.T) {
	xavier, err := nn.NewDense(0, 4, 3, nn.NoActivation, nn.InitXavier, newRNG())
	require.NoError(t, err)
	assert.Equal(t, 0.0, mat.Sum(xavier.Bias().Value()))

	uniform, err := nn.NewDense(0, 4, 3, nn.NoActivation, nn.InitUniform, newRNG())
	require.NoError(t, err)
	assert.NotEqual(t, 0.0, mat.Max(uniform.Bias().Value())-mat.Min(uniform.Bias().Value()))

	for _, name := range []string{"xavier", "uniform", ""} {
		_, err := nn.ParseInitializer(name)
		require.NoError(t, err, name)
	}
	_, err = nn.ParseInitializer("he")
	assert.ErrorIs(t, err, nn.ErrInvalidLayer)
}
