package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/dnn/internal/nn"
	"github.com/born-ml/dnn/internal/tensor"
)

func TestReLU_Apply(t *testing.T) {
	x := mat.NewDense(2, 3, []float64{
		-1, 0, 2,
		3.5, -0.25, 1e-9,
	})
	require.NoError(t, nn.ApplyActivation(x, nn.ReLU))
	assert.Equal(t, []float64{0, 0, 2, 3.5, 0, 1e-9}, x.RawMatrix().Data)
}

func TestReLU_Idempotent(t *testing.T) {
	x := nn.Uniform(4, 5, -2, 2, newRNG())
	require.NoError(t, nn.ApplyActivation(x, nn.ReLU))
	once := mat.DenseCopyOf(x)

	require.NoError(t, nn.ApplyActivation(x, nn.ReLU))
	assert.True(t, mat.Equal(once, x))
}

func TestReLU_DerivativeIsIndicator(t *testing.T) {
	x := nn.Uniform(6, 4, -3, 3, newRNG())
	// No exact zeros: the indicator of x > 0 is then well defined.
	r, c := x.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if x.At(i, j) == 0 {
				x.Set(i, j, 0.5)
			}
		}
	}
	original := mat.DenseCopyOf(x)

	require.NoError(t, nn.ApplyActivation(x, nn.ReLU))
	deriv, err := nn.ActivationDerivative(x, nn.ReLU)
	require.NoError(t, err)

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			want := 0.0
			if original.At(i, j) > 0 {
				want = 1
			}
			assert.Equal(t, want, deriv.At(i, j), "at (%d, %d)", i, j)
		}
	}
}

func TestActivation_Unsupported(t *testing.T) {
	x := mat.NewDense(1, 1, []float64{-1})

	err := nn.ApplyActivation(x, nn.Activation(99))
	require.Error(t, err)
	assert.ErrorIs(t, err, nn.ErrUnsupportedActivation)
	assert.ErrorIs(t, err, tensor.ErrConfiguration)
	assert.Equal(t, -1.0, x.At(0, 0))

	_, err = nn.ActivationDerivative(x, nn.NoActivation)
	assert.ErrorIs(t, err, nn.ErrUnsupportedActivation)
}

func TestParseActivation(t *testing.T) {
	tests := []struct {
		in   string
		want nn.Activation
	}{
		{"relu", nn.ReLU},
		{" ReLU ", nn.ReLU},
		{"", nn.NoActivation},
		{"none", nn.NoActivation},
	}
	for _, tt := range tests {
		got, err := nn.ParseActivation(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := nn.ParseActivation("tanh")
	assert.ErrorIs(t, err, nn.ErrUnsupportedActivation)

	assert.Equal(t, "relu", nn.ReLU.String())
	assert.Equal(t, "none", nn.NoActivation.String())
}
