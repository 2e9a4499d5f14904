package nn

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Initializer selects how a dense layer's parameters are seeded.
type Initializer int

// Supported initializers.
const (
	// InitXavier draws weights from U(-sqrt(6/(in+out)), sqrt(6/(in+out)))
	// and zeroes the bias.
	InitXavier Initializer = iota
	// InitUniform draws both weights and bias from U(-1, 1).
	InitUniform
)

// String returns the name of the initializer.
func (i Initializer) String() string {
	switch i {
	case InitXavier:
		return "xavier"
	case InitUniform:
		return "uniform"
	default:
		return fmt.Sprintf("initializer(%d)", int(i))
	}
}

// ParseInitializer maps "xavier" or "uniform" to its kind.
func ParseInitializer(name string) (Initializer, error) {
	switch name {
	case "", "xavier", "glorot":
		return InitXavier, nil
	case "uniform":
		return InitUniform, nil
	default:
		return InitXavier, fmt.Errorf("%w: unknown initializer %q", ErrInvalidLayer, name)
	}
}

// initialize returns freshly seeded weight (in×out) and bias (1×out).
func (i Initializer) initialize(in, out int, rng *rand.Rand) (weight, bias *mat.Dense, err error) {
	switch i {
	case InitXavier:
		return Xavier(in, out, rng), mat.NewDense(1, out, nil), nil
	case InitUniform:
		return Uniform(in, out, -1, 1, rng), Uniform(1, out, -1, 1, rng), nil
	default:
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidLayer, i)
	}
}

// Xavier (Glorot) initialization for an in×out weight matrix.
//
// Values are drawn from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))),
// which keeps activation variance roughly constant across layers.
func Xavier(fanIn, fanOut int, rng *rand.Rand) *mat.Dense {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return Uniform(fanIn, fanOut, -bound, bound, rng)
}

// Uniform returns an r×c matrix with values drawn from U(lo, hi).
func Uniform(r, c int, lo, hi float64, rng *rand.Rand) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		//nolint:gosec // math/rand is fine for weight initialization
		data[i] = lo + rng.Float64()*(hi-lo)
	}
	return mat.NewDense(r, c, data)
}
