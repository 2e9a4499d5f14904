package nn

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/dnn/internal/tensor"
)

// Activation selects the pointwise nonlinearity of a dense layer.
//
// Derivatives are evaluated on the layer's post-activation output, not its
// pre-activation input. That is exact for ReLU, whose derivative is the
// indicator of a positive output. A new kind whose derivative cannot be
// written in terms of its output (sigmoid can, GELU cannot) needs the
// dense layer to cache pre-activation values before it is added here.
type Activation int

// Supported activations.
const (
	NoActivation Activation = iota // Layer output is the affine map itself.
	ReLU                           // f(x) = max(0, x)
)

// String returns the lowercase name of the activation.
func (a Activation) String() string {
	switch a {
	case NoActivation:
		return "none"
	case ReLU:
		return "relu"
	default:
		return fmt.Sprintf("activation(%d)", int(a))
	}
}

// ParseActivation maps a name such as "relu" or "none" to its kind.
func ParseActivation(name string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "linear", "identity":
		return NoActivation, nil
	case "relu":
		return ReLU, nil
	default:
		return NoActivation, fmt.Errorf("%w: %q", ErrUnsupportedActivation, name)
	}
}

// validLayerActivation reports whether a may be configured on a layer.
func validLayerActivation(a Activation) bool {
	return a == NoActivation || a == ReLU
}

// ApplyActivation applies a to x element-wise, in place.
func ApplyActivation(x *mat.Dense, a Activation) error {
	switch a {
	case ReLU:
		r, _ := x.Dims()
		for i := 0; i < r; i++ {
			row := x.RawRowView(i)
			for j, v := range row {
				if v <= 0 {
					row[j] = 0
				}
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedActivation, a)
	}
}

// ActivationDerivative returns the element-wise derivative of a evaluated
// at the current (post-activation) values of x.
func ActivationDerivative(x *mat.Dense, a Activation) (*mat.Dense, error) {
	r, c := x.Dims()
	dst := mat.NewDense(r, c, nil)
	if err := activationDerivativeInto(dst, x, a); err != nil {
		return nil, err
	}
	return dst, nil
}

// activationDerivativeInto writes the derivative of a at x into dst, which
// must already have the shape of x.
func activationDerivativeInto(dst, x *mat.Dense, a Activation) error {
	if err := tensor.CheckSame("activation derivative", x, dst); err != nil {
		return err
	}
	switch a {
	case ReLU:
		r, _ := x.Dims()
		for i := 0; i < r; i++ {
			in, out := x.RawRowView(i), dst.RawRowView(i)
			for j, v := range in {
				if v > 0 {
					out[j] = 1
				} else {
					out[j] = 0
				}
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedActivation, a)
	}
}
