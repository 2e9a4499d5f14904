package nn

import (
	"fmt"

	"github.com/born-ml/dnn/internal/tensor"
)

// Configuration errors.
var (
	ErrUnsupportedActivation = fmt.Errorf("%w: unsupported activation", tensor.ErrConfiguration)
	ErrUnsupportedLoss       = fmt.Errorf("%w: unsupported loss", tensor.ErrConfiguration)
	ErrInvalidLayer          = fmt.Errorf("%w: invalid layer", tensor.ErrConfiguration)
)

// Layer state errors.
var (
	ErrBackwardBeforeForward = fmt.Errorf("%w: backward pass without a matching forward pass", tensor.ErrPrecondition)
	ErrUpdateBeforeBackward  = fmt.Errorf("%w: update without a completed backward pass", tensor.ErrPrecondition)
)
