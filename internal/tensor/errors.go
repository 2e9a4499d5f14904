package tensor

import (
	"errors"
	"fmt"
)

// Error kinds shared by every package of the engine. Specific errors wrap
// one of these so callers can branch with errors.Is.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrShapeMismatch = errors.New("shape mismatch")
	ErrPrecondition  = errors.New("precondition violated")
)

// ShapeError reports incompatible matrix dimensions.
type ShapeError struct {
	Op     string // Operation that detected the mismatch (e.g., "dense[1] forward")
	Want   Shape  // Expected shape, if applicable
	Got    Shape  // Actual shape, if applicable
	Detail string // Free-form detail when shapes alone do not tell the story
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, ErrShapeMismatch)
	if e.Want != nil || e.Got != nil {
		msg += fmt.Sprintf(": want %s, got %s", e.Want, e.Got)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap makes errors.Is(err, ErrShapeMismatch) hold for every ShapeError.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}
