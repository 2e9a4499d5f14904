package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Shape represents the dimensions of a matrix as [rows, cols].
type Shape []int

// ShapeOf returns the shape of m.
func ShapeOf(m mat.Matrix) Shape {
	r, c := m.Dims()
	return Shape{r, c}
}

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 0
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("%w: invalid dimension at index %d: %d (must be > 0)", ErrConfiguration, i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// String formats the shape as "(rows, cols)".
func (s Shape) String() string {
	switch len(s) {
	case 0:
		return "()"
	case 2:
		return fmt.Sprintf("(%d, %d)", s[0], s[1])
	default:
		return fmt.Sprint([]int(s))
	}
}

// CheckSame returns a ShapeError when a and b do not have identical dimensions.
func CheckSame(op string, want, got mat.Matrix) error {
	ws, gs := ShapeOf(want), ShapeOf(got)
	if !ws.Equal(gs) {
		return &ShapeError{Op: op, Want: ws, Got: gs}
	}
	return nil
}
