// Package tensor provides the numeric buffers of the engine: gonum dense
// matrices plus the handful of row-wise helpers the dense stack needs,
// and the error kinds shared across packages.
package tensor

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/dnn/internal/parallel"
)

// Reuse returns dst shaped r×c. When dst already has that shape it is
// returned untouched; otherwise its backing storage is recycled (or
// grown) and zeroed. A nil dst allocates.
func Reuse(dst *mat.Dense, r, c int) *mat.Dense {
	if dst == nil {
		return mat.NewDense(r, c, nil)
	}
	if !dst.IsEmpty() {
		if dr, dc := dst.Dims(); dr == r && dc == c {
			return dst
		}
		dst.Reset()
	}
	dst.ReuseAs(r, c)
	return dst
}

// AddRowVector adds the 1×c vector v to every row of m in place.
func AddRowVector(m, v *mat.Dense) error {
	r, c := m.Dims()
	if vr, vc := v.Dims(); vr != 1 || vc != c {
		return &ShapeError{Op: "add row vector", Want: Shape{1, c}, Got: Shape{vr, vc}}
	}
	bias := v.RawRowView(0)
	for i := 0; i < r; i++ {
		floats.Add(m.RawRowView(i), bias)
	}
	return nil
}

// ColSums writes the column-wise sums of m into the 1×c matrix dst.
func ColSums(dst, m *mat.Dense) error {
	r, c := m.Dims()
	if dr, dc := dst.Dims(); dr != 1 || dc != c {
		return &ShapeError{Op: "column sums", Want: Shape{1, c}, Got: Shape{dr, dc}}
	}
	sums := dst.RawRowView(0)
	for j := range sums {
		sums[j] = 0
	}
	for i := 0; i < r; i++ {
		floats.Add(sums, m.RawRowView(i))
	}
	return nil
}

// SoftmaxRows normalizes every row of m in place. The row maximum is
// subtracted before exponentiating so large logits do not overflow.
func SoftmaxRows(m *mat.Dense, cfg parallel.Config) {
	r, _ := m.Dims()
	parallel.Rows(r, cfg, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			softmax(m.RawRowView(i))
		}
	})
}

func softmax(row []float64) {
	if len(row) == 0 {
		return
	}
	maxVal := floats.Max(row)
	for j, v := range row {
		row[j] = math.Exp(v - maxVal)
	}
	floats.Scale(1/floats.Sum(row), row)
}

// ArgMaxRows returns, for every row of m, the column of its largest value.
// Ties resolve to the lowest column.
func ArgMaxRows(m *mat.Dense, cfg parallel.Config) []int {
	r, _ := m.Dims()
	out := make([]int, r)
	parallel.Rows(r, cfg, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = floats.MaxIdx(m.RawRowView(i))
		}
	})
	return out
}
