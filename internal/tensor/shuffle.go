package tensor

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// ShuffleRows permutes the rows of x and the entries of labels in place
// with one shared random permutation, so every feature row keeps its label.
func ShuffleRows(x *mat.Dense, labels []int, rng *rand.Rand) error {
	r, c := x.Dims()
	if r != len(labels) {
		return &ShapeError{
			Op:     "shuffle",
			Detail: "feature rows and labels differ",
			Want:   Shape{r},
			Got:    Shape{len(labels)},
		}
	}

	tmp := make([]float64, c)
	rng.Shuffle(r, func(i, j int) {
		a, b := x.RawRowView(i), x.RawRowView(j)
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
		labels[i], labels[j] = labels[j], labels[i]
	})
	return nil
}
