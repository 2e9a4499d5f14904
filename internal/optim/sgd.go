package optim

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// descend performs plain gradient descent in place:
//
//	param = param - lr * grad
//
// Rows are updated through their raw views, so strided views work and no
// temporary matrix is allocated.
func descend(param, grad *mat.Dense, lr float64) {
	r, _ := param.Dims()
	for i := 0; i < r; i++ {
		floats.AddScaled(param.RawRowView(i), -lr, grad.RawRowView(i))
	}
}
