package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/dnn/internal/tensor"
)

// probFloor keeps log(p) finite for probabilities that underflowed to zero.
const probFloor = 1e-12

// crossEntropyGradient computes the closed-form gradient of cross-entropy
// composed with softmax:
//
//	grad[i][j] = probs[i][j]         if j != labels[i]
//	grad[i][j] = probs[i][j] - 1     if j == labels[i]
//
// probs must already be softmax-normalized; no normalization happens here.
func crossEntropyGradient(dst, probs *mat.Dense, labels []int) error {
	if err := checkLabels("loss gradient", probs, labels); err != nil {
		return err
	}
	if err := tensor.CheckSame("loss gradient", probs, dst); err != nil {
		return err
	}
	if dst != probs {
		dst.Copy(probs)
	}
	for i, label := range labels {
		dst.Set(i, label, dst.At(i, label)-1)
	}
	return nil
}

// crossEntropyValue returns mean(-log(probs[i][labels[i]])).
func crossEntropyValue(probs *mat.Dense, labels []int) (float64, error) {
	if err := checkLabels("loss value", probs, labels); err != nil {
		return 0, err
	}
	if len(labels) == 0 {
		return 0, nil
	}
	var total float64
	for i, label := range labels {
		total -= math.Log(math.Max(probs.At(i, label), probFloor))
	}
	return total / float64(len(labels)), nil
}

func checkLabels(op string, probs *mat.Dense, labels []int) error {
	r, c := probs.Dims()
	if r != len(labels) {
		return &tensor.ShapeError{
			Op:     op,
			Want:   tensor.Shape{r},
			Got:    tensor.Shape{len(labels)},
			Detail: "one label per output row",
		}
	}
	for i, label := range labels {
		if label < 0 || label >= c {
			return &tensor.ShapeError{
				Op:     op,
				Detail: fmt.Sprintf("label %d at row %d outside [0, %d)", label, i, c),
			}
		}
	}
	return nil
}
