package dnn

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/dnn/internal/metrics"
	"github.com/born-ml/dnn/internal/tensor"
)

// EpochStats summarizes one training epoch.
type EpochStats struct {
	Epoch         int // 1-based
	Batches       int
	Samples       int
	Loss          float64 // mean batch loss
	SamplesPerSec float64
	Duration      time.Duration
}

// EpochFunc is called once after every epoch. model classifies with the
// weights reached so far. A non-nil error stops training.
type EpochFunc func(stats EpochStats, model Inferer) error

// inferer hides the training methods of a Classifier from callbacks.
type inferer struct{ c *Classifier }

func (v inferer) Infer(inputs mat.Matrix) ([]int, error) { return v.c.Infer(inputs) }

// BatchSizes partitions rows into consecutive batches of batchSize. The
// last batch holds the remainder when rows is not a multiple of batchSize.
func BatchSizes(rows, batchSize int) []int {
	if rows <= 0 || batchSize <= 0 {
		return nil
	}
	sizes := make([]int, 0, (rows+batchSize-1)/batchSize)
	for lo := 0; lo < rows; lo += batchSize {
		sizes = append(sizes, min(batchSize, rows-lo))
	}
	return sizes
}

// Train runs mini-batch gradient descent for the given number of epochs.
//
// Every epoch first shuffles the rows of inputs and labels in place with a
// shared permutation, then steps through consecutive batches. The step size
// applied to a batch of n rows is learningRate / sqrt(n). fn, if not nil,
// is called at the end of every epoch.
func (c *Classifier) Train(inputs *mat.Dense, labels []int, epochs, batchSize int, learningRate float64, fn EpochFunc) error {
	if err := c.checkTrainArgs(inputs, labels, epochs, batchSize, learningRate); err != nil {
		return fmt.Errorf("train: %w", err)
	}
	rows, cols := inputs.Dims()
	sizes := BatchSizes(rows, batchSize)

	for epoch := 1; epoch <= epochs; epoch++ {
		if err := tensor.ShuffleRows(inputs, labels, c.rng); err != nil {
			return fmt.Errorf("train: epoch %d: %w", epoch, err)
		}

		var window metrics.Window
		lo := 0
		for _, n := range sizes {
			start := time.Now()
			batch := inputs.Slice(lo, lo+n, 0, cols).(*mat.Dense)
			batchLabels := labels[lo : lo+n]
			dataTime := time.Since(start)

			start = time.Now()
			loss, err := c.optimizeStep(batch, batchLabels, learningRate)
			if err != nil {
				return fmt.Errorf("train: epoch %d, batch at row %d: %w", epoch, lo, err)
			}
			window.Record(n, dataTime, time.Since(start), loss)
			lo += n
		}

		snap := window.Snapshot()
		if fn == nil {
			continue
		}
		stats := EpochStats{
			Epoch:         epoch,
			Batches:       snap.Steps,
			Samples:       snap.Samples,
			Loss:          snap.MeanLoss,
			SamplesPerSec: snap.SamplesPerSec,
			Duration:      snap.Duration,
		}
		if err := fn(stats, inferer{c}); err != nil {
			return fmt.Errorf("train: epoch %d callback: %w", epoch, err)
		}
	}
	return nil
}

func (c *Classifier) checkTrainArgs(inputs *mat.Dense, labels []int, epochs, batchSize int, learningRate float64) error {
	switch {
	case len(c.layers) == 0:
		return fmt.Errorf("%w: classifier has no layers", tensor.ErrConfiguration)
	case epochs < 0:
		return fmt.Errorf("%w: negative epoch count %d", tensor.ErrConfiguration, epochs)
	case batchSize <= 0:
		return fmt.Errorf("%w: batch size must be positive, got %d", tensor.ErrConfiguration, batchSize)
	case !(learningRate > 0) || math.IsInf(learningRate, 1):
		return fmt.Errorf("%w: learning rate must be positive and finite, got %v", tensor.ErrConfiguration, learningRate)
	case inputs == nil || inputs.IsEmpty():
		return fmt.Errorf("%w: no training samples", tensor.ErrConfiguration)
	}
	if rows, _ := inputs.Dims(); rows != len(labels) {
		return &tensor.ShapeError{
			Op:     "train",
			Want:   tensor.Shape{rows},
			Got:    tensor.Shape{len(labels)},
			Detail: "one label per input row",
		}
	}
	return nil
}

// optimizeStep runs one forward pass, backward pass and parameter update
// over batch and returns the batch loss.
func (c *Classifier) optimizeStep(batch *mat.Dense, labels []int, learningRate float64) (float64, error) {
	loss, err := c.backprop(batch, labels)
	if err != nil {
		return 0, err
	}
	rows, _ := batch.Dims()
	scaled := learningRate / math.Sqrt(float64(rows))
	for _, l := range c.layers {
		if err := l.Update(c.opt, scaled); err != nil {
			return 0, err
		}
	}
	return loss, nil
}

// backprop fills every parameter gradient for batch. The gradients are
// those of the summed, not averaged, cross-entropy over the batch rows.
func (c *Classifier) backprop(batch *mat.Dense, labels []int) (float64, error) {
	var input mat.Matrix = batch
	for _, l := range c.layers {
		if err := l.ForwardPass(input); err != nil {
			return 0, err
		}
		input = l.Output()
	}

	logits := c.layers[len(c.layers)-1].Output()
	rows, classes := logits.Dims()
	c.probs = tensor.Reuse(c.probs, rows, classes)
	c.probs.Copy(logits)
	tensor.SoftmaxRows(c.probs, c.cfg.Parallel)

	loss, err := c.loss.Value(c.probs, labels)
	if err != nil {
		return 0, err
	}
	c.grad = tensor.Reuse(c.grad, rows, classes)
	if err := c.loss.GradientInto(c.grad, c.probs, labels); err != nil {
		return 0, err
	}

	grad := c.grad
	for i := len(c.layers) - 1; i >= 0; i-- {
		var in mat.Matrix = batch
		if i > 0 {
			in = c.layers[i-1].Output()
		}
		if grad, err = c.layers[i].BackwardPass(in, grad); err != nil {
			return 0, err
		}
	}

	return loss, nil
}
