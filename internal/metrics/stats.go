// Package metrics aggregates per-batch training measurements and scores
// predictions.
package metrics

import (
	"fmt"
	"time"

	"github.com/born-ml/dnn/internal/tensor"
)

// Window accumulates loss and timing stats across training steps.
type Window struct {
	samples  int
	data     time.Duration
	compute  time.Duration
	steps    int
	lossSum  float64
	lastLoss float64
}

// Record adds one batch of batchSize samples to the window. dataTime is
// the time spent preparing the batch, computeTime the time spent in the
// optimization step.
func (w *Window) Record(batchSize int, dataTime, computeTime time.Duration, loss float64) {
	w.samples += batchSize
	w.data += dataTime
	w.compute += computeTime
	w.steps++
	w.lossSum += loss
	w.lastLoss = loss
}

// Steps returns the number of batches recorded since the last Snapshot.
func (w *Window) Steps() int { return w.steps }

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{
		Steps:    w.steps,
		Samples:  w.samples,
		Duration: w.data + w.compute,
		LastLoss: w.lastLoss,
	}
	if snap.Duration > 0 {
		snap.SamplesPerSec = float64(w.samples) / snap.Duration.Seconds()
	}
	if w.steps > 0 {
		snap.AvgDataMS = (w.data.Seconds() * 1000) / float64(w.steps)
		snap.AvgComputeMS = (w.compute.Seconds() * 1000) / float64(w.steps)
		snap.MeanLoss = w.lossSum / float64(w.steps)
	}

	*w = Window{}
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Steps         int
	Samples       int
	Duration      time.Duration
	SamplesPerSec float64
	AvgDataMS     float64
	AvgComputeMS  float64
	MeanLoss      float64
	LastLoss      float64
}

// Accuracy returns the fraction of predictions equal to their label.
func Accuracy(predictions, labels []int) (float64, error) {
	if len(predictions) != len(labels) {
		return 0, &tensor.ShapeError{
			Op:   "accuracy",
			Want: tensor.Shape{len(labels)},
			Got:  tensor.Shape{len(predictions)},
		}
	}
	if len(labels) == 0 {
		return 0, fmt.Errorf("accuracy: %w: no samples", tensor.ErrConfiguration)
	}
	correct := 0
	for i, p := range predictions {
		if p == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(labels)), nil
}
