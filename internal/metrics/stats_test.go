package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dnn/internal/tensor"
)

func TestWindowSnapshot(t *testing.T) {
	var w Window
	w.Record(64, 20*time.Millisecond, 10*time.Millisecond, 1.2)
	w.Record(64, 10*time.Millisecond, 20*time.Millisecond, 0.8)
	assert.Equal(t, 2, w.Steps())

	snap := w.Snapshot()
	assert.InDelta(t, 2133.3333, snap.SamplesPerSec, 1)
	assert.InDelta(t, 15.0, snap.AvgDataMS, 1e-9)
	assert.InDelta(t, 15.0, snap.AvgComputeMS, 1e-9)
	assert.InDelta(t, 1.0, snap.MeanLoss, 1e-12)
	assert.Equal(t, 0.8, snap.LastLoss)
	assert.Equal(t, 2, snap.Steps)
	assert.Equal(t, 128, snap.Samples)
	assert.Equal(t, 60*time.Millisecond, snap.Duration)

	assert.Zero(t, w.samples, "window was not reset")
	assert.Zero(t, w.steps, "window was not reset")
	assert.Zero(t, w.lossSum, "window was not reset")
}

func TestWindowSnapshot_Empty(t *testing.T) {
	var w Window
	snap := w.Snapshot()
	assert.Equal(t, Snapshot{}, snap)
}

func TestAccuracy(t *testing.T) {
	acc, err := Accuracy([]int{1, 2, 3, 4}, []int{1, 0, 3, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.5, acc)

	_, err = Accuracy([]int{1}, []int{1, 2})
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = Accuracy(nil, nil)
	assert.ErrorIs(t, err, tensor.ErrConfiguration)
}
