// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package dnn

import "github.com/born-ml/dnn/internal/dnn"

// Classifier is a feed-forward stack of dense layers trained with
// softmax cross-entropy.
type Classifier = dnn.Classifier

// Config controls seeding, initialization and row parallelism.
type Config = dnn.Config

// EpochStats summarizes one training epoch.
type EpochStats = dnn.EpochStats

// EpochFunc is called after every training epoch.
type EpochFunc = dnn.EpochFunc

// Inferer classifies rows of a matrix.
type Inferer = dnn.Inferer

// New creates an empty classifier.
func New(cfg Config) *Classifier {
	return dnn.New(cfg)
}

// DefaultConfig returns Xavier initialization, a time-based seed and
// CPU-sized row parallelism.
func DefaultConfig() Config {
	return dnn.DefaultConfig()
}

// BatchSizes partitions rows into consecutive batches of batchSize.
func BatchSizes(rows, batchSize int) []int {
	return dnn.BatchSizes(rows, batchSize)
}
