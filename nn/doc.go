// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the dense layers, activations, loss and weight
// initializers of a feed-forward classifier.
//
// # Overview
//
// This package contains:
//   - Layers: Dense (y = act(x @ W + b))
//   - Activations: ReLU
//   - Loss functions: softmax cross-entropy
//   - Utilities: Layer interface, Parameter
//   - Initialization: Xavier, Uniform
//
// # Basic Usage
//
//	rng := rand.New(rand.NewPCG(1, 2))
//	layer, err := nn.NewDense(0, 784, 60, nn.ReLU, nn.InitXavier, rng)
//	if err != nil {
//	    return err
//	}
//	out, err := layer.Forward(batch) // [rows, 60]
//
// # Training Protocol
//
// Layers follow a strict forward/backward/update cycle:
//
//	layer.ForwardPass(x)                 // caches the output
//	dx, err := layer.BackwardPass(x, g)  // fills dW and db
//	err = layer.Update(opt, lr)          // W -= lr*dW, b -= lr*db
//
// BackwardPass before ForwardPass, or Update before BackwardPass, returns
// an error wrapping tensor.ErrPrecondition.
package nn
