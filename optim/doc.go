// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the gradient-descent optimizer used to train
// dense layers.
//
// # Overview
//
// This package contains:
//   - GradientDescent: plain descent, param -= lr * grad
//   - Optimizer: one instance shared by every layer of a stack
//
// # Basic Usage
//
//	opt, err := optim.New(optim.GradientDescent, 0.01)
//	if err != nil {
//	    return err
//	}
//	err = opt.Update(weight, weightGrad)
//
// The learning rate is set per call site with SetLearningRate; a dense
// layer's Update sets it before descending its weight and bias.
package optim
