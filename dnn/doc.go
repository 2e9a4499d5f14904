// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dnn trains feed-forward classifiers built from dense layers.
//
// # Basic Usage
//
//	model := dnn.New(dnn.DefaultConfig())
//	model.AddDense(784, 60, nn.ReLU)
//	model.AddDense(60, 30, nn.ReLU)
//	model.AddDense(30, 10, nn.NoActivation)
//
//	err := model.Train(images, labels, 10, 64, 0.01,
//	    func(s dnn.EpochStats, m dnn.Inferer) error {
//	        pred, err := m.Infer(images)
//	        if err != nil {
//	            return err
//	        }
//	        fmt.Printf("epoch %d: loss %.4f\n", s.Epoch, s.Loss)
//	        _ = pred
//	        return nil
//	    })
//
// Train shuffles the rows of images and labels in place every epoch.
// Each batch of n rows is descended with step learningRate / sqrt(n).
package dnn
