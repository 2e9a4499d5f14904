// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor exposes the shape type and error kinds shared by the
// nn, optim and dnn packages.
//
// Numeric data itself is held in gonum *mat.Dense matrices with rows as
// samples. Errors are classified with errors.Is:
//
//	if errors.Is(err, tensor.ErrShapeMismatch) {
//	    var se *tensor.ShapeError
//	    errors.As(err, &se)
//	    fmt.Println(se.Op, se.Want, se.Got)
//	}
package tensor
