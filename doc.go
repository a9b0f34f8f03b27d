// Copyright 2026 The ivy Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ivy is a normalization layer over numeric array engines.
//
// # Overview
//
// Engines disagree on default dtypes, device placement, broadcasting and
// which dtypes each operation accepts. ivy runs every operation through the
// same pipeline so that callers observe one behavior:
//   - Dtype resolution: explicit dtype, else the first array input, else
//     the kind of the scalar inputs (float32 by default)
//   - Capability gate: declared unsupported (op, dtype, device, version)
//     combinations fail before the engine is called
//   - Device placement: results land on the requested device even when the
//     engine ignores the hint
//   - Output aliasing: an out buffer receives the result and is returned
//
// # Basic Usage
//
//	import (
//	    "github.com/umer200/ivy"
//	    "github.com/umer200/ivy/backend/sim"
//	)
//
//	func main() {
//	    ctx, err := ivy.NewContext(sim.New())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    x, _ := ivy.Zeros(ctx, ivy.Shape{2, 3})          // float32 on cpu
//	    r, _ := ivy.Arange(ctx, 0, 5, nil)               // int32 [0 1 2 3 4]
//	    g, _ := ivy.Ones(ctx, ivy.Shape{4}, ivy.OnDevice(ivy.GPU(0)))
//	}
//
// # Errors
//
// Failures are typed and can be matched with errors.As:
//   - *UnsupportedDTypeError: the dtype is unsupported on every device
//   - *UnsupportedDeviceAndDTypeError: the dtype is unsupported on that device
//   - *UnsupportedDeviceError: the engine does not know the device
//   - *ShapeMismatchError: shapes cannot be broadcast or stacked
//   - *OutputShapeOrDTypeError: the out buffer cannot hold the result
//   - *NotImplementedForBackend: the engine has no implementation
package ivy
