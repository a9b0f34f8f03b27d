// Copyright 2026 The ivy Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go host engine.
//
// # Overview
//
// The engine owns a single device, "cpu", and follows the host conventions:
//   - 64-bit float and integer results when no dtype is given
//   - every dtype hint honored
//   - linspace computed as start+i*step
//   - native concatenation for vstack and hstack
//
// # Basic Usage
//
//	import (
//	    "github.com/umer200/ivy"
//	    "github.com/umer200/ivy/backend/cpu"
//	)
//
//	func main() {
//	    ctx, _ := ivy.NewContext(cpu.New())
//	    r, _ := ivy.Arange(ctx, 0, 5, nil)
//	}
package cpu
