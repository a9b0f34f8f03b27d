// Copyright 2026 The ivy Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	"github.com/umer200/ivy"
	internalcpu "github.com/umer200/ivy/internal/backend/cpu"
)

// Backend is the host engine.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements ivy.Backend.
var _ ivy.Backend = (*Backend)(nil)

// New creates a host engine.
//
// Example:
//
//	ctx, _ := ivy.NewContext(cpu.New())
//	x, _ := ivy.Zeros(ctx, ivy.Shape{2, 3})
func New() *Backend {
	return internalcpu.New()
}
