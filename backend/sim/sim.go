// Copyright 2026 The ivy Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package sim provides a versioned multi-device engine whose native
// conventions differ from the host engine.
//
// Constructors ignore device hints and some dtype hints, the native expand
// kernel rejects narrow dtypes, and there is no native concatenation.
// ivy normalizes all of it.
//
// Example:
//
//	ctx, _ := ivy.NewContext(sim.New(sim.WithVersion("2.5.0")))
//	g, _ := ivy.Ones(ctx, ivy.Shape{4}, ivy.OnDevice(ivy.GPU(0)))
package sim

import (
	"github.com/umer200/ivy"
	internalsim "github.com/umer200/ivy/internal/backend/sim"
)

// Backend is the simulated engine.
type Backend = internalsim.Backend

// Option configures the engine.
type Option = internalsim.Option

// DefaultVersion is the version reported when none is configured.
const DefaultVersion = internalsim.DefaultVersion

var _ ivy.Backend = (*Backend)(nil)

// WithVersion sets the reported engine version.
func WithVersion(v string) Option { return internalsim.WithVersion(v) }

// WithDevices sets the device tokens the engine accepts.
func WithDevices(devices ...ivy.Device) Option { return internalsim.WithDevices(devices...) }

// New creates a simulated engine.
func New(opts ...Option) *Backend {
	return internalsim.New(opts...)
}
