// Copyright 2026 The ivy Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ivy

import (
	"github.com/umer200/ivy/internal/dispatch"
	"github.com/umer200/ivy/internal/ops"
	"github.com/umer200/ivy/internal/tensor"
)

// Core types.
type (
	// Context binds an engine to the capability registry and defaults.
	Context = dispatch.Context
	// ContextOption configures a Context.
	ContextOption = dispatch.ContextOption
	// Option configures a single operation call.
	Option = dispatch.Option

	// Array is an engine-produced n-dimensional array.
	Array = tensor.RawTensor
	// NumericArray is the read-only view operations accept as dtype and
	// shape donors.
	NumericArray = tensor.NumericArray
	// Backend is the contract an engine implements.
	Backend = tensor.Backend
	// Shape lists the extent of each dimension.
	Shape = tensor.Shape
	// DType is a canonical element type.
	DType = tensor.DType
	// Device names a placement target such as "cpu" or "gpu:0".
	Device = tensor.Device
)

// Error types.
type (
	UnsupportedDTypeError          = tensor.UnsupportedDTypeError
	UnsupportedDeviceError         = tensor.UnsupportedDeviceError
	UnsupportedDeviceAndDTypeError = tensor.UnsupportedDeviceAndDTypeError
	ShapeMismatchError             = tensor.ShapeMismatchError
	OutputShapeOrDTypeError        = tensor.OutputShapeOrDTypeError
	NotImplementedForBackend       = tensor.NotImplementedForBackend
)

// Canonical dtypes.
const (
	Bool       = tensor.Bool
	Int8       = tensor.Int8
	Int16      = tensor.Int16
	Int32      = tensor.Int32
	Int64      = tensor.Int64
	Uint8      = tensor.Uint8
	Uint16     = tensor.Uint16
	Uint32     = tensor.Uint32
	Uint64     = tensor.Uint64
	BFloat16   = tensor.BFloat16
	Float16    = tensor.Float16
	Float32    = tensor.Float32
	Float64    = tensor.Float64
	Complex64  = tensor.Complex64
	Complex128 = tensor.Complex128
)

// CPU is the host device.
const CPU = tensor.CPU

// SameAsRows makes Eye square.
const SameAsRows = ops.SameAsRows

// GPU returns the device token of the n-th accelerator.
func GPU(n int) Device { return tensor.GPU(n) }

// ParseDType resolves a dtype token such as "float32" or "bool_".
func ParseDType(s string) (DType, error) { return tensor.ParseDType(s) }

// NewContext binds b to the built-in capability registry.
func NewContext(b Backend, opts ...ContextOption) (*Context, error) {
	return ops.NewContext(b, opts...)
}

// Context options.
var (
	WithDefaultDevice = dispatch.WithDefaultDevice
	WithDefaultFloat  = dispatch.WithDefaultFloat
	WithLogger        = dispatch.WithLogger
)

// Per-call options.
var (
	WithDType = dispatch.WithDType
	OnDevice  = dispatch.OnDevice
	Out       = dispatch.Out
)

// Creation operations.
var (
	Zeros     = ops.Zeros
	Ones      = ops.Ones
	Full      = ops.Full
	Empty     = ops.Empty
	Eye       = ops.Eye
	Arange    = ops.Arange
	Linspace  = ops.Linspace
	Logspace  = ops.Logspace
	Asarray   = ops.Asarray
	Meshgrid  = ops.Meshgrid
	Tril      = ops.Tril
	Triu      = ops.Triu
	ZerosLike = ops.ZerosLike
	OnesLike  = ops.OnesLike
	FullLike  = ops.FullLike
	EmptyLike = ops.EmptyLike
)

// Manipulation operations.
var (
	BroadcastShapes = ops.BroadcastShapes
	Expand          = ops.Expand
	Fliplr          = ops.Fliplr
	Flipud          = ops.Flipud
	Moveaxis        = ops.Moveaxis
	Vstack          = ops.Vstack
	Hstack          = ops.Hstack
)
