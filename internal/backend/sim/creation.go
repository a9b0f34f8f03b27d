package sim

import (
	"fmt"
	"math"

	"github.com/umer200/ivy/internal/tensor"
)

// Empty allocates on the default device; the device hint is ignored.
func (b *Backend) Empty(shape tensor.Shape, dtype tensor.DType, _ tensor.Device) *tensor.RawTensor {
	return b.kernels.Empty(shape, dtype, b.DefaultDevice())
}

// Full allocates on the default device; the device hint is ignored.
func (b *Backend) Full(shape tensor.Shape, value complex128, dtype tensor.DType, _ tensor.Device) *tensor.RawTensor {
	return b.kernels.Full(shape, value, dtype, b.DefaultDevice())
}

// Eye panics when k leaves the matrix.
func (b *Backend) Eye(rows, cols, k int, dtype tensor.DType, _ tensor.Device) *tensor.RawTensor {
	if k >= cols || -k >= rows {
		panic(fmt.Sprintf("eye: offset %d outside %dx%d matrix", k, rows, cols))
	}
	return b.kernels.Eye(rows, cols, k, dtype, b.DefaultDevice())
}

// Arange ignores the dtype hint: integral arguments give int64, anything
// else gives float64.
func (b *Backend) Arange(start, stop, step float64, _ tensor.DType, _ tensor.Device) *tensor.RawTensor {
	native := tensor.Int64
	if !integral(start) || !integral(stop) || !integral(step) {
		native = tensor.Float64
	}
	return b.kernels.Arange(start, stop, step, native, b.DefaultDevice())
}

// Linspace samples in float64 and casts to dtype.
func (b *Backend) Linspace(start, stop float64, num int, endpoint bool, dtype tensor.DType, _ tensor.Device) *tensor.RawTensor {
	res := b.kernels.Linspace(start, stop, num, endpoint, tensor.Float64, b.DefaultDevice())
	return b.kernels.Cast(res, dtype)
}

// Tril zeroes elements above diagonal k.
func (b *Backend) Tril(x *tensor.RawTensor, k int) *tensor.RawTensor {
	return b.kernels.Tril(x, k)
}

// Triu zeroes elements below diagonal k.
func (b *Backend) Triu(x *tensor.RawTensor, k int) *tensor.RawTensor {
	return b.kernels.Triu(x, k)
}

func integral(v float64) bool {
	return v == math.Trunc(v) && !math.IsInf(v, 0)
}
