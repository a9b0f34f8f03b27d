package sim

import (
	"fmt"

	"github.com/umer200/ivy/internal/tensor"
)

// Reshape returns a view with a new shape.
func (b *Backend) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	return b.kernels.Reshape(x, shape)
}

// Expand broadcasts x to shape. Narrow dtypes have no kernel.
func (b *Backend) Expand(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Int8, tensor.Int16, tensor.Uint8, tensor.Float16:
		panic(fmt.Sprintf("expand: no kernel for dtype %s", x.DType()))
	}
	return b.kernels.Expand(x, shape)
}

// Flip reverses x along axis.
func (b *Backend) Flip(x *tensor.RawTensor, axis int) *tensor.RawTensor {
	return b.kernels.Flip(x, axis)
}

// Cast converts x to dtype on the same device.
func (b *Backend) Cast(x *tensor.RawTensor, dtype tensor.DType) *tensor.RawTensor {
	return b.kernels.Cast(x, dtype)
}

// Transpose permutes the axes of x.
func (b *Backend) Transpose(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	return b.kernels.Transpose(x, axes...)
}
