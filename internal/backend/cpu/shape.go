package cpu

import (
	"fmt"

	"github.com/umer200/ivy/internal/tensor"
)

// Reshape returns a view of x with a new shape of the same size.
func (cpu *CPUBackend) Reshape(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result, err := x.View(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return result
}

// Expand broadcasts the tensor to a new shape.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	xShape := x.Shape()

	// newShape must have >= dimensions
	if len(newShape) < len(xShape) {
		panic(fmt.Sprintf("expand: new shape %v has fewer dimensions than input shape %v",
			newShape, xShape))
	}

	// Each aligned dimension must match or be 1.
	offset := len(newShape) - len(xShape)
	for i := 0; i < len(xShape); i++ {
		xDim := xShape[i]
		newDim := newShape[offset+i]
		if xDim != 1 && xDim != newDim {
			panic(fmt.Sprintf("expand: cannot expand dimension %d from %d to %d",
				i, xDim, newDim))
		}
	}

	result := cpu.alloc("expand", newShape, x.DType(), x.Device())
	expandBroadcast(result, x, newShape)
	return result
}

// expandBroadcast maps every output index to its source element and copies
// element bytes, so it works for every dtype.
func expandBroadcast(result, x *tensor.RawTensor, outShape tensor.Shape) {
	xShape := x.Shape()
	offset := len(outShape) - len(xShape)
	totalSize := outShape.NumElements()
	outStrides := outShape.ComputeStrides()
	xStrides := xShape.ComputeStrides()
	size := x.DType().Size()
	src, dst := x.Data(), result.Data()

	coords := make([]int, len(outShape))
	for outIdx := 0; outIdx < totalSize; outIdx++ {
		remaining := outIdx
		for i := range outShape {
			coords[i] = remaining / outStrides[i]
			remaining %= outStrides[i]
		}

		inIdx := 0
		for i, xDim := range xShape {
			coord := coords[offset+i]
			if xDim == 1 {
				coord = 0 // Broadcast dimension
			}
			inIdx += coord * xStrides[i]
		}

		copy(dst[outIdx*size:(outIdx+1)*size], src[inIdx*size:(inIdx+1)*size])
	}
}

// Transpose permutes the axes of x: axis i of the result is axis axes[i]
// of x. With no axes the order is reversed.
func (cpu *CPUBackend) Transpose(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}
	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}
	result := cpu.alloc("transpose", newShape, x.DType(), x.Device())
	transposeBytes(result, x, axes)
	return result
}

// transposeBytes walks the result in row-major order and gathers each
// element from its permuted position in x.
func transposeBytes(result, x *tensor.RawTensor, axes []int) {
	outShape := result.Shape()
	xStrides := x.Shape().ComputeStrides()
	size := x.DType().Size()
	src, dst := x.Data(), result.Data()

	coords := make([]int, len(outShape))
	for outIdx := 0; outIdx < result.NumElements(); outIdx++ {
		inIdx := 0
		for i, ax := range axes {
			inIdx += coords[i] * xStrides[ax]
		}
		copy(dst[outIdx*size:(outIdx+1)*size], src[inIdx*size:(inIdx+1)*size])

		for d := len(coords) - 1; d >= 0; d-- {
			coords[d]++
			if coords[d] < outShape[d] {
				break
			}
			coords[d] = 0
		}
	}
}
