package cpu

import (
	"fmt"

	"github.com/umer200/ivy/internal/tensor"
)

// Concat concatenates tensors along the specified axis.
//
// All tensors must have the same rank and dtype, and the same shape except
// along the concatenation axis. Supports negative axis indexing.
func (cpu *CPUBackend) Concat(tensors []*tensor.RawTensor, axis int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("concat: at least one tensor required")
	}

	shape := tensors[0].Shape()
	ndim := len(shape)
	dtype := tensors[0].DType()

	if axis < 0 {
		axis = ndim + axis
	}
	if axis < 0 || axis >= ndim {
		panic(fmt.Sprintf("concat: axis %d out of range for %dD tensor", axis, ndim))
	}

	total := 0
	for i, t := range tensors {
		tShape := t.Shape()
		if len(tShape) != ndim {
			panic(fmt.Sprintf("concat: tensor %d has %d dimensions, expected %d", i, len(tShape), ndim))
		}
		if t.DType() != dtype {
			panic(fmt.Sprintf("concat: tensor %d has dtype %s, expected %s", i, t.DType(), dtype))
		}
		for d := 0; d < ndim; d++ {
			if d == axis {
				total += tShape[d]
			} else if tShape[d] != shape[d] {
				panic(fmt.Sprintf("concat: tensor %d dimension %d is %d, expected %d", i, d, tShape[d], shape[d]))
			}
		}
	}

	outShape := shape.Clone()
	outShape[axis] = total
	result := cpu.alloc("concat", outShape, dtype, tensors[0].Device())

	// outer = product of dims before axis, inner = bytes per slice after axis.
	outer := 1
	for d := 0; d < axis; d++ {
		outer *= shape[d]
	}
	inner := dtype.Size()
	for d := axis + 1; d < ndim; d++ {
		inner *= shape[d]
	}

	dst := result.Data()
	pos := 0
	for o := 0; o < outer; o++ {
		for _, t := range tensors {
			chunk := t.Shape()[axis] * inner
			copy(dst[pos:pos+chunk], t.Data()[o*chunk:(o+1)*chunk])
			pos += chunk
		}
	}
	return result
}

// Flip reverses the order of elements along axis.
func (cpu *CPUBackend) Flip(x *tensor.RawTensor, axis int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)
	if axis < 0 {
		axis = ndim + axis
	}
	if axis < 0 || axis >= ndim {
		panic(fmt.Sprintf("flip: axis %d out of range for %dD tensor", axis, ndim))
	}

	result := cpu.alloc("flip", shape, x.DType(), x.Device())
	strides := shape.ComputeStrides()
	size := x.DType().Size()
	src, dst := x.Data(), result.Data()
	n := x.NumElements()
	for idx := 0; idx < n; idx++ {
		coord := (idx / strides[axis]) % shape[axis]
		mirrored := idx + (shape[axis]-1-2*coord)*strides[axis]
		copy(dst[mirrored*size:(mirrored+1)*size], src[idx*size:(idx+1)*size])
	}
	return result
}
