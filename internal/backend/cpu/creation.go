package cpu

import (
	"fmt"
	"math"

	"github.com/umer200/ivy/internal/tensor"
)

// Empty allocates an uninitialized array. Host memory comes back zeroed.
func (cpu *CPUBackend) Empty(shape tensor.Shape, dtype tensor.DType, device tensor.Device) *tensor.RawTensor {
	return cpu.alloc("empty", shape, dtype, device)
}

// Full allocates an array filled with value.
func (cpu *CPUBackend) Full(shape tensor.Shape, value complex128, dtype tensor.DType, device tensor.Device) *tensor.RawTensor {
	result := cpu.alloc("full", shape, dtype, device)
	if value != 0 {
		result.Fill(value)
	}
	return result
}

// Eye creates a rows x cols matrix with ones on diagonal k.
// Offsets outside the matrix give all zeros.
func (cpu *CPUBackend) Eye(rows, cols, k int, dtype tensor.DType, device tensor.Device) *tensor.RawTensor {
	result := cpu.alloc("eye", tensor.Shape{rows, cols}, dtype, device)
	for i := 0; i < rows; i++ {
		j := i + k
		if j >= 0 && j < cols {
			result.SetFloat64(i*cols+j, 1)
		}
	}
	return result
}

// Arange creates the half-open range [start, stop) with the given step.
func (cpu *CPUBackend) Arange(start, stop, step float64, dtype tensor.DType, device tensor.Device) *tensor.RawTensor {
	if step == 0 {
		panic("arange: step must be non-zero")
	}
	n := int(math.Ceil((stop - start) / step))
	if n < 0 {
		n = 0
	}
	result := cpu.alloc("arange", tensor.Shape{n}, dtype, device)
	for i := 0; i < n; i++ {
		result.SetFloat64(i, start+float64(i)*step)
	}
	return result
}

// Linspace creates num evenly spaced samples over [start, stop].
func (cpu *CPUBackend) Linspace(start, stop float64, num int, endpoint bool, dtype tensor.DType, device tensor.Device) *tensor.RawTensor {
	if num < 0 {
		panic(fmt.Sprintf("linspace: negative sample count %d", num))
	}
	result := cpu.alloc("linspace", tensor.Shape{num}, dtype, device)
	div := num
	if endpoint {
		div = num - 1
	}
	step := 0.0
	if div > 0 {
		step = (stop - start) / float64(div)
	}
	for i := 0; i < num; i++ {
		result.SetFloat64(i, start+float64(i)*step)
	}
	if endpoint && num > 1 {
		result.SetFloat64(num-1, stop)
	}
	return result
}

// Tril zeroes elements above diagonal k of the last two axes.
func (cpu *CPUBackend) Tril(x *tensor.RawTensor, k int) *tensor.RawTensor {
	return cpu.triangle("tril", x, func(i, j int) bool { return j-i > k })
}

// Triu zeroes elements below diagonal k of the last two axes.
func (cpu *CPUBackend) Triu(x *tensor.RawTensor, k int) *tensor.RawTensor {
	return cpu.triangle("triu", x, func(i, j int) bool { return j-i < k })
}

func (cpu *CPUBackend) triangle(op string, x *tensor.RawTensor, masked func(i, j int) bool) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) < 2 {
		panic(fmt.Sprintf("%s: need at least 2 dimensions, got %v", op, shape))
	}
	rows, cols := shape[len(shape)-2], shape[len(shape)-1]
	result := x.Copy(x.Device())
	n := result.NumElements()
	for idx := 0; idx < n; idx++ {
		j := idx % cols
		i := (idx / cols) % rows
		if masked(i, j) {
			result.SetFloat64(idx, 0)
		}
	}
	return result
}
