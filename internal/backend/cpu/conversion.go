package cpu

import (
	"github.com/umer200/ivy/internal/tensor"
)

// Cast converts the tensor to a different data type.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DType) *tensor.RawTensor {
	// No-op if same dtype
	if x.DType() == dtype {
		return x
	}

	result := cpu.alloc("cast", x.Shape(), dtype, x.Device())
	result.CopyFrom(x)
	return result
}
