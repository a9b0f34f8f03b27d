// Package cpu implements the single-device reference engine.
//
// The engine follows host conventions: it only knows the "cpu" device,
// honors every dtype hint it is given, spells bool as "bool_" and computes
// linspace as start + i*step, so a -0.0 start is not reproduced exactly.
package cpu

import (
	"fmt"

	"github.com/umer200/ivy/internal/tensor"
)

// Version is the engine version reported to the capability gate.
const Version = "1.26.4"

// CPUBackend implements tensor.Backend on host memory.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "cpu"
}

// Version returns the engine version.
func (cpu *CPUBackend) Version() string {
	return Version
}

// Devices lists the devices this engine can place arrays on.
func (cpu *CPUBackend) Devices() []tensor.Device {
	return []tensor.Device{cpu.device}
}

// DefaultDevice returns the compute device.
func (cpu *CPUBackend) DefaultDevice() tensor.Device {
	return cpu.device
}

// NativeDTypeName returns the host spelling of dt.
func (cpu *CPUBackend) NativeDTypeName(dt tensor.DType) string {
	if dt == tensor.Bool {
		return "bool_"
	}
	return dt.String()
}

// ToDevice copies x to device. Only the host device exists.
func (cpu *CPUBackend) ToDevice(x *tensor.RawTensor, device tensor.Device) *tensor.RawTensor {
	if device != cpu.device {
		panic(fmt.Sprintf("to_device: unknown device %q", device))
	}
	if x.Device() == device {
		return x
	}
	return x.Copy(device)
}

// Copy overwrites dst with src, converting dtype.
func (cpu *CPUBackend) Copy(dst, src *tensor.RawTensor) {
	if !dst.Shape().Equal(src.Shape()) {
		panic(fmt.Sprintf("copy: shape %v into %v", src.Shape(), dst.Shape()))
	}
	dst.CopyFrom(src)
}

func (cpu *CPUBackend) alloc(op string, shape tensor.Shape, dtype tensor.DType, device tensor.Device) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	return result
}
