// Package sim implements a versioned, multi-device engine whose native
// conventions differ from the host engine:
//
//   - constructors always allocate on the first device and ignore the hint
//   - Arange ignores the dtype hint and produces int64 or float64
//   - Expand has no kernels for int8, int16, uint8 and float16
//   - Eye rejects diagonal offsets outside the matrix
//   - there is no concatenation primitive
//
// Kernels are shared with the host engine.
package sim

import (
	"fmt"
	"slices"

	"github.com/umer200/ivy/internal/backend/cpu"
	"github.com/umer200/ivy/internal/tensor"
)

// DefaultVersion is the engine version when none is configured.
const DefaultVersion = "2.4.2"

// Backend is the simulated multi-device engine.
type Backend struct {
	version string
	devices []tensor.Device
	kernels *cpu.CPUBackend
}

// Option configures a Backend.
type Option func(*Backend)

// WithVersion overrides the reported engine version.
func WithVersion(v string) Option {
	return func(b *Backend) {
		if v != "" {
			b.version = v
		}
	}
}

// WithDevices replaces the device list. The first device is where native
// constructors allocate.
func WithDevices(devices ...tensor.Device) Option {
	return func(b *Backend) {
		if len(devices) > 0 {
			b.devices = slices.Clone(devices)
		}
	}
}

// New creates an engine with devices cpu and gpu:0.
func New(opts ...Option) *Backend {
	b := &Backend{
		version: DefaultVersion,
		devices: []tensor.Device{tensor.CPU, tensor.GPU(0)},
		kernels: cpu.New(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "sim"
}

// Version returns the configured engine version.
func (b *Backend) Version() string {
	return b.version
}

// Devices lists the known devices.
func (b *Backend) Devices() []tensor.Device {
	return slices.Clone(b.devices)
}

// DefaultDevice returns the device native constructors allocate on.
func (b *Backend) DefaultDevice() tensor.Device {
	return b.devices[0]
}

// NativeDTypeName returns the engine spelling of dt.
func (b *Backend) NativeDTypeName(dt tensor.DType) string {
	return dt.String()
}

// ToDevice copies x onto device.
func (b *Backend) ToDevice(x *tensor.RawTensor, device tensor.Device) *tensor.RawTensor {
	if !slices.Contains(b.devices, device) {
		panic(fmt.Sprintf("to_device: unknown device %q", device))
	}
	if x.Device() == device {
		return x
	}
	return x.Copy(device)
}

// Copy overwrites dst with src, converting dtype.
func (b *Backend) Copy(dst, src *tensor.RawTensor) {
	b.kernels.Copy(dst, src)
}
