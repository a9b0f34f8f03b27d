package tensor

// Backend defines the native primitives every numeric engine must provide.
// Engines are black boxes: they may pick their own default widths, ignore
// device hints, or reject inputs by panicking. The normalization layer in
// internal/dispatch validates everything before a primitive runs and
// corrects dtype and placement afterwards.
//
// Implementations:
//   - cpu: single-device reference engine
//   - sim: versioned multi-device engine
type Backend interface {
	// Metadata
	Name() string
	Version() string
	Devices() []Device
	DefaultDevice() Device

	// NativeDTypeName returns the engine's own spelling of a dtype.
	NativeDTypeName(dt DType) string

	// Construction
	Empty(shape Shape, dtype DType, device Device) *RawTensor
	Full(shape Shape, value complex128, dtype DType, device Device) *RawTensor
	Eye(rows, cols, k int, dtype DType, device Device) *RawTensor
	Arange(start, stop, step float64, dtype DType, device Device) *RawTensor
	Linspace(start, stop float64, num int, endpoint bool, dtype DType, device Device) *RawTensor

	// Triangular masks over the last two axes
	Tril(x *RawTensor, k int) *RawTensor
	Triu(x *RawTensor, k int) *RawTensor

	// Shape operations
	Reshape(x *RawTensor, shape Shape) *RawTensor
	Expand(x *RawTensor, shape Shape) *RawTensor // broadcast to shape
	Flip(x *RawTensor, axis int) *RawTensor
	Transpose(x *RawTensor, axes ...int) *RawTensor // result axis i is axis axes[i] of x

	// Type conversion and placement
	Cast(x *RawTensor, dtype DType) *RawTensor
	ToDevice(x *RawTensor, device Device) *RawTensor
	Copy(dst, src *RawTensor) // overwrite dst in place, converting dtype
}

// Concatenator is implemented by engines with a native concatenation
// primitive. Stacking operations are unavailable on engines without it.
type Concatenator interface {
	Concat(xs []*RawTensor, axis int) *RawTensor
}
