package tensor

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/x448/float16"
)

// NumericArray is the view of an array the normalization layer programs
// against. Every engine's arrays satisfy it.
type NumericArray interface {
	Shape() Shape
	DType() DType
	Device() Device
	NumElements() int
	Float64At(i int) float64
	Complex128At(i int) complex128
}

// Verify that RawTensor implements NumericArray.
var _ NumericArray = (*RawTensor)(nil)

// RawTensor is the low-level array representation: a flat row-major byte
// buffer plus shape, dtype and device metadata. Views created by Reshape
// share the buffer.
type RawTensor struct {
	data   []byte
	shape  Shape
	stride []int
	dtype  DType
	device Device
}

// NewRaw creates a new zero-initialized RawTensor.
func NewRaw(shape Shape, dtype DType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if !dtype.Valid() {
		return nil, fmt.Errorf("invalid dtype: %v", dtype)
	}

	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// MustNewRaw is like NewRaw but panics on error. Engines use it after the
// normalization layer has validated shape and dtype.
func MustNewRaw(shape Shape, dtype DType, device Device) *RawTensor {
	r, err := NewRaw(shape, dtype, device)
	if err != nil {
		panic(err)
	}
	return r
}

// Shape returns the array's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the row-major strides in elements.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the element kind.
func (r *RawTensor) DType() DType {
	return r.dtype
}

// Device returns the placement token.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return len(r.data)
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.data
}

// View returns a RawTensor sharing this buffer with a new shape of the same size.
func (r *RawTensor) View(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != r.NumElements() {
		return nil, fmt.Errorf("cannot view %v (%d elements) as %v", []int(r.shape), r.NumElements(), []int(shape))
	}
	return &RawTensor{
		data:   r.data,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  r.dtype,
		device: r.device,
	}, nil
}

// Copy returns a deep copy placed on device.
func (r *RawTensor) Copy(device Device) *RawTensor {
	data := make([]byte, len(r.data))
	copy(data, r.data)
	return &RawTensor{
		data:   data,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: device,
	}
}

// CopyFrom overwrites every element with the matching element of src,
// converting between dtypes. Shapes must hold the same number of elements.
func (r *RawTensor) CopyFrom(src *RawTensor) {
	if src.NumElements() != r.NumElements() {
		panic(fmt.Sprintf("copy: %d elements into %d", src.NumElements(), r.NumElements()))
	}
	if src.dtype == r.dtype {
		copy(r.data, src.data)
		return
	}
	n := r.NumElements()
	if src.dtype.IsInt() && r.dtype.IsInt() {
		for i := 0; i < n; i++ {
			r.SetInt64(i, src.Int64At(i))
		}
		return
	}
	for i := 0; i < n; i++ {
		r.SetComplex128(i, src.Complex128At(i))
	}
}

// Fill sets every element to v.
func (r *RawTensor) Fill(v complex128) {
	n := r.NumElements()
	for i := 0; i < n; i++ {
		r.SetComplex128(i, v)
	}
}

// Float64At returns the real part of element i.
func (r *RawTensor) Float64At(i int) float64 {
	return real(r.Complex128At(i))
}

// SetFloat64 stores v into element i.
func (r *RawTensor) SetFloat64(i int, v float64) {
	r.SetComplex128(i, complex(v, 0))
}

// Complex128At returns element i widened to complex128.
func (r *RawTensor) Complex128At(i int) complex128 {
	switch r.dtype {
	case Bool:
		if r.AsBool()[i] {
			return 1
		}
		return 0
	case Int8, Int16, Int32, Int64:
		return complex(float64(r.Int64At(i)), 0)
	case Uint8, Uint16, Uint32, Uint64:
		return complex(float64(r.uint64At(i)), 0)
	case BFloat16:
		return complex(float64(bfloat16ToFloat32(r.AsUint16()[i])), 0)
	case Float16:
		return complex(float64(float16.Frombits(r.AsUint16()[i]).Float32()), 0)
	case Float32:
		return complex(float64(r.AsFloat32()[i]), 0)
	case Float64:
		return complex(r.AsFloat64()[i], 0)
	case Complex64:
		return complex128(r.AsComplex64()[i])
	case Complex128:
		return r.AsComplex128()[i]
	default:
		panic(fmt.Sprintf("unsupported dtype %v", r.dtype))
	}
}

// SetComplex128 stores v into element i, converting to the array's dtype.
// Real kinds keep the real part; bool stores v != 0.
//
//nolint:gocyclo,cyclop // one case per dtype
func (r *RawTensor) SetComplex128(i int, v complex128) {
	re := real(v)
	switch r.dtype {
	case Bool:
		r.AsBool()[i] = v != 0
	case Int8, Int16, Int32, Int64:
		r.SetInt64(i, int64(re))
	case Uint8, Uint16, Uint32, Uint64:
		r.setUint64(i, uint64(re))
	case BFloat16:
		r.AsUint16()[i] = float32ToBFloat16(float32(re))
	case Float16:
		r.AsUint16()[i] = float16.Fromfloat32(float32(re)).Bits()
	case Float32:
		r.AsFloat32()[i] = float32(re)
	case Float64:
		r.AsFloat64()[i] = re
	case Complex64:
		r.AsComplex64()[i] = complex64(v)
	case Complex128:
		r.AsComplex128()[i] = v
	default:
		panic(fmt.Sprintf("unsupported dtype %v", r.dtype))
	}
}

// Int64At returns element i as int64. Only valid for integer dtypes.
func (r *RawTensor) Int64At(i int) int64 {
	switch r.dtype {
	case Int8:
		return int64(r.AsInt8()[i])
	case Int16:
		return int64(r.AsInt16()[i])
	case Int32:
		return int64(r.AsInt32()[i])
	case Int64:
		return r.AsInt64()[i]
	case Uint8, Uint16, Uint32, Uint64:
		return int64(r.uint64At(i)) //nolint:gosec // G115: wraps like a native cast
	default:
		panic(fmt.Sprintf("Int64At on %v tensor", r.dtype))
	}
}

// SetInt64 stores v into element i with native wrap-around semantics.
func (r *RawTensor) SetInt64(i int, v int64) {
	switch r.dtype {
	case Int8:
		r.AsInt8()[i] = int8(v) //nolint:gosec // G115: wraps like a native cast
	case Int16:
		r.AsInt16()[i] = int16(v) //nolint:gosec // G115: wraps like a native cast
	case Int32:
		r.AsInt32()[i] = int32(v) //nolint:gosec // G115: wraps like a native cast
	case Int64:
		r.AsInt64()[i] = v
	case Uint8, Uint16, Uint32, Uint64:
		r.setUint64(i, uint64(v)) //nolint:gosec // G115: wraps like a native cast
	default:
		r.SetComplex128(i, complex(float64(v), 0))
	}
}

// SetScalar stores a Go scalar into element i. Integer values written to
// integer arrays keep full 64-bit precision.
func (r *RawTensor) SetScalar(i int, v any) error {
	if r.dtype.IsInt() {
		switch x := v.(type) {
		case int:
			r.SetInt64(i, int64(x))
			return nil
		case int64:
			r.SetInt64(i, x)
			return nil
		case uint64:
			r.setUint64(i, x)
			return nil
		}
	}
	c, ok := ScalarValue(v)
	if !ok {
		return fmt.Errorf("unsupported scalar %T", v)
	}
	r.SetComplex128(i, c)
	return nil
}

func (r *RawTensor) uint64At(i int) uint64 {
	switch r.dtype {
	case Uint8:
		return uint64(r.AsUint8()[i])
	case Uint16:
		return uint64(r.AsUint16()[i])
	case Uint32:
		return uint64(r.AsUint32()[i])
	default:
		return r.AsUint64()[i]
	}
}

func (r *RawTensor) setUint64(i int, v uint64) {
	switch r.dtype {
	case Uint8:
		r.AsUint8()[i] = uint8(v) //nolint:gosec // G115: wraps like a native cast
	case Uint16:
		r.AsUint16()[i] = uint16(v) //nolint:gosec // G115: wraps like a native cast
	case Uint32:
		r.AsUint32()[i] = uint32(v) //nolint:gosec // G115: wraps like a native cast
	default:
		r.AsUint64()[i] = v
	}
}

func bfloat16ToFloat32(b uint16) float32 {
	return math.Float32frombits(uint32(b) << 16)
}

// float32ToBFloat16 truncates to the upper 16 bits; sign and zero are exact.
func float32ToBFloat16(f float32) uint16 {
	return uint16(math.Float32bits(f) >> 16)
}

// view reinterprets the buffer as a slice of E with NumElements entries.
func view[E any](r *RawTensor) []E {
	n := r.NumElements()
	if n == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*E)(unsafe.Pointer(&r.data[0])), n)
}

func (r *RawTensor) mustBe(dts ...DType) {
	for _, dt := range dts {
		if r.dtype == dt {
			return
		}
	}
	panic(fmt.Sprintf("tensor dtype is %s, not %v", r.dtype, dts))
}

// AsBool interprets the data as []bool.
func (r *RawTensor) AsBool() []bool {
	r.mustBe(Bool)
	return view[bool](r)
}

// AsInt8 interprets the data as []int8.
func (r *RawTensor) AsInt8() []int8 {
	r.mustBe(Int8)
	return view[int8](r)
}

// AsInt16 interprets the data as []int16.
func (r *RawTensor) AsInt16() []int16 {
	r.mustBe(Int16)
	return view[int16](r)
}

// AsInt32 interprets the data as []int32.
func (r *RawTensor) AsInt32() []int32 {
	r.mustBe(Int32)
	return view[int32](r)
}

// AsInt64 interprets the data as []int64.
func (r *RawTensor) AsInt64() []int64 {
	r.mustBe(Int64)
	return view[int64](r)
}

// AsUint8 interprets the data as []uint8.
func (r *RawTensor) AsUint8() []uint8 {
	r.mustBe(Uint8)
	return view[uint8](r)
}

// AsUint16 interprets the data as []uint16. Float16 and BFloat16 arrays
// expose their raw bit patterns through it as well.
func (r *RawTensor) AsUint16() []uint16 {
	r.mustBe(Uint16, Float16, BFloat16)
	return view[uint16](r)
}

// AsUint32 interprets the data as []uint32.
func (r *RawTensor) AsUint32() []uint32 {
	r.mustBe(Uint32)
	return view[uint32](r)
}

// AsUint64 interprets the data as []uint64.
func (r *RawTensor) AsUint64() []uint64 {
	r.mustBe(Uint64)
	return view[uint64](r)
}

// AsFloat32 interprets the data as []float32.
func (r *RawTensor) AsFloat32() []float32 {
	r.mustBe(Float32)
	return view[float32](r)
}

// AsFloat64 interprets the data as []float64.
func (r *RawTensor) AsFloat64() []float64 {
	r.mustBe(Float64)
	return view[float64](r)
}

// AsComplex64 interprets the data as []complex64.
func (r *RawTensor) AsComplex64() []complex64 {
	r.mustBe(Complex64)
	return view[complex64](r)
}

// AsComplex128 interprets the data as []complex128.
func (r *RawTensor) AsComplex128() []complex128 {
	r.mustBe(Complex128)
	return view[complex128](r)
}

// Float64s returns all elements as float64 (real parts), in row-major order.
func (r *RawTensor) Float64s() []float64 {
	out := make([]float64, r.NumElements())
	for i := range out {
		out[i] = r.Float64At(i)
	}
	return out
}

// String returns a short description for logs.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor(shape=%v, dtype=%s, device=%s)", []int(r.shape), r.dtype, r.device)
}
