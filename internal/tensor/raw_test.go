package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRaw(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32, CPU)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, raw.Shape())
	assert.Equal(t, []int{3, 1}, raw.Strides())
	assert.Equal(t, Float32, raw.DType())
	assert.Equal(t, CPU, raw.Device())
	assert.Equal(t, 24, raw.ByteSize())

	_, err = NewRaw(Shape{-1}, Float32, CPU)
	require.Error(t, err)
	_, err = NewRaw(Shape{2}, DType(0), CPU)
	require.Error(t, err)

	empty, err := NewRaw(Shape{0, 3}, Int32, CPU)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.NumElements())
	assert.Nil(t, empty.AsInt32())
}

func TestRawTensorZeroCopy(t *testing.T) {
	raw := MustNewRaw(Shape{3, 2}, Int64, CPU)
	data := raw.AsInt64()
	require.Len(t, data, 6)

	data[0] = 42
	assert.Equal(t, int64(42), raw.AsInt64()[0])
	assert.Panics(t, func() { raw.AsFloat32() })
}

func TestRawTensorView(t *testing.T) {
	raw := MustNewRaw(Shape{2, 3}, Float64, CPU)
	v, err := raw.View(Shape{3, 2})
	require.NoError(t, err)

	v.AsFloat64()[5] = 9
	assert.Equal(t, 9.0, raw.AsFloat64()[5])

	_, err = raw.View(Shape{4})
	require.Error(t, err)
}

func TestRawTensorCopy(t *testing.T) {
	raw := MustNewRaw(Shape{2}, Float32, CPU)
	raw.Fill(1.5)
	c := raw.Copy(GPU(0))
	c.AsFloat32()[0] = 7

	assert.Equal(t, GPU(0), c.Device())
	assert.Equal(t, []float32{1.5, 1.5}, raw.AsFloat32())
	assert.Equal(t, []float32{7, 1.5}, c.AsFloat32())
}

func TestRawTensorCopyFrom(t *testing.T) {
	src := MustNewRaw(Shape{3}, Int64, CPU)
	copy(src.AsInt64(), []int64{1 << 40, -3, 255})

	wide := MustNewRaw(Shape{3}, Int64, CPU)
	wide.CopyFrom(src)
	assert.Equal(t, src.AsInt64(), wide.AsInt64())

	f := MustNewRaw(Shape{3}, Float32, CPU)
	f.CopyFrom(src)
	assert.Equal(t, []float32{1 << 40, -3, 255}, f.AsFloat32())

	narrow := MustNewRaw(Shape{3}, Uint8, CPU)
	narrow.CopyFrom(src)
	assert.Equal(t, uint8(255), narrow.AsUint8()[2])

	b := MustNewRaw(Shape{3}, Bool, CPU)
	b.CopyFrom(src)
	assert.Equal(t, []bool{true, true, true}, b.AsBool())

	assert.Panics(t, func() { MustNewRaw(Shape{2}, Int64, CPU).CopyFrom(src) })
}

func TestRawTensorHalfPrecision(t *testing.T) {
	h := MustNewRaw(Shape{3}, Float16, CPU)
	h.SetFloat64(0, 1.5)
	h.SetFloat64(1, math.Copysign(0, -1))
	h.SetFloat64(2, -2)
	assert.Equal(t, 1.5, h.Float64At(0))
	assert.True(t, math.Signbit(h.Float64At(1)))
	assert.Equal(t, -2.0, h.Float64At(2))
	assert.Equal(t, uint16(0x3e00), h.AsUint16()[0])

	bf := MustNewRaw(Shape{2}, BFloat16, CPU)
	bf.SetFloat64(0, 1)
	bf.SetFloat64(1, math.Copysign(0, -1))
	assert.Equal(t, 1.0, bf.Float64At(0))
	assert.Equal(t, uint16(0x3f80), bf.AsUint16()[0])
	assert.True(t, math.Signbit(bf.Float64At(1)))
}

func TestRawTensorComplex(t *testing.T) {
	c := MustNewRaw(Shape{1}, Complex64, CPU)
	c.SetComplex128(0, 1+2i)
	assert.Equal(t, complex(1.0, 2.0), c.Complex128At(0))
	assert.Equal(t, 1.0, c.Float64At(0))

	f := MustNewRaw(Shape{1}, Float64, CPU)
	f.SetComplex128(0, 3+4i)
	assert.Equal(t, 3.0, f.Float64At(0))
}

func TestRawTensorSetScalar(t *testing.T) {
	i := MustNewRaw(Shape{3}, Int64, CPU)
	require.NoError(t, i.SetScalar(0, int64(math.MaxInt64)))
	require.NoError(t, i.SetScalar(1, 7))
	require.NoError(t, i.SetScalar(2, 2.9))
	assert.Equal(t, []int64{math.MaxInt64, 7, 2}, i.AsInt64())

	u := MustNewRaw(Shape{1}, Uint64, CPU)
	require.NoError(t, u.SetScalar(0, uint64(math.MaxUint64)))
	assert.Equal(t, uint64(math.MaxUint64), u.AsUint64()[0])

	b := MustNewRaw(Shape{1}, Bool, CPU)
	require.NoError(t, b.SetScalar(0, true))
	assert.True(t, b.AsBool()[0])

	require.Error(t, b.SetScalar(0, "yes"))
}

func TestRawTensorFloat64s(t *testing.T) {
	raw := MustNewRaw(Shape{2, 2}, Int16, CPU)
	copy(raw.AsInt16(), []int16{1, -2, 3, -4})
	assert.Equal(t, []float64{1, -2, 3, -4}, raw.Float64s())
	assert.Equal(t, "RawTensor(shape=[2 2], dtype=int16, device=cpu)", raw.String())
}
