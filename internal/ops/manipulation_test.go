package ops

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umer200/ivy/internal/backend/cpu"
	"github.com/umer200/ivy/internal/backend/sim"
	"github.com/umer200/ivy/internal/dispatch"
	"github.com/umer200/ivy/internal/tensor"
)

func TestBroadcastShapesScalarIdentity(t *testing.T) {
	for _, s := range []tensor.Shape{{1}, {3}, {2, 3}, {4, 1, 5}, {0, 2}} {
		left, err := BroadcastShapes(tensor.Shape{}, s)
		require.NoError(t, err)
		assert.Equal(t, s, left)

		right, err := BroadcastShapes(s, tensor.Shape{})
		require.NoError(t, err)
		assert.Equal(t, s, right)
	}

	scalar, err := BroadcastShapes(tensor.Shape{}, tensor.Shape{})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{}, scalar)
}

func TestBroadcastShapesMany(t *testing.T) {
	got, err := BroadcastShapes(tensor.Shape{8, 1, 6, 1}, tensor.Shape{7, 1, 5}, tensor.Shape{1})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{8, 7, 6, 5}, got)
}

func TestBroadcastShapesMismatch(t *testing.T) {
	_, err := BroadcastShapes(tensor.Shape{2, 3}, tensor.Shape{2, 4})
	var mismatch *tensor.ShapeMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, OpBroadcastShapes, mismatch.Op)
	assert.Equal(t, 1, mismatch.Axis)
}

func TestExpand(t *testing.T) {
	for _, e := range engines() {
		t.Run(e.name, func(t *testing.T) {
			ctx := newCtx(t, e.backend)
			col := raw(t, tensor.Shape{3, 1}, tensor.Float32, 1, 2, 3)

			r, err := Expand(ctx, col, tensor.Shape{3, 2})
			require.NoError(t, err)
			assert.Equal(t, []float32{1, 1, 2, 2, 3, 3}, r.AsFloat32())

			lead, err := Expand(ctx, col, tensor.Shape{2, 3, 2})
			require.NoError(t, err)
			assert.Equal(t, tensor.Shape{2, 3, 2}, lead.Shape())

			keep, err := Expand(ctx, col, tensor.Shape{-1, 4})
			require.NoError(t, err)
			assert.Equal(t, tensor.Shape{3, 4}, keep.Shape())

			scalar := raw(t, tensor.Shape{}, tensor.Float32, 7)
			s, err := Expand(ctx, scalar, tensor.Shape{2, 2})
			require.NoError(t, err)
			assert.Equal(t, []float32{7, 7, 7, 7}, s.AsFloat32())

			same, err := Expand(ctx, scalar, tensor.Shape{})
			require.NoError(t, err)
			assert.Equal(t, tensor.Shape{}, same.Shape())

			deep := raw(t, tensor.Shape{1, 1, 2}, tensor.Float32, 5, 6)
			flat, err := Expand(ctx, deep, tensor.Shape{2, 2})
			require.NoError(t, err)
			assert.Equal(t, []float32{5, 6, 5, 6}, flat.AsFloat32())
		})
	}
}

func TestExpandShapeMismatch(t *testing.T) {
	ctx := newCtx(t, cpu.New())
	x := raw(t, tensor.Shape{3}, tensor.Float32, 1, 2, 3)

	for _, shape := range []tensor.Shape{{4}, {2, 4}, {3, -1}} {
		_, err := Expand(ctx, x, shape)
		var mismatch *tensor.ShapeMismatchError
		require.True(t, errors.As(err, &mismatch), "%v", shape)
		assert.Equal(t, OpExpand, mismatch.Op)
	}

	_, err := Expand(ctx, nil, tensor.Shape{2})
	require.Error(t, err)
}

func TestExpandBridgesNarrowDTypes(t *testing.T) {
	ctx := newCtx(t, sim.New())
	for _, dt := range []tensor.DType{tensor.Int8, tensor.Int16, tensor.Uint8, tensor.Float16} {
		x := raw(t, tensor.Shape{2, 1}, dt, 3, 100)
		r, err := Expand(ctx, x, tensor.Shape{2, 3})
		require.NoError(t, err, dt.String())
		assert.Equal(t, dt, r.DType())
		assert.Equal(t, []float64{3, 3, 3, 100, 100, 100}, r.Float64s(), dt.String())
	}
}

func TestExpandDeviceScopedGate(t *testing.T) {
	ctx := newCtx(t, sim.New())
	x := raw(t, tensor.Shape{1}, tensor.Uint16, 9)

	_, err := Expand(ctx, x, tensor.Shape{3})
	var scoped *tensor.UnsupportedDeviceAndDTypeError
	require.True(t, errors.As(err, &scoped))
	assert.Equal(t, OpExpand, scoped.Op)

	r, err := Expand(ctx, x, tensor.Shape{3}, dispatch.OnDevice(tensor.GPU(0)))
	require.NoError(t, err)
	assert.Equal(t, tensor.GPU(0), r.Device())
	assert.Equal(t, []uint16{9, 9, 9}, r.AsUint16())

	newer := newCtx(t, sim.New(sim.WithVersion("2.5.0")))
	_, err = Expand(newer, x, tensor.Shape{3})
	require.NoError(t, err)
}

func TestFlip(t *testing.T) {
	for _, e := range engines() {
		t.Run(e.name, func(t *testing.T) {
			ctx := newCtx(t, e.backend)
			x := raw(t, tensor.Shape{2, 3}, tensor.Int32, 1, 2, 3, 4, 5, 6)

			lr, err := Fliplr(ctx, x)
			require.NoError(t, err)
			assert.Equal(t, []int32{3, 2, 1, 6, 5, 4}, lr.AsInt32())

			ud, err := Flipud(ctx, x)
			require.NoError(t, err)
			assert.Equal(t, []int32{4, 5, 6, 1, 2, 3}, ud.AsInt32())

			v := raw(t, tensor.Shape{3}, tensor.Int32, 1, 2, 3)
			rev, err := Flipud(ctx, v)
			require.NoError(t, err)
			assert.Equal(t, []int32{3, 2, 1}, rev.AsInt32())

			_, err = Fliplr(ctx, v)
			require.Error(t, err)
			_, err = Flipud(ctx, raw(t, tensor.Shape{}, tensor.Int32, 1))
			require.Error(t, err)
		})
	}
}

func TestFliplrDeviceScopedGate(t *testing.T) {
	ctx := newCtx(t, sim.New())
	x := raw(t, tensor.Shape{1, 2}, tensor.Int8, 1, 2)

	_, err := Fliplr(ctx, x)
	var scoped *tensor.UnsupportedDeviceAndDTypeError
	require.True(t, errors.As(err, &scoped))

	r, err := Fliplr(ctx, x, dispatch.OnDevice(tensor.GPU(0)))
	require.NoError(t, err)
	assert.Equal(t, []int8{2, 1}, r.AsInt8())
	assert.Equal(t, tensor.GPU(0), r.Device())
}

func TestMoveaxis(t *testing.T) {
	for _, e := range engines() {
		t.Run(e.name, func(t *testing.T) {
			ctx := newCtx(t, e.backend)
			seq, err := Arange(ctx, 24, nil, nil)
			require.NoError(t, err)
			x := ctx.Backend().Reshape(seq, tensor.Shape{2, 3, 4})

			// y[i][j][k] == x[k][i][j]
			y, err := Moveaxis(ctx, x, []int{0}, []int{-1})
			require.NoError(t, err)
			assert.Equal(t, tensor.Shape{3, 4, 2}, y.Shape())
			assert.Equal(t, tensor.Int32, y.DType())
			assert.Equal(t, []int32{0, 12, 1, 13, 2, 14}, y.AsInt32()[:6])

			z, err := Moveaxis(ctx, x, []int{0, 1}, []int{2, 1})
			require.NoError(t, err)
			assert.Equal(t, tensor.Shape{4, 3, 2}, z.Shape())
			assert.Equal(t, []int32{0, 12, 4, 16, 8, 20}, z.AsInt32()[:6])

			same, err := Moveaxis(ctx, x, []int{1}, []int{1})
			require.NoError(t, err)
			assert.Equal(t, seq.AsInt32(), same.AsInt32())
		})
	}
}

func TestMoveaxisErrors(t *testing.T) {
	ctx := newCtx(t, cpu.New())
	x := raw(t, tensor.Shape{2, 3}, tensor.Float32, 1, 2, 3, 4, 5, 6)

	_, err := Moveaxis(ctx, x, []int{0, 1}, []int{1})
	require.Error(t, err)
	_, err = Moveaxis(ctx, x, []int{2}, []int{0})
	require.Error(t, err)
	_, err = Moveaxis(ctx, x, []int{0}, []int{-3})
	require.Error(t, err)
	_, err = Moveaxis(ctx, x, []int{0, -2}, []int{0, 1})
	require.Error(t, err)
	_, err = Moveaxis(ctx, nil, []int{0}, []int{0})
	require.Error(t, err)
}

func TestMoveaxisGate(t *testing.T) {
	x := raw(t, tensor.Shape{1, 2}, tensor.Int8, 1, 2)

	_, err := Moveaxis(newCtx(t, sim.New()), x, []int{0}, []int{1})
	var unsupported *tensor.UnsupportedDTypeError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, OpMoveaxis, unsupported.Op)

	y, err := Moveaxis(newCtx(t, sim.New(sim.WithVersion("2.5.0"))), x, []int{0}, []int{1})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 1}, y.Shape())
	assert.Equal(t, []int8{1, 2}, y.AsInt8())
}

func TestStackNotImplementedOnSim(t *testing.T) {
	ctx := newCtx(t, sim.New())
	x := raw(t, tensor.Shape{2}, tensor.Float32, 1, 2)

	for _, stack := range []func(*dispatch.Context, []*tensor.RawTensor, ...dispatch.Option) (*tensor.RawTensor, error){Vstack, Hstack} {
		_, err := stack(ctx, []*tensor.RawTensor{x, x})
		var ni *tensor.NotImplementedForBackend
		require.True(t, errors.As(err, &ni))
		assert.Equal(t, "sim", ni.Backend)
	}
}

func TestVstack(t *testing.T) {
	ctx := newCtx(t, cpu.New())
	a := raw(t, tensor.Shape{3}, tensor.Float32, 1, 2, 3)
	b := raw(t, tensor.Shape{3}, tensor.Float32, 4, 5, 6)

	r, err := Vstack(ctx, []*tensor.RawTensor{a, b})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, r.Shape())
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, r.AsFloat32())

	m := raw(t, tensor.Shape{2, 3}, tensor.Float32, 7, 8, 9, 10, 11, 12)
	r, err = Vstack(ctx, []*tensor.RawTensor{a, m})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 3}, r.Shape())

	_, err = Vstack(ctx, []*tensor.RawTensor{a, raw(t, tensor.Shape{2}, tensor.Float32, 1, 2)})
	var mismatch *tensor.ShapeMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, OpVstack, mismatch.Op)

	_, err = Vstack(ctx, nil)
	require.Error(t, err)
}

func TestHstack(t *testing.T) {
	ctx := newCtx(t, cpu.New())
	a := raw(t, tensor.Shape{2}, tensor.Int32, 1, 2)
	b := raw(t, tensor.Shape{3}, tensor.Int32, 3, 4, 5)

	r, err := Hstack(ctx, []*tensor.RawTensor{a, b})
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3, 4, 5}, r.AsInt32())

	m := raw(t, tensor.Shape{2, 1}, tensor.Int32, 1, 2)
	n := raw(t, tensor.Shape{2, 2}, tensor.Int32, 3, 4, 5, 6)
	r, err = Hstack(ctx, []*tensor.RawTensor{m, n}, dispatch.WithDType(tensor.Int64))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, r.Shape())
	assert.Equal(t, []int64{1, 3, 4, 2, 5, 6}, r.AsInt64())

	_, err = Hstack(ctx, []*tensor.RawTensor{m, raw(t, tensor.Shape{3, 1}, tensor.Int32, 1, 2, 3)})
	var mismatch *tensor.ShapeMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 0, mismatch.Axis)
}
