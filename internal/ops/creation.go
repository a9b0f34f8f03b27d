package ops

import (
	"math"

	"github.com/pkg/errors"

	"github.com/umer200/ivy/internal/dispatch"
	"github.com/umer200/ivy/internal/tensor"
)

// SameAsRows asks Eye for a square matrix.
const SameAsRows = -1

// Zeros creates an array filled with zeros. The dtype defaults to the
// context's default float.
//
// Example:
//
//	z, err := ops.Zeros(ctx, tensor.Shape{3, 4}, dispatch.OnDevice("gpu:0"))
func Zeros(ctx *dispatch.Context, shape tensor.Shape, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	return fill(ctx, OpZeros, shape, 0, nil, ctx.DefaultFloat(), ctx.DefaultDevice(), opts)
}

// Ones creates an array filled with ones.
func Ones(ctx *dispatch.Context, shape tensor.Shape, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	return fill(ctx, OpOnes, shape, 1, nil, ctx.DefaultFloat(), ctx.DefaultDevice(), opts)
}

// Full creates an array filled with value. Without an explicit dtype the
// dtype follows the value: float → default float, int → int32 (int64 or
// uint64 when the value does not fit), bool → bool, complex → complex64.
//
// Example:
//
//	f, err := ops.Full(ctx, tensor.Shape{2, 2}, 7) // int32
func Full(ctx *dispatch.Context, shape tensor.Shape, value any, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	v, ok := tensor.ScalarValue(value)
	if !ok {
		return nil, errors.Errorf("%s: unsupported fill value %T", OpFull, value)
	}
	return fill(ctx, OpFull, shape, v, []any{value}, ctx.DefaultFloat(), ctx.DefaultDevice(), opts)
}

// Empty creates an array whose contents are unspecified.
func Empty(ctx *dispatch.Context, shape tensor.Shape, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	o := dispatch.Collect(opts)
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrap(err, OpEmpty)
	}
	dtype, err := ctx.ResolveDType(nil, o.DType, ctx.DefaultFloat())
	if err != nil {
		return nil, errors.Wrap(err, OpEmpty)
	}
	device := o.DeviceOr(ctx.DefaultDevice())
	b := ctx.Backend()
	return ctx.Run(OpEmpty, dtype, device, o.Out, func() *tensor.RawTensor {
		return b.Empty(shape, dtype, device)
	})
}

func fill(ctx *dispatch.Context, op string, shape tensor.Shape, value complex128, inputs []any,
	fallback tensor.DType, device tensor.Device, opts []dispatch.Option) (*tensor.RawTensor, error) {
	o := dispatch.Collect(opts)
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrap(err, op)
	}
	dtype, err := ctx.ResolveDType(inputs, o.DType, fallback)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	device = o.DeviceOr(device)
	b := ctx.Backend()
	return ctx.Run(op, dtype, device, o.Out, func() *tensor.RawTensor {
		return b.Full(shape, value, dtype, device)
	})
}

// Eye creates a rows x cols matrix with ones on diagonal k (k > 0 above
// the main diagonal). cols == SameAsRows gives a square matrix, cols == 0
// an empty one; other negative sizes are rejected. Offsets outside the
// matrix give an all-zero matrix.
func Eye(ctx *dispatch.Context, rows, cols, k int, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	if cols == SameAsRows {
		cols = rows
	}
	if rows < 0 || cols < 0 {
		return nil, errors.Errorf("%s: negative dimensions %dx%d", OpEye, rows, cols)
	}
	o := dispatch.Collect(opts)
	dtype, err := ctx.ResolveDType(nil, o.DType, ctx.DefaultFloat())
	if err != nil {
		return nil, errors.Wrap(err, OpEye)
	}
	device := o.DeviceOr(ctx.DefaultDevice())
	b := ctx.Backend()
	outside := k >= cols || -k >= rows
	return ctx.Run(OpEye, dtype, device, o.Out, func() *tensor.RawTensor {
		if outside {
			return b.Full(tensor.Shape{rows, cols}, 0, dtype, device)
		}
		return b.Eye(rows, cols, k, dtype, device)
	})
}

// Arange creates the half-open range [start, stop) with step. A nil stop
// means the range [0, start); a nil step means 1.
//
// Without an explicit dtype the result kind follows the arguments (any
// float gives a float range) and, because arange opts into narrowing,
// 64-bit kinds become 32-bit.
func Arange(ctx *dispatch.Context, start, stop, step any, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	if stop == nil {
		start, stop = 0, start
	}
	if step == nil {
		step = 1
	}
	args := []any{start, stop, step}
	vals := make([]float64, len(args))
	natural := tensor.Int64
	for i, a := range args {
		dt, ok := tensor.ScalarDType(a)
		if !ok || dt.IsBool() || dt.IsComplex() {
			return nil, errors.Errorf("%s: argument %v (%T) must be a real number", OpArange, a, a)
		}
		switch {
		case dt == tensor.Float64:
			natural = tensor.Float64
		case dt.IsFloat() && natural != tensor.Float64:
			natural = tensor.Float32
		}
		c, _ := tensor.ScalarValue(a)
		vals[i] = real(c)
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Errorf("%s: arguments must be finite, got start=%v stop=%v step=%v",
				OpArange, vals[0], vals[1], vals[2])
		}
	}
	if vals[2] == 0 {
		return nil, errors.Errorf("%s: step must be non-zero", OpArange)
	}

	o := dispatch.Collect(opts)
	dtype := o.DType
	if dtype == 0 {
		dtype = natural
		if def, _ := Lookup(OpArange); def.NarrowDefaults {
			dtype = dtype.Narrowed()
		}
	} else if !dtype.Valid() {
		return nil, errors.Errorf("%s: invalid dtype %v", OpArange, dtype)
	}
	device := o.DeviceOr(ctx.DefaultDevice())
	b := ctx.Backend()
	return ctx.Run(OpArange, dtype, device, o.Out, func() *tensor.RawTensor {
		return b.Arange(vals[0], vals[1], vals[2], dtype, device)
	})
}

// Linspace creates num evenly spaced samples between start and stop.
//
// With scalar endpoints the dtype defaults to the default float and the
// first element is set to start exactly, so a -0.0 start survives engines
// whose interpolation loses its sign. With array endpoints (either side a
// *tensor.RawTensor) the endpoints broadcast, the result has shape
// broadcast + [num], float endpoint arrays keep their float dtype and no
// element is overwritten.
func Linspace(ctx *dispatch.Context, start, stop any, num int, endpoint bool, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	if num < 0 {
		return nil, errors.Errorf("%s: number of samples %d must be non-negative", OpLinspace, num)
	}
	startArr, startIsArr := start.(*tensor.RawTensor)
	stopArr, stopIsArr := stop.(*tensor.RawTensor)
	if startIsArr || stopIsArr {
		return linspaceArrays(ctx, start, stop, startArr, stopArr, num, endpoint, opts)
	}

	lo, err := realScalar(OpLinspace, start)
	if err != nil {
		return nil, err
	}
	hi, err := realScalar(OpLinspace, stop)
	if err != nil {
		return nil, err
	}
	o := dispatch.Collect(opts)
	dtype, err := ctx.ResolveDType(nil, o.DType, ctx.DefaultFloat())
	if err != nil {
		return nil, errors.Wrap(err, OpLinspace)
	}
	device := o.DeviceOr(ctx.DefaultDevice())
	b := ctx.Backend()
	return ctx.Run(OpLinspace, dtype, device, o.Out, func() *tensor.RawTensor {
		res := b.Linspace(lo, hi, num, endpoint, dtype, device)
		if res.NumElements() >= 1 {
			res.SetFloat64(0, lo)
		}
		return res
	})
}

func linspaceArrays(ctx *dispatch.Context, start, stop any, startArr, stopArr *tensor.RawTensor,
	num int, endpoint bool, opts []dispatch.Option) (*tensor.RawTensor, error) {
	var given []*tensor.RawTensor
	for _, a := range []*tensor.RawTensor{startArr, stopArr} {
		if a != nil {
			given = append(given, a)
		}
	}
	var err error
	if startArr == nil {
		if startArr, err = scalarArray(ctx, OpLinspace, start); err != nil {
			return nil, err
		}
	}
	if stopArr == nil {
		if stopArr, err = scalarArray(ctx, OpLinspace, stop); err != nil {
			return nil, err
		}
	}
	shape, _, err := tensor.BroadcastShapes(startArr.Shape(), stopArr.Shape())
	if err != nil {
		return nil, tensor.WithOp(OpLinspace, err)
	}

	o := dispatch.Collect(opts)
	dtype := o.DType
	if dtype == 0 {
		for _, a := range given {
			if a.DType().IsFloat() && (dtype == 0 || tensor.CanCastSafely(dtype, a.DType())) {
				dtype = a.DType()
			}
		}
		if dtype == 0 {
			dtype = ctx.DefaultFloat()
		}
	}
	device := o.DeviceOr(ctx.DefaultDevice())
	b := ctx.Backend()
	outShape := append(shape.Clone(), num)
	return ctx.Run(OpLinspace, dtype, device, o.Out, func() *tensor.RawTensor {
		res := b.Empty(outShape, dtype, device)
		n := shape.NumElements()
		for p := 0; p < n; p++ {
			lo := startArr.Float64At(broadcastIndex(p, shape, startArr.Shape()))
			hi := stopArr.Float64At(broadcastIndex(p, shape, stopArr.Shape()))
			row := b.Linspace(lo, hi, num, endpoint, tensor.Float64, device)
			for i := 0; i < num; i++ {
				res.SetFloat64(p*num+i, row.Float64At(i))
			}
		}
		return res
	})
}

// Logspace creates num samples base**x for x evenly spaced in [start, stop].
func Logspace(ctx *dispatch.Context, start, stop any, num int, base float64, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	if num < 0 {
		return nil, errors.Errorf("%s: number of samples %d must be non-negative", OpLogspace, num)
	}
	lo, err := realScalar(OpLogspace, start)
	if err != nil {
		return nil, err
	}
	hi, err := realScalar(OpLogspace, stop)
	if err != nil {
		return nil, err
	}
	o := dispatch.Collect(opts)
	dtype, err := ctx.ResolveDType(nil, o.DType, ctx.DefaultFloat())
	if err != nil {
		return nil, errors.Wrap(err, OpLogspace)
	}
	device := o.DeviceOr(ctx.DefaultDevice())
	b := ctx.Backend()
	return ctx.Run(OpLogspace, dtype, device, o.Out, func() *tensor.RawTensor {
		res := b.Linspace(lo, hi, num, true, tensor.Float64, device)
		for i := 0; i < res.NumElements(); i++ {
			res.SetFloat64(i, math.Pow(base, res.Float64At(i)))
		}
		return res
	})
}

// Asarray converts obj to an array. An existing *tensor.RawTensor is
// returned unchanged when no dtype or device conversion is needed. Scalars
// and nested slices are inferred by the dtype resolver; an empty sequence
// falls back to the default float.
func Asarray(ctx *dispatch.Context, obj any, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	o := dispatch.Collect(opts)
	b := ctx.Backend()
	if arr, ok := obj.(*tensor.RawTensor); ok {
		dtype, err := ctx.ResolveDType([]any{arr}, o.DType, 0)
		if err != nil {
			return nil, errors.Wrap(err, OpAsarray)
		}
		device := o.DeviceOr(arr.Device())
		return ctx.Run(OpAsarray, dtype, device, o.Out, func() *tensor.RawTensor {
			return arr
		})
	}

	shape, flat, err := dispatch.Flatten(obj)
	if err != nil {
		return nil, errors.Wrap(err, OpAsarray)
	}
	dtype, err := ctx.ResolveDType([]any{obj}, o.DType, ctx.DefaultFloat())
	if err != nil {
		return nil, errors.Wrap(err, OpAsarray)
	}
	device := o.DeviceOr(ctx.DefaultDevice())
	return ctx.Run(OpAsarray, dtype, device, o.Out, func() *tensor.RawTensor {
		res := b.Empty(shape, dtype, device)
		for i, v := range flat {
			if err := res.SetScalar(i, v); err != nil {
				panic(err)
			}
		}
		return res
	})
}

// Tril keeps the elements on and below diagonal k of the last two axes.
func Tril(ctx *dispatch.Context, x *tensor.RawTensor, k int, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	return triangle(ctx, OpTril, x, k, opts, ctx.Backend().Tril)
}

// Triu keeps the elements on and above diagonal k of the last two axes.
func Triu(ctx *dispatch.Context, x *tensor.RawTensor, k int, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	return triangle(ctx, OpTriu, x, k, opts, ctx.Backend().Triu)
}

func triangle(ctx *dispatch.Context, op string, x *tensor.RawTensor, k int, opts []dispatch.Option,
	native func(*tensor.RawTensor, int) *tensor.RawTensor) (*tensor.RawTensor, error) {
	if x == nil {
		return nil, errors.Errorf("%s: nil input", op)
	}
	if len(x.Shape()) < 2 {
		return nil, errors.Errorf("%s: input must have at least 2 dimensions, got shape %v", op, []int(x.Shape()))
	}
	o := dispatch.Collect(opts)
	if err := ctx.Gate(op, o.DeviceOr(x.Device()), x.DType()); err != nil {
		return nil, err
	}
	dtype, err := ctx.ResolveDType([]any{x}, o.DType, 0)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	return ctx.Run(op, dtype, o.DeviceOr(x.Device()), o.Out, func() *tensor.RawTensor {
		return native(x, k)
	})
}

// Meshgrid returns coordinate matrices from coordinate vectors. Indexing
// "xy" (Cartesian) swaps the first two output axes, "ij" (matrix) does not.
// Every input is flattened first. Each output keeps its input's dtype
// unless an explicit dtype is given, and lands on the requested device or
// the first input's device.
func Meshgrid(ctx *dispatch.Context, arrays []*tensor.RawTensor, indexing string, opts ...dispatch.Option) ([]*tensor.RawTensor, error) {
	if indexing != "xy" && indexing != "ij" {
		return nil, errors.Errorf("%s: indexing must be \"xy\" or \"ij\", got %q", OpMeshgrid, indexing)
	}
	if len(arrays) == 0 {
		return nil, nil
	}
	o := dispatch.Collect(opts)
	if o.Out != nil {
		return nil, errors.Errorf("%s: output buffers are not supported", OpMeshgrid)
	}
	device := o.DeviceOr(arrays[0].Device())

	shape := make(tensor.Shape, len(arrays))
	for i, a := range arrays {
		shape[i] = a.NumElements()
	}
	axisOf := func(i int) int { return i }
	if indexing == "xy" && len(arrays) > 1 {
		shape[0], shape[1] = shape[1], shape[0]
		axisOf = func(i int) int {
			switch i {
			case 0:
				return 1
			case 1:
				return 0
			}
			return i
		}
	}

	dtypes := make([]tensor.DType, len(arrays))
	for i, a := range arrays {
		dt, err := ctx.ResolveDType([]any{a}, o.DType, 0)
		if err != nil {
			return nil, errors.Wrap(err, OpMeshgrid)
		}
		if err := ctx.Gate(OpMeshgrid, device, dt); err != nil {
			return nil, err
		}
		dtypes[i] = dt
	}

	b := ctx.Backend()
	grids := make([]*tensor.RawTensor, len(arrays))
	for i, a := range arrays {
		view := ones(len(shape))
		view[axisOf(i)] = a.NumElements()
		res, err := ctx.Run(OpMeshgrid, dtypes[i], device, nil, func() *tensor.RawTensor {
			return expandNative(ctx, b.Reshape(a, view), shape, device)
		})
		if err != nil {
			return nil, err
		}
		grids[i] = res
	}
	return grids, nil
}

func ones(n int) tensor.Shape {
	s := make(tensor.Shape, n)
	for i := range s {
		s[i] = 1
	}
	return s
}

func realScalar(op string, v any) (float64, error) {
	dt, ok := tensor.ScalarDType(v)
	if !ok || dt.IsComplex() {
		return 0, errors.Errorf("%s: %v (%T) must be a real scalar", op, v, v)
	}
	c, _ := tensor.ScalarValue(v)
	return real(c), nil
}

func scalarArray(ctx *dispatch.Context, op string, v any) (*tensor.RawTensor, error) {
	x, err := realScalar(op, v)
	if err != nil {
		return nil, err
	}
	res := tensor.MustNewRaw(tensor.Shape{}, tensor.Float64, ctx.DefaultDevice())
	res.SetFloat64(0, x)
	return res, nil
}

// broadcastIndex maps a flat index of outShape to the flat index of an
// input of inShape broadcast against it.
func broadcastIndex(outIdx int, outShape, inShape tensor.Shape) int {
	inIdx := 0
	inStride := 1
	outOffset := len(outShape) - len(inShape)
	for d := len(outShape) - 1; d >= 0; d-- {
		coord := outIdx % outShape[d]
		outIdx /= outShape[d]
		inDim := d - outOffset
		if inDim < 0 {
			continue
		}
		if inShape[inDim] != 1 {
			inIdx += coord * inStride
		}
		inStride *= inShape[inDim]
	}
	return inIdx
}
