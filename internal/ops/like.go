package ops

import (
	"github.com/pkg/errors"

	"github.com/umer200/ivy/internal/dispatch"
	"github.com/umer200/ivy/internal/tensor"
)

// ZerosLike creates zeros with the shape of x. Dtype and device default
// to those of x.
func ZerosLike(ctx *dispatch.Context, x tensor.NumericArray, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	if x == nil {
		return nil, errors.Errorf("%s: nil reference array", OpZerosLike)
	}
	return fill(ctx, OpZerosLike, x.Shape(), 0, []any{x}, x.DType(), x.Device(), opts)
}

// OnesLike creates ones with the shape of x.
func OnesLike(ctx *dispatch.Context, x tensor.NumericArray, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	if x == nil {
		return nil, errors.Errorf("%s: nil reference array", OpOnesLike)
	}
	return fill(ctx, OpOnesLike, x.Shape(), 1, []any{x}, x.DType(), x.Device(), opts)
}

// FullLike creates an array with the shape of x filled with value. The
// dtype follows x, not the value, unless given explicitly.
func FullLike(ctx *dispatch.Context, x tensor.NumericArray, value any, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	if x == nil {
		return nil, errors.Errorf("%s: nil reference array", OpFullLike)
	}
	v, ok := tensor.ScalarValue(value)
	if !ok {
		return nil, errors.Errorf("%s: unsupported fill value %T", OpFullLike, value)
	}
	return fill(ctx, OpFullLike, x.Shape(), v, []any{x, value}, x.DType(), x.Device(), opts)
}

// EmptyLike creates an uninitialized array with the shape of x.
func EmptyLike(ctx *dispatch.Context, x tensor.NumericArray, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	if x == nil {
		return nil, errors.Errorf("%s: nil reference array", OpEmptyLike)
	}
	o := dispatch.Collect(opts)
	dtype, err := ctx.ResolveDType([]any{x}, o.DType, x.DType())
	if err != nil {
		return nil, errors.Wrap(err, OpEmptyLike)
	}
	device := o.DeviceOr(x.Device())
	shape := x.Shape().Clone()
	b := ctx.Backend()
	return ctx.Run(OpEmptyLike, dtype, device, o.Out, func() *tensor.RawTensor {
		return b.Empty(shape, dtype, device)
	})
}
