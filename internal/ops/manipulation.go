package ops

import (
	"github.com/pkg/errors"

	"github.com/umer200/ivy/internal/dispatch"
	"github.com/umer200/ivy/internal/tensor"
)

// BroadcastShapes unifies shapes. A scalar shape broadcasts against
// anything; incompatible shapes give *tensor.ShapeMismatchError.
//
// Example:
//
//	s, _ := ops.BroadcastShapes(tensor.Shape{}, tensor.Shape{2, 3}) // [2 3]
func BroadcastShapes(shapes ...tensor.Shape) (tensor.Shape, error) {
	s, err := tensor.BroadcastAll(shapes...)
	return s, tensor.WithOp(OpBroadcastShapes, err)
}

// Expand broadcasts x to shape.
//
// A negative entry in shape takes the size of x along the same axis. A
// rank-0 x is treated as shape [1]; an x with more dimensions than shape
// is flattened first. Dtypes the engine's expand kernel does not support
// are widened to float32, expanded and narrowed back, which is exact for
// every dtype bridged this way.
func Expand(ctx *dispatch.Context, x *tensor.RawTensor, shape tensor.Shape, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	if x == nil {
		return nil, errors.Errorf("%s: nil input", OpExpand)
	}
	o := dispatch.Collect(opts)
	device := o.DeviceOr(x.Device())
	if err := ctx.Gate(OpExpand, device, x.DType()); err != nil {
		return nil, err
	}

	xShape := x.Shape()
	target := shape.Clone()
	for i, dim := range target {
		if dim >= 0 {
			continue
		}
		if i >= len(xShape) {
			return nil, errors.WithStack(&tensor.ShapeMismatchError{
				Op: OpExpand, Shapes: []tensor.Shape{xShape.Clone(), shape.Clone()}, Axis: i,
			})
		}
		target[i] = xShape[i]
	}

	src := xShape.Clone()
	switch {
	case len(src) == 0 && len(target) > 0:
		src = tensor.Shape{1}
	case len(src) > len(target):
		src = tensor.Shape{x.NumElements()}
	}
	unified, _, err := tensor.BroadcastShapes(src, target)
	if err != nil || !unified.Equal(target) || len(src) > len(target) {
		return nil, errors.WithStack(&tensor.ShapeMismatchError{
			Op: OpExpand, Shapes: []tensor.Shape{xShape.Clone(), shape.Clone()}, Axis: -1,
		})
	}

	dtype, err := ctx.ResolveDType([]any{x}, o.DType, 0)
	if err != nil {
		return nil, errors.Wrap(err, OpExpand)
	}
	b := ctx.Backend()
	return ctx.Run(OpExpand, dtype, device, o.Out, func() *tensor.RawTensor {
		if len(target) == 0 {
			return x
		}
		return expandNative(ctx, b.Reshape(x, src), target, device)
	})
}

// expandNative calls the engine's expand kernel, bridging through float32
// when the registry marks x's dtype unsupported for the kernel.
func expandNative(ctx *dispatch.Context, x *tensor.RawTensor, shape tensor.Shape, device tensor.Device) *tensor.RawTensor {
	b := ctx.Backend()
	if ctx.Supports(opExpandNative, device, x.DType()) {
		return b.Expand(x, shape)
	}
	ctx.Logger().Debug("bridging expand through float32", "dtype", x.DType())
	wide := b.Expand(b.Cast(x, tensor.Float32), shape)
	return b.Cast(wide, x.DType())
}

// Fliplr reverses the order of columns (axis 1). x needs at least 2 dimensions.
func Fliplr(ctx *dispatch.Context, x *tensor.RawTensor, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	return flip(ctx, OpFliplr, x, 1, opts)
}

// Flipud reverses the order of rows (axis 0). x needs at least 1 dimension.
func Flipud(ctx *dispatch.Context, x *tensor.RawTensor, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	return flip(ctx, OpFlipud, x, 0, opts)
}

func flip(ctx *dispatch.Context, op string, x *tensor.RawTensor, axis int, opts []dispatch.Option) (*tensor.RawTensor, error) {
	if x == nil {
		return nil, errors.Errorf("%s: nil input", op)
	}
	if len(x.Shape()) <= axis {
		return nil, errors.Errorf("%s: input must have at least %d dimensions, got shape %v", op, axis+1, []int(x.Shape()))
	}
	o := dispatch.Collect(opts)
	device := o.DeviceOr(x.Device())
	if err := ctx.Gate(op, device, x.DType()); err != nil {
		return nil, err
	}
	dtype, err := ctx.ResolveDType([]any{x}, o.DType, 0)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	b := ctx.Backend()
	return ctx.Run(op, dtype, device, o.Out, func() *tensor.RawTensor {
		return b.Flip(x, axis)
	})
}

// Moveaxis moves the axes of x at positions source to positions
// destination; the other axes keep their relative order. Negative
// positions count from the end.
//
// Example:
//
//	y, _ := ops.Moveaxis(ctx, x, []int{0}, []int{-1}) // [2 3 4] -> [3 4 2]
func Moveaxis(ctx *dispatch.Context, x *tensor.RawTensor, source, destination []int, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	if x == nil {
		return nil, errors.Errorf("%s: nil input", OpMoveaxis)
	}
	ndim := len(x.Shape())
	if len(source) != len(destination) {
		return nil, errors.Errorf("%s: source %v and destination %v must have the same number of elements",
			OpMoveaxis, source, destination)
	}
	src, err := normalizeAxes(OpMoveaxis, source, ndim)
	if err != nil {
		return nil, err
	}
	dst, err := normalizeAxes(OpMoveaxis, destination, ndim)
	if err != nil {
		return nil, err
	}

	o := dispatch.Collect(opts)
	device := o.DeviceOr(x.Device())
	if err := ctx.Gate(OpMoveaxis, device, x.DType()); err != nil {
		return nil, err
	}
	dtype, err := ctx.ResolveDType([]any{x}, o.DType, 0)
	if err != nil {
		return nil, errors.Wrap(err, OpMoveaxis)
	}
	perm := moveaxisOrder(src, dst, ndim)
	b := ctx.Backend()
	return ctx.Run(OpMoveaxis, dtype, device, o.Out, func() *tensor.RawTensor {
		return b.Transpose(x, perm...)
	})
}

// normalizeAxes maps negative positions into [0, ndim) and rejects
// out-of-range and repeated axes.
func normalizeAxes(op string, axes []int, ndim int) ([]int, error) {
	out := make([]int, len(axes))
	seen := make(map[int]bool, len(axes))
	for i, ax := range axes {
		if ax < -ndim || ax >= ndim {
			return nil, errors.Errorf("%s: axis %d is out of bounds for an array of dimension %d", op, ax, ndim)
		}
		if ax < 0 {
			ax += ndim
		}
		if seen[ax] {
			return nil, errors.Errorf("%s: repeated axis %d in %v", op, ax, axes)
		}
		seen[ax] = true
		out[i] = ax
	}
	return out, nil
}

// moveaxisOrder returns the permutation that places src[i] at dst[i].
func moveaxisOrder(src, dst []int, ndim int) []int {
	moved := make(map[int]bool, len(src))
	for _, ax := range src {
		moved[ax] = true
	}
	perm := make([]int, ndim)
	placed := make([]bool, ndim)
	for i, ax := range src {
		perm[dst[i]] = ax
		placed[dst[i]] = true
	}
	next := 0
	for ax := 0; ax < ndim; ax++ {
		if moved[ax] {
			continue
		}
		for placed[next] {
			next++
		}
		perm[next] = ax
		placed[next] = true
	}
	return perm
}

// Vstack stacks arrays row-wise. 1-D inputs of length n become rows [1, n].
// Engines without a concatenation primitive return
// *tensor.NotImplementedForBackend.
func Vstack(ctx *dispatch.Context, arrays []*tensor.RawTensor, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	return stack(ctx, OpVstack, arrays, opts, func(s tensor.Shape) (tensor.Shape, int) {
		switch len(s) {
		case 0:
			return tensor.Shape{1, 1}, 0
		case 1:
			return tensor.Shape{1, s[0]}, 0
		}
		return s, 0
	})
}

// Hstack stacks arrays column-wise: 1-D inputs are joined end to end,
// higher-rank inputs along axis 1.
func Hstack(ctx *dispatch.Context, arrays []*tensor.RawTensor, opts ...dispatch.Option) (*tensor.RawTensor, error) {
	return stack(ctx, OpHstack, arrays, opts, func(s tensor.Shape) (tensor.Shape, int) {
		switch len(s) {
		case 0:
			return tensor.Shape{1}, 0
		case 1:
			return s, 0
		}
		return s, 1
	})
}

func stack(ctx *dispatch.Context, op string, arrays []*tensor.RawTensor, opts []dispatch.Option,
	layout func(tensor.Shape) (tensor.Shape, int)) (*tensor.RawTensor, error) {
	concat, ok := ctx.Backend().(tensor.Concatenator)
	if !ok {
		return nil, ctx.NotImplemented(op)
	}
	if len(arrays) == 0 {
		return nil, errors.Errorf("%s: at least one array required", op)
	}

	shapes := make([]tensor.Shape, len(arrays))
	var axis int
	for i, a := range arrays {
		shapes[i], axis = layout(a.Shape())
	}
	for _, s := range shapes {
		if d := conflictAxis(s, shapes[0], axis); d != noConflict {
			in := make([]tensor.Shape, len(arrays))
			for j, a := range arrays {
				in[j] = a.Shape().Clone()
			}
			return nil, errors.WithStack(&tensor.ShapeMismatchError{Op: op, Shapes: in, Axis: d})
		}
	}

	o := dispatch.Collect(opts)
	inputs := make([]any, len(arrays))
	for i, a := range arrays {
		inputs[i] = a
	}
	dtype, err := ctx.ResolveDType(inputs, o.DType, 0)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	device := o.DeviceOr(arrays[0].Device())
	b := ctx.Backend()
	return ctx.Run(op, dtype, device, o.Out, func() *tensor.RawTensor {
		parts := make([]*tensor.RawTensor, len(arrays))
		for i, a := range arrays {
			parts[i] = b.Cast(b.Reshape(a, shapes[i]), dtype)
		}
		return concat.Concat(parts, axis)
	})
}

const noConflict = -2

// conflictAxis returns the first axis other than skip on which a and b
// disagree, -1 when their ranks differ, or noConflict.
func conflictAxis(a, b tensor.Shape, skip int) int {
	if len(a) != len(b) {
		return -1
	}
	for d := range a {
		if d != skip && a[d] != b[d] {
			return d
		}
	}
	return noConflict
}
