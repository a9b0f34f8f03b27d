package dispatch

import (
	"github.com/pkg/errors"

	"github.com/umer200/ivy/internal/tensor"
)

// WriteInto honors the output-aliasing contract. Without a buffer the
// result is returned. With one, its shape must equal the result's and the
// result dtype must cast safely into the buffer's dtype; then the buffer is
// overwritten in place and returned. On mismatch the buffer is untouched.
// No reference to out is kept after the call.
func (c *Context) WriteInto(op string, out, result *tensor.RawTensor) (*tensor.RawTensor, error) {
	if out == nil {
		return result, nil
	}
	if !out.Shape().Equal(result.Shape()) || !tensor.CanCastSafely(result.DType(), out.DType()) {
		return nil, errors.WithStack(&tensor.OutputShapeOrDTypeError{
			Op:          op,
			OutShape:    out.Shape().Clone(),
			OutDType:    out.DType(),
			ResultShape: result.Shape().Clone(),
			ResultDType: result.DType(),
		})
	}
	if out == result {
		return out, nil
	}
	c.backend.Copy(out, result)
	c.logger.Debug("wrote result into output buffer", "op", op, "shape", []int(out.Shape()), "dtype", out.DType())
	return out, nil
}
