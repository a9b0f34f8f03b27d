package tensor

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// UnsupportedDTypeError reports a dtype in the closed set that an operation
// rejects for the active backend version.
type UnsupportedDTypeError struct {
	Op      string
	Backend string
	Version string
	Device  Device
	DType   DType
}

func (e *UnsupportedDTypeError) Error() string {
	return fmt.Sprintf("%s: dtype %s is not supported by backend %s %s",
		e.Op, e.DType, e.Backend, e.Version)
}

// UnsupportedDeviceError reports a device the active backend does not know.
type UnsupportedDeviceError struct {
	Op      string
	Backend string
	Device  Device
	Known   []Device
}

func (e *UnsupportedDeviceError) Error() string {
	known := make([]string, len(e.Known))
	for i, d := range e.Known {
		known[i] = string(d)
	}
	return fmt.Sprintf("%s: device %q is unknown to backend %s (known: %s)",
		e.Op, e.Device, e.Backend, strings.Join(known, ", "))
}

// UnsupportedDeviceAndDTypeError reports a dtype rejected only on a specific device.
type UnsupportedDeviceAndDTypeError struct {
	Op      string
	Backend string
	Version string
	Device  Device
	DType   DType
}

func (e *UnsupportedDeviceAndDTypeError) Error() string {
	return fmt.Sprintf("%s: dtype %s is not supported on device %s by backend %s %s",
		e.Op, e.DType, e.Device, e.Backend, e.Version)
}

// ShapeMismatchError reports shapes that cannot be unified.
type ShapeMismatchError struct {
	Op     string
	Shapes []Shape
	Axis   int // aligned output axis where the conflict was found
}

func (e *ShapeMismatchError) Error() string {
	parts := make([]string, len(e.Shapes))
	for i, s := range e.Shapes {
		parts[i] = fmt.Sprint([]int(s))
	}
	msg := fmt.Sprintf("shapes %s cannot be broadcast (axis %d)", strings.Join(parts, ", "), e.Axis)
	if e.Op != "" {
		return e.Op + ": " + msg
	}
	return msg
}

// OutputShapeOrDTypeError reports an output buffer incompatible with the result.
type OutputShapeOrDTypeError struct {
	Op          string
	OutShape    Shape
	OutDType    DType
	ResultShape Shape
	ResultDType DType
}

func (e *OutputShapeOrDTypeError) Error() string {
	return fmt.Sprintf("%s: output buffer %v %s cannot hold result %v %s",
		e.Op, []int(e.OutShape), e.OutDType, []int(e.ResultShape), e.ResultDType)
}

// NotImplementedForBackend reports an operation declared but intentionally
// not implemented for a backend.
type NotImplementedForBackend struct {
	Op      string
	Backend string
}

func (e *NotImplementedForBackend) Error() string {
	return fmt.Sprintf("%s: not implemented for backend %s", e.Op, e.Backend)
}

// WithOp stamps the operation name on taxonomy errors that were raised
// before the operation was known (for example by BroadcastShapes).
// Other errors are returned unchanged.
func WithOp(op string, err error) error {
	if err == nil {
		return nil
	}
	var mismatch *ShapeMismatchError
	if errors.As(err, &mismatch) && mismatch.Op == "" {
		mismatch.Op = op
	}
	var device *UnsupportedDeviceError
	if errors.As(err, &device) && device.Op == "" {
		device.Op = op
	}
	return err
}
