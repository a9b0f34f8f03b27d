package dispatch

import (
	"github.com/pkg/errors"

	"github.com/umer200/ivy/internal/tensor"
)

// Gate rejects a call before anything reaches the engine: the device must
// be known to the engine and dtype must not be declared unsupported for op
// at the engine's version on that device.
func (c *Context) Gate(op string, device tensor.Device, dtype tensor.DType) error {
	if err := c.checkDevice(op, device); err != nil {
		return err
	}
	err := c.registry.Check(op, c.backend.Name(), c.backend.Version(), device, dtype)
	if err != nil {
		c.logger.Debug("capability gate rejected call",
			"op", op,
			"backend", c.backend.Name(),
			"version", c.backend.Version(),
			"device", device,
			"dtype", dtype,
		)
	}
	return err
}

// Supports reports whether the registry allows dtype for op on device.
// It is used to decide between a native primitive and a bridged one.
func (c *Context) Supports(op string, device tensor.Device, dtype tensor.DType) bool {
	return c.registry.Supports(op, c.backend.Name(), c.backend.Version(), device, dtype)
}

// Run is the uniform gating wrapper: Gate, call the native primitive,
// then Finish. The primitive is never invoked when the gate rejects.
// Engine panics surface as errors.
func (c *Context) Run(op string, dtype tensor.DType, device tensor.Device, out *tensor.RawTensor,
	native func() *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := c.Gate(op, device, dtype); err != nil {
		return nil, err
	}
	res, err := c.Call(op, native)
	if err != nil {
		return nil, err
	}
	return c.Finish(op, res, dtype, device, out)
}

// Call invokes a native primitive, converting an engine panic into an error.
func (c *Context) Call(op string, native func() *tensor.RawTensor) (res *tensor.RawTensor, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = errors.Errorf("%s: backend %s failed: %v", op, c.backend.Name(), r)
		}
	}()
	return native(), nil
}

// NotImplemented returns the explicit error for an operation the engine
// does not provide.
func (c *Context) NotImplemented(op string) error {
	return errors.WithStack(&tensor.NotImplementedForBackend{Op: op, Backend: c.backend.Name()})
}

// Finish conforms the dtype, places the result and honors the output buffer.
func (c *Context) Finish(op string, res *tensor.RawTensor, dtype tensor.DType, device tensor.Device,
	out *tensor.RawTensor) (*tensor.RawTensor, error) {
	if res == nil {
		return nil, errors.Errorf("%s: backend %s returned no result", op, c.backend.Name())
	}
	res = c.Conform(op, res, dtype)
	res, err := c.Place(op, res, device)
	if err != nil {
		return nil, err
	}
	return c.WriteInto(op, out, res)
}

// Conform casts res to dtype when the engine produced a different one.
func (c *Context) Conform(op string, res *tensor.RawTensor, dtype tensor.DType) *tensor.RawTensor {
	if dtype == 0 || res.DType() == dtype {
		return res
	}
	c.logger.Debug("conforming engine dtype",
		"op", op, "native", c.backend.NativeDTypeName(res.DType()), "dtype", dtype)
	return c.backend.Cast(res, dtype)
}
