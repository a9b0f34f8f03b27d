package dispatch

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/umer200/ivy/internal/tensor"
)

// Place guarantees res ends up on device, whatever device the engine
// allocated it on. An array already on device is returned as is.
func (c *Context) Place(op string, res *tensor.RawTensor, device tensor.Device) (*tensor.RawTensor, error) {
	if err := c.checkDevice(op, device); err != nil {
		return nil, err
	}
	if res.Device() == device {
		return res, nil
	}
	c.logger.Debug("relocating result", "op", op, "from", res.Device(), "to", device)
	return c.backend.ToDevice(res, device), nil
}

func (c *Context) checkDevice(op string, device tensor.Device) error {
	known := c.backend.Devices()
	if slices.Contains(known, device) {
		return nil
	}
	return errors.WithStack(&tensor.UnsupportedDeviceError{
		Op: op, Backend: c.backend.Name(), Device: device, Known: known,
	})
}
