package dispatch

import "github.com/umer200/ivy/internal/tensor"

// Options are the keyword-only parameters shared by every gated operation.
type Options struct {
	DType  tensor.DType      // explicit dtype; zero means infer
	Device tensor.Device     // placement target; empty means the default
	Out    *tensor.RawTensor // caller-owned output buffer
}

// Option sets one field of Options.
type Option func(*Options)

// WithDType overrides the inferred dtype.
func WithDType(dt tensor.DType) Option {
	return func(o *Options) { o.DType = dt }
}

// OnDevice sets the placement target.
func OnDevice(d tensor.Device) Option {
	return func(o *Options) { o.Device = d }
}

// Out asks for the result to be written into buf.
func Out(buf *tensor.RawTensor) Option {
	return func(o *Options) { o.Out = buf }
}

// Collect applies opts in order.
func Collect(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// DeviceOr returns the requested device, or fallback when none was given.
func (o Options) DeviceOr(fallback tensor.Device) tensor.Device {
	if o.Device != "" {
		return o.Device
	}
	return fallback
}
