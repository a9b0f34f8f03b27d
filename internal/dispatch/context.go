// Package dispatch is the normalization layer between operations and
// engines. A Context binds one engine, its capability registry and the
// call defaults; every operation runs the same sequence through it:
// gate, resolve, call the engine, conform the dtype, place, write out.
package dispatch

import (
	"io"
	"log/slog"
	"slices"

	"github.com/pkg/errors"

	"github.com/umer200/ivy/internal/capability"
	"github.com/umer200/ivy/internal/tensor"
)

// Context is the explicit execution scope for operations. It is immutable
// after construction and safe to share between goroutines.
type Context struct {
	backend  tensor.Backend
	registry *capability.Registry
	device   tensor.Device
	float    tensor.DType
	logger   *slog.Logger
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithDefaultDevice sets the device used when a call names none.
func WithDefaultDevice(d tensor.Device) ContextOption {
	return func(c *Context) {
		if d != "" {
			c.device = d
		}
	}
}

// WithDefaultFloat sets the floating dtype used by operations whose
// default is "the default float".
func WithDefaultFloat(dt tensor.DType) ContextOption {
	return func(c *Context) {
		if dt != 0 {
			c.float = dt
		}
	}
}

// WithLogger sets the structured logger. The default discards records.
func WithLogger(l *slog.Logger) ContextOption {
	return func(c *Context) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewContext binds backend and registry. A nil registry gates nothing.
// The backend must report a version the registry can compare.
func NewContext(backend tensor.Backend, registry *capability.Registry, opts ...ContextOption) (*Context, error) {
	if backend == nil {
		return nil, errors.New("dispatch: nil backend")
	}
	if registry == nil {
		registry = capability.NewBuilder().MustBuild()
	}
	if err := capability.ValidateVersion(backend.Version()); err != nil {
		return nil, errors.Wrapf(err, "dispatch: backend %s", backend.Name())
	}
	c := &Context{
		backend:  backend,
		registry: registry,
		device:   backend.DefaultDevice(),
		float:    tensor.Float32,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.float.IsFloat() {
		return nil, errors.Errorf("dispatch: default float dtype must be floating, got %s", c.float)
	}
	if !slices.Contains(backend.Devices(), c.device) {
		return nil, errors.WithStack(&tensor.UnsupportedDeviceError{
			Op: "context", Backend: backend.Name(), Device: c.device, Known: backend.Devices(),
		})
	}
	return c, nil
}

// Backend returns the bound engine.
func (c *Context) Backend() tensor.Backend { return c.backend }

// Registry returns the capability registry.
func (c *Context) Registry() *capability.Registry { return c.registry }

// DefaultDevice returns the device used when a call names none.
func (c *Context) DefaultDevice() tensor.Device { return c.device }

// DefaultFloat returns the canonical floating default.
func (c *Context) DefaultFloat() tensor.DType { return c.float }

// Logger returns the structured logger.
func (c *Context) Logger() *slog.Logger { return c.logger }
