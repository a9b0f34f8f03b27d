package ops

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/umer200/ivy/internal/backend/cpu"
	"github.com/umer200/ivy/internal/backend/sim"
	"github.com/umer200/ivy/internal/dispatch"
	"github.com/umer200/ivy/internal/tensor"
)

type engine struct {
	name    string
	backend tensor.Backend
}

// engines returns fresh instances of every reference engine.
func engines() []engine {
	return []engine{
		{"cpu", cpu.New()},
		{"sim", sim.New()},
	}
}

func newCtx(t *testing.T, b tensor.Backend, opts ...dispatch.ContextOption) *dispatch.Context {
	t.Helper()
	ctx, err := NewContext(b, opts...)
	require.NoError(t, err)
	return ctx
}

// countingBackend records how often each constructor primitive runs.
type countingBackend struct {
	tensor.Backend
	calls map[string]int
}

func newCounting(b tensor.Backend) *countingBackend {
	return &countingBackend{Backend: b, calls: make(map[string]int)}
}

func (c *countingBackend) Empty(shape tensor.Shape, dtype tensor.DType, device tensor.Device) *tensor.RawTensor {
	c.calls["empty"]++
	return c.Backend.Empty(shape, dtype, device)
}

func (c *countingBackend) Full(shape tensor.Shape, value complex128, dtype tensor.DType, device tensor.Device) *tensor.RawTensor {
	c.calls["full"]++
	return c.Backend.Full(shape, value, dtype, device)
}

func (c *countingBackend) Eye(rows, cols, k int, dtype tensor.DType, device tensor.Device) *tensor.RawTensor {
	c.calls["eye"]++
	return c.Backend.Eye(rows, cols, k, dtype, device)
}

func (c *countingBackend) Arange(start, stop, step float64, dtype tensor.DType, device tensor.Device) *tensor.RawTensor {
	c.calls["arange"]++
	return c.Backend.Arange(start, stop, step, dtype, device)
}

func (c *countingBackend) Linspace(start, stop float64, num int, endpoint bool, dtype tensor.DType, device tensor.Device) *tensor.RawTensor {
	c.calls["linspace"]++
	return c.Backend.Linspace(start, stop, num, endpoint, dtype, device)
}

func (c *countingBackend) total() int {
	n := 0
	for _, v := range c.calls {
		n += v
	}
	return n
}

// raw builds a host array of dtype holding values.
func raw(t *testing.T, shape tensor.Shape, dtype tensor.DType, values ...float64) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.NewRaw(shape, dtype, tensor.CPU)
	require.NoError(t, err)
	require.Len(t, values, r.NumElements())
	for i, v := range values {
		r.SetFloat64(i, v)
	}
	return r
}
