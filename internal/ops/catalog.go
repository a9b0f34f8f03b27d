// Package ops defines the gated array operations: the creation set and
// the shape manipulation family. Each operation declares its capability
// records in the catalog and runs through dispatch.Context.
package ops

import (
	"sync"

	"github.com/umer200/ivy/internal/capability"
	"github.com/umer200/ivy/internal/dispatch"
	"github.com/umer200/ivy/internal/tensor"
)

// Operation names as registered with the capability gate.
const (
	OpZeros           = "zeros"
	OpOnes            = "ones"
	OpFull            = "full"
	OpEmpty           = "empty"
	OpEye             = "eye"
	OpArange          = "arange"
	OpLinspace        = "linspace"
	OpLogspace        = "logspace"
	OpAsarray         = "asarray"
	OpMeshgrid        = "meshgrid"
	OpTril            = "tril"
	OpTriu            = "triu"
	OpZerosLike       = "zeros_like"
	OpOnesLike        = "ones_like"
	OpFullLike        = "full_like"
	OpEmptyLike       = "empty_like"
	OpExpand          = "expand"
	OpBroadcastShapes = "broadcast_shapes"
	OpFliplr          = "fliplr"
	OpFlipud          = "flipud"
	OpMoveaxis        = "moveaxis"
	OpVstack          = "vstack"
	OpHstack          = "hstack"

	// opExpandNative gates the engine's expand kernel itself. Dtypes it
	// rejects are bridged through float32 by Expand.
	opExpandNative = "expand.native"
)

// Engine names records are declared against.
const (
	backendCPU = "cpu"
	backendSim = "sim"
)

// Def describes one operation.
type Def struct {
	Name string
	// NarrowDefaults opts the operation into narrowing inferred 64-bit
	// float and integer dtypes to their 32-bit counterparts.
	NarrowDefaults bool
	Records        []capability.Record
}

var (
	int8To16 = []tensor.DType{tensor.Int8, tensor.Int16, tensor.Uint8, tensor.Uint16}
	complexT = []tensor.DType{tensor.Complex64, tensor.Complex128}
)

func join(sets ...[]tensor.DType) []tensor.DType {
	var out []tensor.DType
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

func unsupported(op, backend, versions string, dts ...tensor.DType) capability.Record {
	return capability.Record{Op: op, Backend: backend, Versions: versions, Unsupported: dts}
}

func unsupportedOn(op, backend, versions, device string, dts ...tensor.DType) capability.Record {
	return capability.Record{Op: op, Backend: backend, Versions: versions, Device: device, Unsupported: dts}
}

// Catalog returns every operation definition.
func Catalog() []Def {
	const upTo242 = "2.4.2 and below"
	return []Def{
		{Name: OpZeros},
		{Name: OpOnes},
		{Name: OpFull},
		{Name: OpEmpty},
		{Name: OpEye, Records: []capability.Record{
			unsupportedOn(OpEye, backendSim, upTo242, "cpu", tensor.BFloat16, tensor.Float16),
		}},
		{Name: OpArange, NarrowDefaults: true, Records: []capability.Record{
			unsupported(OpArange, backendSim, upTo242,
				join(int8To16, []tensor.DType{tensor.BFloat16, tensor.Float16}, complexT)...),
			unsupported(OpArange, backendCPU, "", tensor.Bool),
		}},
		{Name: OpLinspace, Records: []capability.Record{
			unsupported(OpLinspace, backendSim, upTo242, join(int8To16, []tensor.DType{tensor.BFloat16}, complexT)...),
		}},
		{Name: OpLogspace, Records: []capability.Record{
			unsupported(OpLogspace, backendSim, upTo242, join(int8To16, []tensor.DType{tensor.BFloat16}, complexT)...),
		}},
		{Name: OpAsarray},
		{Name: OpMeshgrid, Records: []capability.Record{
			unsupported(OpMeshgrid, backendSim, upTo242, tensor.Uint16, tensor.BFloat16, tensor.Float16),
		}},
		{Name: OpTril, Records: []capability.Record{
			unsupported(OpTril, backendSim, upTo242, join([]tensor.DType{tensor.Uint16, tensor.BFloat16}, complexT)...),
		}},
		{Name: OpTriu, Records: []capability.Record{
			unsupported(OpTriu, backendSim, upTo242, join([]tensor.DType{tensor.Uint16, tensor.BFloat16}, complexT)...),
		}},
		{Name: OpZerosLike},
		{Name: OpOnesLike},
		{Name: OpFullLike},
		{Name: OpEmptyLike},
		{Name: OpExpand, Records: []capability.Record{
			unsupportedOn(OpExpand, backendSim, upTo242, "cpu", tensor.Uint16, tensor.BFloat16),
		}},
		{Name: opExpandNative, Records: []capability.Record{
			unsupported(opExpandNative, backendSim, "", tensor.Int8, tensor.Int16, tensor.Uint8, tensor.Float16),
		}},
		{Name: OpBroadcastShapes},
		{Name: OpFliplr, Records: []capability.Record{
			unsupportedOn(OpFliplr, backendSim, upTo242, "cpu",
				join(int8To16, []tensor.DType{tensor.BFloat16, tensor.Float16})...),
		}},
		{Name: OpFlipud},
		{Name: OpMoveaxis, Records: []capability.Record{
			unsupported(OpMoveaxis, backendSim, upTo242, int8To16...),
		}},
		{Name: OpVstack},
		{Name: OpHstack},
	}
}

var defs = sync.OnceValue(func() map[string]Def {
	m := make(map[string]Def)
	for _, d := range Catalog() {
		m[d.Name] = d
	}
	return m
})

// Lookup returns the definition of op.
func Lookup(op string) (Def, bool) {
	d, ok := defs()[op]
	return d, ok
}

// DefaultRegistry is the capability registry built from Catalog. It is
// built once per process and never mutated.
var DefaultRegistry = sync.OnceValue(func() *capability.Registry {
	b := capability.NewBuilder()
	for _, d := range Catalog() {
		for _, r := range d.Records {
			b.Add(r)
		}
	}
	return b.MustBuild()
})

// NewContext binds backend to the default registry.
func NewContext(backend tensor.Backend, opts ...dispatch.ContextOption) (*dispatch.Context, error) {
	return dispatch.NewContext(backend, DefaultRegistry(), opts...)
}
