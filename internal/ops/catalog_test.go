package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umer200/ivy/internal/backend/sim"
	"github.com/umer200/ivy/internal/tensor"
)

func TestCatalogIsConsistent(t *testing.T) {
	seen := make(map[string]bool)
	for _, d := range Catalog() {
		require.False(t, seen[d.Name], "duplicate %s", d.Name)
		seen[d.Name] = true
		for _, r := range d.Records {
			assert.Equal(t, d.Name, r.Op)
			assert.NotEmpty(t, r.Unsupported, d.Name)
		}
	}
	for _, op := range []string{
		OpZeros, OpOnes, OpFull, OpEmpty, OpEye, OpArange, OpLinspace, OpLogspace,
		OpAsarray, OpMeshgrid, OpTril, OpTriu, OpZerosLike, OpOnesLike, OpFullLike,
		OpEmptyLike, OpExpand, OpBroadcastShapes, OpFliplr, OpFlipud, OpMoveaxis, OpVstack, OpHstack,
	} {
		assert.True(t, seen[op], op)
	}
}

func TestLookup(t *testing.T) {
	d, ok := Lookup(OpArange)
	require.True(t, ok)
	assert.True(t, d.NarrowDefaults)

	for _, op := range []string{OpZeros, OpOnes, OpEye, OpLinspace} {
		d, ok := Lookup(op)
		require.True(t, ok)
		assert.False(t, d.NarrowDefaults, op)
	}

	_, ok = Lookup("matmul")
	assert.False(t, ok)
}

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	assert.Same(t, reg, DefaultRegistry())

	n := 0
	for _, d := range Catalog() {
		n += len(d.Records)
	}
	assert.Len(t, reg.Records(), n)

	assert.False(t, reg.Supports(OpArange, "sim", sim.DefaultVersion, tensor.GPU(0), tensor.Int8))
	assert.True(t, reg.Supports(OpArange, "sim", "2.5.0", tensor.GPU(0), tensor.Int8))
	assert.False(t, reg.Supports(OpArange, "cpu", "1.0.0", tensor.CPU, tensor.Bool))
	assert.True(t, reg.Supports(OpZeros, "sim", sim.DefaultVersion, tensor.CPU, tensor.Complex128))
}
