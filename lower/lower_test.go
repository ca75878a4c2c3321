package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glacier-ir/glacier/hir"
	"github.com/glacier-ir/glacier/lir"
)

func TestTableBinary(t *testing.T) {
	env := newLoweringEnv()
	x := env.value("x", hir.I32, lir.NewInt(lir.I32, 3))
	y := env.value("y", hir.I32, lir.NewInt(lir.I32, 4))
	r := hir.NewValue("r", hir.I32)

	op := hir.NewGeneric("hl.add", []*hir.Value{x, y}, r)
	require.NoError(t, ConvertOperation(op, env.ctx, env.b))

	bin := env.ctx.LookupValue(r).(*lir.BinInst)
	assert.Equal(t, lir.Add, bin.Op)
}

func TestTableCast(t *testing.T) {
	env := newLoweringEnv()
	x := env.value("x", hir.I32, lir.NewInt(lir.I32, 3))
	r := hir.NewValue("r", hir.I64)

	op := hir.NewGeneric("hl.sext", []*hir.Value{x}, r)
	require.NoError(t, ConvertOperation(op, env.ctx, env.b))

	cast := env.ctx.LookupValue(r).(*lir.CastInst)
	assert.Equal(t, lir.SExt, cast.Op)
	assert.True(t, cast.To.Equal(lir.I64))
}

func TestTableICmp(t *testing.T) {
	env := newLoweringEnv()
	x := env.value("x", hir.I32, lir.NewInt(lir.I32, 3))
	y := env.value("y", hir.I32, lir.NewInt(lir.I32, 4))
	r := hir.NewValue("r", hir.I1)

	op := hir.NewGeneric("hl.icmp", []*hir.Value{x, y}, r)
	op.SetAttr("predicate", hir.NewInt(int64(hir.IPredULT)))
	require.NoError(t, ConvertOperation(op, env.ctx, env.b))

	cmp := env.ctx.LookupValue(r).(*lir.ICmpInst)
	assert.Equal(t, lir.ICmpULT, cmp.Pred)
}

func TestTableAtomicRMW(t *testing.T) {
	env := newLoweringEnv()
	ptr := env.value("p", hir.NewPointer(hir.I64),
		&lir.Param{Name: "p", Typ: lir.NewPointer(lir.I64)})
	val := env.value("v", hir.I64, lir.NewInt(lir.I64, 1))
	r := hir.NewValue("r", hir.I64)

	op := hir.NewGeneric("hl.atomicrmw", []*hir.Value{ptr, val}, r)
	op.SetAttr("bin_op", hir.NewInt(int64(hir.AtomicNand)))
	op.SetAttr("ordering", hir.NewInt(int64(hir.OrderingAcqRel)))
	require.NoError(t, ConvertOperation(op, env.ctx, env.b))

	rmw := env.ctx.LookupValue(r).(*lir.AtomicRMWInst)
	assert.Equal(t, lir.AtomicNand, rmw.Op)
	assert.Equal(t, lir.OrderingAcqRel, rmw.Ordering)
}

func TestTableConst(t *testing.T) {
	env := newLoweringEnv()

	ri := hir.NewValue("ri", hir.I32)
	op := hir.NewGeneric("hl.const", nil, ri)
	op.SetAttr("value", hir.NewInt(42))
	require.NoError(t, ConvertOperation(op, env.ctx, env.b))
	ic := env.ctx.LookupValue(ri).(*lir.IntConst)
	assert.Equal(t, int64(42), ic.V)

	rf := hir.NewValue("rf", hir.Double)
	op = hir.NewGeneric("hl.const", nil, rf)
	op.SetAttr("value", hir.NewFloatAttr(2.5))
	require.NoError(t, ConvertOperation(op, env.ctx, env.b))
	fc := env.ctx.LookupValue(rf).(*lir.FloatConst)
	assert.Equal(t, 2.5, fc.V)

	rp := hir.NewValue("rp", hir.NewPointer(hir.I8))
	op = hir.NewGeneric("hl.const", nil, rp)
	require.NoError(t, ConvertOperation(op, env.ctx, env.b))
	_, ok := env.ctx.LookupValue(rp).(*lir.Null)
	assert.True(t, ok, "pointer constant should lower to null")

	// Constants emit no instructions.
	assert.Empty(t, env.b.Block().Insts)
}

func TestFastMathScoped(t *testing.T) {
	env := newLoweringEnv()
	x := env.value("x", hir.Double, lir.NewFloat(lir.Double, 1))
	y := env.value("y", hir.Double, lir.NewFloat(lir.Double, 2))
	r := hir.NewValue("r", hir.Double)

	op := hir.NewGeneric("hl.fadd", []*hir.Value{x, y}, r)
	op.SetAttr("fastmath", hir.NewInt(int64(hir.FMNNaN|hir.FMContract)))
	require.NoError(t, ConvertOperation(op, env.ctx, env.b))

	bin := env.ctx.LookupValue(r).(*lir.BinInst)
	assert.Equal(t, lir.FMFNNaN|lir.FMFContract, bin.FMF)
	assert.Zero(t, env.b.FastMathFlags(), "builder flags must be restored after the op")
}

func TestFastMathScopedOnFailure(t *testing.T) {
	env := newLoweringEnv()
	op := hir.NewGeneric("hl.bogus", nil, nil)
	op.SetAttr("fastmath", hir.NewInt(int64(hir.FMReassoc)))
	require.Error(t, ConvertOperation(op, env.ctx, env.b))
	assert.Zero(t, env.b.FastMathFlags(), "builder flags must be restored on error paths too")
}

func TestUnrecognizedOperation(t *testing.T) {
	env := newLoweringEnv()
	err := ConvertOperation(hir.NewGeneric("hl.bogus", nil, nil), env.ctx, env.b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported operation")
}

func TestContextWriteOnce(t *testing.T) {
	env := newLoweringEnv()
	v := hir.NewValue("v", hir.I32)
	env.ctx.MapValue(v, lir.NewInt(lir.I32, 1))
	assert.Panics(t, func() { env.ctx.MapValue(v, lir.NewInt(lir.I32, 2)) })
	assert.Panics(t, func() { env.ctx.LookupValue(hir.NewValue("w", hir.I32)) })
}
