package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glacier-ir/glacier/hir"
	"github.com/glacier-ir/glacier/lir"
)

// loweringEnv is a minimal translation setup: one module, one function with
// an entry block, and the builder positioned there.
type loweringEnv struct {
	m   *lir.Module
	ctx *Context
	b   *lir.Builder
	f   *lir.Func
}

func newLoweringEnv() *loweringEnv {
	m := lir.NewModule()
	f := m.NewFunc("test", lir.NewFunc(lir.Void))
	b := lir.NewBuilder()
	b.SetInsertBlock(f.NewBlock("entry"))
	return &loweringEnv{m: m, ctx: NewContext(m), b: b, f: f}
}

// block creates an hir block mapped to a fresh lir block.
func (e *loweringEnv) block(name string) (*hir.Block, *lir.Block) {
	hb := hir.NewBlock(name)
	lb := e.f.NewBlock(name)
	e.ctx.MapBlock(hb, lb)
	return hb, lb
}

// value creates an hir value pre-mapped to lv.
func (e *loweringEnv) value(name string, typ hir.Type, lv lir.Value) *hir.Value {
	v := hir.NewValue(name, typ)
	e.ctx.MapValue(v, lv)
	return v
}

func TestCallResultArity(t *testing.T) {
	env := newLoweringEnv()
	env.m.NewFunc("vfn", lir.NewFunc(lir.Void))
	env.m.NewFunc("ifn", lir.NewFunc(lir.I32))

	// Void callee, zero results: fine.
	require.NoError(t, ConvertOperation(hir.NewCall("vfn", nil, nil), env.ctx, env.b))

	// Void callee, one result: structural error.
	r := hir.NewValue("r", hir.I32)
	require.Error(t, ConvertOperation(hir.NewCall("vfn", nil, r), env.ctx, env.b))

	// Non-void callee, zero results: structural error.
	require.Error(t, ConvertOperation(hir.NewCall("ifn", nil, nil), env.ctx, env.b))

	// Non-void callee, one result: maps the call.
	r2 := hir.NewValue("r2", hir.I32)
	require.NoError(t, ConvertOperation(hir.NewCall("ifn", nil, r2), env.ctx, env.b))
	_, ok := env.ctx.LookupValue(r2).(*lir.CallInst)
	assert.True(t, ok, "result not mapped to the call instruction")

	// Unknown callee is reportable, not a panic.
	require.Error(t, ConvertOperation(hir.NewCall("missing", nil, nil), env.ctx, env.b))
}

func TestIndirectCall(t *testing.T) {
	env := newLoweringEnv()
	sig := lir.NewFunc(lir.I32, lir.I32)
	fp := &lir.Param{Name: "fp", Typ: lir.NewPointer(sig)}
	hfp := env.value("fp", hir.NewPointer(hir.NewFunc(hir.I32, hir.I32)), fp)
	arg := env.value("a", hir.I32, lir.NewInt(lir.I32, 7))
	r := hir.NewValue("r", hir.I32)

	op := hir.NewIndirectCall(hfp, []*hir.Value{arg}, r)
	require.NoError(t, ConvertOperation(op, env.ctx, env.b))

	call := env.ctx.LookupValue(r).(*lir.CallInst)
	assert.Same(t, fp, call.Callee)
	assert.True(t, call.Sig.Equal(sig))
	require.Len(t, call.Args, 1)
}

func TestIndirectCallBadCallee(t *testing.T) {
	env := newLoweringEnv()
	notAPointer := env.value("x", hir.I32, lir.NewInt(lir.I32, 0))
	op := hir.NewIndirectCall(notAPointer, nil, nil)
	require.Error(t, ConvertOperation(op, env.ctx, env.b))
}

func TestInvoke(t *testing.T) {
	env := newLoweringEnv()
	env.m.NewFunc("mayfail", lir.NewFunc(lir.Void))
	hn, ln := env.block("normal")
	hu, lu := env.block("unwind")

	op := hir.NewInvoke("mayfail", nil, nil, hn, hu)
	require.NoError(t, ConvertOperation(op, env.ctx, env.b))

	inv, ok := env.b.Block().Term.(*lir.InvokeInst)
	require.True(t, ok, "terminator is not an invoke")
	assert.Same(t, ln, inv.Normal)
	assert.Same(t, lu, inv.Unwind)
	assert.Same(t, inv, env.ctx.Branch(op), "invoke not recorded as the op's branch")
}

func TestInlineAsm(t *testing.T) {
	env := newLoweringEnv()
	buf := env.value("buf", hir.NewPointer(hir.I8),
		&lir.Param{Name: "buf", Typ: lir.NewPointer(lir.I8)})
	r := hir.NewValue("r", hir.I32)

	op := hir.NewInlineAsm("lock xadd", "=r,r", true, false, []*hir.Value{buf}, r)
	op.SetDialect(hir.DialectIntel)
	op.SetOperandAttrs([]hir.Attr{
		hir.NewDict().Set("elementtype", hir.NewTypeAttr(hir.I8)),
	})
	require.NoError(t, ConvertOperation(op, env.ctx, env.b))

	call := env.ctx.LookupValue(r).(*lir.CallInst)
	asm := call.Callee.(*lir.InlineAsm)
	assert.Equal(t, "lock xadd", asm.Asm)
	assert.Equal(t, "=r,r", asm.Constraints)
	assert.True(t, asm.SideEffects)
	assert.False(t, asm.AlignStack)
	assert.Equal(t, lir.DialectIntel, asm.Dialect)

	// The call result shifts operand attributes by one slot.
	require.Len(t, call.ParamAttrs, 1)
	assert.Equal(t, 1, call.ParamAttrs[0].Index)
	assert.True(t, call.ParamAttrs[0].Elem.Equal(lir.I8))
}

func TestInlineAsmNoResultNoShift(t *testing.T) {
	env := newLoweringEnv()
	buf := env.value("buf", hir.NewPointer(hir.I8),
		&lir.Param{Name: "buf", Typ: lir.NewPointer(lir.I8)})

	op := hir.NewInlineAsm("clflush", "r", true, false, []*hir.Value{buf}, nil)
	op.SetOperandAttrs([]hir.Attr{
		hir.NewDict().Set("elementtype", hir.NewTypeAttr(hir.I8)),
	})
	require.NoError(t, ConvertOperation(op, env.ctx, env.b))

	call := env.b.Block().Insts[len(env.b.Block().Insts)-1].(*lir.CallInst)
	require.Len(t, call.ParamAttrs, 1)
	assert.Equal(t, 0, call.ParamAttrs[0].Index)
}

func TestCondBrWeights(t *testing.T) {
	env := newLoweringEnv()
	cond := env.value("c", hir.I1, lir.Bool(true))
	hThen, lThen := env.block("then")
	hElse, lElse := env.block("else")

	op := hir.NewCondBr(cond, hThen, nil, hElse, nil)
	op.SetBranchWeights(7, 3)
	require.NoError(t, ConvertOperation(op, env.ctx, env.b))

	br := env.b.Block().Term.(*lir.CondBrInst)
	assert.Same(t, lThen, br.Then)
	assert.Same(t, lElse, br.Else)

	prof := br.Attachment("prof").(*lir.MDTuple)
	require.Len(t, prof.Fields, 3)
	assert.Equal(t, "branch_weights", prof.Fields[0].(*lir.MDString).S)
	assert.Equal(t, int64(7), prof.Fields[1].(*lir.MDInt).V)
	assert.Equal(t, int64(3), prof.Fields[2].(*lir.MDInt).V)
}

func TestCondBrWeightTruncation(t *testing.T) {
	env := newLoweringEnv()
	cond := env.value("c", hir.I1, lir.Bool(false))
	hThen, _ := env.block("then")
	hElse, _ := env.block("else")

	op := hir.NewCondBr(cond, hThen, nil, hElse, nil)
	op.SetBranchWeights(-1, 1<<40)
	require.NoError(t, ConvertOperation(op, env.ctx, env.b))

	prof := env.b.Block().Term.(*lir.CondBrInst).Attachment("prof").(*lir.MDTuple)
	assert.Equal(t, int64(4294967295), prof.Fields[1].(*lir.MDInt).V)
	assert.Equal(t, int64(0), prof.Fields[2].(*lir.MDInt).V)
}

func TestSwitchCaseOrder(t *testing.T) {
	env := newLoweringEnv()
	v := env.value("v", hir.I32, lir.NewInt(lir.I32, 0))
	h0, l0 := env.block("b0")
	h1, l1 := env.block("b1")
	h2, l2 := env.block("b2")
	h3, l3 := env.block("b3")

	op := hir.NewSwitch(v, h0, nil, []int64{5, 1, 9}, []*hir.Block{h1, h2, h3}, nil)
	require.NoError(t, ConvertOperation(op, env.ctx, env.b))

	sw := env.b.Block().Term.(*lir.SwitchInst)
	assert.Same(t, l0, sw.Default)
	require.Len(t, sw.Cases, 3)
	assert.Equal(t, int64(5), sw.Cases[0].V.V)
	assert.Same(t, l1, sw.Cases[0].Target)
	assert.Equal(t, int64(1), sw.Cases[1].V.V)
	assert.Same(t, l2, sw.Cases[1].Target)
	assert.Equal(t, int64(9), sw.Cases[2].V.V)
	assert.Same(t, l3, sw.Cases[2].Target)
}

func TestSwitchWeightsSaturate(t *testing.T) {
	env := newLoweringEnv()
	v := env.value("v", hir.I32, lir.NewInt(lir.I32, 0))
	h0, _ := env.block("b0")
	h1, _ := env.block("b1")

	op := hir.NewSwitch(v, h0, nil, []int64{1}, []*hir.Block{h1}, nil)
	op.SetBranchWeights([]int64{1 << 40, -5})
	require.NoError(t, ConvertOperation(op, env.ctx, env.b))

	prof := env.b.Block().Term.(*lir.SwitchInst).Attachment("prof").(*lir.MDTuple)
	assert.Equal(t, int64(4294967295), prof.Fields[1].(*lir.MDInt).V)
	assert.Equal(t, int64(0), prof.Fields[2].(*lir.MDInt).V)
}

func TestLandingPadSkipsNonConstants(t *testing.T) {
	env := newLoweringEnv()
	i8p := hir.NewPointer(hir.I8)
	constA := env.value("ca", i8p, lir.NewNull(lir.NewPointer(lir.I8)))
	nonConst := env.value("nc", hir.I32, &lir.Param{Name: "p", Typ: lir.I32})
	constB := env.value("cb", i8p, lir.NewArray(lir.NewPointer(lir.I8)))
	res := hir.NewValue("pad", hir.NewStruct(i8p, hir.I32))

	op := hir.NewLandingPad(res, []*hir.Value{constA, nonConst, constB}, true)
	require.NoError(t, ConvertOperation(op, env.ctx, env.b))

	pad := env.ctx.LookupValue(res).(*lir.LandingPadInst)
	assert.True(t, pad.Cleanup)
	require.Len(t, pad.Clauses, 2, "non-constant operand must be skipped")
	assert.Equal(t, lir.ClauseCatch, pad.Clauses[0].Kind)
	assert.Equal(t, lir.ClauseFilter, pad.Clauses[1].Kind)
}

func TestAddressOf(t *testing.T) {
	env := newLoweringEnv()
	g := env.m.NewGlobal("counter", lir.I32)
	fn := env.m.NewFunc("helper", lir.NewFunc(lir.Void))

	r1 := hir.NewValue("p1", hir.NewPointer(hir.I32))
	require.NoError(t, ConvertOperation(hir.NewAddressOf("counter", r1), env.ctx, env.b))
	assert.Same(t, g, env.ctx.LookupValue(r1))

	r2 := hir.NewValue("p2", hir.NewPointer(hir.NewFunc(hir.Void)))
	require.NoError(t, ConvertOperation(hir.NewAddressOf("helper", r2), env.ctx, env.b))
	assert.Same(t, fn, env.ctx.LookupValue(r2))

	// No instruction is emitted for either.
	assert.Empty(t, env.b.Block().Insts)

	r3 := hir.NewValue("p3", hir.NewPointer(hir.I32))
	assert.Panics(t, func() {
		_ = ConvertOperation(hir.NewAddressOf("nope", r3), env.ctx, env.b)
	})
}
