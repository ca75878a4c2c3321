package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glacier-ir/glacier/hir"
	"github.com/glacier-ir/glacier/lir"
)

func lowerBr(t *testing.T, env *loweringEnv, setup func(*hir.Br)) *lir.BrInst {
	t.Helper()
	hb, lb := env.block("target" + t.Name())
	env.b.SetInsertBlock(lb)
	op := hir.NewBr(hb, nil)
	setup(op)
	require.NoError(t, ConvertOperation(op, env.ctx, env.b))
	return lb.Term.(*lir.BrInst)
}

func TestLoopMetadataIdentityCaching(t *testing.T) {
	env := newLoweringEnv()
	shared := hir.NewDict().Set("options",
		hir.NewLoopOptions(hir.LoopOption{Kind: hir.LoopInterleaveCount, V: 2}))

	br1 := lowerBr(t, env, func(op *hir.Br) { op.SetAttr("loop", shared) })
	h2, l2 := env.block("second")
	env.b.SetInsertBlock(l2)
	op2 := hir.NewBr(h2, nil)
	op2.SetAttr("loop", shared)
	require.NoError(t, ConvertOperation(op2, env.ctx, env.b))
	br2 := l2.Term.(*lir.BrInst)

	n1 := br1.Attachment("loop")
	n2 := br2.Attachment("loop")
	require.NotNil(t, n1)
	assert.Same(t, n1, n2, "same attribute object must yield the identical node")
}

func TestLoopMetadataDistinctAttrs(t *testing.T) {
	env := newLoweringEnv()
	mk := func() *hir.DictAttr {
		return hir.NewDict().Set("options",
			hir.NewLoopOptions(hir.LoopOption{Kind: hir.LoopDisableUnroll, V: 1}))
	}
	a1, a2 := mk(), mk()

	h1, l1 := env.block("one")
	env.b.SetInsertBlock(l1)
	op1 := hir.NewBr(h1, nil)
	op1.SetAttr("loop", a1)
	require.NoError(t, ConvertOperation(op1, env.ctx, env.b))

	h2, l2 := env.block("two")
	env.b.SetInsertBlock(l2)
	op2 := hir.NewBr(h2, nil)
	op2.SetAttr("loop", a2)
	require.NoError(t, ConvertOperation(op2, env.ctx, env.b))

	n1 := l1.Term.(*lir.BrInst).Attachment("loop")
	n2 := l2.Term.(*lir.BrInst).Attachment("loop")
	assert.NotSame(t, n1, n2, "structurally equal but distinct attributes share no node")
}

func TestLoopMetadataLegacyAttrs(t *testing.T) {
	env := newLoweringEnv()
	br := lowerBr(t, env, func(op *hir.Br) {
		op.SetAttr("loop.name", hir.NewString("outer"))
		op.SetAttr("loop.vectorize.width", hir.NewInt(4))
		op.SetAttr("loop.unroll.enable", hir.NewUnit())
		op.SetAttr("loop.pipeline.enable", hir.NewInts(2, 1, 0))
	})

	node := br.Attachment("loop").(*lir.MDTuple)
	assert.True(t, node.Distinct)
	require.Len(t, node.Fields, 5)
	assert.Same(t, node, node.Fields[0], "first field must be the self reference")

	name := func(i int) string {
		return node.Fields[i].(*lir.MDTuple).Fields[0].(*lir.MDString).S
	}
	assert.Equal(t, "loop.name", name(1))
	assert.Equal(t, "loop.vectorize.width", name(2))
	assert.Equal(t, "loop.unroll.enable", name(3))
	assert.Equal(t, "loop.pipeline.enable", name(4))

	pipeline := node.Fields[4].(*lir.MDTuple)
	require.Len(t, pipeline.Fields, 4)
	assert.Equal(t, int64(2), pipeline.Fields[1].(*lir.MDInt).V)
	assert.True(t, pipeline.Fields[1].(*lir.MDInt).Typ.Equal(lir.I32))
	assert.True(t, pipeline.Fields[2].(*lir.MDInt).Typ.Equal(lir.I1))
	assert.True(t, pipeline.Fields[3].(*lir.MDInt).Typ.Equal(lir.I8))
}

func TestLoopMetadataShortTupleAttr(t *testing.T) {
	env := newLoweringEnv()
	h, l := env.block("short")
	env.b.SetInsertBlock(l)
	op := hir.NewBr(h, nil)
	op.SetAttr("loop.latency", hir.NewInts(3))
	assert.Panics(t, func() { _ = ConvertOperation(op, env.ctx, env.b) })
}

func TestLoopOptionNames(t *testing.T) {
	want := map[hir.LoopOptionKind]string{
		hir.LoopDisableLICM:     "licm.disable",
		hir.LoopDisableUnroll:   "loop.unroll.disable",
		hir.LoopInterleaveCount: "loop.interleave.count",
		hir.LoopDisablePipeline: "loop.pipeline.disable",
		hir.LoopPipelineII:      "loop.pipeline.initiationinterval",
	}
	for kind, name := range want {
		md := loopOptionMetadata(hir.LoopOption{Kind: kind, V: 1})
		require.Len(t, md.Fields, 2)
		assert.Equal(t, name, md.Fields[0].(*lir.MDString).S)
	}
}

func TestNonLoopBranchNoMetadata(t *testing.T) {
	env := newLoweringEnv()
	br := lowerBr(t, env, func(op *hir.Br) {})
	assert.Nil(t, br.Attachment("loop"))
}

func TestParallelAccessGroupsShared(t *testing.T) {
	env := newLoweringEnv()
	mk := func() *hir.DictAttr {
		return hir.NewDict().Set("parallel_accesses",
			hir.NewArrayAttr(hir.NewSymbolRef("g1"), hir.NewSymbolRef("g2")))
	}

	h1, l1 := env.block("one")
	env.b.SetInsertBlock(l1)
	op1 := hir.NewBr(h1, nil)
	op1.SetAttr("loop", mk())
	require.NoError(t, ConvertOperation(op1, env.ctx, env.b))

	h2, l2 := env.block("two")
	env.b.SetInsertBlock(l2)
	op2 := hir.NewBr(h2, nil)
	op2.SetAttr("loop", mk())
	require.NoError(t, ConvertOperation(op2, env.ctx, env.b))

	access := func(lb *lir.Block) *lir.MDTuple {
		node := lb.Term.(*lir.BrInst).Attachment("loop").(*lir.MDTuple)
		return node.Fields[1].(*lir.MDTuple)
	}
	a1, a2 := access(l1), access(l2)
	assert.Equal(t, "loop.parallel_accesses", a1.Fields[0].(*lir.MDString).S)
	require.Len(t, a1.Fields, 3)
	// Both loops name the same groups, so the group nodes are shared.
	assert.Same(t, a1.Fields[1], a2.Fields[1])
	assert.Same(t, a1.Fields[2], a2.Fields[2])
}
