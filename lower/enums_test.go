package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glacier-ir/glacier/hir"
	"github.com/glacier-ir/glacier/lir"
)

func TestCmpPredTotal(t *testing.T) {
	want := map[hir.IPred]string{
		hir.IPredEQ: "eq", hir.IPredNE: "ne",
		hir.IPredSLT: "slt", hir.IPredSLE: "sle",
		hir.IPredSGT: "sgt", hir.IPredSGE: "sge",
		hir.IPredULT: "ult", hir.IPredULE: "ule",
		hir.IPredUGT: "ugt", hir.IPredUGE: "uge",
	}
	assert.Len(t, want, 10)
	for p, name := range want {
		assert.Equal(t, name, cmpPred(p).String())
	}
	assert.Panics(t, func() { cmpPred(hir.IPred(99)) })
}

func TestFcmpPredTotal(t *testing.T) {
	want := map[hir.FPred]string{
		hir.FPredFalse: "false", hir.FPredTrue: "true",
		hir.FPredOEQ: "oeq", hir.FPredOGT: "ogt", hir.FPredOGE: "oge",
		hir.FPredOLT: "olt", hir.FPredOLE: "ole", hir.FPredONE: "one",
		hir.FPredORD: "ord",
		hir.FPredUEQ: "ueq", hir.FPredUGT: "ugt", hir.FPredUGE: "uge",
		hir.FPredULT: "ult", hir.FPredULE: "ule", hir.FPredUNE: "une",
		hir.FPredUNO: "uno",
	}
	assert.Len(t, want, 16)
	for p, name := range want {
		assert.Equal(t, name, fcmpPred(p).String())
	}
	assert.Panics(t, func() { fcmpPred(hir.FPred(99)) })
}

func TestAtomicOpTotal(t *testing.T) {
	want := map[hir.AtomicOp]string{
		hir.AtomicXchg: "xchg", hir.AtomicAdd: "add", hir.AtomicSub: "sub",
		hir.AtomicAnd: "and", hir.AtomicNand: "nand", hir.AtomicOr: "or",
		hir.AtomicXor: "xor", hir.AtomicMax: "max", hir.AtomicMin: "min",
		hir.AtomicUMax: "umax", hir.AtomicUMin: "umin",
		hir.AtomicFAdd: "fadd", hir.AtomicFSub: "fsub",
	}
	assert.Len(t, want, 13)
	for op, name := range want {
		assert.Equal(t, name, atomicOp(op).String())
	}
	assert.Panics(t, func() { atomicOp(hir.AtomicOp(99)) })
}

func TestAtomicOrderingTotal(t *testing.T) {
	want := map[hir.Ordering]string{
		hir.OrderingNotAtomic: "not_atomic", hir.OrderingUnordered: "unordered",
		hir.OrderingMonotonic: "monotonic", hir.OrderingAcquire: "acquire",
		hir.OrderingRelease: "release", hir.OrderingAcqRel: "acq_rel",
		hir.OrderingSeqCst: "seq_cst",
	}
	assert.Len(t, want, 7)
	for o, name := range want {
		assert.Equal(t, name, atomicOrdering(o).String())
	}
	assert.Panics(t, func() { atomicOrdering(hir.Ordering(99)) })
}

// Every subset of the seven flags must translate to exactly the matching
// subset, no more, no less.
func TestFastMathSubsets(t *testing.T) {
	pairs := []struct {
		from hir.FastMathFlags
		to   lir.FastMathFlags
	}{
		{hir.FMNNaN, lir.FMFNNaN},
		{hir.FMNInf, lir.FMFNInf},
		{hir.FMNSZ, lir.FMFNSZ},
		{hir.FMARcp, lir.FMFARcp},
		{hir.FMContract, lir.FMFContract},
		{hir.FMAFn, lir.FMFAFn},
		{hir.FMReassoc, lir.FMFReassoc},
	}
	for mask := 0; mask < 1<<len(pairs); mask++ {
		var in hir.FastMathFlags
		var want lir.FastMathFlags
		for i, p := range pairs {
			if mask&(1<<i) != 0 {
				in |= p.from
				want |= p.to
			}
		}
		assert.Equal(t, want, fastMath(in), "subset %07b", mask)
	}
}

func TestAsmDialect(t *testing.T) {
	assert.Equal(t, lir.DialectATT, asmDialect(hir.DialectATT))
	assert.Equal(t, lir.DialectIntel, asmDialect(hir.DialectIntel))
}
