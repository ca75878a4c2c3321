package lower

import (
	"fmt"

	"github.com/glacier-ir/glacier/hir"
	"github.com/glacier-ir/glacier/lir"
)

// The translators below are total on their domains. Inputs are validated
// upstream, so an out-of-range variant is an internal-consistency
// violation, not a reportable error.

func cmpPred(p hir.IPred) lir.IPred {
	switch p {
	case hir.IPredEQ:
		return lir.ICmpEQ
	case hir.IPredNE:
		return lir.ICmpNE
	case hir.IPredSLT:
		return lir.ICmpSLT
	case hir.IPredSLE:
		return lir.ICmpSLE
	case hir.IPredSGT:
		return lir.ICmpSGT
	case hir.IPredSGE:
		return lir.ICmpSGE
	case hir.IPredULT:
		return lir.ICmpULT
	case hir.IPredULE:
		return lir.ICmpULE
	case hir.IPredUGT:
		return lir.ICmpUGT
	case hir.IPredUGE:
		return lir.ICmpUGE
	}
	panic(fmt.Sprintf("unknown integer predicate %d", p))
}

func fcmpPred(p hir.FPred) lir.FPred {
	switch p {
	case hir.FPredFalse:
		return lir.FCmpFalse
	case hir.FPredOEQ:
		return lir.FCmpOEQ
	case hir.FPredOGT:
		return lir.FCmpOGT
	case hir.FPredOGE:
		return lir.FCmpOGE
	case hir.FPredOLT:
		return lir.FCmpOLT
	case hir.FPredOLE:
		return lir.FCmpOLE
	case hir.FPredONE:
		return lir.FCmpONE
	case hir.FPredORD:
		return lir.FCmpORD
	case hir.FPredUEQ:
		return lir.FCmpUEQ
	case hir.FPredUGT:
		return lir.FCmpUGT
	case hir.FPredUGE:
		return lir.FCmpUGE
	case hir.FPredULT:
		return lir.FCmpULT
	case hir.FPredULE:
		return lir.FCmpULE
	case hir.FPredUNE:
		return lir.FCmpUNE
	case hir.FPredUNO:
		return lir.FCmpUNO
	case hir.FPredTrue:
		return lir.FCmpTrue
	}
	panic(fmt.Sprintf("unknown float predicate %d", p))
}

func atomicOp(op hir.AtomicOp) lir.AtomicOp {
	switch op {
	case hir.AtomicXchg:
		return lir.AtomicXchg
	case hir.AtomicAdd:
		return lir.AtomicAdd
	case hir.AtomicSub:
		return lir.AtomicSub
	case hir.AtomicAnd:
		return lir.AtomicAnd
	case hir.AtomicNand:
		return lir.AtomicNand
	case hir.AtomicOr:
		return lir.AtomicOr
	case hir.AtomicXor:
		return lir.AtomicXor
	case hir.AtomicMax:
		return lir.AtomicMax
	case hir.AtomicMin:
		return lir.AtomicMin
	case hir.AtomicUMax:
		return lir.AtomicUMax
	case hir.AtomicUMin:
		return lir.AtomicUMin
	case hir.AtomicFAdd:
		return lir.AtomicFAdd
	case hir.AtomicFSub:
		return lir.AtomicFSub
	}
	panic(fmt.Sprintf("unknown atomic operator %d", op))
}

func atomicOrdering(o hir.Ordering) lir.Ordering {
	switch o {
	case hir.OrderingNotAtomic:
		return lir.OrderingNotAtomic
	case hir.OrderingUnordered:
		return lir.OrderingUnordered
	case hir.OrderingMonotonic:
		return lir.OrderingMonotonic
	case hir.OrderingAcquire:
		return lir.OrderingAcquire
	case hir.OrderingRelease:
		return lir.OrderingRelease
	case hir.OrderingAcqRel:
		return lir.OrderingAcqRel
	case hir.OrderingSeqCst:
		return lir.OrderingSeqCst
	}
	panic(fmt.Sprintf("unknown atomic ordering %d", o))
}

var fastMathPairs = []struct {
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

// fastMath copies each flag independently.
func fastMath(f hir.FastMathFlags) lir.FastMathFlags {
	var out lir.FastMathFlags
	for _, p := range fastMathPairs {
		if f&p.from != 0 {
			out |= p.to
		}
	}
	return out
}

func asmDialect(d hir.AsmDialect) lir.AsmDialect {
	switch d {
	case hir.DialectATT:
		return lir.DialectATT
	case hir.DialectIntel:
		return lir.DialectIntel
	}
	panic(fmt.Sprintf("unknown asm dialect %d", d))
}
