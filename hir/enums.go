package hir

import (
	"fmt"
	"strings"
)

// IPred is an integer comparison predicate.
type IPred uint8

const (
	IPredEQ IPred = iota
	IPredNE
	IPredSLT
	IPredSLE
	IPredSGT
	IPredSGE
	IPredULT
	IPredULE
	IPredUGT
	IPredUGE
)

var ipredNames = map[string]IPred{
	"eq": IPredEQ, "ne": IPredNE,
	"slt": IPredSLT, "sle": IPredSLE, "sgt": IPredSGT, "sge": IPredSGE,
	"ult": IPredULT, "ule": IPredULE, "ugt": IPredUGT, "uge": IPredUGE,
}

// ParseIPred parses a predicate name like "slt".
func ParseIPred(s string) (IPred, error) {
	p, ok := ipredNames[s]
	if !ok {
		return 0, fmt.Errorf("unknown integer predicate %q", s)
	}
	return p, nil
}

// FPred is a floating-point comparison predicate.
type FPred uint8

const (
	FPredFalse FPred = iota
	FPredOEQ
	FPredOGT
	FPredOGE
	FPredOLT
	FPredOLE
	FPredONE
	FPredORD
	FPredUEQ
	FPredUGT
	FPredUGE
	FPredULT
	FPredULE
	FPredUNE
	FPredUNO
	FPredTrue
)

var fpredNames = map[string]FPred{
	"false": FPredFalse, "true": FPredTrue,
	"oeq": FPredOEQ, "ogt": FPredOGT, "oge": FPredOGE, "olt": FPredOLT,
	"ole": FPredOLE, "one": FPredONE, "ord": FPredORD,
	"ueq": FPredUEQ, "ugt": FPredUGT, "uge": FPredUGE, "ult": FPredULT,
	"ule": FPredULE, "une": FPredUNE, "uno": FPredUNO,
}

// ParseFPred parses a predicate name like "oeq".
func ParseFPred(s string) (FPred, error) {
	p, ok := fpredNames[s]
	if !ok {
		return 0, fmt.Errorf("unknown float predicate %q", s)
	}
	return p, nil
}

// AtomicOp is an atomic read-modify-write operator.
type AtomicOp uint8

const (
	AtomicXchg AtomicOp = iota
	AtomicAdd
	AtomicSub
	AtomicAnd
	AtomicNand
	AtomicOr
	AtomicXor
	AtomicMax
	AtomicMin
	AtomicUMax
	AtomicUMin
	AtomicFAdd
	AtomicFSub
)

var atomicOpNames = map[string]AtomicOp{
	"xchg": AtomicXchg, "add": AtomicAdd, "sub": AtomicSub,
	"and": AtomicAnd, "nand": AtomicNand, "or": AtomicOr, "xor": AtomicXor,
	"max": AtomicMax, "min": AtomicMin, "umax": AtomicUMax, "umin": AtomicUMin,
	"fadd": AtomicFAdd, "fsub": AtomicFSub,
}

// ParseAtomicOp parses an operator name like "xchg".
func ParseAtomicOp(s string) (AtomicOp, error) {
	op, ok := atomicOpNames[s]
	if !ok {
		return 0, fmt.Errorf("unknown atomic operator %q", s)
	}
	return op, nil
}

// Ordering is an atomic memory ordering level.
type Ordering uint8

const (
	OrderingNotAtomic Ordering = iota
	OrderingUnordered
	OrderingMonotonic
	OrderingAcquire
	OrderingRelease
	OrderingAcqRel
	OrderingSeqCst
)

var orderingNames = map[string]Ordering{
	"not_atomic": OrderingNotAtomic, "unordered": OrderingUnordered,
	"monotonic": OrderingMonotonic, "acquire": OrderingAcquire,
	"release": OrderingRelease, "acq_rel": OrderingAcqRel,
	"seq_cst": OrderingSeqCst,
}

// ParseOrdering parses an ordering name like "seq_cst".
func ParseOrdering(s string) (Ordering, error) {
	o, ok := orderingNames[s]
	if !ok {
		return 0, fmt.Errorf("unknown atomic ordering %q", s)
	}
	return o, nil
}

// FastMathFlags is a bit set of fast-math relaxations.
type FastMathFlags uint8

const (
	FMNNaN     FastMathFlags = 1 << iota // no NaNs
	FMNInf                               // no infinities
	FMNSZ                                // no signed zeros
	FMARcp                               // allow reciprocal
	FMContract                           // allow contraction
	FMAFn                                // approximate functions
	FMReassoc                            // allow reassociation
)

var fastMathNames = map[string]FastMathFlags{
	"nnan": FMNNaN, "ninf": FMNInf, "nsz": FMNSZ, "arcp": FMARcp,
	"contract": FMContract, "afn": FMAFn, "reassoc": FMReassoc,
}

// ParseFastMath parses a space-separated flag list like "nnan contract".
func ParseFastMath(s string) (FastMathFlags, error) {
	var f FastMathFlags
	for _, name := range strings.Fields(s) {
		flag, ok := fastMathNames[name]
		if !ok {
			return 0, fmt.Errorf("unknown fast-math flag %q", name)
		}
		f |= flag
	}
	return f, nil
}

// AsmDialect selects the inline-assembly syntax flavour.
type AsmDialect uint8

const (
	DialectATT AsmDialect = iota
	DialectIntel
)
