package lir

import "strings"

// IPred is an integer comparison predicate.
type IPred uint8

const (
	ICmpEQ IPred = iota
	ICmpNE
	ICmpSLT
	ICmpSLE
	ICmpSGT
	ICmpSGE
	ICmpULT
	ICmpULE
	ICmpUGT
	ICmpUGE
)

var ipredNames = [...]string{
	ICmpEQ:  "eq",
	ICmpNE:  "ne",
	ICmpSLT: "slt",
	ICmpSLE: "sle",
	ICmpSGT: "sgt",
	ICmpSGE: "sge",
	ICmpULT: "ult",
	ICmpULE: "ule",
	ICmpUGT: "ugt",
	ICmpUGE: "uge",
}

func (p IPred) String() string { return ipredNames[p] }

// FPred is a floating-point comparison predicate.
type FPred uint8

const (
	FCmpFalse FPred = iota
	FCmpOEQ
	FCmpOGT
	FCmpOGE
	FCmpOLT
	FCmpOLE
	FCmpONE
	FCmpORD
	FCmpUEQ
	FCmpUGT
	FCmpUGE
	FCmpULT
	FCmpULE
	FCmpUNE
	FCmpUNO
	FCmpTrue
)

var fpredNames = [...]string{
	FCmpFalse: "false",
	FCmpOEQ:   "oeq",
	FCmpOGT:   "ogt",
	FCmpOGE:   "oge",
	FCmpOLT:   "olt",
	FCmpOLE:   "ole",
	FCmpONE:   "one",
	FCmpORD:   "ord",
	FCmpUEQ:   "ueq",
	FCmpUGT:   "ugt",
	FCmpUGE:   "uge",
	FCmpULT:   "ult",
	FCmpULE:   "ule",
	FCmpUNE:   "une",
	FCmpUNO:   "uno",
	FCmpTrue:  "true",
}

func (p FPred) String() string { return fpredNames[p] }

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

var atomicOpNames = [...]string{
	AtomicXchg: "xchg",
	AtomicAdd:  "add",
	AtomicSub:  "sub",
	AtomicAnd:  "and",
	AtomicNand: "nand",
	AtomicOr:   "or",
	AtomicXor:  "xor",
	AtomicMax:  "max",
	AtomicMin:  "min",
	AtomicUMax: "umax",
	AtomicUMin: "umin",
	AtomicFAdd: "fadd",
	AtomicFSub: "fsub",
}

func (op AtomicOp) String() string { return atomicOpNames[op] }

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

var orderingNames = [...]string{
	OrderingNotAtomic: "not_atomic",
	OrderingUnordered: "unordered",
	OrderingMonotonic: "monotonic",
	OrderingAcquire:   "acquire",
	OrderingRelease:   "release",
	OrderingAcqRel:    "acq_rel",
	OrderingSeqCst:    "seq_cst",
}

func (o Ordering) String() string { return orderingNames[o] }

// FastMathFlags is a bit set of fast-math relaxations.
type FastMathFlags uint8

const (
	FMFNNaN     FastMathFlags = 1 << iota // no NaNs
	FMFNInf                               // no infinities
	FMFNSZ                                // no signed zeros
	FMFARcp                               // allow reciprocal
	FMFContract                           // allow contraction
	FMFAFn                                // approximate functions
	FMFReassoc                            // allow reassociation
)

var fmfNames = []struct {
	f    FastMathFlags
	name string
}{
	{FMFNNaN, "nnan"},
	{FMFNInf, "ninf"},
	{FMFNSZ, "nsz"},
	{FMFARcp, "arcp"},
	{FMFContract, "contract"},
	{FMFAFn, "afn"},
	{FMFReassoc, "reassoc"},
}

func (f FastMathFlags) String() string {
	var parts []string
	for _, e := range fmfNames {
		if f&e.f != 0 {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, " ")
}

// AsmDialect selects the inline-assembly syntax flavour.
type AsmDialect uint8

const (
	DialectATT AsmDialect = iota
	DialectIntel
)

func (d AsmDialect) String() string {
	if d == DialectIntel {
		return "inteldialect"
	}
	return "att"
}

// ClauseKind distinguishes landing-pad clause kinds.
type ClauseKind uint8

const (
	ClauseCatch ClauseKind = iota
	ClauseFilter
)

func (k ClauseKind) String() string {
	if k == ClauseFilter {
		return "filter"
	}
	return "catch"
}
