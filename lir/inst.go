package lir

// Opcode identifies a structurally regular instruction: binary and unary
// arithmetic and the conversions. Irregular instructions (calls, branches,
// landing pads, ...) have dedicated struct types instead.
type Opcode uint8

const (
	Add Opcode = iota
	Sub
	Mul
	UDiv
	SDiv
	URem
	SRem
	Shl
	LShr
	AShr
	And
	Or
	Xor
	FAdd
	FSub
	FMul
	FDiv
	FRem
	FNeg
	Trunc
	ZExt
	SExt
	FPTrunc
	FPExt
	FPToUI
	FPToSI
	UIToFP
	SIToFP
	PtrToInt
	IntToPtr
	Bitcast
)

var opcodeNames = [...]string{
	Add:      "add",
	Sub:      "sub",
	Mul:      "mul",
	UDiv:     "udiv",
	SDiv:     "sdiv",
	URem:     "urem",
	SRem:     "srem",
	Shl:      "shl",
	LShr:     "lshr",
	AShr:     "ashr",
	And:      "and",
	Or:       "or",
	Xor:      "xor",
	FAdd:     "fadd",
	FSub:     "fsub",
	FMul:     "fmul",
	FDiv:     "fdiv",
	FRem:     "frem",
	FNeg:     "fneg",
	Trunc:    "trunc",
	ZExt:     "zext",
	SExt:     "sext",
	FPTrunc:  "fptrunc",
	FPExt:    "fpext",
	FPToUI:   "fptoui",
	FPToSI:   "fptosi",
	UIToFP:   "uitofp",
	SIToFP:   "sitofp",
	PtrToInt: "ptrtoint",
	IntToPtr: "inttoptr",
	Bitcast:  "bitcast",
}

func (op Opcode) String() string { return opcodeNames[op] }

// Inst is any LIR instruction.
type Inst interface {
	isInst()
}

// attachments carries per-instruction metadata attachments.
type attachments struct {
	MDs []*MDAttachment
}

// Attach adds a metadata attachment under the given kind.
func (a *attachments) Attach(kind string, node MDNode) {
	a.MDs = append(a.MDs, &MDAttachment{Kind: kind, Node: node})
}

func (a *attachments) mdAttachments() []*MDAttachment { return a.MDs }

// Attachment returns the attached node for a kind, or nil.
func (a *attachments) Attachment(kind string) MDNode {
	for _, md := range a.MDs {
		if md.Kind == kind {
			return md.Node
		}
	}
	return nil
}

// BinInst is a two-operand arithmetic or bitwise instruction. The result
// type is the operand type.
type BinInst struct {
	Name string
	Op   Opcode
	X, Y Value
	FMF  FastMathFlags
	attachments
}

func (i *BinInst) isInst()       {}
func (i *BinInst) Type() Type    { return i.X.Type() }
func (i *BinInst) Ident() string { return "%" + i.Name }

// UnaryInst is a one-operand arithmetic instruction (fneg).
type UnaryInst struct {
	Name string
	Op   Opcode
	X    Value
	FMF  FastMathFlags
	attachments
}

func (i *UnaryInst) isInst()       {}
func (i *UnaryInst) Type() Type    { return i.X.Type() }
func (i *UnaryInst) Ident() string { return "%" + i.Name }

// CastInst converts a value to another type.
type CastInst struct {
	Name string
	Op   Opcode
	X    Value
	To   Type
	attachments
}

func (i *CastInst) isInst()       {}
func (i *CastInst) Type() Type    { return i.To }
func (i *CastInst) Ident() string { return "%" + i.Name }

// ICmpInst is an integer comparison producing an i1.
type ICmpInst struct {
	Name string
	Pred IPred
	X, Y Value
	attachments
}

func (i *ICmpInst) isInst()       {}
func (i *ICmpInst) Type() Type    { return I1 }
func (i *ICmpInst) Ident() string { return "%" + i.Name }

// FCmpInst is a floating-point comparison producing an i1.
type FCmpInst struct {
	Name string
	Pred FPred
	X, Y Value
	FMF  FastMathFlags
	attachments
}

func (i *FCmpInst) isInst()       {}
func (i *FCmpInst) Type() Type    { return I1 }
func (i *FCmpInst) Ident() string { return "%" + i.Name }

// AtomicRMWInst atomically applies Op to the value at Ptr and yields the
// old value.
type AtomicRMWInst struct {
	Name     string
	Op       AtomicOp
	Ptr, Val Value
	Ordering Ordering
	attachments
}

func (i *AtomicRMWInst) isInst()       {}
func (i *AtomicRMWInst) Type() Type    { return i.Val.Type() }
func (i *AtomicRMWInst) Ident() string { return "%" + i.Name }

// FenceInst is a memory fence.
type FenceInst struct {
	Ordering Ordering
	attachments
}

func (i *FenceInst) isInst() {}

// LoadInst loads a value of type Elem from Ptr.
type LoadInst struct {
	Name string
	Elem Type
	Ptr  Value
	attachments
}

func (i *LoadInst) isInst()       {}
func (i *LoadInst) Type() Type    { return i.Elem }
func (i *LoadInst) Ident() string { return "%" + i.Name }

// StoreInst stores Val to Ptr.
type StoreInst struct {
	Val, Ptr Value
	attachments
}

func (i *StoreInst) isInst() {}

// ParamAttr annotates one call parameter with an explicit element type.
// Inline-assembly calls use it for pointer operands whose pointee type the
// assembler constraint needs. Index 0 is the return slot; parameters start
// at 1 when the call produces a result.
type ParamAttr struct {
	Index int
	Elem  Type
}

// CallInst calls a function, a function pointer, or an inline-assembly
// value. Sig is the callee's function type; the instruction's type is
// Sig.Ret.
type CallInst struct {
	Name       string
	Sig        *FuncType
	Callee     Value
	Args       []Value
	FMF        FastMathFlags
	ParamAttrs []ParamAttr
	attachments
}

func (i *CallInst) isInst()       {}
func (i *CallInst) Type() Type    { return i.Sig.Ret }
func (i *CallInst) Ident() string { return "%" + i.Name }

// AddElementTypeAttr records an element-type parameter attribute at the
// given call index.
func (i *CallInst) AddElementTypeAttr(index int, elem Type) {
	i.ParamAttrs = append(i.ParamAttrs, ParamAttr{Index: index, Elem: elem})
}

// InvokeInst is a call with explicit normal and unwind successors. It
// terminates its block.
type InvokeInst struct {
	Name   string
	Sig    *FuncType
	Callee Value
	Args   []Value
	Normal *Block
	Unwind *Block
	attachments
}

func (i *InvokeInst) isInst()       {}
func (i *InvokeInst) Type() Type    { return i.Sig.Ret }
func (i *InvokeInst) Ident() string { return "%" + i.Name }

// BrInst is an unconditional branch.
type BrInst struct {
	Target *Block
	attachments
}

func (i *BrInst) isInst() {}

// CondBrInst is a two-way conditional branch. Branch weights, when present,
// are attached as "prof" metadata.
type CondBrInst struct {
	Cond       Value
	Then, Else *Block
	attachments
}

func (i *CondBrInst) isInst() {}

// SwitchCase is one (value, destination) pair of a switch.
type SwitchCase struct {
	V      *IntConst
	Target *Block
}

// SwitchInst is a multi-way branch. Cases keep insertion order.
type SwitchInst struct {
	X       Value
	Default *Block
	Cases   []SwitchCase
	attachments
}

func (i *SwitchInst) isInst() {}

// AddCase appends a case. Cases are not sorted or deduplicated.
func (i *SwitchInst) AddCase(v *IntConst, target *Block) {
	i.Cases = append(i.Cases, SwitchCase{V: v, Target: target})
}

// Clause is a landing-pad catch or filter clause.
type Clause struct {
	Kind ClauseKind
	X    Constant
}

// NewClauseFor builds a clause for the given constant. Array constants
// denote filter clauses; everything else is a catch clause.
func NewClauseFor(x Constant) *Clause {
	if _, ok := x.(*ArrayConst); ok {
		return &Clause{Kind: ClauseFilter, X: x}
	}
	return &Clause{Kind: ClauseCatch, X: x}
}

// LandingPadInst is the entry instruction of an exception-handling block.
type LandingPadInst struct {
	Name    string
	Typ     Type
	Cleanup bool
	Clauses []*Clause
	attachments
}

func (i *LandingPadInst) isInst()       {}
func (i *LandingPadInst) Type() Type    { return i.Typ }
func (i *LandingPadInst) Ident() string { return "%" + i.Name }

// AddClause appends a clause.
func (i *LandingPadInst) AddClause(c *Clause) {
	i.Clauses = append(i.Clauses, c)
}

// PhiIncoming is one (value, predecessor) pair of a phi.
type PhiIncoming struct {
	V    Value
	Pred *Block
}

// PhiInst merges values flowing in from predecessor blocks. The driver
// creates one per block argument.
type PhiInst struct {
	Name     string
	Typ      Type
	Incoming []PhiIncoming
	attachments
}

func (i *PhiInst) isInst()       {}
func (i *PhiInst) Type() Type    { return i.Typ }
func (i *PhiInst) Ident() string { return "%" + i.Name }

// AddIncoming appends an incoming edge.
func (i *PhiInst) AddIncoming(v Value, pred *Block) {
	i.Incoming = append(i.Incoming, PhiIncoming{V: v, Pred: pred})
}

// RetInst returns from the enclosing function. X is nil for void returns.
type RetInst struct {
	X Value
	attachments
}

func (i *RetInst) isInst() {}

// UnreachableInst marks a point control flow cannot reach.
type UnreachableInst struct {
	attachments
}

func (i *UnreachableInst) isInst() {}
