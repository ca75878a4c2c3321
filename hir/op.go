package hir

// Op is one HIR operation. The concrete types form a closed set: the
// control-flow and call-like kinds below, plus Generic for every
// structurally regular operation handled by the lowering table.
type Op interface {
	// OpName is the opcode tag, e.g. "hl.icmp".
	OpName() string
	// Operands are references into the value space, in order.
	Operands() []*Value
	// Results are the values this operation defines (0 or 1 for all
	// special-cased kinds).
	Results() []*Value
	// Attr returns a named attribute, or nil.
	Attr(name string) Attr
	// Successors are the target blocks of a terminator, in order.
	Successors() []*Block
	// SuccessorArgs are the values forwarded to successor i's block
	// arguments.
	SuccessorArgs(i int) []*Value
}

// Operation is the common base embedded by every concrete op kind.
// Operations are read-only once built; lowering never mutates them.
type Operation struct {
	name     string
	operands []*Value
	results  []*Value
	attrs    map[string]Attr
	succs    []*Block
	succArgs [][]*Value
}

func newOperation(name string, operands, results []*Value) Operation {
	return Operation{
		name:     name,
		operands: operands,
		results:  results,
		attrs:    make(map[string]Attr),
	}
}

func (o *Operation) OpName() string       { return o.name }
func (o *Operation) Operands() []*Value   { return o.operands }
func (o *Operation) Results() []*Value    { return o.results }
func (o *Operation) Successors() []*Block { return o.succs }

func (o *Operation) SuccessorArgs(i int) []*Value { return o.succArgs[i] }

func (o *Operation) Attr(name string) Attr {
	return o.attrs[name]
}

// SetAttr stores an attribute.
func (o *Operation) SetAttr(name string, attr Attr) {
	o.attrs[name] = attr
}

func (o *Operation) addSuccessor(b *Block, args []*Value) {
	o.succs = append(o.succs, b)
	o.succArgs = append(o.succArgs, args)
}

func (o *Operation) intAttr(name string) (int64, bool) {
	if a, ok := o.attrs[name].(*IntAttr); ok {
		return a.V, true
	}
	return 0, false
}

func (o *Operation) stringAttr(name string) string {
	if a, ok := o.attrs[name].(*StringAttr); ok {
		return a.S
	}
	return ""
}

// Generic is a structurally regular operation lowered by the declarative
// table: arithmetic, conversions, comparisons, atomics, memory, return.
type Generic struct {
	Operation
}

// NewGeneric creates a regular operation. result may be nil.
func NewGeneric(name string, operands []*Value, result *Value) *Generic {
	var results []*Value
	if result != nil {
		results = []*Value{result}
	}
	return &Generic{Operation: newOperation(name, operands, results)}
}

// Call is a direct or indirect function call. Direct calls carry a
// "callee" symbol attribute; indirect calls take the callee function
// pointer as their first operand.
type Call struct {
	Operation
}

// NewCall creates a direct call. result may be nil.
func NewCall(callee string, args []*Value, result *Value) *Call {
	var results []*Value
	if result != nil {
		results = []*Value{result}
	}
	op := &Call{Operation: newOperation("hl.call", args, results)}
	op.SetAttr("callee", NewSymbolRef(callee))
	return op
}

// NewIndirectCall creates an indirect call through fn.
func NewIndirectCall(fn *Value, args []*Value, result *Value) *Call {
	var results []*Value
	if result != nil {
		results = []*Value{result}
	}
	operands := append([]*Value{fn}, args...)
	return &Call{Operation: newOperation("hl.call", operands, results)}
}

// Callee returns the direct callee symbol, if any.
func (op *Call) Callee() (string, bool) {
	if a, ok := op.attrs["callee"].(*SymbolRefAttr); ok {
		return a.Sym, true
	}
	return "", false
}

// Invoke is a call with normal and unwind successors. Successor 0 is the
// normal destination, successor 1 the unwind destination.
type Invoke struct {
	Operation
}

// NewInvoke creates a direct invoke.
func NewInvoke(callee string, args []*Value, result *Value, normal, unwind *Block) *Invoke {
	var results []*Value
	if result != nil {
		results = []*Value{result}
	}
	op := &Invoke{Operation: newOperation("hl.invoke", args, results)}
	op.SetAttr("callee", NewSymbolRef(callee))
	op.addSuccessor(normal, nil)
	op.addSuccessor(unwind, nil)
	return op
}

// NewIndirectInvoke creates an invoke through a function pointer.
func NewIndirectInvoke(fn *Value, args []*Value, result *Value, normal, unwind *Block) *Invoke {
	var results []*Value
	if result != nil {
		results = []*Value{result}
	}
	operands := append([]*Value{fn}, args...)
	op := &Invoke{Operation: newOperation("hl.invoke", operands, results)}
	op.addSuccessor(normal, nil)
	op.addSuccessor(unwind, nil)
	return op
}

// Callee returns the direct callee symbol, if any.
func (op *Invoke) Callee() (string, bool) {
	if a, ok := op.attrs["callee"].(*SymbolRefAttr); ok {
		return a.Sym, true
	}
	return "", false
}

// InlineAsm calls an inline-assembly fragment.
type InlineAsm struct {
	Operation
}

// NewInlineAsm creates an inline-assembly call. result may be nil.
func NewInlineAsm(asm, constraints string, sideEffects, alignStack bool, args []*Value, result *Value) *InlineAsm {
	var results []*Value
	if result != nil {
		results = []*Value{result}
	}
	op := &InlineAsm{Operation: newOperation("hl.inline_asm", args, results)}
	op.SetAttr("asm_string", NewString(asm))
	op.SetAttr("constraints", NewString(constraints))
	op.SetAttr("has_side_effects", NewBool(sideEffects))
	op.SetAttr("is_align_stack", NewBool(alignStack))
	return op
}

func (op *InlineAsm) AsmString() string   { return op.stringAttr("asm_string") }
func (op *InlineAsm) Constraints() string { return op.stringAttr("constraints") }

func (op *InlineAsm) HasSideEffects() bool {
	a, ok := op.attrs["has_side_effects"].(*BoolAttr)
	return ok && a.B
}

func (op *InlineAsm) IsAlignStack() bool {
	a, ok := op.attrs["is_align_stack"].(*BoolAttr)
	return ok && a.B
}

// SetDialect records an explicit assembly dialect.
func (op *InlineAsm) SetDialect(d AsmDialect) {
	op.SetAttr("asm_dialect", NewInt(int64(d)))
}

// Dialect returns the assembly dialect, if one was set.
func (op *InlineAsm) Dialect() (AsmDialect, bool) {
	v, ok := op.intAttr("asm_dialect")
	return AsmDialect(v), ok
}

// SetOperandAttrs records per-operand attribute dictionaries. Entries may
// be nil for operands carrying no attributes.
func (op *InlineAsm) SetOperandAttrs(attrs []Attr) {
	op.SetAttr("operand_attrs", NewArrayAttr(attrs...))
}

// OperandAttrs returns the per-operand attribute dictionaries, or nil.
func (op *InlineAsm) OperandAttrs() []Attr {
	if a, ok := op.attrs["operand_attrs"].(*ArrayAttr); ok {
		return a.Elems
	}
	return nil
}

// Br is an unconditional branch.
type Br struct {
	Operation
}

// NewBr creates a branch to dest, forwarding args to its block arguments.
func NewBr(dest *Block, args []*Value) *Br {
	op := &Br{Operation: newOperation("hl.br", args, nil)}
	op.addSuccessor(dest, args)
	return op
}

// CondBr is a two-way conditional branch. Operand 0 is the condition.
type CondBr struct {
	Operation
}

// NewCondBr creates a conditional branch.
func NewCondBr(cond *Value, then *Block, thenArgs []*Value, els *Block, elsArgs []*Value) *CondBr {
	op := &CondBr{Operation: newOperation("hl.cond_br", []*Value{cond}, nil)}
	op.addSuccessor(then, thenArgs)
	op.addSuccessor(els, elsArgs)
	return op
}

// SetBranchWeights records taken/not-taken weights.
func (op *CondBr) SetBranchWeights(trueWeight, falseWeight int64) {
	op.SetAttr("branch_weights", NewInts(trueWeight, falseWeight))
}

// BranchWeights returns the weight pair, if set.
func (op *CondBr) BranchWeights() ([]int64, bool) {
	if a, ok := op.attrs["branch_weights"].(*IntsAttr); ok {
		return a.Vals, true
	}
	return nil, false
}

// Switch is a multi-way branch. Operand 0 is the discriminator; successor
// 0 is the default destination, successors 1..n the case destinations in
// input order.
type Switch struct {
	Operation
}

// NewSwitch creates a switch. caseValues[i] routes to caseDests[i].
func NewSwitch(v *Value, def *Block, defArgs []*Value, caseValues []int64, caseDests []*Block, caseArgs [][]*Value) *Switch {
	op := &Switch{Operation: newOperation("hl.switch", []*Value{v}, nil)}
	op.SetAttr("case_values", NewInts(caseValues...))
	op.addSuccessor(def, defArgs)
	for i, dest := range caseDests {
		var args []*Value
		if caseArgs != nil {
			args = caseArgs[i]
		}
		op.addSuccessor(dest, args)
	}
	return op
}

// CaseValues returns the case values in input order.
func (op *Switch) CaseValues() []int64 {
	if a, ok := op.attrs["case_values"].(*IntsAttr); ok {
		return a.Vals
	}
	return nil
}

// SetBranchWeights records one weight per case.
func (op *Switch) SetBranchWeights(weights []int64) {
	op.SetAttr("branch_weights", NewInts(weights...))
}

// BranchWeights returns the per-case weights, if set.
func (op *Switch) BranchWeights() ([]int64, bool) {
	if a, ok := op.attrs["branch_weights"].(*IntsAttr); ok {
		return a.Vals, true
	}
	return nil, false
}

// LandingPad is the entry operation of an exception-handling block. Its
// operands are the clause constants.
type LandingPad struct {
	Operation
}

// NewLandingPad creates a landing pad producing result from the given
// clause operands.
func NewLandingPad(result *Value, clauses []*Value, cleanup bool) *LandingPad {
	op := &LandingPad{Operation: newOperation("hl.landingpad", clauses, []*Value{result})}
	op.SetAttr("cleanup", NewBool(cleanup))
	return op
}

// Cleanup reports whether the pad is a cleanup pad.
func (op *LandingPad) Cleanup() bool {
	a, ok := op.attrs["cleanup"].(*BoolAttr)
	return ok && a.B
}

// AddressOf produces the address of a module-level symbol. It emits no
// instruction when lowered.
type AddressOf struct {
	Operation
}

// NewAddressOf creates an address-of operation.
func NewAddressOf(sym string, result *Value) *AddressOf {
	op := &AddressOf{Operation: newOperation("hl.addressof", nil, []*Value{result})}
	op.SetAttr("symbol", NewSymbolRef(sym))
	return op
}

// Symbol returns the referenced symbol name.
func (op *AddressOf) Symbol() string {
	if a, ok := op.attrs["symbol"].(*SymbolRefAttr); ok {
		return a.Sym
	}
	return ""
}

// CallIntrinsic calls a named, possibly type-overloaded intrinsic.
type CallIntrinsic struct {
	Operation
}

// NewCallIntrinsic creates an intrinsic call. result may be nil.
func NewCallIntrinsic(intrin string, args []*Value, result *Value) *CallIntrinsic {
	var results []*Value
	if result != nil {
		results = []*Value{result}
	}
	op := &CallIntrinsic{Operation: newOperation("hl.call_intrinsic", args, results)}
	op.SetAttr("intrin", NewString(intrin))
	return op
}

// Intrin returns the intrinsic name.
func (op *CallIntrinsic) Intrin() string { return op.stringAttr("intrin") }
