package lir

// Builder appends instructions to a basic block. It carries the current
// fast-math flag set; flag-bearing instructions emitted while the flags are
// set record them.
type Builder struct {
	blk *Block
	fmf FastMathFlags
}

// NewBuilder creates a builder with no insertion block.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetInsertBlock positions the builder at the end of blk.
func (b *Builder) SetInsertBlock(blk *Block) {
	b.blk = blk
}

// Block returns the current insertion block.
func (b *Builder) Block() *Block {
	return b.blk
}

// FastMathFlags returns the builder's current flag set.
func (b *Builder) FastMathFlags() FastMathFlags {
	return b.fmf
}

// SetFastMathFlags replaces the builder's flag set.
func (b *Builder) SetFastMathFlags(f FastMathFlags) {
	b.fmf = f
}

func (b *Builder) append(inst Inst) {
	b.blk.Insts = append(b.blk.Insts, inst)
}

func (b *Builder) terminate(inst Inst) {
	b.blk.Term = inst
}

func (b *Builder) nextName() string {
	return b.blk.Parent.nextName()
}

// NewBin appends a two-operand arithmetic instruction. Fast-math flags are
// recorded for floating-point operands.
func (b *Builder) NewBin(op Opcode, x, y Value) *BinInst {
	inst := &BinInst{Name: b.nextName(), Op: op, X: x, Y: y}
	if IsFloat(x.Type()) {
		inst.FMF = b.fmf
	}
	b.append(inst)
	return inst
}

// NewUnary appends a one-operand arithmetic instruction.
func (b *Builder) NewUnary(op Opcode, x Value) *UnaryInst {
	inst := &UnaryInst{Name: b.nextName(), Op: op, X: x}
	if IsFloat(x.Type()) {
		inst.FMF = b.fmf
	}
	b.append(inst)
	return inst
}

// NewCast appends a conversion to the given type.
func (b *Builder) NewCast(op Opcode, x Value, to Type) *CastInst {
	inst := &CastInst{Name: b.nextName(), Op: op, X: x, To: to}
	b.append(inst)
	return inst
}

// NewICmp appends an integer comparison.
func (b *Builder) NewICmp(pred IPred, x, y Value) *ICmpInst {
	inst := &ICmpInst{Name: b.nextName(), Pred: pred, X: x, Y: y}
	b.append(inst)
	return inst
}

// NewFCmp appends a floating-point comparison.
func (b *Builder) NewFCmp(pred FPred, x, y Value) *FCmpInst {
	inst := &FCmpInst{Name: b.nextName(), Pred: pred, X: x, Y: y, FMF: b.fmf}
	b.append(inst)
	return inst
}

// NewAtomicRMW appends an atomic read-modify-write.
func (b *Builder) NewAtomicRMW(op AtomicOp, ptr, val Value, ordering Ordering) *AtomicRMWInst {
	inst := &AtomicRMWInst{Name: b.nextName(), Op: op, Ptr: ptr, Val: val, Ordering: ordering}
	b.append(inst)
	return inst
}

// NewFence appends a memory fence.
func (b *Builder) NewFence(ordering Ordering) *FenceInst {
	inst := &FenceInst{Ordering: ordering}
	b.append(inst)
	return inst
}

// NewLoad appends a load of elem from ptr.
func (b *Builder) NewLoad(elem Type, ptr Value) *LoadInst {
	inst := &LoadInst{Name: b.nextName(), Elem: elem, Ptr: ptr}
	b.append(inst)
	return inst
}

// NewStore appends a store of val to ptr.
func (b *Builder) NewStore(val, ptr Value) *StoreInst {
	inst := &StoreInst{Val: val, Ptr: ptr}
	b.append(inst)
	return inst
}

// NewCall appends a call of callee with the given signature. The result is
// named only for non-void signatures. Fast-math flags are recorded for
// calls producing floating-point results.
func (b *Builder) NewCall(callee Value, sig *FuncType, args ...Value) *CallInst {
	inst := &CallInst{Sig: sig, Callee: callee, Args: args}
	if !IsVoid(sig.Ret) {
		inst.Name = b.nextName()
	}
	if IsFloat(sig.Ret) {
		inst.FMF = b.fmf
	}
	b.append(inst)
	return inst
}

// NewInvoke terminates the block with an invoke of callee, transferring to
// normal on return and unwind on exception.
func (b *Builder) NewInvoke(callee Value, sig *FuncType, args []Value, normal, unwind *Block) *InvokeInst {
	inst := &InvokeInst{Sig: sig, Callee: callee, Args: args, Normal: normal, Unwind: unwind}
	if !IsVoid(sig.Ret) {
		inst.Name = b.nextName()
	}
	b.terminate(inst)
	return inst
}

// NewBr terminates the block with an unconditional branch.
func (b *Builder) NewBr(target *Block) *BrInst {
	inst := &BrInst{Target: target}
	b.terminate(inst)
	return inst
}

// NewCondBr terminates the block with a conditional branch.
func (b *Builder) NewCondBr(cond Value, then, els *Block) *CondBrInst {
	inst := &CondBrInst{Cond: cond, Then: then, Else: els}
	b.terminate(inst)
	return inst
}

// NewSwitch terminates the block with a switch. ncases is a capacity hint;
// cases are added afterwards in input order.
func (b *Builder) NewSwitch(x Value, def *Block, ncases int) *SwitchInst {
	inst := &SwitchInst{X: x, Default: def, Cases: make([]SwitchCase, 0, ncases)}
	b.terminate(inst)
	return inst
}

// NewLandingPad appends a landing pad of the given result type. nclauses is
// a capacity hint.
func (b *Builder) NewLandingPad(typ Type, nclauses int) *LandingPadInst {
	inst := &LandingPadInst{Name: b.nextName(), Typ: typ, Clauses: make([]*Clause, 0, nclauses)}
	b.append(inst)
	return inst
}

// NewPhi appends a phi of the given type with no incomings yet.
func (b *Builder) NewPhi(typ Type) *PhiInst {
	inst := &PhiInst{Name: b.nextName(), Typ: typ}
	b.append(inst)
	return inst
}

// NewRet terminates the block with a return. x is nil for void returns.
func (b *Builder) NewRet(x Value) *RetInst {
	inst := &RetInst{X: x}
	b.terminate(inst)
	return inst
}

// NewUnreachable terminates the block with unreachable.
func (b *Builder) NewUnreachable() *UnreachableInst {
	inst := &UnreachableInst{}
	b.terminate(inst)
	return inst
}
