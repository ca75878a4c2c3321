package lower

import (
	"fmt"
	"math"

	"github.com/glacier-ir/glacier/hir"
	"github.com/glacier-ir/glacier/lir"
)

// resolveCallee determines the callee value and signature of a call-like
// operation. Direct calls resolve their symbol against the module; indirect
// calls read the function type through the first operand's pointer type.
// The returned operand list excludes the callee for the indirect form.
func resolveCallee(op hir.Op, callee string, direct bool, ctx *Context) (lir.Value, *lir.FuncType, []*hir.Value, error) {
	if direct {
		f := ctx.Module().Func(callee)
		if f == nil {
			return nil, nil, nil, fmt.Errorf("call to undefined function %q", callee)
		}
		return f, f.Sig, op.Operands(), nil
	}
	operands := op.Operands()
	fn := ctx.LookupValue(operands[0])
	pt, ok := fn.Type().(*lir.PointerType)
	if !ok {
		return nil, nil, nil, fmt.Errorf("indirect callee %s is not a pointer", fn.Ident())
	}
	ft, ok := pt.Elem.(*lir.FuncType)
	if !ok {
		return nil, nil, nil, fmt.Errorf("indirect callee %s is not a function pointer", fn.Ident())
	}
	return fn, ft, operands[1:], nil
}

// mapCallResult applies the result-arity rule shared by calls and invokes:
// one declared result maps to the instruction and requires a non-void
// callee; zero declared results require a void callee.
func mapCallResult(op hir.Op, inst lir.Value, ret lir.Type, ctx *Context) error {
	results := op.Results()
	if len(results) == 1 {
		if lir.IsVoid(ret) {
			return fmt.Errorf("call to void callee cannot produce a result")
		}
		ctx.MapValue(results[0], inst)
		return nil
	}
	if !lir.IsVoid(ret) {
		return fmt.Errorf("call discards result of type %s", ret)
	}
	return nil
}

func convertCall(op *hir.Call, ctx *Context, b *lir.Builder) error {
	name, direct := op.Callee()
	callee, sig, operands, err := resolveCallee(op, name, direct, ctx)
	if err != nil {
		return err
	}
	call := b.NewCall(callee, sig, ctx.LookupValues(operands)...)
	return mapCallResult(op, call, sig.Ret, ctx)
}

func convertInvoke(op *hir.Invoke, ctx *Context, b *lir.Builder) error {
	name, direct := op.Callee()
	callee, sig, operands, err := resolveCallee(op, name, direct, ctx)
	if err != nil {
		return err
	}
	succs := op.Successors()
	normal := ctx.LookupBlock(succs[0])
	unwind := ctx.LookupBlock(succs[1])
	inv := b.NewInvoke(callee, sig, ctx.LookupValues(operands), normal, unwind)
	ctx.MapBranch(op, inv)
	return mapCallResult(op, inv, sig.Ret, ctx)
}

func convertInlineAsm(op *hir.InlineAsm, ctx *Context, b *lir.Builder) error {
	results := op.Results()
	if len(results) > 1 {
		return fmt.Errorf("multi-result inline assembly is not supported")
	}
	args := ctx.LookupValues(op.Operands())
	params := make([]lir.Type, len(args))
	for i, a := range args {
		params[i] = a.Type()
	}
	var ret lir.Type = lir.Void
	if len(results) == 1 {
		ret = convertType(results[0].Type())
	}
	sig := lir.NewFunc(ret, params...)

	asm := &lir.InlineAsm{
		Sig:         sig,
		Asm:         op.AsmString(),
		Constraints: op.Constraints(),
		SideEffects: op.HasSideEffects(),
		AlignStack:  op.IsAlignStack(),
	}
	if d, ok := op.Dialect(); ok {
		asm.Dialect = asmDialect(d)
	}
	call := b.NewCall(asm, sig, args...)

	// Element-type annotations sit at the operand's call index, shifted by
	// one when the call produces a result (index 0 is the return slot).
	shift := 0
	if len(results) == 1 {
		shift = 1
	}
	for i, a := range op.OperandAttrs() {
		dict, ok := a.(*hir.DictAttr)
		if !ok {
			continue
		}
		if et, ok := dict.Get("elementtype"); ok {
			ta, ok := et.(*hir.TypeAttr)
			if !ok {
				panic("elementtype is not a type attribute")
			}
			call.AddElementTypeAttr(i+shift, convertType(ta.T))
		}
	}

	if len(results) == 1 {
		ctx.MapValue(results[0], call)
	}
	return nil
}

func convertBr(op *hir.Br, ctx *Context, b *lir.Builder) error {
	br := b.NewBr(ctx.LookupBlock(op.Successors()[0]))
	ctx.MapBranch(op, br)
	setLoopMetadata(op, br, ctx)
	return nil
}

func convertCondBr(op *hir.CondBr, ctx *Context, b *lir.Builder) error {
	cond := ctx.LookupValue(op.Operands()[0])
	succs := op.Successors()
	br := b.NewCondBr(cond, ctx.LookupBlock(succs[0]), ctx.LookupBlock(succs[1]))
	if weights, ok := op.BranchWeights(); ok {
		br.Attach("prof", condBrWeights(weights))
	}
	ctx.MapBranch(op, br)
	setLoopMetadata(op, br, ctx)
	return nil
}

// condBrWeights encodes the taken/not-taken pair. Weights are truncated to
// unsigned 32 bits.
func condBrWeights(weights []int64) *lir.MDTuple {
	fields := []lir.MDField{lir.NewMDString("branch_weights")}
	for _, w := range weights {
		fields = append(fields, lir.NewMDInt(lir.I32, int64(uint32(w))))
	}
	return lir.NewTuple(fields...)
}

func convertSwitch(op *hir.Switch, ctx *Context, b *lir.Builder) error {
	x := ctx.LookupValue(op.Operands()[0])
	caseTyp, ok := x.Type().(*lir.IntType)
	if !ok {
		return fmt.Errorf("switch value %s is not an integer", x.Ident())
	}
	succs := op.Successors()
	vals := op.CaseValues()
	if len(vals) != len(succs)-1 {
		panic(fmt.Sprintf("switch has %d case values for %d case blocks", len(vals), len(succs)-1))
	}

	sw := b.NewSwitch(x, ctx.LookupBlock(succs[0]), len(vals))
	if weights, ok := op.BranchWeights(); ok {
		sw.Attach("prof", switchWeights(weights))
	}
	// Cases keep input order; duplicates are the verifier's problem.
	for i, v := range vals {
		sw.AddCase(lir.NewInt(caseTyp, v), ctx.LookupBlock(succs[i+1]))
	}
	ctx.MapBranch(op, sw)
	return nil
}

// switchWeights encodes per-case weights, saturating at the unsigned
// 32-bit range.
func switchWeights(weights []int64) *lir.MDTuple {
	fields := []lir.MDField{lir.NewMDString("branch_weights")}
	for _, w := range weights {
		if w < 0 {
			w = 0
		}
		if w > math.MaxUint32 {
			w = math.MaxUint32
		}
		fields = append(fields, lir.NewMDInt(lir.I32, w))
	}
	return lir.NewTuple(fields...)
}

func convertLandingPad(op *hir.LandingPad, ctx *Context, b *lir.Builder) error {
	res := op.Results()[0]
	pad := b.NewLandingPad(convertType(res.Type()), len(op.Operands()))
	pad.Cleanup = op.Cleanup()
	// The verifier guarantees clause operands are constants; anything else
	// is skipped rather than reported.
	for _, operand := range op.Operands() {
		c, ok := ctx.LookupValue(operand).(lir.Constant)
		if !ok {
			continue
		}
		pad.AddClause(lir.NewClauseFor(c))
	}
	ctx.MapValue(res, pad)
	return nil
}

// convertAddressOf maps the result to an already-lowered symbol address.
// No instruction is emitted.
func convertAddressOf(op *hir.AddressOf, ctx *Context) error {
	sym := op.Symbol()
	if g := ctx.Module().Global(sym); g != nil {
		ctx.MapValue(op.Results()[0], g)
		return nil
	}
	if f := ctx.Module().Func(sym); f != nil {
		ctx.MapValue(op.Results()[0], f)
		return nil
	}
	panic(fmt.Sprintf("addressof %q resolves to neither a global nor a function", sym))
}
