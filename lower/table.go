package lower

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/glacier-ir/glacier/hir"
	"github.com/glacier-ir/glacier/lir"
)

//go:embed table.yaml
var tableYAML []byte

type tableEntry struct {
	Op   string `yaml:"op"`
	Kind string `yaml:"kind"`
	Inst string `yaml:"inst"`
}

var table = map[string]tableEntry{}

var instOps = map[string]lir.Opcode{
	"add": lir.Add, "sub": lir.Sub, "mul": lir.Mul,
	"udiv": lir.UDiv, "sdiv": lir.SDiv, "urem": lir.URem, "srem": lir.SRem,
	"shl": lir.Shl, "lshr": lir.LShr, "ashr": lir.AShr,
	"and": lir.And, "or": lir.Or, "xor": lir.Xor,
	"fadd": lir.FAdd, "fsub": lir.FSub, "fmul": lir.FMul,
	"fdiv": lir.FDiv, "frem": lir.FRem, "fneg": lir.FNeg,
	"trunc": lir.Trunc, "zext": lir.ZExt, "sext": lir.SExt,
	"fptrunc": lir.FPTrunc, "fpext": lir.FPExt,
	"fptoui": lir.FPToUI, "fptosi": lir.FPToSI,
	"uitofp": lir.UIToFP, "sitofp": lir.SIToFP,
	"ptrtoint": lir.PtrToInt, "inttoptr": lir.IntToPtr, "bitcast": lir.Bitcast,
}

func init() {
	var entries []tableEntry
	if err := yaml.Unmarshal(tableYAML, &entries); err != nil {
		panic(fmt.Sprintf("lowering table: %v", err))
	}
	for _, e := range entries {
		if e.Inst != "" {
			if _, ok := instOps[e.Inst]; !ok {
				panic(fmt.Sprintf("lowering table: %s names unknown instruction %q", e.Op, e.Inst))
			}
		}
		table[e.Op] = e
	}
}

// requiredInt reads an integer attribute whose presence the upstream
// verifier guarantees.
func requiredInt(op hir.Op, name string) int64 {
	a, ok := op.Attr(name).(*hir.IntAttr)
	if !ok {
		panic(fmt.Sprintf("%s is missing attribute %s", op.OpName(), name))
	}
	return a.V
}

// lowerRegular handles an operation through the declarative table. It
// reports false, untouched, when the operation has no table entry.
func lowerRegular(op hir.Op, ctx *Context, b *lir.Builder) (bool, error) {
	ent, ok := table[op.OpName()]
	if !ok {
		return false, nil
	}

	operand := func(i int) lir.Value { return ctx.LookupValue(op.Operands()[i]) }

	switch ent.Kind {
	case "binary":
		inst := b.NewBin(instOps[ent.Inst], operand(0), operand(1))
		ctx.MapValue(op.Results()[0], inst)
	case "unary":
		inst := b.NewUnary(instOps[ent.Inst], operand(0))
		ctx.MapValue(op.Results()[0], inst)
	case "cast":
		to := convertType(op.Results()[0].Type())
		inst := b.NewCast(instOps[ent.Inst], operand(0), to)
		ctx.MapValue(op.Results()[0], inst)
	case "icmp":
		pred := cmpPred(hir.IPred(requiredInt(op, "predicate")))
		inst := b.NewICmp(pred, operand(0), operand(1))
		ctx.MapValue(op.Results()[0], inst)
	case "fcmp":
		pred := fcmpPred(hir.FPred(requiredInt(op, "predicate")))
		inst := b.NewFCmp(pred, operand(0), operand(1))
		ctx.MapValue(op.Results()[0], inst)
	case "atomicrmw":
		binOp := atomicOp(hir.AtomicOp(requiredInt(op, "bin_op")))
		ordering := atomicOrdering(hir.Ordering(requiredInt(op, "ordering")))
		inst := b.NewAtomicRMW(binOp, operand(0), operand(1), ordering)
		ctx.MapValue(op.Results()[0], inst)
	case "fence":
		b.NewFence(atomicOrdering(hir.Ordering(requiredInt(op, "ordering"))))
	case "load":
		res := op.Results()[0]
		inst := b.NewLoad(convertType(res.Type()), operand(0))
		ctx.MapValue(res, inst)
	case "store":
		b.NewStore(operand(0), operand(1))
	case "const":
		lowerConst(op, ctx)
	case "ret":
		if len(op.Operands()) == 1 {
			b.NewRet(operand(0))
		} else {
			b.NewRet(nil)
		}
	case "unreachable":
		b.NewUnreachable()
	default:
		panic(fmt.Sprintf("lowering table: unknown kind %q", ent.Kind))
	}
	return true, nil
}

// lowerConst maps the result to a constant without emitting an
// instruction.
func lowerConst(op hir.Op, ctx *Context) {
	res := op.Results()[0]
	var c lir.Constant
	switch t := convertType(res.Type()).(type) {
	case *lir.IntType:
		a, ok := op.Attr("value").(*hir.IntAttr)
		if !ok {
			panic("integer constant is missing its value attribute")
		}
		c = lir.NewInt(t, a.V)
	case *lir.FloatType:
		switch a := op.Attr("value").(type) {
		case *hir.FloatAttr:
			c = lir.NewFloat(t, a.V)
		case *hir.IntAttr:
			c = lir.NewFloat(t, float64(a.V))
		default:
			panic("float constant is missing its value attribute")
		}
	case *lir.PointerType:
		c = lir.NewNull(t)
	default:
		panic(fmt.Sprintf("unsupported constant type %s", t))
	}
	ctx.MapValue(res, c)
}
