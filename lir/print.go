package lir

import (
	"fmt"
	"strings"
)

// String renders the module as stable, LLVM-flavoured text. Metadata tuples
// are numbered in first-reference order and listed after the functions.
func (m *Module) String() string {
	p := &printer{mdIndex: make(map[*MDTuple]int)}
	for _, g := range m.Globals {
		fmt.Fprintf(&p.sb, "@%s = external global %s\n", g.Name, g.Typ)
	}
	if len(m.Globals) > 0 {
		p.sb.WriteString("\n")
	}
	for _, f := range m.Funcs {
		p.fn(f)
	}
	// Nested tuples discovered while printing append to mdOrder.
	for i := 0; i < len(p.mdOrder); i++ {
		t := p.mdOrder[i]
		distinct := ""
		if t.Distinct {
			distinct = "distinct "
		}
		fields := make([]string, len(t.Fields))
		for j, f := range t.Fields {
			fields[j] = p.field(f)
		}
		fmt.Fprintf(&p.sb, "!%d = %s!{%s}\n", i, distinct, strings.Join(fields, ", "))
	}
	return p.sb.String()
}

type printer struct {
	sb      strings.Builder
	mdIndex map[*MDTuple]int
	mdOrder []*MDTuple
}

func (p *printer) ref(t *MDTuple) string {
	idx, ok := p.mdIndex[t]
	if !ok {
		idx = len(p.mdOrder)
		p.mdIndex[t] = idx
		p.mdOrder = append(p.mdOrder, t)
	}
	return fmt.Sprintf("!%d", idx)
}

func (p *printer) field(f MDField) string {
	switch f := f.(type) {
	case *MDTuple:
		return p.ref(f)
	case *MDString:
		return fmt.Sprintf("!%q", f.S)
	case *MDInt:
		return fmt.Sprintf("%s %d", f.Typ, f.V)
	}
	return "?"
}

func (p *printer) fn(f *Func) {
	params := make([]string, len(f.Params))
	for i, pa := range f.Params {
		params[i] = fmt.Sprintf("%s %%%s", pa.Typ, pa.Name)
	}
	sigParams := strings.Join(params, ", ")
	if f.Sig.Variadic {
		if sigParams != "" {
			sigParams += ", "
		}
		sigParams += "..."
	}
	if f.IsDecl() {
		fmt.Fprintf(&p.sb, "declare %s @%s(%s)\n\n", f.Sig.Ret, f.Name, sigParams)
		return
	}
	fmt.Fprintf(&p.sb, "define %s @%s(%s) {\n", f.Sig.Ret, f.Name, sigParams)
	for _, blk := range f.Blocks {
		fmt.Fprintf(&p.sb, "%s:\n", blk.Name)
		for _, inst := range blk.Insts {
			fmt.Fprintf(&p.sb, "  %s\n", p.inst(inst))
		}
		if blk.Term != nil {
			fmt.Fprintf(&p.sb, "  %s\n", p.inst(blk.Term))
		}
	}
	p.sb.WriteString("}\n\n")
}

// typed renders "type ident" for an operand reference.
func typed(v Value) string {
	return v.Type().String() + " " + v.Ident()
}

func fmfPrefix(f FastMathFlags) string {
	if f == 0 {
		return ""
	}
	return f.String() + " "
}

func (p *printer) inst(inst Inst) string {
	var s string
	switch inst := inst.(type) {
	case *BinInst:
		s = fmt.Sprintf("%%%s = %s %s%s %s, %s",
			inst.Name, inst.Op, fmfPrefix(inst.FMF), inst.X.Type(), inst.X.Ident(), inst.Y.Ident())
	case *UnaryInst:
		s = fmt.Sprintf("%%%s = %s %s%s", inst.Name, inst.Op, fmfPrefix(inst.FMF), typed(inst.X))
	case *CastInst:
		s = fmt.Sprintf("%%%s = %s %s to %s", inst.Name, inst.Op, typed(inst.X), inst.To)
	case *ICmpInst:
		s = fmt.Sprintf("%%%s = icmp %s %s %s, %s",
			inst.Name, inst.Pred, inst.X.Type(), inst.X.Ident(), inst.Y.Ident())
	case *FCmpInst:
		s = fmt.Sprintf("%%%s = fcmp %s%s %s %s, %s",
			inst.Name, fmfPrefix(inst.FMF), inst.Pred, inst.X.Type(), inst.X.Ident(), inst.Y.Ident())
	case *AtomicRMWInst:
		s = fmt.Sprintf("%%%s = atomicrmw %s %s, %s %s",
			inst.Name, inst.Op, typed(inst.Ptr), typed(inst.Val), inst.Ordering)
	case *FenceInst:
		s = fmt.Sprintf("fence %s", inst.Ordering)
	case *LoadInst:
		s = fmt.Sprintf("%%%s = load %s, %s", inst.Name, inst.Elem, typed(inst.Ptr))
	case *StoreInst:
		s = fmt.Sprintf("store %s, %s", typed(inst.Val), typed(inst.Ptr))
	case *CallInst:
		s = p.call(inst)
	case *InvokeInst:
		args := make([]string, len(inst.Args))
		for i, a := range inst.Args {
			args[i] = typed(a)
		}
		s = fmt.Sprintf("invoke %s %s(%s) to label %%%s unwind label %%%s",
			inst.Sig.Ret, inst.Callee.Ident(), strings.Join(args, ", "),
			inst.Normal.Name, inst.Unwind.Name)
		if inst.Name != "" {
			s = fmt.Sprintf("%%%s = %s", inst.Name, s)
		}
	case *BrInst:
		s = fmt.Sprintf("br label %%%s", inst.Target.Name)
	case *CondBrInst:
		s = fmt.Sprintf("br %s, label %%%s, label %%%s",
			typed(inst.Cond), inst.Then.Name, inst.Else.Name)
	case *SwitchInst:
		var cases []string
		for _, c := range inst.Cases {
			cases = append(cases, fmt.Sprintf("%s, label %%%s", typed(c.V), c.Target.Name))
		}
		s = fmt.Sprintf("switch %s, label %%%s [%s]",
			typed(inst.X), inst.Default.Name, strings.Join(cases, "; "))
	case *LandingPadInst:
		s = fmt.Sprintf("%%%s = landingpad %s", inst.Name, inst.Typ)
		if inst.Cleanup {
			s += " cleanup"
		}
		for _, c := range inst.Clauses {
			s += fmt.Sprintf(" %s %s", c.Kind, typed(c.X))
		}
	case *PhiInst:
		var incs []string
		for _, in := range inst.Incoming {
			incs = append(incs, fmt.Sprintf("[ %s, %%%s ]", in.V.Ident(), in.Pred.Name))
		}
		s = fmt.Sprintf("%%%s = phi %s %s", inst.Name, inst.Typ, strings.Join(incs, ", "))
	case *RetInst:
		if inst.X == nil {
			s = "ret void"
		} else {
			s = fmt.Sprintf("ret %s", typed(inst.X))
		}
	case *UnreachableInst:
		s = "unreachable"
	default:
		s = fmt.Sprintf("<unknown inst %T>", inst)
	}
	return s + p.suffix(inst)
}

func (p *printer) call(inst *CallInst) string {
	shift := 0
	if inst.Name != "" {
		shift = 1
	}
	args := make([]string, len(inst.Args))
	for i, a := range inst.Args {
		elem := ""
		for _, pa := range inst.ParamAttrs {
			if pa.Index == i+shift {
				elem = fmt.Sprintf("elementtype(%s) ", pa.Elem)
			}
		}
		args[i] = a.Type().String() + " " + elem + a.Ident()
	}
	s := fmt.Sprintf("call %s%s %s(%s)",
		fmfPrefix(inst.FMF), inst.Sig.Ret, inst.Callee.Ident(), strings.Join(args, ", "))
	if inst.Name != "" {
		s = fmt.Sprintf("%%%s = %s", inst.Name, s)
	}
	return s
}

// suffix renders an instruction's metadata attachments.
func (p *printer) suffix(inst Inst) string {
	a, ok := inst.(interface{ mdAttachments() []*MDAttachment })
	if !ok {
		return ""
	}
	var s string
	for _, md := range a.mdAttachments() {
		switch node := md.Node.(type) {
		case *MDTuple:
			s += fmt.Sprintf(", !%s %s", md.Kind, p.ref(node))
		case *MDString:
			s += fmt.Sprintf(", !%s !%q", md.Kind, node.S)
		}
	}
	return s
}
