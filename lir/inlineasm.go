package lir

// InlineAsm is a callable inline-assembly value. It appears only as the
// callee of a CallInst.
type InlineAsm struct {
	Sig         *FuncType
	Asm         string
	Constraints string
	SideEffects bool
	AlignStack  bool
	Dialect     AsmDialect
}

func (a *InlineAsm) Type() Type { return NewPointer(a.Sig) }

func (a *InlineAsm) Ident() string {
	s := "asm "
	if a.SideEffects {
		s += "sideeffect "
	}
	if a.AlignStack {
		s += "alignstack "
	}
	if a.Dialect == DialectIntel {
		s += "inteldialect "
	}
	return s + "\"" + a.Asm + "\", \"" + a.Constraints + "\""
}
