// Package lir defines Glacier's low-level instruction representation: a
// flat, LLVM-flavoured IR of modules, functions, basic blocks and typed
// instructions, plus the builder used to append them. Package lower emits
// into this representation.
package lir

import "fmt"

// Module is a translation unit: globals plus function declarations and
// definitions.
type Module struct {
	Funcs   []*Func
	Globals []*Global

	funcIndex   map[string]*Func
	globalIndex map[string]*Global
}

// NewModule creates an empty module.
func NewModule() *Module {
	return &Module{
		funcIndex:   make(map[string]*Func),
		globalIndex: make(map[string]*Global),
	}
}

// NewFunc adds a function with the given name and signature and returns it.
// A function with no blocks is a declaration.
func (m *Module) NewFunc(name string, sig *FuncType) *Func {
	f := &Func{Name: name, Sig: sig}
	for i, pt := range sig.Params {
		f.Params = append(f.Params, &Param{Name: fmt.Sprintf("arg%d", i), Typ: pt})
	}
	m.Funcs = append(m.Funcs, f)
	m.funcIndex[name] = f
	return f
}

// Func returns the function with the given name, or nil.
func (m *Module) Func(name string) *Func {
	return m.funcIndex[name]
}

// NewGlobal adds a global variable of the given pointee type and returns it.
func (m *Module) NewGlobal(name string, typ Type) *Global {
	g := &Global{Name: name, Typ: typ}
	m.Globals = append(m.Globals, g)
	m.globalIndex[name] = g
	return g
}

// Global returns the global with the given name, or nil.
func (m *Module) Global(name string) *Global {
	return m.globalIndex[name]
}

// Func is a function declaration or definition. Its address is a constant.
type Func struct {
	Name   string
	Sig    *FuncType
	Params []*Param
	Blocks []*Block

	nvalue int // next %tN result name
}

func (f *Func) Type() Type    { return NewPointer(f.Sig) }
func (f *Func) Ident() string { return "@" + f.Name }
func (f *Func) constant()     {}

// IsDecl reports whether f is a declaration without a body.
func (f *Func) IsDecl() bool { return len(f.Blocks) == 0 }

// NewBlock appends a basic block with the given label.
func (f *Func) NewBlock(name string) *Block {
	b := &Block{Name: name, Parent: f}
	f.Blocks = append(f.Blocks, b)
	return b
}

// nextName allocates the next local result name.
func (f *Func) nextName() string {
	name := fmt.Sprintf("t%d", f.nvalue)
	f.nvalue++
	return name
}

// Global is a global variable. Its value is the variable's address, so its
// type is a pointer to Typ.
type Global struct {
	Name string
	Typ  Type
}

func (g *Global) Type() Type    { return NewPointer(g.Typ) }
func (g *Global) Ident() string { return "@" + g.Name }
func (g *Global) constant()     {}

// Block is a basic block: a label, a sequence of instructions, and one
// terminator.
type Block struct {
	Name   string
	Parent *Func
	Insts  []Inst
	Term   Inst
}
