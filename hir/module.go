// Package hir defines Glacier's high-level operation representation: typed
// SSA values grouped into blocks of attributed operations. Package lower
// translates it to package lir.
package hir

// Value is an SSA value. Identity is pointer identity; the name exists for
// diagnostics and module files.
type Value struct {
	name string
	typ  Type
}

// NewValue creates a value of the given type.
func NewValue(name string, typ Type) *Value {
	return &Value{name: name, typ: typ}
}

func (v *Value) Name() string { return v.name }
func (v *Value) Type() Type   { return v.typ }

// Block is a basic block: block arguments plus an ordered operation list.
// The final operation must be a terminator.
type Block struct {
	Name string
	Args []*Value
	Ops  []Op
}

// NewBlock creates a block with the given arguments.
func NewBlock(name string, args ...*Value) *Block {
	return &Block{Name: name, Args: args}
}

// Append adds an operation.
func (b *Block) Append(op Op) {
	b.Ops = append(b.Ops, op)
}

// Func is a function definition. The entry block's arguments are the
// function parameters.
type Func struct {
	Name   string
	Typ    *FuncType
	Blocks []*Block
}

// Entry returns the entry block.
func (f *Func) Entry() *Block { return f.Blocks[0] }

// Global is a module-level variable declaration.
type Global struct {
	Name string
	Typ  Type
}

// Module is a translation unit.
type Module struct {
	Name    string
	Funcs   []*Func
	Globals []*Global
}
