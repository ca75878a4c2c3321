package lir

import (
	"fmt"
	"strconv"
)

// Value is anything that can appear as an instruction operand.
type Value interface {
	Type() Type
	// Ident is the value's textual reference: %name for locals, @name for
	// globals, or a literal for constants.
	Ident() string
}

// Constant is a compile-time-constant value.
type Constant interface {
	Value
	constant()
}

// IntConst is an integer constant.
type IntConst struct {
	Typ *IntType
	V   int64
}

// NewInt returns an integer constant of the given type.
func NewInt(typ *IntType, v int64) *IntConst {
	return &IntConst{Typ: typ, V: v}
}

// Bool returns an i1 constant.
func Bool(b bool) *IntConst {
	if b {
		return &IntConst{Typ: I1, V: 1}
	}
	return &IntConst{Typ: I1, V: 0}
}

func (c *IntConst) Type() Type    { return c.Typ }
func (c *IntConst) Ident() string { return strconv.FormatInt(c.V, 10) }
func (c *IntConst) constant()     {}

// FloatConst is a floating-point constant.
type FloatConst struct {
	Typ *FloatType
	V   float64
}

// NewFloat returns a floating-point constant of the given type.
func NewFloat(typ *FloatType, v float64) *FloatConst {
	return &FloatConst{Typ: typ, V: v}
}

func (c *FloatConst) Type() Type    { return c.Typ }
func (c *FloatConst) Ident() string { return fmt.Sprintf("%g", c.V) }
func (c *FloatConst) constant()     {}

// Null is a null pointer constant.
type Null struct {
	Typ *PointerType
}

// NewNull returns a null constant of the given pointer type.
func NewNull(typ *PointerType) *Null {
	return &Null{Typ: typ}
}

func (c *Null) Type() Type    { return c.Typ }
func (c *Null) Ident() string { return "null" }
func (c *Null) constant()     {}

// ArrayConst is a constant array. Landing-pad filter clauses are the one
// place lowering produces these.
type ArrayConst struct {
	ElemTyp Type
	Elems   []Constant
}

// NewArray returns a constant array with the given element type.
func NewArray(elem Type, elems ...Constant) *ArrayConst {
	return &ArrayConst{ElemTyp: elem, Elems: elems}
}

func (c *ArrayConst) Type() Type {
	return &arrayType{n: len(c.Elems), elem: c.ElemTyp}
}

func (c *ArrayConst) Ident() string {
	s := "["
	for i, e := range c.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.Type().String() + " " + e.Ident()
	}
	return s + "]"
}

func (c *ArrayConst) constant() {}

// arrayType exists only as the type of ArrayConst values.
type arrayType struct {
	n    int
	elem Type
}

func (t *arrayType) String() string { return fmt.Sprintf("[%d x %s]", t.n, t.elem) }

func (t *arrayType) Equal(other Type) bool {
	o, ok := other.(*arrayType)
	return ok && o.n == t.n && o.elem.Equal(t.elem)
}

// Param is a function parameter.
type Param struct {
	Name string
	Typ  Type
}

func (p *Param) Type() Type    { return p.Typ }
func (p *Param) Ident() string { return "%" + p.Name }
