package lir

import (
	"fmt"
	"strings"
)

// Type is an LIR type. Equality is structural.
type Type interface {
	String() string
	Equal(other Type) bool
}

// VoidType is the type of instructions that produce no value.
type VoidType struct{}

// IntType is an integer type of a fixed bit width.
type IntType struct {
	Bits uint32
}

// FloatKind selects a floating-point representation.
type FloatKind uint8

const (
	FloatKindFloat  FloatKind = iota // 32-bit
	FloatKindDouble                  // 64-bit
)

// FloatType is a floating-point type.
type FloatType struct {
	Kind FloatKind
}

// PointerType is a pointer with a known pointee type.
type PointerType struct {
	Elem Type
}

// FuncType is a function signature.
type FuncType struct {
	Ret      Type
	Params   []Type
	Variadic bool
}

// StructType is a literal struct type.
type StructType struct {
	Fields []Type
}

// Singleton types used throughout lowering.
var (
	Void   = &VoidType{}
	I1     = &IntType{Bits: 1}
	I8     = &IntType{Bits: 8}
	I16    = &IntType{Bits: 16}
	I32    = &IntType{Bits: 32}
	I64    = &IntType{Bits: 64}
	Float  = &FloatType{Kind: FloatKindFloat}
	Double = &FloatType{Kind: FloatKindDouble}
)

// IntN returns the integer type of the given bit width, reusing the common
// singletons where possible.
func IntN(bits uint32) *IntType {
	switch bits {
	case 1:
		return I1
	case 8:
		return I8
	case 16:
		return I16
	case 32:
		return I32
	case 64:
		return I64
	}
	return &IntType{Bits: bits}
}

// NewPointer returns a pointer type with the given pointee.
func NewPointer(elem Type) *PointerType {
	return &PointerType{Elem: elem}
}

// NewFunc returns a function type.
func NewFunc(ret Type, params ...Type) *FuncType {
	return &FuncType{Ret: ret, Params: params}
}

// NewStruct returns a literal struct type.
func NewStruct(fields ...Type) *StructType {
	return &StructType{Fields: fields}
}

// IsVoid reports whether t is the void type.
func IsVoid(t Type) bool {
	_, ok := t.(*VoidType)
	return ok
}

// IsFloat reports whether t is a floating-point type.
func IsFloat(t Type) bool {
	_, ok := t.(*FloatType)
	return ok
}

func (t *VoidType) String() string { return "void" }

func (t *VoidType) Equal(other Type) bool {
	_, ok := other.(*VoidType)
	return ok
}

func (t *IntType) String() string { return fmt.Sprintf("i%d", t.Bits) }

func (t *IntType) Equal(other Type) bool {
	o, ok := other.(*IntType)
	return ok && o.Bits == t.Bits
}

func (t *FloatType) String() string {
	if t.Kind == FloatKindDouble {
		return "double"
	}
	return "float"
}

func (t *FloatType) Equal(other Type) bool {
	o, ok := other.(*FloatType)
	return ok && o.Kind == t.Kind
}

func (t *PointerType) String() string { return t.Elem.String() + "*" }

func (t *PointerType) Equal(other Type) bool {
	o, ok := other.(*PointerType)
	return ok && o.Elem.Equal(t.Elem)
}

func (t *FuncType) String() string {
	var sb strings.Builder
	sb.WriteString(t.Ret.String())
	sb.WriteString(" (")
	for i, p := range t.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	if t.Variadic {
		if len(t.Params) > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("...")
	}
	sb.WriteString(")")
	return sb.String()
}

func (t *FuncType) Equal(other Type) bool {
	o, ok := other.(*FuncType)
	if !ok || o.Variadic != t.Variadic || len(o.Params) != len(t.Params) {
		return false
	}
	if !o.Ret.Equal(t.Ret) {
		return false
	}
	for i, p := range t.Params {
		if !o.Params[i].Equal(p) {
			return false
		}
	}
	return true
}

func (t *StructType) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for i, f := range t.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.String())
	}
	sb.WriteString(" }")
	return sb.String()
}

func (t *StructType) Equal(other Type) bool {
	o, ok := other.(*StructType)
	if !ok || len(o.Fields) != len(t.Fields) {
		return false
	}
	for i, f := range t.Fields {
		if !o.Fields[i].Equal(f) {
			return false
		}
	}
	return true
}
