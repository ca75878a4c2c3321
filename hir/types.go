package hir

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is an HIR type. Equality is structural.
type Type interface {
	String() string
	Equal(other Type) bool
}

// VoidType is the empty result type.
type VoidType struct{}

// IntType is an integer type of fixed bit width.
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

// PointerType is a pointer carrying its pointee type. Indirect calls read
// the callee's function type through it.
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

// Common singletons.
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

// IntN returns the integer type of the given width.
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

// NewPointer returns a pointer type.
func NewPointer(elem Type) *PointerType { return &PointerType{Elem: elem} }

// NewFunc returns a function type.
func NewFunc(ret Type, params ...Type) *FuncType {
	return &FuncType{Ret: ret, Params: params}
}

// NewStruct returns a struct type.
func NewStruct(fields ...Type) *StructType { return &StructType{Fields: fields} }

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
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	s := "fn(" + strings.Join(params, ",")
	if t.Variadic {
		if len(t.Params) > 0 {
			s += ","
		}
		s += "..."
	}
	return s + ")" + t.Ret.String()
}
func (t *FuncType) Equal(other Type) bool {
	o, ok := other.(*FuncType)
	if !ok || o.Variadic != t.Variadic || len(o.Params) != len(t.Params) || !o.Ret.Equal(t.Ret) {
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
	fields := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		fields[i] = f.String()
	}
	return "{" + strings.Join(fields, ",") + "}"
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

// ParseType parses the textual type syntax used by module files:
//
//	void, i1, i8, i16, i32, i64, float, double
//	T*                  pointer to T
//	fn(T1,T2)R          function, fn(T1,...)R for variadic
//	{T1,T2}             struct
func ParseType(s string) (Type, error) {
	p := &typeParser{src: s}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("type %q: trailing input at offset %d", s, p.pos)
	}
	return t, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) parse() (Type, error) {
	t, err := p.base()
	if err != nil {
		return nil, err
	}
	for p.peek() == '*' {
		p.pos++
		t = NewPointer(t)
	}
	return t, nil
}

func (p *typeParser) base() (Type, error) {
	switch {
	case p.eat("void"):
		return Void, nil
	case p.eat("float"):
		return Float, nil
	case p.eat("double"):
		return Double, nil
	case p.eat("fn("):
		return p.fn()
	case p.eat("{"):
		return p.strct()
	case p.peek() == 'i':
		start := p.pos
		p.pos++
		for p.peek() >= '0' && p.peek() <= '9' {
			p.pos++
		}
		bits, err := strconv.Atoi(p.src[start+1 : p.pos])
		if err != nil || bits <= 0 {
			return nil, fmt.Errorf("type %q: bad integer width", p.src)
		}
		return IntN(uint32(bits)), nil
	}
	return nil, fmt.Errorf("type %q: unexpected input at offset %d", p.src, p.pos)
}

func (p *typeParser) fn() (Type, error) {
	ft := &FuncType{}
	for p.peek() != ')' {
		if p.eat("...") {
			ft.Variadic = true
			break
		}
		t, err := p.parse()
		if err != nil {
			return nil, err
		}
		ft.Params = append(ft.Params, t)
		if !p.eat(",") {
			break
		}
	}
	if !p.eat(")") {
		return nil, fmt.Errorf("type %q: missing ')'", p.src)
	}
	ret, err := p.parse()
	if err != nil {
		return nil, err
	}
	ft.Ret = ret
	return ft, nil
}

func (p *typeParser) strct() (Type, error) {
	st := &StructType{}
	for p.peek() != '}' {
		t, err := p.parse()
		if err != nil {
			return nil, err
		}
		st.Fields = append(st.Fields, t)
		if !p.eat(",") {
			break
		}
	}
	if !p.eat("}") {
		return nil, fmt.Errorf("type %q: missing '}'", p.src)
	}
	return st, nil
}

func (p *typeParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) eat(prefix string) bool {
	if strings.HasPrefix(p.src[p.pos:], prefix) {
		p.pos += len(prefix)
		return true
	}
	return false
}
