package lir

import (
	"fmt"
	"strings"
)

// TokKind classifies one token of an intrinsic signature pattern.
type TokKind uint8

const (
	// TokVoid matches only the void type (return position).
	TokVoid TokKind = iota
	// TokFixed matches exactly one concrete type.
	TokFixed
	// TokAny matches any type of its class and binds the next overload
	// type argument.
	TokAny
	// TokMatch matches the type bound by an earlier TokAny.
	TokMatch
)

// TypeClass constrains what a TokAny token may bind.
type TypeClass uint8

const (
	ClassAny TypeClass = iota
	ClassAnyInt
	ClassAnyFloat
)

// SigTok is one element of an intrinsic's type-pattern table. The first
// token describes the return type, the rest the parameters.
type SigTok struct {
	Kind  TokKind
	Typ   Type      // TokFixed
	Class TypeClass // TokAny
	N     int       // TokMatch: index of the bound overload type
}

// Convenience constructors for signature tokens.
func VoidTok() SigTok        { return SigTok{Kind: TokVoid} }
func Fixed(t Type) SigTok    { return SigTok{Kind: TokFixed, Typ: t} }
func Any(c TypeClass) SigTok { return SigTok{Kind: TokAny, Class: c} }
func MatchPrev(n int) SigTok { return SigTok{Kind: TokMatch, N: n} }

// Intrinsic is the generic descriptor of a well-known intrinsic function.
// Overloaded intrinsics have one concrete declaration per distinct set of
// overload type arguments.
type Intrinsic struct {
	Name       string
	Overloaded bool
	Variadic   bool
	Sig        []SigTok
}

var intrinsics = map[string]*Intrinsic{}

func register(in *Intrinsic) {
	intrinsics[in.Name] = in
}

func init() {
	register(&Intrinsic{
		Name:       "gl.sqrt",
		Overloaded: true,
		Sig:        []SigTok{Any(ClassAnyFloat), MatchPrev(0)},
	})
	register(&Intrinsic{
		Name:       "gl.fabs",
		Overloaded: true,
		Sig:        []SigTok{Any(ClassAnyFloat), MatchPrev(0)},
	})
	register(&Intrinsic{
		Name:       "gl.pow",
		Overloaded: true,
		Sig:        []SigTok{Any(ClassAnyFloat), MatchPrev(0), MatchPrev(0)},
	})
	register(&Intrinsic{
		Name:       "gl.ctpop",
		Overloaded: true,
		Sig:        []SigTok{Any(ClassAnyInt), MatchPrev(0)},
	})
	register(&Intrinsic{
		Name:       "gl.smax",
		Overloaded: true,
		Sig:        []SigTok{Any(ClassAnyInt), MatchPrev(0), MatchPrev(0)},
	})
	register(&Intrinsic{
		Name:       "gl.umin",
		Overloaded: true,
		Sig:        []SigTok{Any(ClassAnyInt), MatchPrev(0), MatchPrev(0)},
	})
	register(&Intrinsic{
		Name:       "gl.expect",
		Overloaded: true,
		Sig:        []SigTok{Any(ClassAnyInt), MatchPrev(0), MatchPrev(0)},
	})
	register(&Intrinsic{
		Name:       "gl.memcpy",
		Overloaded: true,
		Sig: []SigTok{
			VoidTok(),
			Fixed(NewPointer(I8)),
			Fixed(NewPointer(I8)),
			Any(ClassAnyInt),
			Fixed(I1),
		},
	})
	register(&Intrinsic{
		Name:       "gl.assume",
		Overloaded: false,
		Sig:        []SigTok{VoidTok(), Fixed(I1)},
	})
	register(&Intrinsic{
		Name:       "gl.donothing",
		Overloaded: false,
		Sig:        []SigTok{VoidTok()},
	})
	register(&Intrinsic{
		Name:       "gl.trap",
		Overloaded: false,
		Sig:        []SigTok{VoidTok()},
	})
}

// LookupIntrinsic returns the descriptor for an intrinsic name.
func LookupIntrinsic(name string) (*Intrinsic, bool) {
	in, ok := intrinsics[name]
	return in, ok
}

// Match checks a concrete call signature against the pattern table and
// recovers the overload type arguments. It reports false when the
// signature cannot instantiate this intrinsic.
func (in *Intrinsic) Match(ft *FuncType) ([]Type, bool) {
	concrete := make([]Type, 0, 1+len(ft.Params))
	concrete = append(concrete, ft.Ret)
	concrete = append(concrete, ft.Params...)
	if len(concrete) != len(in.Sig) {
		return nil, false
	}

	var overloads []Type
	for i, tok := range in.Sig {
		t := concrete[i]
		switch tok.Kind {
		case TokVoid:
			if !IsVoid(t) {
				return nil, false
			}
		case TokFixed:
			if !tok.Typ.Equal(t) {
				return nil, false
			}
		case TokAny:
			switch tok.Class {
			case ClassAnyInt:
				if _, ok := t.(*IntType); !ok {
					return nil, false
				}
			case ClassAnyFloat:
				if _, ok := t.(*FloatType); !ok {
					return nil, false
				}
			}
			overloads = append(overloads, t)
		case TokMatch:
			if tok.N >= len(overloads) || !overloads[tok.N].Equal(t) {
				return nil, false
			}
		}
	}
	return overloads, true
}

// MangledName is the module-level symbol of one concrete instantiation,
// e.g. gl.smax.i32.
func (in *Intrinsic) MangledName(overloads []Type) string {
	if !in.Overloaded {
		return in.Name
	}
	parts := make([]string, 0, 1+len(overloads))
	parts = append(parts, in.Name)
	for _, t := range overloads {
		parts = append(parts, typeSuffix(t))
	}
	return strings.Join(parts, ".")
}

func typeSuffix(t Type) string {
	switch t := t.(type) {
	case *IntType:
		return fmt.Sprintf("i%d", t.Bits)
	case *FloatType:
		if t.Kind == FloatKindDouble {
			return "f64"
		}
		return "f32"
	case *PointerType:
		return "p0" + typeSuffix(t.Elem)
	}
	return t.String()
}

// IntrinsicDecl returns the declaration of one concrete instantiation of an
// intrinsic, creating it on first use.
func (m *Module) IntrinsicDecl(in *Intrinsic, sig *FuncType, overloads []Type) *Func {
	name := in.MangledName(overloads)
	if f := m.Func(name); f != nil {
		return f
	}
	return m.NewFunc(name, sig)
}
