package lower

import (
	"fmt"

	"github.com/glacier-ir/glacier/hir"
	"github.com/glacier-ir/glacier/lir"
)

// convertType lowers an HIR type. Input modules are verified upstream, so
// an unknown type kind is an internal-consistency violation.
func convertType(t hir.Type) lir.Type {
	switch t := t.(type) {
	case *hir.VoidType:
		return lir.Void
	case *hir.IntType:
		return lir.IntN(t.Bits)
	case *hir.FloatType:
		if t.Kind == hir.FloatKindDouble {
			return lir.Double
		}
		return lir.Float
	case *hir.PointerType:
		return lir.NewPointer(convertType(t.Elem))
	case *hir.FuncType:
		return convertFuncType(t)
	case *hir.StructType:
		fields := make([]lir.Type, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = convertType(f)
		}
		return lir.NewStruct(fields...)
	}
	panic(fmt.Sprintf("unknown type %T", t))
}

func convertFuncType(t *hir.FuncType) *lir.FuncType {
	params := make([]lir.Type, len(t.Params))
	for i, p := range t.Params {
		params[i] = convertType(p)
	}
	ft := lir.NewFunc(convertType(t.Ret), params...)
	ft.Variadic = t.Variadic
	return ft
}
