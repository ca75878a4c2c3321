package lower

import (
	"fmt"

	"github.com/glacier-ir/glacier/hir"
	"github.com/glacier-ir/glacier/lir"
)

// convertCallIntrinsic lowers an intrinsic call. For an overloaded
// intrinsic the call's concrete signature is matched against the
// descriptor's pattern table to recover the overload type arguments; a
// mismatch is a reportable error on this operation. The concrete
// declaration is created in the module on first use.
func convertCallIntrinsic(op *hir.CallIntrinsic, ctx *Context, b *lir.Builder) error {
	name := op.Intrin()
	in, ok := lir.LookupIntrinsic(name)
	if !ok {
		return fmt.Errorf("unknown intrinsic %q", name)
	}
	if in.Variadic {
		return fmt.Errorf("variadic intrinsic %q is not supported", name)
	}

	args := ctx.LookupValues(op.Operands())
	params := make([]lir.Type, len(args))
	for i, a := range args {
		params[i] = a.Type()
	}
	var ret lir.Type = lir.Void
	results := op.Results()
	if len(results) == 1 {
		ret = convertType(results[0].Type())
	}
	sig := lir.NewFunc(ret, params...)

	var overloads []lir.Type
	if in.Overloaded {
		overloads, ok = in.Match(sig)
		if !ok {
			return fmt.Errorf("intrinsic %s cannot be instantiated for %s", name, sig)
		}
	}
	decl := ctx.Module().IntrinsicDecl(in, sig, overloads)
	call := b.NewCall(decl, sig, args...)
	if len(results) == 1 {
		ctx.MapValue(results[0], call)
	}
	return nil
}
