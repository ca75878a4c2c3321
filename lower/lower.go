// Package lower translates hir modules into lir instruction streams. Each
// operation is lowered by the declarative table when it is structurally
// regular, or by a dedicated emitter for the call-like and control-flow
// kinds. Shared state lives in Context.
package lower

import (
	"fmt"

	"github.com/glacier-ir/glacier/hir"
	"github.com/glacier-ir/glacier/lir"
)

// ConvertOperation lowers one operation at the builder's current insertion
// point. Operation order is fixed by the driver; operands are guaranteed
// already mapped. The first failure stops the current operation and is
// returned unchanged.
func ConvertOperation(op hir.Op, ctx *Context, b *lir.Builder) error {
	// Scope the operation's fast-math flags to this lowering. The flags
	// are restored on every exit path.
	if a, ok := op.Attr("fastmath").(*hir.IntAttr); ok {
		saved := b.FastMathFlags()
		b.SetFastMathFlags(fastMath(hir.FastMathFlags(a.V)))
		defer b.SetFastMathFlags(saved)
	}

	handled, err := lowerRegular(op, ctx, b)
	if handled || err != nil {
		return err
	}

	switch op := op.(type) {
	case *hir.Call:
		return convertCall(op, ctx, b)
	case *hir.Invoke:
		return convertInvoke(op, ctx, b)
	case *hir.InlineAsm:
		return convertInlineAsm(op, ctx, b)
	case *hir.Br:
		return convertBr(op, ctx, b)
	case *hir.CondBr:
		return convertCondBr(op, ctx, b)
	case *hir.Switch:
		return convertSwitch(op, ctx, b)
	case *hir.LandingPad:
		return convertLandingPad(op, ctx, b)
	case *hir.AddressOf:
		return convertAddressOf(op, ctx)
	case *hir.CallIntrinsic:
		return convertCallIntrinsic(op, ctx, b)
	}
	return fmt.Errorf("unsupported operation: %s", op.OpName())
}
