package lower

import (
	"fmt"

	"github.com/glacier-ir/glacier/hir"
	"github.com/glacier-ir/glacier/lir"
)

// LowerModule translates a whole hir module. Globals and function
// declarations are created first so calls and address-of operations
// resolve regardless of definition order; bodies are lowered after.
// Any single operation failure aborts the module's translation.
func LowerModule(hm *hir.Module) (*lir.Module, error) {
	m := lir.NewModule()
	ctx := NewContext(m)

	for _, g := range hm.Globals {
		m.NewGlobal(g.Name, convertType(g.Typ))
	}
	for _, f := range hm.Funcs {
		m.NewFunc(f.Name, convertFuncType(f.Typ))
	}
	for _, f := range hm.Funcs {
		if len(f.Blocks) == 0 {
			continue
		}
		if err := lowerFunc(f, m.Func(f.Name), ctx); err != nil {
			return nil, fmt.Errorf("function %s: %w", f.Name, err)
		}
	}
	return m, nil
}

// lowerFunc lowers one function body. Entry block arguments become the
// function parameters; other blocks' arguments become phis, completed from
// the predecessors' successor arguments after all operations are lowered.
func lowerFunc(hf *hir.Func, f *lir.Func, ctx *Context) error {
	entry := hf.Entry()
	if len(entry.Args) != len(f.Params) {
		panic(fmt.Sprintf("function %s: entry block has %d arguments for %d parameters",
			hf.Name, len(entry.Args), len(f.Params)))
	}
	for i, arg := range entry.Args {
		f.Params[i].Name = arg.Name()
		ctx.MapValue(arg, f.Params[i])
	}

	for _, hb := range hf.Blocks {
		ctx.MapBlock(hb, f.NewBlock(hb.Name))
	}

	b := lir.NewBuilder()

	// Phis first, so they sit at the top of their blocks.
	phis := make(map[*hir.Value]*lir.PhiInst)
	for _, hb := range hf.Blocks[1:] {
		b.SetInsertBlock(ctx.LookupBlock(hb))
		for _, arg := range hb.Args {
			phi := b.NewPhi(convertType(arg.Type()))
			ctx.MapValue(arg, phi)
			phis[arg] = phi
		}
	}

	for _, hb := range hf.Blocks {
		b.SetInsertBlock(ctx.LookupBlock(hb))
		for _, op := range hb.Ops {
			if err := ConvertOperation(op, ctx, b); err != nil {
				return fmt.Errorf("block %s: %w", hb.Name, err)
			}
		}
	}

	// Complete phi incomings from every branch's successor arguments.
	for _, hb := range hf.Blocks {
		pred := ctx.LookupBlock(hb)
		for _, op := range hb.Ops {
			for i, succ := range op.Successors() {
				args := op.SuccessorArgs(i)
				if len(args) == 0 {
					continue
				}
				if len(args) != len(succ.Args) {
					panic(fmt.Sprintf("branch to %s forwards %d values for %d block arguments",
						succ.Name, len(args), len(succ.Args)))
				}
				for j, v := range args {
					phis[succ.Args[j]].AddIncoming(ctx.LookupValue(v), pred)
				}
			}
		}
	}
	return nil
}
