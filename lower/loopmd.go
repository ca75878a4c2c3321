package lower

import (
	"fmt"

	"github.com/glacier-ir/glacier/hir"
	"github.com/glacier-ir/glacier/lir"
)

// loopAttrName is the structured loop-annotation dictionary attribute.
const loopAttrName = "loop"

// legacyLoopAttrs are the individually named loop-hint attributes still
// accepted for backward compatibility, in lookup priority order. Any one of
// them marks the operation as a loop terminator.
var legacyLoopAttrs = []string{
	"loop.name",
	"loop.vectorize.width",
	"loop.interleave.count",
	"loop.unroll.count",
	"loop.unroll.withoutcheck",
	"loop.vectorize.enable",
	"loop.distribute.enable",
	"loop.flatten.enable",
	"loop.dataflow.enable",
	"loop.pipeline.enable",
	"loop.latency",
	"loop.tripcount",
}

// mdTarget is any instruction that accepts metadata attachments.
type mdTarget interface {
	Attach(kind string, node lir.MDNode)
}

// setLoopMetadata attaches a loop-identification node to the branch emitted
// for op, when op carries loop hints. The node is cached by attribute
// identity: two operations referencing the same attribute object receive
// the identical node. Non-loop branches carry no attribute and attach
// nothing.
func setLoopMetadata(op hir.Op, inst mdTarget, ctx *Context) {
	attr := op.Attr(loopAttrName)
	var altAttr hir.Attr
	for _, name := range legacyLoopAttrs {
		if a := op.Attr(name); a != nil {
			altAttr = a
			break
		}
	}
	if attr == nil && altAttr == nil {
		return
	}

	var node *lir.MDTuple
	if attr != nil {
		node = ctx.LookupLoopMetadata(attr)
	}
	if node == nil && altAttr != nil {
		node = ctx.LookupLoopMetadata(altAttr)
	}
	if node == nil {
		node = buildLoopMetadata(op, attr, ctx)
		if attr != nil {
			ctx.MapLoopMetadata(attr, node)
		}
		if altAttr != nil {
			ctx.MapLoopMetadata(altAttr, node)
		}
	}
	inst.Attach("loop", node)
}

func buildLoopMetadata(op hir.Op, attr hir.Attr, ctx *Context) *lir.MDTuple {
	node := &lir.MDTuple{Distinct: true}
	// Operand 0 is the node's self reference, the idiom consumers use to
	// identify a loop.
	node.Fields = append(node.Fields, node)

	if dict, ok := attr.(*hir.DictAttr); ok {
		if pa, ok := dict.Get("parallel_accesses"); ok {
			fields := []lir.MDField{lir.NewMDString("loop.parallel_accesses")}
			arr, ok := pa.(*hir.ArrayAttr)
			if !ok {
				panic("loop parallel_accesses is not an array attribute")
			}
			for _, e := range arr.Elems {
				ref, ok := e.(*hir.SymbolRefAttr)
				if !ok {
					panic("loop parallel_accesses entry is not a symbol reference")
				}
				fields = append(fields, ctx.AccessGroup(ref.Sym))
			}
			node.Fields = append(node.Fields, lir.NewTuple(fields...))
		}
		if opts, ok := dict.Get("options"); ok {
			lo, ok := opts.(*hir.LoopOptionsAttr)
			if !ok {
				panic("loop options is not a loop-options attribute")
			}
			for _, o := range lo.Opts {
				node.Fields = append(node.Fields, loopOptionMetadata(o))
			}
		}
	}

	if a, ok := op.Attr("loop.name").(*hir.StringAttr); ok {
		node.Fields = append(node.Fields, lir.NewTuple(
			lir.NewMDString("loop.name"), lir.NewMDString(a.S)))
	}

	intEntry := func(typ *lir.IntType, name string) {
		switch a := op.Attr(name).(type) {
		case *hir.IntAttr:
			node.Fields = append(node.Fields, lir.NewTuple(
				lir.NewMDString(name), lir.NewMDInt(typ, a.V)))
		case *hir.BoolAttr:
			v := int64(0)
			if a.B {
				v = 1
			}
			node.Fields = append(node.Fields, lir.NewTuple(
				lir.NewMDString(name), lir.NewMDInt(typ, v)))
		}
	}
	intEntry(lir.I32, "loop.vectorize.width")
	intEntry(lir.I32, "loop.interleave.count")
	intEntry(lir.I32, "loop.unroll.count")
	intEntry(lir.I32, "loop.unroll.withoutcheck")
	intEntry(lir.I1, "loop.vectorize.enable")
	intEntry(lir.I1, "loop.distribute.enable")
	intEntry(lir.I1, "loop.flatten.enable")
	intEntry(lir.I1, "loop.dataflow.enable")

	unitEntry := func(name string) {
		if op.Attr(name) != nil {
			node.Fields = append(node.Fields, lir.NewTuple(lir.NewMDString(name)))
		}
	}
	unitEntry("loop.unroll.enable")
	unitEntry("loop.unroll.full")
	unitEntry("loop.unroll.disable")

	if vals := intsEntry(op, "loop.pipeline.enable", 3); vals != nil {
		node.Fields = append(node.Fields, lir.NewTuple(
			lir.NewMDString("loop.pipeline.enable"),
			lir.NewMDInt(lir.I32, vals[0]),
			lir.NewMDInt(lir.I1, vals[1]),
			lir.NewMDInt(lir.I8, vals[2])))
	}
	if vals := intsEntry(op, "loop.latency", 2); vals != nil {
		node.Fields = append(node.Fields, lir.NewTuple(
			lir.NewMDString("loop.latency"),
			lir.NewMDInt(lir.I32, vals[0]),
			lir.NewMDInt(lir.I32, vals[1])))
	}
	if vals := intsEntry(op, "loop.tripcount", 3); vals != nil {
		node.Fields = append(node.Fields, lir.NewTuple(
			lir.NewMDString("loop.tripcount"),
			lir.NewMDInt(lir.I32, vals[0]),
			lir.NewMDInt(lir.I32, vals[1]),
			lir.NewMDInt(lir.I32, vals[2])))
	}
	return node
}

// intsEntry reads a multi-operand loop attribute. A present attribute with
// too few elements is an internal-consistency violation.
func intsEntry(op hir.Op, name string, n int) []int64 {
	a, ok := op.Attr(name).(*hir.IntsAttr)
	if !ok {
		return nil
	}
	if len(a.Vals) < n {
		panic(fmt.Sprintf("attribute %s needs %d elements, has %d", name, n, len(a.Vals)))
	}
	return a.Vals
}

// loopOptionMetadata translates one structured loop option into its named
// metadata tuple.
func loopOptionMetadata(o hir.LoopOption) *lir.MDTuple {
	var name string
	var v *lir.MDInt
	switch o.Kind {
	case hir.LoopDisableLICM:
		name = "licm.disable"
		v = lir.NewMDInt(lir.I1, boolBit(o.V))
	case hir.LoopDisableUnroll:
		name = "loop.unroll.disable"
		v = lir.NewMDInt(lir.I1, boolBit(o.V))
	case hir.LoopInterleaveCount:
		name = "loop.interleave.count"
		v = lir.NewMDInt(lir.I32, o.V)
	case hir.LoopDisablePipeline:
		name = "loop.pipeline.disable"
		v = lir.NewMDInt(lir.I1, boolBit(o.V))
	case hir.LoopPipelineII:
		name = "loop.pipeline.initiationinterval"
		v = lir.NewMDInt(lir.I32, o.V)
	default:
		panic(fmt.Sprintf("unknown loop option %d", o.Kind))
	}
	return lir.NewTuple(lir.NewMDString(name), v)
}

func boolBit(v int64) int64 {
	if v != 0 {
		return 1
	}
	return 0
}
