package lower

import (
	"fmt"

	"github.com/glacier-ir/glacier/hir"
	"github.com/glacier-ir/glacier/lir"
)

// Context is the shared translation state for one module: the value and
// block maps, terminator identities, and the loop-metadata cache. Value and
// block entries are write-once; the metadata cache is append-only and lives
// for the whole translation.
type Context struct {
	mod *lir.Module

	values   map[*hir.Value]lir.Value
	blocks   map[*hir.Block]*lir.Block
	branches map[hir.Op]lir.Inst

	// loopMD is keyed by attribute identity, not structural equality: two
	// operations sharing one attribute object get the identical node.
	loopMD       map[hir.Attr]*lir.MDTuple
	accessGroups map[string]*lir.MDTuple
}

// NewContext creates the translation state for mod.
func NewContext(mod *lir.Module) *Context {
	return &Context{
		mod:          mod,
		values:       make(map[*hir.Value]lir.Value),
		blocks:       make(map[*hir.Block]*lir.Block),
		branches:     make(map[hir.Op]lir.Inst),
		loopMD:       make(map[hir.Attr]*lir.MDTuple),
		accessGroups: make(map[string]*lir.MDTuple),
	}
}

// Module returns the target module under construction.
func (c *Context) Module() *lir.Module { return c.mod }

// LookupValue resolves an already-mapped value. The driver lowers
// operations in an order that guarantees operands are mapped first, so a
// miss is an internal-consistency violation.
func (c *Context) LookupValue(v *hir.Value) lir.Value {
	lv, ok := c.values[v]
	if !ok {
		panic(fmt.Sprintf("value %s is not mapped", v.Name()))
	}
	return lv
}

// LookupValues resolves a list of values.
func (c *Context) LookupValues(vs []*hir.Value) []lir.Value {
	out := make([]lir.Value, len(vs))
	for i, v := range vs {
		out[i] = c.LookupValue(v)
	}
	return out
}

// MapValue registers a value mapping. Mappings are write-once.
func (c *Context) MapValue(v *hir.Value, lv lir.Value) {
	if _, dup := c.values[v]; dup {
		panic(fmt.Sprintf("value %s mapped twice", v.Name()))
	}
	c.values[v] = lv
}

// LookupBlock resolves an already-mapped block.
func (c *Context) LookupBlock(b *hir.Block) *lir.Block {
	lb, ok := c.blocks[b]
	if !ok {
		panic(fmt.Sprintf("block %s is not mapped", b.Name))
	}
	return lb
}

// MapBlock registers a block mapping. Mappings are write-once.
func (c *Context) MapBlock(b *hir.Block, lb *lir.Block) {
	if _, dup := c.blocks[b]; dup {
		panic(fmt.Sprintf("block %s mapped twice", b.Name))
	}
	c.blocks[b] = lb
}

// MapBranch records the terminator emitted for a control-flow operation so
// later passes can cross-reference it.
func (c *Context) MapBranch(op hir.Op, inst lir.Inst) {
	c.branches[op] = inst
}

// Branch returns the terminator recorded for op, or nil.
func (c *Context) Branch(op hir.Op) lir.Inst {
	return c.branches[op]
}

// LookupLoopMetadata returns the cached loop node for attr, or nil.
func (c *Context) LookupLoopMetadata(attr hir.Attr) *lir.MDTuple {
	return c.loopMD[attr]
}

// MapLoopMetadata caches the loop node built for attr.
func (c *Context) MapLoopMetadata(attr hir.Attr, node *lir.MDTuple) {
	c.loopMD[attr] = node
}

// AccessGroup returns the distinct access-group node for a symbol,
// creating it on first use. All parallel-access lists naming the same
// group share one node.
func (c *Context) AccessGroup(sym string) *lir.MDTuple {
	if g, ok := c.accessGroups[sym]; ok {
		return g
	}
	g := &lir.MDTuple{Distinct: true}
	c.accessGroups[sym] = g
	return g
}
