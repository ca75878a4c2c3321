package hir

// Attr is an operation attribute. All attribute kinds are pointer types:
// attribute identity (pointer equality) is meaningful, and the loop-metadata
// cache in package lower is keyed by it. Two structurally equal attributes
// built separately are distinct.
type Attr interface {
	isAttr()
}

// StringAttr holds a string.
type StringAttr struct {
	S string
}

func NewString(s string) *StringAttr { return &StringAttr{S: s} }
func (a *StringAttr) isAttr()        {}

// IntAttr holds an integer. Enumeration-valued attributes (predicates,
// orderings, fast-math flag sets) are stored as IntAttr of the enum value.
type IntAttr struct {
	V int64
}

func NewInt(v int64) *IntAttr { return &IntAttr{V: v} }
func (a *IntAttr) isAttr()    {}

// FloatAttr holds a float.
type FloatAttr struct {
	V float64
}

func NewFloatAttr(v float64) *FloatAttr { return &FloatAttr{V: v} }
func (a *FloatAttr) isAttr()            {}

// BoolAttr holds a boolean.
type BoolAttr struct {
	B bool
}

func NewBool(b bool) *BoolAttr { return &BoolAttr{B: b} }
func (a *BoolAttr) isAttr()    {}

// UnitAttr is a presence-only marker.
type UnitAttr struct{}

func NewUnit() *UnitAttr    { return &UnitAttr{} }
func (a *UnitAttr) isAttr() {}

// IntsAttr holds a dense list of integers (branch weights, case values,
// multi-operand loop attributes).
type IntsAttr struct {
	Vals []int64
}

func NewInts(vals ...int64) *IntsAttr { return &IntsAttr{Vals: vals} }
func (a *IntsAttr) isAttr()           {}

// ArrayAttr holds an ordered list of attributes. Entries may be nil where
// a position carries no attribute (per-operand attribute lists).
type ArrayAttr struct {
	Elems []Attr
}

func NewArrayAttr(elems ...Attr) *ArrayAttr { return &ArrayAttr{Elems: elems} }
func (a *ArrayAttr) isAttr()                {}

// DictAttr is a name-to-attribute dictionary.
type DictAttr struct {
	m map[string]Attr
}

func NewDict() *DictAttr { return &DictAttr{m: make(map[string]Attr)} }

func (a *DictAttr) isAttr() {}

// Set stores an entry.
func (a *DictAttr) Set(name string, attr Attr) *DictAttr {
	a.m[name] = attr
	return a
}

// Get returns an entry.
func (a *DictAttr) Get(name string) (Attr, bool) {
	attr, ok := a.m[name]
	return attr, ok
}

// TypeAttr holds a type.
type TypeAttr struct {
	T Type
}

func NewTypeAttr(t Type) *TypeAttr { return &TypeAttr{T: t} }
func (a *TypeAttr) isAttr()        {}

// SymbolRefAttr names a module-level symbol.
type SymbolRefAttr struct {
	Sym string
}

func NewSymbolRef(sym string) *SymbolRefAttr { return &SymbolRefAttr{Sym: sym} }
func (a *SymbolRefAttr) isAttr()             {}

// LoopOptionKind tags one structured loop-transformation option.
type LoopOptionKind uint8

const (
	LoopDisableLICM LoopOptionKind = iota
	LoopDisableUnroll
	LoopInterleaveCount
	LoopDisablePipeline
	LoopPipelineII
)

var loopOptionNames = [...]string{
	LoopDisableLICM:     "disable_licm",
	LoopDisableUnroll:   "disable_unroll",
	LoopInterleaveCount: "interleave_count",
	LoopDisablePipeline: "disable_pipeline",
	LoopPipelineII:      "pipeline_ii",
}

func (k LoopOptionKind) String() string { return loopOptionNames[k] }

// LoopOption is one option with its integer payload.
type LoopOption struct {
	Kind LoopOptionKind
	V    int64
}

// LoopOptionsAttr holds structured loop-transformation options.
type LoopOptionsAttr struct {
	Opts []LoopOption
}

func NewLoopOptions(opts ...LoopOption) *LoopOptionsAttr {
	return &LoopOptionsAttr{Opts: opts}
}

func (a *LoopOptionsAttr) isAttr() {}
