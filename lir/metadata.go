package lir

// MDNode is a metadata node that can be attached to an instruction.
type MDNode interface {
	mdnode()
}

// MDField is anything that can appear as a tuple field.
type MDField interface {
	mdfield()
}

// MDAttachment binds a node to an instruction under a metadata kind.
type MDAttachment struct {
	Kind string
	Node MDNode
}

// MDTuple is an ordered metadata tuple. A tuple may reference itself: loop
// identification nodes hold themselves as their first field.
type MDTuple struct {
	Distinct bool
	Fields   []MDField
}

// NewTuple builds a (non-distinct) tuple.
func NewTuple(fields ...MDField) *MDTuple {
	return &MDTuple{Fields: fields}
}

func (t *MDTuple) mdnode()  {}
func (t *MDTuple) mdfield() {}

// MDString is a metadata string.
type MDString struct {
	S string
}

// NewMDString builds a metadata string.
func NewMDString(s string) *MDString {
	return &MDString{S: s}
}

func (s *MDString) mdnode()  {}
func (s *MDString) mdfield() {}

// MDInt is an integer constant used as metadata.
type MDInt struct {
	Typ *IntType
	V   int64
}

// NewMDInt builds a constant-as-metadata integer.
func NewMDInt(typ *IntType, v int64) *MDInt {
	return &MDInt{Typ: typ, V: v}
}

func (n *MDInt) mdnode()  {}
func (n *MDInt) mdfield() {}
