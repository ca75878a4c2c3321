package hir

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Module file schema. Values are referenced by name; a name is defined by
// a block argument or an op result before any operand references it.
type yamlModule struct {
	Name      string       `yaml:"name"`
	Globals   []yamlGlobal `yaml:"globals"`
	Functions []yamlFunc   `yaml:"functions"`
}

type yamlGlobal struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type yamlFunc struct {
	Name   string      `yaml:"name"`
	Type   string      `yaml:"type"`
	Blocks []yamlBlock `yaml:"blocks"`
}

type yamlBlock struct {
	Name string      `yaml:"name"`
	Args []yamlValue `yaml:"args"`
	Ops  []yamlOp    `yaml:"ops"`
}

type yamlValue struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type yamlOp struct {
	Op         string         `yaml:"op"`
	Operands   []string       `yaml:"operands"`
	Result     *yamlValue     `yaml:"result"`
	Attrs      map[string]any `yaml:"attrs"`
	Successors []yamlSucc     `yaml:"successors"`
}

type yamlSucc struct {
	Dest string   `yaml:"dest"`
	Args []string `yaml:"args"`
}

// DecodeYAML parses a module file.
func DecodeYAML(data []byte) (*Module, error) {
	var ym yamlModule
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return nil, fmt.Errorf("parse module: %w", err)
	}

	m := &Module{Name: ym.Name}
	for _, yg := range ym.Globals {
		t, err := ParseType(yg.Type)
		if err != nil {
			return nil, fmt.Errorf("global %s: %w", yg.Name, err)
		}
		m.Globals = append(m.Globals, &Global{Name: yg.Name, Typ: t})
	}
	for _, yf := range ym.Functions {
		f, err := decodeFunc(yf)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", yf.Name, err)
		}
		m.Funcs = append(m.Funcs, f)
	}
	return m, nil
}

func decodeFunc(yf yamlFunc) (*Func, error) {
	t, err := ParseType(yf.Type)
	if err != nil {
		return nil, err
	}
	ft, ok := t.(*FuncType)
	if !ok {
		return nil, fmt.Errorf("type %q is not a function type", yf.Type)
	}
	f := &Func{Name: yf.Name, Typ: ft}

	d := &decoder{
		values: make(map[string]*Value),
		blocks: make(map[string]*Block),
	}

	// Blocks and their arguments first, so forward branches resolve.
	for _, yb := range yf.Blocks {
		if _, dup := d.blocks[yb.Name]; dup {
			return nil, fmt.Errorf("duplicate block %q", yb.Name)
		}
		args := make([]*Value, len(yb.Args))
		for i, ya := range yb.Args {
			v, err := d.defineValue(ya)
			if err != nil {
				return nil, fmt.Errorf("block %s: %w", yb.Name, err)
			}
			args[i] = v
		}
		b := NewBlock(yb.Name, args...)
		d.blocks[yb.Name] = b
		f.Blocks = append(f.Blocks, b)
	}

	for _, yb := range yf.Blocks {
		b := d.blocks[yb.Name]
		for _, yo := range yb.Ops {
			op, err := d.decodeOp(yo)
			if err != nil {
				return nil, fmt.Errorf("block %s: op %s: %w", yb.Name, yo.Op, err)
			}
			b.Append(op)
		}
	}
	return f, nil
}

type decoder struct {
	values map[string]*Value
	blocks map[string]*Block
}

func (d *decoder) defineValue(yv yamlValue) (*Value, error) {
	if _, dup := d.values[yv.Name]; dup {
		return nil, fmt.Errorf("duplicate value %q", yv.Name)
	}
	t, err := ParseType(yv.Type)
	if err != nil {
		return nil, fmt.Errorf("value %s: %w", yv.Name, err)
	}
	v := NewValue(yv.Name, t)
	d.values[yv.Name] = v
	return v, nil
}

func (d *decoder) lookupValue(name string) (*Value, error) {
	v, ok := d.values[name]
	if !ok {
		return nil, fmt.Errorf("undefined value %q", name)
	}
	return v, nil
}

func (d *decoder) lookupBlock(name string) (*Block, error) {
	b, ok := d.blocks[name]
	if !ok {
		return nil, fmt.Errorf("undefined block %q", name)
	}
	return b, nil
}

func (d *decoder) decodeOp(yo yamlOp) (Op, error) {
	operands := make([]*Value, len(yo.Operands))
	for i, name := range yo.Operands {
		v, err := d.lookupValue(name)
		if err != nil {
			return nil, err
		}
		operands[i] = v
	}

	var result *Value
	if yo.Result != nil {
		v, err := d.defineValue(*yo.Result)
		if err != nil {
			return nil, err
		}
		result = v
	}
	var results []*Value
	if result != nil {
		results = []*Value{result}
	}

	var op Op
	base := newOperation(yo.Op, operands, results)
	switch yo.Op {
	case "hl.call":
		op = &Call{Operation: base}
	case "hl.invoke":
		op = &Invoke{Operation: base}
	case "hl.inline_asm":
		op = &InlineAsm{Operation: base}
	case "hl.br":
		op = &Br{Operation: base}
	case "hl.cond_br":
		op = &CondBr{Operation: base}
	case "hl.switch":
		op = &Switch{Operation: base}
	case "hl.landingpad":
		op = &LandingPad{Operation: base}
	case "hl.addressof":
		op = &AddressOf{Operation: base}
	case "hl.call_intrinsic":
		op = &CallIntrinsic{Operation: base}
	default:
		op = &Generic{Operation: base}
	}

	inner := innerOperation(op)
	for _, ys := range yo.Successors {
		dest, err := d.lookupBlock(ys.Dest)
		if err != nil {
			return nil, err
		}
		args := make([]*Value, len(ys.Args))
		for i, name := range ys.Args {
			v, err := d.lookupValue(name)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		inner.addSuccessor(dest, args)
	}

	for name, raw := range yo.Attrs {
		attr, err := decodeAttr(yo.Op, name, raw)
		if err != nil {
			return nil, fmt.Errorf("attr %s: %w", name, err)
		}
		inner.SetAttr(name, attr)
	}
	return op, nil
}

func innerOperation(op Op) *Operation {
	switch op := op.(type) {
	case *Generic:
		return &op.Operation
	case *Call:
		return &op.Operation
	case *Invoke:
		return &op.Operation
	case *InlineAsm:
		return &op.Operation
	case *Br:
		return &op.Operation
	case *CondBr:
		return &op.Operation
	case *Switch:
		return &op.Operation
	case *LandingPad:
		return &op.Operation
	case *AddressOf:
		return &op.Operation
	case *CallIntrinsic:
		return &op.Operation
	}
	panic(fmt.Sprintf("unknown op kind %T", op))
}

// decodeAttr converts a raw YAML attribute value. Enumeration-valued
// attributes are written as their names and stored as IntAttr.
func decodeAttr(opName, name string, raw any) (Attr, error) {
	switch name {
	case "predicate":
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("predicate must be a string")
		}
		if opName == "hl.fcmp" {
			p, err := ParseFPred(s)
			if err != nil {
				return nil, err
			}
			return NewInt(int64(p)), nil
		}
		p, err := ParseIPred(s)
		if err != nil {
			return nil, err
		}
		return NewInt(int64(p)), nil
	case "bin_op":
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("bin_op must be a string")
		}
		op, err := ParseAtomicOp(s)
		if err != nil {
			return nil, err
		}
		return NewInt(int64(op)), nil
	case "ordering":
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("ordering must be a string")
		}
		o, err := ParseOrdering(s)
		if err != nil {
			return nil, err
		}
		return NewInt(int64(o)), nil
	case "fastmath":
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("fastmath must be a string")
		}
		f, err := ParseFastMath(s)
		if err != nil {
			return nil, err
		}
		return NewInt(int64(f)), nil
	case "asm_dialect":
		switch raw {
		case "att":
			return NewInt(int64(DialectATT)), nil
		case "intel":
			return NewInt(int64(DialectIntel)), nil
		}
		return nil, fmt.Errorf("asm_dialect must be \"att\" or \"intel\"")
	case "callee", "symbol":
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be a string", name)
		}
		return NewSymbolRef(s), nil
	case "loop":
		return decodeLoopAttr(raw)
	case "operand_attrs":
		return decodeOperandAttrs(raw)
	}
	return decodePlainAttr(raw)
}

func decodePlainAttr(raw any) (Attr, error) {
	switch v := raw.(type) {
	case nil:
		return NewUnit(), nil
	case bool:
		return NewBool(v), nil
	case int:
		return NewInt(int64(v)), nil
	case int64:
		return NewInt(v), nil
	case float64:
		return NewFloatAttr(v), nil
	case string:
		return NewString(v), nil
	case []any:
		vals := make([]int64, len(v))
		for i, e := range v {
			switch n := e.(type) {
			case int:
				vals[i] = int64(n)
			case int64:
				vals[i] = n
			default:
				return nil, fmt.Errorf("list attribute element %d is not an integer", i)
			}
		}
		return NewInts(vals...), nil
	}
	return nil, fmt.Errorf("unsupported attribute value %T", raw)
}

// decodeLoopAttr parses the loop-annotation dictionary. Keys other than
// "options" map straight to attributes; "options" holds the structured
// transformation options.
func decodeLoopAttr(raw any) (Attr, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("loop attribute must be a mapping")
	}
	dict := NewDict()
	for key, val := range m {
		if key == "options" {
			opts, err := decodeLoopOptions(val)
			if err != nil {
				return nil, err
			}
			dict.Set(key, opts)
			continue
		}
		attr, err := decodePlainAttr(val)
		if err != nil {
			return nil, fmt.Errorf("loop attribute %s: %w", key, err)
		}
		dict.Set(key, attr)
	}
	return dict, nil
}

func decodeLoopOptions(raw any) (*LoopOptionsAttr, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("loop options must be a list")
	}
	attr := &LoopOptionsAttr{}
	for i, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("loop option %d must be a mapping", i)
		}
		kindName, _ := m["kind"].(string)
		var kind LoopOptionKind
		found := false
		for k, name := range loopOptionNames {
			if name == kindName {
				kind = LoopOptionKind(k)
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("loop option %d: unknown kind %q", i, kindName)
		}
		var v int64
		switch n := m["value"].(type) {
		case int:
			v = int64(n)
		case int64:
			v = n
		case bool:
			if n {
				v = 1
			}
		case nil:
		default:
			return nil, fmt.Errorf("loop option %d: value is not an integer", i)
		}
		attr.Opts = append(attr.Opts, LoopOption{Kind: kind, V: v})
	}
	return attr, nil
}

// decodeOperandAttrs parses the per-operand attribute list of an inline-asm
// op. Entries are null or a mapping; an "elementtype" entry holds a type.
func decodeOperandAttrs(raw any) (Attr, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("operand_attrs must be a list")
	}
	elems := make([]Attr, len(list))
	for i, e := range list {
		if e == nil {
			continue
		}
		m, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("operand_attrs entry %d must be null or a mapping", i)
		}
		dict := NewDict()
		for key, val := range m {
			if key == "elementtype" {
				s, ok := val.(string)
				if !ok {
					return nil, fmt.Errorf("operand_attrs entry %d: elementtype must be a type string", i)
				}
				t, err := ParseType(s)
				if err != nil {
					return nil, fmt.Errorf("operand_attrs entry %d: %w", i, err)
				}
				dict.Set(key, NewTypeAttr(t))
				continue
			}
			attr, err := decodePlainAttr(val)
			if err != nil {
				return nil, fmt.Errorf("operand_attrs entry %d: %w", i, err)
			}
			dict.Set(key, attr)
		}
		elems[i] = dict
	}
	return NewArrayAttr(elems...), nil
}
