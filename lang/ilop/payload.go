package ilop

import "github.com/mna/fuzzil/lang/iltype"

// Payload carries the instance-specific data an Operation needs beyond what
// its Opcode's Descriptor fixes: a literal's value, a property's name, the
// operator an arithmetic instruction applies, a function's parameter list.
// Most opcodes (anything whose behavior is fully pinned down by its operands
// and its opcode) have a nil payload.
type Payload interface {
	payload()
}

type IntegerLiteral struct{ Value int64 }
type BigIntLiteral struct{ Value string } // decimal digits, arbitrary precision
type FloatLiteral struct{ Value float64 }
type StringLiteral struct{ Value string }
type BooleanLiteral struct{ Value bool }
type RegExpLiteral struct {
	Pattern string
	Flags   string
}

type PropertyName struct{ Name string }
type ElementIndex struct{ Index int64 }
type NamedVariableName struct{ Name string }

type UnaryOp struct{ Operator UnaryOperator }
type BinaryOp struct{ Operator BinaryOperator }
type CompareOp struct{ Operator Comparator }

// Guarded marks a call-family instruction as wrapped in a try/guard so a
// thrown exception is swallowed rather than propagated (spec's "guarded
// call" flag).
type Guarded struct{ IsGuarded bool }

type FunctionSignature struct{ Signature iltype.Signature }

type ClassDefinition struct {
	HasSuperclass bool
}

type SwitchCaseValue struct {
	Value int64 // case label, meaningful only for BeginSwitchCase
}

type DestructurePattern struct {
	// HasRestElement reports whether the last output slot receives the
	// remaining elements/properties rather than one named one.
	HasRestElement bool
	// Indices (for array destructuring) or Names (for object destructuring)
	// select which positions/properties are bound; a "" entry is a hole.
	Indices []int64
	Names   []string
}

type WasmGlobalDef struct {
	ValueType iltype.BaseBits
	Mutable   bool
	IsImport  bool
}

type WasmMemoryDef struct {
	MinPages, MaxPages uint32
	HasMax             bool
	Shared             bool
	IsImport           bool
}

type WasmTableDef struct {
	ElementType iltype.BaseBits
	MinSize     uint32
	IsImport    bool
}

type WasmTagDef struct{ ParameterTypes []iltype.BaseBits }

type WasmValueType struct{ Type iltype.BaseBits }

type WasmI32BinaryOpKind uint8
type WasmI64BinaryOpKind uint8
type WasmF32BinaryOpKind uint8
type WasmF64BinaryOpKind uint8
type WasmI32UnaryOpKind uint8
type WasmI64UnaryOpKind uint8
type WasmF32UnaryOpKind uint8
type WasmF64UnaryOpKind uint8
type WasmCompareOpKind uint8

const (
	WasmAdd WasmI32BinaryOpKind = iota
	WasmSub
	WasmMul
	WasmDivS
	WasmDivU
	WasmRemS
	WasmRemU
	WasmAnd
	WasmOr
	WasmXor
	WasmShl
	WasmShrS
	WasmShrU
	WasmRotl
	WasmRotr
)

const (
	WasmEq WasmCompareOpKind = iota
	WasmNe
	WasmLtS
	WasmLtU
	WasmLeS
	WasmLeU
	WasmGtS
	WasmGtU
	WasmGeS
	WasmGeU
)

type WasmBinOp struct{ Kind WasmI32BinaryOpKind }
type WasmUnOp struct{ Kind WasmI32UnaryOpKind }
type WasmCompareOp struct{ Kind WasmCompareOpKind }

func (IntegerLiteral) payload()      {}
func (BigIntLiteral) payload()       {}
func (FloatLiteral) payload()        {}
func (StringLiteral) payload()       {}
func (BooleanLiteral) payload()      {}
func (RegExpLiteral) payload()       {}
func (PropertyName) payload()        {}
func (ElementIndex) payload()        {}
func (NamedVariableName) payload()   {}
func (UnaryOp) payload()             {}
func (BinaryOp) payload()            {}
func (CompareOp) payload()           {}
func (Guarded) payload()             {}
func (FunctionSignature) payload()   {}
func (ClassDefinition) payload()     {}
func (SwitchCaseValue) payload()     {}
func (DestructurePattern) payload()  {}
func (WasmGlobalDef) payload()       {}
func (WasmMemoryDef) payload()       {}
func (WasmTableDef) payload()        {}
func (WasmTagDef) payload()          {}
func (WasmValueType) payload()       {}
func (WasmBinOp) payload()           {}
func (WasmUnOp) payload()            {}
func (WasmCompareOp) payload()       {}
