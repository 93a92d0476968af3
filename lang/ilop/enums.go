package ilop

// UnaryOperator enumerates the unary operators a UnaryOperation instruction
// may carry. The integer order is part of the wire format (spec §4.6) and
// must never be renumbered once assigned; append new operators at the end.
type UnaryOperator uint8

const (
	UnaryPlus UnaryOperator = iota
	UnaryMinus
	UnaryLogicalNot
	UnaryBitwiseNot
	UnaryPreInc
	UnaryPreDec
	UnaryPostInc
	UnaryPostDec
)

var unaryOperatorNames = [...]string{
	UnaryPlus: "+", UnaryMinus: "-", UnaryLogicalNot: "!", UnaryBitwiseNot: "~",
	UnaryPreInc: "++_", UnaryPreDec: "--_", UnaryPostInc: "_++", UnaryPostDec: "_--",
}

func (u UnaryOperator) String() string { return unaryOperatorNames[u] }

// BinaryOperator enumerates the binary operators a BinaryOperation (or
// compound Update) instruction may carry. Order is part of the wire format.
type BinaryOperator uint8

const (
	BinaryAdd BinaryOperator = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMod
	BinaryExp
	BinaryBitAnd
	BinaryBitOr
	BinaryXor
	BinaryLeftShift
	BinaryRightShift
	BinaryUnsignedRightShift
	BinaryLogicalAnd
	BinaryLogicalOr
	BinaryNullishCoalesce
)

var binaryOperatorNames = [...]string{
	BinaryAdd: "+", BinarySub: "-", BinaryMul: "*", BinaryDiv: "/", BinaryMod: "%",
	BinaryExp: "**", BinaryBitAnd: "&", BinaryBitOr: "|", BinaryXor: "^",
	BinaryLeftShift: "<<", BinaryRightShift: ">>", BinaryUnsignedRightShift: ">>>",
	BinaryLogicalAnd: "&&", BinaryLogicalOr: "||", BinaryNullishCoalesce: "??",
}

func (b BinaryOperator) String() string { return binaryOperatorNames[b] }

// IsLogical reports whether b is a logical (boolean-producing fallback)
// operator rather than an arithmetic one, which changes the typer's
// BigInt-contagion fallback type (spec §4.3).
func (b BinaryOperator) IsLogical() bool {
	return b == BinaryLogicalAnd || b == BinaryLogicalOr || b == BinaryNullishCoalesce
}

// IsBitwise reports whether b is a bitwise integer operator, which never
// includes Float in its fallback type.
func (b BinaryOperator) IsBitwise() bool {
	switch b {
	case BinaryBitAnd, BinaryBitOr, BinaryXor, BinaryLeftShift, BinaryRightShift, BinaryUnsignedRightShift:
		return true
	}
	return false
}

// Comparator enumerates the relational comparison operators. Order is part
// of the wire format.
type Comparator uint8

const (
	CompareEqual Comparator = iota
	CompareNotEqual
	CompareStrictEqual
	CompareStrictNotEqual
	CompareLessThan
	CompareLessThanOrEqual
	CompareGreaterThan
	CompareGreaterThanOrEqual
)

var comparatorNames = [...]string{
	CompareEqual: "==", CompareNotEqual: "!=",
	CompareStrictEqual: "===", CompareStrictNotEqual: "!==",
	CompareLessThan: "<", CompareLessThanOrEqual: "<=",
	CompareGreaterThan: ">", CompareGreaterThanOrEqual: ">=",
}

func (c Comparator) String() string { return comparatorNames[c] }

// Parameters describes the formal parameter list opened by a function- or
// method-defining Begin operation.
type Parameters struct {
	Count   int
	HasRest bool
}
