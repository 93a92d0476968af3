// Package ilprog assembles Operations (lang/ilop) and Variables (lang/ilvar)
// into Instructions, Code, and Programs, and implements the static validity
// checker that every other analysis in this module assumes already passed.
package ilprog

import (
	"fmt"
	"strings"

	"github.com/mna/fuzzil/lang/ilop"
	"github.com/mna/fuzzil/lang/ilvar"
)

// Instruction pairs an Operation with its concrete operands: a flat vector
// of [inputs | outputs | innerOutputs]. It holds no link to a block
// structure (see NewInstruction). notRemovable pins an instruction against a minimizer even when it
// appears to have no uses (e.g. the entry Nop of an empty program).
type Instruction struct {
	Operation    ilop.Operation
	vars         []ilvar.Variable
	numInputs    int
	numOutputs   int
	notRemovable bool
}

// NewInstruction builds an Instruction. inputs and outputs must each match
// the Operation's descriptor (NumInputs/NumOutputs), except for variadic
// operations where inputs must have at least NumInputs elements.
//
// Nested blocks (an if's body, a function's body, ...) are not a separate
// tree of Code values: a Begin-family Instruction is simply followed, later
// in the same flat Code, by more Instructions up to its matching End. Block
// structure is recovered on demand by scanning Begin/End nesting (see
// BlockMatcher) rather than stored redundantly on every instruction.
func NewInstruction(op ilop.Operation, inputs, outputs []ilvar.Variable, innerOutputs []ilvar.Variable) Instruction {
	vars := make([]ilvar.Variable, 0, len(inputs)+len(outputs)+len(innerOutputs))
	vars = append(vars, inputs...)
	vars = append(vars, outputs...)
	vars = append(vars, innerOutputs...)
	return Instruction{Operation: op, vars: vars, numInputs: len(inputs), numOutputs: len(outputs)}
}

// Pinned returns a copy of i marked as not removable by a minimizer.
func (i Instruction) Pinned() Instruction {
	i.notRemovable = true
	return i
}

func (i Instruction) Op() ilop.Opcode { return i.Operation.Op }

// Inputs returns the instruction's input operand variables.
func (i Instruction) Inputs() []ilvar.Variable { return i.vars[:i.numInputs] }

// Outputs returns the instruction's (non-inner) output operand variables.
func (i Instruction) Outputs() []ilvar.Variable {
	return i.vars[i.numInputs : i.numInputs+i.numOutputs]
}

// InnerOutputs returns the variables defined for use only within the nested
// block this instruction opens (e.g. a function's parameters).
func (i Instruction) InnerOutputs() []ilvar.Variable { return i.vars[i.numInputs+i.numOutputs:] }

// AllOutputs returns Outputs followed by InnerOutputs.
func (i Instruction) AllOutputs() []ilvar.Variable { return i.vars[i.numInputs:] }

// IsRemovable reports whether a minimizer may drop this instruction.
func (i Instruction) IsRemovable() bool { return !i.notRemovable }

func (i Instruction) String() string {
	var sb strings.Builder
	for _, v := range i.Outputs() {
		sb.WriteString(v.String())
		sb.WriteString(", ")
	}
	for _, v := range i.InnerOutputs() {
		sb.WriteString("> ")
		sb.WriteString(v.String())
		sb.WriteString(", ")
	}
	if sb.Len() > 0 {
		fmt.Fprint(&sb, "= ")
	}
	sb.WriteString(i.Operation.Op.String())
	for _, v := range i.Inputs() {
		sb.WriteString(" ")
		sb.WriteString(v.String())
	}
	return sb.String()
}

// InstructionDecodingError is returned by lang/serialize when a decoded
// instruction violates its opcode's fixed shape (arity, payload kind).
type InstructionDecodingError struct {
	Index int
	Op    ilop.Opcode
	Msg   string
}

func (e *InstructionDecodingError) Error() string {
	return fmt.Sprintf("ilprog: decoding instruction %d (%s): %s", e.Index, e.Op, e.Msg)
}
