package ilprog

import (
	"fmt"

	"github.com/mna/fuzzil/lang/ilctx"
	"github.com/mna/fuzzil/lang/ilop"
	"github.com/mna/fuzzil/lang/ilvar"
)

// BuilderError reports a Builder.Append call that would have produced
// statically-invalid Code (a required-context violation, or a chain
// continuation/close that doesn't match the innermost open block).
type BuilderError struct {
	Op  ilop.Opcode
	Msg string
}

func (e *BuilderError) Error() string {
	return fmt.Sprintf("ilprog: builder: %s: %s", e.Op, e.Msg)
}

type openBuilderBlock struct {
	opener    ilop.Opcode
	scopeVars []ilvar.Variable
}

// Builder incrementally appends Instructions to a Code, handing out fresh
// Variables and tracking the context/scope stacks itself so that anything
// it produces is statically valid by construction (Validate never has
// anything to reject on a Builder's own output). It is the minimal
// construction path for callers — tests, or an embedder without its own
// generator — that don't need a full mutation/generation pipeline.
type Builder struct {
	code       []Instruction
	nextVar    ilvar.Variable
	ctxStack   ilctx.Stack
	blockStack []openBuilderBlock
}

// NewBuilder returns an empty Builder, ready to append top-level
// instructions (initial context: ilctx.JavaScript).
func NewBuilder() *Builder {
	return &Builder{ctxStack: *ilctx.NewStack()}
}

// Context returns the context set active for the next instruction appended.
func (b *Builder) Context() ilctx.Set { return b.ctxStack.Top() }

// Depth returns the number of currently open blocks.
func (b *Builder) Depth() int { return len(b.blockStack) }

// Append builds an Operation of op with the given inputs, allocates fresh
// output and inner-output variables per op's descriptor, appends the
// resulting Instruction, and returns the allocated outputs and inner
// outputs. It returns a *BuilderError instead of appending anything if op
// cannot legally appear next (wrong context, or an End/continuation that
// doesn't match the innermost open block).
func (b *Builder) Append(op ilop.Operation, inputs []ilvar.Variable) (outputs, innerOutputs []ilvar.Variable, err error) {
	opcode := op.Op
	if !opcode.IsValid() {
		return nil, nil, &BuilderError{Op: opcode, Msg: "not a member of the closed opcode set"}
	}
	if !b.ctxStack.Top().Has(opcode.RequiredContext()) {
		return nil, nil, &BuilderError{Op: opcode, Msg: fmt.Sprintf("requires %s, have %s", opcode.RequiredContext(), b.ctxStack.Top())}
	}

	if len(b.blockStack) > 0 {
		top := b.blockStack[len(b.blockStack)-1]
		if !opcode.IsBlockStart() && opcode.IsBlockEnd() && !ilop.ValidNextInBlock(top.opener, opcode) {
			return nil, nil, &BuilderError{Op: opcode, Msg: fmt.Sprintf("does not close a block opened by %s", top.opener)}
		}
	} else if opcode.IsBlockEnd() {
		return nil, nil, &BuilderError{Op: opcode, Msg: "block end with no open block"}
	}

	outputs = b.allocate(opcode.NumOutputs())
	innerOutputs = b.allocate(opcode.NumInnerOutputs())
	instr := NewInstruction(op, inputs, outputs, innerOutputs)
	b.code = append(b.code, instr)

	var scopeVars []ilvar.Variable
	scopeVars = append(scopeVars, innerOutputs...)

	switch {
	case len(b.blockStack) > 0 && ilop.ValidNextInBlock(b.blockStack[len(b.blockStack)-1].opener, opcode) && !opcode.IsBlockStart():
		b.blockStack = b.blockStack[:len(b.blockStack)-1]
		b.ctxStack.Pop()
	case len(b.blockStack) > 0 && ilop.ValidNextInBlock(b.blockStack[len(b.blockStack)-1].opener, opcode):
		top := &b.blockStack[len(b.blockStack)-1]
		top.opener = opcode
		top.scopeVars = scopeVars
		b.ctxStack.Pop()
		b.pushContext(opcode)
	case opcode.IsBlockStart():
		b.blockStack = append(b.blockStack, openBuilderBlock{opener: opcode, scopeVars: scopeVars})
		b.pushContext(opcode)
	}

	return outputs, innerOutputs, nil
}

func (b *Builder) allocate(n int) []ilvar.Variable {
	if n == 0 {
		return nil
	}
	vars := make([]ilvar.Variable, n)
	for i := range vars {
		vars[i] = b.nextVar
		b.nextVar++
	}
	return vars
}

func (b *Builder) pushContext(op ilop.Opcode) {
	attrs := op.Attrs()
	switch {
	case attrs.Has(ilop.ResumesSurroundingContext):
		b.ctxStack.Push(op.ContextOpened(), false, true)
	case attrs.Has(ilop.PropagatesSurroundingContext):
		b.ctxStack.Push(op.ContextOpened(), true, false)
	default:
		b.ctxStack.Push(op.ContextOpened(), false, false)
	}
}

// Finish returns the Code built so far. It does not require every block to
// be closed; callers that want the same guarantee Validate gives should
// check Depth() == 0 first.
func (b *Builder) Finish() *Code {
	return NewCode(b.code)
}
