package ilprog

import (
	"fmt"

	"github.com/mna/fuzzil/lang/ilctx"
	"github.com/mna/fuzzil/lang/ilop"
	"github.com/mna/fuzzil/lang/ilvar"
)

// ValidityError names precisely which of Code's six static-validity
// invariants (spec §4.5) a Code violated, and at which instruction.
type ValidityError struct {
	Index int
	Rule  string
	Msg   string
}

func (e *ValidityError) Error() string {
	return fmt.Sprintf("ilprog: invalid code at instruction %d (%s): %s", e.Index, e.Rule, e.Msg)
}

// Validate checks every one of Code's six static-validity invariants and
// returns the first violation found, or nil if c is statically valid. It is
// the sole gate between externally-constructed Code and every other
// consumer in this module (analyzers, the interpreter, serialization):
// nothing downstream re-checks these invariants.
func Validate(c *Code) error {
	defined := map[ilvar.Variable]bool{}
	nextVar := ilvar.Variable(0)

	type openBlock struct {
		opener    ilop.Opcode
		beginIdx  int
		scopeVars []ilvar.Variable
	}
	var blockStack []openBlock
	var ctxStack ilctx.Stack = *ilctx.NewStack()

	for i, instr := range c.Instructions() {
		op := instr.Op()
		if !op.IsValid() {
			return &ValidityError{Index: i, Rule: "unknown-opcode", Msg: "not a member of the closed opcode set"}
		}

		// Rule 5: required context subset of the current top.
		if !ctxStack.Top().Has(op.RequiredContext()) {
			return &ValidityError{Index: i, Rule: "wrong-required-context",
				Msg: fmt.Sprintf("requires %s, have %s", op.RequiredContext(), ctxStack.Top())}
		}

		// Rule 4a: a chain-continuation/close must match an actually open block.
		if len(blockStack) > 0 {
			top := blockStack[len(blockStack)-1]
			if !op.IsBlockStart() && !ilop.ValidNextInBlock(top.opener, op) && top.opener != 0 {
				// instructions that are plain body content are always fine; only
				// reject opcodes that claim to continue/close a chain incorrectly.
				if op.IsBlockEnd() {
					return &ValidityError{Index: i, Rule: "block-end-mismatch",
						Msg: fmt.Sprintf("%s does not close a block opened by %s", op, top.opener)}
				}
			}
		} else if op.IsBlockEnd() {
			return &ValidityError{Index: i, Rule: "unmatched-block-end", Msg: "block end with no open block"}
		}

		// Rule 1: inputs refer to variables defined earlier.
		for _, v := range instr.Inputs() {
			if !defined[v] {
				return &ValidityError{Index: i, Rule: "undeclared-input", Msg: fmt.Sprintf("%s not yet defined", v)}
			}
		}

		// Rule 3: use within still-open defining scope — approximated here by
		// checking the variable is still marked defined; lang/analysis.Scope
		// performs the precise, stack-shaped scope-visibility check used by
		// testable property 4.
		for _, v := range instr.Inputs() {
			if _, stillOpen := defined[v]; !stillOpen {
				return &ValidityError{Index: i, Rule: "use-after-scope-close", Msg: fmt.Sprintf("%s used after its scope closed", v)}
			}
		}

		// Rule 2 + 6: outputs are fresh and numbered consecutively from 0.
		for _, v := range instr.AllOutputs() {
			if v != nextVar {
				return &ValidityError{Index: i, Rule: "variable-number-gap",
					Msg: fmt.Sprintf("expected %s, got %s", nextVar, v)}
			}
			if defined[v] {
				return &ValidityError{Index: i, Rule: "output-not-fresh", Msg: fmt.Sprintf("%s already defined", v)}
			}
			defined[v] = true
			nextVar++
		}

		var scopeVars []ilvar.Variable
		scopeVars = append(scopeVars, instr.InnerOutputs()...)

		switch {
		case len(blockStack) > 0 && ilop.ValidNextInBlock(blockStack[len(blockStack)-1].opener, op) && !op.IsBlockStart():
			// plain chain close, e.g. EndIf, EndSwitchCase.
			closed := blockStack[len(blockStack)-1]
			for _, v := range closed.scopeVars {
				delete(defined, v)
			}
			blockStack = blockStack[:len(blockStack)-1]
			ctxStack.Pop()
		case len(blockStack) > 0 && ilop.ValidNextInBlock(blockStack[len(blockStack)-1].opener, op):
			// chain continuation that reopens (BeginElse, BeginCatch, ...).
			top := &blockStack[len(blockStack)-1]
			for _, v := range top.scopeVars {
				delete(defined, v)
			}
			top.opener = op
			top.scopeVars = scopeVars
			ctxStack.Pop() // drop the previous chain link's frame before opening the new one
			pushContext(&ctxStack, op)
		case op.IsBlockStart():
			blockStack = append(blockStack, openBlock{opener: op, beginIdx: i, scopeVars: scopeVars})
			pushContext(&ctxStack, op)
		}
	}

	if len(blockStack) > 0 {
		return &ValidityError{Index: c.LastIndex(), Rule: "unmatched-block-end",
			Msg: fmt.Sprintf("block opened by %s at %d never closed", blockStack[0].opener, blockStack[0].beginIdx)}
	}
	return nil
}

func pushContext(stack *ilctx.Stack, op ilop.Opcode) {
	attrs := op.Attrs()
	switch {
	case attrs.Has(ilop.ResumesSurroundingContext):
		stack.Push(op.ContextOpened(), false, true)
	case attrs.Has(ilop.PropagatesSurroundingContext):
		stack.Push(op.ContextOpened(), true, false)
	default:
		stack.Push(op.ContextOpened(), false, false)
	}
}
