package analysis

import (
	"github.com/mna/fuzzil/lang/ilop"
	"github.com/mna/fuzzil/lang/ilprog"
	"github.com/mna/fuzzil/lang/ilvar"
)

// Scope tracks the stack-shaped visibility of variables as Code blocks open
// and close, answering the precise "is v usable here" question that
// ilprog.Validate only approximates (spec §4.2, testable property 4).
type Scope struct {
	stack       [][]ilvar.Variable // one slice of declared vars per open scope
	visible     []ilvar.Variable   // flat cache, rebuilt lazily
	dirty       bool
	wasmDepth   int
	wasmBlocks  []bool // per open scope: is it a wasm branch target
}

// NewScope returns a Scope analyzer with a single, empty top-level scope.
func NewScope() *Scope {
	return &Scope{stack: [][]ilvar.Variable{nil}}
}

// Feed drives the analyzer with one instruction of an already
// statically-valid Code.
func (s *Scope) Feed(instr ilprog.Instruction) {
	op := instr.Op()

	// Block-end: pop the closed scope first.
	if op.IsBlockEnd() && !op.IsBlockStart() {
		s.pop()
	}

	// Outer-scope outputs are added to the (now-current, outer) scope before
	// any new scope for this instruction's own block is pushed.
	s.declare(instr.Outputs())

	if op.IsBlockStart() {
		// a reopening chain link (BeginElse, BeginCatch, ...) replaces the
		// previous link's scope rather than nesting a new one.
		if op.Attrs().Has(ilop.IsBlockEnd) {
			s.pop()
		}
		s.push(instr.InnerOutputs(), isWasmBranchTarget(op))
	} else {
		s.declare(instr.InnerOutputs())
	}
}

func isWasmBranchTarget(op ilop.Opcode) bool {
	switch op {
	case ilop.OpBeginWasmBlock, ilop.OpBeginWasmLoop, ilop.OpBeginWasmFunction, ilop.OpBeginWasmIf, ilop.OpBeginWasmElse:
		return true
	default:
		return false
	}
}

func (s *Scope) push(innerOutputs []ilvar.Variable, isWasmTarget bool) {
	s.stack = append(s.stack, append([]ilvar.Variable(nil), innerOutputs...))
	s.wasmBlocks = append(s.wasmBlocks, isWasmTarget)
	if isWasmTarget {
		s.wasmDepth++
	}
	s.dirty = true
}

func (s *Scope) pop() {
	if len(s.stack) <= 1 {
		panic("analysis: Scope popped past the top-level scope; input was not statically valid")
	}
	if len(s.wasmBlocks) > 0 {
		if s.wasmBlocks[len(s.wasmBlocks)-1] {
			s.wasmDepth--
		}
		s.wasmBlocks = s.wasmBlocks[:len(s.wasmBlocks)-1]
	}
	s.stack = s.stack[:len(s.stack)-1]
	s.dirty = true
}

func (s *Scope) declare(vars []ilvar.Variable) {
	if len(vars) == 0 {
		return
	}
	top := len(s.stack) - 1
	s.stack[top] = append(s.stack[top], vars...)
	s.dirty = true
}

// VisibleVariables returns the flat concatenation of every currently open
// scope, outermost first.
func (s *Scope) VisibleVariables() []ilvar.Variable {
	if s.dirty {
		s.visible = s.visible[:0]
		for _, scope := range s.stack {
			s.visible = append(s.visible, scope...)
		}
		s.dirty = false
	}
	return s.visible
}

// WasmBranchDepth returns the current nesting depth of wasm blocks that are
// valid branch targets, used by a wasm lifter to resolve relative branch
// indices.
func (s *Scope) WasmBranchDepth() int { return s.wasmDepth }
