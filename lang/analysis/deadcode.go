package analysis

import (
	"github.com/mna/fuzzil/lang/ilop"
	"github.com/mna/fuzzil/lang/ilprog"
)

// DeadCode tracks whether the instruction most recently fed sits in code
// that can never execute (spec §4.2): a jump (return/throw/break/continue)
// makes everything until the enclosing block closes back down to the
// jump's own nesting depth dead.
type DeadCode struct {
	dead  bool
	depth int // relative block depth since dead mode was entered; only meaningful while dead
}

// NewDeadCode returns a DeadCode analyzer starting in live code.
func NewDeadCode() *DeadCode { return &DeadCode{} }

// Feed drives the analyzer with one instruction of an already
// statically-valid Code.
func (d *DeadCode) Feed(instr ilprog.Instruction) {
	op := instr.Op()

	if !d.dead && op.Attrs().Has(ilop.IsJump) {
		d.dead = true
		d.depth = 0
	}

	if !d.dead {
		return
	}
	switch {
	case op.IsBlockStart() && op.IsBlockEnd():
		// a chain continuation (BeginElse, BeginCatch, ...) replaces the
		// previous sibling at the same depth: net neutral, and the new
		// sibling it opens is itself live code, not dead.
		d.dead = d.depth > 0
	case op.IsBlockEnd():
		d.depth--
		if d.depth < 0 {
			d.dead = false
		}
	case op.IsBlockStart():
		d.depth++
	}
}

// CurrentlyInDeadCode reports whether the instruction last fed to Feed sits
// in unreachable code.
func (d *DeadCode) CurrentlyInDeadCode() bool { return d.dead }
