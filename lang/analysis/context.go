package analysis

import (
	"github.com/mna/fuzzil/lang/ilctx"
	"github.com/mna/fuzzil/lang/ilop"
	"github.com/mna/fuzzil/lang/ilprog"
)

// Context tracks the Context bitset active at every instruction, mirroring
// the push/pop rules ilprog.Validate already enforces statically (spec
// §4.2). It is kept as its own analyzer, rather than folded into Validate,
// so that later passes (the abstract interpreter, a wasm lifter) can query
// the context active at an arbitrary already-visited instruction without
// re-deriving it.
type Context struct {
	stack ilctx.Stack
}

// NewContext returns a Context analyzer initialized to [javascript].
func NewContext() *Context {
	return &Context{stack: *ilctx.NewStack()}
}

// Feed drives the analyzer with one instruction of an already
// statically-valid Code. It returns the context active while executing
// instr itself (i.e. the top of stack before instr's own push, if any).
func (c *Context) Feed(instr ilprog.Instruction) ilctx.Set {
	op := instr.Op()
	active := c.stack.Top()

	if op.IsBlockEnd() && !op.IsBlockStart() {
		c.stack.Pop()
		active = c.stack.Top()
	}
	if op.IsBlockStart() {
		if op.Attrs().Has(ilop.IsBlockEnd) {
			c.stack.Pop()
		}
		switch {
		case op.Attrs().Has(ilop.ResumesSurroundingContext):
			c.stack.Push(op.ContextOpened(), false, true)
		case op.Attrs().Has(ilop.PropagatesSurroundingContext):
			c.stack.Push(op.ContextOpened(), true, false)
		default:
			c.stack.Push(op.ContextOpened(), false, false)
		}
	}
	return active
}

// Current returns the context bitset active right now (after the most
// recently fed instruction's own effect on the stack).
func (c *Context) Current() ilctx.Set { return c.stack.Top() }

// Depth returns the number of open context frames.
func (c *Context) Depth() int { return c.stack.Depth() }
