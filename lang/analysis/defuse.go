// Package analysis implements the stateful, single-pass analyzers of spec
// §4.2: DefUse, Scope, Context and DeadCode. Every analyzer here is fail-fast
// — it assumes its input Code has already passed ilprog.Validate once, and
// panics rather than returning an error if fed instructions out of order
// with respect to that precondition.
package analysis

import (
	"fmt"

	"github.com/mna/fuzzil/lang/ilop"
	"github.com/mna/fuzzil/lang/ilprog"
	"github.com/mna/fuzzil/lang/ilvar"
)

// DefUse tracks, for every variable, its single defining instruction, every
// index at which it is reassigned, and every index at which it is used as
// an input.
type DefUse struct {
	defs      *ilvar.Map[int]
	reassigns *ilvar.Map[[]int]
	uses      *ilvar.Map[[]int]
}

// NewDefUse returns an empty DefUse analyzer.
func NewDefUse() *DefUse {
	return &DefUse{
		defs:      ilvar.NewMap[int](0),
		reassigns: ilvar.NewMap[[]int](0),
		uses:      ilvar.NewMap[[]int](0),
	}
}

// Feed drives the analyzer with one instruction at index i of an already
// statically-valid Code.
func (d *DefUse) Feed(i int, instr ilprog.Instruction) {
	for _, v := range instr.Inputs() {
		uses, _ := d.uses.Get(v)
		d.uses.Set(v, append(uses, i))
	}
	if instr.Op() == ilop.OpReassign {
		ins := instr.Inputs()
		if len(ins) != 2 {
			panic("analysis: Reassign without two inputs")
		}
		target := ins[0]
		rs, _ := d.reassigns.Get(target)
		d.reassigns.Set(target, append(rs, i))
		return
	}
	for _, v := range instr.AllOutputs() {
		if d.defs.Has(v) {
			panic(fmt.Sprintf("analysis: %s defined twice; input was not statically valid", v))
		}
		d.defs.Set(v, i)
	}
}

// Analyze drives d over every instruction of c in order. Convenience for
// callers that don't need to interleave DefUse with other analyzers.
func Analyze(d *DefUse, c *ilprog.Code) {
	for i, instr := range c.Instructions() {
		d.Feed(i, instr)
	}
}

// Definition returns the instruction index that defines v. Panics if v was
// never defined.
func (d *DefUse) Definition(v ilvar.Variable) int {
	idx, ok := d.defs.Get(v)
	if !ok {
		panic(fmt.Sprintf("analysis: %s has no recorded definition", v))
	}
	return idx
}

// Assignments returns the indices at which v was reassigned, in order.
func (d *DefUse) Assignments(v ilvar.Variable) []int {
	d.requireKnown(v)
	rs, _ := d.reassigns.Get(v)
	return rs
}

// Uses returns the indices at which v was used as an input, in order.
func (d *DefUse) Uses(v ilvar.Variable) []int {
	d.requireKnown(v)
	us, _ := d.uses.Get(v)
	return us
}

func (d *DefUse) requireKnown(v ilvar.Variable) {
	if !d.defs.Has(v) {
		panic(fmt.Sprintf("analysis: %s is not a variable of this code", v))
	}
}

// NumUses returns len(Uses(v)).
func (d *DefUse) NumUses(v ilvar.Variable) int { return len(d.Uses(v)) }
