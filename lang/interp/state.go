// Package interp implements the flow-sensitive abstract interpreter of spec
// §4.3: a single forward pass over an already statically-valid Code that
// keeps every visible variable's ILType current, resolving if/else,
// switch, loop and function/class-member joins through a stacked
// branch-state model.
package interp

import (
	"github.com/mna/fuzzil/lang/ilvar"
	"github.com/mna/fuzzil/lang/iltype"
)

// Change is one (variable, newType) update emitted by the interpreter for a
// single instruction.
type Change struct {
	Var  ilvar.Variable
	Type iltype.Type
}

// level is one entry of the branch-state stack: the type map snapshotted
// when the enclosing block was entered (parent), and every sibling
// alternative's completed type map (the if-branch, each switch case, ...).
type level struct {
	parent   *ilvar.Map[iltype.Type]
	siblings []*ilvar.Map[iltype.Type]
}

// pushChildState opens a body whose execution is conditional (an if's body,
// a loop body, a function body, a class constructor or method): the
// current view becomes this level's parent snapshot, and typing continues
// to mutate current directly as the body's own active state.
func (in *Interpreter) pushChildState() {
	in.levels = append(in.levels, &level{parent: in.current.Clone()})
}

// pushSiblingState closes the current alternative as a completed sibling
// and rolls current back to the level's parent snapshot, ready for the
// next alternative (BeginElse, the next switch case, the next class
// method).
func (in *Interpreter) pushSiblingState() {
	top := in.levels[len(in.levels)-1]
	top.siblings = append(top.siblings, in.current.Clone())
	in.current = top.parent.Clone()
}

// mergeStates pops the current level and combines every sibling (the final
// alternative, which may be the only one, is folded in here too) per the
// merge semantics of spec §4.3, returning every variable whose merged type
// differs from its pre-merge value in current. A variable absent from the
// level's own parent snapshot was declared inside the block being closed:
// it goes out of scope with the block and is dropped rather than promoted
// to the enclosing current.
func (in *Interpreter) mergeStates() []Change {
	top := in.levels[len(in.levels)-1]
	in.levels = in.levels[:len(in.levels)-1]
	siblings := append(top.siblings, in.current.Clone())
	if len(top.siblings) == 0 {
		// a lone alternative (an if without else, a loop or function body)
		// may not run at all: the parent snapshot stands for that path.
		siblings = append(siblings, top.parent)
	}

	pre := in.current
	merged := ilvar.NewMap[iltype.Type](0)
	seen := map[ilvar.Variable]bool{}

	var changes []Change
	for _, sib := range siblings {
		sib.Each(func(v ilvar.Variable, t iltype.Type) {
			if seen[v] {
				return
			}
			seen[v] = true
			if !top.parent.Has(v) {
				return
			}
			merged.Set(v, mergeVariable(v, siblings, top.parent))
		})
	}
	merged.Each(func(v ilvar.Variable, t iltype.Type) {
		old, _ := pre.Get(v)
		if !old.Equal(t) {
			changes = append(changes, Change{Var: v, Type: t})
		}
	})

	in.current = top.parent
	merged.Each(func(v ilvar.Variable, t iltype.Type) { in.current.Set(v, t) })
	if len(in.levels) > 0 {
		in.parent = in.levels[len(in.levels)-1].parent
	} else {
		in.parent = nil
	}
	return changes
}

// mergeVariable implements the per-variable merge rule: skip siblings (or
// the parent) where v is out of scope (.nothing), union the rest, and fold
// in the parent's type too unless every sibling updated v.
func mergeVariable(v ilvar.Variable, siblings []*ilvar.Map[iltype.Type], parent *ilvar.Map[iltype.Type]) iltype.Type {
	var result iltype.Type
	first := true
	updatedInEvery := true
	parentType, parentHas := parent.Get(v)

	for _, sib := range siblings {
		t, ok := sib.Get(v)
		if !ok || t.IsNothing() {
			updatedInEvery = false
			continue
		}
		if first {
			result = t
			first = false
		} else {
			result = result.Union(t)
		}
	}
	if parentHas && parentType.IsNothing() {
		// declared only locally within this level, dying with it: nothing to
		// fold in regardless of updatedInEvery.
		return result
	}
	if !updatedInEvery && parentHas {
		if first {
			result = parentType
		} else {
			result = result.Union(parentType)
		}
	}
	return result
}
