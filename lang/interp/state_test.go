package interp_test

import (
	"testing"

	"github.com/mna/fuzzil/lang/ilenv"
	"github.com/mna/fuzzil/lang/ilop"
	"github.com/mna/fuzzil/lang/ilprog"
	"github.com/mna/fuzzil/lang/iltype"
	"github.com/mna/fuzzil/lang/ilvar"
	"github.com/mna/fuzzil/lang/interp"
	"github.com/stretchr/testify/assert"
)

// TestInterpreterIfElseMergeUnion builds:
//
//	v0 = 1; v1 = 0
//	if (v0) { v1 = "a" } else { v1 = 2 }
//
// and expects v1's merged type to be the union of String and Integer, since
// the two branches of the if/else gave it different types and both are live
// alternatives.
func TestInterpreterIfElseMergeUnion(t *testing.T) {
	in := interp.New(ilenv.NewBasic())
	in.Feed(ilprog.NewInstruction(loadInt(1), nil, []ilvar.Variable{0}, nil))
	in.Feed(ilprog.NewInstruction(loadInt(0), nil, []ilvar.Variable{1}, nil))

	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpBeginIf, nil), []ilvar.Variable{0}, nil, nil))
	in.Feed(ilprog.NewInstruction(loadString("a"), nil, []ilvar.Variable{1}, nil))
	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpBeginElse, nil), nil, nil, nil))
	in.Feed(ilprog.NewInstruction(loadInt(2), nil, []ilvar.Variable{1}, nil))
	changes := in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpEndIf, nil), nil, nil, nil))

	merged := in.TypeOf(1)
	assert.True(t, merged.Definite()&iltype.String != 0 || merged.Possible()&iltype.String != 0)
	assert.True(t, merged.Definite()&iltype.Integer != 0 || merged.Possible()&iltype.Integer != 0)

	var found bool
	for _, c := range changes {
		if c.Var == 1 {
			found = true
		}
	}
	assert.True(t, found, "EndIf must report v1's change since both branches disagreed")
}

// TestInterpreterIfWithoutElseFoldsInParent builds:
//
//	v0 = 1; v1 = 2
//	if (v0) { v1 = "a" }
//
// and expects v1's merged type to include the parent (pre-if) type too,
// since the then-branch is not guaranteed to execute.
func TestInterpreterIfWithoutElseFoldsInParent(t *testing.T) {
	in := interp.New(ilenv.NewBasic())
	in.Feed(ilprog.NewInstruction(loadInt(1), nil, []ilvar.Variable{0}, nil))
	in.Feed(ilprog.NewInstruction(loadInt(2), nil, []ilvar.Variable{1}, nil))

	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpBeginIf, nil), []ilvar.Variable{0}, nil, nil))
	in.Feed(ilprog.NewInstruction(loadString("a"), nil, []ilvar.Variable{1}, nil))
	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpEndIf, nil), nil, nil, nil))

	merged := in.TypeOf(1)
	assert.True(t, merged.Definite()&iltype.Integer != 0 || merged.Possible()&iltype.Integer != 0,
		"the pre-if type must be folded in since the if-body might not run")
	assert.True(t, merged.Definite()&iltype.String != 0 || merged.Possible()&iltype.String != 0)
}

// TestInterpreterNestedIfRestoresOuterParent verifies that closing an inner
// if/else correctly returns to the outer level's own parent snapshot rather
// than leaking the inner level's parent.
func TestInterpreterNestedIfRestoresOuterParent(t *testing.T) {
	in := interp.New(ilenv.NewBasic())
	in.Feed(ilprog.NewInstruction(loadInt(1), nil, []ilvar.Variable{0}, nil))

	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpBeginIf, nil), []ilvar.Variable{0}, nil, nil))
	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpBeginIf, nil), []ilvar.Variable{0}, nil, nil))
	in.Feed(ilprog.NewInstruction(loadString("a"), nil, []ilvar.Variable{1}, nil))
	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpEndIf, nil), nil, nil, nil))
	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpEndIf, nil), nil, nil, nil))

	assert.True(t, in.TypeOf(0).Equal(iltype.IntegerT()))
}

// TestInterpreterLoopBodyLocalDoesNotLeak builds:
//
//	v0 = 1
//	while (...) { v1 = 2 }
//
// and expects v1, declared only inside the loop body, to be out of scope
// again once EndWhileLoop closes the body: it must not leak into the
// enclosing current just because the body ran once during the pass.
func TestInterpreterLoopBodyLocalDoesNotLeak(t *testing.T) {
	in := interp.New(ilenv.NewBasic())
	in.Feed(ilprog.NewInstruction(loadInt(1), nil, []ilvar.Variable{0}, nil))

	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpBeginWhileLoopHeader, nil), nil, nil, nil))
	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpBeginWhileLoopBody, nil), []ilvar.Variable{0}, nil, nil))
	in.Feed(ilprog.NewInstruction(loadInt(2), nil, []ilvar.Variable{1}, nil))
	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpEndWhileLoop, nil), nil, nil, nil))

	assert.True(t, in.TypeOf(1).IsNothing(), "a loop-body-local variable must not survive past EndWhileLoop")
	assert.True(t, in.TypeOf(0).Equal(iltype.IntegerT()))
}
