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

func loadInt(value int64) ilop.Operation {
	return ilop.New(ilop.OpLoadInteger, ilop.IntegerLiteral{Value: value})
}

func loadString(value string) ilop.Operation {
	return ilop.New(ilop.OpLoadString, ilop.StringLiteral{Value: value})
}

func TestInterpreterTypesLiterals(t *testing.T) {
	in := interp.New(ilenv.NewBasic())

	changes := in.Feed(ilprog.NewInstruction(loadInt(1), nil, []ilvar.Variable{0}, nil))
	assert.Equal(t, []interp.Change{{Var: 0, Type: iltype.IntegerT()}}, changes)
	assert.True(t, in.TypeOf(0).Equal(iltype.IntegerT()))

	in.Feed(ilprog.NewInstruction(loadString("a"), nil, []ilvar.Variable{1}, nil))
	assert.True(t, in.TypeOf(1).Equal(iltype.StringT()))
}

func TestInterpreterBinaryAddOfIntegerAndStringIsPrimitive(t *testing.T) {
	in := interp.New(ilenv.NewBasic())
	in.Feed(ilprog.NewInstruction(loadInt(1), nil, []ilvar.Variable{0}, nil))
	in.Feed(ilprog.NewInstruction(loadString("a"), nil, []ilvar.Variable{1}, nil))

	add := ilop.New(ilop.OpBinaryOperation, ilop.BinaryOp{Operator: ilop.BinaryAdd})
	in.Feed(ilprog.NewInstruction(add, []ilvar.Variable{0, 1}, []ilvar.Variable{2}, nil))
	assert.True(t, in.TypeOf(2).Equal(iltype.PrimitiveT()), "Add's non-BigInt fallback is the primitive union, not a string/number guess")
}

func TestInterpreterBinaryAddBigIntContagion(t *testing.T) {
	in := interp.New(ilenv.NewBasic())
	bigIntLit := ilop.New(ilop.OpLoadBigInt, ilop.BigIntLiteral{Value: "1"})
	in.Feed(ilprog.NewInstruction(bigIntLit, nil, []ilvar.Variable{0}, nil))
	in.Feed(ilprog.NewInstruction(loadInt(2), nil, []ilvar.Variable{1}, nil))

	add := ilop.New(ilop.OpBinaryOperation, ilop.BinaryOp{Operator: ilop.BinaryAdd})
	in.Feed(ilprog.NewInstruction(add, []ilvar.Variable{0, 1}, []ilvar.Variable{2}, nil))
	assert.True(t, in.TypeOf(2).Equal(iltype.BigIntT()), "a BigInt operand is contagious over a plain Integer")
}

func TestInterpreterDupAndReassign(t *testing.T) {
	in := interp.New(ilenv.NewBasic())
	in.Feed(ilprog.NewInstruction(loadInt(1), nil, []ilvar.Variable{0}, nil))
	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpDup, nil), []ilvar.Variable{0}, []ilvar.Variable{1}, nil))
	assert.True(t, in.TypeOf(1).Equal(iltype.IntegerT()))

	in.Feed(ilprog.NewInstruction(loadString("a"), nil, []ilvar.Variable{2}, nil))
	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpReassign, nil), []ilvar.Variable{1, 2}, nil, nil))
	assert.True(t, in.TypeOf(1).Equal(iltype.StringT()), "Reassign gives its target variable the source's current type")
}

func TestInterpreterFunctionSignatureBindsParameters(t *testing.T) {
	in := interp.New(ilenv.NewBasic())
	sig := iltype.NewSignature(iltype.StringT(), iltype.Plain(iltype.IntegerT()))
	begin := ilop.New(ilop.OpBeginPlainFunction, ilop.FunctionSignature{Signature: sig})

	changes := in.Feed(ilprog.NewInstruction(begin, nil, []ilvar.Variable{0}, []ilvar.Variable{1}))
	assert.True(t, in.TypeOf(0).Equal(iltype.FunctionT(sig)), "the function's own outer binding is typed from its signature")
	found := false
	for _, c := range changes {
		if c.Var == 1 {
			found = true
			assert.True(t, c.Type.Equal(iltype.IntegerT()))
		}
	}
	assert.True(t, found, "the parameter inner-output must be typed from the signature")

	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpEndPlainFunction, nil), nil, nil, nil))
}

// TestInterpreterObjectLiteralTracksDeclaredProperties builds:
//
//	v0 = {p: 1, q: 2}
//
// and expects v0's type to carry both declared property names.
func TestInterpreterObjectLiteralTracksDeclaredProperties(t *testing.T) {
	in := interp.New(ilenv.NewBasic())
	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpBeginObjectLiteral, nil), nil, []ilvar.Variable{0}, nil))
	in.Feed(ilprog.NewInstruction(loadInt(1), nil, []ilvar.Variable{1}, nil))
	addP := ilop.New(ilop.OpObjectLiteralAddProperty, ilop.PropertyName{Name: "p"})
	in.Feed(ilprog.NewInstruction(addP, []ilvar.Variable{1}, nil, nil))
	in.Feed(ilprog.NewInstruction(loadInt(2), nil, []ilvar.Variable{2}, nil))
	addQ := ilop.New(ilop.OpObjectLiteralAddProperty, ilop.PropertyName{Name: "q"})
	in.Feed(ilprog.NewInstruction(addQ, []ilvar.Variable{2}, nil, nil))
	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpEndObjectLiteral, nil), nil, nil, nil))

	obj := in.TypeOf(0)
	assert.True(t, obj.HasProperty("p"))
	assert.True(t, obj.HasProperty("q"))
}

// TestInterpreterDeletePropertyNarrowsReceiver builds:
//
//	v0 = {p: 1, q: 2}
//	Delete v0.p
//
// and expects v0's property set to lose "p" but keep "q" (spec §8 scenario
// #4).
func TestInterpreterDeletePropertyNarrowsReceiver(t *testing.T) {
	in := interp.New(ilenv.NewBasic())
	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpBeginObjectLiteral, nil), nil, []ilvar.Variable{0}, nil))
	in.Feed(ilprog.NewInstruction(loadInt(1), nil, []ilvar.Variable{1}, nil))
	addP := ilop.New(ilop.OpObjectLiteralAddProperty, ilop.PropertyName{Name: "p"})
	in.Feed(ilprog.NewInstruction(addP, []ilvar.Variable{1}, nil, nil))
	in.Feed(ilprog.NewInstruction(loadInt(2), nil, []ilvar.Variable{2}, nil))
	addQ := ilop.New(ilop.OpObjectLiteralAddProperty, ilop.PropertyName{Name: "q"})
	in.Feed(ilprog.NewInstruction(addQ, []ilvar.Variable{2}, nil, nil))
	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpEndObjectLiteral, nil), nil, nil, nil))

	del := ilop.New(ilop.OpDeleteProperty, ilop.PropertyName{Name: "p"})
	in.Feed(ilprog.NewInstruction(del, []ilvar.Variable{0}, []ilvar.Variable{3}, nil))

	obj := in.TypeOf(0)
	assert.False(t, obj.HasProperty("p"))
	assert.True(t, obj.HasProperty("q"))
	assert.True(t, in.TypeOf(3).Equal(iltype.BooleanT()))
}

// TestInterpreterStorePropertyWidensReceiver builds:
//
//	v0 = {}
//	v0.p = 1
//
// and expects v0's property set to gain "p".
func TestInterpreterStorePropertyWidensReceiver(t *testing.T) {
	in := interp.New(ilenv.NewBasic())
	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpBeginObjectLiteral, nil), nil, []ilvar.Variable{0}, nil))
	in.Feed(ilprog.NewInstruction(ilop.New(ilop.OpEndObjectLiteral, nil), nil, nil, nil))
	in.Feed(ilprog.NewInstruction(loadInt(1), nil, []ilvar.Variable{1}, nil))

	store := ilop.New(ilop.OpStoreProperty, ilop.PropertyName{Name: "p"})
	in.Feed(ilprog.NewInstruction(store, []ilvar.Variable{0, 1}, nil, nil))

	assert.True(t, in.TypeOf(0).HasProperty("p"))
}
