package ilprog_test

import (
	"testing"

	"github.com/mna/fuzzil/lang/ilop"
	"github.com/mna/fuzzil/lang/ilprog"
	"github.com/mna/fuzzil/lang/ilvar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadInt(value int64) ilop.Operation {
	return ilop.New(ilop.OpLoadInteger, ilop.IntegerLiteral{Value: value})
}

func TestValidateAcceptsSimpleIfElse(t *testing.T) {
	code := ilprog.NewCode([]ilprog.Instruction{
		ilprog.NewInstruction(loadInt(1), nil, []ilvar.Variable{0}, nil),
		ilprog.NewInstruction(ilop.New(ilop.OpBeginIf, nil), []ilvar.Variable{0}, nil, nil),
		ilprog.NewInstruction(loadInt(2), nil, []ilvar.Variable{1}, nil),
		ilprog.NewInstruction(ilop.New(ilop.OpBeginElse, nil), nil, nil, nil),
		ilprog.NewInstruction(loadInt(3), nil, []ilvar.Variable{2}, nil),
		ilprog.NewInstruction(ilop.New(ilop.OpEndIf, nil), nil, nil, nil),
	})
	assert.NoError(t, ilprog.Validate(code))
}

func TestValidateRejectsUndeclaredInput(t *testing.T) {
	code := ilprog.NewCode([]ilprog.Instruction{
		ilprog.NewInstruction(ilop.New(ilop.OpDup, nil), []ilvar.Variable{0}, []ilvar.Variable{1}, nil),
	})
	err := ilprog.Validate(code)
	require.Error(t, err)
	var verr *ilprog.ValidityError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "undeclared-input", verr.Rule)
}

func TestValidateRejectsVariableNumberGap(t *testing.T) {
	code := ilprog.NewCode([]ilprog.Instruction{
		ilprog.NewInstruction(loadInt(1), nil, []ilvar.Variable{5}, nil),
	})
	err := ilprog.Validate(code)
	require.Error(t, err)
	var verr *ilprog.ValidityError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "variable-number-gap", verr.Rule)
}

func TestValidateRejectsMismatchedBlockEnd(t *testing.T) {
	code := ilprog.NewCode([]ilprog.Instruction{
		ilprog.NewInstruction(loadInt(1), nil, []ilvar.Variable{0}, nil),
		ilprog.NewInstruction(ilop.New(ilop.OpBeginIf, nil), []ilvar.Variable{0}, nil, nil),
		ilprog.NewInstruction(ilop.New(ilop.OpEndWasmModule, nil), nil, []ilvar.Variable{1}, nil),
	})
	err := ilprog.Validate(code)
	require.Error(t, err)
	var verr *ilprog.ValidityError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "block-end-mismatch", verr.Rule)
}

func TestValidateRejectsUnmatchedBlockEnd(t *testing.T) {
	code := ilprog.NewCode([]ilprog.Instruction{
		ilprog.NewInstruction(ilop.New(ilop.OpEndIf, nil), nil, nil, nil),
	})
	err := ilprog.Validate(code)
	require.Error(t, err)
	var verr *ilprog.ValidityError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "unmatched-block-end", verr.Rule)
}

func TestValidateRejectsUnclosedBlock(t *testing.T) {
	code := ilprog.NewCode([]ilprog.Instruction{
		ilprog.NewInstruction(loadInt(1), nil, []ilvar.Variable{0}, nil),
		ilprog.NewInstruction(ilop.New(ilop.OpBeginIf, nil), []ilvar.Variable{0}, nil, nil),
	})
	err := ilprog.Validate(code)
	require.Error(t, err)
	var verr *ilprog.ValidityError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "unmatched-block-end", verr.Rule)
}

func TestInstructionHelpers(t *testing.T) {
	instr := ilprog.NewInstruction(loadInt(42), nil, []ilvar.Variable{0}, nil)
	assert.Equal(t, ilop.OpLoadInteger, instr.Op())
	assert.Empty(t, instr.Inputs())
	assert.Equal(t, []ilvar.Variable{0}, instr.Outputs())
	assert.True(t, instr.IsRemovable())
	assert.False(t, instr.Pinned().IsRemovable())
}
