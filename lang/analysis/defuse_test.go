package analysis_test

import (
	"testing"

	"github.com/mna/fuzzil/lang/analysis"
	"github.com/mna/fuzzil/lang/ilop"
	"github.com/mna/fuzzil/lang/ilprog"
	"github.com/mna/fuzzil/lang/ilvar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadInt(value int64) ilop.Operation {
	return ilop.New(ilop.OpLoadInteger, ilop.IntegerLiteral{Value: value})
}

func TestDefUseTracksDefinitionAndUses(t *testing.T) {
	code := ilprog.NewCode([]ilprog.Instruction{
		ilprog.NewInstruction(loadInt(1), nil, []ilvar.Variable{0}, nil),
		ilprog.NewInstruction(loadInt(2), nil, []ilvar.Variable{1}, nil),
		ilprog.NewInstruction(ilop.New(ilop.OpDup, nil), []ilvar.Variable{0}, []ilvar.Variable{2}, nil),
		ilprog.NewInstruction(ilop.New(ilop.OpPrint, nil), []ilvar.Variable{0}, nil, nil),
	})
	require.NoError(t, ilprog.Validate(code))

	d := analysis.NewDefUse()
	analysis.Analyze(d, code)

	assert.Equal(t, 0, d.Definition(0))
	assert.Equal(t, 1, d.Definition(1))
	assert.Equal(t, []int{2, 3}, d.Uses(0))
	assert.Equal(t, 0, d.NumUses(1))
	assert.Empty(t, d.Uses(1))
}

func TestDefUseTracksReassignments(t *testing.T) {
	code := ilprog.NewCode([]ilprog.Instruction{
		ilprog.NewInstruction(loadInt(1), nil, []ilvar.Variable{0}, nil),
		ilprog.NewInstruction(loadInt(2), nil, []ilvar.Variable{1}, nil),
		ilprog.NewInstruction(ilop.New(ilop.OpReassign, nil), []ilvar.Variable{0, 1}, nil, nil),
	})
	require.NoError(t, ilprog.Validate(code))

	d := analysis.NewDefUse()
	analysis.Analyze(d, code)
	assert.Equal(t, []int{2}, d.Assignments(0))
	assert.Equal(t, []int{2}, d.Uses(1), "Reassign's source operand is still recorded as a use")
}

func TestDefUsePanicsOnUnknownVariable(t *testing.T) {
	d := analysis.NewDefUse()
	assert.Panics(t, func() { d.Definition(99) })
	assert.Panics(t, func() { d.Uses(99) })
}
