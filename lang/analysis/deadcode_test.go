package analysis_test

import (
	"testing"

	"github.com/mna/fuzzil/lang/analysis"
	"github.com/mna/fuzzil/lang/ilop"
	"github.com/mna/fuzzil/lang/ilprog"
	"github.com/mna/fuzzil/lang/ilvar"
	"github.com/stretchr/testify/assert"
)

func TestDeadCodeAfterReturn(t *testing.T) {
	d := analysis.NewDeadCode()

	d.Feed(ilprog.NewInstruction(loadInt(1), nil, []ilvar.Variable{0}, nil))
	assert.False(t, d.CurrentlyInDeadCode())

	d.Feed(ilprog.NewInstruction(ilop.New(ilop.OpReturn, nil), []ilvar.Variable{0}, nil, nil))
	assert.True(t, d.CurrentlyInDeadCode(), "the Return instruction itself marks dead mode as entered")

	d.Feed(ilprog.NewInstruction(loadInt(2), nil, []ilvar.Variable{1}, nil))
	assert.True(t, d.CurrentlyInDeadCode(), "everything after a jump until the enclosing block closes is dead")
}

func TestDeadCodeClearsAtBlockClose(t *testing.T) {
	d := analysis.NewDeadCode()

	d.Feed(ilprog.NewInstruction(ilop.New(ilop.OpBeginIf, nil), []ilvar.Variable{0}, nil, nil))
	d.Feed(ilprog.NewInstruction(ilop.New(ilop.OpReturn, nil), []ilvar.Variable{0}, nil, nil))
	assert.True(t, d.CurrentlyInDeadCode())

	d.Feed(ilprog.NewInstruction(ilop.New(ilop.OpEndIf, nil), nil, nil, nil))
	assert.False(t, d.CurrentlyInDeadCode(), "closing the block that contained the jump ends dead mode")
}

func TestDeadCodeElseBranchIsLiveAfterThenReturns(t *testing.T) {
	d := analysis.NewDeadCode()

	d.Feed(ilprog.NewInstruction(ilop.New(ilop.OpBeginIf, nil), []ilvar.Variable{0}, nil, nil))
	d.Feed(ilprog.NewInstruction(ilop.New(ilop.OpReturn, nil), []ilvar.Variable{0}, nil, nil))
	require := assert.New(t)
	require.True(d.CurrentlyInDeadCode())

	d.Feed(ilprog.NewInstruction(ilop.New(ilop.OpBeginElse, nil), nil, nil, nil))
	require.False(d.CurrentlyInDeadCode(), "BeginElse opens a fresh, live sibling branch even though the then-branch returned")
}
