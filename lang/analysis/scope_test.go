package analysis_test

import (
	"testing"

	"github.com/mna/fuzzil/lang/analysis"
	"github.com/mna/fuzzil/lang/ilop"
	"github.com/mna/fuzzil/lang/ilprog"
	"github.com/mna/fuzzil/lang/ilvar"
	"github.com/stretchr/testify/assert"
)

func TestScopeTracksNestedVisibility(t *testing.T) {
	s := analysis.NewScope()

	s.Feed(ilprog.NewInstruction(loadInt(1), nil, []ilvar.Variable{0}, nil))
	assert.Equal(t, []ilvar.Variable{0}, s.VisibleVariables())

	s.Feed(ilprog.NewInstruction(ilop.New(ilop.OpBeginIf, nil), []ilvar.Variable{0}, nil, nil))
	s.Feed(ilprog.NewInstruction(loadInt(2), nil, []ilvar.Variable{1}, nil))
	assert.ElementsMatch(t, []ilvar.Variable{0, 1}, s.VisibleVariables())

	s.Feed(ilprog.NewInstruction(ilop.New(ilop.OpEndIf, nil), nil, nil, nil))
	assert.Equal(t, []ilvar.Variable{0}, s.VisibleVariables(), "variable declared inside the if body must leave scope on EndIf")
}

func TestScopePopPastTopPanics(t *testing.T) {
	s := analysis.NewScope()
	assert.Panics(t, func() {
		s.Feed(ilprog.NewInstruction(ilop.New(ilop.OpEndIf, nil), nil, nil, nil))
	})
}

func TestScopeTracksWasmBranchDepth(t *testing.T) {
	s := analysis.NewScope()
	assert.Equal(t, 0, s.WasmBranchDepth())

	s.Feed(ilprog.NewInstruction(ilop.New(ilop.OpBeginWasmModule, nil), nil, nil, nil))
	assert.Equal(t, 0, s.WasmBranchDepth(), "a module frame itself is not a branch target")

	s.Feed(ilprog.NewInstruction(ilop.New(ilop.OpBeginWasmFunction, nil), nil, []ilvar.Variable{0}, nil))
	assert.Equal(t, 1, s.WasmBranchDepth())

	s.Feed(ilprog.NewInstruction(ilop.New(ilop.OpEndWasmFunction, nil), []ilvar.Variable{0}, nil, nil))
	assert.Equal(t, 0, s.WasmBranchDepth())
}
