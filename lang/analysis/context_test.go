package analysis_test

import (
	"testing"

	"github.com/mna/fuzzil/lang/analysis"
	"github.com/mna/fuzzil/lang/ilctx"
	"github.com/mna/fuzzil/lang/ilop"
	"github.com/mna/fuzzil/lang/ilprog"
	"github.com/mna/fuzzil/lang/ilvar"
	"github.com/stretchr/testify/assert"
)

func TestContextTracksLoopNesting(t *testing.T) {
	c := analysis.NewContext()
	assert.Equal(t, ilctx.JavaScript, c.Current())

	active := c.Feed(ilprog.NewInstruction(ilop.New(ilop.OpBeginWhileLoopHeader, nil), nil, nil, nil))
	assert.Equal(t, ilctx.JavaScript, active, "the BeginWhileLoopHeader instruction itself executes in the outer context")

	c.Feed(ilprog.NewInstruction(ilop.New(ilop.OpBeginWhileLoopBody, nil), []ilvar.Variable{0}, nil, nil))
	assert.True(t, c.Current().Has(ilctx.Loop))

	c.Feed(ilprog.NewInstruction(ilop.New(ilop.OpEndWhileLoop, nil), nil, nil, nil))
	assert.False(t, c.Current().Has(ilctx.Loop))
	assert.Equal(t, 1, c.Depth())
}
