package ilprog_test

import (
	"testing"

	"github.com/mna/fuzzil/lang/ilctx"
	"github.com/mna/fuzzil/lang/ilop"
	"github.com/mna/fuzzil/lang/ilprog"
	"github.com/mna/fuzzil/lang/ilvar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderProducesValidCode(t *testing.T) {
	b := ilprog.NewBuilder()

	outs, _, err := b.Append(loadInt(1), nil)
	require.NoError(t, err)
	require.Len(t, outs, 1)
	cond := outs[0]

	_, _, err = b.Append(ilop.New(ilop.OpBeginIf, nil), []ilvar.Variable{cond})
	require.NoError(t, err)
	assert.Equal(t, 1, b.Depth())

	_, _, err = b.Append(loadInt(2), nil)
	require.NoError(t, err)

	_, _, err = b.Append(ilop.New(ilop.OpEndIf, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Depth())

	code := b.Finish()
	assert.NoError(t, ilprog.Validate(code))
}

func TestBuilderRejectsWrongRequiredContext(t *testing.T) {
	b := ilprog.NewBuilder()
	_, _, err := b.Append(ilop.New(ilop.OpLoopBreak, nil), nil)
	require.Error(t, err)
	var berr *ilprog.BuilderError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, ilop.OpLoopBreak, berr.Op)
}

func TestBuilderRejectsMismatchedBlockEnd(t *testing.T) {
	b := ilprog.NewBuilder()
	outs, _, err := b.Append(loadInt(1), nil)
	require.NoError(t, err)

	_, _, err = b.Append(ilop.New(ilop.OpBeginIf, nil), outs)
	require.NoError(t, err)

	_, _, err = b.Append(ilop.New(ilop.OpEndWasmModule, nil), nil)
	require.Error(t, err)
}

func TestBuilderContextReflectsOpenBlocks(t *testing.T) {
	b := ilprog.NewBuilder()
	assert.Equal(t, ilctx.JavaScript, b.Context())

	outs, _, err := b.Append(loadInt(1), nil)
	require.NoError(t, err)
	_, _, err = b.Append(ilop.New(ilop.OpBeginWhileLoopHeader, nil), nil)
	require.NoError(t, err)
	_, _, err = b.Append(ilop.New(ilop.OpBeginWhileLoopBody, nil), outs)
	require.NoError(t, err)
	assert.True(t, b.Context().Has(ilctx.Loop))
}
