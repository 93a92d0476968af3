package serialize_test

import (
	"bytes"
	"testing"

	"github.com/mna/fuzzil/lang/ilop"
	"github.com/mna/fuzzil/lang/ilprog"
	"github.com/mna/fuzzil/lang/ilvar"
	"github.com/mna/fuzzil/lang/serialize"
	"github.com/stretchr/testify/require"
)

func loadInt(value int64) ilop.Operation {
	return ilop.New(ilop.OpLoadInteger, ilop.IntegerLiteral{Value: value})
}

func buildIfElseProgram() *ilprog.Program {
	code := ilprog.NewCode([]ilprog.Instruction{
		ilprog.NewInstruction(loadInt(1), nil, []ilvar.Variable{0}, nil),
		ilprog.NewInstruction(ilop.New(ilop.OpBeginIf, nil), []ilvar.Variable{0}, nil, nil),
		ilprog.NewInstruction(loadInt(2), nil, []ilvar.Variable{1}, nil),
		ilprog.NewInstruction(ilop.New(ilop.OpBeginElse, nil), nil, nil, nil),
		ilprog.NewInstruction(loadInt(3), nil, []ilvar.Variable{1}, nil),
		ilprog.NewInstruction(ilop.New(ilop.OpEndIf, nil), nil, nil, nil),
	})
	p := ilprog.NewProgram(code)
	p.SetComment(0, "the condition")
	p.Attribute("corpus-seed")
	return p
}

func TestRoundTripSimpleProgram(t *testing.T) {
	p := buildIfElseProgram()

	var buf bytes.Buffer
	require.NoError(t, serialize.Write(&buf, p))

	got, err := serialize.Read(&buf)
	require.NoError(t, err)
	require.NoError(t, ilprog.Validate(got.Code()))

	require.Equal(t, p.ID(), got.ID())
	require.Equal(t, p.Code().Len(), got.Code().Len())
	for i := 0; i < p.Code().Len(); i++ {
		want, have := p.Code().At(i), got.Code().At(i)
		require.Equal(t, want.Op(), have.Op())
		require.Equal(t, want.Inputs(), have.Inputs())
		require.Equal(t, want.Outputs(), have.Outputs())
	}
	comment, ok := got.Comment(0)
	require.True(t, ok)
	require.Equal(t, "the condition", comment)
	require.Equal(t, p.Attribution(), got.Attribution())
}

func TestRoundTripWithParent(t *testing.T) {
	parent := buildIfElseProgram()
	child := parent.Derive(ilprog.NewCode([]ilprog.Instruction{
		ilprog.NewInstruction(loadInt(42), nil, []ilvar.Variable{0}, nil),
	}))

	var buf bytes.Buffer
	require.NoError(t, serialize.Write(&buf, child))

	got, err := serialize.Read(&buf)
	require.NoError(t, err)
	require.NotNil(t, got.Parent())
	require.Equal(t, parent.ID(), got.Parent().ID())
}

func TestRoundTripReusesRepeatedOperationViaCache(t *testing.T) {
	code := ilprog.NewCode([]ilprog.Instruction{
		ilprog.NewInstruction(loadInt(7), nil, []ilvar.Variable{0}, nil),
		ilprog.NewInstruction(loadInt(7), nil, []ilvar.Variable{1}, nil),
		ilprog.NewInstruction(loadInt(7), nil, []ilvar.Variable{2}, nil),
	})
	p := ilprog.NewProgram(code)

	var buf bytes.Buffer
	require.NoError(t, serialize.Write(&buf, p))

	got, err := serialize.Read(&buf)
	require.NoError(t, err)
	require.Equal(t, 3, got.Code().Len())
	for i := 0; i < 3; i++ {
		require.Equal(t, ilop.OpLoadInteger, got.Code().At(i).Op())
	}
}
