package ilctx_test

import (
	"testing"

	"github.com/mna/fuzzil/lang/ilctx"
	"github.com/stretchr/testify/assert"
)

func TestSetHasAndSubset(t *testing.T) {
	cases := []struct {
		desc       string
		s, want    ilctx.Set
		has, subOf bool // has: s.Has(want); subOf: s.Subset(want)
	}{
		{"empty wants nothing", 0, 0, true, true},
		{"has single bit", ilctx.Loop, ilctx.Loop, true, true},
		{"missing bit", ilctx.Loop, ilctx.With, false, false},
		{"has both of two", ilctx.Loop | ilctx.With, ilctx.Loop | ilctx.With, true, true},
		{"subset of larger", ilctx.Loop, ilctx.Loop | ilctx.With, false, true},
		{"equal sets are mutually subsets", ilctx.Loop, ilctx.Loop, true, true},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			assert.Equal(t, c.has, c.s.Has(c.want))
			assert.Equal(t, c.subOf, c.s.Subset(c.want))
		})
	}
}

func TestSetString(t *testing.T) {
	assert.Equal(t, "none", ilctx.Set(0).String())
	assert.Equal(t, "javascript", ilctx.JavaScript.String())
	assert.Equal(t, "javascript|loop", (ilctx.JavaScript | ilctx.Loop).String())
}

func TestStackPushPop(t *testing.T) {
	s := ilctx.NewStack()
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, ilctx.JavaScript, s.Top())

	s.Push(ilctx.Loop, true, false)
	assert.Equal(t, 2, s.Depth())
	assert.True(t, s.Top().Has(ilctx.JavaScript|ilctx.Loop), "propagateSurrounding must union in the enclosing frame")
	assert.Equal(t, ilctx.JavaScript, s.SecondFromTop())

	s.Push(ilctx.SwitchCase, false, true)
	assert.True(t, s.Top().Has(ilctx.SwitchCase), "resumeSecondFromTop base bit must still be present")
	assert.True(t, s.Top().Has(ilctx.JavaScript), "resumeSecondFromTop must union in the frame below the top, not the top itself")
	assert.False(t, s.Top().Has(ilctx.Loop), "resumeSecondFromTop must not pull in the immediate parent's own bits")

	s.Pop()
	s.Pop()
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, ilctx.JavaScript, s.Top())
}

func TestStackSecondFromTopAtShallowDepth(t *testing.T) {
	s := ilctx.NewStack()
	assert.Equal(t, ilctx.Set(0), s.SecondFromTop())
}
