package ilvar_test

import (
	"testing"

	"github.com/mna/fuzzil/lang/ilvar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDenseGetSetDelete(t *testing.T) {
	m := ilvar.NewMap[string](0)
	_, ok := m.Get(3)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())

	m.Set(3, "three")
	m.Set(0, "zero")
	v, ok := m.Get(3)
	require.True(t, ok)
	assert.Equal(t, "three", v)
	assert.True(t, m.Has(0))
	assert.Equal(t, 2, m.Len())

	m.Set(3, "THREE")
	v, ok = m.Get(3)
	require.True(t, ok)
	assert.Equal(t, "THREE", v)

	m.Delete(0)
	assert.False(t, m.Has(0))
	assert.Equal(t, 1, m.Len())
}

func TestMapSpillsToSparse(t *testing.T) {
	m := ilvar.NewMap[int](0)
	for i := 0; i < 300; i++ {
		m.Set(ilvar.Variable(i), i*2)
	}
	assert.Equal(t, 300, m.Len())
	for i := 0; i < 300; i++ {
		v, ok := m.Get(ilvar.Variable(i))
		require.True(t, ok)
		assert.Equal(t, i*2, v)
	}
}

func TestMapEachVisitsAllPresentEntries(t *testing.T) {
	m := ilvar.NewMap[bool](0)
	want := map[ilvar.Variable]bool{1: true, 2: true, 5: true}
	for k, v := range want {
		m.Set(k, v)
	}

	got := map[ilvar.Variable]bool{}
	m.Each(func(v ilvar.Variable, b bool) { got[v] = b })
	assert.Equal(t, want, got)
}

func TestMapClone(t *testing.T) {
	m := ilvar.NewMap[int](0)
	m.Set(1, 10)
	m.Set(2, 20)

	cl := m.Clone()
	cl.Set(1, 999)
	cl.Delete(2)

	v, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, 10, v, "mutating the clone must not affect the original")
	assert.True(t, m.Has(2))
	assert.False(t, cl.Has(2))
}

func TestVariableIsValid(t *testing.T) {
	assert.True(t, ilvar.Variable(0).IsValid())
	assert.False(t, ilvar.Invalid.IsValid())
	assert.Equal(t, "v?", ilvar.Invalid.String())
	assert.Equal(t, "v5", ilvar.Variable(5).String())
}
