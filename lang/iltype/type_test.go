package iltype_test

import (
	"testing"

	"github.com/mna/fuzzil/lang/iltype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactConstructorsAreDefiniteAndPossible(t *testing.T) {
	i := iltype.IntegerT()
	assert.Equal(t, iltype.Integer, i.Definite())
	assert.Equal(t, iltype.Integer, i.Possible())
	assert.False(t, i.IsUnion())
	assert.False(t, i.IsNothing())
}

func TestNothingIsBottom(t *testing.T) {
	assert.True(t, iltype.Nothing.IsNothing())
	assert.True(t, iltype.Unknown().Subsumes(iltype.Nothing))
	assert.True(t, iltype.IntegerT().Subsumes(iltype.Nothing))
}

func TestUnionWidensPossibleNarrowsDefinite(t *testing.T) {
	u := iltype.IntegerT().Union(iltype.StringT())
	assert.Equal(t, iltype.BaseBits(0), u.Definite())
	assert.Equal(t, iltype.Integer|iltype.String, u.Possible())
	assert.True(t, u.IsUnion())
}

func TestUnionWithNothingIsIdentity(t *testing.T) {
	assert.True(t, iltype.Nothing.Union(iltype.IntegerT()).Equal(iltype.IntegerT()))
	assert.True(t, iltype.IntegerT().Union(iltype.Nothing).Equal(iltype.IntegerT()))
}

func TestIntersectOfDisjointDefiniteIsNothing(t *testing.T) {
	got := iltype.IntegerT().Intersect(iltype.StringT())
	assert.True(t, got.IsNothing())
}

func TestIntersectOfCompatibleTypes(t *testing.T) {
	u := iltype.IntegerT().Union(iltype.StringT()) // possible: int|string
	got := u.Intersect(iltype.IntegerT())
	assert.Equal(t, iltype.Integer, got.Definite())
	assert.Equal(t, iltype.Integer, got.Possible())
}

func TestMergeRejectsUnions(t *testing.T) {
	u := iltype.IntegerT().Union(iltype.StringT())
	assert.True(t, u.Merge(iltype.IntegerT()).IsNothing())
}

func TestMergeCombinesObjectShapes(t *testing.T) {
	a := iltype.ObjectT("Foo", []string{"x"}, nil)
	b := iltype.ObjectT("Foo", []string{"y"}, []string{"m"})
	merged := a.Merge(b)
	require.False(t, merged.IsNothing())
	assert.ElementsMatch(t, []string{"x", "y"}, merged.Properties())
	assert.ElementsMatch(t, []string{"m"}, merged.Methods())
	assert.True(t, merged.HasProperty("x"))
	assert.True(t, merged.HasProperty("y"))
}

func TestMergeRejectsIncompatibleGroups(t *testing.T) {
	a := iltype.ObjectT("Foo", nil, nil)
	b := iltype.ObjectT("Bar", nil, nil)
	assert.True(t, a.Merge(b).IsNothing())
}

func TestSubsumesBaseBits(t *testing.T) {
	anything := iltype.JSAnything()
	assert.True(t, anything.Subsumes(iltype.IntegerT()))
	assert.False(t, iltype.IntegerT().Subsumes(anything))
	assert.True(t, iltype.IntegerT().Subsumes(iltype.IntegerT()))
	assert.False(t, iltype.IntegerT().Subsumes(iltype.StringT()))
}

func TestSubsumesObjectShape(t *testing.T) {
	wide := iltype.ObjectT("", []string{"x"}, nil)
	narrow := iltype.ObjectT("Foo", []string{"x", "y"}, []string{"m"})
	assert.True(t, wide.Subsumes(narrow), "a type asking for fewer properties and no group subsumes a more specific one")
	assert.False(t, narrow.Subsumes(wide), "the more specific type does not subsume the wider one")
}

func TestAddingAndRemovingProperty(t *testing.T) {
	base := iltype.ObjectT("Foo", nil, nil)
	withProp := base.Adding("x", false)
	assert.True(t, withProp.HasProperty("x"))
	assert.False(t, base.HasProperty("x"), "Adding must not mutate the receiver")

	withoutProp := withProp.Removing("x", false)
	assert.False(t, withoutProp.HasProperty("x"))
}

func TestEqualComparesValueNotSubsumption(t *testing.T) {
	a := iltype.ObjectT("Foo", []string{"x"}, nil)
	b := iltype.ObjectT("Foo", []string{"x"}, nil)
	c := iltype.ObjectT("Foo", []string{"x", "y"}, nil)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestGroupPrefixSubsumption(t *testing.T) {
	a := iltype.ObjectT("_fuzz_Object3", nil, nil)
	b := iltype.ObjectT("_fuzz_Object17", nil, nil)
	assert.True(t, a.Subsumes(b), "two numbered instances of the same fuzzer-minted group prefix subsume each other")
}
