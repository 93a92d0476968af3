package ilenv_test

import (
	"testing"

	"github.com/mna/fuzzil/lang/ilenv"
	"github.com/mna/fuzzil/lang/iltype"
	"github.com/stretchr/testify/assert"
)

func TestBasicSeedsWellKnownBuiltins(t *testing.T) {
	b := ilenv.NewBasic()

	object := b.TypeOfBuiltin("Object")
	assert.True(t, object.Definite()&iltype.Constructor != 0)

	assert.True(t, b.TypeOfBuiltin("NotARealGlobal").Equal(iltype.Unknown()))
}

func TestBasicObjectAndArrayTypes(t *testing.T) {
	b := ilenv.NewBasic()
	assert.Equal(t, "Array", b.ArrayType().Group())
	assert.Equal(t, "", b.ObjectType().Group())
}

func TestBasicPropertyAndMethodLookupMiss(t *testing.T) {
	b := ilenv.NewBasic()
	assert.True(t, b.TypeOfProperty("doesNotExist", b.ObjectType()).Equal(iltype.Unknown()))

	_, ok := b.SignatureOfMethod("doesNotExist", b.ObjectType())
	assert.False(t, ok)
}

func TestBasicPropertyLookupFromTable(t *testing.T) {
	b := ilenv.NewBasic()
	b.Properties["length"] = iltype.IntegerT()
	assert.True(t, b.TypeOfProperty("length", b.ObjectType()).Equal(iltype.IntegerT()))
}

func TestBasicImplementsEnvironment(t *testing.T) {
	var _ ilenv.Environment = ilenv.NewBasic()
}
