package ilenv

import "github.com/mna/fuzzil/lang/iltype"

// Basic is a fixed-table Environment: a plain JavaScript-shaped environment
// with no knowledge of any particular embedding engine's globals. It is the
// default passed to lang/interp.New when the embedder has not yet wired up
// a richer, engine-backed Environment.
type Basic struct {
	Builtins      map[string]iltype.Type
	Properties    map[string]iltype.Type
	Methods       map[string]iltype.Signature
	CustomMethods map[string]struct{}
	CustomProps   map[string]struct{}
}

// NewBasic returns a Basic environment pre-seeded with the handful of
// builtins (Object, Array, Math, JSON, Symbol) that every non-trivial
// FuzzIL corpus references in its generators.
func NewBasic() *Basic {
	b := &Basic{
		Builtins:      map[string]iltype.Type{},
		Properties:    map[string]iltype.Type{},
		Methods:       map[string]iltype.Signature{},
		CustomMethods: map[string]struct{}{},
		CustomProps:   map[string]struct{}{},
	}
	ctor := iltype.NewSignature(iltype.ObjectT("", nil, nil))
	b.Builtins["Object"] = iltype.FunctionAndConstructorT(ctor)
	b.Builtins["Array"] = iltype.FunctionAndConstructorT(iltype.NewSignature(iltype.ObjectT("Array", nil, nil)))
	b.Builtins["Math"] = iltype.ObjectT("Math", nil, []string{"random", "floor", "max", "min", "abs"})
	b.Builtins["JSON"] = iltype.ObjectT("JSON", nil, []string{"stringify", "parse"})
	b.Builtins["Symbol"] = iltype.FunctionT(iltype.NewSignature(iltype.PrimitiveT()))
	return b
}

func (b *Basic) TypeOfBuiltin(name string) iltype.Type {
	if t, ok := b.Builtins[name]; ok {
		return t
	}
	return iltype.Unknown()
}

func (b *Basic) TypeOfProperty(name string, on iltype.Type) iltype.Type {
	if on.HasProperty(name) {
		// the declared object shape already carries a precise enough type for
		// most generator purposes; Basic does not further refine per-receiver.
		return iltype.Unknown()
	}
	if t, ok := b.Properties[name]; ok {
		return t
	}
	return iltype.Unknown()
}

func (b *Basic) SignatureOfMethod(name string, on iltype.Type) (iltype.Signature, bool) {
	sig, ok := b.Methods[name]
	return sig, ok
}

func (b *Basic) ObjectType() iltype.Type  { return iltype.ObjectT("", nil, nil) }
func (b *Basic) IntType() iltype.Type     { return iltype.IntegerT() }
func (b *Basic) BigIntType() iltype.Type  { return iltype.BigIntT() }
func (b *Basic) FloatType() iltype.Type   { return iltype.FloatT() }
func (b *Basic) StringType() iltype.Type  { return iltype.StringT() }
func (b *Basic) BooleanType() iltype.Type { return iltype.BooleanT() }
func (b *Basic) RegExpType() iltype.Type  { return iltype.RegExpT() }
func (b *Basic) ArrayType() iltype.Type   { return iltype.ObjectT("Array", nil, nil) }

func (b *Basic) CustomMethodNames() map[string]struct{}   { return b.CustomMethods }
func (b *Basic) CustomPropertyNames() map[string]struct{} { return b.CustomProps }
