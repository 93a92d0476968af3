// Package iltype implements ILType, the flow-insensitive type lattice shared
// by every program point: a definite+possible base-type bitset pair plus an
// optional extension carrying object/function shape information. See spec
// §4.4 for the arithmetic this package implements.
package iltype

import "golang.org/x/exp/slices"

// Ext carries the extended, non-bitset part of a Type: the textual group tag
// of an object type, its known properties/methods, a call signature, a
// receiver type (for bound methods), and a polymorphic wasm extension.
type Ext struct {
	Group      string
	Properties map[string]struct{}
	Methods    map[string]struct{}
	Signature  *Signature
	Receiver   *Type
	Wasm       WasmExt
}

func (e *Ext) clone() *Ext {
	if e == nil {
		return nil
	}
	ne := &Ext{Group: e.Group, Signature: e.Signature, Receiver: e.Receiver, Wasm: e.Wasm}
	if e.Properties != nil {
		ne.Properties = make(map[string]struct{}, len(e.Properties))
		for k := range e.Properties {
			ne.Properties[k] = struct{}{}
		}
	}
	if e.Methods != nil {
		ne.Methods = make(map[string]struct{}, len(e.Methods))
		for k := range e.Methods {
			ne.Methods[k] = struct{}{}
		}
	}
	return ne
}

// Type is (definite, possible, ext) with definite always a subset of
// possible. The zero Type is .nothing, the bottom of the lattice.
type Type struct {
	definite BaseBits
	possible BaseBits
	ext      *Ext
}

// Nothing is the bottom of the lattice: "declared but impossible", distinct
// from .unknown (top). It subsumes nothing and is subsumed by everything.
var Nothing = Type{}

// JSAnything is the top of the JavaScript-side lattice.
func JSAnything() Type { return Type{possible: jsMask} }

// WasmAnything is the top of the wasm-side lattice.
func WasmAnything() Type { return Type{possible: wasmMask} }

// Unknown is used whenever the interpreter cannot statically infer a more
// precise output type; it is the JS-side top.
func Unknown() Type { return JSAnything() }

func exact(b BaseBits) Type { return Type{definite: b, possible: b} }

func UndefinedT() Type      { return exact(Undefined) }
func IntegerT() Type        { return exact(Integer) }
func BigIntT() Type         { return exact(BigInt) }
func FloatT() Type          { return exact(Float) }
func StringT() Type         { return exact(String) }
func BooleanT() Type        { return exact(Boolean) }
func RegExpT() Type         { return exact(RegExp) }
func UnboundFunctionT() Type { return exact(UnboundFunction) }
func IterableT() Type       { return exact(Iterable) }

// PrimitiveT is the union of the scalar JS kinds, used as the BigInt-
// contagion fallback for unary/binary numeric operators (spec §4.3).
func PrimitiveT() Type {
	return Type{possible: Integer | BigInt | Float | String | Boolean}
}

// NumberT is the union of Integer and Float, the fallback for arithmetic
// operators that don't propagate BigInt.
func NumberT() Type { return Type{possible: Integer | Float} }

// ObjectT builds an object type in the given group (may be "") with the
// given known properties and methods.
func ObjectT(group string, properties, methods []string) Type {
	ext := &Ext{Group: group}
	if len(properties) > 0 {
		ext.Properties = toSet(properties)
	}
	if len(methods) > 0 {
		ext.Methods = toSet(methods)
	}
	return Type{definite: Object, possible: Object, ext: ext}
}

// FunctionT builds a function type with the given call signature.
func FunctionT(sig Signature) Type {
	return Type{definite: Function, possible: Function, ext: &Ext{Signature: &sig}}
}

// ConstructorT builds a constructor type with the given call signature.
func ConstructorT(sig Signature) Type {
	return Type{definite: Constructor, possible: Constructor, ext: &Ext{Signature: &sig}}
}

// FunctionAndConstructorT builds a type usable both as a plain function call
// and as a `new` target, as produced by a class definition's outer binding.
func FunctionAndConstructorT(sig Signature) Type {
	b := Function | Constructor
	return Type{definite: b, possible: b, ext: &Ext{Signature: &sig}}
}

// WasmT builds an exact base-bits wasm value type (i32, i64, f32, f64,
// simd128, packedI8, packedI16, dataSegment, elementSegment — the kinds with
// no associated Ext).
func WasmT(b BaseBits) Type { return exact(b) }

func WasmGlobalT(ext WasmGlobalExt) Type   { return Type{definite: WasmRef, possible: WasmRef, ext: &Ext{Wasm: ext}} }
func WasmMemoryT(ext WasmMemoryExt) Type   { return Type{definite: WasmRef, possible: WasmRef, ext: &Ext{Wasm: ext}} }
func WasmTableT(ext WasmTableExt) Type     { return Type{definite: WasmRef, possible: WasmRef, ext: &Ext{Wasm: ext}} }
func WasmTagT(ext WasmTagExt) Type         { return Type{definite: WasmRef, possible: WasmRef, ext: &Ext{Wasm: ext}} }
func WasmLabelT(ext WasmLabelExt) Type     { return exact(WasmLabel | WasmExceptionLabel).withWasm(ext) }
func WasmReferenceT(ext WasmReferenceExt) Type {
	return Type{definite: WasmRef, possible: WasmRef, ext: &Ext{Wasm: ext}}
}
func WasmTypeDefT(ext WasmTypeDefExt) Type {
	return Type{definite: WasmTypeDef, possible: WasmTypeDef, ext: &Ext{Wasm: ext}}
}
func WasmFunctionDefT(ext WasmFunctionDefExt) Type {
	return Type{definite: WasmFunctionDef, possible: WasmFunctionDef, ext: &Ext{Wasm: ext}}
}

func (t Type) withWasm(w WasmExt) Type {
	t.ext = &Ext{Wasm: w}
	return t
}

// WithBits builds a Type directly from a (definite, possible) bitset pair,
// with no extension. Used by lang/serialize to reconstruct a decoded Type's
// base before its optional Ext is attached.
func WithBits(definite, possible BaseBits) Type {
	return Type{definite: definite, possible: possible}
}

// WithExt returns a copy of t with an Ext built from the given group,
// properties, methods and optional signature. Used by lang/serialize to
// reconstruct a decoded Type's extension; receiver and wasm extension are
// not part of the wire format (see lang/serialize/type.go) and are left
// unset.
func (t Type) WithExt(group string, properties, methods []string, sig *Signature) Type {
	ext := &Ext{Group: group, Signature: sig}
	if len(properties) > 0 {
		ext.Properties = toSet(properties)
	}
	if len(methods) > 0 {
		ext.Methods = toSet(methods)
	}
	t.ext = ext
	return t
}

func toSet(xs []string) map[string]struct{} {
	m := make(map[string]struct{}, len(xs))
	for _, x := range xs {
		m[x] = struct{}{}
	}
	return m
}

// Definite returns the guaranteed base kinds.
func (t Type) Definite() BaseBits { return t.definite }

// Possible returns the possible base kinds.
func (t Type) Possible() BaseBits { return t.possible }

// IsNothing reports whether t is the bottom of the lattice.
func (t Type) IsNothing() bool { return t.definite == 0 && t.possible == 0 && t.ext == nil }

// IsUnion reports whether t represents an ambiguous (not fully precise)
// type, i.e. its possible set is broader than what it definitely is. Merge
// is disallowed on such types (spec §4.4).
func (t Type) IsUnion() bool { return t.possible != t.definite }

// Group returns the object group tag, or "" if unset.
func (t Type) Group() string {
	if t.ext == nil {
		return ""
	}
	return t.ext.Group
}

// Properties returns the sorted list of known property names.
func (t Type) Properties() []string { return sortedKeys(t.ext, func(e *Ext) map[string]struct{} { return e.Properties }) }

// Methods returns the sorted list of known method names.
func (t Type) Methods() []string { return sortedKeys(t.ext, func(e *Ext) map[string]struct{} { return e.Methods }) }

func sortedKeys(e *Ext, pick func(*Ext) map[string]struct{}) []string {
	if e == nil {
		return nil
	}
	m := pick(e)
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// HasProperty reports whether name is a known property of t.
func (t Type) HasProperty(name string) bool { return hasKey(t.ext, name, func(e *Ext) map[string]struct{} { return e.Properties }) }

// HasMethod reports whether name is a known method of t.
func (t Type) HasMethod(name string) bool { return hasKey(t.ext, name, func(e *Ext) map[string]struct{} { return e.Methods }) }

func hasKey(e *Ext, name string, pick func(*Ext) map[string]struct{}) bool {
	if e == nil {
		return false
	}
	_, ok := pick(e)[name]
	return ok
}

// Signature returns the call signature, if any.
func (t Type) Signature() *Signature {
	if t.ext == nil {
		return nil
	}
	return t.ext.Signature
}

// Wasm returns the wasm extension payload, if any.
func (t Type) Wasm() WasmExt {
	if t.ext == nil {
		return nil
	}
	return t.ext.Wasm
}

// Is reports whether t is an instance of other, i.e. other.Subsumes(t).
func (t Type) Is(other Type) bool { return other.Subsumes(t) }

// Adding returns a copy of t with property or method name added. isMethod
// selects which set receives the name.
func (t Type) Adding(name string, isMethod bool) Type {
	nt := t
	nt.ext = t.ext.clone()
	if nt.ext == nil {
		nt.ext = &Ext{}
	}
	if isMethod {
		if nt.ext.Methods == nil {
			nt.ext.Methods = map[string]struct{}{}
		}
		nt.ext.Methods[name] = struct{}{}
	} else {
		if nt.ext.Properties == nil {
			nt.ext.Properties = map[string]struct{}{}
		}
		nt.ext.Properties[name] = struct{}{}
	}
	return nt
}

// Removing returns a copy of t with property or method name removed.
func (t Type) Removing(name string, isMethod bool) Type {
	nt := t
	nt.ext = t.ext.clone()
	if nt.ext == nil {
		return nt
	}
	if isMethod {
		delete(nt.ext.Methods, name)
	} else {
		delete(nt.ext.Properties, name)
	}
	return nt
}

// SettingSignature returns a copy of t with its call signature replaced.
func (t Type) SettingSignature(sig Signature) Type {
	nt := t
	nt.ext = t.ext.clone()
	if nt.ext == nil {
		nt.ext = &Ext{}
	}
	nt.ext.Signature = &sig
	return nt
}

// Equal reports value equality, not subsumption.
func (t Type) Equal(o Type) bool {
	if t.definite != o.definite || t.possible != o.possible {
		return false
	}
	return extEqual(t.ext, o.ext)
}

func extEqual(a, b *Ext) bool {
	if a == nil || b == nil {
		return extIsZero(a) && extIsZero(b)
	}
	if a.Group != b.Group {
		return false
	}
	if !setsEqual(a.Properties, b.Properties) || !setsEqual(a.Methods, b.Methods) {
		return false
	}
	if (a.Signature == nil) != (b.Signature == nil) {
		return false
	}
	if a.Signature != nil && !a.Signature.Equal(*b.Signature) {
		return false
	}
	if (a.Receiver == nil) != (b.Receiver == nil) {
		return false
	}
	if a.Receiver != nil && !a.Receiver.Equal(*b.Receiver) {
		return false
	}
	if (a.Wasm == nil) != (b.Wasm == nil) {
		return false
	}
	if a.Wasm != nil && !a.Wasm.Equal(b.Wasm) {
		return false
	}
	return true
}

func extIsZero(e *Ext) bool {
	return e == nil || (e.Group == "" && len(e.Properties) == 0 && len(e.Methods) == 0 && e.Signature == nil && e.Receiver == nil && e.Wasm == nil)
}

func setsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
